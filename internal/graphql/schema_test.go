package graphql

import (
	"context"
	"testing"

	gql "github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/model"
	"jobboard/internal/repository"
	"jobboard/internal/service"
)

type stubSearch struct {
	service.SearchService
	gotQuery  repository.CandidateQuery
	gotUpdate service.StatusUpdate
	updateErr error
}

func (s *stubSearch) Candidates(ctx context.Context, q repository.CandidateQuery, page, limit int) (*service.CandidateSearchResult, error) {
	s.gotQuery = q
	return &service.CandidateSearchResult{
		Items: []model.Candidate{{ID: "cand-1", Name: "Asha", Skills: []string{"go"}}},
		Total: 1, Page: 1, Limit: 10,
		StatusCounts: map[string]int{"Viewed": 1},
	}, nil
}

func (s *stubSearch) UpdateCandidateStatus(ctx context.Context, in service.StatusUpdate) error {
	s.gotUpdate = in
	return s.updateErr
}

type stubLookups struct {
	service.LookupService
}

func (s *stubLookups) List(ctx context.Context, q repository.LookupQuery) (*repository.PageResult[model.Lookup], error) {
	return &repository.PageResult[model.Lookup]{
		Items: []model.Lookup{{ID: "lk-1", Kind: q.Kind, Value: "Go"}},
		Total: 1,
	}, nil
}

func TestSchema_CandidateSearch(t *testing.T) {
	search := &stubSearch{}
	schema, err := NewSchema(Services{Search: search, Lookups: &stubLookups{}})
	require.NoError(t, err)

	res := gql.Do(gql.Params{
		Schema:  schema,
		Context: context.Background(),
		RequestString: `{
			candidateSearch(skills: ["go", "sql"], location: "Pune", employerId: "emp-1", ageMin: 25, ageMax: 40) {
				total
				data { id name skills }
				statusCounts { status count }
			}
		}`,
	})

	require.Empty(t, res.Errors)
	assert.Equal(t, []string{"go", "sql"}, search.gotQuery.Skills)
	assert.Equal(t, "Pune", search.gotQuery.Location)
	assert.Equal(t, "emp-1", search.gotQuery.RecruiterID)
	require.NotNil(t, search.gotQuery.AgeMin)
	require.NotNil(t, search.gotQuery.AgeMax)
	assert.Equal(t, 25, *search.gotQuery.AgeMin)
	assert.Equal(t, 40, *search.gotQuery.AgeMax)

	page := res.Data.(map[string]any)["candidateSearch"].(map[string]any)
	assert.Equal(t, 1, page["total"])
	counts := page["statusCounts"].([]any)
	require.Len(t, counts, 1)
}

func TestSchema_UpdateCandidateStatusMutation(t *testing.T) {
	search := &stubSearch{}
	schema, err := NewSchema(Services{Search: search, Lookups: &stubLookups{}})
	require.NoError(t, err)

	res := gql.Do(gql.Params{
		Schema:  schema,
		Context: context.Background(),
		RequestString: `mutation {
			updateCandidateStatus(candidateId: "cand-1", employerId: "emp-1", action: "whatsapp", message: "hello")
		}`,
	})

	require.Empty(t, res.Errors)
	assert.Equal(t, "whatsapp", search.gotUpdate.Action)
	assert.Equal(t, "cand-1", search.gotUpdate.CandidateID)
}

func TestSchema_QuotaErrorSurfacesToClient(t *testing.T) {
	search := &stubSearch{updateErr: service.ErrQuotaExhausted}
	schema, err := NewSchema(Services{Search: search, Lookups: &stubLookups{}})
	require.NoError(t, err)

	res := gql.Do(gql.Params{
		Schema:  schema,
		Context: context.Background(),
		RequestString: `mutation {
			updateCandidateStatus(candidateId: "cand-1", employerId: "emp-1", status: "Shortlisted")
		}`,
	})

	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0].Message, "quota")
}
