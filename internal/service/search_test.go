package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobboard/internal/model"
	"jobboard/internal/repository"
	"jobboard/internal/repository/mocks"
)

func TestSearchService_Candidates_RanksPageBySkillOverlap(t *testing.T) {
	// Database page order is by recency; the service re-sorts the fetched
	// page by overlap with the requested skills.
	page := []model.Candidate{
		{ID: "c1", Skills: []string{"go", "sql"}},
		{ID: "c2", Skills: []string{"design"}},
		{ID: "c3", Skills: []string{"go", "sql", "docker"}},
	}
	candidates := new(mocks.MockCandidateRepository)
	candidates.On("Search", mock.Anything, mock.MatchedBy(func(q repository.CandidateQuery) bool {
		return q.Limit == 10 && q.Offset == 0
	})).Return(&repository.PageResult[model.Candidate]{Items: page, Total: 42}, nil)

	svc := NewSearchService(candidates, new(mocks.MockApplicationRepository), new(mocks.MockEmployerRepository), nil)
	res, err := svc.Candidates(context.Background(), repository.CandidateQuery{
		Skills: []string{"go", "sql", "docker"},
	}, 1, 10)

	require.NoError(t, err)
	ids := []string{res.Items[0].ID, res.Items[1].ID, res.Items[2].ID}
	assert.Equal(t, []string{"c3", "c1", "c2"}, ids)
	assert.Equal(t, 42, res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Nil(t, res.StatusCounts)
}

func TestSearchService_Candidates_EmployerGetsStatusCounts(t *testing.T) {
	counts := map[string]int{"Viewed": 3, "Shortlisted": 1, "Rejected": 0, "Hold": 0}
	candidates := new(mocks.MockCandidateRepository)
	candidates.On("Search", mock.Anything, mock.Anything).
		Return(&repository.PageResult[model.Candidate]{Items: nil, Total: 0}, nil)
	candidates.On("StatusCounts", mock.Anything, mock.Anything, "emp-1").Return(counts, nil)

	svc := NewSearchService(candidates, new(mocks.MockApplicationRepository), new(mocks.MockEmployerRepository), nil)
	res, err := svc.Candidates(context.Background(), repository.CandidateQuery{RecruiterID: "emp-1"}, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, counts, res.StatusCounts)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 10, res.Limit)
}

func TestSearchService_UpdateCandidateStatus(t *testing.T) {
	t.Run("quota exhausted blocks the transition", func(t *testing.T) {
		employers := new(mocks.MockEmployerRepository)
		employers.On("ConsumeResumeView", mock.Anything, "emp-1", "cand-1").
			Return(false, repository.ErrQuotaExhausted)
		candidates := new(mocks.MockCandidateRepository)

		svc := NewSearchService(candidates, new(mocks.MockApplicationRepository), employers, nil)
		err := svc.UpdateCandidateStatus(context.Background(), StatusUpdate{
			CandidateID: "cand-1", RecruiterID: "emp-1", Status: model.StatusShortlisted,
		})

		assert.ErrorIs(t, err, ErrQuotaExhausted)
		candidates.AssertNotCalled(t, "UpsertStatus", mock.Anything, mock.Anything)
	})

	t.Run("contact action is recorded as Viewed", func(t *testing.T) {
		employers := new(mocks.MockEmployerRepository)
		employers.On("ConsumeResumeView", mock.Anything, "emp-1", "cand-1").Return(false, nil)
		employers.On("FindByID", mock.Anything, "emp-1").
			Return(&model.Employer{ID: "emp-1", CompanyName: "Acme"}, nil)
		candidates := new(mocks.MockCandidateRepository)
		candidates.On("FindByID", mock.Anything, "cand-1").
			Return(&model.Candidate{ID: "cand-1", Email: "c@example.com"}, nil)
		candidates.On("UpsertStatus", mock.Anything, mock.MatchedBy(func(st *model.EmployerStatus) bool {
			return st.Status == model.StatusViewed && st.RecruiterID == "emp-1"
		})).Return(nil)

		svc := NewSearchService(candidates, new(mocks.MockApplicationRepository), employers, nil)
		err := svc.UpdateCandidateStatus(context.Background(), StatusUpdate{
			CandidateID: "cand-1", RecruiterID: "emp-1", Action: ActionEmail,
		})

		require.NoError(t, err)
		candidates.AssertExpectations(t)
	})

	t.Run("repeat interaction reaches the upsert without error", func(t *testing.T) {
		// alreadyViewed=true means no quota was consumed; the status change
		// still goes through.
		employers := new(mocks.MockEmployerRepository)
		employers.On("ConsumeResumeView", mock.Anything, "emp-1", "cand-1").Return(true, nil)
		candidates := new(mocks.MockCandidateRepository)
		candidates.On("UpsertStatus", mock.Anything, mock.MatchedBy(func(st *model.EmployerStatus) bool {
			return st.Status == model.StatusHold
		})).Return(nil)

		svc := NewSearchService(candidates, new(mocks.MockApplicationRepository), employers, nil)
		err := svc.UpdateCandidateStatus(context.Background(), StatusUpdate{
			CandidateID: "cand-1", RecruiterID: "emp-1", Status: model.StatusHold,
		})

		require.NoError(t, err)
		candidates.AssertExpectations(t)
	})

	t.Run("unknown status rejected before any quota spend", func(t *testing.T) {
		employers := new(mocks.MockEmployerRepository)

		svc := NewSearchService(new(mocks.MockCandidateRepository), new(mocks.MockApplicationRepository), employers, nil)
		err := svc.UpdateCandidateStatus(context.Background(), StatusUpdate{
			CandidateID: "cand-1", RecruiterID: "emp-1", Status: "Archived",
		})

		assert.ErrorIs(t, err, ErrInvalidStatus)
		employers.AssertNotCalled(t, "ConsumeResumeView", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSearchService_Applications(t *testing.T) {
	apps := new(mocks.MockApplicationRepository)
	apps.On("Search", mock.Anything, mock.MatchedBy(func(q repository.ApplicationQuery) bool {
		return q.EmployerID == "emp-1" && q.Limit == 5 && q.Offset == 10
	})).Return(&repository.PageResult[model.Application]{Items: []model.Application{{ID: "a1"}}, Total: 11}, nil)
	apps.On("StatusCounts", mock.Anything, mock.Anything).
		Return(map[string]int{"pending": 11, "shortlisted": 0, "rejected": 0, "hired": 0}, nil)

	svc := NewSearchService(new(mocks.MockCandidateRepository), apps, new(mocks.MockEmployerRepository), nil)
	res, err := svc.Applications(context.Background(), repository.ApplicationQuery{EmployerID: "emp-1"}, 3, 5)

	require.NoError(t, err)
	assert.Equal(t, 11, res.Total)
	assert.Equal(t, 3, res.Page)
	assert.Equal(t, 11, res.StatusCounts["pending"])
}

func TestSearchService_Applications_RanksBySkillOverlap(t *testing.T) {
	apps := new(mocks.MockApplicationRepository)
	apps.On("Search", mock.Anything, mock.Anything).Return(&repository.PageResult[model.Application]{
		Items: []model.Application{
			{ID: "a1", CandidateSkills: []string{"go"}},
			{ID: "a2", CandidateSkills: []string{"java"}},
			{ID: "a3", CandidateSkills: []string{"go", "sql"}},
		},
		Total: 3,
	}, nil)
	apps.On("StatusCounts", mock.Anything, mock.Anything).
		Return(map[string]int{"pending": 3, "shortlisted": 0, "rejected": 0, "hired": 0}, nil)

	svc := NewSearchService(new(mocks.MockCandidateRepository), apps, new(mocks.MockEmployerRepository), nil)
	res, err := svc.Applications(context.Background(), repository.ApplicationQuery{
		EmployerID: "emp-1",
		Skills:     []string{"go", "sql"},
	}, 1, 10)

	require.NoError(t, err)
	ids := []string{res.Items[0].ID, res.Items[1].ID, res.Items[2].ID}
	assert.Equal(t, []string{"a3", "a1", "a2"}, ids)
}

func TestSearchService_ViewCandidate_UnknownCandidateIsNotFound(t *testing.T) {
	t.Run("quota gate hits the missing row first", func(t *testing.T) {
		employers := new(mocks.MockEmployerRepository)
		employers.On("ConsumeResumeView", mock.Anything, "emp-1", "ghost").
			Return(false, sql.ErrNoRows)

		svc := NewSearchService(new(mocks.MockCandidateRepository), new(mocks.MockApplicationRepository), employers, nil)
		_, err := svc.ViewCandidate(context.Background(), "emp-1", "ghost")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("profile fetch misses after a recorded view", func(t *testing.T) {
		employers := new(mocks.MockEmployerRepository)
		employers.On("ConsumeResumeView", mock.Anything, "emp-1", "ghost").
			Return(true, nil)
		candidates := new(mocks.MockCandidateRepository)
		candidates.On("FindByID", mock.Anything, "ghost").Return(nil, sql.ErrNoRows)

		svc := NewSearchService(candidates, new(mocks.MockApplicationRepository), employers, nil)
		_, err := svc.ViewCandidate(context.Background(), "emp-1", "ghost")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}
