package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobboard/internal/model"
	"jobboard/internal/repository/mocks"
)

func strptr(s string) *string { return &s }

func TestCandidateService_UpdateProfile_PartialStep(t *testing.T) {
	stored := &model.Candidate{
		ID:     "cand-1",
		Name:   "Asha",
		Title:  "Backend Developer",
		Skills: []string{"go"},
	}
	repo := new(mocks.MockCandidateRepository)
	repo.On("FindByID", mock.Anything, "cand-1").Return(stored, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Candidate) bool {
		// The skills step must not clobber untouched sections.
		return c.Title == "Backend Developer" && len(c.Skills) == 2 && c.Name == "Asha"
	})).Return(nil)

	svc := NewCandidateService(repo, new(mocks.MockJobRepository), new(mocks.MockApplicationRepository), nil)
	updated, err := svc.UpdateProfile(context.Background(), "cand-1", ProfileUpdate{
		Skills: []string{"go", "sql"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"go", "sql"}, updated.Skills)
	assert.Equal(t, "Backend Developer", updated.Title)
	repo.AssertExpectations(t)
}

func TestCandidateService_UpdateProfile_ScalarStep(t *testing.T) {
	repo := new(mocks.MockCandidateRepository)
	repo.On("FindByID", mock.Anything, "cand-1").Return(&model.Candidate{ID: "cand-1"}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Candidate) bool {
		return c.Title == "Platform Engineer" && c.JobType == "full_time"
	})).Return(nil)

	svc := NewCandidateService(repo, new(mocks.MockJobRepository), new(mocks.MockApplicationRepository), nil)
	_, err := svc.UpdateProfile(context.Background(), "cand-1", ProfileUpdate{
		Title:   strptr("Platform Engineer"),
		JobType: strptr("full_time"),
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCandidateService_SaveJob_UnknownJob(t *testing.T) {
	jobs := new(mocks.MockJobRepository)
	jobs.On("FindByID", mock.Anything, "missing").Return(nil, sql.ErrNoRows)

	repo := new(mocks.MockCandidateRepository)
	svc := NewCandidateService(repo, jobs, new(mocks.MockApplicationRepository), nil)

	err := svc.SaveJob(context.Background(), "cand-1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	repo.AssertNotCalled(t, "SaveJob", mock.Anything, mock.Anything, mock.Anything)
}
