package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobboard/internal/model"
	"jobboard/internal/repository/mocks"
)

func TestApplicationService_Apply(t *testing.T) {
	openJob := &model.Job{ID: "job-1", EmployerID: "emp-1", Title: "Backend Engineer", Status: model.JobOpen}

	t.Run("rejects a second application to the same job", func(t *testing.T) {
		jobs := new(mocks.MockJobRepository)
		jobs.On("FindByID", mock.Anything, "job-1").Return(openJob, nil)
		apps := new(mocks.MockApplicationRepository)
		apps.On("Exists", mock.Anything, "job-1", "cand-1").Return(true, nil)

		svc := NewApplicationService(apps, jobs, new(mocks.MockCandidateRepository), new(mocks.MockEmployerRepository), nil)
		_, err := svc.Apply(context.Background(), "cand-1", "job-1", nil)

		assert.ErrorIs(t, err, ErrAlreadyApplied)
		apps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a closed job", func(t *testing.T) {
		jobs := new(mocks.MockJobRepository)
		jobs.On("FindByID", mock.Anything, "job-2").
			Return(&model.Job{ID: "job-2", Status: model.JobClosed}, nil)
		apps := new(mocks.MockApplicationRepository)

		svc := NewApplicationService(apps, jobs, new(mocks.MockCandidateRepository), new(mocks.MockEmployerRepository), nil)
		_, err := svc.Apply(context.Background(), "cand-1", "job-2", nil)

		assert.ErrorIs(t, err, ErrJobClosed)
		apps.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("creates a pending application bound to the job's employer", func(t *testing.T) {
		answers := []model.Answer{{Question: "Notice period?", Answer: "2 weeks"}}
		jobs := new(mocks.MockJobRepository)
		jobs.On("FindByID", mock.Anything, "job-1").Return(openJob, nil)
		apps := new(mocks.MockApplicationRepository)
		apps.On("Exists", mock.Anything, "job-1", "cand-1").Return(false, nil)
		apps.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Application) bool {
			return a.Status == model.ApplicationPending && a.EmployerID == "emp-1" && len(a.Answers) == 1
		})).Return(&model.Application{ID: "app-1", Status: model.ApplicationPending}, nil)

		svc := NewApplicationService(apps, jobs, new(mocks.MockCandidateRepository), new(mocks.MockEmployerRepository), nil)
		created, err := svc.Apply(context.Background(), "cand-1", "job-1", answers)

		require.NoError(t, err)
		assert.Equal(t, model.ApplicationPending, created.Status)
		apps.AssertExpectations(t)
	})
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	stored := &model.Application{ID: "app-1", JobID: "job-1", CandidateID: "cand-1", EmployerID: "emp-1", Status: model.ApplicationPending}

	t.Run("foreign employer cannot move the application", func(t *testing.T) {
		apps := new(mocks.MockApplicationRepository)
		apps.On("FindByID", mock.Anything, "app-1").Return(stored, nil)

		svc := NewApplicationService(apps, new(mocks.MockJobRepository), new(mocks.MockCandidateRepository), new(mocks.MockEmployerRepository), nil)
		err := svc.UpdateStatus(context.Background(), "emp-2", "app-1", model.ApplicationShortlisted)

		assert.ErrorIs(t, err, ErrNotFound)
		apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid status rejected up front", func(t *testing.T) {
		apps := new(mocks.MockApplicationRepository)

		svc := NewApplicationService(apps, new(mocks.MockJobRepository), new(mocks.MockCandidateRepository), new(mocks.MockEmployerRepository), nil)
		err := svc.UpdateStatus(context.Background(), "emp-1", "app-1", "archived")

		assert.ErrorIs(t, err, ErrInvalidStatus)
		apps.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("owner moves the application", func(t *testing.T) {
		apps := new(mocks.MockApplicationRepository)
		apps.On("FindByID", mock.Anything, "app-1").Return(stored, nil)
		apps.On("UpdateStatus", mock.Anything, "app-1", model.ApplicationRejected).Return(nil)

		svc := NewApplicationService(apps, new(mocks.MockJobRepository), new(mocks.MockCandidateRepository), new(mocks.MockEmployerRepository), nil)
		err := svc.UpdateStatus(context.Background(), "emp-1", "app-1", model.ApplicationRejected)

		require.NoError(t, err)
		apps.AssertExpectations(t)
	})
}
