package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobboard/internal/model"
	"jobboard/internal/repository/mocks"
)

func TestMaintenanceService_ExpirePlans(t *testing.T) {
	employers := new(mocks.MockEmployerRepository)
	employers.On("ExpirePlans", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(3), nil)

	svc := NewMaintenanceService(employers, new(mocks.MockJobRepository), new(mocks.MockCandidateRepository), new(mocks.MockApplicationRepository))
	n, err := svc.ExpirePlans(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestMaintenanceService_ExpireJobs(t *testing.T) {
	jobs := new(mocks.MockJobRepository)
	jobs.On("ExpireOpenJobs", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(0), nil)

	svc := NewMaintenanceService(new(mocks.MockEmployerRepository), jobs, new(mocks.MockCandidateRepository), new(mocks.MockApplicationRepository))
	n, err := svc.ExpireJobs(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMaintenanceService_AutoApply(t *testing.T) {
	deadline := time.Now().Add(72 * time.Hour)
	optedIn := []model.Candidate{
		{ID: "cand-1", Skills: []string{"go", "sql"}, PreferredLocations: []string{"Pune"}, AutoApply: true},
		{ID: "cand-2", Skills: []string{"design"}, AutoApply: true},
	}
	open := []model.Job{
		{ID: "job-1", EmployerID: "emp-1", Skills: []string{"go"}, Location: "Pune, Maharashtra", Deadline: &deadline, Status: model.JobOpen},
		{ID: "job-2", EmployerID: "emp-2", Skills: []string{"go"}, Location: "Delhi", Deadline: &deadline, Status: model.JobOpen},
	}

	candidates := new(mocks.MockCandidateRepository)
	candidates.On("ListAutoApply", mock.Anything).Return(optedIn, nil)
	jobs := new(mocks.MockJobRepository)
	jobs.On("ListOpen", mock.Anything).Return(open, nil)

	// cand-1 matches job-1 (skill + location) and skips job-2 on location;
	// cand-2 shares no skill with either listing.
	apps := new(mocks.MockApplicationRepository)
	apps.On("Exists", mock.Anything, "job-1", "cand-1").Return(false, nil)
	apps.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Application) bool {
		return a.JobID == "job-1" && a.CandidateID == "cand-1" &&
			a.EmployerID == "emp-1" && a.Status == model.ApplicationPending
	})).Return(&model.Application{ID: "app-1"}, nil)

	svc := NewMaintenanceService(new(mocks.MockEmployerRepository), jobs, candidates, apps)
	created, err := svc.AutoApply(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), created)
	apps.AssertExpectations(t)
}

func TestMaintenanceService_AutoApply_SkipsExistingApplication(t *testing.T) {
	optedIn := []model.Candidate{{ID: "cand-1", Skills: []string{"go"}, AutoApply: true}}
	open := []model.Job{{ID: "job-1", EmployerID: "emp-1", Skills: []string{"go"}, Status: model.JobOpen}}

	candidates := new(mocks.MockCandidateRepository)
	candidates.On("ListAutoApply", mock.Anything).Return(optedIn, nil)
	jobs := new(mocks.MockJobRepository)
	jobs.On("ListOpen", mock.Anything).Return(open, nil)
	apps := new(mocks.MockApplicationRepository)
	apps.On("Exists", mock.Anything, "job-1", "cand-1").Return(true, nil)

	svc := NewMaintenanceService(new(mocks.MockEmployerRepository), jobs, candidates, apps)
	created, err := svc.AutoApply(context.Background())

	require.NoError(t, err)
	assert.Zero(t, created)
	apps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
