package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jobboard/internal/model"
	"jobboard/internal/repository"
)

type MockCandidateRepository struct {
	mock.Mock
}

func (m *MockCandidateRepository) Create(ctx context.Context, c *model.Candidate) (*model.Candidate, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) FindByID(ctx context.Context, id string) (*model.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	args := m.Called(ctx, email, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockCandidateRepository) FindByEmail(ctx context.Context, email string) (*model.Candidate, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) Update(ctx context.Context, c *model.Candidate) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCandidateRepository) UpdateFiles(ctx context.Context, id, resumeURL, photoURL string) error {
	args := m.Called(ctx, id, resumeURL, photoURL)
	return args.Error(0)
}

func (m *MockCandidateRepository) Search(ctx context.Context, q repository.CandidateQuery) (*repository.PageResult[model.Candidate], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Candidate]), args.Error(1)
}

func (m *MockCandidateRepository) StatusCounts(ctx context.Context, q repository.CandidateQuery, recruiterID string) (map[string]int, error) {
	args := m.Called(ctx, q, recruiterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockCandidateRepository) UpsertStatus(ctx context.Context, st *model.EmployerStatus) error {
	args := m.Called(ctx, st)
	return args.Error(0)
}

func (m *MockCandidateRepository) FindStatus(ctx context.Context, candidateID, recruiterID string) (*model.EmployerStatus, error) {
	args := m.Called(ctx, candidateID, recruiterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EmployerStatus), args.Error(1)
}

func (m *MockCandidateRepository) ListAutoApply(ctx context.Context) ([]model.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) SaveJob(ctx context.Context, candidateID, jobID string) error {
	args := m.Called(ctx, candidateID, jobID)
	return args.Error(0)
}

func (m *MockCandidateRepository) ListSavedJobs(ctx context.Context, candidateID string) ([]model.Job, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Job), args.Error(1)
}
