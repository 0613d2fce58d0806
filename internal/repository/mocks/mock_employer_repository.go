package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"jobboard/internal/model"
)

type MockEmployerRepository struct {
	mock.Mock
}

func (m *MockEmployerRepository) Create(ctx context.Context, e *model.Employer) (*model.Employer, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employer), args.Error(1)
}

func (m *MockEmployerRepository) FindByID(ctx context.Context, id string) (*model.Employer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employer), args.Error(1)
}

func (m *MockEmployerRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	args := m.Called(ctx, email, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployerRepository) FindByEmail(ctx context.Context, email string) (*model.Employer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employer), args.Error(1)
}

func (m *MockEmployerRepository) Update(ctx context.Context, e *model.Employer) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEmployerRepository) ApplyPlan(ctx context.Context, id, plan string, allowedResume int, start, end time.Time) error {
	args := m.Called(ctx, id, plan, allowedResume, start, end)
	return args.Error(0)
}

func (m *MockEmployerRepository) ConsumeResumeView(ctx context.Context, employerID, candidateID string) (bool, error) {
	args := m.Called(ctx, employerID, candidateID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployerRepository) ExpirePlans(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
