package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jobboard/internal/model"
	"jobboard/internal/repository"
)

type MockLookupRepository struct {
	mock.Mock
}

func (m *MockLookupRepository) Create(ctx context.Context, l *model.Lookup) (*model.Lookup, error) {
	args := m.Called(ctx, l)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lookup), args.Error(1)
}

func (m *MockLookupRepository) InsertIfAbsent(ctx context.Context, l *model.Lookup) (bool, error) {
	args := m.Called(ctx, l)
	return args.Bool(0), args.Error(1)
}

func (m *MockLookupRepository) Update(ctx context.Context, l *model.Lookup) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLookupRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLookupRepository) List(ctx context.Context, q repository.LookupQuery) (*repository.PageResult[model.Lookup], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Lookup]), args.Error(1)
}
