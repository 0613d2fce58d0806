package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jobboard/internal/model"
	"jobboard/internal/repository"
	"jobboard/internal/service"
)

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Candidates(ctx context.Context, q repository.CandidateQuery, page, limit int) (*service.CandidateSearchResult, error) {
	args := m.Called(ctx, q, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CandidateSearchResult), args.Error(1)
}

func (m *MockSearchService) Applications(ctx context.Context, q repository.ApplicationQuery, page, limit int) (*service.ApplicationSearchResult, error) {
	args := m.Called(ctx, q, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplicationSearchResult), args.Error(1)
}

func (m *MockSearchService) UpdateCandidateStatus(ctx context.Context, in service.StatusUpdate) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockSearchService) ViewCandidate(ctx context.Context, recruiterID, candidateID string) (*model.Candidate, error) {
	args := m.Called(ctx, recruiterID, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Candidate), args.Error(1)
}
