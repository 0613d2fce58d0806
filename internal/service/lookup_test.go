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

func TestLookupService_Import(t *testing.T) {
	repo := new(mocks.MockLookupRepository)
	repo.On("InsertIfAbsent", mock.Anything, mock.MatchedBy(func(l *model.Lookup) bool {
		return l.Kind == model.LookupSkill && l.Value == "Go" && l.Label == "Go"
	})).Return(true, nil)
	repo.On("InsertIfAbsent", mock.Anything, mock.MatchedBy(func(l *model.Lookup) bool {
		return l.Value == "Python" && l.Label == "Python 3"
	})).Return(false, nil)

	svc := NewLookupService(repo)
	sum, err := svc.Import(context.Background(), model.LookupSkill, [][]string{
		{"Go"},
		{"Python", "Python 3"},
		{"  "},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, sum.Inserted)
	assert.Equal(t, 2, sum.Skipped)
	repo.AssertExpectations(t)
}

func TestLookupService_Import_RejectsUnknownKind(t *testing.T) {
	svc := NewLookupService(new(mocks.MockLookupRepository))
	_, err := svc.Import(context.Background(), "favorite_color", [][]string{{"blue"}})
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestLookupService_Create(t *testing.T) {
	repo := new(mocks.MockLookupRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *model.Lookup) bool {
		return l.Kind == model.LookupLocation && l.Value == "Mumbai" && l.Label == "Mumbai"
	})).Return(&model.Lookup{ID: "lk-1", Kind: model.LookupLocation, Value: "Mumbai"}, nil)

	svc := NewLookupService(repo)
	created, err := svc.Create(context.Background(), model.LookupLocation, "Mumbai", "")

	require.NoError(t, err)
	assert.Equal(t, "lk-1", created.ID)
}
