package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobboard/internal/model"
	"jobboard/internal/repository"
	"jobboard/internal/repository/mocks"
)

func TestJobService_Create_SlugCollision(t *testing.T) {
	jobs := new(mocks.MockJobRepository)
	jobs.On("SlugExists", mock.Anything, "senior-go-developer").Return(true, nil).Once()
	jobs.On("SlugExists", mock.Anything, "senior-go-developer-1").Return(true, nil).Once()
	jobs.On("SlugExists", mock.Anything, "senior-go-developer-2").Return(false, nil).Once()
	jobs.On("Create", mock.Anything, mock.MatchedBy(func(j *model.Job) bool {
		return j.Slug == "senior-go-developer-2" && j.Status == model.JobOpen && j.EmployerID == "emp-1"
	})).Return(&model.Job{ID: "job-1", Slug: "senior-go-developer-2"}, nil)

	svc := NewJobService(jobs, new(mocks.MockCandidateRepository), nil)
	created, err := svc.Create(context.Background(), "emp-1", JobInput{Title: "Senior Go Developer"})

	require.NoError(t, err)
	assert.Equal(t, "senior-go-developer-2", created.Slug)
	jobs.AssertExpectations(t)
}

func TestJobService_Create_FirstCollisionGetsSuffixOne(t *testing.T) {
	jobs := new(mocks.MockJobRepository)
	jobs.On("SlugExists", mock.Anything, "backend-engineer-acme-pune").Return(true, nil).Once()
	jobs.On("SlugExists", mock.Anything, "backend-engineer-acme-pune-1").Return(false, nil).Once()
	jobs.On("Create", mock.Anything, mock.MatchedBy(func(j *model.Job) bool {
		return j.Slug == "backend-engineer-acme-pune-1"
	})).Return(&model.Job{ID: "job-3", Slug: "backend-engineer-acme-pune-1"}, nil)

	svc := NewJobService(jobs, new(mocks.MockCandidateRepository), nil)
	created, err := svc.Create(context.Background(), "emp-1", JobInput{Title: "Backend Engineer Acme Pune"})

	require.NoError(t, err)
	assert.Equal(t, "backend-engineer-acme-pune-1", created.Slug)
	jobs.AssertExpectations(t)
}

func TestJobService_Create_FirstSlugFree(t *testing.T) {
	jobs := new(mocks.MockJobRepository)
	jobs.On("SlugExists", mock.Anything, "data-analyst").Return(false, nil).Once()
	jobs.On("Create", mock.Anything, mock.MatchedBy(func(j *model.Job) bool {
		return j.Slug == "data-analyst"
	})).Return(&model.Job{ID: "job-2", Slug: "data-analyst"}, nil)

	svc := NewJobService(jobs, new(mocks.MockCandidateRepository), nil)
	created, err := svc.Create(context.Background(), "emp-1", JobInput{Title: "Data Analyst"})

	require.NoError(t, err)
	assert.Equal(t, "data-analyst", created.Slug)
}

func TestJobService_Close_OwnershipRequired(t *testing.T) {
	jobs := new(mocks.MockJobRepository)
	jobs.On("FindByID", mock.Anything, "job-1").
		Return(&model.Job{ID: "job-1", EmployerID: "emp-1", Status: model.JobOpen}, nil)

	svc := NewJobService(jobs, new(mocks.MockCandidateRepository), nil)
	err := svc.Close(context.Background(), "emp-2", "job-1")

	assert.ErrorIs(t, err, ErrNotFound)
	jobs.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestJobService_Search_DefaultsToOpenListings(t *testing.T) {
	jobs := new(mocks.MockJobRepository)
	jobs.On("Search", mock.Anything, mock.MatchedBy(func(q repository.JobQuery) bool {
		return q.Status == model.JobOpen && q.Limit == 10
	})).Return(&repository.PageResult[model.Job]{}, nil)

	svc := NewJobService(jobs, new(mocks.MockCandidateRepository), nil)
	_, err := svc.Search(context.Background(), repository.JobQuery{})

	require.NoError(t, err)
	jobs.AssertExpectations(t)
}
