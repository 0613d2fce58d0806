package repository

import (
	"context"
	"time"

	"jobboard/internal/model"
)

// ApplicationQuery filters an employer's job applications. Candidate-profile
// criteria are matched through a join against the applicant.
type ApplicationQuery struct {
	EmployerID   string
	JobID        string
	Status       string
	Skills       []string
	Location     string
	Gender       string
	Degree       string
	UpdatedSince time.Time
	Limit        int
	Offset       int
}

// ApplicationRepository defines data access for job applications.
type ApplicationRepository interface {
	Create(ctx context.Context, a *model.Application) (*model.Application, error)
	FindByID(ctx context.Context, id string) (*model.Application, error)
	// Exists reports whether the (job, candidate) pair already applied.
	Exists(ctx context.Context, jobID, candidateID string) (bool, error)
	ListByCandidate(ctx context.Context, candidateID string, pq PageQuery) (*PageResult[model.Application], error)
	UpdateStatus(ctx context.Context, id, status string) error

	Search(ctx context.Context, q ApplicationQuery) (*PageResult[model.Application], error)
	// StatusCounts aggregates application statuses for an employer over the
	// full base-filtered population, ignoring pagination.
	StatusCounts(ctx context.Context, q ApplicationQuery) (map[string]int, error)
}
