package repository

import (
	"context"
	"time"

	"jobboard/internal/model"
)

// JobQuery is the optional filter bag for public job search.
type JobQuery struct {
	Keyword       string
	Skills        []string
	Location      string
	JobType       string
	Degree        string
	SalaryMin     *int64
	SalaryMax     *int64
	ExperienceMax *float64
	EmployerID    string
	Status        string
	Limit         int
	Offset        int
}

// JobRepository defines data access for job listings.
type JobRepository interface {
	Create(ctx context.Context, j *model.Job) (*model.Job, error)
	FindByID(ctx context.Context, id string) (*model.Job, error)
	FindBySlug(ctx context.Context, slug string) (*model.Job, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, j *model.Job) error
	UpdateStatus(ctx context.Context, id, status string) error

	Search(ctx context.Context, q JobQuery) (*PageResult[model.Job], error)
	// ListOpen returns all open listings (used by auto-apply matching).
	ListOpen(ctx context.Context) ([]model.Job, error)

	// ExpireOpenJobs closes every open listing whose deadline has passed.
	// Idempotent; returns the number of rows changed.
	ExpireOpenJobs(ctx context.Context, now time.Time) (int64, error)
}
