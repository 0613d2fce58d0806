package repository

import (
	"context"
	"time"

	"jobboard/internal/model"
)

// CandidateQuery is the bag of optional search criteria for candidates.
// Nil/empty fields impose no constraint. RecruiterID switches on
// employer-scoped status filtering and counting.
type CandidateQuery struct {
	Skills        []string
	Location      string
	JobTitle      string
	JobType       string
	Degree        string
	Gender        string
	SalaryMin     *int64
	SalaryMax     *int64
	ExperienceMin *float64
	ExperienceMax *float64
	AgeMin        *int
	AgeMax        *int
	UpdatedSince  time.Time
	RecruiterID   string
	Status        string
	Limit         int
	Offset        int
}

// CandidateRepository defines data access for candidates and their
// per-employer status annotations. No business logic here.
type CandidateRepository interface {
	Create(ctx context.Context, c *model.Candidate) (*model.Candidate, error)
	FindByID(ctx context.Context, id string) (*model.Candidate, error)
	// ExistsByEmailOrPhone reports whether either contact field is taken.
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*model.Candidate, error)
	// Update persists the mutable profile fields and bumps updated_at.
	Update(ctx context.Context, c *model.Candidate) error
	// UpdateFiles sets resume and/or photo URLs; empty strings leave the
	// stored value untouched.
	UpdateFiles(ctx context.Context, id, resumeURL, photoURL string) error

	// Search returns a filtered page of candidates plus the total count of
	// the base-filtered population.
	Search(ctx context.Context, q CandidateQuery) (*PageResult[model.Candidate], error)
	// StatusCounts aggregates employer-scoped statuses over the full
	// base-filtered population, independent of pagination and independent of
	// any status filter in q.
	StatusCounts(ctx context.Context, q CandidateQuery, recruiterID string) (map[string]int, error)

	// UpsertStatus atomically inserts or updates the (candidate, recruiter)
	// status entry.
	UpsertStatus(ctx context.Context, st *model.EmployerStatus) error
	FindStatus(ctx context.Context, candidateID, recruiterID string) (*model.EmployerStatus, error)

	// ListAutoApply returns candidates that opted into auto-apply.
	ListAutoApply(ctx context.Context) ([]model.Candidate, error)

	SaveJob(ctx context.Context, candidateID, jobID string) error
	ListSavedJobs(ctx context.Context, candidateID string) ([]model.Job, error)
}
