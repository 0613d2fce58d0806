package model

import "time"

// Application statuses.
const (
	ApplicationPending     = "pending"
	ApplicationShortlisted = "shortlisted"
	ApplicationRejected    = "rejected"
	ApplicationHired       = "hired"
)

// Answer is a candidate's free-form answer to one job-specific question.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Application is a candidate's submitted response to a specific job listing.
// At most one exists per (job, candidate) pair.
type Application struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	CandidateID string    `json:"candidate_id"`
	EmployerID  string    `json:"employer_id"`
	Answers     []Answer  `json:"answers"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// CandidateSkills is the applicant's skill list, populated only on
	// employer-side search results so pages can be ranked by overlap with
	// the requested skills.
	CandidateSkills []string `json:"candidate_skills,omitempty"`
}
