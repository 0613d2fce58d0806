package model

import "time"

// Job listing statuses.
const (
	JobOpen   = "open"
	JobClosed = "closed"
)

// Job represents a job listing posted by an employer. Slug is unique across
// all listings; collisions at creation are resolved with a numeric suffix.
type Job struct {
	ID            string     `json:"id"`
	EmployerID    string     `json:"employer_id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Description   string     `json:"description"`
	Skills        []string   `json:"skills"`
	Degree        string     `json:"degree"`
	JobType       string     `json:"job_type"`
	Location      string     `json:"location"`
	SalaryMin     int64      `json:"salary_min"`
	SalaryMax     int64      `json:"salary_max"`
	ExperienceMin float64    `json:"experience_min"`
	ExperienceMax float64    `json:"experience_max"`
	Questions     []string   `json:"questions"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
