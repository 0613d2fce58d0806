package model

import "time"

// Candidate statuses an employer can assign. Contact actions (email, phone,
// whatsapp) are recorded as StatusViewed.
const (
	StatusViewed      = "Viewed"
	StatusShortlisted = "Shortlisted"
	StatusRejected    = "Rejected"
	StatusHold        = "Hold"
)

// Candidate represents a job-seeker account and its profile data.
// Pure domain model: no database-specific dependencies or tags.
type Candidate struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Email              string       `json:"email"`
	Phone              string       `json:"phone"`
	PasswordHash       string       `json:"-"`
	Title              string       `json:"title"`
	Gender             string       `json:"gender"`
	DateOfBirth        *time.Time   `json:"date_of_birth,omitempty"`
	Industry           string       `json:"industry"`
	Skills             []string     `json:"skills"`
	PreferredLocations []string     `json:"preferred_locations"`
	Education          []Education  `json:"education"`
	Experience         []Experience `json:"experience"`
	JobType            string       `json:"job_type"`
	ExpectedSalary     int64        `json:"expected_salary"`
	ExperienceYears    float64      `json:"experience_years"`
	Degree             string       `json:"degree"`
	AutoApply          bool         `json:"auto_apply"`
	ResumeURL          string       `json:"resume_url"`
	PhotoURL           string       `json:"photo_url"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// Education is one entry of a candidate's education history.
type Education struct {
	Degree     string `json:"degree"`
	Board      string `json:"board"`
	Institute  string `json:"institute"`
	Percentage string `json:"percentage"`
	YearFrom   int    `json:"year_from"`
	YearTo     int    `json:"year_to"`
}

// Experience is one entry of a candidate's work history.
type Experience struct {
	Company  string `json:"company"`
	Title    string `json:"title"`
	YearFrom int    `json:"year_from"`
	YearTo   int    `json:"year_to"`
	Current  bool   `json:"current"`
}

// EmployerStatus is a per-employer annotation on a candidate, keyed by
// (candidate, recruiter).
type EmployerStatus struct {
	CandidateID string    `json:"candidate_id"`
	RecruiterID string    `json:"recruiter_id"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
}
