package model

import "time"

// Subscription plan and status values.
const (
	PlanFree = "Free"

	SubscriptionActive  = "Active"
	SubscriptionExpired = "Expired"
)

// Employer represents a recruiter/company account with an embedded
// subscription. AllowedResume is the remaining resume-view quota and never
// goes below zero; once it reaches zero the subscription flips to
// Expired/Free until the plan is renewed.
type Employer struct {
	ID                 string     `json:"id"`
	CompanyName        string     `json:"company_name"`
	ContactName        string     `json:"contact_name"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	PasswordHash       string     `json:"-"`
	Industry           string     `json:"industry"`
	Location           string     `json:"location"`
	Plan               string     `json:"plan"`
	SubscriptionStatus string     `json:"subscription_status"`
	PlanStart          *time.Time `json:"plan_start,omitempty"`
	PlanEnd            *time.Time `json:"plan_end,omitempty"`
	AllowedResume      int        `json:"allowed_resume"`
	ViewedResume       int        `json:"viewed_resume"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
