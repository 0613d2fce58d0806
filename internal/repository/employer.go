package repository

import (
	"context"
	"errors"
	"time"

	"jobboard/internal/model"
)

// ErrQuotaExhausted is returned by ConsumeResumeView when the subscription
// is inactive or allowed_resume is already zero.
var ErrQuotaExhausted = errors.New("resume view quota exhausted")

// EmployerRepository defines data access for employers and their
// subscription state.
type EmployerRepository interface {
	Create(ctx context.Context, e *model.Employer) (*model.Employer, error)
	FindByID(ctx context.Context, id string) (*model.Employer, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*model.Employer, error)
	Update(ctx context.Context, e *model.Employer) error

	// ApplyPlan activates a subscription after a verified payment.
	ApplyPlan(ctx context.Context, id, plan string, allowedResume int, start, end time.Time) error

	// ConsumeResumeView runs the quota gate in one transaction: if the
	// employer already viewed the candidate it succeeds without consuming
	// quota; otherwise it records the view and decrements allowed_resume,
	// flipping the subscription to Expired/Free when the decrement reaches
	// zero. Returns ErrQuotaExhausted when no quota remains.
	ConsumeResumeView(ctx context.Context, employerID, candidateID string) (alreadyViewed bool, err error)

	// ExpirePlans flips every subscription whose end date has passed and
	// whose status is not already Expired. Idempotent; returns the number of
	// rows changed.
	ExpirePlans(ctx context.Context, now time.Time) (int64, error)
}
