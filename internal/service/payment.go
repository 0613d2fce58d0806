package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobboard/internal/model"
	"jobboard/internal/notify"
	"jobboard/internal/payment"
	"jobboard/internal/repository"
)

// Plan describes one purchasable subscription tier. Amount is in the
// currency's minor unit (paise).
type Plan struct {
	Name          string `json:"name"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	DurationDays  int    `json:"duration_days"`
	AllowedResume int    `json:"allowed_resume"`
}

// Plans is the subscription catalog, keyed by plan name.
var Plans = map[string]Plan{
	"Silver":   {Name: "Silver", Amount: 99900, Currency: "INR", DurationDays: 30, AllowedResume: 50},
	"Gold":     {Name: "Gold", Amount: 249900, Currency: "INR", DurationDays: 90, AllowedResume: 200},
	"Platinum": {Name: "Platinum", Amount: 499900, Currency: "INR", DurationDays: 365, AllowedResume: 1000},
}

var ErrUnknownPlan = errors.New("unknown subscription plan")

// PaymentConfirmation is the gateway callback payload forwarded by the
// frontend after checkout.
type PaymentConfirmation struct {
	OrderID   string
	PaymentID string
	Signature string
	Plan      string
}

// PaymentService sells subscription plans: it creates gateway orders and,
// on a verified callback, activates the purchased plan.
type PaymentService interface {
	ListPlans() []Plan
	// CreateOrder opens a gateway order for the named plan.
	CreateOrder(ctx context.Context, employerID, planName string) (*payment.Order, error)
	// Confirm verifies the callback signature and activates the plan. A bad
	// signature returns ErrPaymentFailed and changes nothing.
	Confirm(ctx context.Context, employerID string, in PaymentConfirmation) (*model.Employer, error)
}

type paymentService struct {
	gateway   payment.Gateway
	employers repository.EmployerRepository
	notifier  *notify.Notifier
	now       func() time.Time
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(gateway payment.Gateway, employers repository.EmployerRepository, notifier *notify.Notifier) PaymentService {
	return &paymentService{gateway: gateway, employers: employers, notifier: notifier, now: time.Now}
}

func (s *paymentService) ListPlans() []Plan {
	out := make([]Plan, 0, len(Plans))
	for _, name := range []string{"Silver", "Gold", "Platinum"} {
		out = append(out, Plans[name])
	}
	return out
}

func (s *paymentService) CreateOrder(ctx context.Context, employerID, planName string) (*payment.Order, error) {
	if employerID == "" {
		return nil, ErrIDRequired
	}
	plan, ok := Plans[planName]
	if !ok {
		return nil, ErrUnknownPlan
	}
	receipt := fmt.Sprintf("plan-%s-%d", employerID, s.now().Unix())
	order, err := s.gateway.CreateOrder(plan.Amount, plan.Currency, receipt)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

func (s *paymentService) Confirm(ctx context.Context, employerID string, in PaymentConfirmation) (*model.Employer, error) {
	if employerID == "" {
		return nil, ErrIDRequired
	}
	plan, ok := Plans[in.Plan]
	if !ok {
		return nil, ErrUnknownPlan
	}
	if err := s.gateway.VerifySignature(in.OrderID, in.PaymentID, in.Signature); err != nil {
		return nil, ErrPaymentFailed
	}

	start := s.now().UTC()
	end := start.AddDate(0, 0, plan.DurationDays)
	if err := s.employers.ApplyPlan(ctx, employerID, plan.Name, plan.AllowedResume, start, end); err != nil {
		return nil, fmt.Errorf("apply plan: %w", err)
	}

	e, err := s.employers.FindByID(ctx, employerID)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.Enqueue(notify.Message{
			Kind:    notify.KindEmail,
			To:      e.Email,
			Subject: fmt.Sprintf("%s plan activated", plan.Name),
			Body:    fmt.Sprintf("Your %s plan is active until %s. Resume views available: %d.", plan.Name, end.Format("2 Jan 2006"), plan.AllowedResume),
		})
	}
	return e, nil
}
