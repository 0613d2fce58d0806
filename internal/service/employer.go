package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobboard/internal/model"
	"jobboard/internal/repository"
)

// EmployerUpdate carries the mutable employer profile fields.
type EmployerUpdate struct {
	CompanyName *string
	ContactName *string
	Industry    *string
	Location    *string
}

// EmployerService covers the employer's own account view and profile edits.
// Subscription changes go through PaymentService; quota consumption through
// SearchService.
type EmployerService interface {
	Get(ctx context.Context, id string) (*model.Employer, error)
	UpdateProfile(ctx context.Context, id string, in EmployerUpdate) (*model.Employer, error)
}

type employerService struct {
	repo repository.EmployerRepository
}

// NewEmployerService constructs an EmployerService.
func NewEmployerService(repo repository.EmployerRepository) EmployerService {
	return &employerService{repo: repo}
}

func (s *employerService) Get(ctx context.Context, id string) (*model.Employer, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *employerService) UpdateProfile(ctx context.Context, id string, in EmployerUpdate) (*model.Employer, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CompanyName != nil {
		e.CompanyName = *in.CompanyName
	}
	if in.ContactName != nil {
		e.ContactName = *in.ContactName
	}
	if in.Industry != nil {
		e.Industry = *in.Industry
	}
	if in.Location != nil {
		e.Location = *in.Location
	}
	e.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
