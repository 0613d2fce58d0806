package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jobboard/internal/auth"
	"jobboard/internal/model"
	"jobboard/internal/notify"
	"jobboard/internal/repository"
)

// AuthResult carries the issued token plus the account identity the
// frontend needs right after login/signup.
type AuthResult struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// CandidateSignup is the minimal registration payload; the rest of the
// profile is filled in through the wizard afterwards.
type CandidateSignup struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// EmployerSignup registers a recruiter account. New employers start on the
// Free plan with no resume-view quota.
type EmployerSignup struct {
	CompanyName string
	ContactName string
	Email       string
	Phone       string
	Industry    string
	Location    string
	Password    string
}

// AuthService defines signup and login for both account types.
type AuthService interface {
	RegisterCandidate(ctx context.Context, in CandidateSignup) (*AuthResult, error)
	RegisterEmployer(ctx context.Context, in EmployerSignup) (*AuthResult, error)
	LoginCandidate(ctx context.Context, email, password string) (*AuthResult, error)
	LoginEmployer(ctx context.Context, email, password string) (*AuthResult, error)
}

type authService struct {
	candidates repository.CandidateRepository
	employers  repository.EmployerRepository
	tokens     *auth.TokenIssuer
	notifier   *notify.Notifier
}

// NewAuthService constructs an AuthService.
func NewAuthService(candidates repository.CandidateRepository, employers repository.EmployerRepository, tokens *auth.TokenIssuer, notifier *notify.Notifier) AuthService {
	return &authService{candidates: candidates, employers: employers, tokens: tokens, notifier: notifier}
}

func (s *authService) RegisterCandidate(ctx context.Context, in CandidateSignup) (*AuthResult, error) {
	taken, err := s.candidates.ExistsByEmailOrPhone(ctx, in.Email, in.Phone)
	if err != nil {
		return nil, fmt.Errorf("check existing account: %w", err)
	}
	if taken {
		return nil, ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	c := &model.Candidate{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	stored, err := s.candidates.Create(ctx, c)
	if err != nil {
		// The unique index is the backstop for the racy window between
		// the existence check and the insert.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAccountExists
		}
		return nil, err
	}

	s.welcome(stored.Email, stored.Name)
	return s.result(stored.ID, stored.Name, auth.RoleCandidate)
}

func (s *authService) RegisterEmployer(ctx context.Context, in EmployerSignup) (*AuthResult, error) {
	taken, err := s.employers.ExistsByEmailOrPhone(ctx, in.Email, in.Phone)
	if err != nil {
		return nil, fmt.Errorf("check existing account: %w", err)
	}
	if taken {
		return nil, ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	e := &model.Employer{
		ID:                 uuid.New().String(),
		CompanyName:        in.CompanyName,
		ContactName:        in.ContactName,
		Email:              in.Email,
		Phone:              in.Phone,
		Industry:           in.Industry,
		Location:           in.Location,
		PasswordHash:       string(hash),
		Plan:               model.PlanFree,
		SubscriptionStatus: model.SubscriptionExpired,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	stored, err := s.employers.Create(ctx, e)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAccountExists
		}
		return nil, err
	}

	s.welcome(stored.Email, stored.ContactName)
	return s.result(stored.ID, stored.CompanyName, auth.RoleEmployer)
}

func (s *authService) LoginCandidate(ctx context.Context, email, password string) (*AuthResult, error) {
	c, err := s.candidates.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.result(c.ID, c.Name, auth.RoleCandidate)
}

func (s *authService) LoginEmployer(ctx context.Context, email, password string) (*AuthResult, error) {
	e, err := s.employers.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.result(e.ID, e.CompanyName, auth.RoleEmployer)
}

func (s *authService) result(id, name, role string) (*AuthResult, error) {
	token, err := s.tokens.Issue(id, role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, ID: id, Name: name, Role: role}, nil
}

func (s *authService) welcome(email, name string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Enqueue(notify.Message{
		Kind:    notify.KindEmail,
		To:      email,
		Subject: "Welcome aboard",
		Body:    fmt.Sprintf("Hi %s,\n\nYour account has been created. Complete your profile to get started.", name),
	})
}
