package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/model"
	"jobboard/internal/notify"
	"jobboard/internal/repository"
)

// ApplicationService covers applying to jobs and the employer-side status
// workflow on received applications.
type ApplicationService interface {
	// Apply submits a candidate's application. At most one application
	// exists per (job, candidate) pair; a repeat attempt fails with
	// ErrAlreadyApplied.
	Apply(ctx context.Context, candidateID, jobID string, answers []model.Answer) (*model.Application, error)
	Get(ctx context.Context, id string) (*model.Application, error)
	UpdateStatus(ctx context.Context, employerID, applicationID, status string) error
}

type applicationService struct {
	repo       repository.ApplicationRepository
	jobs       repository.JobRepository
	candidates repository.CandidateRepository
	employers  repository.EmployerRepository
	notifier   *notify.Notifier
}

// NewApplicationService constructs an ApplicationService.
func NewApplicationService(repo repository.ApplicationRepository, jobs repository.JobRepository, candidates repository.CandidateRepository, employers repository.EmployerRepository, notifier *notify.Notifier) ApplicationService {
	return &applicationService{repo: repo, jobs: jobs, candidates: candidates, employers: employers, notifier: notifier}
}

func (s *applicationService) Apply(ctx context.Context, candidateID, jobID string, answers []model.Answer) (*model.Application, error) {
	if candidateID == "" || jobID == "" {
		return nil, ErrIDRequired
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if job.Status != model.JobOpen {
		return nil, ErrJobClosed
	}

	applied, err := s.repo.Exists(ctx, jobID, candidateID)
	if err != nil {
		return nil, fmt.Errorf("check existing application: %w", err)
	}
	if applied {
		return nil, ErrAlreadyApplied
	}

	now := time.Now().UTC()
	a := &model.Application{
		ID:          uuid.New().String(),
		JobID:       jobID,
		CandidateID: candidateID,
		EmployerID:  job.EmployerID,
		Answers:     answers,
		Status:      model.ApplicationPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	stored, err := s.repo.Create(ctx, a)
	if err != nil {
		// Unique index on (job, candidate) backstops the check above.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}

	s.confirm(ctx, stored, job)
	return stored, nil
}

// confirm enqueues the post-apply emails to both parties. Failures here
// never surface to the applicant.
func (s *applicationService) confirm(ctx context.Context, a *model.Application, job *model.Job) {
	if s.notifier == nil {
		return
	}
	if c, err := s.candidates.FindByID(ctx, a.CandidateID); err == nil {
		s.notifier.Enqueue(notify.Message{
			Kind:    notify.KindEmail,
			To:      c.Email,
			Subject: fmt.Sprintf("Application received: %s", job.Title),
			Body:    fmt.Sprintf("Hi %s,\n\nYour application for %s has been submitted.", c.Name, job.Title),
		})
	}
	if e, err := s.employers.FindByID(ctx, job.EmployerID); err == nil {
		s.notifier.Enqueue(notify.Message{
			Kind:    notify.KindEmail,
			To:      e.Email,
			Subject: fmt.Sprintf("New application for %s", job.Title),
			Body:    fmt.Sprintf("A new candidate applied to your listing %q.", job.Title),
		})
	}
}

func (s *applicationService) Get(ctx context.Context, id string) (*model.Application, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, employerID, applicationID, status string) error {
	switch status {
	case model.ApplicationPending, model.ApplicationShortlisted, model.ApplicationRejected, model.ApplicationHired:
	default:
		return ErrInvalidStatus
	}

	a, err := s.Get(ctx, applicationID)
	if err != nil {
		return err
	}
	if a.EmployerID != employerID {
		return ErrNotFound
	}
	if err := s.repo.UpdateStatus(ctx, applicationID, status); err != nil {
		return err
	}

	if s.notifier != nil && (status == model.ApplicationShortlisted || status == model.ApplicationHired) {
		if c, cerr := s.candidates.FindByID(ctx, a.CandidateID); cerr == nil {
			s.notifier.Enqueue(notify.Message{
				Kind:    notify.KindEmail,
				To:      c.Email,
				Subject: "Application update",
				Body:    fmt.Sprintf("Hi %s,\n\nYour application status changed to %s.", c.Name, status),
			})
		}
	}
	return nil
}
