package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"jobboard/internal/model"
	"jobboard/internal/notify"
	"jobboard/internal/repository"
	"jobboard/internal/search"
)

// JobInput is the employer-supplied listing payload.
type JobInput struct {
	Title         string
	Description   string
	Skills        []string
	Degree        string
	JobType       string
	Location      string
	SalaryMin     int64
	SalaryMax     int64
	ExperienceMin float64
	ExperienceMax float64
	Questions     []string
	Deadline      *time.Time
}

// JobService covers listing lifecycle and public job search.
type JobService interface {
	Create(ctx context.Context, employerID string, in JobInput) (*model.Job, error)
	Update(ctx context.Context, employerID, jobID string, in JobInput) (*model.Job, error)
	Close(ctx context.Context, employerID, jobID string) error
	Get(ctx context.Context, id string) (*model.Job, error)
	GetBySlug(ctx context.Context, slug string) (*model.Job, error)
	Search(ctx context.Context, q repository.JobQuery) (*repository.PageResult[model.Job], error)
}

type jobService struct {
	repo       repository.JobRepository
	candidates repository.CandidateRepository
	notifier   *notify.Notifier
}

// NewJobService constructs a JobService.
func NewJobService(repo repository.JobRepository, candidates repository.CandidateRepository, notifier *notify.Notifier) JobService {
	return &jobService{repo: repo, candidates: candidates, notifier: notifier}
}

func (s *jobService) Create(ctx context.Context, employerID string, in JobInput) (*model.Job, error) {
	if employerID == "" {
		return nil, ErrIDRequired
	}

	slugVal, err := s.uniqueSlug(ctx, in.Title)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	j := &model.Job{
		ID:            uuid.New().String(),
		EmployerID:    employerID,
		Title:         in.Title,
		Slug:          slugVal,
		Description:   in.Description,
		Skills:        in.Skills,
		Degree:        in.Degree,
		JobType:       in.JobType,
		Location:      in.Location,
		SalaryMin:     in.SalaryMin,
		SalaryMax:     in.SalaryMax,
		ExperienceMin: in.ExperienceMin,
		ExperienceMax: in.ExperienceMax,
		Questions:     in.Questions,
		Deadline:      in.Deadline,
		Status:        model.JobOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	stored, err := s.repo.Create(ctx, j)
	if err != nil {
		return nil, err
	}

	// Matching alerts go out after the listing is committed; the queue
	// keeps them off the request path.
	s.notifyMatches(ctx, stored)
	return stored, nil
}

// uniqueSlug derives a URL slug from the title and resolves collisions by
// appending an incrementing numeric suffix.
func (s *jobService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	candidate := base
	for i := 1; ; i++ {
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *jobService) notifyMatches(ctx context.Context, j *model.Job) {
	if s.notifier == nil {
		return
	}
	matched, err := s.candidates.Search(ctx, repository.CandidateQuery{
		Skills: j.Skills,
		Limit:  100,
	})
	if err != nil {
		return
	}
	for _, c := range matched.Items {
		if search.Overlap(j.Skills, c.Skills) == 0 {
			continue
		}
		s.notifier.Enqueue(notify.Message{
			Kind:    notify.KindEmail,
			To:      c.Email,
			Subject: fmt.Sprintf("New job matching your profile: %s", j.Title),
			Body:    fmt.Sprintf("Hi %s,\n\nA new listing matches your skills: %s (%s).\nSkills: %s", c.Name, j.Title, j.Location, strings.Join(j.Skills, ", ")),
		})
	}
}

func (s *jobService) Update(ctx context.Context, employerID, jobID string, in JobInput) (*model.Job, error) {
	j, err := s.owned(ctx, employerID, jobID)
	if err != nil {
		return nil, err
	}

	j.Title = in.Title
	j.Description = in.Description
	j.Skills = in.Skills
	j.Degree = in.Degree
	j.JobType = in.JobType
	j.Location = in.Location
	j.SalaryMin = in.SalaryMin
	j.SalaryMax = in.SalaryMax
	j.ExperienceMin = in.ExperienceMin
	j.ExperienceMax = in.ExperienceMax
	j.Questions = in.Questions
	j.Deadline = in.Deadline
	j.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *jobService) Close(ctx context.Context, employerID, jobID string) error {
	if _, err := s.owned(ctx, employerID, jobID); err != nil {
		return err
	}
	return s.repo.UpdateStatus(ctx, jobID, model.JobClosed)
}

// owned loads the listing and checks it belongs to the employer. A listing
// owned by someone else reads the same as a missing one.
func (s *jobService) owned(ctx context.Context, employerID, jobID string) (*model.Job, error) {
	if employerID == "" || jobID == "" {
		return nil, ErrIDRequired
	}
	j, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if j.EmployerID != employerID {
		return nil, ErrNotFound
	}
	return j, nil
}

func (s *jobService) Get(ctx context.Context, id string) (*model.Job, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	j, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return j, nil
}

func (s *jobService) GetBySlug(ctx context.Context, slugVal string) (*model.Job, error) {
	if slugVal == "" {
		return nil, ErrIDRequired
	}
	j, err := s.repo.FindBySlug(ctx, slugVal)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return j, nil
}

func (s *jobService) Search(ctx context.Context, q repository.JobQuery) (*repository.PageResult[model.Job], error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.Status == "" {
		q.Status = model.JobOpen
	}
	return s.repo.Search(ctx, q)
}
