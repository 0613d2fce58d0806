package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/model"
	"jobboard/internal/repository"
	"jobboard/internal/storage"
)

// ProfileUpdate carries one wizard step's worth of profile fields. Nil
// pointers and nil slices mean "not part of this step" and leave the stored
// value untouched; the frontend submits the wizard one section at a time.
type ProfileUpdate struct {
	Name               *string
	Title              *string
	Gender             *string
	DateOfBirth        *time.Time
	Industry           *string
	Skills             []string
	PreferredLocations []string
	Education          []model.Education
	Experience         []model.Experience
	JobType            *string
	ExpectedSalary     *int64
	ExperienceYears    *float64
	Degree             *string
	AutoApply          *bool
}

// CandidateService covers the candidate's own profile: wizard updates, file
// uploads, saved jobs and application history.
type CandidateService interface {
	Get(ctx context.Context, id string) (*model.Candidate, error)
	UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*model.Candidate, error)

	// UploadResume stores the file and records its public URL on the
	// profile, deleting the previously stored resume if any.
	UploadResume(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (string, error)
	UploadPhoto(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (string, error)

	SaveJob(ctx context.Context, candidateID, jobID string) error
	ListSavedJobs(ctx context.Context, candidateID string) ([]model.Job, error)
	ListApplications(ctx context.Context, candidateID string, limit, offset int) (*repository.PageResult[model.Application], error)
}

type candidateService struct {
	repo  repository.CandidateRepository
	jobs  repository.JobRepository
	apps  repository.ApplicationRepository
	store storage.Storage
}

// NewCandidateService constructs a CandidateService.
func NewCandidateService(repo repository.CandidateRepository, jobs repository.JobRepository, apps repository.ApplicationRepository, store storage.Storage) CandidateService {
	return &candidateService{repo: repo, jobs: jobs, apps: apps, store: store}
}

func (s *candidateService) Get(ctx context.Context, id string) (*model.Candidate, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *candidateService) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*model.Candidate, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Title != nil {
		c.Title = *in.Title
	}
	if in.Gender != nil {
		c.Gender = *in.Gender
	}
	if in.DateOfBirth != nil {
		c.DateOfBirth = in.DateOfBirth
	}
	if in.Industry != nil {
		c.Industry = *in.Industry
	}
	if in.Skills != nil {
		c.Skills = in.Skills
	}
	if in.PreferredLocations != nil {
		c.PreferredLocations = in.PreferredLocations
	}
	if in.Education != nil {
		c.Education = in.Education
	}
	if in.Experience != nil {
		c.Experience = in.Experience
	}
	if in.JobType != nil {
		c.JobType = *in.JobType
	}
	if in.ExpectedSalary != nil {
		c.ExpectedSalary = *in.ExpectedSalary
	}
	if in.ExperienceYears != nil {
		c.ExperienceYears = *in.ExperienceYears
	}
	if in.Degree != nil {
		c.Degree = *in.Degree
	}
	if in.AutoApply != nil {
		c.AutoApply = *in.AutoApply
	}

	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *candidateService) UploadResume(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (string, error) {
	return s.uploadFile(ctx, id, "resumes", r, filename, contentType, size, true)
}

func (s *candidateService) UploadPhoto(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (string, error) {
	return s.uploadFile(ctx, id, "photos", r, filename, contentType, size, false)
}

func (s *candidateService) uploadFile(ctx context.Context, id, prefix string, r io.Reader, filename, contentType string, size int64, isResume bool) (string, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(filename)
	key := filepath.ToSlash(filepath.Join(prefix, uuid.New().String()+ext))
	if _, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata:    map[string]string{"original-filename": filename},
	}); err != nil {
		return "", fmt.Errorf("upload to storage: %w", err)
	}

	url := s.store.PublicURL(key)
	prev := c.PhotoURL
	resumeURL, photoURL := "", url
	if isResume {
		prev = c.ResumeURL
		resumeURL, photoURL = url, ""
	}

	if err := s.repo.UpdateFiles(ctx, id, resumeURL, photoURL); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return "", fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return "", fmt.Errorf("db save failed: %w", err)
	}

	// Best effort: the replaced file is orphaned otherwise.
	if prev != "" {
		if oldKey, err := s.store.KeyFromURL(prev); err == nil {
			_ = s.store.Delete(ctx, oldKey)
		}
	}
	return url, nil
}

func (s *candidateService) SaveJob(ctx context.Context, candidateID, jobID string) error {
	if candidateID == "" || jobID == "" {
		return ErrIDRequired
	}
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.SaveJob(ctx, candidateID, jobID)
}

func (s *candidateService) ListSavedJobs(ctx context.Context, candidateID string) ([]model.Job, error) {
	if candidateID == "" {
		return nil, ErrIDRequired
	}
	return s.repo.ListSavedJobs(ctx, candidateID)
}

func (s *candidateService) ListApplications(ctx context.Context, candidateID string, limit, offset int) (*repository.PageResult[model.Application], error) {
	if candidateID == "" {
		return nil, ErrIDRequired
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.apps.ListByCandidate(ctx, candidateID, repository.PageQuery{Limit: limit, Offset: offset})
}
