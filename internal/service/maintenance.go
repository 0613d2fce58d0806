package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/model"
	"jobboard/internal/repository"
	"jobboard/internal/search"
)

// MaintenanceService runs the periodic housekeeping jobs. Every job is
// idempotent and reports how many records it touched, so a rerun after a
// missed schedule is safe.
type MaintenanceService interface {
	// ExpirePlans downgrades every subscription whose end date has passed.
	ExpirePlans(ctx context.Context) (int64, error)
	// ExpireJobs closes every open listing whose deadline has passed.
	ExpireJobs(ctx context.Context) (int64, error)
	// AutoApply submits applications for opted-in candidates to open jobs
	// matching their skills and preferred locations. Existing applications
	// are skipped. Returns the number of applications created.
	AutoApply(ctx context.Context) (int64, error)
}

type maintenanceService struct {
	employers  repository.EmployerRepository
	jobs       repository.JobRepository
	candidates repository.CandidateRepository
	apps       repository.ApplicationRepository
	now        func() time.Time
	enc        *json.Encoder
}

// NewMaintenanceService constructs a MaintenanceService.
func NewMaintenanceService(employers repository.EmployerRepository, jobs repository.JobRepository, candidates repository.CandidateRepository, apps repository.ApplicationRepository) MaintenanceService {
	return &maintenanceService{
		employers:  employers,
		jobs:       jobs,
		candidates: candidates,
		apps:       apps,
		now:        time.Now,
		enc:        json.NewEncoder(os.Stdout),
	}
}

func (s *maintenanceService) ExpirePlans(ctx context.Context) (int64, error) {
	n, err := s.employers.ExpirePlans(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("expire plans: %w", err)
	}
	s.logJob("expire_plans", n)
	return n, nil
}

func (s *maintenanceService) ExpireJobs(ctx context.Context) (int64, error) {
	n, err := s.jobs.ExpireOpenJobs(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("expire jobs: %w", err)
	}
	s.logJob("expire_jobs", n)
	return n, nil
}

func (s *maintenanceService) AutoApply(ctx context.Context) (int64, error) {
	candidates, err := s.candidates.ListAutoApply(ctx)
	if err != nil {
		return 0, fmt.Errorf("list auto-apply candidates: %w", err)
	}
	if len(candidates) == 0 {
		return 0, nil
	}
	jobs, err := s.jobs.ListOpen(ctx)
	if err != nil {
		return 0, fmt.Errorf("list open jobs: %w", err)
	}

	var created int64
	for _, c := range candidates {
		for _, j := range jobs {
			if !autoApplyMatch(&c, &j) {
				continue
			}
			exists, err := s.apps.Exists(ctx, j.ID, c.ID)
			if err != nil {
				return created, fmt.Errorf("check application: %w", err)
			}
			if exists {
				continue
			}
			now := s.now().UTC()
			_, err = s.apps.Create(ctx, &model.Application{
				ID:          uuid.New().String(),
				JobID:       j.ID,
				CandidateID: c.ID,
				EmployerID:  j.EmployerID,
				Status:      model.ApplicationPending,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
			if err != nil {
				// Another writer got there first; not a batch failure.
				if errors.Is(err, repository.ErrDuplicate) {
					continue
				}
				return created, fmt.Errorf("create application: %w", err)
			}
			created++
		}
	}
	s.logJob("auto_apply", created)
	return created, nil
}

// autoApplyMatch requires at least one shared skill, and a location match
// when the candidate stated location preferences.
func autoApplyMatch(c *model.Candidate, j *model.Job) bool {
	if search.Overlap(j.Skills, c.Skills) == 0 {
		return false
	}
	if len(c.PreferredLocations) == 0 {
		return true
	}
	for _, loc := range c.PreferredLocations {
		if strings.Contains(strings.ToLower(j.Location), strings.ToLower(loc)) {
			return true
		}
	}
	return false
}

func (s *maintenanceService) logJob(job string, affected int64) {
	_ = s.enc.Encode(map[string]any{
		"time":     s.now().UTC().Format(time.RFC3339Nano),
		"level":    "info",
		"msg":      "maintenance job completed",
		"job":      job,
		"affected": affected,
	})
}
