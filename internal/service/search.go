package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"jobboard/internal/model"
	"jobboard/internal/notify"
	"jobboard/internal/repository"
	"jobboard/internal/search"
)

// Contact actions an employer can take on a search result. Each one reveals
// the candidate's contact details, so each is quota-gated and recorded as a
// Viewed status.
const (
	ActionEmail    = "email"
	ActionPhone    = "phone"
	ActionWhatsApp = "whatsapp"
)

// CandidateSearchResult is the employer-facing search page: one page of
// candidates ranked by skill overlap, the total of the filtered population
// and, when the caller is an employer, status tallies over that population.
type CandidateSearchResult struct {
	Items        []model.Candidate `json:"data"`
	Total        int               `json:"total"`
	Page         int               `json:"page"`
	Limit        int               `json:"limit"`
	StatusCounts map[string]int    `json:"status_counts,omitempty"`
}

// ApplicationSearchResult is the employer's applications inbox page.
type ApplicationSearchResult struct {
	Items        []model.Application `json:"data"`
	Total        int                 `json:"total"`
	Page         int                 `json:"page"`
	Limit        int                 `json:"limit"`
	StatusCounts map[string]int      `json:"status_counts"`
}

// StatusUpdate is an employer's action on one candidate: either a direct
// status assignment or a contact action that implies Viewed.
type StatusUpdate struct {
	CandidateID string
	RecruiterID string
	// Status is one of the assignable statuses; empty when Action is set.
	Status string
	// Action is a contact action (email/phone/whatsapp); empty when Status
	// is set.
	Action string
	// Message is the body sent along with a contact action.
	Message string
}

// SearchService is the employer-side candidate discovery surface: filtered
// search with page-local ranking, the status workflow, and the resume-view
// quota gate in front of both.
type SearchService interface {
	// Candidates runs a filtered search. Page starts at 1; results within
	// the page are ordered by descending skill overlap with the requested
	// skills. When q.RecruiterID is set the result carries status counts
	// over the whole filtered population.
	Candidates(ctx context.Context, q repository.CandidateQuery, page, limit int) (*CandidateSearchResult, error)

	// Applications searches an employer's received applications.
	Applications(ctx context.Context, q repository.ApplicationQuery, page, limit int) (*ApplicationSearchResult, error)

	// UpdateCandidateStatus applies a status change or contact action. The
	// first interaction between an employer and a candidate consumes one
	// resume view; repeat interactions are free. Returns ErrQuotaExhausted
	// when the employer has no quota left for a first-time view.
	UpdateCandidateStatus(ctx context.Context, in StatusUpdate) error

	// ViewCandidate returns the full profile, consuming a resume view on
	// first access.
	ViewCandidate(ctx context.Context, recruiterID, candidateID string) (*model.Candidate, error)
}

type searchService struct {
	candidates repository.CandidateRepository
	apps       repository.ApplicationRepository
	employers  repository.EmployerRepository
	notifier   *notify.Notifier
}

// NewSearchService constructs a SearchService.
func NewSearchService(candidates repository.CandidateRepository, apps repository.ApplicationRepository, employers repository.EmployerRepository, notifier *notify.Notifier) SearchService {
	return &searchService{candidates: candidates, apps: apps, employers: employers, notifier: notifier}
}

func (s *searchService) Candidates(ctx context.Context, q repository.CandidateQuery, page, limit int) (*CandidateSearchResult, error) {
	page, limit = normalizePage(page, limit)
	q.Limit = limit
	q.Offset = (page - 1) * limit

	res, err := s.candidates.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}

	// Ranking is page-local: the database orders by recency, then the
	// fetched page is re-sorted by skill overlap. Ties keep their database
	// order.
	if len(q.Skills) > 0 {
		items := res.Items
		sort.SliceStable(items, func(i, j int) bool {
			return search.Overlap(q.Skills, items[i].Skills) > search.Overlap(q.Skills, items[j].Skills)
		})
	}

	out := &CandidateSearchResult{
		Items: res.Items,
		Total: res.Total,
		Page:  page,
		Limit: limit,
	}
	if q.RecruiterID != "" {
		counts, err := s.candidates.StatusCounts(ctx, q, q.RecruiterID)
		if err != nil {
			return nil, fmt.Errorf("status counts: %w", err)
		}
		out.StatusCounts = counts
	}
	return out, nil
}

func (s *searchService) Applications(ctx context.Context, q repository.ApplicationQuery, page, limit int) (*ApplicationSearchResult, error) {
	if q.EmployerID == "" {
		return nil, ErrIDRequired
	}
	page, limit = normalizePage(page, limit)
	q.Limit = limit
	q.Offset = (page - 1) * limit

	res, err := s.apps.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search applications: %w", err)
	}

	// Same page-local ranking as candidate search: the fetched page is
	// re-sorted by overlap with the requested skills, ties keep their
	// database order.
	if len(q.Skills) > 0 {
		items := res.Items
		sort.SliceStable(items, func(i, j int) bool {
			return search.Overlap(q.Skills, items[i].CandidateSkills) > search.Overlap(q.Skills, items[j].CandidateSkills)
		})
	}

	counts, err := s.apps.StatusCounts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	return &ApplicationSearchResult{
		Items:        res.Items,
		Total:        res.Total,
		Page:         page,
		Limit:        limit,
		StatusCounts: counts,
	}, nil
}

func (s *searchService) UpdateCandidateStatus(ctx context.Context, in StatusUpdate) error {
	if in.CandidateID == "" || in.RecruiterID == "" {
		return ErrIDRequired
	}

	status := in.Status
	if in.Action != "" {
		switch in.Action {
		case ActionEmail, ActionPhone, ActionWhatsApp:
			status = model.StatusViewed
		default:
			return ErrInvalidStatus
		}
	} else {
		switch status {
		case model.StatusViewed, model.StatusShortlisted, model.StatusRejected, model.StatusHold:
		default:
			return ErrInvalidStatus
		}
	}

	// Quota first: nothing about the candidate is revealed or recorded if
	// the employer is out of views.
	if _, err := s.consumeView(ctx, in.RecruiterID, in.CandidateID); err != nil {
		return err
	}

	if err := s.candidates.UpsertStatus(ctx, &model.EmployerStatus{
		CandidateID: in.CandidateID,
		RecruiterID: in.RecruiterID,
		Status:      status,
		UpdatedAt:   time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("upsert status: %w", err)
	}

	if in.Action != "" {
		s.contact(ctx, in)
	}
	return nil
}

func (s *searchService) ViewCandidate(ctx context.Context, recruiterID, candidateID string) (*model.Candidate, error) {
	if recruiterID == "" || candidateID == "" {
		return nil, ErrIDRequired
	}
	first, err := s.consumeView(ctx, recruiterID, candidateID)
	if err != nil {
		return nil, err
	}
	c, err := s.candidates.FindByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if first {
		err := s.candidates.UpsertStatus(ctx, &model.EmployerStatus{
			CandidateID: candidateID,
			RecruiterID: recruiterID,
			Status:      model.StatusViewed,
			UpdatedAt:   time.Now().UTC(),
		})
		if err != nil {
			return nil, fmt.Errorf("upsert status: %w", err)
		}
	}
	return c, nil
}

func (s *searchService) consumeView(ctx context.Context, recruiterID, candidateID string) (first bool, err error) {
	already, err := s.employers.ConsumeResumeView(ctx, recruiterID, candidateID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrQuotaExhausted):
			return false, ErrQuotaExhausted
		case errors.Is(err, sql.ErrNoRows):
			return false, ErrNotFound
		}
		return false, fmt.Errorf("consume resume view: %w", err)
	}
	return !already, nil
}

// contact dispatches the outbound message implied by a contact action.
func (s *searchService) contact(ctx context.Context, in StatusUpdate) {
	if s.notifier == nil {
		return
	}
	c, err := s.candidates.FindByID(ctx, in.CandidateID)
	if err != nil {
		return
	}
	e, err := s.employers.FindByID(ctx, in.RecruiterID)
	if err != nil {
		return
	}

	body := in.Message
	if body == "" {
		body = fmt.Sprintf("%s would like to get in touch about an opportunity.", e.CompanyName)
	}
	switch in.Action {
	case ActionEmail:
		s.notifier.Enqueue(notify.Message{
			Kind:    notify.KindEmail,
			To:      c.Email,
			Subject: fmt.Sprintf("%s is interested in your profile", e.CompanyName),
			Body:    body,
		})
	case ActionPhone:
		s.notifier.Enqueue(notify.Message{Kind: notify.KindSMS, To: c.Phone, Body: body})
	case ActionWhatsApp:
		s.notifier.Enqueue(notify.Message{Kind: notify.KindWhatsApp, To: c.Phone, Body: body})
	}
}

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return page, limit
}
