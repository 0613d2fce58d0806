package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/model"
	"jobboard/internal/repository"
)

// ImportSummary reports the outcome of a bulk reference-data import.
type ImportSummary struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// LookupService manages the admin reference tables and their bulk import.
type LookupService interface {
	Create(ctx context.Context, kind, value, label string) (*model.Lookup, error)
	Update(ctx context.Context, l *model.Lookup) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q repository.LookupQuery) (*repository.PageResult[model.Lookup], error)

	// Import inserts rows of (value, label) pairs for one kind, skipping
	// values that already exist. Rows with an empty value are skipped.
	Import(ctx context.Context, kind string, rows [][]string) (*ImportSummary, error)
}

type lookupService struct {
	repo repository.LookupRepository
}

// NewLookupService constructs a LookupService.
func NewLookupService(repo repository.LookupRepository) LookupService {
	return &lookupService{repo: repo}
}

func (s *lookupService) Create(ctx context.Context, kind, value, label string) (*model.Lookup, error) {
	if !model.ValidLookupKind(kind) {
		return nil, ErrInvalidKind
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, errors.New("value is required")
	}
	if label == "" {
		label = value
	}
	l := &model.Lookup{
		ID:        uuid.New().String(),
		Kind:      kind,
		Value:     value,
		Label:     label,
		CreatedAt: time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, l)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%s %q: %w", kind, value, repository.ErrDuplicate)
		}
		return nil, err
	}
	return stored, nil
}

func (s *lookupService) Update(ctx context.Context, l *model.Lookup) error {
	if l.ID == "" {
		return ErrIDRequired
	}
	return s.repo.Update(ctx, l)
}

func (s *lookupService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return s.repo.Delete(ctx, id)
}

func (s *lookupService) List(ctx context.Context, q repository.LookupQuery) (*repository.PageResult[model.Lookup], error) {
	if q.Kind != "" && !model.ValidLookupKind(q.Kind) {
		return nil, ErrInvalidKind
	}
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return s.repo.List(ctx, q)
}

func (s *lookupService) Import(ctx context.Context, kind string, rows [][]string) (*ImportSummary, error) {
	if !model.ValidLookupKind(kind) {
		return nil, ErrInvalidKind
	}

	sum := &ImportSummary{}
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		value := strings.TrimSpace(row[0])
		if value == "" {
			sum.Skipped++
			continue
		}
		label := value
		if len(row) > 1 && strings.TrimSpace(row[1]) != "" {
			label = strings.TrimSpace(row[1])
		}

		inserted, err := s.repo.InsertIfAbsent(ctx, &model.Lookup{
			ID:        uuid.New().String(),
			Kind:      kind,
			Value:     value,
			Label:     label,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			return sum, fmt.Errorf("import %s row %q: %w", kind, value, err)
		}
		if inserted {
			sum.Inserted++
		} else {
			sum.Skipped++
		}
	}
	return sum, nil
}
