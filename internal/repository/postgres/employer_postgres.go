package postgres

import (
	"context"
	"database/sql"
	"time"

	"jobboard/internal/model"
	"jobboard/internal/repository"
)

// EmployerPostgres is a PostgreSQL implementation of
// repository.EmployerRepository.
type EmployerPostgres struct {
	db *sql.DB
}

// NewEmployerPostgres creates a new EmployerPostgres repository.
func NewEmployerPostgres(db *sql.DB) *EmployerPostgres {
	return &EmployerPostgres{db: db}
}

var _ repository.EmployerRepository = (*EmployerPostgres)(nil)

const employerColumns = `id, company_name, contact_name, email, phone, password_hash, industry,
		location, plan, subscription_status, plan_start, plan_end, allowed_resume,
		viewed_resume, created_at, updated_at`

func scanEmployer(row rowScanner) (*model.Employer, error) {
	var (
		e          model.Employer
		start, end sql.NullTime
	)
	if err := row.Scan(
		&e.ID, &e.CompanyName, &e.ContactName, &e.Email, &e.Phone, &e.PasswordHash, &e.Industry,
		&e.Location, &e.Plan, &e.SubscriptionStatus, &start, &end, &e.AllowedResume,
		&e.ViewedResume, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if start.Valid {
		t := start.Time
		e.PlanStart = &t
	}
	if end.Valid {
		t := end.Time
		e.PlanEnd = &t
	}
	return &e, nil
}

func (r *EmployerPostgres) Create(ctx context.Context, e *model.Employer) (*model.Employer, error) {
	q := `
		INSERT INTO employers (id, company_name, contact_name, email, phone, password_hash, industry,
			location, plan, subscription_status, plan_start, plan_end, allowed_resume,
			viewed_resume, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + employerColumns
	row := r.db.QueryRowContext(ctx, q,
		e.ID, e.CompanyName, e.ContactName, e.Email, e.Phone, e.PasswordHash, e.Industry,
		e.Location, e.Plan, e.SubscriptionStatus, nullTime(e.PlanStart), nullTime(e.PlanEnd),
		e.AllowedResume, e.ViewedResume, e.CreatedAt, e.UpdatedAt,
	)
	out, err := scanEmployer(row)
	if err != nil {
		return nil, mapDuplicate(err)
	}
	return out, nil
}

func (r *EmployerPostgres) FindByID(ctx context.Context, id string) (*model.Employer, error) {
	q := `SELECT ` + employerColumns + ` FROM employers WHERE id = $1`
	return scanEmployer(r.db.QueryRowContext(ctx, q, id))
}

func (r *EmployerPostgres) FindByEmail(ctx context.Context, email string) (*model.Employer, error) {
	q := `SELECT ` + employerColumns + ` FROM employers WHERE email = $1`
	return scanEmployer(r.db.QueryRowContext(ctx, q, email))
}

func (r *EmployerPostgres) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM employers WHERE email = $1 OR phone = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, email, phone).Scan(&exists)
	return exists, err
}

func (r *EmployerPostgres) Update(ctx context.Context, e *model.Employer) error {
	const q = `
		UPDATE employers
		SET company_name = $2, contact_name = $3, industry = $4, location = $5, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, e.ID, e.CompanyName, e.ContactName, e.Industry, e.Location)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *EmployerPostgres) ApplyPlan(ctx context.Context, id, plan string, allowedResume int, start, end time.Time) error {
	const q = `
		UPDATE employers
		SET plan = $2, subscription_status = $3, plan_start = $4, plan_end = $5,
			allowed_resume = $6, viewed_resume = 0, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, id, plan, model.SubscriptionActive, start, end, allowedResume)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ConsumeResumeView runs the quota gate in a single transaction. Recording
// the view and decrementing the quota cannot diverge: a failure on either
// side rolls back both.
func (r *EmployerPostgres) ConsumeResumeView(ctx context.Context, employerID, candidateID string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	// Repeat views of the same candidate are free.
	const insertView = `
		INSERT INTO resume_views (employer_id, candidate_id)
		VALUES ($1, $2)
		ON CONFLICT (employer_id, candidate_id) DO NOTHING
	`
	res, err := tx.ExecContext(ctx, insertView, employerID, candidateID)
	if err != nil {
		// An unknown candidate id trips the FK and reads as not-found.
		return false, mapMissingRef(err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if inserted == 0 {
		return true, tx.Commit()
	}

	// First view: decrement quota, flipping the subscription to Expired/Free
	// when the last view is consumed. The guard keeps allowed_resume >= 0.
	const decrement = `
		UPDATE employers
		SET allowed_resume = allowed_resume - 1,
			viewed_resume = viewed_resume + 1,
			subscription_status = CASE WHEN allowed_resume - 1 = 0 THEN $2 ELSE subscription_status END,
			plan = CASE WHEN allowed_resume - 1 = 0 THEN $3 ELSE plan END,
			updated_at = now()
		WHERE id = $1 AND subscription_status = $4 AND allowed_resume > 0
	`
	res, err = tx.ExecContext(ctx, decrement,
		employerID, model.SubscriptionExpired, model.PlanFree, model.SubscriptionActive)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, repository.ErrQuotaExhausted
	}

	return false, tx.Commit()
}

func (r *EmployerPostgres) ExpirePlans(ctx context.Context, now time.Time) (int64, error) {
	const q = `
		UPDATE employers
		SET plan = $1, subscription_status = $2, allowed_resume = 0, viewed_resume = 0, updated_at = now()
		WHERE plan_end IS NOT NULL AND plan_end < $3 AND subscription_status <> $2
	`
	res, err := r.db.ExecContext(ctx, q, model.PlanFree, model.SubscriptionExpired, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
