package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"jobboard/internal/model"
	"jobboard/internal/repository"
	"jobboard/internal/search"
)

// ApplicationPostgres is a PostgreSQL implementation of
// repository.ApplicationRepository.
type ApplicationPostgres struct {
	db *sql.DB
}

// NewApplicationPostgres creates a new ApplicationPostgres repository.
func NewApplicationPostgres(db *sql.DB) *ApplicationPostgres {
	return &ApplicationPostgres{db: db}
}

var _ repository.ApplicationRepository = (*ApplicationPostgres)(nil)

const applicationColumns = `id, job_id, candidate_id, employer_id, answers, status, created_at, updated_at`

func scanApplication(row rowScanner) (*model.Application, error) {
	var (
		a       model.Application
		answers []byte
	)
	if err := row.Scan(
		&a.ID, &a.JobID, &a.CandidateID, &a.EmployerID, &answers, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := scanJSON(answers, &a.Answers); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationPostgres) Create(ctx context.Context, a *model.Application) (*model.Application, error) {
	answers, err := jsonb(a.Answers)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO applications (id, job_id, candidate_id, employer_id, answers, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + applicationColumns
	row := r.db.QueryRowContext(ctx, q,
		a.ID, a.JobID, a.CandidateID, a.EmployerID, answers, a.Status, a.CreatedAt, a.UpdatedAt,
	)
	out, err := scanApplication(row)
	if err != nil {
		return nil, mapDuplicate(err)
	}
	return out, nil
}

func (r *ApplicationPostgres) FindByID(ctx context.Context, id string) (*model.Application, error) {
	q := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	return scanApplication(r.db.QueryRowContext(ctx, q, id))
}

func (r *ApplicationPostgres) Exists(ctx context.Context, jobID, candidateID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM applications WHERE job_id = $1 AND candidate_id = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, jobID, candidateID).Scan(&exists)
	return exists, err
}

func (r *ApplicationPostgres) ListByCandidate(ctx context.Context, candidateID string, pq repository.PageQuery) (*repository.PageResult[model.Application], error) {
	var total int
	const countQ = `SELECT COUNT(*) FROM applications WHERE candidate_id = $1`
	if err := r.db.QueryRowContext(ctx, countQ, candidateID).Scan(&total); err != nil {
		return nil, err
	}

	q := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE candidate_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, q, candidateID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Application]{Items: items, Total: total}, nil
}

func (r *ApplicationPostgres) UpdateStatus(ctx context.Context, id, status string) error {
	const q = `UPDATE applications SET status = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, status)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// buildApplicationFilter composes the employer-scoped application filter.
// Candidate-profile criteria match through the joined candidates table.
func buildApplicationFilter(q repository.ApplicationQuery) *search.Builder {
	b := search.NewBuilder()
	b.Equals("a.employer_id", q.EmployerID)
	b.Equals("a.job_id", q.JobID)
	b.Equals("a.status", q.Status)
	for _, skill := range q.Skills {
		s := skill
		b.Or(func(or *search.Group) {
			or.JSONTextMatch("c.skills", s)
			or.Contains("c.title", s)
			or.Cond("EXISTS (SELECT 1 FROM jsonb_array_elements(c.experience) AS exp WHERE exp->>'title' ILIKE %s)", search.LikePattern(s))
		})
	}
	for _, part := range search.SplitLocation(q.Location) {
		b.JSONTextMatch("c.preferred_locations", part)
	}
	b.Equals("c.gender", q.Gender)
	b.Equals("c.degree", q.Degree)
	b.UpdatedSince("a.updated_at", q.UpdatedSince)
	return b
}

func (r *ApplicationPostgres) Search(ctx context.Context, q repository.ApplicationQuery) (*repository.PageResult[model.Application], error) {
	b := buildApplicationFilter(q)
	clause, args := b.Clause()

	const from = ` FROM applications a JOIN candidates c ON c.id = a.candidate_id WHERE `

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from+clause, args...).Scan(&total); err != nil {
		return nil, err
	}

	listQ := fmt.Sprintf(
		`SELECT a.id, a.job_id, a.candidate_id, a.employer_id, a.answers, a.status, a.created_at, a.updated_at, c.skills`+
			from+clause+` ORDER BY a.created_at DESC, a.id DESC LIMIT $%d OFFSET $%d`,
		b.ArgOffset(), b.ArgOffset()+1,
	)
	rows, err := r.db.QueryContext(ctx, listQ, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Application, 0)
	for rows.Next() {
		var (
			a       model.Application
			answers []byte
			skills  []byte
		)
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.CandidateID, &a.EmployerID, &answers, &a.Status, &a.CreatedAt, &a.UpdatedAt, &skills,
		); err != nil {
			return nil, err
		}
		if err := scanJSON(answers, &a.Answers); err != nil {
			return nil, err
		}
		if err := scanJSON(skills, &a.CandidateSkills); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Application]{Items: items, Total: total}, nil
}

func (r *ApplicationPostgres) StatusCounts(ctx context.Context, q repository.ApplicationQuery) (map[string]int, error) {
	// Counts ignore the status filter and pagination: they reflect the full
	// base-filtered population for this employer.
	q.Status = ""
	b := buildApplicationFilter(q)
	clause, args := b.Clause()

	query := `SELECT a.status, COUNT(*) FROM applications a JOIN candidates c ON c.id = a.candidate_id WHERE ` +
		clause + ` GROUP BY a.status`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{
		model.ApplicationPending:     0,
		model.ApplicationShortlisted: 0,
		model.ApplicationRejected:    0,
		model.ApplicationHired:       0,
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
