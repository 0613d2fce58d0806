package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/model"
	"jobboard/internal/repository"
	"jobboard/internal/search"
)

// JobPostgres is a PostgreSQL implementation of repository.JobRepository.
type JobPostgres struct {
	db *sql.DB
}

// NewJobPostgres creates a new JobPostgres repository.
func NewJobPostgres(db *sql.DB) *JobPostgres {
	return &JobPostgres{db: db}
}

var _ repository.JobRepository = (*JobPostgres)(nil)

const jobColumns = `id, employer_id, title, slug, description, skills, degree, job_type,
		location, salary_min, salary_max, experience_min, experience_max, questions,
		deadline, status, created_at, updated_at`

func jobColumnsPrefixed(alias string) string {
	cols := strings.Split(jobColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

func scanJob(row rowScanner) (*model.Job, error) {
	var (
		j         model.Job
		skills    []byte
		questions []byte
		deadline  sql.NullTime
	)
	if err := row.Scan(
		&j.ID, &j.EmployerID, &j.Title, &j.Slug, &j.Description, &skills, &j.Degree, &j.JobType,
		&j.Location, &j.SalaryMin, &j.SalaryMax, &j.ExperienceMin, &j.ExperienceMax, &questions,
		&deadline, &j.Status, &j.CreatedAt, &j.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if deadline.Valid {
		t := deadline.Time
		j.Deadline = &t
	}
	if err := scanJSON(skills, &j.Skills); err != nil {
		return nil, err
	}
	if err := scanJSON(questions, &j.Questions); err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobPostgres) Create(ctx context.Context, j *model.Job) (*model.Job, error) {
	skills, err := jsonb(j.Skills)
	if err != nil {
		return nil, err
	}
	questions, err := jsonb(j.Questions)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO jobs (id, employer_id, title, slug, description, skills, degree, job_type,
			location, salary_min, salary_max, experience_min, experience_max, questions,
			deadline, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING ` + jobColumns
	row := r.db.QueryRowContext(ctx, q,
		j.ID, j.EmployerID, j.Title, j.Slug, j.Description, skills, j.Degree, j.JobType,
		j.Location, j.SalaryMin, j.SalaryMax, j.ExperienceMin, j.ExperienceMax, questions,
		nullTime(j.Deadline), j.Status, j.CreatedAt, j.UpdatedAt,
	)
	out, err := scanJob(row)
	if err != nil {
		return nil, mapDuplicate(err)
	}
	return out, nil
}

func (r *JobPostgres) FindByID(ctx context.Context, id string) (*model.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return scanJob(r.db.QueryRowContext(ctx, q, id))
}

func (r *JobPostgres) FindBySlug(ctx context.Context, slug string) (*model.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE slug = $1`
	return scanJob(r.db.QueryRowContext(ctx, q, slug))
}

func (r *JobPostgres) SlugExists(ctx context.Context, slug string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM jobs WHERE slug = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, slug).Scan(&exists)
	return exists, err
}

func (r *JobPostgres) Update(ctx context.Context, j *model.Job) error {
	skills, err := jsonb(j.Skills)
	if err != nil {
		return err
	}
	questions, err := jsonb(j.Questions)
	if err != nil {
		return err
	}

	const q = `
		UPDATE jobs
		SET title = $2, description = $3, skills = $4, degree = $5, job_type = $6,
			location = $7, salary_min = $8, salary_max = $9, experience_min = $10,
			experience_max = $11, questions = $12, deadline = $13, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q,
		j.ID, j.Title, j.Description, skills, j.Degree, j.JobType,
		j.Location, j.SalaryMin, j.SalaryMax, j.ExperienceMin,
		j.ExperienceMax, questions, nullTime(j.Deadline),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *JobPostgres) UpdateStatus(ctx context.Context, id, status string) error {
	const q = `UPDATE jobs SET status = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, status)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *JobPostgres) Search(ctx context.Context, q repository.JobQuery) (*repository.PageResult[model.Job], error) {
	b := search.NewBuilder()
	if q.Keyword != "" {
		kw := q.Keyword
		b.Or(func(or *search.Group) {
			or.Contains("title", kw)
			or.Contains("description", kw)
		})
	}
	for _, skill := range q.Skills {
		b.JSONTextMatch("skills", skill)
	}
	for _, part := range search.SplitLocation(q.Location) {
		b.Contains("location", part)
	}
	b.Equals("job_type", q.JobType)
	b.Equals("degree", q.Degree)
	b.Equals("employer_id", q.EmployerID)
	b.Equals("status", q.Status)
	// Salary range filter: a job matches if its offered band overlaps the
	// requested band.
	b.IntRange("salary_max", q.SalaryMin, nil)
	if q.SalaryMax != nil {
		b.Cond("salary_min <= %s", *q.SalaryMax)
	}
	if q.ExperienceMax != nil {
		b.Cond("experience_min <= %s", *q.ExperienceMax)
	}
	clause, args := b.Clause()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs WHERE `+clause, args...).Scan(&total); err != nil {
		return nil, err
	}

	listQ := fmt.Sprintf(
		`SELECT `+jobColumns+` FROM jobs WHERE `+clause+
			` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		b.ArgOffset(), b.ArgOffset()+1,
	)
	rows, err := r.db.QueryContext(ctx, listQ, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Job]{Items: items, Total: total}, nil
}

func (r *JobPostgres) ListOpen(ctx context.Context) ([]model.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE status = $1`
	rows, err := r.db.QueryContext(ctx, q, model.JobOpen)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *j)
	}
	return items, rows.Err()
}

func (r *JobPostgres) ExpireOpenJobs(ctx context.Context, now time.Time) (int64, error) {
	const q = `
		UPDATE jobs
		SET status = $1, updated_at = now()
		WHERE status = $2 AND deadline IS NOT NULL AND deadline < $3
	`
	res, err := r.db.ExecContext(ctx, q, model.JobClosed, model.JobOpen, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
