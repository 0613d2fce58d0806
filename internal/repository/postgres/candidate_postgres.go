package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobboard/internal/model"
	"jobboard/internal/repository"
	"jobboard/internal/search"
)

// CandidatePostgres is a PostgreSQL implementation of
// repository.CandidateRepository. Parameterized queries only; no business
// logic.
type CandidatePostgres struct {
	db *sql.DB
}

// NewCandidatePostgres creates a new CandidatePostgres repository.
func NewCandidatePostgres(db *sql.DB) *CandidatePostgres {
	return &CandidatePostgres{db: db}
}

var _ repository.CandidateRepository = (*CandidatePostgres)(nil)

const candidateColumns = `id, name, email, phone, password_hash, title, gender, date_of_birth,
		industry, skills, preferred_locations, education, experience, job_type,
		expected_salary, experience_years, degree, auto_apply, resume_url, photo_url,
		created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row rowScanner) (*model.Candidate, error) {
	var (
		c          model.Candidate
		dob        sql.NullTime
		skills     []byte
		locations  []byte
		education  []byte
		experience []byte
	)
	if err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.PasswordHash, &c.Title, &c.Gender, &dob,
		&c.Industry, &skills, &locations, &education, &experience, &c.JobType,
		&c.ExpectedSalary, &c.ExperienceYears, &c.Degree, &c.AutoApply, &c.ResumeURL, &c.PhotoURL,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if dob.Valid {
		t := dob.Time
		c.DateOfBirth = &t
	}
	if err := scanJSON(skills, &c.Skills); err != nil {
		return nil, err
	}
	if err := scanJSON(locations, &c.PreferredLocations); err != nil {
		return nil, err
	}
	if err := scanJSON(education, &c.Education); err != nil {
		return nil, err
	}
	if err := scanJSON(experience, &c.Experience); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CandidatePostgres) Create(ctx context.Context, c *model.Candidate) (*model.Candidate, error) {
	skills, err := jsonb(c.Skills)
	if err != nil {
		return nil, err
	}
	locations, err := jsonb(c.PreferredLocations)
	if err != nil {
		return nil, err
	}
	education, err := jsonb(c.Education)
	if err != nil {
		return nil, err
	}
	experience, err := jsonb(c.Experience)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO candidates (id, name, email, phone, password_hash, title, gender, date_of_birth,
			industry, skills, preferred_locations, education, experience, job_type,
			expected_salary, experience_years, degree, auto_apply, resume_url, photo_url,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING ` + candidateColumns
	row := r.db.QueryRowContext(ctx, q,
		c.ID, c.Name, c.Email, c.Phone, c.PasswordHash, c.Title, c.Gender, nullTime(c.DateOfBirth),
		c.Industry, skills, locations, education, experience, c.JobType,
		c.ExpectedSalary, c.ExperienceYears, c.Degree, c.AutoApply, c.ResumeURL, c.PhotoURL,
		c.CreatedAt, c.UpdatedAt,
	)
	out, err := scanCandidate(row)
	if err != nil {
		return nil, mapDuplicate(err)
	}
	return out, nil
}

func (r *CandidatePostgres) FindByID(ctx context.Context, id string) (*model.Candidate, error) {
	q := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	return scanCandidate(r.db.QueryRowContext(ctx, q, id))
}

func (r *CandidatePostgres) FindByEmail(ctx context.Context, email string) (*model.Candidate, error) {
	q := `SELECT ` + candidateColumns + ` FROM candidates WHERE email = $1`
	return scanCandidate(r.db.QueryRowContext(ctx, q, email))
}

func (r *CandidatePostgres) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM candidates WHERE email = $1 OR phone = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, email, phone).Scan(&exists)
	return exists, err
}

func (r *CandidatePostgres) Update(ctx context.Context, c *model.Candidate) error {
	skills, err := jsonb(c.Skills)
	if err != nil {
		return err
	}
	locations, err := jsonb(c.PreferredLocations)
	if err != nil {
		return err
	}
	education, err := jsonb(c.Education)
	if err != nil {
		return err
	}
	experience, err := jsonb(c.Experience)
	if err != nil {
		return err
	}

	const q = `
		UPDATE candidates
		SET name = $2, title = $3, gender = $4, date_of_birth = $5, industry = $6,
			skills = $7, preferred_locations = $8, education = $9, experience = $10,
			job_type = $11, expected_salary = $12, experience_years = $13, degree = $14,
			auto_apply = $15, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q,
		c.ID, c.Name, c.Title, c.Gender, nullTime(c.DateOfBirth), c.Industry,
		skills, locations, education, experience,
		c.JobType, c.ExpectedSalary, c.ExperienceYears, c.Degree, c.AutoApply,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *CandidatePostgres) UpdateFiles(ctx context.Context, id, resumeURL, photoURL string) error {
	const q = `
		UPDATE candidates
		SET resume_url = CASE WHEN $2 = '' THEN resume_url ELSE $2 END,
			photo_url  = CASE WHEN $3 = '' THEN photo_url  ELSE $3 END,
			updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, id, resumeURL, photoURL)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// buildCandidateFilter folds the optional criteria into one condition.
// withStatus controls whether the employer-scoped status criterion is
// included; status counting deliberately excludes it.
func buildCandidateFilter(q repository.CandidateQuery, withStatus bool) *search.Builder {
	b := search.NewBuilder()

	// A requested skill also matches the profile title and prior job titles
	// (recall over precision).
	for _, skill := range q.Skills {
		s := skill
		b.Or(func(or *search.Group) {
			or.JSONTextMatch("skills", s)
			or.Contains("title", s)
			or.Cond("EXISTS (SELECT 1 FROM jsonb_array_elements(experience) AS exp WHERE exp->>'title' ILIKE %s)", search.LikePattern(s))
		})
	}
	// Location splits on comma; every component must match.
	for _, part := range search.SplitLocation(q.Location) {
		b.JSONTextMatch("preferred_locations", part)
	}
	b.Contains("title", q.JobTitle)
	b.Equals("job_type", q.JobType)
	b.Equals("degree", q.Degree)
	b.Equals("gender", q.Gender)
	b.IntRange("expected_salary", q.SalaryMin, q.SalaryMax)
	b.FloatRange("experience_years", q.ExperienceMin, q.ExperienceMax)
	if q.AgeMin != nil {
		b.Cond("date_of_birth <= %s", time.Now().AddDate(-*q.AgeMin, 0, 0))
	}
	if q.AgeMax != nil {
		b.Cond("date_of_birth >= %s", time.Now().AddDate(-*q.AgeMax-1, 0, 0))
	}
	b.UpdatedSince("updated_at", q.UpdatedSince)
	if withStatus && q.RecruiterID != "" && q.Status != "" {
		b.Cond(
			"EXISTS (SELECT 1 FROM candidate_status cs WHERE cs.candidate_id = candidates.id AND cs.recruiter_id = %s AND cs.status = %s)",
			q.RecruiterID, q.Status,
		)
	}
	return b
}

func (r *CandidatePostgres) Search(ctx context.Context, q repository.CandidateQuery) (*repository.PageResult[model.Candidate], error) {
	b := buildCandidateFilter(q, true)
	clause, args := b.Clause()

	var total int
	countQ := `SELECT COUNT(*) FROM candidates WHERE ` + clause
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, err
	}

	listQ := fmt.Sprintf(
		`SELECT `+candidateColumns+` FROM candidates WHERE `+clause+
			` ORDER BY updated_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		b.ArgOffset(), b.ArgOffset()+1,
	)
	rows, err := r.db.QueryContext(ctx, listQ, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Candidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Candidate]{Items: items, Total: total}, nil
}

func (r *CandidatePostgres) StatusCounts(ctx context.Context, q repository.CandidateQuery, recruiterID string) (map[string]int, error) {
	// Counts cover the base-filtered population, not the status-filtered or
	// paginated one.
	b := buildCandidateFilter(q, false)
	clause, args := b.Clause()

	query := fmt.Sprintf(
		`SELECT cs.status, COUNT(*)
		 FROM candidate_status cs
		 JOIN candidates ON candidates.id = cs.candidate_id
		 WHERE cs.recruiter_id = $%d AND `+clause+`
		 GROUP BY cs.status`,
		b.ArgOffset(),
	)
	rows, err := r.db.QueryContext(ctx, query, append(args, recruiterID)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{
		model.StatusViewed:      0,
		model.StatusShortlisted: 0,
		model.StatusRejected:    0,
		model.StatusHold:        0,
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

func (r *CandidatePostgres) UpsertStatus(ctx context.Context, st *model.EmployerStatus) error {
	// Single atomic upsert: concurrent first-time updates from one employer
	// cannot produce duplicate entries.
	const q = `
		INSERT INTO candidate_status (candidate_id, recruiter_id, status, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (candidate_id, recruiter_id)
		DO UPDATE SET status = EXCLUDED.status, updated_at = now()
	`
	_, err := r.db.ExecContext(ctx, q, st.CandidateID, st.RecruiterID, st.Status)
	return err
}

func (r *CandidatePostgres) FindStatus(ctx context.Context, candidateID, recruiterID string) (*model.EmployerStatus, error) {
	const q = `
		SELECT candidate_id, recruiter_id, status, updated_at
		FROM candidate_status
		WHERE candidate_id = $1 AND recruiter_id = $2
	`
	var st model.EmployerStatus
	err := r.db.QueryRowContext(ctx, q, candidateID, recruiterID).
		Scan(&st.CandidateID, &st.RecruiterID, &st.Status, &st.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *CandidatePostgres) ListAutoApply(ctx context.Context) ([]model.Candidate, error) {
	q := `SELECT ` + candidateColumns + ` FROM candidates WHERE auto_apply`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

func (r *CandidatePostgres) SaveJob(ctx context.Context, candidateID, jobID string) error {
	const q = `
		INSERT INTO saved_jobs (candidate_id, job_id)
		VALUES ($1, $2)
		ON CONFLICT (candidate_id, job_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, q, candidateID, jobID)
	return err
}

func (r *CandidatePostgres) ListSavedJobs(ctx context.Context, candidateID string) ([]model.Job, error) {
	q := `
		SELECT ` + jobColumnsPrefixed("jobs") + `
		FROM jobs
		JOIN saved_jobs sj ON sj.job_id = jobs.id
		WHERE sj.candidate_id = $1
		ORDER BY sj.saved_at DESC
	`
	rows, err := r.db.QueryContext(ctx, q, candidateID)
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

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
