package postgres

import (
	"context"
	"database/sql"

	"jobboard/internal/model"
	"jobboard/internal/repository"
)

// ContentPostgres is a PostgreSQL implementation of
// repository.ContentRepository.
type ContentPostgres struct {
	db *sql.DB
}

// NewContentPostgres creates a new ContentPostgres repository.
func NewContentPostgres(db *sql.DB) *ContentPostgres {
	return &ContentPostgres{db: db}
}

var _ repository.ContentRepository = (*ContentPostgres)(nil)

func (r *ContentPostgres) UpsertSeo(ctx context.Context, s *model.Seo) (*model.Seo, error) {
	const q = `
		INSERT INTO seo (id, page, title, description, keywords, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (page)
		DO UPDATE SET title = EXCLUDED.title, description = EXCLUDED.description,
			keywords = EXCLUDED.keywords, updated_at = now()
		RETURNING id, page, title, description, keywords, updated_at
	`
	var out model.Seo
	err := r.db.QueryRowContext(ctx, q, s.ID, s.Page, s.Title, s.Description, s.Keywords).
		Scan(&out.ID, &out.Page, &out.Title, &out.Description, &out.Keywords, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ContentPostgres) FindSeo(ctx context.Context, page string) (*model.Seo, error) {
	const q = `SELECT id, page, title, description, keywords, updated_at FROM seo WHERE page = $1`
	var s model.Seo
	err := r.db.QueryRowContext(ctx, q, page).
		Scan(&s.ID, &s.Page, &s.Title, &s.Description, &s.Keywords, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ContentPostgres) UpsertPage(ctx context.Context, p *model.Page) (*model.Page, error) {
	const q = `
		INSERT INTO pages (id, slug, title, body, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (slug)
		DO UPDATE SET title = EXCLUDED.title, body = EXCLUDED.body, updated_at = now()
		RETURNING id, slug, title, body, updated_at
	`
	var out model.Page
	err := r.db.QueryRowContext(ctx, q, p.ID, p.Slug, p.Title, p.Body).
		Scan(&out.ID, &out.Slug, &out.Title, &out.Body, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ContentPostgres) FindPage(ctx context.Context, slug string) (*model.Page, error) {
	const q = `SELECT id, slug, title, body, updated_at FROM pages WHERE slug = $1`
	var p model.Page
	err := r.db.QueryRowContext(ctx, q, slug).Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ContentPostgres) ListPages(ctx context.Context) ([]model.Page, error) {
	const q = `SELECT id, slug, title, body, updated_at FROM pages ORDER BY slug`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Page
	for rows.Next() {
		var p model.Page
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *ContentPostgres) CreateBlog(ctx context.Context, b *model.Blog) (*model.Blog, error) {
	const q = `
		INSERT INTO blogs (id, slug, title, body, author, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, slug, title, body, author, image_url, created_at, updated_at
	`
	var out model.Blog
	err := r.db.QueryRowContext(ctx, q, b.ID, b.Slug, b.Title, b.Body, b.Author, b.ImageURL, b.CreatedAt, b.UpdatedAt).
		Scan(&out.ID, &out.Slug, &out.Title, &out.Body, &out.Author, &out.ImageURL, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, mapDuplicate(err)
	}
	return &out, nil
}

func (r *ContentPostgres) UpdateBlog(ctx context.Context, b *model.Blog) error {
	const q = `
		UPDATE blogs
		SET title = $2, body = $3, author = $4, image_url = $5, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, b.ID, b.Title, b.Body, b.Author, b.ImageURL)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ContentPostgres) DeleteBlog(ctx context.Context, id string) error {
	const q = `DELETE FROM blogs WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *ContentPostgres) FindBlog(ctx context.Context, slug string) (*model.Blog, error) {
	const q = `SELECT id, slug, title, body, author, image_url, created_at, updated_at FROM blogs WHERE slug = $1`
	var b model.Blog
	err := r.db.QueryRowContext(ctx, q, slug).
		Scan(&b.ID, &b.Slug, &b.Title, &b.Body, &b.Author, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *ContentPostgres) ListBlogs(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Blog], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blogs`).Scan(&total); err != nil {
		return nil, err
	}

	const q = `
		SELECT id, slug, title, body, author, image_url, created_at, updated_at
		FROM blogs
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Blog, 0)
	for rows.Next() {
		var b model.Blog
		if err := rows.Scan(&b.ID, &b.Slug, &b.Title, &b.Body, &b.Author, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Blog]{Items: items, Total: total}, nil
}

func (r *ContentPostgres) CreateContact(ctx context.Context, c *model.Contact) (*model.Contact, error) {
	const q = `
		INSERT INTO contacts (id, name, email, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, email, subject, message, created_at
	`
	var out model.Contact
	err := r.db.QueryRowContext(ctx, q, c.ID, c.Name, c.Email, c.Subject, c.Message, c.CreatedAt).
		Scan(&out.ID, &out.Name, &out.Email, &out.Subject, &out.Message, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ContentPostgres) ListContacts(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Contact], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&total); err != nil {
		return nil, err
	}

	const q = `
		SELECT id, name, email, subject, message, created_at
		FROM contacts
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Contact, 0)
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Contact]{Items: items, Total: total}, nil
}
