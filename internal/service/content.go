package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"jobboard/internal/model"
	"jobboard/internal/repository"
)

// ContentService manages site content: SEO entries, static pages, blog
// posts, and contact-form submissions.
type ContentService interface {
	UpsertSeo(ctx context.Context, s *model.Seo) (*model.Seo, error)
	GetSeo(ctx context.Context, page string) (*model.Seo, error)

	UpsertPage(ctx context.Context, p *model.Page) (*model.Page, error)
	GetPage(ctx context.Context, slug string) (*model.Page, error)
	ListPages(ctx context.Context) ([]model.Page, error)

	CreateBlog(ctx context.Context, title, body, author, imageURL string) (*model.Blog, error)
	UpdateBlog(ctx context.Context, b *model.Blog) error
	DeleteBlog(ctx context.Context, id string) error
	GetBlog(ctx context.Context, slug string) (*model.Blog, error)
	ListBlogs(ctx context.Context, limit, offset int) (*repository.PageResult[model.Blog], error)

	SubmitContact(ctx context.Context, name, email, subject, message string) (*model.Contact, error)
	ListContacts(ctx context.Context, limit, offset int) (*repository.PageResult[model.Contact], error)
}

type contentService struct {
	repo repository.ContentRepository
}

// NewContentService constructs a ContentService.
func NewContentService(repo repository.ContentRepository) ContentService {
	return &contentService{repo: repo}
}

func (s *contentService) UpsertSeo(ctx context.Context, in *model.Seo) (*model.Seo, error) {
	if in.Page == "" {
		return nil, ErrIDRequired
	}
	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	in.UpdatedAt = time.Now().UTC()
	return s.repo.UpsertSeo(ctx, in)
}

func (s *contentService) GetSeo(ctx context.Context, page string) (*model.Seo, error) {
	out, err := s.repo.FindSeo(ctx, page)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (s *contentService) UpsertPage(ctx context.Context, in *model.Page) (*model.Page, error) {
	if in.Slug == "" {
		return nil, ErrIDRequired
	}
	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	in.UpdatedAt = time.Now().UTC()
	return s.repo.UpsertPage(ctx, in)
}

func (s *contentService) GetPage(ctx context.Context, slugVal string) (*model.Page, error) {
	out, err := s.repo.FindPage(ctx, slugVal)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (s *contentService) ListPages(ctx context.Context) ([]model.Page, error) {
	return s.repo.ListPages(ctx)
}

func (s *contentService) CreateBlog(ctx context.Context, title, body, author, imageURL string) (*model.Blog, error) {
	if title == "" {
		return nil, errors.New("title is required")
	}
	now := time.Now().UTC()
	b := &model.Blog{
		ID:        uuid.New().String(),
		Slug:      slug.Make(title),
		Title:     title,
		Body:      body,
		Author:    author,
		ImageURL:  imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.repo.CreateBlog(ctx, b)
}

func (s *contentService) UpdateBlog(ctx context.Context, b *model.Blog) error {
	if b.ID == "" {
		return ErrIDRequired
	}
	b.UpdatedAt = time.Now().UTC()
	return s.repo.UpdateBlog(ctx, b)
}

func (s *contentService) DeleteBlog(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return s.repo.DeleteBlog(ctx, id)
}

func (s *contentService) GetBlog(ctx context.Context, slugVal string) (*model.Blog, error) {
	out, err := s.repo.FindBlog(ctx, slugVal)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (s *contentService) ListBlogs(ctx context.Context, limit, offset int) (*repository.PageResult[model.Blog], error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListBlogs(ctx, repository.PageQuery{Limit: limit, Offset: offset})
}

func (s *contentService) SubmitContact(ctx context.Context, name, email, subject, message string) (*model.Contact, error) {
	c := &model.Contact{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Subject:   subject,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	return s.repo.CreateContact(ctx, c)
}

func (s *contentService) ListContacts(ctx context.Context, limit, offset int) (*repository.PageResult[model.Contact], error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListContacts(ctx, repository.PageQuery{Limit: limit, Offset: offset})
}
