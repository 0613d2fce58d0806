package repository

import (
	"context"

	"jobboard/internal/model"
)

// ContentRepository covers the site-content entities (Seo, Page, Blog,
// Contact). None of these carry workflow logic; plain CRUD.
type ContentRepository interface {
	UpsertSeo(ctx context.Context, s *model.Seo) (*model.Seo, error)
	FindSeo(ctx context.Context, page string) (*model.Seo, error)

	UpsertPage(ctx context.Context, p *model.Page) (*model.Page, error)
	FindPage(ctx context.Context, slug string) (*model.Page, error)
	ListPages(ctx context.Context) ([]model.Page, error)

	CreateBlog(ctx context.Context, b *model.Blog) (*model.Blog, error)
	UpdateBlog(ctx context.Context, b *model.Blog) error
	DeleteBlog(ctx context.Context, id string) error
	FindBlog(ctx context.Context, slug string) (*model.Blog, error)
	ListBlogs(ctx context.Context, pq PageQuery) (*PageResult[model.Blog], error)

	CreateContact(ctx context.Context, c *model.Contact) (*model.Contact, error)
	ListContacts(ctx context.Context, pq PageQuery) (*PageResult[model.Contact], error)
}
