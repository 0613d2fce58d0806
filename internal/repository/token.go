package repository

import (
	"context"
	"time"
)

// OAuthToken is a persisted provider token (one row per provider).
type OAuthToken struct {
	Provider     string
	AccessToken  string
	RefreshToken string
	TokenType    string
	Expiry       time.Time
}

// TokenRepository persists OAuth2 tokens for delegated integrations
// (currently the Gmail sender).
type TokenRepository interface {
	Save(ctx context.Context, t *OAuthToken) error
	Find(ctx context.Context, provider string) (*OAuthToken, error)
}
