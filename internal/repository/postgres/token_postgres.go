package postgres

import (
	"context"
	"database/sql"

	"jobboard/internal/repository"
)

// TokenPostgres persists OAuth2 provider tokens, one row per provider.
type TokenPostgres struct {
	db *sql.DB
}

// NewTokenPostgres creates a new TokenPostgres repository.
func NewTokenPostgres(db *sql.DB) *TokenPostgres {
	return &TokenPostgres{db: db}
}

var _ repository.TokenRepository = (*TokenPostgres)(nil)

func (r *TokenPostgres) Save(ctx context.Context, t *repository.OAuthToken) error {
	const q = `
		INSERT INTO oauth_tokens (provider, access_token, refresh_token, token_type, expiry, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (provider)
		DO UPDATE SET access_token = EXCLUDED.access_token,
			refresh_token = CASE WHEN EXCLUDED.refresh_token = '' THEN oauth_tokens.refresh_token ELSE EXCLUDED.refresh_token END,
			token_type = EXCLUDED.token_type, expiry = EXCLUDED.expiry, updated_at = now()
	`
	_, err := r.db.ExecContext(ctx, q, t.Provider, t.AccessToken, t.RefreshToken, t.TokenType, t.Expiry)
	return err
}

func (r *TokenPostgres) Find(ctx context.Context, provider string) (*repository.OAuthToken, error) {
	const q = `
		SELECT provider, access_token, refresh_token, token_type, expiry
		FROM oauth_tokens
		WHERE provider = $1
	`
	var t repository.OAuthToken
	var expiry sql.NullTime
	err := r.db.QueryRowContext(ctx, q, provider).
		Scan(&t.Provider, &t.AccessToken, &t.RefreshToken, &t.TokenType, &expiry)
	if err != nil {
		return nil, err
	}
	if expiry.Valid {
		t.Expiry = expiry.Time
	}
	return &t, nil
}
