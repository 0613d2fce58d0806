package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"

	"jobboard/internal/config"
	"jobboard/internal/repository"
)

const googleProvider = "google"

// ErrNotAuthorized is returned when no Gmail token has been stored yet;
// the admin must complete the consent flow first.
var ErrNotAuthorized = errors.New("google account not authorized")

// GoogleAuth runs the OAuth2 code-exchange/refresh flow for the delegated
// Gmail sender. Tokens are persisted so a restart does not require another
// consent round-trip.
type GoogleAuth struct {
	cfg    *oauth2.Config
	tokens repository.TokenRepository
}

// NewGoogleAuth builds the OAuth2 config for Gmail sending.
func NewGoogleAuth(cfg config.GoogleConfig, tokens repository.TokenRepository) *GoogleAuth {
	return &GoogleAuth{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{gmail.GmailSendScope},
			Endpoint:     google.Endpoint,
		},
		tokens: tokens,
	}
}

// AuthURL returns the consent URL; offline access is requested so a refresh
// token is issued.
func (g *GoogleAuth) AuthURL(state string) string {
	return g.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades the callback code for a token and persists it.
func (g *GoogleAuth) Exchange(ctx context.Context, code string) error {
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("code exchange: %w", err)
	}
	return g.save(ctx, tok)
}

// Client returns an HTTP client that refreshes the stored token as needed
// and writes refreshed tokens back to the repository.
func (g *GoogleAuth) Client(ctx context.Context) (*http.Client, error) {
	stored, err := g.tokens.Find(ctx, googleProvider)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotAuthorized
		}
		return nil, err
	}
	tok := &oauth2.Token{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
		TokenType:    stored.TokenType,
		Expiry:       stored.Expiry,
	}
	src := &persistingTokenSource{
		auth: g,
		ctx:  ctx,
		src:  g.cfg.TokenSource(ctx, tok),
		last: tok,
	}
	return oauth2.NewClient(ctx, src), nil
}

func (g *GoogleAuth) save(ctx context.Context, tok *oauth2.Token) error {
	return g.tokens.Save(ctx, &repository.OAuthToken{
		Provider:     googleProvider,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
	})
}

// persistingTokenSource writes refreshed tokens back to the repository so
// the next process start reuses them.
type persistingTokenSource struct {
	auth *GoogleAuth
	ctx  context.Context
	src  oauth2.TokenSource
	last *oauth2.Token
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last.AccessToken {
		s.last = tok
		if err := s.auth.save(s.ctx, tok); err != nil {
			return nil, fmt.Errorf("persist refreshed token: %w", err)
		}
	}
	return tok, nil
}
