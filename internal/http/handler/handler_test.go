package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobboard/internal/auth"
	"jobboard/internal/config"
	"jobboard/internal/repository"
	"jobboard/internal/service"
	"jobboard/internal/service/mocks"
)

func newTestApp(t *testing.T, configure func(d *Deps)) (*fiber.App, *auth.TokenIssuer) {
	t.Helper()
	issuer, err := auth.NewTokenIssuer(config.JWTConfig{Secret: "test-secret", TTLHours: 1})
	require.NoError(t, err)

	d := Deps{Tokens: issuer}
	if configure != nil {
		configure(&d)
	}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	RegisterRoutes(app, d)
	return app, issuer
}

func TestCandidateSignupRoute(t *testing.T) {
	t.Run("valid payload returns 201 with token", func(t *testing.T) {
		authSvc := new(mocks.MockAuthService)
		authSvc.On("RegisterCandidate", mock.Anything, mock.MatchedBy(func(in service.CandidateSignup) bool {
			return in.Email == "a@example.com"
		})).Return(&service.AuthResult{Token: "tok", ID: "cand-1", Role: auth.RoleCandidate}, nil)

		app, _ := newTestApp(t, func(d *Deps) { d.Auth = authSvc })

		body := map[string]any{"name": "A", "email": "a@example.com", "phone": "111", "password": "longenough"}
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
		req := httptest.NewRequest("POST", "/auth/candidates/signup", &buf)
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var out service.AuthResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "tok", out.Token)
	})

	t.Run("duplicate account returns 409", func(t *testing.T) {
		authSvc := new(mocks.MockAuthService)
		authSvc.On("RegisterCandidate", mock.Anything, mock.Anything).Return(nil, service.ErrAccountExists)

		app, _ := newTestApp(t, func(d *Deps) { d.Auth = authSvc })

		body := map[string]any{"name": "A", "email": "a@example.com", "phone": "111", "password": "longenough"}
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
		req := httptest.NewRequest("POST", "/auth/candidates/signup", &buf)
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("short password rejected before the service", func(t *testing.T) {
		authSvc := new(mocks.MockAuthService)
		app, _ := newTestApp(t, func(d *Deps) { d.Auth = authSvc })

		body := map[string]any{"name": "A", "email": "a@example.com", "phone": "111", "password": "short"}
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
		req := httptest.NewRequest("POST", "/auth/candidates/signup", &buf)
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		authSvc.AssertNotCalled(t, "RegisterCandidate", mock.Anything, mock.Anything)
	})
}

func TestEmployerCandidateSearchRoute(t *testing.T) {
	t.Run("requires a token", func(t *testing.T) {
		app, _ := newTestApp(t, func(d *Deps) { d.Search = new(mocks.MockSearchService) })

		req := httptest.NewRequest("GET", "/employers/candidates?skills=go", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("passes filters and identity through", func(t *testing.T) {
		searchSvc := new(mocks.MockSearchService)
		searchSvc.On("Candidates", mock.Anything, mock.MatchedBy(func(q repository.CandidateQuery) bool {
			return len(q.Skills) == 2 && q.Location == "Pune" && q.RecruiterID == "emp-1"
		}), 2, 5).Return(&service.CandidateSearchResult{Total: 7, Page: 2, Limit: 5}, nil)

		app, issuer := newTestApp(t, func(d *Deps) { d.Search = searchSvc })
		token, _ := issuer.Issue("emp-1", auth.RoleEmployer)

		req := httptest.NewRequest("GET", "/employers/candidates?skills=go,sql&location=Pune&page=2&limit=5", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		searchSvc.AssertExpectations(t)
	})
}

func TestUpdateCandidateStatusRoute_QuotaExhausted(t *testing.T) {
	searchSvc := new(mocks.MockSearchService)
	searchSvc.On("UpdateCandidateStatus", mock.Anything, mock.MatchedBy(func(in service.StatusUpdate) bool {
		return in.CandidateID == "cand-1" && in.RecruiterID == "emp-1" && in.Action == "email"
	})).Return(service.ErrQuotaExhausted)

	app, issuer := newTestApp(t, func(d *Deps) { d.Search = searchSvc })
	token, _ := issuer.Issue("emp-1", auth.RoleEmployer)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(map[string]any{"action": "email", "message": "hi"}))
	req := httptest.NewRequest("POST", "/employers/candidates/cand-1/status", &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusPaymentRequired, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	errObj := out["error"].(map[string]any)
	assert.Equal(t, "QUOTA_EXHAUSTED", errObj["code"])
}

func TestUpdateApplicationStatusRoute(t *testing.T) {
	t.Run("passes identity and status through", func(t *testing.T) {
		appsSvc := new(mocks.MockApplicationService)
		appsSvc.On("UpdateStatus", mock.Anything, "emp-1", "app-1", "shortlisted").Return(nil)

		app, issuer := newTestApp(t, func(d *Deps) { d.Apps = appsSvc })
		token, _ := issuer.Issue("emp-1", auth.RoleEmployer)

		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(map[string]any{"status": "shortlisted"}))
		req := httptest.NewRequest("POST", "/employers/applications/app-1/status", &buf)
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		appsSvc.AssertExpectations(t)
	})

	t.Run("unknown status returns 400", func(t *testing.T) {
		appsSvc := new(mocks.MockApplicationService)
		appsSvc.On("UpdateStatus", mock.Anything, "emp-1", "app-1", "archived").Return(service.ErrInvalidStatus)

		app, issuer := newTestApp(t, func(d *Deps) { d.Apps = appsSvc })
		token, _ := issuer.Issue("emp-1", auth.RoleEmployer)

		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(map[string]any{"status": "archived"}))
		req := httptest.NewRequest("POST", "/employers/applications/app-1/status", &buf)
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
