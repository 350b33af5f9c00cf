package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/plaza-dev/plaza/backend/internal/handler"
	"github.com/plaza-dev/plaza/backend/internal/setup"
	"github.com/plaza-dev/plaza/shared/config"
	"github.com/plaza-dev/plaza/shared/domain"
	jwt_internal "github.com/plaza-dev/plaza/shared/jwt"
	mw "github.com/plaza-dev/plaza/shared/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSave struct {
	lastMember domain.MemberId
}

func (s *stubSave) IsSaved(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (bool, error) {
	s.lastMember = memberId
	return true, nil
}

func (s *stubSave) Toggle(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (bool, error) {
	s.lastMember = memberId
	return false, nil
}

func newTestRouter(t *testing.T) (http.Handler, *stubSave, string) {
	t.Helper()
	cfg := &config.Config{Public: config.Public{AllowedOrigins: []string{"http://localhost:8081"}}}
	jwtService := jwt_internal.New("test_secret", time.Hour)
	token, err := jwtService.NewToken("MACTOR000001")
	require.NoError(t, err)

	save := &stubSave{}
	deps := &setup.Dependencies{
		Config:         cfg,
		Handler:        handler.New(handler.Services{Save: save}, cfg),
		Jwt:            jwtService,
		AuthMiddleware: mw.NewAuth(jwtService),
	}
	return New(deps), save, token
}

func TestRouterHealthEndpoints(t *testing.T) {
	r, _, _ := newTestRouter(t)

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestRouterAuth(t *testing.T) {
	r, save, token := newTestRouter(t)

	t.Run("anonymous request to a member route", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/save/P0000000000A", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	})

	t.Run("bearer token reaches the handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/save/P0000000000A", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"saved":true}`, rr.Body.String())
		assert.Equal(t, "MACTOR000001", save.lastMember)
	})
}

func TestRouterUnknownRoutes(t *testing.T) {
	r, _, token := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPatch, "/v1/save/P0000000000A", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/nothing/here", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouterCORSPreflight(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/attitude/on/P0000000000A", nil)
	req.Header.Set("Origin", "http://localhost:8081")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:8081", rr.Header().Get("Access-Control-Allow-Origin"))
}
