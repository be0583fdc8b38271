package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testJWTConfig = utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1}

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := utils.GetUsernameFromContext(r.Context())
		require.True(t, ok)
		w.Write([]byte(username))
	})
}

func TestAuthAcceptsValidToken(t *testing.T) {
	token, err := utils.GenerateToken(testJWTConfig, uuid.New(), "alice", "rider")
	require.NoError(t, err)

	handler := Auth(testJWTConfig, zap.NewNop())(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())
}

func TestAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	handler := Auth(testJWTConfig, zap.NewNop())(protectedEcho(t))

	for _, header := range []string{"", "Bearer", "Basic abc123", "Bearer bad.token.here"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	token, err := utils.GenerateToken(utils.JWTConfig{Secret: "other-secret", ExpiryHours: 1}, uuid.New(), "alice", "rider")
	require.NoError(t, err)

	handler := Auth(testJWTConfig, zap.NewNop())(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireRole(entity.RoleOperator, zap.NewNop())(next)

	// Operator passes.
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(utils.SetUserContext(req.Context(), uuid.New(), "op", entity.RoleOperator))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Rider is forbidden.
	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(utils.SetUserContext(req.Context(), uuid.New(), "alice", entity.RoleRider))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// No identity at all.
	req = httptest.NewRequest(http.MethodPost, "/", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
