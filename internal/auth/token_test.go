package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdul-aleem23/AnalyticsCo-backend/internal/auth"
)

const testSecret = "test-secret-key"

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.CreateAccessToken("admin@example.com", "user-1", testSecret, 1)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := auth.VerifyToken(token, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Subject)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := auth.CreateAccessToken("admin@example.com", "user-1", testSecret, 1)
	assert.NoError(t, err)

	claims, err := auth.VerifyToken(token, "a-different-secret")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestVerifyTokenExpired(t *testing.T) {
	token, err := auth.CreateAccessToken("admin@example.com", "user-1", testSecret, -1)
	assert.NoError(t, err)

	claims, err := auth.VerifyToken(token, testSecret)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestVerifyTokenGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		claims, err := auth.VerifyToken(raw, testSecret)
		assert.Error(t, err, "token %q", raw)
		assert.Nil(t, claims)
	}
}

func TestExtractTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin/campaigns", nil)
	r.Header.Set("Authorization", "Bearer some-token")

	token, err := auth.ExtractTokenFromRequest(r)
	assert.NoError(t, err)
	assert.Equal(t, "some-token", token)
}

func TestExtractTokenMissingHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin/campaigns", nil)

	_, err := auth.ExtractTokenFromRequest(r)
	assert.Error(t, err)
}

func TestExtractTokenBadFormat(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin/campaigns", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	_, err := auth.ExtractTokenFromRequest(r)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	var seenEmail string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenEmail = auth.AdminEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := auth.Middleware(testSecret)(next)

	token, err := auth.CreateAccessToken("admin@example.com", "user-1", testSecret, 1)
	assert.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/admin/campaigns", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin@example.com", seenEmail)
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler should not be reached")
	})
	handler := auth.Middleware(testSecret)(next)

	r := httptest.NewRequest(http.MethodGet, "/admin/campaigns", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddlewareRejectsForgedToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler should not be reached")
	})
	handler := auth.Middleware(testSecret)(next)

	forged, err := auth.CreateAccessToken("admin@example.com", "user-1", "attacker-secret", 1)
	assert.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/admin/campaigns", nil)
	r.Header.Set("Authorization", "Bearer "+forged)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
