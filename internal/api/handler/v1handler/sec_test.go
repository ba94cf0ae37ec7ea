package v1handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"verifier/internal/api/handler/v1handler"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signJWTHS256(tb testing.TB, secret string, sub string, issuedAt time.Time, exp time.Time) string {
	tb.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(exp),
		NotBefore: jwt.NewNumericDate(issuedAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(tb, err, "failed to sign token")

	return signed
}

// authProbe wires WithAuth in front of a handler that records the subject it
// observed on the context.
func authProbe(secret string) (http.Handler, *string) {
	var subject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject = v1handler.GetSubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	return v1handler.WithAuth(secret)(next), &subject
}

func TestWithAuth_ValidToken(t *testing.T) {
	handler, subject := authProbe(testSecret)

	now := time.Now()
	tkn := signJWTHS256(t, testSecret, "svc-batch-import", now, now.Add(time.Hour))

	req := httptest.NewRequest(http.MethodPost, "/v1/verify", nil)
	req.Header.Set("Authorization", "Bearer "+tkn)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Result().StatusCode)
	require.Equal(t, "svc-batch-import", *subject)
}

func TestWithAuth_MissingHeader(t *testing.T) {
	handler, _ := authProbe(testSecret)

	req := httptest.NewRequest(http.MethodPost, "/v1/verify", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Result().StatusCode)
	require.JSONEq(t, `{"error_message":"missing Authorization header"}`, rec.Body.String())
}

func TestWithAuth_NotBearer(t *testing.T) {
	handler, _ := authProbe(testSecret)

	req := httptest.NewRequest(http.MethodPost, "/v1/verify", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Result().StatusCode)
	require.JSONEq(t, `{"error_message":"Authorization header is not a bearer token"}`, rec.Body.String())
}

func TestWithAuth_InvalidSignature(t *testing.T) {
	handler, _ := authProbe(testSecret)

	now := time.Now()
	tkn := signJWTHS256(t, "other-secret", "svc", now, now.Add(time.Hour))

	req := httptest.NewRequest(http.MethodPost, "/v1/verify", nil)
	req.Header.Set("Authorization", "Bearer "+tkn)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Result().StatusCode)
	require.JSONEq(t, `{"error_message":"invalid bearer token"}`, rec.Body.String())
}

func TestWithAuth_ExpiredToken(t *testing.T) {
	handler, _ := authProbe(testSecret)

	now := time.Now()
	tkn := signJWTHS256(t, testSecret, "svc", now.Add(-2*time.Hour), now.Add(-time.Hour))

	req := httptest.NewRequest(http.MethodPost, "/v1/verify", nil)
	req.Header.Set("Authorization", "Bearer "+tkn)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Result().StatusCode)
}

func TestWithAuth_RejectsUnexpectedAlgorithm(t *testing.T) {
	handler, _ := authProbe(testSecret)

	// alg=none style tokens must never pass
	claims := jwt.RegisteredClaims{
		Subject:   "svc",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/verify", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Result().StatusCode)
}
