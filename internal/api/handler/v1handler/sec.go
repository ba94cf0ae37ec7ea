package v1handler

import (
	"context"
	"net/http"
	"strings"
	"verifier/pkg/logger"
	"verifier/pkg/serrors"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// CtxKey is the context key type for values this package stores on request
// contexts.
type CtxKey string

// SubjectKey is the context key under which the authenticated token subject
// is stored.
const SubjectKey CtxKey = "Subject"

// GetSubjectFromContext returns the authenticated subject, or "" when the
// request did not pass through WithAuth.
func GetSubjectFromContext(ctx context.Context) string {
	s, _ := ctx.Value(SubjectKey).(string)

	return s
}

// WithAuth returns a middleware that requires a bearer token signed with the
// HS256 secret. The token subject is stored on the context and added to the
// request-scoped logger.
func WithAuth(secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw, err := bearerToken(r)
			if err != nil {
				writeError(ctx, w, err)

				return
			}

			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(raw, claims,
				func(t *jwt.Token) (any, error) { return []byte(secret), nil },
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				writeError(ctx, w, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid bearer token"))

				return
			}

			ctx = context.WithValue(ctx, SubjectKey, claims.Subject)
			ctx = logger.WithFields(ctx, zap.String("subject", claims.Subject))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", serrors.With(serrors.ErrUnauthorized, "missing Authorization header")
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", serrors.With(serrors.ErrUnauthorized, "Authorization header is not a bearer token")
	}

	return strings.TrimPrefix(header, prefix), nil
}
