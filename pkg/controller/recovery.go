package controller

import (
	"net/http"
	"runtime/debug"
	"verifier/pkg/logger"

	"go.uber.org/zap"
)

// WithRecovery returns a middleware that turns downstream panics into a 500
// response and logs the panic value with its stack. http.ErrAbortHandler is
// re-raised so the server can abort the connection as usual.
func WithRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				panic(p)
			}

			logger.Error(r.Context(), "captured panic in handler",
				zap.Any("panic", p),
				zap.ByteString("stack", debug.Stack()),
			)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error_message":"internal error"}`))
		}()

		next.ServeHTTP(w, r)
	})
}
