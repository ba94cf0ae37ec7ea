// Package v1handler implements the v1 HTTP handlers of the verification API.
// Requests and responses are encoded with jx; failures are mapped from
// semantic error kinds to HTTP status codes in one place.
package v1handler

import (
	"context"
	"io"
	"net/http"
	"verifier/internal/verifier"
	"verifier/pkg/logger"
	"verifier/pkg/serrors"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies well above the largest legal batch.
const maxBodyBytes = 1 << 20

type (
	Deps struct {
		Verifier verifier.Verifier
	}

	Handler struct {
		deps Deps
	}
)

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// readBody drains the request body under the size cap.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, serrors.Wrap(serrors.ErrTooLarge, err, "request body exceeds %d bytes", tooLarge.Limit)
		}

		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not read request body")
	}

	return body, nil
}

// writeJSON renders a response built by encode with the given status code.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	var e jx.Encoder
	encode(&e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(e.Bytes()); err != nil {
		logger.Warn(ctx, "could not write response", zap.Error(err))
	}
}

// writeError maps semantic error kinds to status codes and renders the
// error_message body. Anything unclassified becomes an opaque 500.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	var sErr *serrors.Error
	if errors.As(err, &sErr) {
		switch {
		case errors.Is(err, serrors.ErrBadRequest):
			status = http.StatusBadRequest
		case errors.Is(err, serrors.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, serrors.ErrTooLarge):
			status = http.StatusRequestEntityTooLarge
		case errors.Is(err, serrors.ErrRateLimited):
			status = http.StatusTooManyRequests
		}
		if m := sErr.Message(); m != "" && status != http.StatusInternalServerError {
			message = m
		}
	}

	if status == http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
	} else {
		logger.Debug(ctx, "request rejected", zap.Int("status", status), zap.Error(err))
	}

	writeJSON(ctx, w, status, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("error_message")
		e.Str(message)
		e.ObjEnd()
	})
}
