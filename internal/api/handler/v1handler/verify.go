package v1handler

import (
	"net/http"
	"verifier/pkg/domain"
	"verifier/pkg/serrors"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

type verifyRequest struct {
	Email    string
	SkipSMTP bool
}

func decodeVerifyRequest(body []byte) (verifyRequest, error) {
	var (
		req      verifyRequest
		hasEmail bool
	)

	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "email":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "email")
			}
			req.Email = v
			hasEmail = true

			return nil
		case "skip_smtp":
			v, err := d.Bool()
			if err != nil {
				return errors.Wrap(err, "skip_smtp")
			}
			req.SkipSMTP = v

			return nil
		default:
			return d.Skip()
		}
	}); err != nil {
		return req, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}
	if !hasEmail {
		return req, serrors.With(serrors.ErrBadRequest, "missing email field")
	}

	return req, nil
}

func encodeResult(e *jx.Encoder, result domain.Result) {
	e.ObjStart()
	e.FieldStart("email")
	e.Str(result.Email)
	e.FieldStart("status")
	e.Str(string(result.Status))
	e.FieldStart("reason")
	e.Str(result.Reason)
	e.ObjEnd()
}

// Verify handles POST /v1/verify: it runs the pipeline for a single address
// and always answers 200 with the tri-state outcome.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := readBody(w, r)
	if err != nil {
		writeError(ctx, w, err)

		return
	}
	req, err := decodeVerifyRequest(body)
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	outcome := h.deps.Verifier.Verify(ctx, req.Email, req.SkipSMTP)

	writeJSON(ctx, w, http.StatusOK, func(e *jx.Encoder) {
		encodeResult(e, domain.Result{Email: req.Email, Status: outcome.Status, Reason: outcome.Reason})
	})
}
