package v1handler

import (
	"net/http"
	"verifier/pkg/domain"
	"verifier/pkg/serrors"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

type batchRequest struct {
	Emails   []string
	SkipSMTP bool
}

func decodeBatchRequest(body []byte) (batchRequest, error) {
	var (
		req       batchRequest
		hasEmails bool
	)

	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "emails":
			hasEmails = true

			return d.Arr(func(d *jx.Decoder) error {
				v, err := d.Str()
				if err != nil {
					return errors.Wrap(err, "emails")
				}
				req.Emails = append(req.Emails, v)

				return nil
			})
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
	if !hasEmails {
		return req, serrors.With(serrors.ErrBadRequest, "missing emails field")
	}

	return req, nil
}

func encodeBatchReport(e *jx.Encoder, report *domain.BatchReport) {
	e.ObjStart()
	e.FieldStart("summary")
	e.ObjStart()
	e.FieldStart("total")
	e.Int(report.Summary.Total)
	e.FieldStart("valid")
	e.Int(report.Summary.Valid)
	e.FieldStart("invalid")
	e.Int(report.Summary.Invalid)
	e.FieldStart("unknown")
	e.Int(report.Summary.Unknown)
	e.ObjEnd()
	e.FieldStart("results")
	e.ArrStart()
	for _, result := range report.Results {
		encodeResult(e, result)
	}
	e.ArrEnd()
	e.ObjEnd()
}

// VerifyBatch handles POST /v1/verify/batch: the whole list is verified in
// input order and summarized. Oversized batches are refused with 413 before
// any address is processed.
func (h *Handler) VerifyBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := readBody(w, r)
	if err != nil {
		writeError(ctx, w, err)

		return
	}
	req, err := decodeBatchRequest(body)
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	report, err := h.deps.Verifier.VerifyBatch(ctx, req.Emails, req.SkipSMTP)
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	writeJSON(ctx, w, http.StatusOK, func(e *jx.Encoder) {
		encodeBatchReport(e, report)
	})
}
