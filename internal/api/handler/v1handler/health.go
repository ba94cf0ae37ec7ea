package v1handler

import (
	"net/http"

	"github.com/go-faster/jx"
)

// Health reports service liveness. Always 200 with a static body.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("status")
		e.Str("ok")
		e.ObjEnd()
	})
}
