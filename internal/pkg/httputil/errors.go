package httputil

import (
	"errors"
	"net/http"

	"github.com/abijith/user-directory/internal/pkg/ctxlog"
)

// ErrorMapping defines how a domain error maps to an HTTP response.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string // if empty, uses err.Error()
}

// HandleError maps a domain error to an HTTP response using provided mappings.
// If no mapping matches, logs the error and returns 500 Internal Server Error.
func HandleError(w http.ResponseWriter, r *http.Request, err error, mappings []ErrorMapping) {
	for _, m := range mappings {
		if errors.Is(err, m.Error) {
			msg := m.Message
			if msg == "" {
				msg = err.Error()
			}
			Error(w, r, m.Status, msg)
			return
		}
	}
	ctxlog.FromContext(r.Context()).Error("internal error", "error", err)
	Error(w, r, http.StatusInternalServerError, "internal error")
}
