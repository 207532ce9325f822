package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/everkeep/everkeep/internal/common"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps the shared taxonomy onto the wire. Anything outside the
// taxonomy is logged and collapsed into a generic 500 so internals never
// leak to the caller.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *common.Error
	if errors.As(err, &appErr) {
		s.writeJSON(w, appErr.Status, map[string]errorBody{
			"error": {Code: appErr.Code, Message: appErr.Message},
		})
		return
	}

	switch {
	case errors.Is(err, common.ErrTokenExpired), errors.Is(err, common.ErrInvalidToken):
		s.writeJSON(w, http.StatusUnauthorized, map[string]errorBody{
			"error": {Code: "AUTH_ERROR", Message: "Invalid or expired token"},
		})
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]errorBody{
			"error": {Code: "APP_ERROR", Message: "Something went wrong"},
		})
	}
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.ValidationError("Invalid request body")
	}
	return nil
}
