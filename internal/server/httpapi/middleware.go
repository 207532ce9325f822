package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/everkeep/everkeep/internal/common"
	"github.com/everkeep/everkeep/internal/server/auth"
	"github.com/everkeep/everkeep/internal/server/models"
)

type contextKey string

const actorKey contextKey = "actor"

// authenticate resolves the bearer token into the acting user and stores it
// in the request context. Every guarded handler reads the actor from there,
// so authorization is always evaluated against the caller of this request,
// never shared state.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			s.writeError(w, r, common.AuthorizationError("Missing bearer token"))
			return
		}

		userID, err := auth.GetUserIDFromToken(strings.TrimPrefix(header, "Bearer "), s.secret)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		id, err := uuid.Parse(userID)
		if err != nil {
			s.writeError(w, r, common.ErrInvalidToken)
			return
		}

		actor, err := s.users.GetByID(r.Context(), id)
		if err != nil {
			// the account may have been deleted since the token was minted
			s.writeError(w, r, common.AuthorizationError(""))
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, actor)))
	})
}

func actorFrom(ctx context.Context) *models.User {
	actor, _ := ctx.Value(actorKey).(*models.User)
	return actor
}
