package cli

import (
	"sync"

	"github.com/everkeep/everkeep/internal/server/models"
)

// session is the process-wide single slot holding at most one authenticated
// actor. It is set on successful login, cleared on logout, and read before
// every guarded command. Nothing is persisted across restarts; the user
// re-authenticates on the next run.
type session struct {
	mu   sync.Mutex
	user *models.User
}

func (s *session) set(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

func (s *session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

func (s *session) current() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}
