package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a server-stored, single-use token rotated on every refresh.
type RefreshToken struct {
	Token   string
	UserID  uuid.UUID
	Expires time.Time
}
