// Package models defines the persistent types shared by repositories,
// services, and the HTTP boundary.
package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// AccountStatus gates login: only approved accounts may authenticate.
// pending moves to approved or rejected exactly once; both are terminal.
type AccountStatus string

const (
	AccountPending  AccountStatus = "pending"
	AccountApproved AccountStatus = "approved"
	AccountRejected AccountStatus = "rejected"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// User is a registered account. PasswordHash is an opaque argon2id verifier
// and never leaves the server. Email is immutable after registration.
type User struct {
	ID                 uuid.UUID     `json:"id"`
	Email              string        `json:"email"`
	PasswordHash       string        `json:"-"`
	Role               Role          `json:"role"`
	Status             AccountStatus `json:"status"`
	ProfileName        *string       `json:"profile_name,omitempty"`
	ThemePreference    Theme         `json:"theme_preference"`
	EmailNotifications bool          `json:"email_notifications"`
	CreatedAt          time.Time     `json:"created_at"`
	LastLogin          time.Time     `json:"last_login"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
