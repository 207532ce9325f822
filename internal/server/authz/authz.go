// Package authz is the pure authorization policy: given an actor and a
// target resource/action, allow or deny. It holds no state and touches no
// storage; services call Check before executing any part of a mutation.
package authz

import (
	"github.com/google/uuid"

	"github.com/everkeep/everkeep/internal/common"
	"github.com/everkeep/everkeep/internal/server/models"
)

type Action string

const (
	ActionRegister Action = "register"
	ActionLogin    Action = "login"

	ActionUpdateProfile Action = "updateProfile"
	ActionUpdateStatus  Action = "updateStatus"
	ActionResetPassword Action = "resetPassword"
	ActionListUsers     Action = "listAllUsers"
	ActionListPending   Action = "listPendingUsers"
	ActionDeleteUser    Action = "deleteUser"

	ActionEntryCreate Action = "entryCreate"
	ActionEntryRead   Action = "entryRead"
	ActionEntryUpdate Action = "entryUpdate"
	ActionEntryDelete Action = "entryDelete"
)

// Target identifies what an action operates on. UserID is the subject account
// for user-scoped actions; OwnerID is the entry owner for entry-scoped ones.
type Target struct {
	UserID  uuid.UUID
	OwnerID uuid.UUID
}

// Can decides the policy. Rules, in precedence order:
//
//  1. no actor: only register and login;
//  2. updateProfile: self only;
//  3. updateStatus / listAllUsers / listPendingUsers / deleteUser: admin only;
//  4. resetPassword: self or admin;
//  5. entry create/read/update/delete: owner only.
func Can(actor *models.User, action Action, target Target) bool {
	if actor == nil {
		return action == ActionRegister || action == ActionLogin
	}

	switch action {
	case ActionRegister, ActionLogin:
		return true

	case ActionUpdateProfile:
		return actor.ID == target.UserID

	case ActionUpdateStatus, ActionListUsers, ActionListPending, ActionDeleteUser:
		return actor.Role == models.RoleAdmin

	case ActionResetPassword:
		return actor.ID == target.UserID || actor.Role == models.RoleAdmin

	case ActionEntryCreate, ActionEntryRead, ActionEntryUpdate, ActionEntryDelete:
		return actor.ID == target.OwnerID
	}

	return false
}

// Check wraps Can, returning a common.AuthorizationError on denial.
func Check(actor *models.User, action Action, target Target) error {
	if !Can(actor, action, target) {
		return common.AuthorizationError("")
	}
	return nil
}
