package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/everkeep/everkeep/internal/server/models"
)

// Pending lists accounts awaiting an approval decision.
func (a *App) Pending(ctx context.Context) error {
	users, err := a.api.ListPendingUsers(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if len(users) == 0 {
		printlnFn("No pending users")
		return nil
	}

	for _, u := range users {
		printlnFn(formatUserLine(&u))
	}
	return nil
}

// Users lists every account.
func (a *App) Users(ctx context.Context) error {
	users, err := a.api.ListUsers(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	for _, u := range users {
		printlnFn(formatUserLine(&u))
	}
	return nil
}

func (a *App) setUserStatus(ctx context.Context, id string, status models.AccountStatus) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		printlnFn("Invalid id:", id)
		return err
	}

	user, err := a.api.UpdateUserStatus(ctx, userID, status)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("%s is now %s", user.Email, user.Status))
	return nil
}

func (a *App) Approve(ctx context.Context, id string) error {
	return a.setUserStatus(ctx, id, models.AccountApproved)
}

func (a *App) Reject(ctx context.Context, id string) error {
	return a.setUserStatus(ctx, id, models.AccountRejected)
}

func formatUserLine(u *models.User) string {
	return fmt.Sprintf("%s  %-30s %-5s %s", u.ID, u.Email, u.Role, u.Status)
}
