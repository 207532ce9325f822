package cli

import (
	"context"
	"fmt"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and attempts to create
// a new account. New accounts start pending and cannot log in until an admin
// approves them, so the user is told to wait.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.api.Register(ctx, email, string(password)); err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn("Registered. Your account is pending approval by an administrator.")
	return nil
}

// Login prompts for credentials and, on success, fills the session slot.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	a.session.set(user)
	printlnFn("Logged in as", user.Email)
	return nil
}

// Logout revokes the refresh token server-side and clears the session slot.
func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
	}
	a.session.clear()
	printlnFn("Logged out")
	return nil
}

// Whoami prints the current actor.
func (a *App) Whoami(ctx context.Context) error {
	u := a.session.current()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}

	name := ""
	if u.ProfileName != nil {
		name = " " + *u.ProfileName
	}
	printlnFn(fmt.Sprintf("%s%s [%s, %s]", u.Email, name, u.Role, u.Status))
	return nil
}
