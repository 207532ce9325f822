// Package cli implements the interactive Everkeep client: a REPL over the
// HTTP API with a single in-process session.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/everkeep/everkeep/internal/client/api"
	"github.com/everkeep/everkeep/internal/client/config"
)

type App struct {
	config  *config.Config
	api     *api.Client
	session *session
	reader  *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config:  c,
		api:     api.NewClient(c.ServerBaseURL, c.RequestTimeout),
		session: &session{},
		reader:  bufio.NewReader(os.Stdin),
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.current() != nil
}

func (a *App) isAdmin() bool {
	return a.session.current().IsAdmin()
}

// getStatus renders the prompt suffix: the logged-in email, or nothing.
func (a *App) getStatus() string {
	u := a.session.current()
	if u == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", u.Email)
}

func (a *App) Run(ctx context.Context) {
	fmt.Println("Welcome to Everkeep CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}
