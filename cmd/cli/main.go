package main

import (
	"context"

	"github.com/everkeep/everkeep/internal/client/cli"
	"github.com/everkeep/everkeep/internal/client/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app := cli.NewApp(cfg)
	app.Run(ctx)
}
