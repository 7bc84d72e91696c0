package main

import (
	"context"
	"log"
	"os"

	"github.com/BAWimmer/lockbox/internal/buildinfo"
	"github.com/BAWimmer/lockbox/internal/cli"
	"github.com/BAWimmer/lockbox/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
