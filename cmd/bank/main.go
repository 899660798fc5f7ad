package main

import (
	"context"
	"log"
	"os"

	"github.com/avolkovs/securebank/internal/buildinfo"
	"github.com/avolkovs/securebank/internal/cli"
	"github.com/avolkovs/securebank/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
