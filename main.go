package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/driftlock/timevault/internal/cmd/bundle"
	"github.com/driftlock/timevault/internal/cmd/export"
	"github.com/driftlock/timevault/internal/cmd/migrate"
	"github.com/driftlock/timevault/internal/cmd/restore"
	"github.com/driftlock/timevault/internal/cmd/seal"
	"github.com/driftlock/timevault/internal/cmd/unlock"
	"github.com/driftlock/timevault/internal/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Init(prometheus.DefaultRegisterer)

	app := &cli.Command{
		Name:  "timevault",
		Usage: "Create, unlock, export, and restore drand-timelocked vaults",
		Commands: []*cli.Command{
			seal.Command(),
			unlock.Command(),
			export.Command(),
			restore.Command(),
			bundle.ExportCommand(),
			bundle.RestoreCommand(),
			migrate.Command(),
		},
	}
	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
