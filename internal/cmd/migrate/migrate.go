// Package migrate implements the "migrate" CLI subcommand: apply the
// sqlite local-index schema ahead of time, mirroring the teacher's
// cmd/migrate (there: postgres/mongo/qdrant schema setup via
// registrymigrate.RunAll; here: a single gorm AutoMigrate call since there
// is exactly one concrete index backend worth pre-migrating).
package migrate

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/driftlock/timevault/internal/localindex/sqlite"
)

// Command returns the migrate sub-command.
func Command() *cli.Command {
	var path string

	return &cli.Command{
		Name:  "migrate",
		Usage: "Create or upgrade the sqlite local-index schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "index-sqlite-path",
				Sources:     cli.EnvVars("TIMEVAULT_INDEX_SQLITE_PATH"),
				Value:       "timevault.db",
				Destination: &path,
				Usage:       "Path to the sqlite index file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log.Info("running local-index migrations", "path", path)
			if _, err := sqlite.Open(path); err != nil {
				return err
			}
			log.Info("local-index schema is up to date")
			return nil
		},
	}
}
