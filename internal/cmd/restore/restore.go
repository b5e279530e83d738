// Package restore implements the "restore" CLI subcommand: parse a VEF
// document from disk and restore it into the local index, idempotent by id
// (spec.md §4.7.3's restore_one).
package restore

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/driftlock/timevault/internal/cmd/common"
	"github.com/driftlock/timevault/internal/config"
	"github.com/driftlock/timevault/internal/vef"
)

// Command returns the restore sub-command.
func Command() *cli.Command {
	cfg := config.DefaultConfig()
	var inFile string

	return &cli.Command{
		Name:  "restore",
		Usage: "Restore a vault from a VEF document",
		Flags: append(common.SharedFlags(&cfg),
			&cli.StringFlag{
				Name:        "file",
				Required:    true,
				Destination: &inFile,
				Usage:       "Path to the VEF JSON document to restore",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			raw, err := os.ReadFile(inFile)
			if err != nil {
				return err
			}

			doc, err := vef.Validate(raw)
			if err != nil {
				return err
			}

			index, err := common.OpenIndex(&cfg)
			if err != nil {
				return err
			}
			existing, err := index.IDs(ctx)
			if err != nil {
				return err
			}

			outcome := vef.RestoreOne(ctx, doc, existing, index)
			switch {
			case outcome.Restored:
				fmt.Fprintf(cmd.Writer, "restored %s\n", outcome.ID)
			case outcome.Skipped:
				fmt.Fprintf(cmd.Writer, "skipped %s (already present)\n", outcome.ID)
			case outcome.Failed:
				return fmt.Errorf("restore: %s", outcome.Reason)
			}
			return nil
		},
	}
}
