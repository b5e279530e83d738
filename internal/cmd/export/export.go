// Package export implements the "export" CLI subcommand: fetch a vault by
// id from the local index and write its VEF document (spec.md §4.7.3) to a
// file named per spec.md §6.1's filename convention.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/driftlock/timevault/internal/cmd/common"
	"github.com/driftlock/timevault/internal/config"
	"github.com/driftlock/timevault/internal/vef"
)

// Command returns the export sub-command.
func Command() *cli.Command {
	cfg := config.DefaultConfig()
	var id, outFile string

	return &cli.Command{
		Name:  "export",
		Usage: "Export a vault to a VEF document",
		Flags: append(common.SharedFlags(&cfg),
			&cli.StringFlag{
				Name:        "id",
				Required:    true,
				Destination: &id,
				Usage:       "Vault id to export",
			},
			&cli.StringFlag{
				Name:        "out",
				Destination: &outFile,
				Usage:       "Output file path; defaults to vault-<id>.vef.json",
			},
			&cli.StringFlag{
				Name:        "app-version",
				Value:       cfg.AppVersion,
				Destination: &cfg.AppVersion,
				Usage:       "app_version label stamped into the VEF",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			index, err := common.OpenIndex(&cfg)
			if err != nil {
				return err
			}

			ref, ok, err := index.Get(ctx, id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("export: no vault with id %q in the local index", id)
			}

			doc, err := vef.Export(ref, cfg.AppVersion)
			if err != nil {
				return err
			}

			raw, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}

			path := outFile
			if path == "" {
				path = fmt.Sprintf("vault-%s.vef.json", doc.VaultID)
			}
			return os.WriteFile(path, raw, 0o600)
		},
	}
}
