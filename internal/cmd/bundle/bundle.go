// Package bundle implements the "bundle-export"/"bundle-restore" CLI
// subcommands: spec.md §4.7.3's export_bundle/restore_bundle, plus an
// optional durable sink for the resulting JSON via internal/bundlestore —
// the bundle-export analogue of the teacher's attachment store, since a
// backup format that can only be written to a local file is an unfinished
// feature (see DESIGN.md).
package bundle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/driftlock/timevault/internal/cmd/common"
	"github.com/driftlock/timevault/internal/config"
	registrybundlestore "github.com/driftlock/timevault/internal/registry/bundlestore"
	"github.com/driftlock/timevault/internal/vaultcore"
	"github.com/driftlock/timevault/internal/vef"

	// Import bundle-store backends to trigger init() registration.
	_ "github.com/driftlock/timevault/internal/bundlestore"
	_ "github.com/driftlock/timevault/internal/bundlestore/s3"
)

// nowFunc is swappable in tests that need to pin "now".
var nowFunc = time.Now

// ExportCommand returns the bundle-export sub-command.
func ExportCommand() *cli.Command {
	cfg := config.DefaultConfig()
	var ids, outFile, storeBackend, storeKey string

	return &cli.Command{
		Name:  "bundle-export",
		Usage: "Export several vaults as a single backup bundle",
		Flags: append(common.SharedFlags(&cfg),
			&cli.StringFlag{
				Name:        "ids",
				Required:    true,
				Destination: &ids,
				Usage:       "Comma-separated vault ids to include",
			},
			&cli.StringFlag{
				Name:        "out",
				Destination: &outFile,
				Usage:       "Local output file path; defaults to lock-backup-<date>.vef.json",
			},
			&cli.StringFlag{
				Name:        "app-version",
				Value:       cfg.AppVersion,
				Destination: &cfg.AppVersion,
				Usage:       "app_version label stamped into the bundle",
			},
			&cli.StringFlag{
				Name:        "store",
				Destination: &storeBackend,
				Usage:       "Optional durable bundle-store backend (" + strings.Join(registrybundlestore.Names(), "|") + ") to also push the bundle to",
			},
			&cli.StringFlag{
				Name:        "store-key",
				Destination: &storeKey,
				Usage:       "Key to store the bundle under (defaults to the output file path)",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			index, err := common.OpenIndex(&cfg)
			if err != nil {
				return err
			}

			var refs []vaultcore.VaultRef
			for _, id := range strings.Split(ids, ",") {
				id = strings.TrimSpace(id)
				if id == "" {
					continue
				}
				ref, ok, err := index.Get(ctx, id)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("bundle-export: no vault with id %q in the local index", id)
				}
				refs = append(refs, ref)
			}

			exportTs := nowFunc().UnixMilli()
			b, errs := vef.ExportBundle(refs, cfg.AppVersion, exportTs)
			for _, e := range errs {
				fmt.Fprintf(cmd.ErrWriter, "bundle-export: %v\n", e)
			}
			if b == nil {
				return fmt.Errorf("bundle-export: no vault exported successfully")
			}

			raw, err := json.MarshalIndent(b, "", "  ")
			if err != nil {
				return err
			}

			path := outFile
			if path == "" {
				path = fmt.Sprintf("lock-backup-%s.vef.json", time.UnixMilli(exportTs).UTC().Format("2006-01-02"))
			}
			if err := os.WriteFile(path, raw, 0o600); err != nil {
				return err
			}

			if storeBackend == "" {
				return nil
			}
			loader, err := registrybundlestore.Select(storeBackend)
			if err != nil {
				return err
			}
			store, err := loader(ctx)
			if err != nil {
				return err
			}
			key := storeKey
			if key == "" {
				key = path
			}
			return store.Put(ctx, key, bytes.NewReader(raw), int64(len(raw)))
		},
	}
}

// RestoreCommand returns the bundle-restore sub-command.
func RestoreCommand() *cli.Command {
	cfg := config.DefaultConfig()
	var inFile string

	return &cli.Command{
		Name:  "bundle-restore",
		Usage: "Restore every vault in a backup bundle",
		Flags: append(common.SharedFlags(&cfg),
			&cli.StringFlag{
				Name:        "file",
				Required:    true,
				Destination: &inFile,
				Usage:       "Path to the bundle JSON document to restore",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			raw, err := os.ReadFile(inFile)
			if err != nil {
				return err
			}

			result, err := vef.Parse(raw)
			if err != nil {
				return err
			}
			if result.Bundle == nil {
				return fmt.Errorf("bundle-restore: %s is not a backup bundle", inFile)
			}

			index, err := common.OpenIndex(&cfg)
			if err != nil {
				return err
			}
			existing, err := index.IDs(ctx)
			if err != nil {
				return err
			}

			outcome := vef.RestoreBundle(ctx, result.Bundle, existing, index)
			fmt.Fprintf(cmd.Writer, "total=%d restored=%d skipped=%d errors=%d\n",
				outcome.Total, outcome.Restored, outcome.Skipped, len(outcome.Errors))
			for _, e := range outcome.Errors {
				fmt.Fprintf(cmd.ErrWriter, "bundle-restore: %s\n", e)
			}
			return nil
		},
	}
}
