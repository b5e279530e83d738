// Package seal implements the "seal" CLI subcommand: create_draft followed
// immediately by arm_draft (spec.md §4.5), the two-phase commit collapsed
// into one command for a human driving the CLI end to end, mirroring the
// teacher's cmd/serve and cmd/migrate shape — one Command() per verb, flags
// built against a shared config.Config.
package seal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/driftlock/timevault/internal/cmd/common"
	"github.com/driftlock/timevault/internal/config"
	"github.com/driftlock/timevault/internal/vaultcore"
)

// Command returns the seal sub-command.
func Command() *cli.Command {
	cfg := config.DefaultConfig()
	var plaintext, plaintextFile, name string
	var unlockInSeconds int64
	var destroyAfterRead bool

	return &cli.Command{
		Name:  "seal",
		Usage: "Create and arm a time-locked vault",
		Flags: append(common.SharedFlags(&cfg),
			&cli.StringFlag{
				Name:        "plaintext",
				Usage:       "Plaintext to seal (mutually exclusive with --plaintext-file)",
				Destination: &plaintext,
			},
			&cli.StringFlag{
				Name:        "plaintext-file",
				Usage:       "Path to a file containing the plaintext to seal; \"-\" reads stdin",
				Destination: &plaintextFile,
			},
			&cli.Int64Flag{
				Name:        "unlock-in-seconds",
				Usage:       "Seconds from now at which the vault becomes unlockable",
				Required:    true,
				Destination: &unlockInSeconds,
			},
			&cli.BoolFlag{
				Name:        "destroy-after-read",
				Usage:       "Delete the vault's local-index entry after a successful unlock",
				Destination: &destroyAfterRead,
			},
			&cli.StringFlag{
				Name:        "name",
				Usage:       "Optional human-readable vault name",
				Destination: &name,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			raw, err := readPlaintext(plaintext, plaintextFile)
			if err != nil {
				return err
			}

			client, err := common.OpenBeaconClient(&cfg)
			if err != nil {
				return err
			}
			index, err := common.OpenIndex(&cfg)
			if err != nil {
				return err
			}

			c, err := client.ChainInfo(ctx)
			if err != nil {
				return err
			}
			unlockTimeMs := time.Now().Add(time.Duration(unlockInSeconds) * time.Second).UnixMilli()

			draft, err := vaultcore.CreateDraft(c, raw, unlockTimeMs, destroyAfterRead, name)
			if err != nil {
				return err
			}
			defer draft.WipeDraft()

			ref, err := vaultcore.ArmDraft(ctx, client, index, draft)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.Writer)
			enc.SetIndent("", "  ")
			return enc.Encode(ref)
		},
	}
}

func readPlaintext(plaintext, plaintextFile string) ([]byte, error) {
	if plaintext != "" && plaintextFile != "" {
		return nil, fmt.Errorf("seal: --plaintext and --plaintext-file are mutually exclusive")
	}
	if plaintext != "" {
		return []byte(plaintext), nil
	}
	if plaintextFile == "-" {
		return io.ReadAll(os.Stdin)
	}
	if plaintextFile != "" {
		return os.ReadFile(plaintextFile)
	}
	return nil, fmt.Errorf("seal: one of --plaintext or --plaintext-file is required")
}
