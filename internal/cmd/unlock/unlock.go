// Package unlock implements the "unlock" CLI subcommand (spec.md §4.4/§4.5
// Unlock path): fetch the vault by id from the local index, attempt
// decapsulation and decryption, print the recovered plaintext.
package unlock

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/driftlock/timevault/internal/cmd/common"
	"github.com/driftlock/timevault/internal/config"
	"github.com/driftlock/timevault/internal/vaultcore"
)

// Command returns the unlock sub-command.
func Command() *cli.Command {
	cfg := config.DefaultConfig()
	var id string

	return &cli.Command{
		Name:  "unlock",
		Usage: "Unlock a vault by id and print its plaintext",
		Flags: append(common.SharedFlags(&cfg),
			&cli.StringFlag{
				Name:        "id",
				Required:    true,
				Destination: &id,
				Usage:       "Vault id to unlock",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, err := common.OpenBeaconClient(&cfg)
			if err != nil {
				return err
			}
			index, err := common.OpenIndex(&cfg)
			if err != nil {
				return err
			}

			ref, ok, err := index.Get(ctx, id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("unlock: no vault with id %q in the local index", id)
			}

			c, err := client.ChainInfo(ctx)
			if err != nil {
				return err
			}

			plaintext, err := vaultcore.Unlock(ctx, c, client, index, ref)
			if err != nil {
				return err
			}

			_, err = cmd.Writer.Write(plaintext)
			return err
		},
	}
}

