// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cfg := &config{}
	cmd := &cobra.Command{
		Use:          "contractvm",
		Short:        "Sandboxed smart-contract runtime",
		Long:         "contractvm hosts a local contract ledger: deploy artifacts, invoke their functions and inspect their storage.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.load(cmd.Root().PersistentFlags()); err != nil {
				return err
			}
			return cfg.setupLogging()
		},
	}

	cmd.PersistentFlags().String(dataDirKey, ".contractvm", "directory holding the sandbox ledger")
	cmd.PersistentFlags().String(logLevelKey, "info", "lowest level that gets logged (debug, info, warn, error)")

	cmd.AddCommand(
		newArtifactCommand(),
		newDeployCommand(cfg),
		newInvokeCommand(cfg),
		newReadCommand(cfg),
		newServeCommand(cfg),
		newVersionCommand(),
	)
	return cmd
}
