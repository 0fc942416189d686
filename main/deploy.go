// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/spf13/cobra"

	"github.com/ava-labs/contractvm/contractvm"
)

type deployOptions struct {
	wasmPath string
	id       string
}

func newDeployCommand(cfg *config) *cobra.Command {
	o := &deployOptions{}
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a contract artifact into the sandbox ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&o.wasmPath, "wasm", "", "path to the contract artifact")
	cmd.Flags().StringVar(&o.id, "id", "", "contract ID to deploy under (default: artifact hash)")
	_ = cmd.MarkFlagRequired("wasm")
	return cmd
}

func (o *deployOptions) run(cmd *cobra.Command, cfg *config) error {
	artifact, err := os.ReadFile(o.wasmPath)
	if err != nil {
		return fmt.Errorf("couldn't read artifact: %w", err)
	}

	id := ids.Empty
	if o.id != "" {
		if id, err = contractvm.ParseContractID(o.id); err != nil {
			return err
		}
	}

	rt, err := cfg.openRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	newID, err := rt.Deploy(artifact, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), contractvm.FormatContractID(newID))
	return nil
}
