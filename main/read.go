// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/contractvm/contractvm"
)

type readOptions struct {
	id  string
	key string
}

func newReadCommand(cfg *config) *cobra.Command {
	o := &readOptions{}
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read one entry of a contract's storage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&o.id, "id", "", "contract ID to read from")
	cmd.Flags().StringVar(&o.key, "key", "", "storage key symbol")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func (o *readOptions) run(cmd *cobra.Command, cfg *config) error {
	id, err := contractvm.ParseContractID(o.id)
	if err != nil {
		return err
	}
	key, err := contractvm.NewSymbol(o.key)
	if err != nil {
		return fmt.Errorf("key: %w", err)
	}

	rt, err := cfg.openRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	v, found, err := rt.ReadData(id, key)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("contract %s holds nothing under %s", contractvm.FormatContractID(id), key)
	}

	fmt.Fprintln(cmd.OutOrStdout(), contractvm.FormatVal(v))
	return nil
}
