// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ava-labs/contractvm/contractvm"

	log "github.com/inconshreveable/log15"
)

type invokeOptions struct {
	id   string
	fn   string
	args []string
}

func newInvokeCommand(cfg *config) *cobra.Command {
	o := &invokeOptions{}
	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Invoke a function of a deployed contract",
		Long:  "Invoke runs one contract function against the sandbox ledger. Arguments use the value literal form, for example u32:7, sym:COUNTER or plain 42.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&o.id, "id", "", "contract ID to invoke")
	cmd.Flags().StringVar(&o.fn, "fn", "", "function to invoke")
	cmd.Flags().StringArrayVar(&o.args, "arg", nil, "argument value literal (repeatable, in order)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("fn")
	return cmd
}

func (o *invokeOptions) run(cmd *cobra.Command, cfg *config) error {
	id, err := contractvm.ParseContractID(o.id)
	if err != nil {
		return err
	}
	fn, err := contractvm.NewSymbol(o.fn)
	if err != nil {
		return fmt.Errorf("function name: %w", err)
	}

	args := make([]contractvm.Val, len(o.args))
	for i, lit := range o.args {
		if args[i], err = contractvm.ParseVal(lit); err != nil {
			return fmt.Errorf("arg %d: %w", i, err)
		}
	}

	rt, err := cfg.openRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	res, err := rt.Invoke(id, fn, args)
	if err != nil {
		return err
	}

	for _, ev := range res.Events {
		topics := make([]string, len(ev.Topics))
		for i, topic := range ev.Topics {
			topics[i] = contractvm.FormatVal(topic)
		}
		log.Info("event",
			"contract", contractvm.FormatContractID(ev.ContractID),
			"topics", strings.Join(topics, ","),
			"data", contractvm.FormatVal(ev.Data),
		)
	}

	fmt.Fprintln(cmd.OutOrStdout(), contractvm.FormatVal(res.Value))
	return nil
}
