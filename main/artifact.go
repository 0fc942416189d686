// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ava-labs/contractvm/contractvm"
)

type artifactOptions struct {
	program     string
	payloadPath string
	outPath     string
}

func newArtifactCommand() *cobra.Command {
	o := &artifactOptions{}
	cmd := &cobra.Command{
		Use:   "artifact",
		Short: "Write a deployable artifact for a catalog program",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd)
		},
	}

	cmd.Flags().StringVar(&o.program, "program", "", "program name the artifact deploys")
	cmd.Flags().StringVar(&o.payloadPath, "payload", "", "optional payload file carried in the artifact")
	cmd.Flags().StringVar(&o.outPath, "out", "", "artifact file to write")
	_ = cmd.MarkFlagRequired("program")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func (o *artifactOptions) run(cmd *cobra.Command) error {
	program, err := contractvm.NewSymbol(o.program)
	if err != nil {
		return fmt.Errorf("program name: %w", err)
	}

	var payload []byte
	if o.payloadPath != "" {
		if payload, err = os.ReadFile(o.payloadPath); err != nil {
			return fmt.Errorf("couldn't read payload: %w", err)
		}
	}

	artifact, err := contractvm.EncodeArtifact(program, payload)
	if err != nil {
		return err
	}
	if err := os.WriteFile(o.outPath, artifact, 0o644); err != nil {
		return fmt.Errorf("couldn't write artifact: %w", err)
	}

	// the ID a derived deploy of this artifact will get
	fmt.Fprintln(cmd.OutOrStdout(), contractvm.FormatContractID(contractvm.ContractIDFromArtifact(artifact)))
	return nil
}
