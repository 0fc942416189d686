// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/contractvm/contractvm"
)

// runCommand executes the CLI the way a shell invocation would and returns
// its stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := newRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(buf.String()), err
}

func TestCommandFlow(t *testing.T) {
	require := require.New(t)
	dataDir := t.TempDir()
	artifactPath := filepath.Join(dataDir, "counter.cvm")

	// artifact prints the ID a derived deploy will use
	derivedID, err := runCommand(t, "artifact", "--program", "counter", "--out", artifactPath)
	require.NoError(err)
	_, err = contractvm.ParseContractID(derivedID)
	require.NoError(err)

	raw, err := os.ReadFile(artifactPath)
	require.NoError(err)
	parsed, err := contractvm.ParseArtifact(raw)
	require.NoError(err)
	require.Equal("counter", parsed.Program.String())

	// deploy agrees with the printed derivation
	deployedID, err := runCommand(t, "deploy",
		"--data-dir", dataDir,
		"--wasm", artifactPath,
	)
	require.NoError(err)
	require.Equal(derivedID, deployedID)

	out, err := runCommand(t, "invoke",
		"--data-dir", dataDir,
		"--id", deployedID,
		"--fn", "increment",
	)
	require.NoError(err)
	require.Equal("u32:1", out)

	out, err = runCommand(t, "read",
		"--data-dir", dataDir,
		"--id", deployedID,
		"--key", "COUNTER",
	)
	require.NoError(err)
	require.Equal("u32:1", out)

	// a missing key is an error, not empty output
	_, err = runCommand(t, "read",
		"--data-dir", dataDir,
		"--id", deployedID,
		"--key", "MISSING",
	)
	require.ErrorContains(err, "holds nothing")
}

func TestCommandInvokeArgs(t *testing.T) {
	require := require.New(t)
	dataDir := t.TempDir()
	artifactPath := filepath.Join(dataDir, "adder.cvm")

	_, err := runCommand(t, "artifact", "--program", "adder", "--out", artifactPath)
	require.NoError(err)
	adderID, err := runCommand(t, "deploy", "--data-dir", dataDir, "--wasm", artifactPath)
	require.NoError(err)

	out, err := runCommand(t, "invoke",
		"--data-dir", dataDir,
		"--id", adderID,
		"--fn", "add",
		"--arg", "u64:2",
		"--arg", "u64:40",
	)
	require.NoError(err)
	require.Equal("u64:42", out)

	// host failures exit non-zero with the host error message
	_, err = runCommand(t, "invoke",
		"--data-dir", dataDir,
		"--id", adderID,
		"--fn", "add",
		"--arg", "u64:1",
	)
	require.ErrorContains(err, "type mismatch")
}

func TestCommandDeployExplicitID(t *testing.T) {
	require := require.New(t)
	dataDir := t.TempDir()
	artifactPath := filepath.Join(dataDir, "counter.cvm")

	_, err := runCommand(t, "artifact", "--program", "counter", "--out", artifactPath)
	require.NoError(err)

	want := contractvm.FormatContractID(ids.ID{0x5a})
	got, err := runCommand(t, "deploy",
		"--data-dir", dataDir,
		"--wasm", artifactPath,
		"--id", want,
	)
	require.NoError(err)
	require.Equal(want, got)

	_, err = runCommand(t, "deploy",
		"--data-dir", dataDir,
		"--wasm", artifactPath,
		"--id", want,
	)
	require.ErrorContains(err, "already in use")
}

func TestCommandArtifactRejectsBadProgram(t *testing.T) {
	require := require.New(t)
	out := filepath.Join(t.TempDir(), "bad.cvm")

	_, err := runCommand(t, "artifact", "--program", "definitely_too_long", "--out", out)
	require.Error(err)
	_, statErr := os.Stat(out)
	require.True(os.IsNotExist(statErr))
}

func TestCommandVersion(t *testing.T) {
	require := require.New(t)

	out, err := runCommand(t, "version")
	require.NoError(err)
	require.Equal(contractvm.Name+"@"+contractvm.Version, out)
}
