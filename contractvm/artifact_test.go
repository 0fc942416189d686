// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractvm

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestArtifactRoundTrip(t *testing.T) {
	require := require.New(t)

	payload := []byte("pretend wasm")
	raw, err := EncodeArtifact(Sym("counter"), payload)
	require.NoError(err)

	parsed, err := ParseArtifact(raw)
	require.NoError(err)
	require.Equal(Sym("counter"), parsed.Program)
	require.Equal(payload, parsed.Payload)
}

func TestParseArtifactRejects(t *testing.T) {
	require := require.New(t)

	good, err := EncodeArtifact(Sym("hello"), []byte{1})
	require.NoError(err)

	// bad magic
	bad := append([]byte{}, good...)
	bad[0] = 'x'
	_, err = ParseArtifact(bad)
	require.ErrorIs(err, ErrBadArtifactMagic)

	// bad version
	bad = append([]byte{}, good...)
	bad[4] = 9
	_, err = ParseArtifact(bad)
	require.ErrorIs(err, ErrBadArtifactVersion)

	// trailing bytes
	_, err = ParseArtifact(append(append([]byte{}, good...), 0))
	require.ErrorIs(err, errArtifactTrailing)

	// truncated
	_, err = ParseArtifact(good[:len(good)-1])
	require.Error(err)

	// empty program symbol
	noProgram, err := EncodeArtifact(0, nil)
	require.NoError(err)
	_, err = ParseArtifact(noProgram)
	require.ErrorIs(err, errSymbolBadPacking)
}

func TestContractIDFromArtifactIsStable(t *testing.T) {
	require := require.New(t)

	raw, err := EncodeArtifact(Sym("hello"), []byte{1, 2, 3})
	require.NoError(err)
	other, err := EncodeArtifact(Sym("hello"), []byte{1, 2, 4})
	require.NoError(err)

	id := ContractIDFromArtifact(raw)
	require.Equal(id, ContractIDFromArtifact(raw))
	require.NotEqual(id, ContractIDFromArtifact(other))
	require.NotEqual(ids.Empty, id)
}
