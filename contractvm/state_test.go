// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractvm

import (
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestStateCommitAbort(t *testing.T) {
	require := require.New(t)
	base := memdb.New()
	st := NewState(base)

	// aborted writes never reach the base database
	require.NoError(st.SetInitialized())
	require.NoError(st.SetSequence(3))
	st.Abort()

	ok, err := st.IsInitialized()
	require.NoError(err)
	require.False(ok)

	require.NoError(st.SetInitialized())
	require.NoError(st.Commit())

	// a fresh state over the same base sees committed writes only
	st2 := NewState(base)
	ok, err = st2.IsInitialized()
	require.NoError(err)
	require.True(ok)

	seq, err := st2.GetSequence()
	require.NoError(err)
	require.Zero(seq)
}

func TestStateContractDataIsolation(t *testing.T) {
	require := require.New(t)
	st := NewState(memdb.New())

	a := ids.ID{0xaa}
	b := ids.ID{0xbb}
	require.NoError(st.ContractData(a).Put([]byte("k"), []byte("va")))

	has, err := st.ContractData(b).Has([]byte("k"))
	require.NoError(err)
	require.False(has)

	got, err := st.ContractData(a).Get([]byte("k"))
	require.NoError(err)
	require.Equal([]byte("va"), got)
}

func TestContractRecordRoundTrip(t *testing.T) {
	require := require.New(t)
	st := NewState(memdb.New())

	id := ids.GenerateTestID()
	rec := &ContractRecord{
		Program:     Sym("counter"),
		CodeHash:    ids.GenerateTestID(),
		Description: "persistent u32 counter",
	}
	require.NoError(st.PutContractRecord(id, rec))

	got, err := st.GetContractRecord(id)
	require.NoError(err)
	require.Equal(rec, got)

	has, err := st.HasContract(id)
	require.NoError(err)
	require.True(has)

	_, err = st.GetContractRecord(ids.GenerateTestID())
	require.ErrorIs(err, database.ErrNotFound)

	contractIDs, err := st.ContractIDs()
	require.NoError(err)
	require.Equal([]ids.ID{id}, contractIDs)

	hash := ids.GenerateTestID()
	require.NoError(st.PutCode(hash, []byte{1, 2}))
	code, err := st.GetCode(hash)
	require.NoError(err)
	require.Equal([]byte{1, 2}, code)
}

func TestSequencePersistence(t *testing.T) {
	require := require.New(t)
	base := memdb.New()

	st := NewState(base)
	seq, err := st.GetSequence()
	require.NoError(err)
	require.Zero(seq)

	require.NoError(st.SetSequence(41))
	require.NoError(st.Commit())

	st2 := NewState(base)
	seq, err = st2.GetSequence()
	require.NoError(err)
	require.Equal(uint64(41), seq)
}
