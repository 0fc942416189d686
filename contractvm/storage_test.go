// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractvm

import (
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestStorageAbsenceAndReplace(t *testing.T) {
	require := require.New(t)
	s := newStorage(ids.GenerateTestID(), memdb.New())
	key := Sym("COUNTER")

	// absence is a state, not a failure
	_, ok := s.Get(key)
	require.False(ok)
	require.False(s.Has(key))

	s.Set(key, Uint32Val(1))
	require.True(s.Has(key))
	v, ok := s.Get(key)
	require.True(ok)
	require.Equal(uint32(1), v.Uint32())

	// replace is unconditional, even across kinds
	s.Set(key, SymbolVal(Sym("done")))
	v, ok = s.Get(key)
	require.True(ok)
	require.Equal(Sym("done"), v.Symbol())

	s.Delete(key)
	require.False(s.Has(key))
	// deleting an absent key is a no-op
	s.Delete(key)
}

func TestStorageTypedGetters(t *testing.T) {
	require := require.New(t)
	s := newStorage(ids.GenerateTestID(), memdb.New())

	_, ok := s.GetUint32(Sym("missing"))
	require.False(ok)

	s.Set(Sym("num"), Uint64Val(9))
	n, ok := s.GetUint64(Sym("num"))
	require.True(ok)
	require.Equal(uint64(9), n)

	s.Set(Sym("blob"), BytesVal([]byte{1, 2}))
	b, ok := s.GetBytes(Sym("blob"))
	require.True(ok)
	require.Equal([]byte{1, 2}, b)

	s.Set(Sym("name"), SymbolVal(Sym("alias")))
	sym, ok := s.GetSymbol(Sym("name"))
	require.True(ok)
	require.Equal(Sym("alias"), sym)

	// present with the wrong kind is a type mismatch, not absence
	requireAbortCode(t, ErrCodeTypeMismatch, func() {
		s.GetUint32(Sym("num"))
	})
}

func TestStorageMalformedEntryAborts(t *testing.T) {
	require := require.New(t)
	db := memdb.New()
	s := newStorage(ids.GenerateTestID(), db)

	key := Sym("broken")
	require.NoError(db.Put(key.Bytes(), []byte{0x7f}))

	requireAbortCode(t, ErrCodeMalformedValue, func() {
		s.Get(key)
	})
}

func TestStorageClosedBackendAborts(t *testing.T) {
	require := require.New(t)
	db := memdb.New()
	s := newStorage(ids.GenerateTestID(), db)
	require.NoError(db.Close())

	requireAbortCode(t, ErrCodeStorage, func() {
		s.Set(Sym("any"), VoidVal())
	})
	requireAbortCode(t, ErrCodeStorage, func() {
		s.Get(Sym("any"))
	})
}
