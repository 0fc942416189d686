// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractvm

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
)

// Storage is the key-value view a contract sees while executing. Every
// contract gets its own keyspace; entries of other contracts are not
// reachable through it. Failures of the backing store are fatal to the
// invocation, so methods panic with *HostError instead of returning errors.
type Storage struct {
	contractID ids.ID
	db         database.Database
}

func newStorage(contractID ids.ID, db database.Database) *Storage {
	return &Storage{
		contractID: contractID,
		db:         db,
	}
}

// Get returns the value stored under key. The second return reports
// presence; an absent key is a normal state, not a failure.
func (s *Storage) Get(key Symbol) (Val, bool) {
	raw, err := s.db.Get(key.Bytes())
	switch {
	case err == database.ErrNotFound:
		return Val{}, false
	case err != nil:
		Abort(ErrCodeStorage, "get %s: %s", key, err)
	}

	v, err := UnmarshalVal(raw)
	if err != nil {
		Abort(ErrCodeMalformedValue, "stored value under %s: %s", key, err)
	}
	return v, true
}

// Set stores v under key, replacing any previous value.
func (s *Storage) Set(key Symbol, v Val) {
	raw, err := MarshalVal(v)
	if err != nil {
		Abort(ErrCodeMalformedValue, "value for %s: %s", key, err)
	}
	if err := s.db.Put(key.Bytes(), raw); err != nil {
		Abort(ErrCodeStorage, "set %s: %s", key, err)
	}
}

// Has reports whether key holds a value.
func (s *Storage) Has(key Symbol) bool {
	ok, err := s.db.Has(key.Bytes())
	if err != nil {
		Abort(ErrCodeStorage, "has %s: %s", key, err)
	}
	return ok
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Storage) Delete(key Symbol) {
	if err := s.db.Delete(key.Bytes()); err != nil {
		Abort(ErrCodeStorage, "delete %s: %s", key, err)
	}
}

// GetUint32 reads key as a u32. Present with any other kind is a type
// mismatch and aborts the invocation.
func (s *Storage) GetUint32(key Symbol) (uint32, bool) {
	v, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	return v.Uint32(), true
}

func (s *Storage) GetUint64(key Symbol) (uint64, bool) {
	v, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	return v.Uint64(), true
}

func (s *Storage) GetSymbol(key Symbol) (Symbol, bool) {
	v, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	return v.Symbol(), true
}

func (s *Storage) GetBytes(key Symbol) ([]byte, bool) {
	v, ok := s.Get(key)
	if !ok {
		return nil, false
	}
	return v.Bytes(), true
}
