// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractvm

import (
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/wrappers"
)

const (
	IsInitializedKey byte = iota
	SequenceKey
)

var (
	isInitializedKey = []byte{IsInitializedKey}
	sequenceKey      = []byte{SequenceKey}

	errBadSequenceLength = errors.New("sequence value has wrong length")

	_ SingletonState = (*singletonState)(nil)
)

// SingletonState is a thin wrapper around a database to provide setting and
// getting of ledger-wide values.
type SingletonState interface {
	IsInitialized() (bool, error)
	SetInitialized() error

	GetSequence() (uint64, error)
	SetSequence(seq uint64) error
}

type singletonState struct {
	singletonDB database.Database
}

func NewSingletonState(db database.Database) SingletonState {
	return &singletonState{
		singletonDB: db,
	}
}

func (s *singletonState) IsInitialized() (bool, error) {
	return s.singletonDB.Has(isInitializedKey)
}

func (s *singletonState) SetInitialized() error {
	return s.singletonDB.Put(isInitializedKey, nil)
}

// GetSequence returns the number of invocations committed so far. A ledger
// that has never committed an invocation reports zero.
func (s *singletonState) GetSequence() (uint64, error) {
	seqBytes, err := s.singletonDB.Get(sequenceKey)
	switch {
	case err == database.ErrNotFound:
		return 0, nil
	case err != nil:
		return 0, err
	}
	if len(seqBytes) != wrappers.LongLen {
		return 0, errBadSequenceLength
	}
	return binary.BigEndian.Uint64(seqBytes), nil
}

func (s *singletonState) SetSequence(seq uint64) error {
	seqBytes := make([]byte, wrappers.LongLen)
	binary.BigEndian.PutUint64(seqBytes, seq)
	return s.singletonDB.Put(sequenceKey, seqBytes)
}
