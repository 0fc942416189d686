// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractvm

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/database/versiondb"
	"github.com/ava-labs/avalanchego/ids"
)

var (
	singletonStatePrefix = []byte("singleton")
	contractStatePrefix  = []byte("contract")
	codeStatePrefix      = []byte("code")
	dataStatePrefix      = []byte("data")

	_ State = (*state)(nil)
)

// State wraps ContractState and SingletonState over a single versioned
// database. Writes land in the version layer and reach the base database
// only on Commit, so a failed invocation is discarded with Abort.
type State interface {
	SingletonState
	ContractState

	// ContractData returns the keyspace private to the given contract.
	// Keyspaces of distinct contracts never overlap.
	ContractData(id ids.ID) database.Database

	Commit() error
	Abort()
	Close() error
}

type state struct {
	SingletonState
	ContractState

	dataDB database.Database
	baseDB *versiondb.Database
}

func NewState(db database.Database) State {
	// create a new baseDB
	baseDB := versiondb.New(db)

	// create prefixed sub-databases from baseDB
	contractDB := prefixdb.New(contractStatePrefix, baseDB)
	codeDB := prefixdb.New(codeStatePrefix, baseDB)
	dataDB := prefixdb.New(dataStatePrefix, baseDB)
	singletonDB := prefixdb.New(singletonStatePrefix, baseDB)

	// return state with created sub state components
	return &state{
		ContractState:  NewContractState(contractDB, codeDB),
		SingletonState: NewSingletonState(singletonDB),
		dataDB:         dataDB,
		baseDB:         baseDB,
	}
}

func (s *state) ContractData(id ids.ID) database.Database {
	return prefixdb.New(id[:], s.dataDB)
}

// Commit commits pending operations to baseDB
func (s *state) Commit() error {
	return s.baseDB.Commit()
}

// Abort drops pending operations without touching baseDB
func (s *state) Abort() {
	s.baseDB.Abort()
}

// Close closes the underlying base database
func (s *state) Close() error {
	return s.baseDB.Close()
}
