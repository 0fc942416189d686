// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractvm

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
)

var (
	errRecordWrongVersion = errors.New("wrong version of contract record")

	_ ContractState = (*contractState)(nil)
)

// ContractRecord is the durable registry entry for a deployed contract.
// The record links the contract ID to the program named by its artifact
// and to the hash under which the raw artifact bytes are stored.
type ContractRecord struct {
	Program     Symbol `serialize:"true" json:"program"`
	CodeHash    ids.ID `serialize:"true" json:"codeHash"`
	Description string `serialize:"true" json:"description"`
}

// ContractState defines methods to manage persisted contract records and
// the artifact bytes they reference.
type ContractState interface {
	GetContractRecord(id ids.ID) (*ContractRecord, error)
	PutContractRecord(id ids.ID, rec *ContractRecord) error
	HasContract(id ids.ID) (bool, error)
	ContractIDs() ([]ids.ID, error)
	GetCode(hash ids.ID) ([]byte, error)
	PutCode(hash ids.ID, code []byte) error
}

// contractState implements ContractState, keeping records and artifact
// bytes in two separate key spaces.
type contractState struct {
	recordDB database.Database
	codeDB   database.Database
}

// NewContractState returns ContractState over the given record and code
// databases.
func NewContractState(recordDB database.Database, codeDB database.Database) ContractState {
	return &contractState{
		recordDB: recordDB,
		codeDB:   codeDB,
	}
}

func (s *contractState) GetContractRecord(id ids.ID) (*ContractRecord, error) {
	recBytes, err := s.recordDB.Get(id[:])
	if err != nil {
		return nil, err
	}

	rec := new(ContractRecord)
	parsedVersion, err := Codec.Unmarshal(recBytes, rec)
	if err != nil {
		return nil, err
	}
	if parsedVersion != CodecVersion {
		return nil, errRecordWrongVersion
	}
	return rec, nil
}

func (s *contractState) PutContractRecord(id ids.ID, rec *ContractRecord) error {
	recBytes, err := Codec.Marshal(CodecVersion, rec)
	if err != nil {
		return fmt.Errorf("failed to marshal contract record: %w", err)
	}
	return s.recordDB.Put(id[:], recBytes)
}

func (s *contractState) HasContract(id ids.ID) (bool, error) {
	return s.recordDB.Has(id[:])
}

// ContractIDs lists every deployed contract ID, in key order.
func (s *contractState) ContractIDs() ([]ids.ID, error) {
	it := s.recordDB.NewIterator()
	defer it.Release()

	var contractIDs []ids.ID
	for it.Next() {
		id, err := ids.ToID(it.Key())
		if err != nil {
			return nil, err
		}
		contractIDs = append(contractIDs, id)
	}
	return contractIDs, it.Error()
}

func (s *contractState) GetCode(hash ids.ID) ([]byte, error) {
	return s.codeDB.Get(hash[:])
}

func (s *contractState) PutCode(hash ids.ID, code []byte) error {
	return s.codeDB.Put(hash[:], code)
}
