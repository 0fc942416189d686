// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractvm

import (
	"fmt"
	"net/http"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting"
	"github.com/gorilla/rpc/v2"

	cjson "github.com/ava-labs/avalanchego/utils/json"
)

// Service is the JSON-RPC API over one Runtime. StaticService is embedded
// so the runtime endpoint also answers the stateless value-codec methods.
type Service struct {
	StaticService
	rt *Runtime
}

func NewService(rt *Runtime) *Service {
	return &Service{rt: rt}
}

// NewHTTPHandler returns the JSON-RPC handler for the runtime service.
func NewHTTPHandler(rt *Runtime) (http.Handler, error) {
	server := rpc.NewServer()
	codec := cjson.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	if err := server.RegisterService(NewService(rt), Name); err != nil {
		return nil, err
	}
	return server, nil
}

// DeployArgs are the arguments to Deploy
type DeployArgs struct {
	// Artifact is the hex-encoded artifact envelope
	Artifact string `json:"artifact"`
	// ContractID optionally fixes the new contract's ID. Empty means derive
	// it from the artifact hash.
	ContractID string `json:"contractId"`
}

// DeployReply is the reply from Deploy
type DeployReply struct {
	ContractID string `json:"contractId"`
}

// Deploy registers the artifact's program as a new contract.
func (s *Service) Deploy(_ *http.Request, args *DeployArgs, reply *DeployReply) error {
	artifact, err := formatting.Decode(formatting.Hex, args.Artifact)
	if err != nil {
		return fmt.Errorf("couldn't decode artifact: %w", err)
	}

	id := ids.Empty
	if args.ContractID != "" {
		if id, err = ParseContractID(args.ContractID); err != nil {
			return err
		}
	}

	newID, err := s.rt.Deploy(artifact, id)
	if err != nil {
		return err
	}
	reply.ContractID = FormatContractID(newID)
	return nil
}

// InvokeArgs are the arguments to Invoke. Args use the value literal form.
type InvokeArgs struct {
	ContractID string   `json:"contractId"`
	Function   string   `json:"function"`
	Args       []string `json:"args"`
}

// EventJSON is the interchange form of one published event.
type EventJSON struct {
	ContractID string   `json:"contractId"`
	Topics     []string `json:"topics"`
	Data       string   `json:"data"`
}

// InvokeReply is the reply from Invoke
type InvokeReply struct {
	Value  string      `json:"value"`
	Events []EventJSON `json:"events"`
}

// Invoke runs a contract function. Host failures surface as JSON-RPC
// errors; the ledger keeps no effects of a failed invocation.
func (s *Service) Invoke(_ *http.Request, args *InvokeArgs, reply *InvokeReply) error {
	id, err := ParseContractID(args.ContractID)
	if err != nil {
		return err
	}
	fn, err := NewSymbol(args.Function)
	if err != nil {
		return fmt.Errorf("function name: %w", err)
	}

	callArgs := make([]Val, len(args.Args))
	for i, lit := range args.Args {
		v, err := ParseVal(lit)
		if err != nil {
			return fmt.Errorf("arg %d: %w", i, err)
		}
		callArgs[i] = v
	}

	res, err := s.rt.Invoke(id, fn, callArgs)
	if err != nil {
		return err
	}

	reply.Value = FormatVal(res.Value)
	reply.Events = make([]EventJSON, len(res.Events))
	for i, ev := range res.Events {
		topics := make([]string, len(ev.Topics))
		for j, topic := range ev.Topics {
			topics[j] = FormatVal(topic)
		}
		reply.Events[i] = EventJSON{
			ContractID: FormatContractID(ev.ContractID),
			Topics:     topics,
			Data:       FormatVal(ev.Data),
		}
	}
	return nil
}

// ReadDataArgs are the arguments to ReadData
type ReadDataArgs struct {
	ContractID string `json:"contractId"`
	Key        string `json:"key"`
}

// ReadDataReply is the reply from ReadData. Value is set only when Found.
type ReadDataReply struct {
	Value string `json:"value"`
	Found bool   `json:"found"`
}

// ReadData reads one entry of a contract's storage without invoking it.
func (s *Service) ReadData(_ *http.Request, args *ReadDataArgs, reply *ReadDataReply) error {
	id, err := ParseContractID(args.ContractID)
	if err != nil {
		return err
	}
	key, err := NewSymbol(args.Key)
	if err != nil {
		return fmt.Errorf("key: %w", err)
	}

	v, found, err := s.rt.ReadData(id, key)
	if err != nil {
		return err
	}
	reply.Found = found
	if found {
		reply.Value = FormatVal(v)
	}
	return nil
}

// GetContractArgs are the arguments to GetContract
type GetContractArgs struct {
	ContractID string `json:"contractId"`
}

// GetContractReply is the reply from GetContract
type GetContractReply struct {
	Program     string `json:"program"`
	CodeHash    string `json:"codeHash"`
	Description string `json:"description"`
}

// GetContract returns the deployed record behind a contract ID.
func (s *Service) GetContract(_ *http.Request, args *GetContractArgs, reply *GetContractReply) error {
	id, err := ParseContractID(args.ContractID)
	if err != nil {
		return err
	}

	rec, err := s.rt.GetContract(id)
	switch {
	case err == database.ErrNotFound:
		return fmt.Errorf("no contract %s", FormatContractID(id))
	case err != nil:
		return err
	}

	reply.Program = rec.Program.String()
	reply.CodeHash = FormatContractID(rec.CodeHash)
	reply.Description = rec.Description
	return nil
}

// SequenceReply is the reply from Sequence
type SequenceReply struct {
	Sequence cjson.Uint64 `json:"sequence"`
}

// Sequence returns the number of committed invocations.
func (s *Service) Sequence(_ *http.Request, _ *struct{}, reply *SequenceReply) error {
	reply.Sequence = cjson.Uint64(s.rt.Sequence())
	return nil
}
