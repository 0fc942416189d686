// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractvm

import (
	"github.com/ava-labs/avalanchego/ids"
)

// Env is the handle through which an executing contract reaches the host:
// its own storage, cross-contract calls, ledger information and event
// publishing. One Env exists per call frame and is only valid while that
// frame executes.
type Env struct {
	rt         *Runtime
	contractID ids.ID
	storage    *Storage
	depth      int
}

// ContractID returns the ID of the executing contract.
func (e *Env) ContractID() ids.ID {
	return e.contractID
}

// Storage returns the executing contract's own keyspace.
func (e *Env) Storage() *Storage {
	return e.storage
}

// Invoke calls fn on the contract with the given ID, in the same call
// stack. The callee runs against its own storage. A failing callee does
// not return; it unwinds the caller too, so the whole outermost invocation
// aborts.
func (e *Env) Invoke(id ids.ID, fn Symbol, args ...Val) Val {
	return e.rt.call(id, fn, args)
}

// Invoker returns the contract that called this one. The second return is
// false at the top frame, where the invocation came from outside.
func (e *Env) Invoker() (ids.ID, bool) {
	if e.depth < 2 {
		return ids.Empty, false
	}
	return e.rt.frames[e.depth-2].contract, true
}

// LedgerInfo is a snapshot of ledger-wide context for one invocation.
type LedgerInfo struct {
	Timestamp uint64 `json:"timestamp"`
	Sequence  uint64 `json:"sequence"`
}

// Ledger returns host time and the sequence number the current invocation
// will commit as.
func (e *Env) Ledger() LedgerInfo {
	return LedgerInfo{
		Timestamp: e.rt.clock.Unix(),
		Sequence:  e.rt.sequence + 1,
	}
}

// Events returns the publisher bound to the executing contract.
func (e *Env) Events() *Events {
	return &Events{
		contractID: e.contractID,
		sink:       &e.rt.events,
	}
}

// Abort stops the invocation with the given host error code. It does not
// return.
func (e *Env) Abort(code ErrorCode, format string, args ...interface{}) {
	Abort(code, format, args...)
}

// Fail stops the invocation with a contract-defined error code. It does
// not return.
func (e *Env) Fail(contractCode uint32, msg string) {
	panic(&HostError{
		Code:         ErrCodeContract,
		ContractCode: contractCode,
		Msg:          msg,
	})
}

// Event is one record published during an invocation. Events become
// visible only if the invocation commits.
type Event struct {
	ContractID ids.ID `json:"contractId"`
	Topics     []Val  `json:"topics"`
	Data       Val    `json:"data"`
}

type eventLog struct {
	events []Event
}

// Events publishes records on behalf of one contract.
type Events struct {
	contractID ids.ID
	sink       *eventLog
}

// Publish records an event attributed to the executing contract.
func (e *Events) Publish(topics []Val, data Val) {
	e.sink.events = append(e.sink.events, Event{
		ContractID: e.contractID,
		Topics:     append([]Val(nil), topics...),
		Data:       data,
	})
}
