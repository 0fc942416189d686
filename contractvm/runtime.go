// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractvm

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
	"github.com/ava-labs/avalanchego/utils/wrappers"

	log "github.com/inconshreveable/log15"
)

const (
	// maxCallDepth bounds the cross-contract call stack
	maxCallDepth = 64
)

var (
	ErrUnknownProgram = errors.New("artifact names a program not in the catalog")
	ErrContractExists = errors.New("contract ID is already in use")
)

// Result is what a committed invocation returns.
type Result struct {
	Value  Val
	Events []Event
}

type frame struct {
	contract ids.ID
	fn       Symbol
}

// Runtime is one execution context: a contract registry plus storage over
// the supplied database. Invocations run one at a time; concurrent callers
// are serialized, and recursion happens only through cross-contract calls
// inside a single invocation.
type Runtime struct {
	mu sync.Mutex

	db      database.Database
	state   State
	catalog *Catalog
	clock   *mockable.Clock
	log     log.Logger

	// registered holds contracts attached directly, without an artifact.
	// instances memoizes contracts instantiated from deployed records.
	registered map[ids.ID]Contract
	instances  map[ids.ID]Contract

	sequence uint64

	frames []frame
	events eventLog
}

type Option func(*Runtime)

// WithClock replaces the runtime clock, letting tests pin ledger time.
func WithClock(clock *mockable.Clock) Option {
	return func(rt *Runtime) {
		rt.clock = clock
	}
}

// WithLogger replaces the runtime logger.
func WithLogger(logger log.Logger) Option {
	return func(rt *Runtime) {
		rt.log = logger
	}
}

// New builds a Runtime over db and takes ownership of it; Close releases
// it. The database may be empty or may hold the ledger of an earlier
// Runtime over the same directory; deployed contracts and their data
// survive across runtimes that way.
func New(db database.Database, catalog *Catalog, opts ...Option) (*Runtime, error) {
	rt := &Runtime{
		db:         db,
		state:      NewState(db),
		catalog:    catalog,
		clock:      &mockable.Clock{},
		log:        log.New("module", "contractvm"),
		registered: make(map[ids.ID]Contract),
		instances:  make(map[ids.ID]Contract),
	}
	for _, opt := range opts {
		opt(rt)
	}

	initialized, err := rt.state.IsInitialized()
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger state: %w", err)
	}
	if !initialized {
		if err := rt.state.SetInitialized(); err != nil {
			return nil, fmt.Errorf("failed to initialize ledger: %w", err)
		}
		if err := rt.state.Commit(); err != nil {
			return nil, err
		}
		rt.log.Info("initialized fresh ledger")
	}

	seq, err := rt.state.GetSequence()
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger sequence: %w", err)
	}
	rt.sequence = seq
	return rt, nil
}

// Deploy parses an artifact, resolves its program in the catalog and
// persists the contract under id. Passing ids.Empty derives the ID from
// the artifact hash. Returns the effective ID.
func (rt *Runtime) Deploy(artifact []byte, id ids.ID) (ids.ID, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	parsed, err := ParseArtifact(artifact)
	if err != nil {
		return ids.Empty, err
	}

	instance, ok := rt.catalog.New(parsed.Program)
	if !ok {
		return ids.Empty, fmt.Errorf("%w: %s", ErrUnknownProgram, parsed.Program)
	}

	if id == ids.Empty {
		id = ContractIDFromArtifact(artifact)
	}
	if err := rt.checkIDFree(id); err != nil {
		return ids.Empty, err
	}

	codeHash := ContractIDFromArtifact(artifact)
	rec := &ContractRecord{
		Program:     parsed.Program,
		CodeHash:    codeHash,
		Description: instance.Describe(),
	}

	defer rt.state.Abort()
	if err := rt.state.PutCode(codeHash, artifact); err != nil {
		return ids.Empty, fmt.Errorf("failed to store artifact: %w", err)
	}
	if err := rt.state.PutContractRecord(id, rec); err != nil {
		return ids.Empty, fmt.Errorf("failed to store contract record: %w", err)
	}
	if err := rt.state.Commit(); err != nil {
		return ids.Empty, err
	}

	rt.instances[id] = instance
	rt.log.Info("deployed contract",
		"id", FormatContractID(id),
		"program", parsed.Program.String(),
	)
	return id, nil
}

// Register attaches a contract instance directly under id, without an
// artifact. Registrations live only as long as this Runtime.
func (rt *Runtime) Register(id ids.ID, c Contract) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if err := rt.checkIDFree(id); err != nil {
		return err
	}
	rt.registered[id] = c
	return nil
}

func (rt *Runtime) checkIDFree(id ids.ID) error {
	if _, ok := rt.registered[id]; ok {
		return fmt.Errorf("%w: %s", ErrContractExists, FormatContractID(id))
	}
	has, err := rt.state.HasContract(id)
	if err != nil {
		return err
	}
	if has {
		return fmt.Errorf("%w: %s", ErrContractExists, FormatContractID(id))
	}
	return nil
}

// Invoke runs fn on the contract with the given ID and commits its effects.
// Any fatal failure inside execution rolls the ledger back to the state
// before the call and is returned as a *HostError; in that case no storage
// writes and no events survive.
func (rt *Runtime) Invoke(id ids.ID, fn Symbol, args []Val) (res *Result, err error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.events.events = nil

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		hostErr := asHostError(r)
		rt.state.Abort()
		rt.log.Debug("invocation aborted",
			"contract", FormatContractID(id),
			"fn", fn.String(),
			"code", hostErr.Code.String(),
			"msg", hostErr.Msg,
		)
		res, err = nil, hostErr
	}()

	value := rt.call(id, fn, args)

	next := rt.sequence + 1
	if err := rt.state.SetSequence(next); err != nil {
		rt.state.Abort()
		return nil, fmt.Errorf("failed to store ledger sequence: %w", err)
	}
	if err := rt.state.Commit(); err != nil {
		rt.state.Abort()
		return nil, err
	}
	rt.sequence = next

	events := rt.events.events
	rt.events.events = nil
	rt.log.Info("invocation committed",
		"contract", FormatContractID(id),
		"fn", fn.String(),
		"sequence", next,
		"events", len(events),
	)
	return &Result{Value: value, Events: events}, nil
}

// call pushes a frame and executes one contract function. It is the shared
// path of Invoke and Env.Invoke and reports failure only by panicking.
func (rt *Runtime) call(id ids.ID, fn Symbol, args []Val) Val {
	if len(rt.frames) >= maxCallDepth {
		Abort(ErrCodeCallDepth, "call depth exceeds %d", maxCallDepth)
	}
	for _, f := range rt.frames {
		if f.contract == id {
			Abort(ErrCodeReentry, "contract %s is already on the call stack", FormatContractID(id))
		}
	}

	contract := rt.resolve(id)
	function, ok := contract.Functions()[fn]
	if !ok {
		Abort(ErrCodeUnknownFunction, "contract %s exports no function %s", FormatContractID(id), fn)
	}

	rt.frames = append(rt.frames, frame{contract: id, fn: fn})
	defer func() {
		rt.frames = rt.frames[:len(rt.frames)-1]
	}()

	env := &Env{
		rt:         rt,
		contractID: id,
		storage:    newStorage(id, rt.state.ContractData(id)),
		depth:      len(rt.frames),
	}
	return function(env, args)
}

// resolve returns the contract behind id: a direct registration first, then
// a memoized instance, then a deployed record instantiated through the
// catalog.
func (rt *Runtime) resolve(id ids.ID) Contract {
	if c, ok := rt.registered[id]; ok {
		return c
	}
	if c, ok := rt.instances[id]; ok {
		return c
	}

	rec, err := rt.state.GetContractRecord(id)
	switch {
	case err == database.ErrNotFound:
		Abort(ErrCodeUnknownContract, "no contract %s", FormatContractID(id))
	case err != nil:
		Abort(ErrCodeStorage, "lookup %s: %s", FormatContractID(id), err)
	}

	c, ok := rt.catalog.New(rec.Program)
	if !ok {
		// record written by a runtime with a larger catalog
		Abort(ErrCodeUnknownContract, "program %s of contract %s is not in the catalog", rec.Program, FormatContractID(id))
	}
	rt.instances[id] = c
	return c
}

// ReadData inspects one entry of a contract's storage from outside an
// invocation. Absence is reported through the bool, not an error.
func (rt *Runtime) ReadData(id ids.ID, key Symbol) (Val, bool, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	raw, err := rt.state.ContractData(id).Get(key.Bytes())
	switch {
	case err == database.ErrNotFound:
		return Val{}, false, nil
	case err != nil:
		return Val{}, false, err
	}

	v, err := UnmarshalVal(raw)
	if err != nil {
		return Val{}, false, fmt.Errorf("stored value under %s: %w", key, err)
	}
	return v, true, nil
}

// GetContract returns the deployed record behind id. Directly registered
// contracts have no record; database.ErrNotFound is returned for them too.
func (rt *Runtime) GetContract(id ids.ID) (*ContractRecord, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	return rt.state.GetContractRecord(id)
}

// Contracts lists the IDs of all deployed contracts.
func (rt *Runtime) Contracts() ([]ids.ID, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	return rt.state.ContractIDs()
}

// Sequence returns the number of committed invocations.
func (rt *Runtime) Sequence() uint64 {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	return rt.sequence
}

// Close releases the underlying database.
func (rt *Runtime) Close() error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	errs := wrappers.Errs{}
	errs.Add(
		rt.state.Close(),
		rt.db.Close(),
	)
	return errs.Err
}
