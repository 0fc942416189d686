// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package contractvmtest provides a self-contained runtime context for
// contract tests: in-memory ledger, controllable clock, nothing persisted
// across contexts.
package contractvmtest

import (
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"

	"github.com/ava-labs/contractvm/contractvm"
)

// Context wraps a memdb-backed Runtime for one test. Ledger time starts at
// the unix epoch and moves only through SetTime.
type Context struct {
	Runtime *contractvm.Runtime
	Clock   *mockable.Clock

	lastEvents []contractvm.Event
}

// NewContext returns a fresh Context with an empty catalog.
func NewContext() *Context {
	return NewContextWithCatalog(contractvm.NewCatalog())
}

// NewContextWithCatalog returns a fresh Context deploying from cat.
func NewContextWithCatalog(cat *contractvm.Catalog) *Context {
	clock := &mockable.Clock{}
	clock.Set(time.Unix(0, 0))

	rt, err := contractvm.New(memdb.New(), cat, contractvm.WithClock(clock))
	if err != nil {
		// memdb cannot fail to initialize
		panic(err)
	}
	return &Context{
		Runtime: rt,
		Clock:   clock,
	}
}

// Register attaches a contract instance directly under id.
func (c *Context) Register(id ids.ID, contract contractvm.Contract) error {
	return c.Runtime.Register(id, contract)
}

// Deploy deploys an artifact into the context's ledger.
func (c *Context) Deploy(artifact []byte, id ids.ID) (ids.ID, error) {
	return c.Runtime.Deploy(artifact, id)
}

// MustDeploy deploys an artifact, failing the test on error.
func (c *Context) MustDeploy(tb testing.TB, artifact []byte, id ids.ID) ids.ID {
	tb.Helper()
	newID, err := c.Runtime.Deploy(artifact, id)
	if err != nil {
		tb.Fatalf("deploy: %s", err)
	}
	return newID
}

// Invoke runs a contract function and remembers its events for LastEvents.
func (c *Context) Invoke(id ids.ID, fn contractvm.Symbol, args ...contractvm.Val) (*contractvm.Result, error) {
	res, err := c.Runtime.Invoke(id, fn, args)
	if err != nil {
		return nil, err
	}
	c.lastEvents = res.Events
	return res, nil
}

// MustInvoke runs a contract function and returns its value, failing the
// test on any host error.
func (c *Context) MustInvoke(tb testing.TB, id ids.ID, fn contractvm.Symbol, args ...contractvm.Val) contractvm.Val {
	tb.Helper()
	res, err := c.Invoke(id, fn, args...)
	if err != nil {
		tb.Fatalf("invoke %s on %s: %s", fn, contractvm.FormatContractID(id), err)
	}
	return res.Value
}

// SetTime pins ledger time for subsequent invocations.
func (c *Context) SetTime(t time.Time) {
	c.Clock.Set(t)
}

// LastEvents returns the events of the most recent committed invocation.
func (c *Context) LastEvents() []contractvm.Event {
	return c.lastEvents
}
