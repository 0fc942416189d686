// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package contracts holds the built-in example contracts and the catalog
// they deploy from.
package contracts

import (
	"github.com/ava-labs/contractvm/contractvm"
)

// Program names under which the built-in contracts deploy.
var (
	HelloName   = contractvm.Sym("hello")
	CounterName = contractvm.Sym("counter")
	AdderName   = contractvm.Sym("adder")
	CallerName  = contractvm.Sym("caller")
	EventsName  = contractvm.Sym("events")
	LimitedName = contractvm.Sym("limited")
)

// Catalog returns a catalog holding every built-in contract.
func Catalog() *contractvm.Catalog {
	cat := contractvm.NewCatalog()
	cat.Register(HelloName, func() contractvm.Contract { return &Hello{} })
	cat.Register(CounterName, func() contractvm.Contract { return &Counter{} })
	cat.Register(AdderName, func() contractvm.Contract { return &Adder{} })
	cat.Register(CallerName, func() contractvm.Contract { return &Caller{} })
	cat.Register(EventsName, func() contractvm.Contract { return &Events{} })
	cat.Register(LimitedName, func() contractvm.Contract { return &Limited{} })
	return cat
}

// expectArgs aborts unless the call carries exactly want arguments.
func expectArgs(env *contractvm.Env, args []contractvm.Val, want int) {
	if len(args) != want {
		env.Abort(contractvm.ErrCodeTypeMismatch, "want %d arguments, have %d", want, len(args))
	}
}
