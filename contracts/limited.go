// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contracts

import (
	"github.com/ava-labs/contractvm/contractvm"
)

const (
	// ErrLimitReached is the contract-defined error code Limited fails with.
	ErrLimitReached uint32 = 1

	maxBumps = 5
)

var keyBumps = contractvm.Sym("BUMPS")

// Limited allows five bumps and fails every one after that with a
// contract-defined error. The failed bump leaves no trace in storage.
type Limited struct{}

func (*Limited) Describe() string {
	return "counter that refuses to pass five"
}

func (c *Limited) Functions() map[contractvm.Symbol]contractvm.Function {
	return map[contractvm.Symbol]contractvm.Function{
		contractvm.Sym("bump"): c.bump,
	}
}

func (*Limited) bump(env *contractvm.Env, args []contractvm.Val) contractvm.Val {
	expectArgs(env, args, 0)

	count, _ := env.Storage().GetUint32(keyBumps)
	count = contractvm.CheckedAddUint32(count, 1)
	if count > maxBumps {
		env.Fail(ErrLimitReached, "bump limit reached")
	}
	env.Storage().Set(keyBumps, contractvm.Uint32Val(count))
	return contractvm.Uint32Val(count)
}
