// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contracts

import (
	"github.com/ava-labs/contractvm/contractvm"
)

var keyCounter = contractvm.Sym("COUNTER")

// Counter keeps one persistent u32 under key COUNTER. Incrementing past
// the u32 range aborts instead of wrapping.
type Counter struct{}

func (*Counter) Describe() string {
	return "persistent u32 counter"
}

func (c *Counter) Functions() map[contractvm.Symbol]contractvm.Function {
	return map[contractvm.Symbol]contractvm.Function{
		contractvm.Sym("increment"): c.increment,
		contractvm.Sym("get"):       c.get,
		contractvm.Sym("reset"):     c.reset,
	}
}

func (*Counter) increment(env *contractvm.Env, args []contractvm.Val) contractvm.Val {
	expectArgs(env, args, 0)

	count, _ := env.Storage().GetUint32(keyCounter)
	count = contractvm.CheckedAddUint32(count, 1)
	env.Storage().Set(keyCounter, contractvm.Uint32Val(count))
	return contractvm.Uint32Val(count)
}

func (*Counter) get(env *contractvm.Env, args []contractvm.Val) contractvm.Val {
	expectArgs(env, args, 0)

	count, _ := env.Storage().GetUint32(keyCounter)
	return contractvm.Uint32Val(count)
}

func (*Counter) reset(env *contractvm.Env, args []contractvm.Val) contractvm.Val {
	expectArgs(env, args, 0)

	env.Storage().Delete(keyCounter)
	return contractvm.VoidVal()
}
