// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contracts

import (
	"github.com/ava-labs/contractvm/contractvm"
)

// Adder exposes a single checked addition.
type Adder struct{}

func (*Adder) Describe() string {
	return "adds two u64 values, aborting on overflow"
}

func (c *Adder) Functions() map[contractvm.Symbol]contractvm.Function {
	return map[contractvm.Symbol]contractvm.Function{
		contractvm.Sym("add"): c.add,
	}
}

func (*Adder) add(env *contractvm.Env, args []contractvm.Val) contractvm.Val {
	expectArgs(env, args, 2)
	sum := contractvm.CheckedAddUint64(args[0].Uint64(), args[1].Uint64())
	return contractvm.Uint64Val(sum)
}
