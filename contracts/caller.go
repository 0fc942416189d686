// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contracts

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/contractvm/contractvm"
)

// Caller forwards addition to the contract named by its third argument, as
// a cross-contract call on the same stack.
type Caller struct{}

func (*Caller) Describe() string {
	return "delegates addition to another contract"
}

func (c *Caller) Functions() map[contractvm.Symbol]contractvm.Function {
	return map[contractvm.Symbol]contractvm.Function{
		contractvm.Sym("add_with"): c.addWith,
	}
}

func (*Caller) addWith(env *contractvm.Env, args []contractvm.Val) contractvm.Val {
	expectArgs(env, args, 3)

	callee, err := ids.ToID(args[2].Bytes())
	if err != nil {
		env.Abort(contractvm.ErrCodeMalformedValue, "callee ID: %s", err)
	}
	return env.Invoke(callee, contractvm.Sym("add"), args[0], args[1])
}
