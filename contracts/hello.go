// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contracts

import (
	"github.com/ava-labs/contractvm/contractvm"
)

// Hello greets whoever is named in the argument.
type Hello struct{}

func (*Hello) Describe() string {
	return "returns a two-element greeting vector"
}

func (c *Hello) Functions() map[contractvm.Symbol]contractvm.Function {
	return map[contractvm.Symbol]contractvm.Function{
		contractvm.Sym("hello"): c.hello,
	}
}

func (*Hello) hello(env *contractvm.Env, args []contractvm.Val) contractvm.Val {
	expectArgs(env, args, 1)
	to := args[0].Symbol()
	return contractvm.VecVal(
		contractvm.SymbolVal(contractvm.Sym("Hello")),
		contractvm.SymbolVal(to),
	)
}
