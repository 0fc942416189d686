// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contracts

import (
	"github.com/ava-labs/contractvm/contractvm"
)

var keyHits = contractvm.Sym("HITS")

// Events bumps a counter and publishes the new count. The event only
// becomes visible if the invocation commits.
type Events struct{}

func (*Events) Describe() string {
	return "publishes an event per hit"
}

func (c *Events) Functions() map[contractvm.Symbol]contractvm.Function {
	return map[contractvm.Symbol]contractvm.Function{
		contractvm.Sym("hit"): c.hit,
	}
}

func (*Events) hit(env *contractvm.Env, args []contractvm.Val) contractvm.Val {
	expectArgs(env, args, 0)

	count, _ := env.Storage().GetUint32(keyHits)
	count = contractvm.CheckedAddUint32(count, 1)
	env.Storage().Set(keyHits, contractvm.Uint32Val(count))

	env.Events().Publish(
		[]contractvm.Val{
			contractvm.SymbolVal(contractvm.Sym("counter")),
			contractvm.SymbolVal(contractvm.Sym("hit")),
		},
		contractvm.Uint32Val(count),
	)
	return contractvm.Uint32Val(count)
}
