// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractvm

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
)

// Function is a contract entry point. Fatal conditions are raised by
// panicking with a *HostError (usually via env.Abort or the Val getters);
// the runtime aborts and rolls back the whole invocation when one escapes.
type Function func(env *Env, args []Val) Val

// Contract is a unit of deployable logic. Implementations are stateless Go
// values; all durable state lives in the per-contract storage the runtime
// hands to each invocation.
type Contract interface {
	// Describe returns a short human-readable description, recorded at
	// deployment.
	Describe() string

	// Functions returns the exported entry points keyed by name.
	Functions() map[Symbol]Function
}

// Catalog maps program names to constructors of their implementations.
// Deployment resolves an artifact's program name here.
type Catalog struct {
	builders map[Symbol]func() Contract
}

func NewCatalog() *Catalog {
	return &Catalog{builders: make(map[Symbol]func() Contract)}
}

// Register adds [builder] under [name], replacing any previous entry.
func (c *Catalog) Register(name Symbol, builder func() Contract) {
	c.builders[name] = builder
}

// New instantiates the program registered under [name].
func (c *Catalog) New(name Symbol) (Contract, bool) {
	builder, ok := c.builders[name]
	if !ok {
		return nil, false
	}
	return builder(), true
}

// Names lists the registered program names.
func (c *Catalog) Names() []Symbol {
	names := make([]Symbol, 0, len(c.builders))
	for name := range c.builders {
		names = append(names, name)
	}
	return names
}

var ErrBadContractID = errors.New("bad contract identifier")

// ParseContractID parses the textual form of a contract identifier:
// 0x-optional hex of up to 32 bytes, left-padded (so "1" addresses
// 0x00..01), or the checksummed base58 form printed by avalanchego.
func ParseContractID(s string) (ids.ID, error) {
	if s == "" {
		return ids.Empty, fmt.Errorf("%w: empty", ErrBadContractID)
	}
	trimmed := strings.TrimPrefix(s, "0x")
	if len(trimmed)%2 == 1 {
		trimmed = "0" + trimmed
	}
	if raw, err := hex.DecodeString(trimmed); err == nil {
		if len(raw) > len(ids.Empty) {
			return ids.Empty, fmt.Errorf("%w: %d bytes exceeds 32", ErrBadContractID, len(raw))
		}
		var id ids.ID
		copy(id[len(id)-len(raw):], raw)
		return id, nil
	}
	if id, err := ids.FromString(s); err == nil {
		return id, nil
	}
	return ids.Empty, fmt.Errorf("%w: %q", ErrBadContractID, s)
}

// FormatContractID renders [id] as 0x-prefixed hex, the form accepted back
// by ParseContractID.
func FormatContractID(id ids.ID) string {
	return "0x" + hex.EncodeToString(id[:])
}

// ContractIDFromArtifact derives the default identifier for a deployment:
// the SHA-256 of the artifact bytes.
func ContractIDFromArtifact(artifact []byte) ids.ID {
	return hashing.ComputeHash256Array(artifact)
}
