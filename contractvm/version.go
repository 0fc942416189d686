// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractvm

// Name/Version reported by the CLI and the RPC service.
var (
	Name    string = "contractvm"
	Version string = "v0.1.0"
)
