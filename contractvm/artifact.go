// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractvm

import (
	"errors"

	"github.com/ava-labs/avalanchego/utils/wrappers"
)

// Artifact is the deployable module envelope the CLI's --wasm flag points
// at. The runtime dispatches on the program name it carries; the payload is
// opaque to the host and kept only for content addressing.
type Artifact struct {
	Program Symbol
	Payload []byte
}

const (
	artifactVersion byte = 0

	// maxArtifactSize bounds a deployable artifact, payload included.
	maxArtifactSize = 4 * 1024 * 1024
)

var (
	artifactMagic = []byte("cvm1")

	ErrBadArtifactMagic   = errors.New("artifact missing cvm1 magic")
	ErrBadArtifactVersion = errors.New("unsupported artifact version")
	ErrArtifactTooLarge   = errors.New("artifact exceeds size limit")

	errArtifactTrailing = errors.New("trailing bytes after artifact envelope")
)

// EncodeArtifact builds the artifact envelope for [program] around an
// opaque [payload].
func EncodeArtifact(program Symbol, payload []byte) ([]byte, error) {
	p := wrappers.Packer{MaxSize: maxArtifactSize}
	p.PackFixedBytes(artifactMagic)
	p.PackByte(artifactVersion)
	p.PackLong(uint64(program))
	p.PackBytes(payload)
	if p.Errored() {
		return nil, p.Err
	}
	return p.Bytes, nil
}

// ParseArtifact decodes and validates an artifact envelope.
func ParseArtifact(raw []byte) (*Artifact, error) {
	if len(raw) > maxArtifactSize {
		return nil, ErrArtifactTooLarge
	}
	p := wrappers.Packer{Bytes: raw}
	magic := p.UnpackFixedBytes(len(artifactMagic))
	if p.Errored() || string(magic) != string(artifactMagic) {
		return nil, ErrBadArtifactMagic
	}
	if version := p.UnpackByte(); p.Errored() || version != artifactVersion {
		return nil, ErrBadArtifactVersion
	}
	program := Symbol(p.UnpackLong())
	payload := p.UnpackBytes()
	if p.Errored() {
		return nil, p.Err
	}
	if p.Offset != len(raw) {
		return nil, errArtifactTrailing
	}
	if !program.valid() || program == 0 {
		return nil, errSymbolBadPacking
	}
	return &Artifact{Program: program, Payload: payload}, nil
}
