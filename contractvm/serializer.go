package contractvm

import (
	"errors"

	"github.com/ava-labs/avalanchego/utils/wrappers"
)

const (
	// maxValWireSize bounds the encoded size of a single Val.
	maxValWireSize = 256 * 1024
	// maxVecDepth bounds vec nesting in the wire form.
	maxVecDepth = 16
)

var (
	ErrInvalidValFormat = errors.New("invalid value format")

	errValTrailingBytes = errors.New("trailing bytes after value")
	errValTooDeep       = errors.New("value nesting too deep")
)

// MarshalVal encodes [v] to its wire form: one kind byte followed by the
// kind's payload. Numbers are big-endian, bytes are length-prefixed, vecs
// are count-prefixed.
func MarshalVal(v Val) ([]byte, error) {
	p := wrappers.Packer{MaxSize: maxValWireSize}
	if err := packVal(&p, v, 0); err != nil {
		return nil, err
	}
	if p.Errored() {
		return nil, p.Err
	}
	return p.Bytes, nil
}

func packVal(p *wrappers.Packer, v Val, depth int) error {
	if depth >= maxVecDepth {
		return errValTooDeep
	}
	p.PackByte(byte(v.kind))
	switch v.kind {
	case KindVoid:
	case KindBool:
		p.PackBool(v.num != 0)
	case KindUint32:
		p.PackInt(uint32(v.num))
	case KindUint64, KindSymbol:
		p.PackLong(v.num)
	case KindBytes:
		p.PackBytes(v.blob)
	case KindVec:
		p.PackInt(uint32(len(v.vec)))
		for _, elem := range v.vec {
			if err := packVal(p, elem, depth+1); err != nil {
				return err
			}
		}
	default:
		return ErrInvalidValFormat
	}
	return nil
}

// UnmarshalVal decodes the wire form produced by MarshalVal. Trailing
// bytes, truncation, unknown kinds and invalid symbol packings are all
// rejected.
func UnmarshalVal(raw []byte) (Val, error) {
	p := wrappers.Packer{Bytes: raw}
	v, err := unpackVal(&p, 0)
	if err != nil {
		return Val{}, err
	}
	if p.Errored() {
		return Val{}, p.Err
	}
	if p.Offset != len(raw) {
		return Val{}, errValTrailingBytes
	}
	return v, nil
}

func unpackVal(p *wrappers.Packer, depth int) (Val, error) {
	if depth >= maxVecDepth {
		return Val{}, errValTooDeep
	}
	kind := ValKind(p.UnpackByte())
	if p.Errored() {
		return Val{}, p.Err
	}
	switch kind {
	case KindVoid:
		return VoidVal(), nil
	case KindBool:
		return BoolVal(p.UnpackBool()), nil
	case KindUint32:
		return Uint32Val(p.UnpackInt()), nil
	case KindUint64:
		return Uint64Val(p.UnpackLong()), nil
	case KindSymbol:
		sym := Symbol(p.UnpackLong())
		if p.Errored() {
			return Val{}, p.Err
		}
		if !sym.valid() {
			return Val{}, errSymbolBadPacking
		}
		return SymbolVal(sym), nil
	case KindBytes:
		return BytesVal(p.UnpackBytes()), nil
	case KindVec:
		count := int(p.UnpackInt())
		if p.Errored() {
			return Val{}, p.Err
		}
		// Every element takes at least one byte, so a count beyond the
		// remaining bytes cannot be honest.
		if count > len(p.Bytes)-p.Offset {
			return Val{}, ErrInvalidValFormat
		}
		elems := make([]Val, count)
		for i := 0; i < count; i++ {
			elem, err := unpackVal(p, depth+1)
			if err != nil {
				return Val{}, err
			}
			elems[i] = elem
		}
		return VecVal(elems...), nil
	default:
		return Val{}, ErrInvalidValFormat
	}
}
