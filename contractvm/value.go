// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractvm

import "bytes"

// ValKind enumerates the dynamic kinds a Val can hold.
type ValKind byte

const (
	KindVoid ValKind = iota
	KindBool
	KindUint32
	KindUint64
	KindSymbol
	KindBytes
	KindVec
)

func (k ValKind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindUint32:
		return "u32"
	case KindUint64:
		return "u64"
	case KindSymbol:
		return "sym"
	case KindBytes:
		return "bytes"
	case KindVec:
		return "vec"
	default:
		return "invalid"
	}
}

// Val is the dynamically tagged value exchanged between the host and
// contract code: arguments, return values and storage entries all travel
// as Vals. The zero Val is Void.
//
// The kind-specific getters follow the reflect.Value convention: asking a
// Val for a kind it does not hold is a fatal type mismatch and panics with
// a *HostError, matching the runtime's documented unwrap semantics. Check
// Kind first on paths that must not abort.
type Val struct {
	kind ValKind
	num  uint64
	blob []byte
	vec  []Val
}

func VoidVal() Val { return Val{} }

func BoolVal(b bool) Val {
	var n uint64
	if b {
		n = 1
	}
	return Val{kind: KindBool, num: n}
}

func Uint32Val(n uint32) Val { return Val{kind: KindUint32, num: uint64(n)} }

func Uint64Val(n uint64) Val { return Val{kind: KindUint64, num: n} }

func SymbolVal(s Symbol) Val { return Val{kind: KindSymbol, num: uint64(s)} }

func BytesVal(b []byte) Val { return Val{kind: KindBytes, blob: b} }

func VecVal(elems ...Val) Val { return Val{kind: KindVec, vec: elems} }

func (v Val) Kind() ValKind { return v.kind }

func (v Val) IsVoid() bool { return v.kind == KindVoid }

func (v Val) Bool() bool {
	v.mustKind(KindBool)
	return v.num != 0
}

func (v Val) Uint32() uint32 {
	v.mustKind(KindUint32)
	return uint32(v.num)
}

func (v Val) Uint64() uint64 {
	v.mustKind(KindUint64)
	return v.num
}

func (v Val) Symbol() Symbol {
	v.mustKind(KindSymbol)
	return Symbol(v.num)
}

func (v Val) Bytes() []byte {
	v.mustKind(KindBytes)
	return v.blob
}

func (v Val) Vec() []Val {
	v.mustKind(KindVec)
	return v.vec
}

func (v Val) mustKind(want ValKind) {
	if v.kind != want {
		Abort(ErrCodeTypeMismatch, "have %s, want %s", v.kind, want)
	}
}

// Equal reports deep equality of two Vals, including kind.
func (v Val) Equal(o Val) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBytes:
		return bytes.Equal(v.blob, o.blob)
	case KindVec:
		if len(v.vec) != len(o.vec) {
			return false
		}
		for i := range v.vec {
			if !v.vec[i].Equal(o.vec[i]) {
				return false
			}
		}
		return true
	default:
		return v.num == o.num
	}
}

// String returns the literal form of the Val (see ParseVal).
func (v Val) String() string { return FormatVal(v) }
