// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractvm

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// MaxSymbolLen is the maximum number of characters in a Symbol.
const MaxSymbolLen = 10

var (
	ErrSymbolTooLong = errors.New("symbol exceeds 10 characters")
	ErrSymbolBadChar = errors.New("symbol contains character outside [_0-9A-Za-z]")

	errSymbolBadLength  = errors.New("symbol byte form must be 8 bytes")
	errSymbolBadPacking = errors.New("symbol bit pattern does not round-trip")
)

// Symbol is a short interned string used for function names and storage keys.
// Up to [MaxSymbolLen] characters from [_0-9A-Za-z] are packed six bits per
// character into a uint64, so Symbols are comparable and copyable by value.
// The zero Symbol is the empty string.
//
// Character codes: 0 terminates, '_' is 1, '0'-'9' are 2-11, 'A'-'Z' are
// 12-37, 'a'-'z' are 38-63. The first character occupies the most
// significant six bits of the low 60 bits.
type Symbol uint64

// NewSymbol interns [s] as a Symbol.
func NewSymbol(s string) (Symbol, error) {
	if len(s) > MaxSymbolLen {
		return 0, fmt.Errorf("%w: %q", ErrSymbolTooLong, s)
	}
	var packed uint64
	for i := 0; i < len(s); i++ {
		code, ok := symbolCharCode(s[i])
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrSymbolBadChar, s)
		}
		shift := uint(6 * (MaxSymbolLen - 1 - i))
		packed |= uint64(code) << shift
	}
	return Symbol(packed), nil
}

// Sym interns [s], panicking on invalid input. Intended for literals in
// contract code, where a bad name is a fatal authoring error.
func Sym(s string) Symbol {
	sym, err := NewSymbol(s)
	if err != nil {
		panic(&HostError{Code: ErrCodeBadSymbol, Msg: err.Error()})
	}
	return sym
}

// String decodes the Symbol back to its text form.
func (s Symbol) String() string {
	buf := make([]byte, 0, MaxSymbolLen)
	for i := 0; i < MaxSymbolLen; i++ {
		shift := uint(6 * (MaxSymbolLen - 1 - i))
		code := byte(uint64(s)>>shift) & 0x3f
		if code == 0 {
			break
		}
		buf = append(buf, symbolCodeChar(code))
	}
	return string(buf)
}

// Bytes returns the fixed 8-byte big-endian form used as a storage key.
func (s Symbol) Bytes() []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(s))
	return key
}

// SymbolFromBytes is the inverse of Bytes. It rejects any bit pattern that
// does not decode to a valid packed symbol.
func SymbolFromBytes(b []byte) (Symbol, error) {
	if len(b) != 8 {
		return 0, errSymbolBadLength
	}
	sym := Symbol(binary.BigEndian.Uint64(b))
	if !sym.valid() {
		return 0, errSymbolBadPacking
	}
	return sym, nil
}

// valid reports whether the packed form could have been produced by
// NewSymbol: no bits above the low 60, and no character after a terminator.
func (s Symbol) valid() bool {
	if uint64(s)>>60 != 0 {
		return false
	}
	terminated := false
	for i := 0; i < MaxSymbolLen; i++ {
		shift := uint(6 * (MaxSymbolLen - 1 - i))
		code := byte(uint64(s)>>shift) & 0x3f
		if code == 0 {
			terminated = true
			continue
		}
		if terminated {
			return false
		}
	}
	return true
}

func symbolCharCode(c byte) (byte, bool) {
	switch {
	case c == '_':
		return 1, true
	case c >= '0' && c <= '9':
		return 2 + c - '0', true
	case c >= 'A' && c <= 'Z':
		return 12 + c - 'A', true
	case c >= 'a' && c <= 'z':
		return 38 + c - 'a', true
	default:
		return 0, false
	}
}

func symbolCodeChar(code byte) byte {
	switch {
	case code == 1:
		return '_'
	case code >= 2 && code <= 11:
		return '0' + code - 2
	case code >= 12 && code <= 37:
		return 'A' + code - 12
	default:
		return 'a' + code - 38
	}
}
