// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractvm

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Literal forms, used by the CLI's --arg flag and the RPC interchange:
//
//	void
//	bool:true        bool:false
//	u32:5            u64:1234
//	sym:COUNTER
//	bytes:0xdeadbeef
//	vec:[sym:Hello,sym:friend]
//
// ParseVal also infers unprefixed literals: decimal digits parse as u64,
// true/false as bool, and anything that interns as a Symbol as sym. Use an
// explicit prefix when the inference would be wrong (e.g. sym:42).

var (
	ErrBadValueLiteral = errors.New("bad value literal")

	errVecBrackets = fmt.Errorf("%w: vec payload must be bracketed, e.g. vec:[u32:1,u32:2]", ErrBadValueLiteral)
)

// ParseVal parses the literal form of a Val.
func ParseVal(s string) (Val, error) {
	if s == "void" {
		return VoidVal(), nil
	}
	kind, payload, explicit := strings.Cut(s, ":")
	if explicit {
		switch kind {
		case "bool":
			switch payload {
			case "true":
				return BoolVal(true), nil
			case "false":
				return BoolVal(false), nil
			}
			return Val{}, fmt.Errorf("%w: bool payload %q", ErrBadValueLiteral, payload)
		case "u32":
			n, err := strconv.ParseUint(payload, 10, 32)
			if err != nil {
				return Val{}, fmt.Errorf("%w: %q: %s", ErrBadValueLiteral, s, err)
			}
			return Uint32Val(uint32(n)), nil
		case "u64":
			n, err := strconv.ParseUint(payload, 10, 64)
			if err != nil {
				return Val{}, fmt.Errorf("%w: %q: %s", ErrBadValueLiteral, s, err)
			}
			return Uint64Val(n), nil
		case "sym":
			sym, err := NewSymbol(payload)
			if err != nil {
				return Val{}, fmt.Errorf("%w: %q: %s", ErrBadValueLiteral, s, err)
			}
			return SymbolVal(sym), nil
		case "bytes":
			raw, err := hex.DecodeString(strings.TrimPrefix(payload, "0x"))
			if err != nil {
				return Val{}, fmt.Errorf("%w: %q: %s", ErrBadValueLiteral, s, err)
			}
			return BytesVal(raw), nil
		case "vec":
			return parseVecLiteral(payload)
		}
		// Symbols never contain a colon, so an unknown prefix means the
		// literal is malformed rather than a bare symbol.
		return Val{}, fmt.Errorf("%w: unknown kind prefix %q", ErrBadValueLiteral, kind)
	}

	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Uint64Val(n), nil
	}
	if s == "true" {
		return BoolVal(true), nil
	}
	if s == "false" {
		return BoolVal(false), nil
	}
	if sym, err := NewSymbol(s); err == nil && s != "" {
		return SymbolVal(sym), nil
	}
	return Val{}, fmt.Errorf("%w: %q", ErrBadValueLiteral, s)
}

func parseVecLiteral(payload string) (Val, error) {
	if !strings.HasPrefix(payload, "[") || !strings.HasSuffix(payload, "]") {
		return Val{}, errVecBrackets
	}
	inner := payload[1 : len(payload)-1]
	if inner == "" {
		return VecVal(), nil
	}
	var (
		elems []Val
		depth int
		start int
	)
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return Val{}, errVecBrackets
			}
		case ',':
			if depth == 0 {
				elem, err := ParseVal(inner[start:i])
				if err != nil {
					return Val{}, err
				}
				elems = append(elems, elem)
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return Val{}, errVecBrackets
	}
	elem, err := ParseVal(inner[start:])
	if err != nil {
		return Val{}, err
	}
	elems = append(elems, elem)
	return VecVal(elems...), nil
}

// FormatVal renders [v] in its literal form. FormatVal and ParseVal
// round-trip.
func FormatVal(v Val) string {
	switch v.kind {
	case KindVoid:
		return "void"
	case KindBool:
		return "bool:" + strconv.FormatBool(v.num != 0)
	case KindUint32:
		return "u32:" + strconv.FormatUint(v.num, 10)
	case KindUint64:
		return "u64:" + strconv.FormatUint(v.num, 10)
	case KindSymbol:
		return "sym:" + Symbol(v.num).String()
	case KindBytes:
		return "bytes:0x" + hex.EncodeToString(v.blob)
	case KindVec:
		parts := make([]string, len(v.vec))
		for i, elem := range v.vec {
			parts[i] = FormatVal(elem)
		}
		return "vec:[" + strings.Join(parts, ",") + "]"
	default:
		return fmt.Sprintf("invalid:%d", v.kind)
	}
}
