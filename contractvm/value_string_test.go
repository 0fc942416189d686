// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contractvm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseValExplicit(t *testing.T) {
	require := require.New(t)

	tests := []struct {
		literal string
		want    Val
	}{
		{"void", VoidVal()},
		{"bool:true", BoolVal(true)},
		{"bool:false", BoolVal(false)},
		{"u32:0", Uint32Val(0)},
		{"u32:4294967295", Uint32Val(math.MaxUint32)},
		{"u64:18446744073709551615", Uint64Val(math.MaxUint64)},
		{"sym:COUNTER", SymbolVal(Sym("COUNTER"))},
		{"sym:42", SymbolVal(Sym("42"))},
		{"bytes:0xdeadbeef", BytesVal([]byte{0xde, 0xad, 0xbe, 0xef})},
		{"bytes:00ff", BytesVal([]byte{0x00, 0xff})},
		{"vec:[]", VecVal()},
		{"vec:[sym:Hello,sym:friend]", VecVal(SymbolVal(Sym("Hello")), SymbolVal(Sym("friend")))},
		{"vec:[u32:1,vec:[u64:2,bool:false]]", VecVal(Uint32Val(1), VecVal(Uint64Val(2), BoolVal(false)))},
	}
	for _, tt := range tests {
		v, err := ParseVal(tt.literal)
		require.NoError(err, tt.literal)
		require.True(tt.want.Equal(v), tt.literal)
	}
}

func TestParseValInference(t *testing.T) {
	require := require.New(t)

	v, err := ParseVal("42")
	require.NoError(err)
	require.Equal(uint64(42), v.Uint64())

	v, err = ParseVal("true")
	require.NoError(err)
	require.True(v.Bool())

	v, err = ParseVal("false")
	require.NoError(err)
	require.False(v.Bool())

	v, err = ParseVal("greeting")
	require.NoError(err)
	require.Equal(Sym("greeting"), v.Symbol())
}

func TestParseValRejects(t *testing.T) {
	require := require.New(t)

	for _, literal := range []string{
		"",
		"u32:",
		"u32:-1",
		"u32:4294967296",
		"u64:nope",
		"bool:yes",
		"frob:1",
		"sym:not a sym",
		"sym:waytoolongname",
		"bytes:0xzz",
		"vec:1,2",
		"vec:[u32:1",
		"vec:[u32:1]]",
		"this has spaces",
	} {
		_, err := ParseVal(literal)
		require.ErrorIs(err, ErrBadValueLiteral, literal)
	}
}

func TestFormatValRoundTrips(t *testing.T) {
	require := require.New(t)

	vals := []Val{
		VoidVal(),
		BoolVal(true),
		Uint32Val(7),
		Uint64Val(7),
		SymbolVal(Sym("add_with")),
		BytesVal(nil),
		BytesVal([]byte{0, 1, 0xff}),
		VecVal(),
		VecVal(Uint32Val(1), VecVal(SymbolVal(Sym("deep")), BoolVal(false))),
	}
	for _, v := range vals {
		back, err := ParseVal(FormatVal(v))
		require.NoError(err, FormatVal(v))
		require.True(v.Equal(back), FormatVal(v))
	}
}
