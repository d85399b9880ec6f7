package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const erc20Fragment = `[
	{"type": "function", "name": "balanceOf", "stateMutability": "view",
	 "inputs": [{"name": "owner", "type": "address"}]},
	{"type": "function", "name": "transfer", "stateMutability": "nonpayable",
	 "inputs": [{"name": "to", "type": "address"}, {"name": "amount", "type": "uint256"}]},
	{"type": "event", "name": "Transfer", "inputs": []}
]`

// TestParse tests decoding a well-formed interface description
func TestParse(t *testing.T) {
	result, err := Parse([]byte(erc20Fragment))
	require.NoError(t, err)
	require.Len(t, result.Functions, 2)
	assert.Empty(t, result.Skipped)

	balanceOf := result.Functions[0]
	assert.Equal(t, "balanceOf", balanceOf.Name)
	assert.True(t, balanceOf.ReadOnly())
	assert.False(t, balanceOf.HasIntegerInput())
	assert.Equal(t, "balanceOf(address)", balanceOf.Signature())

	transfer := result.Functions[1]
	assert.Equal(t, "transfer", transfer.Name)
	assert.False(t, transfer.ReadOnly())
	assert.True(t, transfer.HasIntegerInput())
	assert.Equal(t, "transfer(address,uint256)", transfer.Signature())
}

// TestParse_NonFunctionEntriesIgnored tests that events and
// constructors never surface as functions
func TestParse_NonFunctionEntriesIgnored(t *testing.T) {
	input := `[
		{"type": "constructor", "inputs": [{"name": "supply", "type": "uint256"}]},
		{"type": "event", "name": "Approval", "inputs": []},
		{"type": "fallback"},
		{"type": "function", "name": "decimals", "stateMutability": "pure", "inputs": []}
	]`
	result, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, result.Functions, 1)
	assert.Equal(t, "decimals", result.Functions[0].Name)
	assert.Empty(t, result.Skipped)
}

// TestParse_MalformedEntrySkipped tests per-entry containment: one bad
// entry must not lose the rest
func TestParse_MalformedEntrySkipped(t *testing.T) {
	input := `[
		{"type": "function", "name": "good", "stateMutability": "view", "inputs": []},
		{"type": "function", "name": "broken", "inputs": [{"name": "x"}]},
		{"type": "function", "inputs": []},
		{"type": "function", "name": "alsoGood", "stateMutability": "view", "inputs": []}
	]`
	result, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, result.Functions, 2)
	assert.Equal(t, "good", result.Functions[0].Name)
	assert.Equal(t, "alsoGood", result.Functions[1].Name)
	assert.Len(t, result.Skipped, 2)
}

// TestParse_NotAnArray tests the fatal input-format error
func TestParse_NotAnArray(t *testing.T) {
	result, err := Parse([]byte(`{"type": "function"}`))
	assert.Error(t, err)
	assert.Nil(t, result)

	result, err = Parse([]byte(`not json at all`))
	assert.Error(t, err)
	assert.Nil(t, result)
}

// TestParse_DefaultMutability tests that a missing mutability tag is
// treated as state-changing
func TestParse_DefaultMutability(t *testing.T) {
	input := `[{"type": "function", "name": "poke", "inputs": []}]`
	result, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, result.Functions, 1)
	assert.Equal(t, "nonpayable", result.Functions[0].StateMutability)
	assert.False(t, result.Functions[0].ReadOnly())
}

// TestParseTypeTag tests the type vocabulary resolution
func TestParseTypeTag(t *testing.T) {
	tests := []struct {
		typ  string
		want TypeTag
	}{
		{"uint256", TypeTag{Kind: KindUint, Bits: 256}},
		{"uint8", TypeTag{Kind: KindUint, Bits: 8}},
		{"uint", TypeTag{Kind: KindUint, Bits: 256}},
		{"int128", TypeTag{Kind: KindInt, Bits: 128}},
		{"int", TypeTag{Kind: KindInt, Bits: 256}},
		{"address", TypeTag{Kind: KindAddress}},
		{"bool", TypeTag{Kind: KindBool}},
		{"string", TypeTag{Kind: KindString}},
		{"bytes", TypeTag{Kind: KindDynamicBytes}},
		{"bytes32", TypeTag{Kind: KindFixedBytes, Size: 32}},
		{"bytes1", TypeTag{Kind: KindFixedBytes, Size: 1}},
		{"uint7", TypeTag{Kind: KindUnknown}},
		{"uint512", TypeTag{Kind: KindUnknown}},
		{"bytes33", TypeTag{Kind: KindUnknown}},
		{"tuple", TypeTag{Kind: KindUnknown}},
		{"uint256[]", TypeTag{Kind: KindUnknown}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseTypeTag(tt.typ), "type %s", tt.typ)
	}
}
