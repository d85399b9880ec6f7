package generator

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ABIProbe/schema"
)

var testTarget = common.HexToAddress("0x742d35Cc6634C0532925a3b844Bc454e4438f44e")

func erc20Schema(t *testing.T) []schema.FunctionDescriptor {
	t.Helper()
	result, err := schema.Parse([]byte(`[
		{"type": "function", "name": "balanceOf", "stateMutability": "view",
		 "inputs": [{"name": "owner", "type": "address"}]},
		{"type": "function", "name": "transfer", "stateMutability": "nonpayable",
		 "inputs": [{"name": "to", "type": "address"}, {"name": "amount", "type": "uint256"}]}
	]`))
	require.NoError(t, err)
	return result.Functions
}

func casesByPrefix(cases []*TestCase, prefix string) []*TestCase {
	var out []*TestCase
	for _, tc := range cases {
		if strings.HasPrefix(tc.Name, prefix) {
			out = append(out, tc)
		}
	}
	return out
}

// TestSynthesize_RuleByRuleCounts tests that the case count follows
// from the derivation rules, not a fixed number
func TestSynthesize_RuleByRuleCounts(t *testing.T) {
	cases := New().Synthesize(erc20Schema(t), testTarget)

	// balanceOf: read + fuzz. transfer: write + boundary + fuzz.
	// Plus one integration case. Total 6.
	require.Len(t, cases, 6)
	assert.Len(t, casesByPrefix(cases, "read "), 1)
	assert.Len(t, casesByPrefix(cases, "write "), 1)
	assert.Len(t, casesByPrefix(cases, "boundary "), 1)
	assert.Len(t, casesByPrefix(cases, "fuzz "), 2)
	assert.Len(t, casesByPrefix(cases, "integration "), 1)

	for _, tc := range cases {
		assert.Equal(t, StatusPending, tc.Status)
		assert.NotEmpty(t, tc.ID)
		assert.NotEmpty(t, tc.Expected)
		require.NotEmpty(t, tc.Steps)
		for _, step := range tc.Steps {
			assert.Equal(t, StepContractCall, step.Kind)
			assert.Equal(t, testTarget, step.Target)
		}
	}
}

// TestSynthesize_StepCounts tests per-rule step counts
func TestSynthesize_StepCounts(t *testing.T) {
	cases := New().Synthesize(erc20Schema(t), testTarget)
	for _, tc := range cases {
		switch {
		case strings.HasPrefix(tc.Name, "boundary "), strings.HasPrefix(tc.Name, "integration "):
			assert.Len(t, tc.Steps, 2, tc.Name)
		default:
			assert.Len(t, tc.Steps, 1, tc.Name)
		}
	}
}

// TestSynthesize_BoundaryExtremes tests that the boundary case's first
// step carries minimal integer arguments and its second maximal ones
func TestSynthesize_BoundaryExtremes(t *testing.T) {
	cases := New().Synthesize(erc20Schema(t), testTarget)
	boundary := casesByPrefix(cases, "boundary ")
	require.Len(t, boundary, 1)
	steps := boundary[0].Steps
	require.Len(t, steps, 2)

	// transfer(address to, uint256 amount): amount is the integer.
	minAmount := steps[0].Args[1].(*big.Int)
	maxAmount := steps[1].Args[1].(*big.Int)
	assert.Zero(t, minAmount.Sign())

	uint256Max, _ := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	assert.Equal(t, 0, uint256Max.Cmp(maxAmount))

	// The address parameter falls back to the safe value on both passes.
	assert.Equal(t, steps[0].Args[0], steps[1].Args[0])
}

// TestSynthesize_IntegrationOrdering tests first-write-then-first-read
// selection in declaration order
func TestSynthesize_IntegrationOrdering(t *testing.T) {
	result, err := schema.Parse([]byte(`[
		{"type": "function", "name": "totalSupply", "stateMutability": "view", "inputs": []},
		{"type": "function", "name": "mint", "stateMutability": "nonpayable",
		 "inputs": [{"name": "amount", "type": "uint256"}]},
		{"type": "function", "name": "burn", "stateMutability": "nonpayable",
		 "inputs": [{"name": "amount", "type": "uint256"}]},
		{"type": "function", "name": "symbol", "stateMutability": "view", "inputs": []}
	]`))
	require.NoError(t, err)

	cases := New().Synthesize(result.Functions, testTarget)
	integration := casesByPrefix(cases, "integration ")
	require.Len(t, integration, 1)
	steps := integration[0].Steps
	require.Len(t, steps, 2)
	assert.Equal(t, "mint", steps[0].Method)
	assert.Equal(t, "totalSupply", steps[1].Method)

	// The integration case closes the batch.
	assert.Same(t, integration[0], cases[len(cases)-1])
}

// TestSynthesize_NoIntegrationWithoutBothKinds tests the integration
// precondition
func TestSynthesize_NoIntegrationWithoutBothKinds(t *testing.T) {
	readOnly, err := schema.Parse([]byte(`[
		{"type": "function", "name": "name", "stateMutability": "view", "inputs": []},
		{"type": "function", "name": "symbol", "stateMutability": "pure", "inputs": []}
	]`))
	require.NoError(t, err)
	cases := New().Synthesize(readOnly.Functions, testTarget)
	assert.Empty(t, casesByPrefix(cases, "integration "))

	writeOnly, err := schema.Parse([]byte(`[
		{"type": "function", "name": "poke", "inputs": []}
	]`))
	require.NoError(t, err)
	cases = New().Synthesize(writeOnly.Functions, testTarget)
	assert.Empty(t, casesByPrefix(cases, "integration "))
}

// TestSynthesize_NoParamsNoFuzz tests that parameterless functions get
// no fuzz or boundary case
func TestSynthesize_NoParamsNoFuzz(t *testing.T) {
	result, err := schema.Parse([]byte(`[
		{"type": "function", "name": "totalSupply", "stateMutability": "view", "inputs": []}
	]`))
	require.NoError(t, err)

	cases := New().Synthesize(result.Functions, testTarget)
	require.Len(t, cases, 1)
	assert.Equal(t, "read totalSupply", cases[0].Name)
}

// TestSynthesize_EmptySchema tests the degenerate input
func TestSynthesize_EmptySchema(t *testing.T) {
	assert.Empty(t, New().Synthesize(nil, testTarget))
}

// TestSynthesize_Idempotence tests that repeated synthesis differs
// only in opaque identifiers and fuzzed arguments
func TestSynthesize_Idempotence(t *testing.T) {
	fns := erc20Schema(t)
	first := New().Synthesize(fns, testTarget)
	second := New().Synthesize(fns, testTarget)
	require.Equal(t, len(first), len(second))

	for i := range first {
		a, b := first[i], second[i]
		assert.Equal(t, a.Name, b.Name)
		assert.Equal(t, a.Description, b.Description)
		assert.Equal(t, a.Expected, b.Expected)
		require.Equal(t, len(a.Steps), len(b.Steps))

		if strings.HasPrefix(a.Name, "fuzz ") {
			continue // fuzz arguments are sampled fresh per run
		}
		for j := range a.Steps {
			assert.Equal(t, a.Steps[j].Method, b.Steps[j].Method)
			assert.Equal(t, a.Steps[j].Args, b.Steps[j].Args)
		}
	}
}
