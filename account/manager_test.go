package account

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ABIProbe/config"
)

// TestNewManager tests address derivation from a known dev key
func TestNewManager(t *testing.T) {
	acct := config.PredefinedAccounts[0]

	m, err := NewManager(acct.PrivateKey)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(acct.Address), m.Address())

	// 0x prefix and surrounding whitespace are tolerated.
	m2, err := NewManager(" 0x" + acct.PrivateKey + " ")
	require.NoError(t, err)
	assert.Equal(t, m.Address(), m2.Address())
}

// TestNewManager_InvalidKey tests the error path
func TestNewManager_InvalidKey(t *testing.T) {
	m, err := NewManager("not a key")
	assert.Error(t, err)
	assert.Nil(t, m)
}

// TestSignTx tests that signed transactions recover to the manager's
// address
func TestSignTx(t *testing.T) {
	m, err := NewManager(config.PredefinedAccounts[1].PrivateKey)
	require.NoError(t, err)

	chainID := big.NewInt(3151908)
	to := common.HexToAddress("0x02")
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     0,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(2),
		Gas:       21000,
		To:        &to,
	})

	signed, err := m.SignTx(tx, chainID)
	require.NoError(t, err)

	sender, err := types.Sender(types.NewLondonSigner(chainID), signed)
	require.NoError(t, err)
	assert.Equal(t, m.Address(), sender)
}
