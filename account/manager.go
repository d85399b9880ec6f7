// Package account holds the pre-configured signing identity used for
// state-changing calls. Key custody is out of scope: the key arrives
// from configuration and is only ever used to sign.
package account

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Manager wraps one signing key and its derived address.
type Manager struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewManager builds a manager from a hex-encoded private key, with or
// without 0x prefix.
func NewManager(hexKey string) (*Manager, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signer key: %w", err)
	}
	return &Manager{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the account address derived from the key.
func (m *Manager) Address() common.Address {
	return m.address
}

// SignTx signs a transaction for the given chain.
func (m *Manager) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signed, err := types.SignTx(tx, types.NewLondonSigner(chainID), m.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign tx: %w", err)
	}
	return signed, nil
}
