package chainclient

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"ABIProbe/account"
)

// Options configures a live RPC client.
type Options struct {
	RPCURL        string
	ChainID       *big.Int
	PollInterval  time.Duration
	ConfirmBlocks uint64
}

// RPCClient talks to a real Ethereum endpoint through go-ethereum's
// ethclient. Mutating calls are signed with the configured identity
// and broadcast; read-only calls go through eth_call.
type RPCClient struct {
	eth           *ethclient.Client
	contractABI   abi.ABI
	signer        *account.Manager
	chainID       *big.Int
	pollInterval  time.Duration
	confirmBlocks uint64
}

// Dial connects to the endpoint and binds the client to one contract
// interface and signing identity.
func Dial(opts Options, contractABI abi.ABI, signer *account.Manager) (*RPCClient, error) {
	if opts.RPCURL == "" {
		return nil, fmt.Errorf("no RPC endpoint configured")
	}
	eth, err := ethclient.Dial(opts.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", opts.RPCURL, err)
	}

	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}

	return &RPCClient{
		eth:           eth,
		contractABI:   contractABI,
		signer:        signer,
		chainID:       opts.ChainID,
		pollInterval:  pollInterval,
		confirmBlocks: opts.ConfirmBlocks,
	}, nil
}

// SubmitCall packs the method call and either evaluates it (read-only)
// or signs and broadcasts it (mutating).
func (c *RPCClient) SubmitCall(ctx context.Context, to common.Address, method string, args []interface{}) (*Handle, error) {
	m, ok := c.contractABI.Methods[method]
	if !ok {
		return nil, fmt.Errorf("unknown method %s", method)
	}

	packed, err := c.contractABI.Pack(method, coerceArgs(m, args)...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack arguments for %s: %w", method, err)
	}

	if m.IsConstant() {
		msg := ethereum.CallMsg{To: &to, Data: packed}
		if _, err := c.eth.CallContract(ctx, msg, nil); err != nil {
			return nil, fmt.Errorf("call to %s failed: %w", method, err)
		}
		return &Handle{Done: true}, nil
	}

	tx, err := c.buildTx(ctx, to, packed)
	if err != nil {
		return nil, err
	}
	signed, err := c.signer.SignTx(tx, c.chainID)
	if err != nil {
		return nil, err
	}
	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("failed to send transaction for %s: %w", method, err)
	}
	return &Handle{TxHash: signed.Hash()}, nil
}

// buildTx assembles an unsigned dynamic-fee transaction for the packed
// call data.
func (c *RPCClient) buildTx(ctx context.Context, to common.Address, data []byte) (*types.Transaction, error) {
	nonce, err := c.eth.PendingNonceAt(ctx, c.signer.Address())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nonce: %w", err)
	}
	tipCap, err := c.eth.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tip cap: %w", err)
	}
	head, err := c.eth.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chain head: %w", err)
	}
	feeCap := new(big.Int).Set(tipCap)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	msg := ethereum.CallMsg{
		From:      c.signer.Address(),
		To:        &to,
		GasTipCap: tipCap,
		GasFeeCap: feeCap,
		Data:      data,
	}
	gas, err := c.eth.EstimateGas(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("gas estimation failed: %w", err)
	}

	return types.NewTx(&types.DynamicFeeTx{
		ChainID:   c.chainID,
		Nonce:     nonce,
		GasTipCap: tipCap,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &to,
		Data:      data,
	}), nil
}

// AwaitConfirmation polls for the transaction receipt until the call
// is mined (plus any configured confirmation depth) or ctx ends. A
// reverted receipt is a fault.
func (c *RPCClient) AwaitConfirmation(ctx context.Context, h *Handle) error {
	if h.Done {
		return nil
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	var minedBlock uint64
	for minedBlock == 0 {
		select {
		case <-ctx.Done():
			return fmt.Errorf("confirmation wait aborted: %w", ctx.Err())
		case <-ticker.C:
			receipt, err := c.eth.TransactionReceipt(ctx, h.TxHash)
			if err != nil {
				continue // not mined yet
			}
			if receipt.Status == types.ReceiptStatusFailed {
				return fmt.Errorf("transaction %s reverted", h.TxHash.Hex())
			}
			minedBlock = receipt.BlockNumber.Uint64()
		}
	}

	for c.confirmBlocks > 0 {
		select {
		case <-ctx.Done():
			return fmt.Errorf("confirmation wait aborted: %w", ctx.Err())
		case <-ticker.C:
			current, err := c.eth.BlockNumber(ctx)
			if err != nil {
				continue
			}
			if current >= minedBlock+c.confirmBlocks {
				return nil
			}
		}
	}
	return nil
}

// GetCode returns the deployed bytecode at addr.
func (c *RPCClient) GetCode(ctx context.Context, addr common.Address) ([]byte, error) {
	code, err := c.eth.CodeAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("code probe failed: %w", err)
	}
	return code, nil
}

// Close releases the underlying connection.
func (c *RPCClient) Close() {
	c.eth.Close()
}
