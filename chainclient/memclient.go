package chainclient

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// RecordedCall captures one SubmitCall observed by the fake client.
type RecordedCall struct {
	To     common.Address
	Method string
	Args   []interface{}
}

// MemClient is a deterministic in-memory chain client. Faults are
// scripted per method, calls are recorded in order, and code presence
// comes from a plain table. It backs the executor tests so no live
// endpoint is ever needed.
type MemClient struct {
	mu sync.Mutex

	// Code maps addresses to fake deployed bytecode for GetCode.
	Code map[common.Address][]byte
	// CodeErr, when set, makes every code probe fault.
	CodeErr error
	// SubmitFaults scripts a fault at submit time, keyed by method.
	SubmitFaults map[string]error
	// ConfirmFaults scripts a fault at confirmation time, keyed by
	// method.
	ConfirmFaults map[string]error

	calls   []RecordedCall
	pending map[common.Hash]string
	seq     uint64
	closed  bool
}

// NewMemClient creates an empty fake client.
func NewMemClient() *MemClient {
	return &MemClient{
		Code:          make(map[common.Address][]byte),
		SubmitFaults:  make(map[string]error),
		ConfirmFaults: make(map[string]error),
		pending:       make(map[common.Hash]string),
	}
}

// SubmitCall records the call and returns the scripted outcome.
func (c *MemClient) SubmitCall(_ context.Context, to common.Address, method string, args []interface{}) (*Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, RecordedCall{To: to, Method: method, Args: args})
	if err := c.SubmitFaults[method]; err != nil {
		return nil, err
	}

	c.seq++
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], c.seq)
	hash := crypto.Keccak256Hash(buf[:])
	c.pending[hash] = method
	return &Handle{TxHash: hash}, nil
}

// AwaitConfirmation returns the scripted confirmation outcome for the
// submitted method.
func (c *MemClient) AwaitConfirmation(_ context.Context, h *Handle) error {
	if h.Done {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	method := c.pending[h.TxHash]
	delete(c.pending, h.TxHash)
	return c.ConfirmFaults[method]
}

// GetCode serves the fake code table.
func (c *MemClient) GetCode(_ context.Context, addr common.Address) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.CodeErr != nil {
		return nil, c.CodeErr
	}
	return c.Code[addr], nil
}

// Close marks the client closed.
func (c *MemClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Calls returns the calls observed so far, in submission order.
func (c *MemClient) Calls() []RecordedCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]RecordedCall, len(c.calls))
	copy(out, c.calls)
	return out
}

// Closed reports whether Close was called.
func (c *MemClient) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
