// Package executor runs derived test cases against a configured
// network, one case at a time, one step at a time. Ordering is
// load-bearing: later cases may depend on state mutated by earlier
// ones, and the signing identity's nonce sequence does not tolerate
// concurrent submission.
package executor

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"ABIProbe/account"
	"ABIProbe/chainclient"
	"ABIProbe/config"
	"ABIProbe/generator"
	"ABIProbe/utils"
)

// successNarrative is the fixed text recorded on passed cases. Failure
// detail is captured verbatim from the fault; success needs no more
// than this.
const successNarrative = "all steps completed successfully"

// ExecutionResult is the immutable record of one case execution.
type ExecutionResult struct {
	CaseID      string
	Success     bool
	Error       string
	Logs        []string
	CompletedAt time.Time
}

// BatchUpdate is one observable state change during a batch: the case
// entering the running state (Result nil), then its terminal state
// (Result set).
type BatchUpdate struct {
	Index  int
	Case   *generator.TestCase
	Result *ExecutionResult
}

// Executor owns one chain-client handle at a time and runs cases
// against it.
type Executor struct {
	mu      sync.Mutex
	client  chainclient.Client
	network string

	cfg         *config.Config
	signer      *account.Manager
	contractABI abi.ABI
	logger      *utils.Logger

	dial func(config.Network) (chainclient.Client, error)
}

// New creates an executor that dials real endpoints from the
// configuration. ConfigureNetwork must be called before any execution.
func New(cfg *config.Config, signer *account.Manager, contractABI abi.ABI, logger *utils.Logger) *Executor {
	e := &Executor{
		cfg:         cfg,
		signer:      signer,
		contractABI: contractABI,
		logger:      logger,
	}
	e.dial = func(net config.Network) (chainclient.Client, error) {
		return chainclient.Dial(chainclient.Options{
			RPCURL:        net.RPCURL,
			ChainID:       big.NewInt(net.ChainID),
			PollInterval:  time.Duration(cfg.Execution.PollInterval) * time.Second,
			ConfirmBlocks: cfg.Execution.ConfirmBlocks,
		}, contractABI, signer)
	}
	return e
}

// NewWithClient creates an executor bound to an existing chain client,
// bypassing network configuration. Used with the in-memory client in
// tests.
func NewWithClient(client chainclient.Client, logger *utils.Logger) *Executor {
	return &Executor{client: client, network: "fake", logger: logger}
}

// ConfigureNetwork selects the named endpoint. Unrecognized names fall
// back to the default endpoint. The previous client is closed before
// the swap; reconfiguring while a batch is in flight is not supported,
// callers must finish or abandon the batch first.
func (e *Executor) ConfigureNetwork(name string) error {
	if e.cfg == nil {
		return fmt.Errorf("executor has no configuration")
	}
	net, resolved := e.cfg.GetNetwork(name)
	if resolved == "" {
		return fmt.Errorf("no network available for selection %q", name)
	}
	if resolved != name && e.logger != nil {
		e.logger.Warn("unknown network %q, falling back to %q", name, resolved)
	}

	client, err := e.dial(net)
	if err != nil {
		return fmt.Errorf("failed to configure network %s: %w", resolved, err)
	}

	e.mu.Lock()
	if e.client != nil {
		e.client.Close()
	}
	e.client = client
	e.network = resolved
	e.mu.Unlock()

	if e.logger != nil {
		e.logger.Info("configured network %s (%s)", resolved, net.RPCURL)
	}
	return nil
}

// Network returns the currently configured network name.
func (e *Executor) Network() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.network
}

// ValidateTarget probes the address for deployed code. It returns
// false with an advisory message for a malformed address, an absent
// contract, or a failed probe; the caller cannot distinguish the
// causes beyond the message, and no error is ever raised.
func (e *Executor) ValidateTarget(ctx context.Context, address string) (bool, string) {
	if !common.IsHexAddress(address) {
		return false, fmt.Sprintf("%q is not a valid address", address)
	}

	e.mu.Lock()
	client := e.client
	e.mu.Unlock()
	if client == nil {
		return false, "no network configured"
	}

	code, err := client.GetCode(ctx, common.HexToAddress(address))
	if err != nil {
		return false, fmt.Sprintf("code probe failed: %v", err)
	}
	if len(code) == 0 {
		return false, "no contract code at address"
	}
	return true, ""
}

// Execute runs one case's steps strictly in order. The first faulting
// step stops the case: its fault text becomes the actual result and
// the remaining steps are not attempted. A case whose steps all
// complete is marked passed with a fixed narrative.
func (e *Executor) Execute(ctx context.Context, tc *generator.TestCase) *ExecutionResult {
	tc.Status = generator.StatusRunning
	result := &ExecutionResult{CaseID: tc.ID}

	for _, step := range tc.Steps {
		if err := e.runStep(ctx, step); err != nil {
			result.Logs = append(result.Logs, fmt.Sprintf("step %s: %v", step.ID, err))
			result.Error = err.Error()
			result.CompletedAt = time.Now()
			tc.Status = generator.StatusFailed
			tc.ActualResult = err.Error()
			if e.logger != nil {
				e.logger.Error("case %s failed: %v", tc.Name, err)
			}
			return result
		}
		result.Logs = append(result.Logs, fmt.Sprintf("step %s: ok", step.ID))
	}

	result.Success = true
	result.CompletedAt = time.Now()
	tc.Status = generator.StatusPassed
	tc.ActualResult = successNarrative
	if e.logger != nil {
		e.logger.Info("case %s passed", tc.Name)
	}
	return result
}

// runStep submits one step through the chain client and blocks until
// it is confirmed or faults. Timeout policy lives with the caller's
// context, not here.
func (e *Executor) runStep(ctx context.Context, step generator.TestStep) error {
	if step.Kind != generator.StepContractCall {
		return fmt.Errorf("unsupported step kind %q", step.Kind)
	}

	e.mu.Lock()
	client := e.client
	e.mu.Unlock()
	if client == nil {
		return fmt.Errorf("no network configured")
	}

	handle, err := client.SubmitCall(ctx, step.Target, step.Method, step.Args)
	if err != nil {
		return err
	}
	return client.AwaitConfirmation(ctx, handle)
}

// ExecuteBatch runs the cases strictly in the supplied order and
// streams per-case state changes: each case is published once when it
// enters the running state and once at its terminal state, before the
// next case starts. Per-case faults never abort the batch; the stream
// ends early only when the context is cancelled, so an abandoned
// consumer does not strand the worker on a blocked send.
func (e *Executor) ExecuteBatch(ctx context.Context, cases []*generator.TestCase) <-chan BatchUpdate {
	updates := make(chan BatchUpdate)
	go func() {
		defer close(updates)
		for i, tc := range cases {
			tc.Status = generator.StatusRunning
			select {
			case updates <- BatchUpdate{Index: i, Case: tc}:
			case <-ctx.Done():
				return
			}

			result := e.Execute(ctx, tc)
			select {
			case updates <- BatchUpdate{Index: i, Case: tc, Result: result}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return updates
}
