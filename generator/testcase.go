package generator

import (
	"github.com/ethereum/go-ethereum/common"
)

// Status is the lifecycle state of a test case. The only legal
// transitions are pending -> running -> passed|failed, and only the
// executor performs them.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
)

// StepKind identifies what a step does when executed.
type StepKind string

// StepContractCall submits a call to the target contract.
const StepContractCall StepKind = "contract-call"

// TestStep is a single action inside a test case. Steps are plain
// data, immutable once created; execution happens elsewhere.
type TestStep struct {
	ID          string
	Kind        StepKind
	Target      common.Address
	Method      string
	Args        []interface{}
	Description string
}

// TestCase is one derived test: an ordered sequence of steps plus the
// narrative of what is expected. Status and ActualResult are mutated
// in place by the executor as the case progresses.
type TestCase struct {
	ID           string
	Name         string
	Description  string
	Steps        []TestStep
	Expected     string
	Status       Status
	ActualResult string
}
