// Package generator derives executable test cases from a parsed
// contract interface: read/write probes, integer boundary sweeps,
// fuzzed inputs, and a minimal write-then-read integration workflow.
package generator

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"ABIProbe/schema"
)

// Synthesizer derives executable test cases from a parsed contract
// interface. It holds no per-schema state, so one instance can serve
// independent schemas concurrently.
type Synthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a synthesizer seeded from the wall clock. The seed only
// affects fuzz arguments and case identifiers; safe and boundary
// arguments are fully deterministic.
func New() *Synthesizer {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed creates a synthesizer with a fixed seed, mainly for
// reproducing a fuzz run.
func NewWithSeed(seed int64) *Synthesizer {
	return &Synthesizer{rng: rand.New(rand.NewSource(seed))}
}

// Synthesize derives the ordered case sequence for the given functions
// against a target contract. Per function, in declaration order: one
// read or write case, a boundary case when an integer parameter
// exists, and a fuzz case when any parameter exists. If the schema
// contains at least one write and one read function, a single
// integration case (first write, then first read) closes the batch.
//
// Each function is processed independently; a failure deriving cases
// for one function loses only that function's cases.
func (s *Synthesizer) Synthesize(fns []schema.FunctionDescriptor, target common.Address) []*TestCase {
	var cases []*TestCase
	for _, fd := range fns {
		cases = append(cases, s.functionCases(fd, target)...)
	}
	if ic := s.integrationCase(fns, target); ic != nil {
		cases = append(cases, ic)
	}
	return cases
}

// functionCases derives all per-function cases. Panics during
// derivation are contained here so a hostile descriptor cannot abort
// the rest of the schema.
func (s *Synthesizer) functionCases(fd schema.FunctionDescriptor, target common.Address) (cases []*TestCase) {
	defer func() {
		if recover() != nil {
			cases = nil
		}
	}()

	if fd.ReadOnly() {
		cases = append(cases, s.readCase(fd, target))
	} else {
		cases = append(cases, s.writeCase(fd, target))
	}
	if fd.HasIntegerInput() {
		cases = append(cases, s.boundaryCase(fd, target))
	}
	if len(fd.Inputs) > 0 {
		cases = append(cases, s.fuzzCase(fd, target))
	}
	return cases
}

func (s *Synthesizer) readCase(fd schema.FunctionDescriptor, target common.Address) *TestCase {
	id := s.newCaseID()
	return &TestCase{
		ID:          id,
		Name:        fmt.Sprintf("read %s", fd.Name),
		Description: fmt.Sprintf("call read-only function %s with safe arguments", fd.Signature()),
		Steps: []TestStep{
			s.callStep(id, 1, target, fd, s.safeArgs(fd), "safe arguments"),
		},
		Expected: fmt.Sprintf("%s returns a valid response", fd.Name),
		Status:   StatusPending,
	}
}

func (s *Synthesizer) writeCase(fd schema.FunctionDescriptor, target common.Address) *TestCase {
	id := s.newCaseID()
	return &TestCase{
		ID:          id,
		Name:        fmt.Sprintf("write %s", fd.Name),
		Description: fmt.Sprintf("submit state-changing call to %s with safe arguments", fd.Signature()),
		Steps: []TestStep{
			s.callStep(id, 1, target, fd, s.safeArgs(fd), "safe arguments"),
		},
		Expected: fmt.Sprintf("%s is accepted and the state change is finalized", fd.Name),
		Status:   StatusPending,
	}
}

func (s *Synthesizer) boundaryCase(fd schema.FunctionDescriptor, target common.Address) *TestCase {
	id := s.newCaseID()
	return &TestCase{
		ID:          id,
		Name:        fmt.Sprintf("boundary %s", fd.Name),
		Description: fmt.Sprintf("call %s with minimum and maximum integer arguments", fd.Signature()),
		Steps: []TestStep{
			s.callStep(id, 1, target, fd, s.boundaryArgs(fd, false), "minimum values"),
			s.callStep(id, 2, target, fd, s.boundaryArgs(fd, true), "maximum values"),
		},
		Expected: fmt.Sprintf("%s handles extreme values without faulting", fd.Name),
		Status:   StatusPending,
	}
}

func (s *Synthesizer) fuzzCase(fd schema.FunctionDescriptor, target common.Address) *TestCase {
	id := s.newCaseID()
	return &TestCase{
		ID:          id,
		Name:        fmt.Sprintf("fuzz %s", fd.Name),
		Description: fmt.Sprintf("call %s with randomly sampled arguments", fd.Signature()),
		Steps: []TestStep{
			s.callStep(id, 1, target, fd, s.fuzzArgs(fd), "random arguments"),
		},
		Expected: fmt.Sprintf("%s handles random input without faulting", fd.Name),
		Status:   StatusPending,
	}
}

// integrationCase builds the single write-then-read workflow case, or
// nil when the schema lacks either kind of function. Only the first
// write and the first read function in declaration order participate,
// no matter how many of each exist.
func (s *Synthesizer) integrationCase(fns []schema.FunctionDescriptor, target common.Address) *TestCase {
	var write, read *schema.FunctionDescriptor
	for i := range fns {
		if fns[i].ReadOnly() {
			if read == nil {
				read = &fns[i]
			}
		} else if write == nil {
			write = &fns[i]
		}
	}
	if write == nil || read == nil {
		return nil
	}

	id := s.newCaseID()
	return &TestCase{
		ID:          id,
		Name:        fmt.Sprintf("integration %s -> %s", write.Name, read.Name),
		Description: fmt.Sprintf("mutate state via %s, then observe it via %s", write.Signature(), read.Signature()),
		Steps: []TestStep{
			s.callStep(id, 1, target, *write, s.safeArgs(*write), "safe arguments"),
			s.callStep(id, 2, target, *read, s.safeArgs(*read), "safe arguments"),
		},
		Expected: fmt.Sprintf("state change from %s is observable through %s", write.Name, read.Name),
		Status:   StatusPending,
	}
}

func (s *Synthesizer) callStep(caseID string, n int, target common.Address, fd schema.FunctionDescriptor, args []interface{}, detail string) TestStep {
	return TestStep{
		ID:          fmt.Sprintf("%s-step-%d", caseID, n),
		Kind:        StepContractCall,
		Target:      target,
		Method:      fd.Name,
		Args:        args,
		Description: fmt.Sprintf("call %s with %s", fd.Name, detail),
	}
}

func (s *Synthesizer) safeArgs(fd schema.FunctionDescriptor) []interface{} {
	args := make([]interface{}, len(fd.Inputs))
	for i, in := range fd.Inputs {
		args[i] = safeValue(in.Tag)
	}
	return args
}

func (s *Synthesizer) boundaryArgs(fd schema.FunctionDescriptor, max bool) []interface{} {
	args := make([]interface{}, len(fd.Inputs))
	for i, in := range fd.Inputs {
		args[i] = boundaryValue(in.Tag, max)
	}
	return args
}

func (s *Synthesizer) fuzzArgs(fd schema.FunctionDescriptor) []interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	args := make([]interface{}, len(fd.Inputs))
	for i, in := range fd.Inputs {
		args[i] = fuzzValue(in.Tag, s.rng)
	}
	return args
}

// newCaseID returns an identifier that is unique for this process.
// Identifiers are opaque: nothing may compare or order by them.
func (s *Synthesizer) newCaseID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("case-%d-%04d", time.Now().UnixNano(), s.rng.Intn(10000))
}
