package utils

import (
	"fmt"

	"ABIProbe/generator"
)

// PrintCases prints the derived case list before execution
func PrintCases(cases []*generator.TestCase) {
	fmt.Printf("=== Derived Test Cases (%d) ===\n", len(cases))
	for i, tc := range cases {
		fmt.Printf("--- Case %d: %s ---\n", i+1, tc.Name)
		fmt.Printf("  %s\n", tc.Description)
		for _, step := range tc.Steps {
			fmt.Printf("  step: %s\n", step.Description)
		}
		fmt.Printf("  expect: %s\n", tc.Expected)
	}
}

// PrintCaseResult prints one case's terminal outcome
func PrintCaseResult(index int, tc *generator.TestCase) {
	marker := "PASS"
	if tc.Status == generator.StatusFailed {
		marker = "FAIL"
	}
	fmt.Printf("[%s] case %d: %s\n", marker, index+1, tc.Name)
	if tc.ActualResult != "" {
		fmt.Printf("       %s\n", tc.ActualResult)
	}
}

// PrintSummary prints pass/fail totals after a batch
func PrintSummary(cases []*generator.TestCase) {
	passed, failed := 0, 0
	for _, tc := range cases {
		switch tc.Status {
		case generator.StatusPassed:
			passed++
		case generator.StatusFailed:
			failed++
		}
	}
	fmt.Printf("=== Batch complete: %d passed, %d failed, %d total ===\n", passed, failed, len(cases))
}
