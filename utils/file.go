package utils

import (
	"fmt"
	"os"
)

// InitResultFile starts a fresh result log with a run header. The
// header identifies the run; result lines are appended afterwards.
func InitResultFile(filename, runName string) error {
	return os.WriteFile(filename, []byte(fmt.Sprintf("# %s\n", runName)), 0644)
}

// AppendResultLines appends audit lines to the result log, one per
// line, in order.
func AppendResultLines(filename string, lines []string) error {
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open result file %s: %w", filename, err)
	}
	defer file.Close()

	for i, line := range lines {
		if _, err := file.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write result line %d: %w", i, err)
		}
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
