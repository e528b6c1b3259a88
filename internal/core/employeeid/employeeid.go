// Package employeeid formats and parses the sequential EMP<n> labels
// assigned to every registered record.
package employeeid

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	Prefix = "EMP"

	// Seed is the counter value before the first allocation; the first
	// issued label is therefore EMP1001.
	Seed = 1000

	First = "EMP1001"
)

// Parse extracts the integer suffix of a label. A malformed suffix is
// an error, never a silent default: existing data carrying a broken
// employeeId must surface as a server fault.
func Parse(id string) (int, error) {
	suffix, ok := strings.CutPrefix(id, Prefix)
	if !ok {
		return 0, fmt.Errorf("employee id %q missing %s prefix", id, Prefix)
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, fmt.Errorf("employee id %q has non-numeric suffix", id)
	}
	return n, nil
}

func Format(n int) string {
	return Prefix + strconv.Itoa(n)
}

// Next derives the successor of the most recently issued label. An
// empty last label means no record has been created yet.
func Next(last string) (string, error) {
	if last == "" {
		return First, nil
	}
	n, err := Parse(last)
	if err != nil {
		return "", err
	}
	return Format(n + 1), nil
}
