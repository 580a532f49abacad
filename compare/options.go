package compare

import (
	"fmt"
	"strings"
)

const (
	// DefaultMaxVaccines is the number of vaccines that can be compared at once.
	DefaultMaxVaccines = 6
	// ChunkSize is the number of vaccines laid out side by side in one chunk
	// of the comparison table.
	ChunkSize = 5
)

// CapPolicy decides what happens when a selection goes over MaxVaccines.
type CapPolicy string

const (
	// CapStrict rejects the selection with ErrComparisonLimit.
	CapStrict CapPolicy = "strict"
	// CapAdvisory accepts the selection and reports a warning.
	CapAdvisory CapPolicy = "advisory"
)

// ParseCapPolicy parses a policy name. An empty string means CapStrict.
func ParseCapPolicy(s string) (CapPolicy, error) {
	switch CapPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", CapStrict:
		return CapStrict, nil
	case CapAdvisory:
		return CapAdvisory, nil
	}
	return "", fmt.Errorf("unknown cap policy %q, expected strict or advisory", s)
}

type Options struct {
	MaxVaccines int
	Policy      CapPolicy
}

func DefaultOptions() Options {
	return Options{MaxVaccines: DefaultMaxVaccines, Policy: CapStrict}
}

func (o Options) normalized() Options {
	if o.MaxVaccines <= 0 {
		o.MaxVaccines = DefaultMaxVaccines
	}
	if o.Policy == "" {
		o.Policy = CapStrict
	}
	return o
}

func (o Options) limitMessage() string {
	return fmt.Sprintf("You can compare up to %d vaccines at a time", o.MaxVaccines)
}

// checkCap applies the policy to a selection of count vaccines. It returns the
// warning to surface, or an error when the selection must be rejected.
func (o Options) checkCap(count int) (string, error) {
	if count <= o.MaxVaccines {
		return "", nil
	}
	if o.Policy == CapAdvisory {
		return o.limitMessage(), nil
	}
	return "", reject("vaccines", ErrComparisonLimit, o.limitMessage())
}
