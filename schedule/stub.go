package schedule

import (
	"fmt"
	"strings"
)

// Stub governs how a residual, non-whole-step interval at either end of the range is resolved.
type Stub int

const (
	StubNone Stub = iota
	StubShortStart
	StubLongStart
	StubShortEnd
	StubLongEnd
)

var stubNames = [...]string{
	StubNone:       "NONE",
	StubShortStart: "SHORT_START",
	StubLongStart:  "LONG_START",
	StubShortEnd:   "SHORT_END",
	StubLongEnd:    "LONG_END",
}

func (s Stub) String() string {
	if s < 0 || int(s) >= len(stubNames) {
		return fmt.Sprintf("Stub(%d)", int(s))
	}
	return stubNames[s]
}

// ParseStub accepts the canonical names case-insensitively, with hyphens or spaces.
func ParseStub(s string) (Stub, error) {
	norm := strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToUpper(strings.TrimSpace(s)))
	if norm == "" {
		return StubNone, nil
	}
	for i, name := range stubNames {
		if name == norm {
			return Stub(i), nil
		}
	}
	return StubNone, fmt.Errorf("unsupported stub %q", s)
}

// calculatesForward reports whether boundaries are generated from the start date.
// Start stubs are generated backward from the end date.
func (s Stub) calculatesForward() bool {
	return s == StubNone || s == StubShortEnd || s == StubLongEnd
}
