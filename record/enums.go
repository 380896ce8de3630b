package record

import (
	"bytes"
	"errors"
	"fmt"
)

// Step is a record's data workflow step.
type Step int

const (
	// StepEntry is the data entry step
	StepEntry Step = iota + 1
	// StepCleansing is the data cleansing step
	StepCleansing
	// StepAnalysis is the analysis step
	StepAnalysis
)

func (s Step) String() string {
	switch s {
	case 0:
		return ""
	case StepEntry:
		return "entry"
	case StepCleansing:
		return "cleansing"
	case StepAnalysis:
		return "analysis"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

func (s Step) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Step) UnmarshalText(b []byte) error {
	b = bytes.ToLower(bytes.TrimSpace(b))
	switch string(b) {
	case "entry", "1":
		*s = StepEntry
	case "cleansing", "2":
		*s = StepCleansing
	case "analysis", "3":
		*s = StepAnalysis
	default:
		return errors.New("unknown step")
	}
	return nil
}

// State is a record's workflow state within its step.
type State int

const (
	// StateNone is the state of records not flagged by a reviewer
	StateNone State = iota
	// StateRejected marks a record sent back to the previous step
	StateRejected
)

// StateFromCode returns the state for a root element state code. Unknown
// or empty codes map to StateNone.
func StateFromCode(code string) State {
	if code == "R" {
		return StateRejected
	}
	return StateNone
}

// Code returns the state's document code.
func (s State) Code() string {
	if s == StateRejected {
		return "R"
	}
	return ""
}

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateRejected:
		return "rejected"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Symbol annotates a field with how its value was obtained.
type Symbol int

const (
	SymbolBlankOnForm Symbol = iota + 1
	SymbolDashOnForm
	SymbolIllegible
	SymbolEstimated
	SymbolNotApplicable
)

var symbolCodes = map[Symbol]rune{
	SymbolBlankOnForm:   'B',
	SymbolDashOnForm:    'D',
	SymbolIllegible:     'I',
	SymbolEstimated:     'E',
	SymbolNotApplicable: 'N',
}

// SymbolFromCode maps a one character code to a Symbol.
func SymbolFromCode(c rune) (Symbol, bool) {
	for s, code := range symbolCodes {
		if code == c {
			return s, true
		}
	}
	return 0, false
}

// Code returns the symbol's one character code, or 0 for unknown symbols.
func (s Symbol) Code() rune { return symbolCodes[s] }

func (s Symbol) String() string {
	switch s {
	case SymbolBlankOnForm:
		return "blank-on-form"
	case SymbolDashOnForm:
		return "dash-on-form"
	case SymbolIllegible:
		return "illegible"
	case SymbolEstimated:
		return "estimated"
	case SymbolNotApplicable:
		return "not-applicable"
	default:
		return fmt.Sprintf("Symbol(%d)", int(s))
	}
}
