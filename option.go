package jsonunit

import (
	"fmt"
	"strings"
)

// Option relaxes or tightens one aspect of a comparison
type Option uint8

const (
	// TreatingNullAsAbsent drops actual fields holding null before keys are
	// compared. Applies to the field path
	TreatingNullAsAbsent Option = iota
	// IgnoringArrayOrder compares arrays as multisets. Applies to the array path
	IgnoringArrayOrder
	// IgnoringExtraFields accepts actual fields missing from expected. Applies
	// to the object path
	IgnoringExtraFields
	// ComparingOnlyStructure considers documents similar when only values differ
	ComparingOnlyStructure
	// IgnoringValues skips scalar value comparison
	IgnoringValues
	// IgnoringExtraArrayItems accepts actual arrays longer than expected
	IgnoringExtraArrayItems
	// FailFast stops at the first difference found
	FailFast
	// ReportingDifferenceAsNormalizedString appends normalized renderings of
	// both documents to the report
	ReportingDifferenceAsNormalizedString

	numOptions
)

var optionNames = [...]string{
	TreatingNullAsAbsent:                  "TREATING_NULL_AS_ABSENT",
	IgnoringArrayOrder:                    "IGNORING_ARRAY_ORDER",
	IgnoringExtraFields:                   "IGNORING_EXTRA_FIELDS",
	ComparingOnlyStructure:                "COMPARING_ONLY_STRUCTURE",
	IgnoringValues:                        "IGNORING_VALUES",
	IgnoringExtraArrayItems:               "IGNORING_EXTRA_ARRAY_ITEMS",
	FailFast:                              "FAIL_FAST",
	ReportingDifferenceAsNormalizedString: "REPORTING_DIFFERENCE_AS_NORMALIZED_STRING",
}

// String implements the fmt.Stringer interface
func (o Option) String() string {
	if o < numOptions {
		return optionNames[o]
	}
	return fmt.Sprintf("Option(%d)", uint8(o))
}

// ParseOption looks up an option by name. Names are case insensitive and
// dashes may stand in for underscores: "ignoring-array-order"
func ParseOption(name string) (Option, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for o, n := range optionNames {
		if n == norm {
			return Option(o), nil
		}
	}
	return 0, fmt.Errorf("unknown option %q", name)
}

// Options is a set of options
type Options uint16

// NewOptions creates a set holding opts
func NewOptions(opts ...Option) Options {
	return Options(0).With(opts...)
}

// With returns the set extended by opts
func (s Options) With(opts ...Option) Options {
	for _, o := range opts {
		s |= 1 << o
	}
	return s
}

// Without returns the set with opts removed
func (s Options) Without(opts ...Option) Options {
	for _, o := range opts {
		s &^= 1 << o
	}
	return s
}

// Contains reports membership of o
func (s Options) Contains(o Option) bool {
	return s&(1<<o) != 0
}

// Slice lists the members of the set in declaration order
func (s Options) Slice() []Option {
	var opts []Option
	for o := Option(0); o < numOptions; o++ {
		if s.Contains(o) {
			opts = append(opts, o)
		}
	}
	return opts
}

// String implements the fmt.Stringer interface
func (s Options) String() string {
	names := make([]string, 0, numOptions)
	for _, o := range s.Slice() {
		names = append(names, o.String())
	}
	return "[" + strings.Join(names, ", ") + "]"
}
