package jsonunit

import (
	"encoding/json"
	"strings"
)

// DifferenceType classifies a Difference
type DifferenceType uint8

const (
	// DTMissing is a value present in the expected document only
	DTMissing DifferenceType = iota
	// DTExtra is a value present in the actual document only
	DTExtra
	// DTDifferent is a value present in both documents that doesn't match
	DTDifferent
)

// String implements the fmt.Stringer interface
func (t DifferenceType) String() string {
	switch t {
	case DTMissing:
		return "MISSING"
	case DTExtra:
		return "EXTRA"
	case DTDifferent:
		return "DIFFERENT"
	}
	return "UNKNOWN"
}

// symbol is the single character used for the type in change lists
func (t DifferenceType) symbol() string {
	switch t {
	case DTMissing:
		return "-"
	case DTExtra:
		return "+"
	}
	return "~"
}

// Difference is a single located mismatch between an expected and an actual
// document
type Difference struct {
	Type DifferenceType
	// Message is the report line this difference belongs to. A report line
	// can cover several differences, eg: one line for all missing keys of an
	// object
	Message string

	// ExpectedPath & Expected are only set when the expected side exists,
	// Expected is Missing otherwise
	ExpectedPath string
	Expected     Node
	// ActualPath & Actual are only set when the actual side exists
	ActualPath string
	Actual     Node
}

// Path returns the path this difference is located at: the actual path when
// the actual side exists, the expected path otherwise
func (d Difference) Path() string {
	if d.Type == DTMissing {
		return d.ExpectedPath
	}
	return d.ActualPath
}

// MarshalJSON implements a compact JSON encoding:
//   ["-", path, expected]
//   ["+", path, actual]
//   ["~", path, actual, expected]
func (d Difference) MarshalJSON() ([]byte, error) {
	v := []interface{}{d.Type.symbol(), d.Path()}
	switch d.Type {
	case DTMissing:
		v = append(v, d.Expected)
	case DTExtra:
		v = append(v, d.Actual)
	default:
		v = append(v, d.Actual, d.Expected)
	}
	return json.Marshal(v)
}

// Differences is an ordered, append-only list of differences
type Differences []Difference

// Len is the number of differences
func (ds Differences) Len() int { return len(ds) }

// OfType filters differences by type
func (ds Differences) OfType(t DifferenceType) Differences {
	var res Differences
	for _, d := range ds {
		if d.Type == t {
			res = append(res, d)
		}
	}
	return res
}

// String lists the distinct messages, one per line
func (ds Differences) String() string {
	var (
		b    strings.Builder
		last string
	)
	for _, d := range ds {
		if d.Message == last {
			continue
		}
		last = d.Message
		b.WriteString(d.Message)
		b.WriteByte('\n')
	}
	return b.String()
}

// DifferenceContext describes the comparison a difference was found in
type DifferenceContext struct {
	Configuration  Configuration
	ExpectedSource interface{}
	ActualSource   interface{}
}

// DifferenceListener is notified of every difference as it's found
type DifferenceListener interface {
	OnDifference(d Difference, ctx DifferenceContext)
}

// DifferenceListenerFunc adapts a function to the DifferenceListener
// interface
type DifferenceListenerFunc func(d Difference, ctx DifferenceContext)

// OnDifference implements the DifferenceListener interface
func (f DifferenceListenerFunc) OnDifference(d Difference, ctx DifferenceContext) {
	f(d, ctx)
}
