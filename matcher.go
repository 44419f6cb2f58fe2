package jsonunit

import "github.com/shopspring/decimal"

// Matcher is a named predicate referenced from expected documents with the
// "${json-unit.matches:NAME}PARAM" placeholder. Match returns nil to accept
// actual, or an error describing the mismatch. parameter is the text following
// the placeholder, empty if there is none
type Matcher interface {
	Match(actual Node, parameter string) error
}

// MatcherFunc adapts a function to the Matcher interface
type MatcherFunc func(actual Node, parameter string) error

// Match implements the Matcher interface
func (f MatcherFunc) Match(actual Node, parameter string) error {
	return f(actual, parameter)
}

// NumberComparator decides whether two numbers are equal. tolerance is valid
// when the configuration sets one
type NumberComparator interface {
	CompareNumbers(expected, actual decimal.Decimal, tolerance decimal.NullDecimal) bool
}

// DefaultNumberComparator requires equal value and scale, or a difference
// within the tolerance when one is set
type DefaultNumberComparator struct{}

// CompareNumbers implements the NumberComparator interface
func (DefaultNumberComparator) CompareNumbers(expected, actual decimal.Decimal, tolerance decimal.NullDecimal) bool {
	if tolerance.Valid {
		return expected.Sub(actual).Abs().Cmp(tolerance.Decimal) <= 0
	}
	return decimalsEqual(expected, actual)
}
