package jsonunit

import "github.com/shopspring/decimal"

// compareContext is one step of the recursion: a pair of nodes & where each
// was read from. Paths diverge when an unordered array pairs elements at
// different indices. Transitions return a new context
type compareContext struct {
	expected, actual         Node
	expectedPath, actualPath Path
	cfg                      Configuration
}

func (c compareContext) intoField(name string) compareContext {
	return compareContext{
		expected:     c.expected.Field(name),
		actual:       c.actual.Field(name),
		expectedPath: c.expectedPath.ToField(name),
		actualPath:   c.actualPath.ToField(name),
		cfg:          c.cfg,
	}
}

// intoElement pairs expected element e with actual element a
func (c compareContext) intoElement(e, a int) compareContext {
	return compareContext{
		expected:     c.expected.Element(e),
		actual:       c.actual.Element(a),
		expectedPath: c.expectedPath.ToElement(e),
		actualPath:   c.actualPath.ToElement(a),
		cfg:          c.cfg,
	}
}

// missingElement is expected element i with no actual counterpart
func (c compareContext) missingElement(i int) compareContext {
	return compareContext{
		expected:     c.expected.Element(i),
		actual:       Missing,
		expectedPath: c.expectedPath.ToElement(i),
		actualPath:   c.actualPath,
		cfg:          c.cfg,
	}
}

// extraElement is actual element i with no expected counterpart
func (c compareContext) extraElement(i int) compareContext {
	return compareContext{
		expected:     Missing,
		actual:       c.actual.Element(i),
		expectedPath: c.expectedPath,
		actualPath:   c.actualPath.ToElement(i),
		cfg:          c.cfg,
	}
}

// length swaps the arrays for their sizes
func (c compareContext) length() compareContext {
	return compareContext{
		expected:     NewNumber(decimal.NewFromInt(int64(c.expected.Len()))),
		actual:       NewNumber(decimal.NewFromInt(int64(c.actual.Len()))),
		expectedPath: c.expectedPath,
		actualPath:   c.actualPath,
		cfg:          c.cfg,
	}
}

// event creates the difference describing this context
func (c compareContext) event(t DifferenceType) Difference {
	d := Difference{Type: t}
	if t != DTExtra {
		d.ExpectedPath = c.expectedPath.String()
		d.Expected = c.expected
	}
	if t != DTMissing {
		d.ActualPath = c.actualPath.String()
		d.Actual = c.actual
	}
	return d
}
