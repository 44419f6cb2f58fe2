// Package jsonassert provides test assertions comparing JSON documents.
// Strings & byte slices are read as JSON, text that isn't JSON compares as a
// string value. Every other value is converted with jsonunit.FromValue
//
//	func TestOrder(t *testing.T) {
//		jsonassert.Equal(t, `{"id": "${json-unit.any-string}", "total": 12}`, resp.Body,
//			jsonassert.Options(jsonunit.IgnoringExtraFields))
//	}
package jsonassert

import (
	"fmt"

	"github.com/qri-io/jsonunit"
	"github.com/qri-io/jsonunit/jsonnode"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// TestingT is the subset of *testing.T assertions report to
type TestingT interface {
	Errorf(format string, args ...interface{})
}

type failNower interface {
	FailNow()
}

type tHelper interface {
	Helper()
}

// Option configures a single assertion
type Option func(a *assertion)

type assertion struct {
	cfg   jsonunit.Configuration
	start string
}

// Options turns on comparison options
func Options(opts ...jsonunit.Option) Option {
	return func(a *assertion) { a.cfg = a.cfg.WithOptions(opts...) }
}

// Tolerance sets the accepted absolute difference of numbers
func Tolerance(t float64) Option {
	return func(a *assertion) { a.cfg = a.cfg.WithTolerance(decimal.NewFromFloat(t)) }
}

// IgnorePaths skips the nodes matching the given path patterns
func IgnorePaths(patterns ...string) Option {
	return func(a *assertion) { a.cfg = a.cfg.WhenIgnoringPaths(patterns...) }
}

// Matcher registers a matcher referenced by "${json-unit.matches:name}"
func Matcher(name string, m jsonunit.Matcher) Option {
	return func(a *assertion) { a.cfg = a.cfg.WithMatcher(name, m) }
}

// When adds path specific options
func When(overrides ...jsonunit.PathOverride) Option {
	return func(a *assertion) { a.cfg = a.cfg.When(overrides...) }
}

// Configuration replaces the configuration built by preceding options
func Configuration(cfg jsonunit.Configuration) Option {
	return func(a *assertion) { a.cfg = cfg }
}

// At compares expected with the node at path in actual
func At(path string) Option {
	return func(a *assertion) { a.start = path }
}

// Equal asserts actual matches expected
func Equal(t TestingT, expected, actual interface{}, opts ...Option) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	a := newAssertion(opts)
	d, err := a.diff(expected, actual)
	if err != nil {
		return assert.Fail(t, err.Error())
	}
	if d.Similar() {
		return true
	}

	if a.cfg.HasOption(jsonunit.NewPath(a.start).String(), jsonunit.ReportingDifferenceAsNormalizedString) {
		// let testify render a line diff of the two documents
		return assert.Equal(t, d.NormalizedExpected(), d.NormalizedActual(), d.Differences())
	}
	return assert.Fail(t, d.Differences())
}

// MustEqual is Equal that stops the test on failure
func MustEqual(t TestingT, expected, actual interface{}, opts ...Option) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if Equal(t, expected, actual, opts...) {
		return
	}
	if f, ok := t.(failNower); ok {
		f.FailNow()
	}
}

// NotEqual asserts actual doesn't match expected
func NotEqual(t TestingT, expected, actual interface{}, opts ...Option) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	a := newAssertion(opts)
	d, err := a.diff(expected, actual)
	if err != nil {
		return assert.Fail(t, err.Error())
	}
	if !d.Similar() {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("Expected different JSON documents, both are:\n%s", d.NormalizedExpected()))
}

// StructureEqual asserts actual has the structure of expected, ignoring
// values
func StructureEqual(t TestingT, expected, actual interface{}, opts ...Option) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	a := newAssertion(opts)
	d, err := a.diff(expected, actual)
	if err != nil {
		return assert.Fail(t, err.Error())
	}
	if d.SimilarStructure() {
		return true
	}
	return assert.Fail(t, d.StructureDifferences())
}

func newAssertion(opts []Option) *assertion {
	a := &assertion{cfg: jsonunit.Empty()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *assertion) diff(expected, actual interface{}) (*jsonunit.Diff, error) {
	e, err := toNode(expected)
	if err != nil {
		return nil, fmt.Errorf("expected: %w", err)
	}
	act, err := toNode(actual)
	if err != nil {
		return nil, fmt.Errorf("actual: %w", err)
	}
	return jsonunit.New(e, act, jsonunit.NewPath(a.start), a.cfg, jsonunit.OptionSources(expected, actual)), nil
}

func toNode(v interface{}) (jsonunit.Node, error) {
	switch x := v.(type) {
	case string:
		return jsonnode.ParseLenient(x)
	case []byte:
		return jsonnode.ParseLenient(string(x))
	}
	return jsonunit.FromValue(v)
}
