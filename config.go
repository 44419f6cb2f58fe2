package jsonunit

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultIgnorePlaceholder marks expected values that are not compared.
// "#{json-unit.ignore}" is always accepted as an alternate spelling of the
// default
const DefaultIgnorePlaceholder = "${json-unit.ignore}"

const alternateIgnorePlaceholder = "#{json-unit.ignore}"

// Configuration holds every parameter of a comparison. It's immutable, all
// With* methods return a modified copy. The zero value is the default
// configuration
type Configuration struct {
	options           Options
	tolerance         decimal.NullDecimal
	matchers          map[string]Matcher
	ignorePlaceholder string
	ignoredPaths      []string
	ignoreMatcher     PathMatcher
	overrides         []PathOverride
	listener          DifferenceListener
	numbers           NumberComparator
	logger            logrus.FieldLogger
}

// Empty returns the default configuration: no options, no tolerance & the
// default ignore placeholder
func Empty() Configuration {
	return Configuration{}
}

// Options returns the globally active options
func (c Configuration) Options() Options { return c.options }

// WithOptions returns a copy with opts globally active
func (c Configuration) WithOptions(opts ...Option) Configuration {
	c.options = c.options.With(opts...)
	return c
}

// WithoutOptions returns a copy with opts globally inactive
func (c Configuration) WithoutOptions(opts ...Option) Configuration {
	c.options = c.options.Without(opts...)
	return c
}

// Tolerance returns the numeric tolerance, if one is set
func (c Configuration) Tolerance() (decimal.Decimal, bool) {
	return c.tolerance.Decimal, c.tolerance.Valid
}

// WithTolerance returns a copy comparing numbers as equal when they differ by
// at most t
func (c Configuration) WithTolerance(t decimal.Decimal) Configuration {
	c.tolerance = decimal.NullDecimal{Decimal: t.Abs(), Valid: true}
	return c
}

// WithToleranceFloat is WithTolerance for a float64 tolerance
func (c Configuration) WithToleranceFloat(t float64) Configuration {
	return c.WithTolerance(decimal.NewFromFloat(t))
}

// WithoutTolerance returns a copy comparing numbers exactly
func (c Configuration) WithoutTolerance() Configuration {
	c.tolerance = decimal.NullDecimal{}
	return c
}

// WithMatcher registers a named matcher, referenced from expected documents as
// "${json-unit.matches:name}"
func (c Configuration) WithMatcher(name string, m Matcher) Configuration {
	matchers := make(map[string]Matcher, len(c.matchers)+1)
	for k, v := range c.matchers {
		matchers[k] = v
	}
	matchers[name] = m
	c.matchers = matchers
	return c
}

// Matcher looks up a registered matcher
func (c Configuration) Matcher(name string) (Matcher, bool) {
	m, ok := c.matchers[name]
	return m, ok
}

// IgnorePlaceholder returns the string marking ignored expected values
func (c Configuration) IgnorePlaceholder() string {
	if c.ignorePlaceholder == "" {
		return DefaultIgnorePlaceholder
	}
	return c.ignorePlaceholder
}

// WithIgnorePlaceholder returns a copy using a custom ignore placeholder. A
// custom placeholder replaces the default spellings
func (c Configuration) WithIgnorePlaceholder(placeholder string) Configuration {
	c.ignorePlaceholder = placeholder
	return c
}

func (c Configuration) isIgnorePlaceholder(s string) bool {
	p := c.IgnorePlaceholder()
	if p == DefaultIgnorePlaceholder {
		return s == DefaultIgnorePlaceholder || s == alternateIgnorePlaceholder
	}
	return s == p
}

// IgnoredPaths returns the globally ignored path patterns
func (c Configuration) IgnoredPaths() []string { return c.ignoredPaths }

// WhenIgnoringPaths returns a copy that skips comparison at paths matching any
// of patterns, including all their descendants
func (c Configuration) WhenIgnoringPaths(patterns ...string) Configuration {
	paths := make([]string, 0, len(c.ignoredPaths)+len(patterns))
	paths = append(append(paths, c.ignoredPaths...), patterns...)
	c.ignoredPaths = paths
	c.ignoreMatcher = NewPathMatcher(paths...)
	return c
}

func (c Configuration) isIgnored(path string) bool {
	return c.ignoreMatcher != nil && c.ignoreMatcher.Matches(path)
}

// When returns a copy extended by path scoped overrides. Overrides are
// evaluated in registration order, later ones win
func (c Configuration) When(overrides ...PathOverride) Configuration {
	next := c.overrides[:len(c.overrides):len(c.overrides)]
	for _, o := range overrides {
		if o.ignore {
			c = c.WhenIgnoringPaths(o.patterns...)
			continue
		}
		next = append(next, o)
	}
	c.overrides = next
	return c
}

// HasOption resolves whether opt is active at path: the global setting is
// overwritten by every matching override naming opt, in registration order
func (c Configuration) HasOption(path string, opt Option) bool {
	active := c.options.Contains(opt)
	for _, o := range c.overrides {
		if o.options.Contains(opt) && o.matcher.Matches(path) {
			active = o.included
		}
	}
	return active
}

// WithDifferenceListener returns a copy notifying l of every difference
func (c Configuration) WithDifferenceListener(l DifferenceListener) Configuration {
	c.listener = l
	return c
}

// WithNumberComparator returns a copy comparing numbers with nc
func (c Configuration) WithNumberComparator(nc NumberComparator) Configuration {
	c.numbers = nc
	return c
}

// NumberComparator returns the comparator used for numbers
func (c Configuration) NumberComparator() NumberComparator {
	if c.numbers == nil {
		return DefaultNumberComparator{}
	}
	return c.numbers
}

// WithLogger returns a copy logging to l
func (c Configuration) WithLogger(l logrus.FieldLogger) Configuration {
	c.logger = l
	return c
}

// Logger returns the logger comparisons write debug output to. Defaults to
// the logrus standard logger
func (c Configuration) Logger() logrus.FieldLogger {
	if c.logger == nil {
		return logrus.StandardLogger()
	}
	return c.logger
}

// PathOverride activates or deactivates options at paths matching a set of
// patterns. Create them with Paths
type PathOverride struct {
	patterns []string
	matcher  PathMatcher
	options  Options
	included bool
	ignore   bool
}

// PathsBuilder starts a PathOverride
type PathsBuilder struct {
	patterns []string
}

// Paths starts an override applying to paths matching any of patterns.
// Patterns are exact full paths, "[*]" matches any array index
func Paths(patterns ...string) PathsBuilder {
	return PathsBuilder{patterns: patterns}
}

// Then activates opts at the matching paths
func (b PathsBuilder) Then(opts ...Option) PathOverride {
	return b.override(NewOptions(opts...), true)
}

// Except deactivates opts at the matching paths
func (b PathsBuilder) Except(opts ...Option) PathOverride {
	return b.override(NewOptions(opts...), false)
}

// Ignore skips comparison at the matching paths
func (b PathsBuilder) Ignore() PathOverride {
	return PathOverride{patterns: b.patterns, ignore: true}
}

func (b PathsBuilder) override(opts Options, included bool) PathOverride {
	return PathOverride{
		patterns: b.patterns,
		matcher:  NewPathMatcher(b.patterns...),
		options:  opts,
		included: included,
	}
}
