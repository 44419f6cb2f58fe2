package jsonunit

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	msgDifferentValue     = `Different value found in node "%s", expected: <%s> but was: <%s>.`
	msgToleranceExceeded  = `Different value found in node "%s", expected: <%s> but was: <%s>, difference is %s, tolerance is %s`
	msgPatternMismatch    = `Different value found in node "%s". Pattern "%s" did not match "%s".`
	msgInvalidPattern     = `Different value found in node "%s". Pattern "%s" is invalid: %s`
	msgMatcherMismatch    = `Matcher "%s" does not match value %s in node "%s". %s`
	msgMatcherNotFound    = `Matcher "%s" not found.`
	msgDifferentKeys      = `Different keys found in node "%s", expected: <[%s]> but was: <[%s]>. %s %s`
	msgDifferentLength    = `Array "%s" has different length, expected: <%s> but was: <%s>.`
	msgInvalidLength      = `Array "%s" has invalid length, expected: <at least %s> but was: <%s>.`
	msgDifferentContent   = `Array "%s" has different content, expected: <%s> but was: <%s>. %s`
	msgDifferentElement   = `Different value found when comparing expected array element %s to actual element %s.`
	msgMissingNode        = `Missing node in path "%s".`
	msgDocumentsDifferent = "JSON documents are different:\n"
	msgSameValue          = "JSON documents have the same value."
	msgSameStructure      = "JSON documents have the same structure."
)

// Diff compares an expected document with an actual one. The comparison runs
// once, on the first call of any method reporting results
type Diff struct {
	expected, actual Node
	start            Path
	cfg              Configuration
	expectedSource   interface{}
	actualSource     interface{}
	stats            *Stats

	// probes are silent & stop at the first difference
	probe bool

	once    sync.Once
	stopped bool
	lines   []reportLine
	diffs   Differences
}

type reportLine struct {
	message    string
	structural bool
}

// DiffOption is a function that adjusts a Diff, zero or more DiffOptions can be
// passed to New & Create
type DiffOption func(d *Diff)

// OptionSetStats will populate the passed-in stats pointer once the comparison
// has run
func OptionSetStats(st *Stats) DiffOption {
	return func(d *Diff) {
		d.stats = st
	}
}

// OptionSources sets the values handed to listeners as the documents being
// compared. Defaults to the Node values
func OptionSources(expected, actual interface{}) DiffOption {
	return func(d *Diff) {
		d.expectedSource = expected
		d.actualSource = actual
	}
}

// New creates a Diff of two node trees. The comparison starts at the node
// startPath resolves to in actual, expected must already be the document
// expected there
func New(expected, actual Node, startPath Path, cfg Configuration, opts ...DiffOption) *Diff {
	d := &Diff{
		expected:       expected,
		actual:         actual,
		start:          startPath,
		cfg:            cfg,
		expectedSource: expected,
		actualSource:   actual,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Create creates a Diff of two native go values, converted with FromValue
func Create(expected, actual interface{}, startPath string, cfg Configuration, opts ...DiffOption) (*Diff, error) {
	e, err := FromValue(expected)
	if err != nil {
		return nil, fmt.Errorf("expected: %w", err)
	}
	a, err := FromValue(actual)
	if err != nil {
		return nil, fmt.Errorf("actual: %w", err)
	}
	opts = append([]DiffOption{OptionSources(expected, actual)}, opts...)
	return New(e, a, NewPath(startPath), cfg, opts...), nil
}

func newProbe(expected, actual Node, start Path, cfg Configuration) *Diff {
	return &Diff{expected: expected, actual: actual, start: start, cfg: cfg, probe: true}
}

// Similar reports whether the documents match under the configuration
func (d *Diff) Similar() bool {
	d.compare()
	return len(d.lines) == 0
}

// SimilarStructure reports whether the documents have no structural
// differences: keys, array lengths & referenced matchers
func (d *Diff) SimilarStructure() bool {
	d.compare()
	for _, l := range d.lines {
		if l.structural {
			return false
		}
	}
	return true
}

// Differences returns the report of all differences
func (d *Diff) Differences() string {
	if d.Similar() {
		return msgSameValue
	}
	report := formatReport(d.lines, false)
	if d.cfg.HasOption(d.start.String(), ReportingDifferenceAsNormalizedString) {
		report += fmt.Sprintf("Expected (normalized):\n%sActual (normalized):\n%s", d.NormalizedExpected(), d.NormalizedActual())
	}
	return report
}

// StructureDifferences returns the report of structural differences only
func (d *Diff) StructureDifferences() string {
	if d.SimilarStructure() {
		return msgSameStructure
	}
	return formatReport(d.lines, true)
}

// String implements the fmt.Stringer interface
func (d *Diff) String() string {
	return d.Differences()
}

// DifferenceList returns every located difference in the order found
func (d *Diff) DifferenceList() Differences {
	d.compare()
	return d.diffs
}

// Stats returns counts of the compared nodes & the differences found
func (d *Diff) Stats() Stats {
	d.compare()
	return calcStats(d.expected, d.start.Resolve(d.actual), d.diffs)
}

// NormalizedExpected renders the expected document with indentation
func (d *Diff) NormalizedExpected() string {
	return Normalize(d.expected, d.expected)
}

// NormalizedActual renders the compared part of the actual document with
// indentation, object keys ordered like the expected document
func (d *Diff) NormalizedActual() string {
	return Normalize(d.start.Resolve(d.actual), d.expected)
}

func formatReport(lines []reportLine, structuralOnly bool) string {
	b := &strings.Builder{}
	b.WriteString(msgDocumentsDifferent)
	for _, l := range lines {
		if structuralOnly && !l.structural {
			continue
		}
		b.WriteString(l.message)
		b.WriteByte('\n')
	}
	return b.String()
}

func (d *Diff) compare() {
	d.once.Do(func() {
		root := compareContext{
			expected:     d.expected,
			actual:       d.start.Resolve(d.actual),
			expectedPath: d.start,
			actualPath:   d.start,
			cfg:          d.cfg,
		}
		if root.actual.IsMissing() {
			ev := root.event(DTMissing)
			d.record(true, d.start.String(), fmt.Sprintf(msgMissingNode, d.start), ev)
		} else {
			d.compareNodes(root)
		}

		if !d.probe {
			d.logDifferences(root.actual)
			if d.stats != nil {
				*d.stats = calcStats(d.expected, root.actual, d.diffs)
			}
		}
	})
}

func (d *Diff) logDifferences(actual Node) {
	if len(d.lines) == 0 {
		return
	}
	log := d.cfg.Logger()
	if !debugEnabled(log) {
		return
	}
	log.WithField("path", d.start.String()).Debug(strings.TrimSpace(formatReport(d.lines, false)))
	log.WithFields(logrus.Fields{
		"expected": d.expected.String(),
		"actual":   actual.String(),
	}).Debug("compared documents")
}

func debugEnabled(l logrus.FieldLogger) bool {
	switch x := l.(type) {
	case *logrus.Logger:
		return x.IsLevelEnabled(logrus.DebugLevel)
	case *logrus.Entry:
		return x.Logger.IsLevelEnabled(logrus.DebugLevel)
	}
	return true
}

// record adds a report line & the differences it covers. Value lines are
// dropped where only structure is compared
func (d *Diff) record(structural bool, path, message string, events ...Difference) {
	if d.stopped {
		return
	}
	if !structural && d.cfg.HasOption(path, ComparingOnlyStructure) {
		return
	}
	d.lines = append(d.lines, reportLine{message: message, structural: structural})
	for _, ev := range events {
		ev.Message = message
		d.diffs = append(d.diffs, ev)
		if !d.probe && d.cfg.listener != nil {
			d.cfg.listener.OnDifference(ev, DifferenceContext{
				Configuration:  d.cfg,
				ExpectedSource: d.expectedSource,
				ActualSource:   d.actualSource,
			})
		}
	}
	if d.probe || d.cfg.HasOption(path, FailFast) {
		d.stopped = true
	}
}

func (d *Diff) valueDifference(c compareContext, message string) {
	d.record(false, c.actualPath.String(), message, c.event(DTDifferent))
}

func (d *Diff) compareNodes(c compareContext) {
	if d.stopped {
		return
	}
	path := c.actualPath.String()
	if d.cfg.isIgnored(path) {
		return
	}

	expected, actual := c.expected, c.actual
	if expected.Kind() == KindString {
		text := expected.Text()
		if d.cfg.isIgnorePlaceholder(text) || isIgnoreElement(expected) {
			return
		}
		for _, ph := range anyPlaceholders {
			if ph.re.MatchString(text) {
				if actual.Kind() != ph.kind {
					d.valueDifference(c, fmt.Sprintf(msgDifferentValue, path, ph.name, quote(actual)))
				}
				return
			}
		}
		if name, param, ok := matcherReference(text); ok {
			d.applyMatcher(c, name, param)
			return
		}
	}

	if expected.Kind() != actual.Kind() {
		d.valueDifference(c, fmt.Sprintf(msgDifferentValue, path, quote(expected), quote(actual)))
		return
	}

	switch expected.Kind() {
	case KindObject:
		d.compareObjects(c)
	case KindArray:
		d.compareArrays(c)
	case KindString:
		d.compareStrings(c)
	case KindNumber:
		d.compareNumbers(c)
	case KindBoolean:
		if !d.cfg.HasOption(path, IgnoringValues) && expected.Bool() != actual.Bool() {
			d.valueDifference(c, fmt.Sprintf(msgDifferentValue, path, expected, actual))
		}
	case KindNull:
		// null is null
	}
}

func (d *Diff) applyMatcher(c compareContext, name, param string) {
	path := c.actualPath.String()
	m, ok := d.cfg.Matcher(name)
	if !ok {
		d.record(true, path, fmt.Sprintf(msgMatcherNotFound, name), c.event(DTDifferent))
		return
	}
	if err := m.Match(c.actual, param); err != nil {
		d.valueDifference(c, fmt.Sprintf(msgMatcherMismatch, name, quote(c.actual), path, err))
	}
}

func (d *Diff) compareStrings(c compareContext) {
	path := c.actualPath.String()
	if d.cfg.HasOption(path, IgnoringValues) {
		return
	}
	expected, actual := c.expected.Text(), c.actual.Text()
	if pattern, ok := regexPattern(expected); ok {
		matched, err := fullMatch(pattern, actual)
		if err != nil {
			d.valueDifference(c, fmt.Sprintf(msgInvalidPattern, path, pattern, err))
		} else if !matched {
			d.valueDifference(c, fmt.Sprintf(msgPatternMismatch, path, pattern, actual))
		}
		return
	}
	if expected != actual {
		d.valueDifference(c, fmt.Sprintf(msgDifferentValue, path, quote(c.expected), quote(c.actual)))
	}
}

func (d *Diff) compareNumbers(c compareContext) {
	path := c.actualPath.String()
	if d.cfg.HasOption(path, IgnoringValues) {
		return
	}
	e, a := c.expected.Decimal(), c.actual.Decimal()
	if d.cfg.NumberComparator().CompareNumbers(e, a, d.cfg.tolerance) {
		return
	}
	if t, ok := d.cfg.Tolerance(); ok {
		d.valueDifference(c, fmt.Sprintf(msgToleranceExceeded, path, c.expected, c.actual, e.Sub(a).Abs(), t))
		return
	}
	d.valueDifference(c, fmt.Sprintf(msgDifferentValue, path, c.expected, c.actual))
}

func (d *Diff) compareObjects(c compareContext) {
	expected, actual := c.expected, c.actual
	path := c.actualPath
	pathStr := path.String()

	var missing, extra []string
	for _, name := range expected.Keys() {
		if !actual.Field(name).IsMissing() {
			continue
		}
		if d.cfg.isIgnored(path.ToField(name).String()) || isIgnoreElement(expected.Field(name)) {
			continue
		}
		missing = append(missing, name)
	}

	ignoringExtra := d.cfg.HasOption(pathStr, IgnoringExtraFields)
	for _, name := range actual.Keys() {
		if !expected.Field(name).IsMissing() || ignoringExtra {
			continue
		}
		field := path.ToField(name).String()
		if d.cfg.isIgnored(field) {
			continue
		}
		if actual.Field(name).Kind() == KindNull && d.cfg.HasOption(field, TreatingNullAsAbsent) {
			continue
		}
		extra = append(extra, name)
	}

	if len(missing) > 0 || len(extra) > 0 {
		var (
			events       []Difference
			missingPaths []string
			extraPaths   []string
		)
		for _, name := range missing {
			events = append(events, Difference{
				Type:         DTMissing,
				ExpectedPath: c.expectedPath.ToField(name).String(),
				Expected:     expected.Field(name),
			})
			missingPaths = append(missingPaths, `"`+path.ToField(name).String()+`"`)
		}
		for _, name := range extra {
			events = append(events, Difference{
				Type:       DTExtra,
				ActualPath: path.ToField(name).String(),
				Actual:     actual.Field(name),
			})
			extraPaths = append(extraPaths, `"`+path.ToField(name).String()+`"`)
		}

		var missingPart, extraPart string
		if len(missingPaths) > 0 {
			missingPart = "Missing: " + strings.Join(missingPaths, ",")
		}
		if len(extraPaths) > 0 {
			extraPart = "Extra: " + strings.Join(extraPaths, ",")
		}
		msg := fmt.Sprintf(msgDifferentKeys, pathStr,
			strings.Join(expected.Keys(), ", "), strings.Join(actual.Keys(), ", "),
			missingPart, extraPart)
		d.record(true, pathStr, msg, events...)
	}

	for _, name := range expected.Keys() {
		if d.stopped {
			return
		}
		if actual.Field(name).IsMissing() {
			continue
		}
		d.compareNodes(c.intoField(name))
	}
}

func (d *Diff) compareArrays(c compareContext) {
	pathStr := c.actualPath.String()
	expectedLen, actualLen := c.expected.Len(), c.actual.Len()
	ignoringExtra := d.cfg.HasOption(pathStr, IgnoringExtraArrayItems)

	if expectedLen != actualLen {
		l := c.length()
		if !ignoringExtra {
			d.record(true, pathStr, fmt.Sprintf(msgDifferentLength, pathStr, l.expected, l.actual))
		} else if expectedLen > actualLen {
			d.record(true, pathStr, fmt.Sprintf(msgInvalidLength, pathStr, l.expected, l.actual))
		}
	}

	if d.cfg.HasOption(pathStr, IgnoringArrayOrder) {
		d.compareUnordered(c, ignoringExtra)
	} else {
		d.compareOrdered(c, ignoringExtra)
	}
}

func (d *Diff) compareOrdered(c compareContext, ignoringExtra bool) {
	pathStr := c.actualPath.String()
	expectedLen, actualLen := c.expected.Len(), c.actual.Len()
	common := expectedLen
	if actualLen < common {
		common = actualLen
	}

	var (
		events []Difference
		values []Node
		part   = "Missing values [%s]"
	)
	for i := common; i < expectedLen; i++ {
		events = append(events, c.missingElement(i).event(DTMissing))
		values = append(values, c.expected.Element(i))
	}
	if !ignoringExtra {
		for i := common; i < actualLen; i++ {
			events = append(events, c.extraElement(i).event(DTExtra))
			values = append(values, c.actual.Element(i))
			part = "Extra values [%s]"
		}
	}
	if len(events) > 0 {
		d.record(false, pathStr, fmt.Sprintf(msgDifferentContent, pathStr, c.expected, c.actual, fmt.Sprintf(part, joinNodes(values))), events...)
	}

	for i := 0; i < common; i++ {
		if d.stopped {
			return
		}
		d.compareNodes(c.intoElement(i, i))
	}
}

func (d *Diff) compareUnordered(c compareContext, ignoringExtra bool) {
	pathStr := c.actualPath.String()
	m := newComparisonMatrix(c.expected.Elements(), c.actual.Elements(), c.actualPath, d.cfg, ignoringExtra).compare()
	missing, extra := m.missing(), m.extra

	if len(missing) == 0 && (len(extra) == 0 || ignoringExtra) {
		return
	}

	if c.expected.Len() == c.actual.Len() && len(missing) == 1 && len(extra) == 1 {
		e, a := missing[0], extra[0]
		d.record(false, pathStr, fmt.Sprintf(msgDifferentElement, c.expectedPath.ToElement(e), c.actualPath.ToElement(a)))
		d.compareNodes(c.intoElement(e, a))
		return
	}

	var (
		events        []Difference
		missingValues []Node
		extraValues   []Node
	)
	for _, i := range missing {
		events = append(events, c.missingElement(i).event(DTMissing))
		missingValues = append(missingValues, c.expected.Element(i))
	}
	part := fmt.Sprintf("Missing values [%s]", joinNodes(missingValues))
	if !ignoringExtra {
		for _, i := range extra {
			events = append(events, c.extraElement(i).event(DTExtra))
			extraValues = append(extraValues, c.actual.Element(i))
		}
		part += fmt.Sprintf(", extra values [%s]", joinNodes(extraValues))
	}
	d.record(false, pathStr, fmt.Sprintf(msgDifferentContent, pathStr, c.expected, c.actual, part), events...)
}

// quote renders a node for a report. Strings are wrapped in double quotes
// as they are, everything else is compact JSON
func quote(n Node) string {
	if n.Kind() == KindString {
		return `"` + n.Text() + `"`
	}
	return n.String()
}

func joinNodes(ns []Node) string {
	strs := make([]string, len(ns))
	for i, n := range ns {
		strs[i] = n.String()
	}
	return strings.Join(strs, ", ")
}
