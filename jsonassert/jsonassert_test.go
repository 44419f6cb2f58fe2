package jsonassert

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/qri-io/jsonunit"
	"github.com/stretchr/testify/assert"
)

type mockT struct {
	errors []string
	failed bool
}

func (m *mockT) Errorf(format string, args ...interface{}) {
	m.errors = append(m.errors, fmt.Sprintf(format, args...))
}

func (m *mockT) FailNow() { m.failed = true }

func (m *mockT) output() string { return strings.Join(m.errors, "\n") }

func TestEqual(t *testing.T) {
	cases := []struct {
		description string
		expected    interface{}
		actual      interface{}
		opts        []Option
	}{
		{"strings", `{"a":[1,2]}`, `{ "a" : [1, 2] }`, nil},
		{"bytes", `{"a":1}`, []byte(`{"a":1}`), nil},
		{"native values", map[string]interface{}{"a": 1}, `{"a":1}`, nil},
		{"node", jsonunit.MustFromValue([]interface{}{true}), `[true]`, nil},
		{"plain text", `hello`, `"hello"`, nil},
		{"placeholders", `{"id":"${json-unit.any-string}"}`, `{"id":"x1"}`, nil},
		{"options", `[1,2]`, `[2,1]`, []Option{Options(jsonunit.IgnoringArrayOrder)}},
		{"tolerance", `1.0`, `1.005`, []Option{Tolerance(0.01)}},
		{"ignored paths", `{"a":1,"b":2}`, `{"a":1,"b":3}`, []Option{IgnorePaths("b")}},
		{"path overrides", `{"a":[1,2],"b":[3]}`, `{"a":[2,1],"b":[3]}`, []Option{When(jsonunit.Paths("a").Then(jsonunit.IgnoringArrayOrder))}},
		{"start path", `{"id":1}`, `{"items":[{"id":1}]}`, []Option{At("items[0]")}},
		{"configuration", `{}`, `{"x":1}`, []Option{Configuration(jsonunit.Empty().WithOptions(jsonunit.IgnoringExtraFields))}},
		{"matcher", `"${json-unit.matches:even}"`, `4`, []Option{Matcher("even", jsonunit.MatcherFunc(func(n jsonunit.Node, _ string) error {
			if n.Decimal().IntPart()%2 != 0 {
				return errors.New("odd")
			}
			return nil
		}))}},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			m := &mockT{}
			assert.True(t, Equal(m, c.expected, c.actual, c.opts...), m.output())
			assert.Empty(t, m.errors)
		})
	}
}

func TestEqualFailure(t *testing.T) {
	m := &mockT{}
	assert.False(t, Equal(m, `{"a":1}`, `{"a":2}`))
	assert.Contains(t, m.output(), `Different value found in node "a", expected: <1> but was: <2>.`)
	assert.False(t, m.failed)
}

func TestEqualNormalizedFailure(t *testing.T) {
	m := &mockT{}
	assert.False(t, Equal(m, `{"a":1}`, `{"a":2}`, Options(jsonunit.ReportingDifferenceAsNormalizedString)))
	out := m.output()
	assert.Contains(t, out, "Not equal")
	assert.Contains(t, out, "Expected (normalized):")
}

func TestInvalidInput(t *testing.T) {
	m := &mockT{}
	assert.False(t, Equal(m, `{"a":`, `{}`))
	assert.Contains(t, m.output(), "expected: ")

	m = &mockT{}
	assert.False(t, Equal(m, `{}`, make(chan int)))
	assert.Contains(t, m.output(), "actual: ")
}

func TestMustEqual(t *testing.T) {
	m := &mockT{}
	MustEqual(m, `[1]`, `[1]`)
	assert.False(t, m.failed)

	MustEqual(m, `[1]`, `[1,2]`)
	assert.True(t, m.failed)
	assert.Contains(t, m.output(), `Array "" has different length, expected: <1> but was: <2>.`)
}

func TestNotEqual(t *testing.T) {
	m := &mockT{}
	assert.True(t, NotEqual(m, `{"a":1}`, `{"a":2}`))
	assert.Empty(t, m.errors)

	assert.False(t, NotEqual(m, `{"a":1}`, `{"a":1}`))
	assert.Contains(t, m.output(), "Expected different JSON documents")
}

func TestStructureEqual(t *testing.T) {
	m := &mockT{}
	assert.True(t, StructureEqual(m, `{"a":1,"b":[true]}`, `{"a":"x","b":[false]}`))
	assert.Empty(t, m.errors)

	assert.False(t, StructureEqual(m, `{"a":1}`, `{"b":1}`))
	assert.Contains(t, m.output(), `Different keys found in node ""`)
}
