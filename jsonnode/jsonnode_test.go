package jsonnode

import (
	"errors"
	"strings"
	"testing"

	"github.com/qri-io/jsonunit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		description string
		in          string
		expect      string
	}{
		{"object order kept", `{"b": 1, "a": [true, null]}`, `{"b":1,"a":[true,null]}`},
		{"number literal kept", `[1.50, 1e3, -0, 12345678901234567890123]`, `[1.50,1e3,-0,12345678901234567890123]`},
		{"duplicate keys keep last value in place", `{"a":1,"b":2,"a":3}`, `{"a":3,"b":2}`},
		{"escapes", `"tab\tquote\"é"`, `"tab\tquote\"é"`},
		{"surrounding whitespace", "  \n{}\t ", `{}`},
		{"scalar", `false`, `false`},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			n, err := ParseString(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.expect, n.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		``,
		`   `,
		`{"a":1`,
		`[1,2`,
		`{"a":1} x`,
		`1 2`,
		`tru`,
		`"unterminated`,
		`{a:1}`,
	}

	for _, in := range cases {
		_, err := ParseString(in)
		if assert.Error(t, err, "input %q", in) {
			assert.True(t, errors.Is(err, ErrSyntax), "input %q: %v", in, err)
		}
	}
}

func TestParseReader(t *testing.T) {
	n, err := ParseReader(strings.NewReader(`{"items":[{"id":1},{"id":2}]}`))
	require.NoError(t, err)
	assert.Equal(t, 2, n.Field("items").Len())
	assert.Equal(t, "2", jsonunit.NewPath("items[1].id").Resolve(n).Text())
}

func TestParseLenient(t *testing.T) {
	n, err := ParseLenient(" foo ")
	require.NoError(t, err)
	assert.Equal(t, jsonunit.KindString, n.Kind())
	assert.Equal(t, "foo", n.Text())

	n, err = ParseLenient(`{"a":1}`)
	require.NoError(t, err)
	assert.Equal(t, jsonunit.KindObject, n.Kind())

	_, err = ParseLenient(`{"a":`)
	assert.True(t, errors.Is(err, ErrSyntax))
}

func TestParsedDocumentsCompare(t *testing.T) {
	d := jsonunit.New(MustParse(`{"a":1.0}`), MustParse(`{"a":1.00}`), jsonunit.RootPath, jsonunit.Empty())
	assert.False(t, d.Similar())
	assert.Equal(t, "JSON documents are different:\n"+
		`Different value found in node "a", expected: <1.0> but was: <1.00>.`+"\n", d.Differences())
}
