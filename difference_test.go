package jsonunit

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type recordingListener struct {
	diffs Differences
	ctx   DifferenceContext
}

func (r *recordingListener) OnDifference(d Difference, ctx DifferenceContext) {
	r.diffs = append(r.diffs, d)
	r.ctx = ctx
}

func num(t *testing.T, lit string) Node {
	n, err := ParseNumber(lit)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestDifferenceEvents(t *testing.T) {
	cases := []struct {
		description      string
		expected, actual string
		cfg              Configuration
		expect           Differences
	}{
		{"empty objects", `{}`, `{}`, Empty(), nil},
		{"null documents", `null`, `null`, Empty(), nil},
		{"removed node", `{"test":"1"}`, `{}`, Empty(), Differences{
			{Type: DTMissing, ExpectedPath: "test", Expected: NewString("1")},
		}},
		{"added node", `{}`, `{"test":"1"}`, Empty(), Differences{
			{Type: DTExtra, ActualPath: "test", Actual: NewString("1")},
		}},
		{"ignored node", `{"test":"${json-unit.ignore}"}`, `{"test":"1"}`, Empty(), nil},
		{"any boolean", `{"test":"${json-unit.any-boolean}"}`, `{"test":true}`, Empty(), nil},
		{"any number", `{"test":"${json-unit.any-number}"}`, `{"test":11}`, Empty(), nil},
		{"any string", `{"test":"${json-unit.any-string}"}`, `{"test":"1"}`, Empty(), nil},
		{"changed string", `{"test":"1"}`, `{"test":"2"}`, Empty(), Differences{
			{Type: DTDifferent, ExpectedPath: "test", Expected: NewString("1"), ActualPath: "test", Actual: NewString("2")},
		}},
		{"changed number", `{"test":1}`, `{"test":2}`, Empty(), Differences{
			{Type: DTDifferent, ExpectedPath: "test", Expected: num(t, "1"), ActualPath: "test", Actual: num(t, "2")},
		}},
		{"changed boolean", `{"test":true}`, `{"test":false}`, Empty(), Differences{
			{Type: DTDifferent, ExpectedPath: "test", Expected: NewBool(true), ActualPath: "test", Actual: NewBool(false)},
		}},
		{"changed structure", `{"test":"1"}`, `{"test":false}`, Empty(), Differences{
			{Type: DTDifferent, ExpectedPath: "test", Expected: NewString("1"), ActualPath: "test", Actual: NewBool(false)},
		}},
		{"changed array element", `[1,1]`, `[1,2]`, Empty(), Differences{
			{Type: DTDifferent, ExpectedPath: "[1]", Expected: num(t, "1"), ActualPath: "[1]", Actual: num(t, "2")},
		}},
		{"removed array element", `[1,2]`, `[1]`, Empty(), Differences{
			{Type: DTMissing, ExpectedPath: "[1]", Expected: num(t, "2")},
		}},
		{"added array element", `[1]`, `[1,2]`, Empty(), Differences{
			{Type: DTExtra, ActualPath: "[1]", Actual: num(t, "2")},
		}},
		{"nested object", `{"test":{"test1":"1"}}`, `{"test":{"test1":"2"}}`, Empty(), Differences{
			{Type: DTDifferent, ExpectedPath: "test.test1", Expected: NewString("1"), ActualPath: "test.test1", Actual: NewString("2")},
		}},
		{"ignoring array order", `{"test":[[1,2],[2,3]]}`, `{"test":[[4,2],[1,2]]}`, Empty().WithOptions(IgnoringArrayOrder), Differences{
			{Type: DTDifferent, ExpectedPath: "test[1][1]", Expected: num(t, "3"), ActualPath: "test[0][0]", Actual: num(t, "4")},
		}},
		{"extra array items not allowed", `{"test":[2,3]}`, `{"test":[1,2,3]}`, Empty().WithOptions(IgnoringArrayOrder), Differences{
			{Type: DTExtra, ActualPath: "test[0]", Actual: num(t, "1")},
		}},
		{"extra array items allowed", `{"test":[2,3]}`, `{"test":[1,2,3]}`, Empty().WithOptions(IgnoringArrayOrder, IgnoringExtraArrayItems), nil},
		{"different keys", `{"a":1}`, `{"b":1}`, Empty(), Differences{
			{Type: DTMissing, ExpectedPath: "a", Expected: num(t, "1")},
			{Type: DTExtra, ActualPath: "b", Actual: num(t, "1")},
		}},
		{"ordered tails with ignored extra items", `[1,2]`, `[1]`, Empty().WithOptions(IgnoringExtraArrayItems), Differences{
			{Type: DTMissing, ExpectedPath: "[1]", Expected: num(t, "2")},
		}},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			l := &recordingListener{}
			d := New(mustParse(t, c.expected), mustParse(t, c.actual), RootPath, c.cfg.WithDifferenceListener(l))
			if d.Similar() != (len(c.expect) == 0) {
				t.Errorf("similar mismatch. want: %t", len(c.expect) == 0)
			}
			if diff := cmp.Diff(c.expect, l.diffs, cmpopts.IgnoreFields(Difference{}, "Message"), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(l.diffs, d.DifferenceList(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("listener & difference list disagree (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDifferenceMessages(t *testing.T) {
	l := &recordingListener{}
	d := New(mustParse(t, `{"a":1,"b":2}`), mustParse(t, `{"c":1}`), RootPath, Empty().WithDifferenceListener(l))
	d.Similar()

	msg := `Different keys found in node "", expected: <[a, b]> but was: <[c]>. Missing: "a","b" Extra: "c"`
	for _, diff := range l.diffs {
		if diff.Message != msg {
			t.Errorf("wrong message. want: %q. got: %q", msg, diff.Message)
		}
	}
	if got := len(l.diffs); got != 3 {
		t.Errorf("wrong number of events. want: 3. got: %d", got)
	}
	if got := l.diffs.String(); got != msg+"\n" {
		t.Errorf("wrong differences string. got: %q", got)
	}
}

func TestRootMissingEvent(t *testing.T) {
	l := &recordingListener{}
	d := New(NewString("foo"), mustParse(t, `{"test":-1}`), NewPath("path.node"), Empty().WithDifferenceListener(l))
	if d.Similar() {
		t.Fatal("expected difference")
	}
	expect := Differences{
		{Type: DTMissing, Message: `Missing node in path "path.node".`, ExpectedPath: "path.node", Expected: NewString("foo")},
	}
	if diff := cmp.Diff(expect, l.diffs); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestDifferenceSources(t *testing.T) {
	l := &recordingListener{}
	expected := map[string]interface{}{"test": "1"}
	actual := map[string]interface{}{}
	d, err := Create(expected, actual, "", Empty().WithDifferenceListener(l))
	if err != nil {
		t.Fatal(err)
	}
	d.Similar()

	if diff := cmp.Diff(expected, l.ctx.ExpectedSource); diff != "" {
		t.Errorf("expected source mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(actual, l.ctx.ActualSource); diff != "" {
		t.Errorf("actual source mismatch (-want +got):\n%s", diff)
	}
}

func TestMatcherWithLineSeparator(t *testing.T) {
	l := &recordingListener{}
	equalTo := MatcherFunc(func(actual Node, param string) error {
		if actual.Text() == param {
			return nil
		}
		return errNotEqual
	})
	cfg := Empty().WithDifferenceListener(l).WithMatcher("equalTo", equalTo)
	d := New(mustParse(t, `{"key":"${json-unit.matches:equalTo}separated \n line"}`), mustParse(t, `{"key":"separated \n line"}`), RootPath, cfg)
	if !d.Similar() {
		t.Error(d.Differences())
	}
	if len(l.diffs) != 0 {
		t.Errorf("expected no events, got %d", len(l.diffs))
	}
}

var errNotEqual = errors.New("not equal")

func TestDifferenceMarshalJSON(t *testing.T) {
	ds := Differences{
		{Type: DTMissing, ExpectedPath: "a", Expected: NewString("x")},
		{Type: DTExtra, ActualPath: "b[0]", Actual: NewBool(true)},
		{Type: DTDifferent, ExpectedPath: "c", Expected: num(t, "1.50"), ActualPath: "c", Actual: Null()},
	}
	data, err := json.Marshal(ds)
	if err != nil {
		t.Fatal(err)
	}
	expect := `[["-","a","x"],["+","b[0]",true],["~","c",null,1.50]]`
	if string(data) != expect {
		t.Errorf("wrong encoding.\nwant: %s\ngot:  %s", expect, data)
	}
}

func TestDifferencesOfType(t *testing.T) {
	ds := Differences{
		{Type: DTMissing, ExpectedPath: "a"},
		{Type: DTExtra, ActualPath: "b"},
		{Type: DTMissing, ExpectedPath: "c"},
	}
	if got := ds.OfType(DTMissing).Len(); got != 2 {
		t.Errorf("wrong count. want: 2. got: %d", got)
	}
	if got := ds.OfType(DTDifferent).Len(); got != 0 {
		t.Errorf("wrong count. want: 0. got: %d", got)
	}
	if got := ds[1].Path(); got != "b" {
		t.Errorf("wrong path. want: b. got: %s", got)
	}
	if DTExtra.String() != "EXTRA" {
		t.Errorf("wrong type name: %s", DTExtra)
	}
}
