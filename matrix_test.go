package jsonunit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func elements(t *testing.T, data string) []Node {
	return mustParse(t, data).Elements()
}

func TestComparisonMatrix(t *testing.T) {
	cases := []struct {
		description      string
		expected, actual string
		acceptExtra      bool
		missing, extra   []int
	}{
		{"equal", `[1,2,3]`, `[1,2,3]`, false, nil, nil},
		{"reversed", `[1,2,3]`, `[3,2,1]`, false, nil, nil},
		{"duplicates", `[1,1,2,2]`, `[2,2,1,2]`, false, []int{1}, []int{3}},
		{"missing", `[1,2,3]`, `[3,1]`, false, []int{1}, nil},
		{"extra", `[1,2]`, `[3,2,1]`, false, nil, []int{0}},
		{"extra accepted", `[1,2]`, `[3,2,1]`, true, nil, []int{0}},
		{"nothing in common", `[1,2]`, `[3,4]`, false, []int{0, 1}, []int{0, 1}},
		{"empty", `[]`, `[]`, false, nil, nil},
		{"placeholders need backtracking",
			`["${json-unit.any-number}",1]`,
			`[1,2]`,
			false, nil, nil},
		{"objects", `[{"a":1},{"a":2},{"a":3}]`, `[{"a":3},{"a":1},{"a":4}]`, false, []int{1}, []int{2}},
		{"many equivalent rows", `[1,1,1,1,1]`, `[8,1,1,1,1]`, false, []int{4}, []int{0}},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			m := newComparisonMatrix(elements(t, c.expected), elements(t, c.actual), RootPath, Empty(), c.acceptExtra).compare()
			if diff := cmp.Diff(c.missing, m.missing(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("missing mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(c.extra, m.extra, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("extra mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComparisonMatrixBacktracking(t *testing.T) {
	// every actual element is similar to two expected elements & no two rows
	// are alike, so the matrix has to branch
	expected := elements(t, `[
		{"x":1,"y":"${json-unit.ignore}","z":"${json-unit.ignore}"},
		{"x":"${json-unit.ignore}","y":1,"z":"${json-unit.ignore}"},
		{"x":"${json-unit.ignore}","y":"${json-unit.ignore}","z":1}
	]`)
	actual := elements(t, `[
		{"x":1,"y":1,"z":0},
		{"x":0,"y":1,"z":1},
		{"x":1,"y":0,"z":1}
	]`)

	m := newComparisonMatrix(expected, actual, RootPath, Empty(), false)
	if diff := cmp.Diff([][]int{{0, 1}, {1, 2}, {0, 2}}, m.equal); diff != "" {
		t.Fatalf("similarity mismatch (-want +got):\n%s", diff)
	}
	m = m.compare()
	if !m.isMatching() {
		t.Fatalf("expected a full match. missing: %v. extra: %v", m.missing(), m.extra)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, m.matches); diff != "" {
		t.Errorf("matches mismatch (-want +got):\n%s", diff)
	}
}

func TestComparisonMatrixPathOptions(t *testing.T) {
	// probes are rooted at the element path, so overrides keep applying
	cfg := Empty().When(Paths("[*]").Then(IgnoringExtraFields))
	m := newComparisonMatrix(elements(t, `[{"a":1}]`), elements(t, `[{"a":1,"b":2}]`), RootPath, cfg, false).compare()
	if !m.isMatching() {
		t.Errorf("expected match. missing: %v. extra: %v", m.missing(), m.extra)
	}
}
