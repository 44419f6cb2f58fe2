package jsonunit

// comparisonMatrix pairs the elements of two arrays regardless of order.
// Element equality isn't transitive ("${json-unit.any-number}" matches both 1
// and 2, which don't match each other) so arrays can't be sorted & compared,
// the matrix searches for an assignment instead
type comparisonMatrix struct {
	// equal[actualIndex] = expected indices the actual element is similar to.
	// rows are replaced, never modified in place, so copies can share them
	equal       [][]int
	compareFrom int
	// matches[expectedIndex] = actual index, -1 while unmatched
	matches []int
	extra   []int
	matched []bool
	// acceptExtra lets a branch with leftover actual elements count as a match
	acceptExtra bool
}

// newComparisonMatrix probes every (expected, actual) pair with a silent
// comparison rooted at the actual element's path, so path scoped options keep
// applying inside array elements
func newComparisonMatrix(expected, actual []Node, path Path, cfg Configuration, acceptExtra bool) *comparisonMatrix {
	equal := make([][]int, len(actual))
	for i, a := range actual {
		start := NewPrefixedPath("", path.ToElement(i).FullPath())
		for j, e := range expected {
			if newProbe(e, a, start, cfg).Similar() {
				equal[i] = append(equal[i], j)
			}
		}
	}

	matches := make([]int, len(expected))
	for i := range matches {
		matches[i] = -1
	}
	return &comparisonMatrix{
		equal:       equal,
		matches:     matches,
		matched:     make([]bool, len(actual)),
		acceptExtra: acceptExtra,
	}
}

// compare assigns actual elements to expected ones, returning the matrix
// holding the result. It may be a copy of m
func (m *comparisonMatrix) compare() *comparisonMatrix {
	m.doSimpleMatching()

	for i := m.compareFrom; i < len(m.equal); i++ {
		if m.matched[i] {
			continue
		}
		candidates := m.equal[i]
		switch len(candidates) {
		case 0:
			m.extra = append(m.extra, i)
		case 1:
			m.recordMatch(i, candidates[0])
		default:
			// more than one candidate. try each one, first full match wins
			for _, j := range candidates {
				branch := m.copy(i + 1)
				branch.recordMatch(i, j)
				if branch = branch.compare(); branch.isMatching() {
					return branch
				}
			}
			// no combination matches, report against the first candidate
			m.recordMatch(i, candidates[0])
		}
	}
	return m
}

// doSimpleMatching collapses groups of actual elements that are similar to
// exactly the same expected elements, eg: [1,1,1,1,1] vs [8,1,1,1,1]. Without
// it those arrays branch combinatorially
func (m *comparisonMatrix) doSimpleMatching() {
	for i := range m.equal {
		if m.matched[i] || len(m.equal[i]) == 0 {
			continue
		}
		equalTo := m.equal[i]
		equivalent := m.equivalentRows(equalTo)

		if len(equalTo) == len(equivalent) {
			for j, a := range equivalent {
				m.recordMatch(a, equalTo[j])
			}
		} else if len(equivalent) > 1 && len(equalTo) > 1 {
			exclusive := m.usedOnlyBy(equalTo, equivalent)
			for j := 0; j < len(equivalent) && j < len(exclusive); j++ {
				m.recordMatch(equivalent[j], exclusive[j])
			}
		}
	}
}

// equivalentRows lists unmatched actual indices with a row equal to equalTo
func (m *comparisonMatrix) equivalentRows(equalTo []int) []int {
	var rows []int
	for i, row := range m.equal {
		if !m.matched[i] && intsEqual(row, equalTo) {
			rows = append(rows, i)
		}
	}
	return rows
}

// usedOnlyBy filters equalTo down to expected indices no unmatched actual
// element outside rows is similar to
func (m *comparisonMatrix) usedOnlyBy(equalTo, rows []int) []int {
	res := append([]int(nil), equalTo...)
	for i, row := range m.equal {
		if m.matched[i] || containsInt(rows, i) {
			continue
		}
		res = removeInts(res, row)
	}
	return res
}

func (m *comparisonMatrix) copy(compareFrom int) *comparisonMatrix {
	return &comparisonMatrix{
		equal:       append([][]int(nil), m.equal...),
		compareFrom: compareFrom,
		matches:     append([]int(nil), m.matches...),
		extra:       append([]int(nil), m.extra...),
		matched:     append([]bool(nil), m.matched...),
		acceptExtra: m.acceptExtra,
	}
}

// recordMatch claims expected element e for actual element a, no other
// actual element can match e afterwards
func (m *comparisonMatrix) recordMatch(a, e int) {
	m.matches[e] = a
	for i, row := range m.equal {
		if !m.matched[i] && containsInt(row, e) {
			m.equal[i] = removeInts(row, []int{e})
		}
	}
	m.matched[a] = true
}

func (m *comparisonMatrix) isMatching() bool {
	return len(m.missing()) == 0 && (len(m.extra) == 0 || m.acceptExtra)
}

// missing lists expected indices no actual element was assigned to
func (m *comparisonMatrix) missing() []int {
	var res []int
	for e, a := range m.matches {
		if a < 0 {
			res = append(res, e)
		}
	}
	return res
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// removeInts returns a new slice holding s without the values in rm
func removeInts(s, rm []int) []int {
	res := make([]int, 0, len(s))
	for _, x := range s {
		if !containsInt(rm, x) {
			res = append(res, x)
		}
	}
	return res
}
