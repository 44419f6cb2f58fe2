package jsonunit

// Stats holds statistical metadata about a comparison
type Stats struct {
	Expected int `json:"expectedNodes"` // count of nodes in the expected tree
	Actual   int `json:"actualNodes"`   // count of nodes in the compared actual tree

	ExpectedWeight int `json:"expectedWeight"` // byte count of the compact expected tree
	ActualWeight   int `json:"actualWeight"`   // byte count of the compact actual tree

	Missing   int `json:"missing,omitempty"`   // number of nodes missing from actual
	Extra     int `json:"extra,omitempty"`     // number of nodes only in actual
	Different int `json:"different,omitempty"` // number of nodes with different values
}

// NodeChange returns a count of the shift between expected & actual trees
func (s Stats) NodeChange() int {
	return s.Actual - s.Expected
}

// PctWeightChange returns the size shift from expected to actual as a fraction
// of the expected size: -1.0 when actual is empty, 0.5 when it grew by half
func (s Stats) PctWeightChange() float64 {
	if s.ExpectedWeight == 0 {
		return 0
	}
	return float64(s.ActualWeight-s.ExpectedWeight) / float64(s.ExpectedWeight)
}

func calcStats(expected, actual Node, diffs Differences) Stats {
	st := Stats{
		Expected:       countNodes(expected),
		Actual:         countNodes(actual),
		ExpectedWeight: len(expected.String()),
		ActualWeight:   len(actual.String()),
	}
	for _, d := range diffs {
		switch d.Type {
		case DTMissing:
			st.Missing++
		case DTExtra:
			st.Extra++
		case DTDifferent:
			st.Different++
		}
	}
	return st
}

// countNodes counts n & all of its descendants. Missing counts as zero
func countNodes(n Node) int {
	switch n.Kind() {
	case KindMissing:
		return 0
	case KindObject:
		count := 1
		for _, f := range n.Fields() {
			count += countNodes(f.Value)
		}
		return count
	case KindArray:
		count := 1
		for _, e := range n.Elements() {
			count += countNodes(e)
		}
		return count
	}
	return 1
}
