package jsonunit

import (
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

// PatchListener collects differences & renders them in the jsondiffpatch
// delta format:
//
//   missing values:   {"path": [expected, 0, 0]}
//   extra values:     {"path": [actual]}
//   different values: {"path": [expected, actual]}
//
// objects nest by field name, arrays nest by index & carry a "_t": "a" marker.
// A PatchListener can be shared by many comparisons
type PatchListener struct {
	lk      sync.Mutex
	diffs   Differences
	context DifferenceContext
}

var _ DifferenceListener = (*PatchListener)(nil)

// NewPatchListener creates an empty PatchListener
func NewPatchListener() *PatchListener {
	return &PatchListener{}
}

// OnDifference implements the DifferenceListener interface
func (p *PatchListener) OnDifference(d Difference, ctx DifferenceContext) {
	p.lk.Lock()
	defer p.lk.Unlock()
	p.diffs = append(p.diffs, d)
	p.context = ctx
}

// Differences returns every difference seen so far
func (p *PatchListener) Differences() Differences {
	p.lk.Lock()
	defer p.lk.Unlock()
	return append(Differences(nil), p.diffs...)
}

// Context returns the context of the last difference seen
func (p *PatchListener) Context() DifferenceContext {
	p.lk.Lock()
	defer p.lk.Unlock()
	return p.context
}

// patchJSON sorts map keys, jsondiffpatch deltas are compared as text in tests
var patchJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// Patch builds the delta document
func (p *PatchListener) Patch() map[string]interface{} {
	patch := map[string]interface{}{}
	for _, d := range p.Differences() {
		path := d.Path()
		steps := strings.Split(strings.ReplaceAll(path, "[", "."), ".")

		current := patch
		offset := 0
		for i, step := range steps {
			name := strings.ReplaceAll(step, "]", "")
			offset += len(step)
			if i == len(steps)-1 {
				current[name] = patchValue(d)
				break
			}

			next, ok := current[name].(map[string]interface{})
			if !ok {
				next = map[string]interface{}{}
				current[name] = next
			}
			current = next
			if path[offset] == '[' {
				current["_t"] = "a"
			}
			// separator
			offset++
		}
	}
	return patch
}

// JSONPatch renders the delta document as compact JSON
func (p *PatchListener) JSONPatch() (string, error) {
	return patchJSON.MarshalToString(p.Patch())
}

func patchValue(d Difference) []interface{} {
	switch d.Type {
	case DTMissing:
		return []interface{}{d.Expected, 0, 0}
	case DTExtra:
		return []interface{}{d.Actual}
	}
	return []interface{}{d.Expected, d.Actual}
}
