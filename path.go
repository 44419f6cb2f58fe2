package jsonunit

import (
	"regexp"
	"strconv"
	"strings"
)

// Path addresses a node within a document, eg: "orders[2].lines[-1].sku". A
// literal dot inside a field name is written as `\.`
//
// prefix is an external route prepended when rendering, used when a
// comparison starts at a sub-document
type Path struct {
	relative string
	prefix   string
}

// RootPath addresses the root of a document
var RootPath = Path{}

// NewPath creates a path with no prefix
func NewPath(relative string) Path {
	return Path{relative: relative}
}

// NewPrefixedPath creates a path rendered behind prefix
func NewPrefixedPath(relative, prefix string) Path {
	return Path{relative: relative, prefix: prefix}
}

// Relative returns the part of the path that is resolved against a root
func (p Path) Relative() string { return p.relative }

// Prefix returns the external part of the path
func (p Path) Prefix() string { return p.prefix }

// IsRoot is true when the relative part is empty
func (p Path) IsRoot() bool { return p.relative == "" }

// ToField returns the path of a member of the addressed object
func (p Path) ToField(name string) Path {
	if p.IsRoot() {
		return Path{relative: name, prefix: p.prefix}
	}
	return Path{relative: p.relative + "." + name, prefix: p.prefix}
}

// ToElement returns the path of an element of the addressed array
func (p Path) ToElement(i int) Path {
	return Path{relative: p.relative + "[" + strconv.Itoa(i) + "]", prefix: p.prefix}
}

// To appends a step. Steps starting with "[" are appended as they are,
// anything else is a field name
func (p Path) To(step string) Path {
	if strings.HasPrefix(step, "[") {
		return Path{relative: p.relative + step, prefix: p.prefix}
	}
	return p.ToField(step)
}

// AsPrefix freezes the full path as the prefix of a new root path
func (p Path) AsPrefix() Path {
	return Path{prefix: p.FullPath()}
}

// FullPath joins prefix & relative part
func (p Path) FullPath() string {
	switch {
	case p.prefix == "":
		return p.relative
	case strings.HasPrefix(p.relative, "["):
		return p.prefix + p.relative
	case p.relative != "":
		return p.prefix + "." + p.relative
	default:
		return p.prefix
	}
}

// String implements the fmt.Stringer interface
func (p Path) String() string { return p.FullPath() }

// trailing "[n]" of a step
var indexStep = regexp.MustCompile(`\[(-?\d+)\]$`)

// Resolve walks the relative part of the path from root. Steps that don't
// resolve yield Missing. Negative indices count from the end of an array
func (p Path) Resolve(root Node) Node {
	if p.IsRoot() {
		return root
	}
	n := root
	for _, step := range splitSteps(p.relative) {
		n = resolveStep(n, step)
		if n.IsMissing() {
			return Missing
		}
	}
	return n
}

func resolveStep(n Node, step string) Node {
	var indices []int
	for {
		m := indexStep.FindStringSubmatchIndex(step)
		if m == nil {
			break
		}
		i, err := strconv.Atoi(step[m[2]:m[3]])
		if err != nil {
			return Missing
		}
		indices = append(indices, i)
		step = step[:m[0]]
	}

	if step != "" || len(indices) == 0 {
		n = n.Field(strings.ReplaceAll(step, `\.`, "."))
	}
	for j := len(indices) - 1; j >= 0; j-- {
		i := indices[j]
		if i < 0 {
			i += n.Len()
		}
		n = n.Element(i)
	}
	return n
}

// splitSteps splits on dots that aren't escaped with a backslash
func splitSteps(path string) []string {
	var (
		steps []string
		start int
	)
	for i := 0; i < len(path); i++ {
		if path[i] == '.' && i > 0 && path[i-1] != '\\' {
			steps = append(steps, path[start:i])
			start = i + 1
		}
	}
	return append(steps, path[start:])
}
