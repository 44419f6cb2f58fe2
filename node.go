package jsonunit

import (
	"fmt"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

// Kind defines all of the atoms in our universe, or the kinds of values we
// will encounter while comparing documents
type Kind uint8

const (
	// KindMissing is the kind of the Missing sentinel. It's the zero value so
	// an uninitialized Node is Missing
	KindMissing Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBoolean
	KindNull
)

var kindNames = [...]string{
	KindMissing: "missing",
	KindObject:  "object",
	KindArray:   "array",
	KindString:  "string",
	KindNumber:  "number",
	KindBoolean: "boolean",
	KindNull:    "null",
}

// String implements the fmt.Stringer interface
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Field is a named member of an object node
type Field struct {
	Name  string
	Value Node
}

// Node is an immutable value in a document tree. Nodes are created by
// adapters and never mutated by the comparison engine
type Node struct {
	kind Kind

	fields []Field
	index  map[string]int
	elems  []Node

	// string value, or the literal text of a number
	text string
	num  decimal.Decimal
	b    bool
}

// Missing is returned by lookups that don't resolve to a value. It carries no
// payload
var Missing Node

// NewObject creates an object node. Field order is kept, a repeated name
// replaces the earlier value in place. Fields with a Missing value are dropped
func NewObject(fields ...Field) Node {
	n := Node{
		kind:   KindObject,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f.Value.IsMissing() {
			continue
		}
		if i, ok := n.index[f.Name]; ok {
			n.fields[i].Value = f.Value
			continue
		}
		n.index[f.Name] = len(n.fields)
		n.fields = append(n.fields, f)
	}
	return n
}

// NewArray creates an array node. Missing elements are stored as null
func NewArray(elems ...Node) Node {
	n := Node{kind: KindArray, elems: make([]Node, len(elems))}
	for i, e := range elems {
		if e.IsMissing() {
			e = Null()
		}
		n.elems[i] = e
	}
	return n
}

// NewString creates a string node
func NewString(s string) Node {
	return Node{kind: KindString, text: s}
}

// NewNumber creates a number node from a decimal, keeping its scale
func NewNumber(d decimal.Decimal) Node {
	return Node{kind: KindNumber, num: d, text: formatDecimal(d)}
}

// ParseNumber creates a number node from a numeric literal. The literal is
// kept for rendering, so "1.50" prints as 1.50
func ParseNumber(literal string) (Node, error) {
	d, err := decimal.NewFromString(literal)
	if err != nil {
		return Missing, fmt.Errorf("%w: %q", ErrInvalidNumber, literal)
	}
	return Node{kind: KindNumber, num: d, text: literal}, nil
}

// NewBool creates a boolean node
func NewBool(b bool) Node {
	return Node{kind: KindBoolean, b: b}
}

// Null returns a null node
func Null() Node {
	return Node{kind: KindNull}
}

func formatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// Kind reports which variant this node holds
func (n Node) Kind() Kind { return n.kind }

// IsMissing is true for the Missing sentinel
func (n Node) IsMissing() bool { return n.kind == KindMissing }

// Text returns the textual form of a scalar: the string itself, a number's
// literal, "true", "false" or "null". Containers and Missing return ""
func (n Node) Text() string {
	switch n.kind {
	case KindString, KindNumber:
		return n.text
	case KindBoolean:
		if n.b {
			return "true"
		}
		return "false"
	case KindNull:
		return "null"
	}
	return ""
}

// Decimal returns the value of a number node, zero for every other kind
func (n Node) Decimal() decimal.Decimal { return n.num }

// Bool returns the value of a boolean node
func (n Node) Bool() bool { return n.b }

// IsIntegral is true for number nodes written without a fraction or exponent
func (n Node) IsIntegral() bool {
	return n.kind == KindNumber && !strings.ContainsAny(n.text, ".eE")
}

// Len is the number of fields of an object or elements of an array
func (n Node) Len() int {
	switch n.kind {
	case KindObject:
		return len(n.fields)
	case KindArray:
		return len(n.elems)
	}
	return 0
}

// Field looks up an object member by name
func (n Node) Field(name string) Node {
	if n.kind != KindObject {
		return Missing
	}
	i, ok := n.index[name]
	if !ok {
		return Missing
	}
	return n.fields[i].Value
}

// Element looks up an array element by index
func (n Node) Element(i int) Node {
	if n.kind != KindArray || i < 0 || i >= len(n.elems) {
		return Missing
	}
	return n.elems[i]
}

// Fields lists object members in document order. The returned slice is shared
// and must not be modified
func (n Node) Fields() []Field {
	if n.kind != KindObject {
		return nil
	}
	return n.fields
}

// Elements lists array elements. The returned slice is shared and must not be
// modified
func (n Node) Elements() []Node {
	if n.kind != KindArray {
		return nil
	}
	return n.elems
}

// Keys returns the sorted member names of an object
func (n Node) Keys() []string {
	keys := make([]string, 0, len(n.fields))
	for _, f := range n.Fields() {
		keys = append(keys, f.Name)
	}
	sort.Strings(keys)
	return keys
}

// Value converts the node to native go values:
// map[string]interface{}, []interface{}, decimal.Decimal, string, bool or nil
func (n Node) Value() interface{} {
	switch n.kind {
	case KindObject:
		m := make(map[string]interface{}, len(n.fields))
		for _, f := range n.fields {
			m[f.Name] = f.Value.Value()
		}
		return m
	case KindArray:
		s := make([]interface{}, len(n.elems))
		for i, e := range n.elems {
			s[i] = e.Value()
		}
		return s
	case KindString:
		return n.text
	case KindNumber:
		return n.num
	case KindBoolean:
		return n.b
	}
	return nil
}

// Equal reports exact equality. Object member order is irrelevant, numbers
// must agree in value & scale
func (n Node) Equal(o Node) bool {
	if n.kind != o.kind {
		return false
	}
	switch n.kind {
	case KindObject:
		if len(n.fields) != len(o.fields) {
			return false
		}
		for _, f := range n.fields {
			if !f.Value.Equal(o.Field(f.Name)) {
				return false
			}
		}
		return true
	case KindArray:
		if len(n.elems) != len(o.elems) {
			return false
		}
		for i := range n.elems {
			if !n.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	case KindString:
		return n.text == o.text
	case KindNumber:
		return decimalsEqual(n.num, o.num)
	case KindBoolean:
		return n.b == o.b
	}
	return true
}

func decimalsEqual(a, b decimal.Decimal) bool {
	return a.Exponent() == b.Exponent() && a.Equal(b)
}

// nodeJSON renders nodes without escaping HTML characters
var nodeJSON = jsoniter.Config{EscapeHTML: false}.Froze()

// String renders the node as compact JSON. Missing renders as an empty string
func (n Node) String() string {
	if n.IsMissing() {
		return ""
	}
	stream := jsoniter.NewStream(nodeJSON, nil, 64)
	n.writeTo(stream)
	return string(stream.Buffer())
}

// MarshalJSON implements the json.Marshaler interface
func (n Node) MarshalJSON() ([]byte, error) {
	stream := jsoniter.NewStream(nodeJSON, nil, 64)
	n.writeTo(stream)
	return stream.Buffer(), stream.Error
}

func (n Node) writeTo(stream *jsoniter.Stream) {
	switch n.kind {
	case KindObject:
		stream.WriteObjectStart()
		for i, f := range n.fields {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(f.Name)
			f.Value.writeTo(stream)
		}
		stream.WriteObjectEnd()
	case KindArray:
		stream.WriteArrayStart()
		for i, e := range n.elems {
			if i > 0 {
				stream.WriteMore()
			}
			e.writeTo(stream)
		}
		stream.WriteArrayEnd()
	case KindString:
		stream.WriteString(n.text)
	case KindNumber:
		stream.WriteRaw(n.text)
	case KindBoolean:
		stream.WriteBool(n.b)
	default:
		stream.WriteNil()
	}
}
