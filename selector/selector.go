// Package selector narrows a document down to the part under test before it's
// compared, using JSONPath or jq expressions
package selector

import (
	"context"
	"math/big"

	"github.com/itchyny/gojq"
	"github.com/pkg/errors"
	"github.com/qri-io/jsonunit"
	"github.com/theory/jsonpath"
)

// ErrInvalidExpression is the cause of errors for expressions that don't
// parse or compile
var ErrInvalidExpression = errors.New("invalid expression")

// Selector picks nodes out of a document. A single match is returned as it
// is, several matches are returned as an array & no match is Missing
type Selector interface {
	Select(ctx context.Context, doc jsonunit.Node) (jsonunit.Node, error)
}

// JSONPath creates a selector from an RFC 9535 JSONPath query, eg:
// "$.orders[?@.total > 10].id"
//
// Documents are handed to the query engine as plain go values with float64
// numbers, selected numbers lose digits beyond float64 precision
func JSONPath(expr string) (Selector, error) {
	p, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidExpression, "jsonpath %q: %s", expr, err)
	}
	return jsonPathSelector{path: p}, nil
}

type jsonPathSelector struct {
	path *jsonpath.Path
}

func (s jsonPathSelector) Select(ctx context.Context, doc jsonunit.Node) (jsonunit.Node, error) {
	if err := ctx.Err(); err != nil {
		return jsonunit.Missing, err
	}
	return collect(s.path.Select(toValue(doc, floatNumber)))
}

// JQ creates a selector from a jq program, eg: ".items | map(.id)". Every
// value the program emits is a match. Integers are exact, other numbers are
// float64
func JQ(expr string) (Selector, error) {
	q, err := gojq.Parse(expr)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidExpression, "jq %q: %s", expr, err)
	}
	code, err := gojq.Compile(q)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidExpression, "jq %q: %s", expr, err)
	}
	return jqSelector{code: code}, nil
}

type jqSelector struct {
	code *gojq.Code
}

func (s jqSelector) Select(ctx context.Context, doc jsonunit.Node) (jsonunit.Node, error) {
	var results []interface{}
	iter := s.code.RunWithContext(ctx, toValue(doc, jqNumber))
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			if herr, ok := err.(*gojq.HaltError); ok && herr.Value() == nil {
				break
			}
			return jsonunit.Missing, errors.Wrap(err, "running jq")
		}
		results = append(results, v)
	}
	return collect(results)
}

func collect(results []interface{}) (jsonunit.Node, error) {
	switch len(results) {
	case 0:
		return jsonunit.Missing, nil
	case 1:
		n, err := jsonunit.FromValue(results[0])
		return n, errors.Wrap(err, "converting selection")
	}
	n, err := jsonunit.FromValue(results)
	return n, errors.Wrap(err, "converting selection")
}

// toValue converts a node to the generic values query engines work on
func toValue(n jsonunit.Node, number func(jsonunit.Node) interface{}) interface{} {
	switch n.Kind() {
	case jsonunit.KindObject:
		m := make(map[string]interface{}, n.Len())
		for _, f := range n.Fields() {
			m[f.Name] = toValue(f.Value, number)
		}
		return m
	case jsonunit.KindArray:
		s := make([]interface{}, n.Len())
		for i, e := range n.Elements() {
			s[i] = toValue(e, number)
		}
		return s
	case jsonunit.KindString:
		return n.Text()
	case jsonunit.KindNumber:
		return number(n)
	case jsonunit.KindBoolean:
		return n.Bool()
	}
	return nil
}

func floatNumber(n jsonunit.Node) interface{} {
	f, _ := n.Decimal().Float64()
	return f
}

// jqNumber keeps integers exact: int when it fits, *big.Int otherwise
func jqNumber(n jsonunit.Node) interface{} {
	d := n.Decimal()
	if !d.IsInteger() {
		return floatNumber(n)
	}
	bi := d.BigInt()
	if bi.IsInt64() && int64(int(bi.Int64())) == bi.Int64() {
		return int(bi.Int64())
	}
	return new(big.Int).Set(bi)
}
