// Package jsonnode reads JSON text into jsonunit document trees. Numbers keep
// their literal text and object members keep their document order
package jsonnode

import (
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/qri-io/jsonunit"
)

// ErrSyntax is the cause of every error returned for malformed input
var ErrSyntax = errors.New("invalid JSON")

var config = jsoniter.Config{UseNumber: true}.Froze()

// Parse reads a single JSON value. Content after the value is an error,
// repeated object keys keep the last value
func Parse(data []byte) (jsonunit.Node, error) {
	return parse(jsoniter.ParseBytes(config, data))
}

// ParseString is Parse for a string
func ParseString(s string) (jsonunit.Node, error) {
	return parse(jsoniter.ParseString(config, s))
}

// ParseReader reads a single JSON value from r
func ParseReader(r io.Reader) (jsonunit.Node, error) {
	return parse(jsoniter.Parse(config, r, 4096))
}

// ParseLenient reads s as JSON, falling back to a string node holding the
// trimmed text when s isn't JSON. Text starting like an object or an array
// must be valid, so truncated documents still fail
func ParseLenient(s string) (jsonunit.Node, error) {
	n, err := ParseString(s)
	if err == nil {
		return n, nil
	}
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return jsonunit.Missing, err
	}
	return jsonunit.NewString(trimmed), nil
}

// MustParse is ParseString that panics on error, for literals in tests
func MustParse(s string) jsonunit.Node {
	n, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return n
}

func parse(iter *jsoniter.Iterator) (jsonunit.Node, error) {
	if iter.WhatIsNext() == jsoniter.InvalidValue && iter.Error == io.EOF {
		return jsonunit.Missing, errors.Wrap(ErrSyntax, "empty input")
	}

	n := readValue(iter)
	if iter.Error != nil && iter.Error != io.EOF {
		return jsonunit.Missing, errors.Wrap(ErrSyntax, iter.Error.Error())
	}

	// anything but whitespace after the value is an error
	if iter.Error == nil {
		iter.WhatIsNext()
		if iter.Error != io.EOF {
			return jsonunit.Missing, errors.Wrap(ErrSyntax, "unexpected content after the value")
		}
	}
	return n, nil
}

func readValue(iter *jsoniter.Iterator) jsonunit.Node {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		var fields []jsonunit.Field
		iter.ReadObjectCB(func(it *jsoniter.Iterator, name string) bool {
			fields = append(fields, jsonunit.Field{Name: name, Value: readValue(it)})
			return ok(it)
		})
		return jsonunit.NewObject(fields...)
	case jsoniter.ArrayValue:
		var elems []jsonunit.Node
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			elems = append(elems, readValue(it))
			return ok(it)
		})
		return jsonunit.NewArray(elems...)
	case jsoniter.StringValue:
		return jsonunit.NewString(iter.ReadString())
	case jsoniter.NumberValue:
		lit := iter.ReadNumber()
		n, err := jsonunit.ParseNumber(string(lit))
		if err != nil {
			iter.ReportError("ReadNumber", err.Error())
			return jsonunit.Missing
		}
		return n
	case jsoniter.BoolValue:
		return jsonunit.NewBool(iter.ReadBool())
	case jsoniter.NilValue:
		iter.ReadNil()
		return jsonunit.Null()
	}
	iter.ReportError("ReadValue", "expected a JSON value")
	return jsonunit.Missing
}

// ok lets container reads continue after a value ending at the end of input,
// the container then reports the missing closing token
func ok(iter *jsoniter.Iterator) bool {
	return iter.Error == nil || iter.Error == io.EOF
}
