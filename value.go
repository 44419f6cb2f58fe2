package jsonunit

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnsupportedType is returned by FromValue for values that can't be
	// represented as a document tree
	ErrUnsupportedType = errors.New("unsupported value type")
	// ErrInvalidNumber is returned for malformed or non-finite numbers
	ErrInvalidNumber = errors.New("invalid number")
)

// roundTrip decodes numbers as json.Number so no precision is lost while
// converting arbitrary go values
var roundTrip = jsoniter.Config{UseNumber: true, EscapeHTML: false}.Froze()

// FromValue builds a Node from a tree of native go values, the kind produced by
// unmarshaling JSON into an interface{}. Object keys of go maps are sorted for
// a deterministic field order. Values of any other type (structs, typed maps &
// slices) are converted through a JSON encoding round trip
func FromValue(v interface{}) (Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Node:
		return x, nil
	case string:
		return NewString(x), nil
	case bool:
		return NewBool(x), nil
	case json.Number:
		return ParseNumber(x.String())
	case decimal.Decimal:
		return NewNumber(x), nil
	case *big.Int:
		if x == nil {
			return Null(), nil
		}
		return ParseNumber(x.String())
	case float64:
		return floatNode(x, 64)
	case float32:
		return floatNode(float64(x), 32)
	case int:
		return intNode(int64(x))
	case int8:
		return intNode(int64(x))
	case int16:
		return intNode(int64(x))
	case int32:
		return intNode(int64(x))
	case int64:
		return intNode(x)
	case uint:
		return uintNode(uint64(x))
	case uint8:
		return uintNode(uint64(x))
	case uint16:
		return uintNode(uint64(x))
	case uint32:
		return uintNode(uint64(x))
	case uint64:
		return uintNode(x)
	case []Field:
		fields := make([]Field, len(x))
		copy(fields, x)
		return NewObject(fields...), nil
	case []interface{}:
		elems := make([]Node, len(x))
		for i, e := range x {
			n, err := FromValue(e)
			if err != nil {
				return Missing, fmt.Errorf("[%d]: %w", i, err)
			}
			elems[i] = n
		}
		return NewArray(elems...), nil
	case map[string]interface{}:
		// gotta sort keys for a consistent field order :(
		names := make([]string, 0, len(x))
		for name := range x {
			names = append(names, name)
		}
		sort.Strings(names)

		fields := make([]Field, len(names))
		for i, name := range names {
			n, err := FromValue(x[name])
			if err != nil {
				return Missing, fmt.Errorf("%s: %w", name, err)
			}
			fields[i] = Field{Name: name, Value: n}
		}
		return NewObject(fields...), nil
	}

	data, err := roundTrip.Marshal(v)
	if err != nil {
		return Missing, fmt.Errorf("%w %T: %s", ErrUnsupportedType, v, err)
	}
	var generic interface{}
	if err := roundTrip.Unmarshal(data, &generic); err != nil {
		return Missing, fmt.Errorf("%w %T: %s", ErrUnsupportedType, v, err)
	}
	return FromValue(generic)
}

// MustFromValue is FromValue that panics on error, for literals in tests
func MustFromValue(v interface{}) Node {
	n, err := FromValue(v)
	if err != nil {
		panic(err)
	}
	return n
}

func floatNode(f float64, bitSize int) (Node, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing, fmt.Errorf("%w: %v", ErrInvalidNumber, f)
	}
	return ParseNumber(strconv.FormatFloat(f, 'f', -1, bitSize))
}

func intNode(i int64) (Node, error) {
	return Node{kind: KindNumber, num: decimal.NewFromInt(i), text: strconv.FormatInt(i, 10)}, nil
}

func uintNode(u uint64) (Node, error) {
	return ParseNumber(strconv.FormatUint(u, 10))
}
