// Package yamlnode reads YAML documents into jsonunit document trees, so
// expected documents can be written in YAML and compared with JSON
package yamlnode

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/qri-io/jsonunit"
)

// ErrEmpty is returned for input holding no document
var ErrEmpty = errors.New("no YAML document")

// Parse reads the first document of a YAML stream. Mapping order is kept,
// mapping keys that aren't strings are formatted with fmt. Numbers are read
// by the YAML decoder, so their literal form isn't kept: 1.50 becomes 1.5
func Parse(data []byte) (jsonunit.Node, error) {
	return ParseReader(bytes.NewReader(data))
}

// ParseReader is Parse for an io.Reader
func ParseReader(r io.Reader) (jsonunit.Node, error) {
	var v interface{}
	if err := yaml.NewDecoder(r, yaml.UseOrderedMap()).Decode(&v); err != nil {
		if err == io.EOF {
			return jsonunit.Missing, ErrEmpty
		}
		return jsonunit.Missing, errors.Wrap(err, "decoding YAML")
	}
	return convert(v)
}

func convert(v interface{}) (jsonunit.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		fields := make([]jsonunit.Field, 0, len(x))
		for _, item := range x {
			n, err := convert(item.Value)
			if err != nil {
				return jsonunit.Missing, errors.Wrapf(err, "key %v", item.Key)
			}
			fields = append(fields, jsonunit.Field{Name: keyString(item.Key), Value: n})
		}
		return jsonunit.NewObject(fields...), nil
	case map[interface{}]interface{}:
		keys := make([]string, 0, len(x))
		values := make(map[string]interface{}, len(x))
		for k, val := range x {
			ks := keyString(k)
			keys = append(keys, ks)
			values[ks] = val
		}
		sort.Strings(keys)
		fields := make([]jsonunit.Field, 0, len(keys))
		for _, k := range keys {
			n, err := convert(values[k])
			if err != nil {
				return jsonunit.Missing, errors.Wrapf(err, "key %s", k)
			}
			fields = append(fields, jsonunit.Field{Name: k, Value: n})
		}
		return jsonunit.NewObject(fields...), nil
	case []interface{}:
		elems := make([]jsonunit.Node, len(x))
		for i, e := range x {
			n, err := convert(e)
			if err != nil {
				return jsonunit.Missing, errors.Wrapf(err, "index %d", i)
			}
			elems[i] = n
		}
		return jsonunit.NewArray(elems...), nil
	case time.Time:
		return jsonunit.NewString(x.Format(time.RFC3339Nano)), nil
	}

	n, err := jsonunit.FromValue(v)
	return n, errors.Wrap(err, "converting YAML value")
}

func keyString(k interface{}) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
