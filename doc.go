// Package jsonunit is a structural comparator for JSON-like documents. It's
// intended to be the verification step of automated tests: one document is the
// expected value, the other the actual value, and the result is either
// "similar" or a list of located differences
//
// Comparing structured data carries more nuance than comparing text. Two
// documents can be "equal enough" while differing in key order, array order,
// extra fields or numeric precision. jsonunit makes each of those relaxations
// an Option, and lets options be switched on or off for parts of a document
// with path-scoped overrides:
//
//   cfg := jsonunit.Empty().
//     WithOptions(jsonunit.IgnoringArrayOrder).
//     When(jsonunit.Paths("items[*].tags").Except(jsonunit.IgnoringArrayOrder))
//
// Instead of operating on JSON text directly, jsonunit operates on Node trees.
// A Node is an immutable tagged union over object, array, string, number,
// boolean and null values, plus the Missing sentinel returned by failed
// lookups. Nodes are built by adapters (see the jsonnode and yamlnode
// packages) or from native go values with FromValue:
//   map[string]interface{}
//   []interface{}
//   string, any go number, json.Number, decimal.Decimal, bool, nil
//
// Numbers are arbitrary-precision decimals that keep their scale, so 1 and 1.0
// are different values unless a tolerance is configured.
//
// Expected documents may contain placeholders in string values:
//   ${json-unit.ignore}            ignore the value at this position
//   ${json-unit.ignore-element}    ignore the value, and allow it to be absent
//   ${json-unit.any-number}        any number (also any-boolean, any-string)
//   ${json-unit.regex}PATTERN      a string fully matching PATTERN
//   ${json-unit.matches:NAME}PARAM a value accepted by the registered matcher
// the "#{" sigil can be used in place of "${" everywhere
//
// Arrays compared with IgnoringArrayOrder are reconciled by a matching
// algorithm that tolerates non-transitive equality: placeholders can match
// values that don't match each other, so arrays are never sorted & compared.
package jsonunit
