package jsonunit

import (
	"regexp"
	"time"

	"github.com/dlclark/regexp2"
	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	ignoreElementPlaceholder = regexp.MustCompile(`^[$#]\{json-unit\.ignore-element\}$`)
	anyNumberPlaceholder     = regexp.MustCompile(`^[$#]\{json-unit\.any-number\}$`)
	anyBooleanPlaceholder    = regexp.MustCompile(`^[$#]\{json-unit\.any-boolean\}$`)
	anyStringPlaceholder     = regexp.MustCompile(`^[$#]\{json-unit\.any-string\}$`)
	regexPlaceholder         = regexp.MustCompile(`^[$#]\{json-unit\.regex\}`)
	matcherPlaceholder       = regexp.MustCompile(`(?s)^[$#]\{json-unit\.matches:([^}]*)\}(.*)$`)
)

// anyPlaceholders pairs "any" placeholders with the kind they accept & the
// name used in reports
var anyPlaceholders = []struct {
	re   *regexp.Regexp
	kind Kind
	name string
}{
	{anyNumberPlaceholder, KindNumber, "a number"},
	{anyBooleanPlaceholder, KindBoolean, "a boolean"},
	{anyStringPlaceholder, KindString, "a string"},
}

func isIgnoreElement(n Node) bool {
	return n.Kind() == KindString && ignoreElementPlaceholder.MatchString(n.Text())
}

// regexPattern returns the pattern of a "${json-unit.regex}" placeholder
func regexPattern(s string) (string, bool) {
	loc := regexPlaceholder.FindStringIndex(s)
	if loc == nil {
		return "", false
	}
	return s[loc[1]:], true
}

// matcherReference splits a "${json-unit.matches:NAME}PARAM" placeholder
func matcherReference(s string) (name, param string, ok bool) {
	m := matcherPlaceholder.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// RegexTimeout bounds a single regex placeholder match
var RegexTimeout = 5 * time.Second

// compiled regex placeholder patterns, shared by all comparisons
var patternCache, _ = lru.New[string, *regexp2.Regexp](512)

// fullMatch reports whether s matches pattern in its entirety
func fullMatch(pattern, s string) (bool, error) {
	re, ok := patternCache.Get(pattern)
	if !ok {
		var err error
		if re, err = regexp2.Compile(`\A(?:`+pattern+`)\z`, regexp2.None); err != nil {
			return false, err
		}
		re.MatchTimeout = RegexTimeout
		patternCache.Add(pattern, re)
	}
	return re.MatchString(s)
}
