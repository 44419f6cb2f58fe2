package jsonunit

import (
	"regexp"
	"strings"
)

// PathMatcher tests full paths against one or more path patterns
type PathMatcher interface {
	Matches(path string) bool
}

const wildcardIndex = "[*]"

// NewPathMatcher creates a matcher that matches when any of patterns does.
// A pattern containing "[*]" matches any array index at that position, every
// other pattern must equal the path. No patterns match nothing
func NewPathMatcher(patterns ...string) PathMatcher {
	ms := make(aggregatePathMatcher, 0, len(patterns))
	for _, p := range patterns {
		if strings.Contains(p, wildcardIndex) {
			ms = append(ms, newWildcardPathMatcher(p))
		} else {
			ms = append(ms, exactPathMatcher(p))
		}
	}
	return ms
}

type exactPathMatcher string

func (m exactPathMatcher) Matches(path string) bool { return string(m) == path }

type wildcardPathMatcher struct {
	re *regexp.Regexp
}

func newWildcardPathMatcher(pattern string) wildcardPathMatcher {
	parts := strings.Split(pattern, wildcardIndex)
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	return wildcardPathMatcher{
		re: regexp.MustCompile(`^` + strings.Join(parts, `\[\d+\]`) + `$`),
	}
}

func (m wildcardPathMatcher) Matches(path string) bool { return m.re.MatchString(path) }

type aggregatePathMatcher []PathMatcher

func (ms aggregatePathMatcher) Matches(path string) bool {
	for _, m := range ms {
		if m.Matches(path) {
			return true
		}
	}
	return false
}
