package compiler

import (
	"regexp"
	"strings"
)

// The pattern family implements the same capabilities on the regexp engine.
// (?s) lets payloads span embedded newlines, matching the scan family.

var (
	patternVariable    = regexMatcher{re: regexp.MustCompile(`(?s)^\[(.*)\]$`), trim: true}
	patternReference   = regexMatcher{re: regexp.MustCompile(`(?s)^\{(.*)\}$`)}
	patternDestructure = regexMatcher{re: regexp.MustCompile(`(?s)^\[\{(.*)\}\]$`), trim: true}
)

type regexMatcher struct {
	re   *regexp.Regexp
	trim bool
}

func (m regexMatcher) IsMatch(s string) bool {
	return m.re.MatchString(s)
}

func (m regexMatcher) Extract(s string) (string, bool) {
	groups := m.re.FindStringSubmatch(s)
	if groups == nil {
		return "", false
	}
	payload := groups[1]
	if m.trim {
		payload = strings.TrimSpace(payload)
	}
	return payload, true
}
