package compiler

import "strings"

// The scan family detects patterns by substring inspection.

type scanVariable struct{}

func (scanVariable) IsMatch(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
}

func (m scanVariable) Extract(s string) (string, bool) {
	if !m.IsMatch(s) {
		return "", false
	}
	return strings.TrimSpace(s[1 : len(s)-1]), true
}

type scanReference struct{}

func (scanReference) IsMatch(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
}

func (m scanReference) Extract(s string) (string, bool) {
	if !m.IsMatch(s) {
		return "", false
	}
	return s[1 : len(s)-1], true
}

type scanDestructure struct{}

func (scanDestructure) IsMatch(s string) bool {
	return len(s) >= 4 && strings.HasPrefix(s, "[{") && strings.HasSuffix(s, "}]")
}

func (m scanDestructure) Extract(s string) (string, bool) {
	if !m.IsMatch(s) {
		return "", false
	}
	return strings.TrimSpace(s[2 : len(s)-2]), true
}
