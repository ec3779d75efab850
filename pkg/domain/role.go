package domain

import "strings"

// Role names the grammatical slot a sentence fragment binds to. A single
// tagged enum replaces per-role capability interfaces: a verb descriptor
// declares a set of required roles plus one conversion function per role,
// looked up by tag.
type Role uint8

const (
	RoleWhat Role = iota
	RoleFrom
	RoleTo
	RoleUsing
)

// BindOrder is the fixed order in which the dispatcher attempts to bind
// roles. Roles a candidate does not declare are skipped.
var BindOrder = [...]Role{RoleWhat, RoleFrom, RoleTo, RoleUsing}

// Keyword returns the preposition keyword introducing the role in a
// sentence. RoleWhat has no keyword: its span directly follows the verb.
func (r Role) Keyword() string {
	switch r {
	case RoleFrom:
		return "FROM"
	case RoleTo:
		return "TO"
	case RoleUsing:
		return "USING"
	default:
		return ""
	}
}

func (r Role) String() string {
	switch r {
	case RoleWhat:
		return "WHAT"
	case RoleFrom:
		return "FROM"
	case RoleTo:
		return "TO"
	case RoleUsing:
		return "USING"
	default:
		return "UNKNOWN"
	}
}

// RoleSet is a bitmask of roles. The zero value is the empty set.
type RoleSet uint8

// NewRoleSet builds a set from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s |= 1 << r
	}
	return s
}

// Has reports whether the role is in the set.
func (s RoleSet) Has(r Role) bool {
	return s&(1<<r) != 0
}

// Roles returns the members in bind order.
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, len(BindOrder))
	for _, r := range BindOrder {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

// Shape returns a stable key describing the set, e.g. "WHAT+FROM". Usage
// candidates are grouped under their verb's shape.
func (s RoleSet) Shape() string {
	parts := make([]string, 0, len(BindOrder))
	for _, r := range s.Roles() {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, "+")
}
