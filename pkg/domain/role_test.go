package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plainspeak/plainspeak/pkg/domain"
)

func TestRoleSet(t *testing.T) {
	s := domain.NewRoleSet(domain.RoleWhat, domain.RoleFrom)

	require.True(t, s.Has(domain.RoleWhat))
	require.True(t, s.Has(domain.RoleFrom))
	require.False(t, s.Has(domain.RoleTo))
	require.False(t, s.Has(domain.RoleUsing))

	require.Equal(t, []domain.Role{domain.RoleWhat, domain.RoleFrom}, s.Roles())
}

func TestRoleSet_Shape(t *testing.T) {
	full := domain.NewRoleSet(domain.RoleWhat, domain.RoleFrom, domain.RoleTo, domain.RoleUsing)
	require.Equal(t, "WHAT+FROM+TO+USING", full.Shape())

	require.Equal(t, "WHAT", domain.NewRoleSet(domain.RoleWhat).Shape())
}

func TestKeyword_Matches(t *testing.T) {
	k := &domain.Keyword{Name: "GET", Synonyms: []string{"READ", "LOAD"}}

	require.True(t, k.Matches("GET"))
	require.True(t, k.Matches("get"))
	require.True(t, k.Matches("Read"))
	require.True(t, k.Matches("load"))
	require.False(t, k.Matches("FETCH"))
	require.False(t, k.Matches(""))
}
