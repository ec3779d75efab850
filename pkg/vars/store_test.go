package vars_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plainspeak/plainspeak/pkg/domain"
	"github.com/plainspeak/plainspeak/pkg/vars"
)

func TestStore_RegisterAndResolve(t *testing.T) {
	s := vars.NewStore()
	s.Register("Text", "hello")

	got, err := vars.Resolve[string](s, "Text")
	require.NoError(t, err)
	require.Equal(t, "hello", got)

	// Case-insensitive lookup, bracketed or bare.
	got, err = vars.Resolve[string](s, "text")
	require.NoError(t, err)
	require.Equal(t, "hello", got)

	got, err = vars.Resolve[string](s, "[TEXT]")
	require.NoError(t, err)
	require.Equal(t, "hello", got)
}

func TestStore_ResolveMissing(t *testing.T) {
	s := vars.NewStore()
	_, err := vars.Resolve[string](s, "[nothing]")
	require.ErrorIs(t, err, domain.ErrVariableNotFound)
}

func TestStore_ResolveWrongType(t *testing.T) {
	// A type mismatch is "not found", never a coerced or zero value.
	s := vars.NewStore()
	s.Register("count", 42)

	_, err := vars.Resolve[string](s, "count")
	require.ErrorIs(t, err, domain.ErrVariableNotFound)

	n, err := vars.Resolve[int](s, "count")
	require.NoError(t, err)
	require.Equal(t, 42, n)
}

func TestStore_RegisterReplaces(t *testing.T) {
	s := vars.NewStore()
	s.Register("x", "first")
	s.Register("X", 2)

	v, ok := s.Lookup("x")
	require.True(t, ok)
	require.Equal(t, 2, v)
	require.Equal(t, []string{"X"}, s.Names())
}

func TestStore_Destructure(t *testing.T) {
	type person struct {
		Name string
		Age  int
	}

	t.Run("from map", func(t *testing.T) {
		s := vars.NewStore()
		s.Register("doc", map[string]any{"name": "Ada", "age": 36, "city": "London"})

		p, err := vars.Resolve[person](s, "[{name, age}]")
		require.NoError(t, err)
		require.Equal(t, person{Name: "Ada", Age: 36}, p)
	})

	t.Run("from JSON string", func(t *testing.T) {
		s := vars.NewStore()
		s.Register("doc", `{"Name":"Ada","Age":36}`)

		p, err := vars.Resolve[person](s, "[{name,age}]")
		require.NoError(t, err)
		require.Equal(t, person{Name: "Ada", Age: 36}, p)
	})

	t.Run("missing property", func(t *testing.T) {
		s := vars.NewStore()
		s.Register("doc", map[string]any{"name": "Ada"})

		_, err := vars.Resolve[person](s, "[{name,age}]")
		require.ErrorIs(t, err, domain.ErrVariableNotFound)
	})

	t.Run("skips non-documents", func(t *testing.T) {
		s := vars.NewStore()
		s.Register("a", 1)
		s.Register("b", "not json")
		s.Register("c", map[string]any{"name": "Ada", "age": 36})

		p, err := vars.Resolve[person](s, "[{name,age}]")
		require.NoError(t, err)
		require.Equal(t, "Ada", p.Name)
	})
}

func TestStore_SnapshotRestore(t *testing.T) {
	s := vars.NewStore()
	s.Register("a", "1")
	s.Register("B", 2)

	snap := s.Snapshot()
	require.Equal(t, map[string]any{"a": "1", "B": 2}, snap)

	restored := vars.NewStore()
	restored.Restore(snap)
	require.Equal(t, []string{"B", "a"}, restored.Names())

	v, err := vars.Resolve[int](restored, "b")
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestStore_Clear(t *testing.T) {
	s := vars.NewStore()
	s.Register("a", 1)
	s.Clear()
	require.False(t, s.IsRegistered("a"))
	require.Empty(t, s.Names())
}
