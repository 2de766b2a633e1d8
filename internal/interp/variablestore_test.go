package interp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dreamberd-lang/dreamberd/internal/ast"
)

func TestDeclareEqualPriorityReplacesActiveEntry(t *testing.T) {
	s := NewVariableStore()
	s.Declare("x", ast.VarVar, Number{Value: 1}, 0, nil)
	s.Declare("x", ast.VarVar, Number{Value: 2}, 0, nil)

	v, ok := s.Get("x")
	require.True(t, ok)
	require.Equal(t, Number{Value: 2}, v)
}

func TestDeclareLowerPriorityIsRejected(t *testing.T) {
	s := NewVariableStore()
	s.Declare("x", ast.VarVar, Number{Value: 1}, 5, nil)
	s.Declare("x", ast.VarVar, Number{Value: 2}, 1, nil)

	v, ok := s.Get("x")
	require.True(t, ok)
	require.Equal(t, Number{Value: 1}, v)
}

func TestExpiredLifetimeFallsBackToShadowedEntry(t *testing.T) {
	s := NewVariableStore()
	s.Declare("x", ast.VarVar, Number{Value: 1}, 0, nil)
	s.Declare("x", ast.VarVar, Number{Value: 2}, 0, &LifetimeState{
		Kind:      ast.LifetimeLines,
		Value:     1,
		DeclIndex: 0,
	})

	v, ok := s.Get("x")
	require.True(t, ok)
	require.Equal(t, Number{Value: 2}, v, "the lifetime-backed redeclaration should be active")

	s.ExpireLifetimes(1, time.Time{})

	v, ok = s.Get("x")
	require.True(t, ok, "x should fall back to the shadowed entry, not disappear")
	require.Equal(t, Number{Value: 1}, v)
}

func TestExpireLifetimesRemovesNameWithNoFallback(t *testing.T) {
	s := NewVariableStore()
	s.Declare("x", ast.VarVar, Number{Value: 1}, 0, &LifetimeState{
		Kind:      ast.LifetimeLines,
		Value:     1,
		DeclIndex: 0,
	})

	s.ExpireLifetimes(1, time.Time{})

	_, ok := s.Get("x")
	require.False(t, ok)
}

func TestHigherPriorityRedeclareShadowsThenFallsBack(t *testing.T) {
	s := NewVariableStore()
	s.Declare("x", ast.VarVar, Number{Value: 1}, 0, nil)
	s.Declare("x", ast.VarVar, Number{Value: 2}, 5, &LifetimeState{
		Kind:      ast.LifetimeLines,
		Value:     1,
		DeclIndex: 0,
	})

	v, _ := s.Get("x")
	require.Equal(t, Number{Value: 2}, v)

	s.ExpireLifetimes(1, time.Time{})

	v, ok := s.Get("x")
	require.True(t, ok)
	require.Equal(t, Number{Value: 1}, v)

	// The fallen-back entry is the original priority-0 one: a further
	// declare at that same priority replaces it.
	s.Declare("x", ast.VarVar, Number{Value: 99}, 0, nil)
	v, _ = s.Get("x")
	require.Equal(t, Number{Value: 99}, v, "equal priority still replaces the active entry")
}
