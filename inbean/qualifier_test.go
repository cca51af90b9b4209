package inbean

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// NewMapQualifiers / Provide
// -----------------------------------------------------------------------------

// TestNewMapQualifiers_Empty verifies NewMapQualifiers initializes an empty registry.
func TestNewMapQualifiers_Empty(t *testing.T) {
	t.Parallel()

	r := NewMapQualifiers()
	require.NotNil(t, r)
	require.NotNil(t, r.items)
	assert.Len(t, r.items, 0)
}

// TestProvide_ChainsAndStores verifies Provide stores values and returns the same registry.
func TestProvide_ChainsAndStores(t *testing.T) {
	t.Parallel()

	r := NewMapQualifiers()
	ret := r.Provide("A.x", "one").Provide("B.y", "two")
	require.Same(t, r, ret)

	got, ok := r.Get("A.x")
	require.True(t, ok)
	assert.Equal(t, Qualifier("one"), got)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

// TestProvide_ZeroValueRegistry verifies a zero-value registry accepts entries.
func TestProvide_ZeroValueRegistry(t *testing.T) {
	t.Parallel()

	var r MapQualifiers
	require.NotPanics(t, func() { r.Provide("A.x", "one") })

	got, ok := r.Get("A.x")
	require.True(t, ok)
	assert.Equal(t, Qualifier("one"), got)

	q, ok, err := r.Qualifier(&Class{Name: "A"}, Field{Name: "x"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Qualifier("one"), q)
}

//
// -----------------------------------------------------------------------------
// Qualifier lookup
// -----------------------------------------------------------------------------

// TestQualifier_RegistryThenMarker verifies registry entries win and the field marker is the fallback.
func TestQualifier_RegistryThenMarker(t *testing.T) {
	t.Parallel()

	owner := &Class{Name: "Fixture"}
	r := NewMapQualifiers().Provide("Fixture.Repo", "db").Provide("Fixture.Cleared", "")

	q, ok, err := r.Qualifier(owner, Field{Name: "Repo", Qualifier: "marker"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Qualifier("db"), q)

	q, ok, err = r.Qualifier(owner, Field{Name: "Clock", Qualifier: "utc"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Qualifier("utc"), q)

	q, ok, err = r.Qualifier(owner, Field{Name: "Cleared", Qualifier: "marker"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Qualifier(""), q)
}

// TestQualifier_RecoversFromPanic verifies lookups on a nil registry become errors.
func TestQualifier_RecoversFromPanic(t *testing.T) {
	t.Parallel()

	var r *MapQualifiers

	q, ok, err := r.Qualifier(nil, Field{Name: "Repo"})
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, Qualifier(""), q)
	assert.True(t, errors.Is(err, ErrQualifierPanic), "expected ErrQualifierPanic wrapping, got: %v", err)
}

// TestQualifierKey verifies keys fall back to the bare field name without an owner.
func TestQualifierKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Repo", QualifierKey(nil, Field{Name: "Repo"}))
	assert.Equal(t, "Fixture.Repo", QualifierKey(&Class{Name: "Fixture"}, Field{Name: "Repo"}))
}

//
// -----------------------------------------------------------------------------
// MustGet
// -----------------------------------------------------------------------------

// TestMustGet_Present verifies MustGet returns the stored qualifier.
func TestMustGet_Present(t *testing.T) {
	t.Parallel()

	r := NewMapQualifiers().Provide("k", "v")
	assert.Equal(t, Qualifier("v"), r.MustGet("k"))
}

// TestMustGet_Missing verifies MustGet panics with a helpful message when the key is missing.
func TestMustGet_Missing(t *testing.T) {
	t.Parallel()

	r := NewMapQualifiers()
	require.PanicsWithError(t, `inbean: qualifier registry missing key "missing"`, func() {
		_ = r.MustGet("missing")
	})
}
