package inbean

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureField(f Field) FieldDescriptor {
	return FieldDescriptor{Field: f, Owner: &Class{Name: "Fixture"}}
}

func resolved(t *testing.T, r TypeRef) ResolvedType {
	t.Helper()
	rt, ok := Resolve(r)
	require.True(t, ok)
	return rt
}

// TestBuilder_MockDefaults verifies mock definitions carry the fixed mock attributes.
func TestBuilder_MockDefaults(t *testing.T) {
	t.Parallel()

	fd := fixtureField(Field{Name: "Repo", Type: Named("pkg.Repo"), Qualifier: "primary"})
	typ := resolved(t, fd.Field.Type)

	def, target, err := Builder{}.Mock(fd, Request{Target: " orderService ", Name: "repoBean"}, typ)
	require.NoError(t, err)

	assert.Equal(t, Definition{
		Kind:      KindMock,
		Name:      "Repo",
		Type:      typ,
		Reset:     ResetAfter,
		Qualifier: "primary",
	}, def)
	assert.Equal(t, 0, def.ExtraInterfaces.Len())
	assert.False(t, def.Serializable)
	assert.True(t, def.IsMock())
	assert.Equal(t, Target{Bean: "orderService", Name: "repoBean"}, target)
	assert.True(t, target.HasName())
}

// TestBuilder_SpyDefaults verifies spies always proxy the real target.
func TestBuilder_SpyDefaults(t *testing.T) {
	t.Parallel()

	fd := fixtureField(Field{Name: "Clock", Type: Named("pkg.Clock")})
	typ := resolved(t, fd.Field.Type)

	def, target, err := Builder{}.Spy(fd, Request{Target: "orderService", Name: "   "}, typ)
	require.NoError(t, err)

	assert.True(t, def.IsSpy())
	assert.True(t, def.ProxyTargetAware)
	assert.Equal(t, ResetAfter, def.Reset)
	assert.Equal(t, Qualifier(""), def.Qualifier)
	assert.False(t, target.HasName())
	assert.Equal(t, "orderService", target.String())
}

// TestBuilder_BlankTarget verifies a blank bean reference is rejected with field context.
func TestBuilder_BlankTarget(t *testing.T) {
	t.Parallel()

	fd := fixtureField(Field{Name: "Repo", Type: Named("pkg.Repo")})
	_, _, err := Builder{}.Mock(fd, Request{Target: "\t"}, resolved(t, fd.Field.Type))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTarget)
	assert.EqualError(t, err, `inbean: blank target bean reference on mock request of field "Fixture.Repo"`)
}

// TestBuilder_BuildRequiresTypes verifies an empty resolution is a configuration error.
func TestBuilder_BuildRequiresTypes(t *testing.T) {
	t.Parallel()

	fd := fixtureField(Field{Name: "Repo", Type: Param("T")})
	_, err := Builder{}.Build(KindSpy, fd, Request{Target: "svc"}, nil)

	var unresolvable UnresolvableTypeError
	require.True(t, errors.As(err, &unresolvable))
	assert.Equal(t, KindSpy, unresolvable.Kind)
	assert.Equal(t, "Fixture.Repo", unresolvable.Field)
	assert.Equal(t, "T", unresolvable.Type)
	assert.Contains(t, err.Error(), "to spy from field")
}

// TestBuilder_BuildOneEntryPerType verifies every candidate type yields an entry for the same target.
func TestBuilder_BuildOneEntryPerType(t *testing.T) {
	t.Parallel()

	fd := fixtureField(Field{Name: "Repo", Type: Param("T")})
	types := []ResolvedType{resolved(t, Named("pkg.A")), resolved(t, Named("pkg.B"))}

	entries, err := Builder{}.Build(KindMock, fd, Request{Target: "svc"}, types)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "pkg.A", entries[0].Definition.Type.String())
	assert.Equal(t, "pkg.B", entries[1].Definition.Type.String())
	assert.Equal(t, entries[0].Target, entries[1].Target)
}

// TestBuilder_QualifierSourceError verifies qualifier lookup failures are wrapped.
func TestBuilder_QualifierSourceError(t *testing.T) {
	t.Parallel()

	var reg *MapQualifiers // nil registry panics on lookup
	fd := fixtureField(Field{Name: "Repo", Type: Named("pkg.Repo")})

	_, _, err := Builder{Qualifiers: reg}.Mock(fd, Request{Target: "svc"}, resolved(t, fd.Field.Type))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQualifierPanic)
	assert.Contains(t, err.Error(), `qualifier of field "Fixture.Repo"`)
}
