package srcscan_test

import (
	"context"
	"slices"
	"testing"

	"github.com/sghaida/inbean/examples/fixtures"
	"github.com/sghaida/inbean/inbean"
	"github.com/sghaida/inbean/inbean/srcscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturesPkg = "github.com/sghaida/inbean/examples/fixtures"

func loadFixtures(t *testing.T) *srcscan.Catalog {
	t.Helper()
	cat, err := srcscan.Load(context.Background(), "", fixturesPkg)
	require.NoError(t, err)
	require.Contains(t, cat.Packages(), fixturesPkg)
	return cat
}

func render(defs *inbean.Definitions) []string {
	var out []string
	for def, targets := range defs.All() {
		for _, tgt := range targets {
			out = append(out, def.String()+" -> "+tgt.String())
		}
	}
	return out
}

//
// -----------------------------------------------------------------------------
// Load / PkgPath / Packages
// -----------------------------------------------------------------------------

// TestPkgPath_ResolvesPatterns verifies import paths and directories map to the loaded package.
func TestPkgPath_ResolvesPatterns(t *testing.T) {
	t.Parallel()

	cat, err := srcscan.Load(context.Background(), "../..", "./examples/fixtures")
	require.NoError(t, err)

	for _, pattern := range []string{"./examples/fixtures", "./examples/../examples/fixtures", fixturesPkg} {
		got, err := cat.PkgPath(pattern)
		require.NoError(t, err, pattern)
		assert.Equal(t, fixturesPkg, got, pattern)
	}

	_, err = cat.PkgPath("example.com/unknown")
	assert.EqualError(t, err, "srcscan: package example.com/unknown not loaded")
}

// TestPackages_Sorted verifies Packages is sorted whatever the load order.
func TestPackages_Sorted(t *testing.T) {
	t.Parallel()

	cat, err := srcscan.Load(context.Background(), "../..", "./inbean/declarative", "./examples/fixtures")
	require.NoError(t, err)

	got := cat.Packages()
	assert.Equal(t, []string{
		fixturesPkg,
		"github.com/sghaida/inbean/inbean/declarative",
	}, got)
	assert.True(t, slices.IsSorted(got))

	_, err = cat.PkgPath("./inbean/declarative")
	require.NoError(t, err)
}

//
// -----------------------------------------------------------------------------
// Class
// -----------------------------------------------------------------------------

// TestClass_GenericEmbedsKeepParameters verifies generic embeds keep their parameters and arguments.
func TestClass_GenericEmbedsKeepParameters(t *testing.T) {
	t.Parallel()

	cat := loadFixtures(t)

	cls, err := cat.Class(fixturesPkg, "BillingTest")
	require.NoError(t, err)
	require.Len(t, cls.Embeds, 1)

	audit := cls.Embeds[0]
	assert.Equal(t, fixturesPkg+".AuditSupport", audit.Class.Name)
	assert.Equal(t, []string{"A"}, audit.Class.TypeParams)
	require.Len(t, audit.Args, 1)
	assert.Equal(t, fixturesPkg+".Repository", audit.Args[0].String())

	repo := audit.Class.Embeds[0]
	assert.Equal(t, []string{"R"}, repo.Class.TypeParams)
	assert.Equal(t, inbean.Param("A"), repo.Args[0])
	assert.Equal(t, inbean.Param("R"), repo.Class.Fields[0].Type)
}

// TestClass_ChanAndFuncFieldsKeepParameters verifies channel and func field types stay structured.
func TestClass_ChanAndFuncFieldsKeepParameters(t *testing.T) {
	t.Parallel()

	cat := loadFixtures(t)

	cls, err := cat.Class(fixturesPkg, "EventTest")
	require.NoError(t, err)
	require.Len(t, cls.Embeds, 1)

	fields := cls.Embeds[0].Class.Fields
	require.Len(t, fields, 2)
	assert.Equal(t, inbean.RefChan, fields[0].Type.Kind)
	assert.True(t, fields[0].Type.HasParams())
	assert.Equal(t, "chan E", fields[0].Type.String())
	assert.Equal(t, inbean.RefFunc, fields[1].Type.Kind)
	assert.True(t, fields[1].Type.HasParams())
	assert.Equal(t, "func(E) error", fields[1].Type.String())
}

// TestClass_MatchesReflection verifies the source view parses to the same definitions as reflection.
func TestClass_MatchesReflection(t *testing.T) {
	t.Parallel()

	cat := loadFixtures(t)

	for _, tc := range []struct {
		name string
		v    any
	}{
		{name: "BillingTest", v: fixtures.BillingTest{}},
		{name: "OrderServiceTest", v: fixtures.OrderServiceTest{}},
		{name: "EventTest", v: fixtures.EventTest{}},
	} {
		cls, err := cat.Class(fixturesPkg, tc.name)
		require.NoError(t, err)

		fromSource := inbean.NewParser()
		require.NoError(t, fromSource.Parse(cls))

		fromReflect := inbean.NewParser()
		require.NoError(t, fromReflect.ParseStruct(tc.v))

		assert.Equal(t, render(fromReflect.Definitions()), render(fromSource.Definitions()), tc.name)
	}
}

// TestClass_BillingDefinitions verifies parameters bound two levels down resolve to the fixture's argument.
func TestClass_BillingDefinitions(t *testing.T) {
	t.Parallel()

	cat := loadFixtures(t)

	cls, err := cat.Class(fixturesPkg, "BillingTest")
	require.NoError(t, err)

	p := inbean.NewParser()
	require.NoError(t, p.Parse(cls))
	assert.Equal(t, []string{
		"mock Clock " + fixturesPkg + ".Clock @utc -> billingService",
		"spy Audit []" + fixturesPkg + ".Repository -> auditService",
		"mock Repo " + fixturesPkg + ".Repository -> orderService",
	}, render(p.Definitions()))

	for def := range p.Definitions().All() {
		assert.Nil(t, def.Type.Type(), "source-resolved types carry no reflect.Type")
	}
}

// TestClass_EventDefinitions verifies parameters inside channel and func types are bound.
func TestClass_EventDefinitions(t *testing.T) {
	t.Parallel()

	cat := loadFixtures(t)

	cls, err := cat.Class(fixturesPkg, "EventTest")
	require.NoError(t, err)

	p := inbean.NewParser()
	require.NoError(t, p.Parse(cls))
	assert.Equal(t, []string{
		"mock Events chan " + fixturesPkg + ".Repository -> orderService",
		"spy Handler func(" + fixturesPkg + ".Repository) error -> orderService",
	}, render(p.Definitions()))
}

// TestClass_Failures verifies unresolvable types, blank targets and lookup errors are reported.
func TestClass_Failures(t *testing.T) {
	t.Parallel()

	cat := loadFixtures(t)

	unbound, err := cat.Class(fixturesPkg, "UnboundTest")
	require.NoError(t, err)
	err = inbean.NewParser().Parse(unbound)
	assert.ErrorIs(t, err, inbean.ErrUnresolvableType)
	assert.Contains(t, err.Error(), fixturesPkg+".UnboundTest.Repo")

	envelope, err := cat.Class(fixturesPkg, "EnvelopeTest")
	require.NoError(t, err)
	err = inbean.NewParser().Parse(envelope)
	assert.ErrorIs(t, err, inbean.ErrUnresolvableType)
	assert.Contains(t, err.Error(), fixturesPkg+".EnvelopeSupport.Envelope")

	blank, err := cat.Class(fixturesPkg, "BlankTargetTest")
	require.NoError(t, err)
	assert.ErrorIs(t, inbean.NewParser().Parse(blank), inbean.ErrInvalidTarget)

	_, err = cat.Class(fixturesPkg, "Repository")
	assert.ErrorIs(t, err, inbean.ErrNotStruct)

	_, err = cat.Class(fixturesPkg, "Missing")
	assert.Error(t, err)

	_, err = cat.Class("example.com/unknown", "X")
	assert.Error(t, err)
}
