package inbean

import (
	"slices"
	"strings"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind
//go:generate go tool stringer -type=Reset -trimprefix=Reset

// Kind discriminates mock and spy definitions.
type Kind uint8

const (
	KindMock Kind = iota
	KindSpy
)

// Reset is the point at which recorded interactions are cleared.
//
// Builder always produces ResetAfter. ResetBefore and ResetNone are for
// downstream stages that construct a Definition directly.
type Reset uint8

const (
	ResetAfter Reset = iota
	ResetBefore
	ResetNone
)

// InterfaceSet is an order-independent set of extra interfaces a mock must
// implement. The zero value is the empty set. It is comparable.
type InterfaceSet struct {
	key string
}

// NewInterfaceSet builds a set from type names. Duplicates are dropped.
func NewInterfaceSet(types ...ResolvedType) InterfaceSet {
	names := make([]string, 0, len(types))
	for _, t := range types {
		if t.IsZero() {
			continue
		}
		names = append(names, t.String())
	}
	slices.Sort(names)
	names = slices.Compact(names)
	return InterfaceSet{key: strings.Join(names, ";")}
}

// Names returns the sorted interface names.
func (s InterfaceSet) Names() []string {
	if s.key == "" {
		return nil
	}
	return strings.Split(s.key, ";")
}

// Len returns the number of interfaces in the set.
func (s InterfaceSet) Len() int { return len(s.Names()) }

// Definition describes a mock or spy to create.
//
// It is a comparable value: two requests that describe the same mock or spy
// produce == definitions, which is what groups their targets together.
type Definition struct {
	Kind Kind
	Name string
	Type ResolvedType

	// ExtraInterfaces and Serializable only apply to mocks.
	ExtraInterfaces InterfaceSet
	Serializable    bool

	Reset Reset

	// ProxyTargetAware is always true for spies: the spy wraps the real bean.
	ProxyTargetAware bool

	Qualifier Qualifier
}

// IsMock reports whether d describes a mock.
func (d Definition) IsMock() bool { return d.Kind == KindMock }

// IsSpy reports whether d describes a spy.
func (d Definition) IsSpy() bool { return d.Kind == KindSpy }

// String renders d for logs and messages.
func (d Definition) String() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(d.Kind.String()))
	b.WriteString(" ")
	b.WriteString(d.Name)
	b.WriteString(" ")
	b.WriteString(d.Type.String())
	if d.Qualifier != "" {
		b.WriteString(" @")
		b.WriteString(string(d.Qualifier))
	}
	return b.String()
}

// Target identifies where a definition is injected.
type Target struct {
	// Bean is the reference of the bean that receives the mock or spy.
	Bean string
	// Name disambiguates among same-typed candidates inside Bean; "" when unset.
	Name string
}

// HasName reports whether an explicit bean instance name was given.
func (t Target) HasName() bool { return t.Name != "" }

// String renders "bean" or "bean/name".
func (t Target) String() string {
	if t.HasName() {
		return t.Bean + "/" + t.Name
	}
	return t.Bean
}
