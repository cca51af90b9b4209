package inbean

import (
	"errors"
	"fmt"
)

// Qualifier disambiguates beans that share a type. It is opaque here; the
// empty string means no qualifier.
type Qualifier string

// QualifierSource provides the qualifier of a field.
//
// It is read-only and side effect free. Expected usage:
//
//	q, ok, err := src.Qualifier(owner, field)
type QualifierSource interface {
	Qualifier(owner *Class, field Field) (q Qualifier, ok bool, err error)
}

// ErrQualifierPanic is returned if a qualifier source panics internally.
var ErrQualifierPanic = errors.New("qualifier: panic during lookup")

// QualifierKey returns the "Owner.Field" key used by MapQualifiers.
func QualifierKey(owner *Class, field Field) string {
	if owner == nil || owner.Name == "" {
		return field.Name
	}
	return owner.Name + "." + field.Name
}

// FieldQualifiers reads the qualifier marker carried on the field itself.
type FieldQualifiers struct{}

// Qualifier implements QualifierSource.
func (FieldQualifiers) Qualifier(_ *Class, field Field) (Qualifier, bool, error) {
	return field.Qualifier, field.Qualifier != "", nil
}

// MapQualifiers is an in-memory qualifier registry keyed by QualifierKey.
// Fields without an entry fall back to their own marker. The zero value is
// an empty registry ready to use.
type MapQualifiers struct {
	items map[string]Qualifier
}

// NewMapQualifiers returns an empty registry.
func NewMapQualifiers() *MapQualifiers {
	return &MapQualifiers{items: map[string]Qualifier{}}
}

// Provide stores a qualifier under a key and returns the registry for chaining.
func (r *MapQualifiers) Provide(key string, q Qualifier) *MapQualifiers {
	if r.items == nil {
		r.items = map[string]Qualifier{}
	}
	r.items[key] = q
	return r
}

// Qualifier implements QualifierSource and converts panics into errors.
func (r *MapQualifiers) Qualifier(owner *Class, field Field) (q Qualifier, ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			q = ""
			ok = false
			err = fmt.Errorf("%w: %v", ErrQualifierPanic, rec)
		}
	}()

	if v, found := r.items[QualifierKey(owner, field)]; found {
		return v, v != "", nil
	}
	return FieldQualifiers{}.Qualifier(owner, field)
}

// Get returns the registered qualifier if present.
func (r *MapQualifiers) Get(key string) (Qualifier, bool) {
	v, ok := r.items[key]
	return v, ok
}

// MustGet returns the registered qualifier or panics.
func (r *MapQualifiers) MustGet(key string) Qualifier {
	v, ok := r.items[key]
	if !ok {
		panic(fmt.Errorf("inbean: qualifier registry missing key %q", key))
	}
	return v
}
