package inbean

import (
	"fmt"
	"strings"
)

// Entry pairs a definition with one of its injection targets.
type Entry struct {
	Definition Definition
	Target     Target
}

// Builder turns a field request into Definition/Target pairs.
//
// The zero value reads qualifiers from the field marker.
type Builder struct {
	Qualifiers QualifierSource
}

// Mock builds the mock definition and target for one request and one type.
func (b Builder) Mock(fd FieldDescriptor, req Request, typ ResolvedType) (Definition, Target, error) {
	return b.build(KindMock, fd, req, typ)
}

// Spy builds the spy definition and target for one request and one type.
func (b Builder) Spy(fd FieldDescriptor, req Request, typ ResolvedType) (Definition, Target, error) {
	return b.build(KindSpy, fd, req, typ)
}

// Build builds one entry per resolved type. It fails when types is empty
// or when the request has a blank target.
func (b Builder) Build(kind Kind, fd FieldDescriptor, req Request, types []ResolvedType) ([]Entry, error) {
	if len(types) == 0 {
		return nil, UnresolvableTypeError{Kind: kind, Field: fd.Path(), Type: fd.Field.Type.String()}
	}
	out := make([]Entry, 0, len(types))
	for _, typ := range types {
		def, target, err := b.build(kind, fd, req, typ)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Definition: def, Target: target})
	}
	return out, nil
}

func (b Builder) build(kind Kind, fd FieldDescriptor, req Request, typ ResolvedType) (Definition, Target, error) {
	if typ.IsZero() {
		return Definition{}, Target{}, UnresolvableTypeError{Kind: kind, Field: fd.Path(), Type: fd.Field.Type.String()}
	}
	target, err := targetOf(kind, fd, req)
	if err != nil {
		return Definition{}, Target{}, err
	}
	q, err := b.qualifier(fd)
	if err != nil {
		return Definition{}, Target{}, err
	}

	def := Definition{
		Kind:      kind,
		Name:      fd.Field.Name,
		Type:      typ,
		Reset:     ResetAfter,
		Qualifier: q,
	}
	if kind == KindSpy {
		def.ProxyTargetAware = true
	}
	return def, target, nil
}

func (b Builder) qualifier(fd FieldDescriptor) (Qualifier, error) {
	src := b.Qualifiers
	if src == nil {
		src = FieldQualifiers{}
	}
	q, ok, err := src.Qualifier(fd.Owner, fd.Field)
	if err != nil {
		return "", fmt.Errorf("inbean: qualifier of field %q: %w", fd.Path(), err)
	}
	if !ok {
		return "", nil
	}
	return q, nil
}

func targetOf(kind Kind, fd FieldDescriptor, req Request) (Target, error) {
	bean := strings.TrimSpace(req.Target)
	if bean == "" {
		return Target{}, InvalidTargetError{Kind: kind, Field: fd.Path()}
	}
	return Target{Bean: bean, Name: strings.TrimSpace(req.Name)}, nil
}
