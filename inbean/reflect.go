package inbean

import (
	"fmt"
	"reflect"
)

// FromStruct describes the struct type of v (a value, a pointer to a struct
// or a reflect.Type) as a Class.
//
// Embedded struct fields without inbean tags become Embeds; every other
// field, exported or not, becomes a Field. Types come from reflection and
// are therefore always concrete.
func FromStruct(v any) (*Class, error) {
	var t reflect.Type
	switch x := v.(type) {
	case nil:
		return nil, ErrNilSource
	case reflect.Type:
		t = x
	default:
		t = reflect.TypeOf(v)
	}
	return FromType(t)
}

// FromType is FromStruct for a reflect.Type.
func FromType(t reflect.Type) (*Class, error) {
	if t == nil {
		return nil, ErrNilSource
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, TypeName(t))
	}
	return classOf(t, make(map[reflect.Type]*Class))
}

func classOf(t reflect.Type, seen map[reflect.Type]*Class) (*Class, error) {
	if c, ok := seen[t]; ok {
		return c, nil
	}
	c := &Class{Name: TypeName(t)}
	seen[t] = c

	for i := range t.NumField() {
		sf := t.Field(i)
		tags, err := ParseTag(QualifierKey(c, Field{Name: sf.Name}), sf.Tag)
		if err != nil {
			return nil, err
		}

		if sf.Anonymous && !tags.Requests() {
			et := sf.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				super, err := classOf(et, seen)
				if err != nil {
					return nil, err
				}
				c.Embeds = append(c.Embeds, Embed{Class: super})
				continue
			}
		}

		c.Fields = append(c.Fields, Field{
			Name:      sf.Name,
			Type:      Concrete(sf.Type),
			Mocks:     tags.Mocks,
			Spies:     tags.Spies,
			Qualifier: tags.Qualifier,
		})
	}
	return c, nil
}
