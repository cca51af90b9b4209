package inbean

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// RefKind tells how a TypeRef is built.
type RefKind uint8

const (
	RefNamed   RefKind = iota // named type, possibly instantiated with Args
	RefParam                  // type parameter of the declaring class
	RefPointer                // *Args[0]
	RefSlice                  // []Args[0]
	RefArray                  // [Name]Args[0], Name holds the length
	RefMap                    // map[Args[0]]Args[1]
	RefChan                   // chan Args[0], Name holds the direction: "chan", "<-chan" or "chan<-"
	RefFunc                   // func(params) results, see FuncOf
	RefLiteral                // unnamed struct or interface type rendered as Name
)

// TypeRef is a declared field type. It may reference type parameters of the
// class that declares the field; those are bound by the Resolver.
type TypeRef struct {
	Kind RefKind
	Name string
	Args []TypeRef

	// RType is the runtime type when the reference comes from reflection.
	RType reflect.Type
}

// Named references a named type, optionally instantiated with type arguments.
func Named(name string, args ...TypeRef) TypeRef {
	return TypeRef{Kind: RefNamed, Name: name, Args: args}
}

// Param references a type parameter by name.
func Param(name string) TypeRef { return TypeRef{Kind: RefParam, Name: name} }

// PointerTo references *elem.
func PointerTo(elem TypeRef) TypeRef {
	return TypeRef{Kind: RefPointer, Args: []TypeRef{elem}}
}

// SliceOf references []elem.
func SliceOf(elem TypeRef) TypeRef {
	return TypeRef{Kind: RefSlice, Args: []TypeRef{elem}}
}

// ArrayOf references [n]elem.
func ArrayOf(n int, elem TypeRef) TypeRef {
	return TypeRef{Kind: RefArray, Name: strconv.Itoa(n), Args: []TypeRef{elem}}
}

// MapOf references map[key]elem.
func MapOf(key, elem TypeRef) TypeRef {
	return TypeRef{Kind: RefMap, Args: []TypeRef{key, elem}}
}

// ChanOf references a channel of elem with direction dir.
func ChanOf(dir reflect.ChanDir, elem TypeRef) TypeRef {
	return TypeRef{Kind: RefChan, Name: dir.String(), Args: []TypeRef{elem}}
}

// FuncOf references func(params) results. Args holds params followed by
// results and Name the parameter count, suffixed with "..." when variadic.
// The last parameter of a variadic function is its slice type.
func FuncOf(params, results []TypeRef, variadic bool) TypeRef {
	name := strconv.Itoa(len(params))
	if variadic {
		name += "..."
	}
	return TypeRef{Kind: RefFunc, Name: name, Args: append(slices.Clone(params), results...)}
}

// Literal references an unnamed struct or interface type by its text.
// params names the type parameters mentioned inside it; a literal that
// mentions any cannot be bound.
func Literal(text string, params ...string) TypeRef {
	r := TypeRef{Kind: RefLiteral, Name: text}
	for _, p := range params {
		r.Args = append(r.Args, Param(p))
	}
	return r
}

// Concrete references a runtime type. The name is package-path qualified so
// that same-named types of different packages stay distinct.
func Concrete(t reflect.Type) TypeRef {
	return TypeRef{Kind: RefNamed, Name: TypeName(t), RType: t}
}

// TypeName renders t with full package paths.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return shapeOf(t).String()
}

func shapeOf(t reflect.Type) TypeRef {
	if t.Name() != "" {
		if t.PkgPath() == "" {
			return Named(t.Name())
		}
		return Named(t.PkgPath() + "." + t.Name())
	}
	switch t.Kind() {
	case reflect.Pointer:
		return PointerTo(shapeOf(t.Elem()))
	case reflect.Slice:
		return SliceOf(shapeOf(t.Elem()))
	case reflect.Array:
		return ArrayOf(t.Len(), shapeOf(t.Elem()))
	case reflect.Map:
		return MapOf(shapeOf(t.Key()), shapeOf(t.Elem()))
	case reflect.Chan:
		return ChanOf(t.ChanDir(), shapeOf(t.Elem()))
	case reflect.Func:
		params := make([]TypeRef, t.NumIn())
		for i := range params {
			params[i] = shapeOf(t.In(i))
		}
		results := make([]TypeRef, t.NumOut())
		for i := range results {
			results[i] = shapeOf(t.Out(i))
		}
		return FuncOf(params, results, t.IsVariadic())
	default:
		return Literal(t.String())
	}
}

// HasParams reports whether r mentions a type parameter anywhere.
func (r TypeRef) HasParams() bool {
	if r.Kind == RefParam {
		return true
	}
	for _, a := range r.Args {
		if a.HasParams() {
			return true
		}
	}
	return false
}

// String renders the type expression.
func (r TypeRef) String() string {
	var b strings.Builder
	r.write(&b)
	return b.String()
}

func (r TypeRef) write(b *strings.Builder) {
	elem := func(i int) {
		if i < len(r.Args) {
			r.Args[i].write(b)
		} else {
			b.WriteString("?")
		}
	}
	switch r.Kind {
	case RefPointer:
		b.WriteString("*")
		elem(0)
	case RefSlice:
		b.WriteString("[]")
		elem(0)
	case RefArray:
		b.WriteString("[" + r.Name + "]")
		elem(0)
	case RefMap:
		b.WriteString("map[")
		elem(0)
		b.WriteString("]")
		elem(1)
	case RefChan:
		b.WriteString(r.Name + " ")
		if r.Name == "chan" && len(r.Args) > 0 && r.Args[0].Kind == RefChan && r.Args[0].Name == "<-chan" {
			b.WriteString("(")
			elem(0)
			b.WriteString(")")
		} else {
			elem(0)
		}
	case RefFunc:
		r.writeFunc(b)
	default:
		b.WriteString(r.Name)
		if r.Kind == RefNamed && len(r.Args) > 0 {
			b.WriteString("[")
			for i, a := range r.Args {
				if i > 0 {
					b.WriteString(",")
				}
				a.write(b)
			}
			b.WriteString("]")
		}
	}
}

func (r TypeRef) writeFunc(b *strings.Builder) {
	count, variadic := strings.CutSuffix(r.Name, "...")
	n, _ := strconv.Atoi(count)
	n = min(max(n, 0), len(r.Args))
	params, results := r.Args[:n], r.Args[n:]

	b.WriteString("func(")
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		if variadic && i == n-1 && p.Kind == RefSlice && len(p.Args) == 1 {
			b.WriteString("...")
			p.Args[0].write(b)
			continue
		}
		p.write(b)
	}
	b.WriteString(")")

	switch len(results) {
	case 0:
	case 1:
		b.WriteString(" ")
		results[0].write(b)
	default:
		b.WriteString(" (")
		for i, res := range results {
			if i > 0 {
				b.WriteString(", ")
			}
			res.write(b)
		}
		b.WriteString(")")
	}
}

// substitute replaces type parameters using env. ok is false when a
// parameter has no binding.
func (r TypeRef) substitute(env map[string]TypeRef) (TypeRef, bool) {
	if r.Kind == RefParam {
		bound, ok := env[r.Name]
		return bound, ok
	}
	if !r.HasParams() {
		return r, true
	}
	if r.Kind == RefLiteral {
		return TypeRef{}, false
	}
	args := make([]TypeRef, len(r.Args))
	for i, a := range r.Args {
		s, ok := a.substitute(env)
		if !ok {
			return TypeRef{}, false
		}
		args[i] = s
	}
	r.Args = args
	r.RType = nil
	return r, true
}

// ResolvedType is a fully bound type to mock or spy. It is comparable and
// safe to use in map keys.
type ResolvedType struct {
	id    string
	rtype reflect.Type
}

// Resolve turns a parameter-free reference into a ResolvedType.
// ok is false when r still mentions type parameters.
func Resolve(r TypeRef) (ResolvedType, bool) {
	if r.HasParams() {
		return ResolvedType{}, false
	}
	return ResolvedType{id: r.String(), rtype: r.RType}, true
}

// ResolvedOf is a shortcut for Resolve(Concrete(t)).
func ResolvedOf(t reflect.Type) ResolvedType {
	rt, _ := Resolve(Concrete(t))
	return rt
}

// String returns the canonical type expression.
func (t ResolvedType) String() string { return t.id }

// Type returns the runtime type, or nil when the type was resolved from
// source or declarative metadata.
func (t ResolvedType) Type() reflect.Type { return t.rtype }

// IsZero reports whether t is the zero value.
func (t ResolvedType) IsZero() bool { return t.id == "" }

// Class describes a scanned fixture type.
//
// Embeds play the role of supertypes: their fields are inherited, and their
// Args bind the embedded class's TypeParams in terms of this class.
type Class struct {
	Name       string
	TypeParams []string
	Embeds     []Embed
	Fields     []Field
}

// Embed is an embedded (inherited) class with its type arguments.
type Embed struct {
	Class *Class
	Args  []TypeRef
}

// Field is a declared attribute of a Class.
type Field struct {
	Name      string
	Type      TypeRef
	Mocks     []Request
	Spies     []Request
	Qualifier Qualifier
}

// Requests reports whether the field asks for any mock or spy.
func (f Field) Requests() bool { return len(f.Mocks) > 0 || len(f.Spies) > 0 }

// Request is one occurrence of a mock or spy request on a field.
//
// Target is the reference of the bean that receives the mock or spy and must
// not be blank. Name optionally selects a bean instance inside the target
// when several candidates share the type; empty means unset.
type Request struct {
	Target string
	Name   string
}

// FieldDescriptor is a field together with the class that declares it.
type FieldDescriptor struct {
	Field Field
	Owner *Class
}

// Path returns "Owner.Field" for messages and registry keys.
func (fd FieldDescriptor) Path() string {
	return QualifierKey(fd.Owner, fd.Field)
}
