package inbean

// Resolver binds the declared type of a field to the type to substitute.
type Resolver struct{}

// Resolve returns the candidate types for fd when scanning source.
//
// A field whose type mentions no type parameter resolves to its declared
// type. Otherwise every embedding path from source down to fd.Owner is
// followed, binding type arguments top-down, and each fully bound result is
// kept once in discovery order. An empty result means the type cannot be
// resolved.
func (Resolver) Resolve(source *Class, fd FieldDescriptor) []ResolvedType {
	if !fd.Field.Type.HasParams() {
		rt, _ := Resolve(fd.Field.Type)
		return []ResolvedType{rt}
	}

	owner := fd.Owner
	if owner == nil {
		owner = source
	}

	var out []ResolvedType
	seen := make(map[ResolvedType]struct{})
	for _, env := range bindings(source, owner, nil, make(map[*Class]bool)) {
		bound, ok := fd.Field.Type.substitute(env)
		if !ok {
			continue
		}
		rt, ok := Resolve(bound)
		if !ok {
			continue
		}
		if _, dup := seen[rt]; dup {
			continue
		}
		seen[rt] = struct{}{}
		out = append(out, rt)
	}
	return out
}

// bindings returns one environment per embedding path from c to owner.
// Parameters of the scanned class itself stay unbound.
func bindings(c, owner *Class, env map[string]TypeRef, onPath map[*Class]bool) []map[string]TypeRef {
	if c == nil {
		return nil
	}
	if c == owner {
		return []map[string]TypeRef{env}
	}
	if onPath[c] {
		return nil
	}
	onPath[c] = true
	defer delete(onPath, c)

	var out []map[string]TypeRef
	for _, e := range c.Embeds {
		if e.Class == nil {
			continue
		}
		child := make(map[string]TypeRef, len(e.Class.TypeParams))
		for i, p := range e.Class.TypeParams {
			if i >= len(e.Args) {
				break
			}
			if bound, ok := e.Args[i].substitute(env); ok {
				child[p] = bound
			}
		}
		out = append(out, bindings(e.Class, owner, child, onPath)...)
	}
	return out
}
