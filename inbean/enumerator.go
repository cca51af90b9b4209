package inbean

// FieldEnumerator lists the fields of a class, inherited ones included.
type FieldEnumerator interface {
	Fields(source *Class) ([]FieldDescriptor, error)
}

// FieldEnumeratorFunc adapts a function to FieldEnumerator.
type FieldEnumeratorFunc func(source *Class) ([]FieldDescriptor, error)

// Fields implements FieldEnumerator.
func (f FieldEnumeratorFunc) Fields(source *Class) ([]FieldDescriptor, error) { return f(source) }

// Hierarchy is the default FieldEnumerator: the class's own fields in
// declaration order, then the fields of each embedded class, depth first.
// A class reachable through several embeddings is listed once.
type Hierarchy struct{}

// Fields implements FieldEnumerator.
func (Hierarchy) Fields(source *Class) ([]FieldDescriptor, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	var out []FieldDescriptor
	seen := make(map[*Class]bool)

	var walk func(c *Class)
	walk = func(c *Class) {
		if c == nil || seen[c] {
			return
		}
		seen[c] = true
		for _, f := range c.Fields {
			out = append(out, FieldDescriptor{Field: f, Owner: c})
		}
		for _, e := range c.Embeds {
			walk(e.Class)
		}
	}
	walk(source)
	return out, nil
}
