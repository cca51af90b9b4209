package inbean

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// ParseTypeRef parses a Go-like type expression. Identifiers listed in
// params are type parameters; any other identifier is a named type and may
// carry a package path.
//
//	*github.com/acme/repo.Repository
//	Box[T]
//	map[string][]T
//	[4]T
//	<-chan T
//	func(string, ...T) (int, error)
func ParseTypeRef(expr string, params []string) (TypeRef, error) {
	p := &typeParser{src: expr, params: params}
	p.skipSpace()
	ref, err := p.parse()
	if err != nil {
		return TypeRef{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return TypeRef{}, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return ref, nil
}

type typeParser struct {
	src    string
	pos    int
	params []string
}

func (p *typeParser) errorf(format string, args ...any) error {
	return fmt.Errorf("inbean: type %q at offset %d: %s", p.src, p.pos, fmt.Sprintf(format, args...))
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) eat(s string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *typeParser) parse() (TypeRef, error) {
	switch {
	case p.eat("*"):
		elem, err := p.parse()
		if err != nil {
			return TypeRef{}, err
		}
		return PointerTo(elem), nil
	case p.eat("[]"):
		elem, err := p.parse()
		if err != nil {
			return TypeRef{}, err
		}
		return SliceOf(elem), nil
	case p.eat("["):
		start := p.pos
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
		}
		n, err := strconv.Atoi(p.src[start:p.pos])
		if err != nil {
			return TypeRef{}, p.errorf("bad array length")
		}
		if !p.eat("]") {
			return TypeRef{}, p.errorf("expected ]")
		}
		elem, err := p.parse()
		if err != nil {
			return TypeRef{}, err
		}
		return ArrayOf(n, elem), nil
	case p.eat("("):
		inner, err := p.parse()
		if err != nil {
			return TypeRef{}, err
		}
		if !p.eat(")") {
			return TypeRef{}, p.errorf("expected )")
		}
		return inner, nil
	case p.eat("<-chan"):
		return p.chanOf(reflect.RecvDir)
	case p.eat("chan<-"):
		return p.chanOf(reflect.SendDir)
	case p.keyword("chan"):
		return p.chanOf(reflect.BothDir)
	case p.keyword("func"):
		return p.funcOf()
	case p.eat("map["):
		key, err := p.parse()
		if err != nil {
			return TypeRef{}, err
		}
		if !p.eat("]") {
			return TypeRef{}, p.errorf("expected ]")
		}
		elem, err := p.parse()
		if err != nil {
			return TypeRef{}, err
		}
		return MapOf(key, elem), nil
	}
	return p.named()
}

// keyword consumes kw when it is not the prefix of a longer identifier.
func (p *typeParser) keyword(kw string) bool {
	p.skipSpace()
	rest := p.src[p.pos:]
	if !strings.HasPrefix(rest, kw) || (len(rest) > len(kw) && isIdentByte(rest[len(kw)])) {
		return false
	}
	p.pos += len(kw)
	return true
}

func (p *typeParser) chanOf(dir reflect.ChanDir) (TypeRef, error) {
	elem, err := p.parse()
	if err != nil {
		return TypeRef{}, err
	}
	return ChanOf(dir, elem), nil
}

func (p *typeParser) funcOf() (TypeRef, error) {
	if !p.eat("(") {
		return TypeRef{}, p.errorf("expected (")
	}
	params, variadic, err := p.list(true)
	if err != nil {
		return TypeRef{}, err
	}

	var results []TypeRef
	p.skipSpace()
	switch {
	case p.eat("("):
		results, _, err = p.list(false)
		if err != nil {
			return TypeRef{}, err
		}
	case p.pos < len(p.src) && !strings.ContainsRune(",])", rune(p.src[p.pos])):
		res, err := p.parse()
		if err != nil {
			return TypeRef{}, err
		}
		results = []TypeRef{res}
	}
	return FuncOf(params, results, variadic), nil
}

// list parses comma separated types up to the closing parenthesis. Only the
// last entry may be variadic.
func (p *typeParser) list(allowVariadic bool) ([]TypeRef, bool, error) {
	var out []TypeRef
	if p.eat(")") {
		return out, false, nil
	}
	for {
		variadic := allowVariadic && p.eat("...")
		ref, err := p.parse()
		if err != nil {
			return nil, false, err
		}
		if variadic {
			ref = SliceOf(ref)
		}
		out = append(out, ref)
		if p.eat(")") {
			return out, variadic, nil
		}
		if variadic || !p.eat(",") {
			return nil, false, p.errorf("expected , or )")
		}
	}
}

func (p *typeParser) named() (TypeRef, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	name := p.src[start:p.pos]
	if name == "" {
		return TypeRef{}, p.errorf("expected type name")
	}
	if !p.eat("[") {
		if slices.Contains(p.params, name) {
			return Param(name), nil
		}
		return Named(name), nil
	}

	var args []TypeRef
	for {
		arg, err := p.parse()
		if err != nil {
			return TypeRef{}, err
		}
		args = append(args, arg)
		if p.eat(",") {
			continue
		}
		if p.eat("]") {
			break
		}
		return TypeRef{}, p.errorf("expected , or ]")
	}
	return Named(name, args...), nil
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '.' || c == '/' || c == '-' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
