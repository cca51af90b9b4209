package inbean

import (
	"log/slog"
	"slices"
)

// Option configures a Parser.
type Option func(*Parser)

// WithEnumerator replaces the default Hierarchy field enumerator.
func WithEnumerator(e FieldEnumerator) Option {
	return func(p *Parser) {
		if e != nil {
			p.enum = e
		}
	}
}

// WithQualifiers replaces the default FieldQualifiers source.
func WithQualifiers(q QualifierSource) Option {
	return func(p *Parser) {
		if q != nil {
			p.builder.Qualifiers = q
		}
	}
}

// WithLogger sets the logger used for debug output. Nothing is logged by default.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// Parser accumulates mock and spy definitions over one or more scanned
// classes.
//
// Every Parse call folds into the same mapping. A call either succeeds as a
// whole or leaves the mapping untouched. A Parser is not safe for concurrent
// use; the snapshots returned by Definitions are.
type Parser struct {
	enum     FieldEnumerator
	resolver Resolver
	builder  Builder
	log      *slog.Logger

	order   []Definition
	targets map[Definition][]Target
}

// NewParser returns an empty Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		enum:    Hierarchy{},
		builder: Builder{Qualifiers: FieldQualifiers{}},
		log:     slog.New(slog.DiscardHandler),
		targets: make(map[Definition][]Target),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse scans every field of source and merges the requested mocks and spies.
//
// For each field, mock requests are handled before spy requests, each in
// declaration order. The first error aborts the scan and nothing from it is
// kept.
func (p *Parser) Parse(source *Class) error {
	if source == nil {
		return ErrNilSource
	}
	fields, err := p.enum.Fields(source)
	if err != nil {
		return err
	}

	var staged []Entry
	for _, fd := range fields {
		if !fd.Field.Requests() {
			continue
		}
		entries, err := p.parseField(source, fd)
		if err != nil {
			p.log.Debug("scan aborted", "class", source.Name, "field", fd.Path(), "err", err)
			return err
		}
		staged = append(staged, entries...)
	}

	for _, e := range staged {
		p.add(e)
	}
	p.log.Debug("scan complete", "class", source.Name, "entries", len(staged), "definitions", len(p.order))
	return nil
}

// ParseStruct describes v with FromStruct and parses it.
func (p *Parser) ParseStruct(v any) error {
	c, err := FromStruct(v)
	if err != nil {
		return err
	}
	return p.Parse(c)
}

func (p *Parser) parseField(source *Class, fd FieldDescriptor) ([]Entry, error) {
	var out []Entry
	if len(fd.Field.Mocks) > 0 {
		types := p.resolver.Resolve(source, fd)
		for _, req := range fd.Field.Mocks {
			entries, err := p.builder.Build(KindMock, fd, req, types)
			if err != nil {
				return nil, err
			}
			out = append(out, entries...)
		}
	}
	if len(fd.Field.Spies) > 0 {
		types := p.resolver.Resolve(source, fd)
		for _, req := range fd.Field.Spies {
			entries, err := p.builder.Build(KindSpy, fd, req, types)
			if err != nil {
				return nil, err
			}
			out = append(out, entries...)
		}
	}
	return out, nil
}

func (p *Parser) add(e Entry) {
	ts, ok := p.targets[e.Definition]
	if !ok {
		p.order = append(p.order, e.Definition)
	}
	p.targets[e.Definition] = append(ts, e.Target)
	p.log.Debug("definition target added", "definition", e.Definition.String(), "target", e.Target.String())
}

// Definitions returns a snapshot of the mapping accumulated so far. Later
// Parse calls do not change a returned snapshot.
func (p *Parser) Definitions() *Definitions {
	out := &Definitions{
		order:   slices.Clone(p.order),
		targets: make(map[Definition][]Target, len(p.targets)),
	}
	for def, ts := range p.targets {
		out.targets[def] = slices.Clone(ts)
	}
	return out
}
