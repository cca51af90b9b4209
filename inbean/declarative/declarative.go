// Package declarative describes fixtures explicitly in YAML instead of
// reading them from Go types.
//
//	classes:
//	  - name: RepoSupport
//	    typeParams: [R]
//	    fields:
//	      - name: Repo
//	        type: R
//	        mocks:
//	          - target: orderService
//	  - name: OrderTest
//	    embeds:
//	      - class: RepoSupport
//	        args: ["*acme/repo.Repository"]
//	    fields:
//	      - name: Clock
//	        type: acme/clock.Clock
//	        qualifier: utc
//	        spies:
//	          - target: orderService
//	            name: clock
//
// Classes may embed classes declared later in the same document.
package declarative

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sghaida/inbean/inbean"
	"gopkg.in/yaml.v3"
)

// Document is the YAML root.
type Document struct {
	Classes []ClassSpec `yaml:"classes"`
}

type ClassSpec struct {
	Name       string      `yaml:"name"`
	TypeParams []string    `yaml:"typeParams,omitempty"`
	Embeds     []EmbedSpec `yaml:"embeds,omitempty"`
	Fields     []FieldSpec `yaml:"fields,omitempty"`
}

type EmbedSpec struct {
	Class string   `yaml:"class"`
	Args  []string `yaml:"args,omitempty"`
}

type FieldSpec struct {
	Name      string        `yaml:"name"`
	Type      string        `yaml:"type"`
	Qualifier string        `yaml:"qualifier,omitempty"`
	Mocks     []RequestSpec `yaml:"mocks,omitempty"`
	Spies     []RequestSpec `yaml:"spies,omitempty"`
}

type RequestSpec struct {
	Target string `yaml:"target"`
	Name   string `yaml:"name,omitempty"`
}

// Catalog holds the classes of one document by name.
type Catalog struct {
	names   []string
	classes map[string]*inbean.Class
}

// Load reads and builds the document at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "declarative: read %s", path)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "declarative: %s", path)
	}
	return cat, nil
}

// Parse builds a catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "declarative: decode yaml")
	}
	return Build(doc)
}

// Build turns a decoded document into classes.
func Build(doc Document) (*Catalog, error) {
	cat := &Catalog{classes: make(map[string]*inbean.Class, len(doc.Classes))}

	// Shells first so embeds may point forward.
	for _, cs := range doc.Classes {
		if cs.Name == "" {
			return nil, errors.New("declarative: class without name")
		}
		if _, dup := cat.classes[cs.Name]; dup {
			return nil, errors.Errorf("declarative: duplicate class %q", cs.Name)
		}
		cat.classes[cs.Name] = &inbean.Class{Name: cs.Name, TypeParams: cs.TypeParams}
		cat.names = append(cat.names, cs.Name)
	}

	for _, cs := range doc.Classes {
		c := cat.classes[cs.Name]
		for _, es := range cs.Embeds {
			super, ok := cat.classes[es.Class]
			if !ok {
				return nil, errors.Errorf("declarative: class %q embeds unknown class %q", cs.Name, es.Class)
			}
			args := make([]inbean.TypeRef, 0, len(es.Args))
			for _, a := range es.Args {
				ref, err := inbean.ParseTypeRef(a, cs.TypeParams)
				if err != nil {
					return nil, errors.Wrapf(err, "declarative: class %q embed %q", cs.Name, es.Class)
				}
				args = append(args, ref)
			}
			c.Embeds = append(c.Embeds, inbean.Embed{Class: super, Args: args})
		}
		for _, fs := range cs.Fields {
			f, err := buildField(cs, fs)
			if err != nil {
				return nil, err
			}
			c.Fields = append(c.Fields, f)
		}
	}
	return cat, nil
}

func buildField(cs ClassSpec, fs FieldSpec) (inbean.Field, error) {
	if fs.Name == "" {
		return inbean.Field{}, errors.Errorf("declarative: class %q has a field without name", cs.Name)
	}
	if fs.Type == "" {
		return inbean.Field{}, errors.Errorf("declarative: field %s.%s has no type", cs.Name, fs.Name)
	}
	ref, err := inbean.ParseTypeRef(fs.Type, cs.TypeParams)
	if err != nil {
		return inbean.Field{}, errors.Wrapf(err, "declarative: field %s.%s", cs.Name, fs.Name)
	}
	return inbean.Field{
		Name:      fs.Name,
		Type:      ref,
		Mocks:     requests(fs.Mocks),
		Spies:     requests(fs.Spies),
		Qualifier: inbean.Qualifier(fs.Qualifier),
	}, nil
}

func requests(specs []RequestSpec) []inbean.Request {
	if len(specs) == 0 {
		return nil
	}
	out := make([]inbean.Request, len(specs))
	for i, s := range specs {
		out[i] = inbean.Request{Target: s.Target, Name: s.Name}
	}
	return out
}

// Class returns the class declared under name.
func (c *Catalog) Class(name string) (*inbean.Class, bool) {
	cls, ok := c.classes[name]
	return cls, ok
}

// Names returns the class names in document order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}
