// Package srcscan describes fixtures from Go source instead of runtime types.
//
// Packages are loaded with golang.org/x/tools/go/packages. Unlike
// reflection, the source view keeps generic structs uninstantiated, so a
// field declared as `Repo R` inside `RepoSupport[R any]` reaches the parser
// with R unbound and is resolved against the embedding fixture.
package srcscan

import (
	"context"
	"go/types"
	"maps"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/sghaida/inbean/inbean"
	"golang.org/x/tools/go/packages"
)

// LoadMode is the information requested from go/packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Catalog converts struct types of loaded packages into classes.
type Catalog struct {
	dir     string
	pkgs    map[string]*types.Package
	dirs    map[string]string // package directory -> package path
	classes map[*types.TypeName]*inbean.Class
}

// Load loads the packages matching patterns relative to dir.
func Load(ctx context.Context, dir string, patterns ...string) (*Catalog, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     dir,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "srcscan: load packages")
	}

	var loadErrs []string
	packages.Visit(pkgs, nil, func(p *packages.Package) {
		for _, e := range p.Errors {
			loadErrs = append(loadErrs, e.Error())
		}
	})
	if len(loadErrs) > 0 {
		return nil, errors.Errorf("srcscan: package errors:\n  %s", strings.Join(loadErrs, "\n  "))
	}

	cat := &Catalog{
		dir:     dir,
		pkgs:    make(map[string]*types.Package, len(pkgs)),
		dirs:    make(map[string]string, len(pkgs)),
		classes: make(map[*types.TypeName]*inbean.Class),
	}
	for _, p := range pkgs {
		if p.Types == nil {
			continue
		}
		cat.pkgs[p.PkgPath] = p.Types
		if len(p.GoFiles) > 0 {
			cat.dirs[filepath.Dir(p.GoFiles[0])] = p.PkgPath
		}
	}
	return cat, nil
}

// PkgPath maps a pattern given to Load to the path of the loaded package.
// Import paths are returned as is; relative and absolute directories are
// matched against the directories of the loaded packages, or name the only
// loaded package when the directories differ only by symlinks.
func (c *Catalog) PkgPath(pattern string) (string, error) {
	if _, ok := c.pkgs[pattern]; ok {
		return pattern, nil
	}
	if isDirPattern(pattern) {
		dir := pattern
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(c.dir, dir)
		}
		if abs, err := filepath.Abs(dir); err == nil {
			if path, ok := c.dirs[abs]; ok {
				return path, nil
			}
		}
		if len(c.pkgs) == 1 {
			for path := range c.pkgs {
				return path, nil
			}
		}
	}
	return "", errors.Errorf("srcscan: package %s not loaded", pattern)
}

// Class describes the struct type name declared in package pkgPath.
func (c *Catalog) Class(pkgPath, name string) (*inbean.Class, error) {
	pkg, ok := c.pkgs[pkgPath]
	if !ok {
		return nil, errors.Errorf("srcscan: package %s not loaded", pkgPath)
	}
	obj, ok := pkg.Scope().Lookup(name).(*types.TypeName)
	if !ok {
		return nil, errors.Errorf("srcscan: %s.%s is not a type", pkgPath, name)
	}
	named, ok := types.Unalias(obj.Type()).(*types.Named)
	if !ok {
		return nil, errors.Errorf("srcscan: %s.%s is not a named type", pkgPath, name)
	}
	return c.classOf(named)
}

func isDirPattern(pattern string) bool {
	return filepath.IsAbs(pattern) || pattern == "." || pattern == ".." ||
		strings.HasPrefix(pattern, "./") || strings.HasPrefix(pattern, "../")
}

// Packages returns the sorted paths of the loaded root packages.
func (c *Catalog) Packages() []string {
	return slices.Sorted(maps.Keys(c.pkgs))
}

func (c *Catalog) classOf(named *types.Named) (*inbean.Class, error) {
	origin := named.Origin()
	obj := origin.Obj()
	if cls, ok := c.classes[obj]; ok {
		return cls, nil
	}
	st, ok := origin.Underlying().(*types.Struct)
	if !ok {
		return nil, errors.Wrapf(inbean.ErrNotStruct, "srcscan: %s", qualified(obj))
	}

	cls := &inbean.Class{Name: qualified(obj)}
	c.classes[obj] = cls
	tps := origin.TypeParams()
	for i := range tps.Len() {
		cls.TypeParams = append(cls.TypeParams, tps.At(i).Obj().Name())
	}

	for i := range st.NumFields() {
		f := st.Field(i)
		tags, err := inbean.ParseTag(cls.Name+"."+f.Name(), reflect.StructTag(st.Tag(i)))
		if err != nil {
			return nil, err
		}

		if f.Embedded() && !tags.Requests() {
			if en, ok := embeddedStruct(f.Type()); ok {
				super, err := c.classOf(en)
				if err != nil {
					return nil, err
				}
				cls.Embeds = append(cls.Embeds, inbean.Embed{Class: super, Args: typeArgs(en)})
				continue
			}
		}

		cls.Fields = append(cls.Fields, inbean.Field{
			Name:      f.Name(),
			Type:      refOf(f.Type()),
			Mocks:     tags.Mocks,
			Spies:     tags.Spies,
			Qualifier: tags.Qualifier,
		})
	}
	return cls, nil
}

func embeddedStruct(t types.Type) (*types.Named, bool) {
	t = types.Unalias(t)
	if p, ok := t.(*types.Pointer); ok {
		t = types.Unalias(p.Elem())
	}
	named, ok := t.(*types.Named)
	if !ok {
		return nil, false
	}
	_, isStruct := named.Underlying().(*types.Struct)
	return named, isStruct
}

func typeArgs(named *types.Named) []inbean.TypeRef {
	args := named.TypeArgs()
	if args.Len() == 0 {
		return nil
	}
	out := make([]inbean.TypeRef, args.Len())
	for i := range args.Len() {
		out[i] = refOf(args.At(i))
	}
	return out
}

func refOf(t types.Type) inbean.TypeRef {
	switch t := types.Unalias(t).(type) {
	case *types.TypeParam:
		return inbean.Param(t.Obj().Name())
	case *types.Pointer:
		return inbean.PointerTo(refOf(t.Elem()))
	case *types.Slice:
		return inbean.SliceOf(refOf(t.Elem()))
	case *types.Array:
		return inbean.ArrayOf(int(t.Len()), refOf(t.Elem()))
	case *types.Map:
		return inbean.MapOf(refOf(t.Key()), refOf(t.Elem()))
	case *types.Chan:
		return inbean.ChanOf(chanDir(t.Dir()), refOf(t.Elem()))
	case *types.Signature:
		return inbean.FuncOf(tupleRefs(t.Params()), tupleRefs(t.Results()), t.Variadic())
	case *types.Named:
		return inbean.Named(qualified(t.Origin().Obj()), typeArgs(t)...)
	case *types.Basic:
		if t.Kind() == types.UnsafePointer {
			return inbean.Named("unsafe.Pointer")
		}
		// byte and rune render as uint8 and int32, as reflection does.
		return inbean.Named(types.Typ[t.Kind()].Name())
	default:
		var params []string
		collectParams(t, &params)
		return inbean.Literal(types.TypeString(t, nil), params...)
	}
}

func tupleRefs(tuple *types.Tuple) []inbean.TypeRef {
	out := make([]inbean.TypeRef, tuple.Len())
	for i := range tuple.Len() {
		out[i] = refOf(tuple.At(i).Type())
	}
	return out
}

func chanDir(d types.ChanDir) reflect.ChanDir {
	switch d {
	case types.SendOnly:
		return reflect.SendDir
	case types.RecvOnly:
		return reflect.RecvDir
	default:
		return reflect.BothDir
	}
}

// collectParams appends the names of the type parameters mentioned in t.
func collectParams(t types.Type, out *[]string) {
	switch t := types.Unalias(t).(type) {
	case *types.TypeParam:
		if name := t.Obj().Name(); !slices.Contains(*out, name) {
			*out = append(*out, name)
		}
	case *types.Pointer:
		collectParams(t.Elem(), out)
	case *types.Slice:
		collectParams(t.Elem(), out)
	case *types.Array:
		collectParams(t.Elem(), out)
	case *types.Chan:
		collectParams(t.Elem(), out)
	case *types.Map:
		collectParams(t.Key(), out)
		collectParams(t.Elem(), out)
	case *types.Named:
		args := t.TypeArgs()
		for i := range args.Len() {
			collectParams(args.At(i), out)
		}
	case *types.Signature:
		for _, tuple := range []*types.Tuple{t.Params(), t.Results()} {
			for i := range tuple.Len() {
				collectParams(tuple.At(i).Type(), out)
			}
		}
	case *types.Struct:
		for i := range t.NumFields() {
			collectParams(t.Field(i).Type(), out)
		}
	case *types.Interface:
		for i := range t.NumExplicitMethods() {
			collectParams(t.ExplicitMethod(i).Type(), out)
		}
		for i := range t.NumEmbeddeds() {
			collectParams(t.EmbeddedType(i), out)
		}
	}
}

func qualified(obj *types.TypeName) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return obj.Pkg().Path() + "." + obj.Name()
}
