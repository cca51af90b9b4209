package inbean

import (
	"reflect"
	"strconv"
	"strings"
)

// Struct tag keys understood by FromStruct and the source scanner.
//
//	Repo  Repository `mockinbean:"orderService"`
//	Clock Clock      `spyinbean:"orderService;billingService,name=clock" qualifier:"utc"`
//
// Occurrences are separated by ';'. Each occurrence is the target bean
// reference followed by optional ",name=<bean instance>".
const (
	TagMock      = "mockinbean"
	TagSpy       = "spyinbean"
	TagQualifier = "qualifier"
)

// FieldTags holds the requests and qualifier read from one struct tag.
type FieldTags struct {
	Mocks     []Request
	Spies     []Request
	Qualifier Qualifier
}

// Requests reports whether any mock or spy is requested.
func (t FieldTags) Requests() bool { return len(t.Mocks) > 0 || len(t.Spies) > 0 }

// ParseTag reads the inbean keys of tag. field is "Owner.Field" and only
// used in errors.
func ParseTag(field string, tag reflect.StructTag) (FieldTags, error) {
	var out FieldTags
	if v, ok := tag.Lookup(TagMock); ok {
		reqs, err := parseRequests(v)
		if err != nil {
			return FieldTags{}, TagSyntaxError{Field: field, Tag: TagMock, Reason: err.Error()}
		}
		out.Mocks = reqs
	}
	if v, ok := tag.Lookup(TagSpy); ok {
		reqs, err := parseRequests(v)
		if err != nil {
			return FieldTags{}, TagSyntaxError{Field: field, Tag: TagSpy, Reason: err.Error()}
		}
		out.Spies = reqs
	}
	if v, ok := tag.Lookup(TagQualifier); ok {
		out.Qualifier = Qualifier(strings.TrimSpace(v))
	}
	return out, nil
}

type reasonError string

func (e reasonError) Error() string { return string(e) }

// parseRequests keeps blank targets: they are reported by the Builder with
// field context.
func parseRequests(v string) ([]Request, error) {
	parts := strings.Split(v, ";")
	out := make([]Request, 0, len(parts))
	for _, part := range parts {
		opts := strings.Split(part, ",")
		req := Request{Target: strings.TrimSpace(opts[0])}
		for _, opt := range opts[1:] {
			key, val, ok := strings.Cut(opt, "=")
			key = strings.TrimSpace(key)
			if !ok {
				return nil, reasonError("option " + strconv.Quote(key) + " has no value")
			}
			switch key {
			case "name":
				req.Name = strings.TrimSpace(val)
			default:
				return nil, reasonError("unknown option " + strconv.Quote(key))
			}
		}
		out = append(out, req)
	}
	return out, nil
}
