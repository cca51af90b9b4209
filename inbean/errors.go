package inbean

import (
	"errors"
	"strconv"
)

var (
	// ErrNilSource is returned when Parse is given a nil class.
	ErrNilSource = errors.New("inbean: nil source class")

	// ErrNotStruct is returned when reflection is asked to describe a non-struct type.
	ErrNotStruct = errors.New("inbean: not a struct type")

	// ErrUnresolvableType matches every UnresolvableTypeError.
	ErrUnresolvableType = errors.New("inbean: unable to deduce type")

	// ErrInvalidTarget matches every InvalidTargetError.
	ErrInvalidTarget = errors.New("inbean: blank target bean reference")

	// ErrTagSyntax matches every TagSyntaxError.
	ErrTagSyntax = errors.New("inbean: malformed struct tag")
)

func verb(k Kind) string {
	if k == KindSpy {
		return "spy"
	}
	return "mock"
}

// UnresolvableTypeError is returned when a field requests a mock or spy but
// its declared type cannot be bound to a concrete type.
type UnresolvableTypeError struct {
	Kind Kind
	// Field is "Owner.Field".
	Field string
	// Type is the declared type expression.
	Type string
}

// Error implements the error interface.
func (e UnresolvableTypeError) Error() string {
	// Example: inbean: unable to deduce type to mock from field "Base.Repo" (T)
	return "inbean: unable to deduce type to " + verb(e.Kind) + " from field " +
		strconv.Quote(e.Field) + " (" + e.Type + ")"
}

// Is makes errors.Is(err, ErrUnresolvableType) hold.
func (e UnresolvableTypeError) Is(target error) bool { return target == ErrUnresolvableType }

// InvalidTargetError is returned when a request names a blank target bean.
type InvalidTargetError struct {
	Kind Kind
	// Field is "Owner.Field".
	Field string
}

// Error implements the error interface.
func (e InvalidTargetError) Error() string {
	// Example: inbean: blank target bean reference on spy request of field "Test.Clock"
	return "inbean: blank target bean reference on " + verb(e.Kind) + " request of field " + strconv.Quote(e.Field)
}

// Is makes errors.Is(err, ErrInvalidTarget) hold.
func (e InvalidTargetError) Is(target error) bool { return target == ErrInvalidTarget }

// TagSyntaxError is returned when a struct tag cannot be parsed.
type TagSyntaxError struct {
	// Field is "Owner.Field".
	Field  string
	Tag    string
	Reason string
}

// Error implements the error interface.
func (e TagSyntaxError) Error() string {
	// Example: inbean: malformed mockinbean tag on field "Test.Repo": unknown option "nmae"
	return "inbean: malformed " + e.Tag + " tag on field " + strconv.Quote(e.Field) + ": " + e.Reason
}

// Is makes errors.Is(err, ErrTagSyntax) hold.
func (e TagSyntaxError) Is(target error) bool { return target == ErrTagSyntax }
