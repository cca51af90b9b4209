// Package inbean computes the mocks and spies that test fixtures want
// injected inside other beans of a dependency-injection context.
//
// The repository is organised as:
//
//   - inbean: the core. Type resolution for fixture fields (including type
//     parameters of generic embedded structs), mock/spy definition building,
//     and the parser that groups definitions with their injection targets.
//   - inbean/declarative: fixtures described in YAML.
//   - inbean/srcscan: fixtures read from Go source via go/packages.
//   - cmd/inbean: a CLI that prints the grouped definitions of fixtures.
//   - examples/fixtures: sample fixtures used by the tests and examples.
//
// Creating the mocks and wiring them into beans is left to the caller; the
// output here is a read-only mapping from each definition to its targets.
//
// Import
//
//	"github.com/sghaida/inbean/inbean"
package inbean
