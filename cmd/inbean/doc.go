// Command inbean prints the mock and spy definitions a test fixture requests
// inside other beans, grouped by definition.
//
// Fixtures can come from Go source or from a YAML description:
//
//	inbean scan github.com/acme/app/internal/orders OrderServiceTest
//	inbean decl fixtures.yaml OrderTest
//
// With several fixtures, all of them are folded into one mapping, the way a
// composed test configuration would be. Without a fixture name, decl parses
// every class of the document.
//
// Output formats
//
//	--format json   (default) one object per definition with its targets
//	--format yaml   same shape as json
//	--format dump   go-spew dump, handy when comparing runs
//
// --verbose logs every merged definition/target pair to stderr.
//
// The command fails with a non-zero status on the first fixture that cannot
// be parsed (blank target bean, unresolvable generic field type, malformed
// tag); nothing is printed in that case.
package main
