// Package inbean computes which mocks and spies a test fixture wants injected
// inside other beans, and where.
//
// A fixture is described by a Class: its own fields plus embedded
// (inherited) classes, possibly generic. A field asks for a mock or a spy
// through one or more Requests, each naming the target bean that should
// receive it and optionally the bean instance name used to disambiguate
// same-typed candidates inside that target.
//
// The Parser walks every field, resolves the type to substitute (binding
// type parameters of generic embedded classes against the scanned class),
// builds a Definition/Target pair for every request and folds the pairs into
// a mapping of one Definition to many Targets. Definitions are plain
// comparable values, so two requests that describe the same mock or spy end
// up under one key.
//
// Nothing here creates mocks or touches the object graph. The result is an
// immutable *Definitions snapshot consumed by whatever rewires the beans.
//
// Typical usage with struct tags:
//
//	type OrderServiceTest struct {
//		Repo  Repository `mockinbean:"orderService"`
//		Clock Clock      `spyinbean:"orderService;billingService,name=clock"`
//	}
//
//	p := inbean.NewParser()
//	if err := p.ParseStruct(OrderServiceTest{}); err != nil {
//		return err
//	}
//	for def, targets := range p.Definitions().All() {
//		...
//	}
package inbean
