/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing baked execution graphs.

It builds the same graphs a recorded program run produces, using a fluent builder
instead of YAML or JSON documents. This is particularly useful for unit tests,
generated fixtures and trying out how a chunk's transition will be synthesized.

Example usage:

	package main

	import (
		"github.com/aretw0/montage/pkg/domain"
		"github.com/aretw0/montage/pkg/dsl"
	)

	func main() {
		chunk := dsl.New("chunk").Label("x = a + b")

		chunk.Step("setup").Type("BinaryExpressionSetup").Duration(5)

		chunk.Add("sum").
			Op(domain.CreateLiteral).
			Reads("a", "b").
			Writes("x")

		chunk.Final("x", domain.DataLiteral, 3)

		// The resulting loader can be passed to montage.WithLoader(...)
		loader, err := chunk.Build()
		// ...
	}
*/
package dsl
