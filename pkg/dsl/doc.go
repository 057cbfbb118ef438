/*
Package dsl provides a Go DSL for building quote wizards in code.

It is an alternative to the YAML catalog: a fluent builder produces the same
definitions and checks them the same way. This is particularly useful for
tests and for wizards assembled at runtime.

Example usage:

	cat, err := dsl.New().
		SubmitLabel("Get My Quote", "Sending...").
		Step("About You").
		Text("firstName", "First Name").Required().
		Email("email", "Email").Required().Placeholder("you@example.com").
		Step("Coverage").
		Select("coverageNeeded", "Coverage For", "Just me", "My family").Required().
		Step("Review & Submit").
		Build()

	engine, err := quoteflow.New(quoteflow.WithCatalog(cat))
*/
package dsl
