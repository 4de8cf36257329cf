/*
Package dsl provides a Go DSL for programmatically declaring toggle batches.

It lets developers define toggles with a type-safe, fluent builder instead of
external YAML or JSON files. This is particularly useful for unit tests and
for hosts that compute their toggles at startup.

Example usage:

	b := dsl.New()

	b.Add("checkout").Enabled()
	b.Add("holiday-banner").Enabled().Between(start, end)
	b.Add("one-click").Enabled().DependsOn("checkout")

	// The resulting source can be used as a ports.RecordSource
	source, err := b.Build()
	// ... pass source to switchboard.New("", switchboard.WithSource(source))
*/
package dsl
