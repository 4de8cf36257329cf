/*
Package switchboard loads declarative feature-toggle definitions into linked,
evaluable toggles.

Each definition is a record with a name, an enabled flag, an optional
established marker, an optional date window and the names of the toggles it
depends on. Loading happens in two passes: every record is classified into a
toggle variant, then dependency names are resolved to the toggles built in the
first pass. An unknown dependency name fails the whole load.

# Variants

  - Established: always enabled.
  - Date range: enabled when the flag is set and now falls inside the window (bounds inclusive).
  - Boolean: the flag itself.

Any variant with dependencies is enabled only when all of its dependencies are.

# Usage

For a one-off load, hand records to Load:

	toggles, err := switchboard.Load([]domain.Record{
		{Name: "checkout", Enabled: true},
		{Name: "new-cart", Enabled: true, Dependencies: []string{"checkout"}},
	})

To serve toggles from a file or a directory, create a Board and reload it:

	board, err := switchboard.New("toggles.yaml", switchboard.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}
	if err := board.Reload(ctx); err != nil {
		log.Fatal(err)
	}
	if board.IsEnabled("new-cart") {
		// ...
	}

A missing file gives an empty board. Other sources (Redis, in-memory, custom)
are injected with WithSource.
*/
package switchboard
