/*
Package ports defines the driven ports (interfaces) for Switchboard.

These interfaces decouple the loader from the places toggle definitions are
kept, so the same graph can be built from a file, a document directory, Redis
or memory.

# Key Interfaces

  - RecordSource: Produces the raw toggle records of one batch.
  - Watchable: Signals that a source changed and the graph should be reloaded.
*/
package ports
