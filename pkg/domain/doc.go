/*
Package domain contains the core models of Switchboard.

It defines raw toggle definitions and the toggle graph materialized from them.
This package is kept pure and free of I/O so that every source and adapter
shares the same vocabulary.

# Key Entities

  - Record: One raw definition (name, base flag, established flag, optional
    date window, dependency names) as produced by a source.
  - Toggle: A classified feature switch. Its Kind is boolean, date_range or
    established; a dependent toggle additionally requires all of its
    dependencies to be enabled.
  - Status: A serializable snapshot of a toggle evaluated at a point in time.
  - SnapshotDiff: Toggles added, removed or flipped between two loads.
*/
package domain
