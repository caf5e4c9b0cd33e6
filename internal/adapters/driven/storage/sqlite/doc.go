// Package sqlite implements the run manifest store on SQLite via the
// pure-Go modernc.org/sqlite driver. Schema changes ship as embedded
// migrations applied at open time.
package sqlite
