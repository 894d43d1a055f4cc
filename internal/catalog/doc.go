// Package catalog contains the SQLite repository for merge-run
// records.
//
// One row is written per successful merge: which scan, how many
// systems, what frame drift was absorbed, how many channels came out,
// and whether pair alignment ran. The catalog is pure traceability;
// the merge pipeline never reads it.
package catalog
