// Package scan implements the multi-system merge pipeline for optical
// scan recordings.
//
// One scan is recorded by up to three independently clocked acquisition
// subsystems (letters a, b, c), each writing its own raw file. The
// pipeline locates the per-system files, loads and sync-crops them
// concurrently, reconciles their frame counts within a fixed drift
// tolerance, merges the per-system channel data onto one measurement
// axis, reorders the merged rows onto the canonical source-detector
// pairing when the raw layouts disagree with it, and aggregates the
// per-system metadata into a single record.
//
// All failures are fatal for the invocation: no partial or interpolated
// result is ever returned. Calls are independent and idempotent given
// identical files on disk.
package scan
