// Package rawnir reads and writes the raw acquisition container
// produced by one optical subsystem for one scan.
//
// A container holds the channel-by-frame measurement array together
// with the source-detector pair list, optode positions, per-frame
// timestamps, synchronization pulse indices, and auxiliary channels.
// The decoder is the per-system loader used by the merge pipeline; the
// encoder exists for fixtures, tooling, and writing merged results.
package rawnir
