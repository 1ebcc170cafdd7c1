// Package store is the deck registry: it owns the store metadata file, the
// directory of deck files, and every deck and word operation the CLI exposes.
//
// The metadata's deck list is authoritative for existence; deck files are
// authoritative for content. An operation on a registered deck whose file is
// missing fails with an error matching both services.ErrCorrupted and
// services.ErrNotFound instead of silently recreating the deck.
//
// Open acquires an exclusive lock on the data directory so two processes never
// interleave writes. Every mutation loads the affected deck, changes it, and
// persists the whole file before returning.
package store
