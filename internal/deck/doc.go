// Package deck models vocabulary decks and persists them as one JSON file per
// deck.
//
// A Deck maps headwords (the Chinese text itself) to Word records and,
// optionally, generated phrase text to Phrase records. The Repository owns
// the on-disk representation: Load, Save, and Delete address a deck by name
// and map filesystem conditions onto the shared error kinds (a missing file
// is ErrNotFound, unparseable or empty content is ErrCorrupted).
//
// Merge and Clone implement the content semantics the store relies on:
// merging never overwrites a headword already present in the target, and a
// clone shares no mutable state with its source.
package deck
