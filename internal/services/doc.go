// Package services defines the error kinds shared by the deck store, the quiz
// engine, and the external content generator.
//
// Every failure surfaced to the CLI carries one of the sentinel markers so the
// command layer can classify it with errors.Is without parsing messages. Use
// Wrap to attach component and operation context while keeping both the
// marker and the underlying cause reachable.
package services
