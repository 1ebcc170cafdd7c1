// Package main hosts the hzcli entrypoint and command graph.
//
// The Cobra-based command tree maps terminal invocations onto the deck store:
// deck and word management, phrase generation, the interactive word quiz, API
// key management, and configuration scaffolding. It centralizes configuration
// resolution, logger construction, and store opening so subcommands only deal
// with arguments and output.
//
// Every command that touches decks opens the store for the duration of the
// command and closes it before returning; the store persists each mutation as
// it happens, so there is nothing to flush on exit.
package main
