// Package textutil provides text helpers for answer comparison and
// filesystem-safe names.
//
// The primary use cases are:
//   - Comparing learner answers with stored values regardless of case,
//     surrounding whitespace, or Unicode composition form
//   - Validating deck names before they become file names
package textutil
