// Package pinyin converts keyboard-friendly tone notation into pinyin with
// tone diacritics.
//
// Learners type tones by doubling a vowel and varying its case:
//
//	AA  -> tone 1 (ā)
//	aa  -> tone 2 (á)
//	AaA -> tone 3 (ǎ)
//	Aa  -> tone 4 (à)
//
// Normalize is used by the quiz engine to grade pinyin answers against the
// stored, diacritic form.
package pinyin
