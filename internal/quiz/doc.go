// Package quiz runs vocabulary test sessions over a deck.
//
// A session partitions the deck's words into one pool per Category. Pools are
// independent views: a word with both pinyin and translations sits in all
// four. Each round picks a non-empty category uniformly, draws a word from
// that pool uniformly without replacement, and grades the answer. The
// session ends after the requested number of questions or as soon as every
// pool is empty, whichever comes first.
package quiz
