// Package features implements the lexical feature extractor for URL strings.
//
// Given a raw URL, the extractor deterministically computes a fixed, named
// set of numeric signals (length, character-class counts, structural counts,
// entropy, keyword flags, TLD rarity, IP-literal detection) that an external
// classifier consumes to label the URL benign or malicious.
//
// Every feature is a total function of the raw string plus two fixed
// configuration sets (keywords and common TLDs): extraction never returns an
// error, never panics, and identical input always produces an identical
// vector. Malformed input falls back to documented default values instead of
// failing, because the downstream classifier contract requires a complete
// vector for every input.
//
// Design decision: the extractor holds no mutable state and performs no I/O,
// so Extract may be called concurrently from any number of goroutines
// without coordination.
package features
