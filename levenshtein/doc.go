// Package levenshtein computes exact edit distance between two strings with a
// bit-parallel recurrence, and a normalized similarity derived from it.
//
// What is measured?
//
//	The Levenshtein distance is the minimum number of single-unit insertions,
//	deletions and substitutions turning one string into the other. Units are
//	UTF-16 code units, so lengths and distances agree with environments that
//	index strings that way (a supplementary-plane rune counts as two units).
//
// Algorithm:
//
//   - Myers' bit-vector algorithm in Hyyrö's formulation. The longer string is
//     the pattern, encoded as per-symbol match masks; the shorter string is
//     scanned once while vertical deltas live in machine words.
//   - Single-word path: pattern ≤ 64 units, one uint64 carries a whole column.
//   - Blocked path: pattern > 64 units is cut into 64-unit blocks processed one
//     after another; horizontal deltas between blocks are kept bit-packed per
//     column of the text.
//
// Similarity:
//
//	Similarity(a, b) = 1 − Distance(a, b) / max(len(a), len(b))
//
//	Equal non-empty strings give 1. The value is not clamped. Two empty
//	strings give NaN (0/0); callers skip empty values before comparing.
//
// Complexity:
//
//   - Time:   O(⌈m/64⌉·n) for pattern length m and text length n
//   - Memory: O(σ + n/64) for σ distinct pattern symbols
package levenshtein
