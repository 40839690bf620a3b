// SPDX-License-Identifier: MIT

package levenshtein

import "unicode/utf16"

// WordBits is the pattern length handled by the single-word path.
const WordBits = 64

// Units converts s to its UTF-16 code units.
func Units(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// Distance returns the Levenshtein distance between a and b, counted in
// UTF-16 code units.
//
// Example:
//
//	Distance("kitten", "sitting") // 3
func Distance(a, b string) int {
	return DistanceUnits(Units(a), Units(b))
}

// DistanceUnits is Distance over pre-encoded code units.
func DistanceUnits(a, b []uint16) int {
	// The longer sequence becomes the pattern.
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}
	if len(a) <= WordBits {
		return myersWord(a, b)
	}

	return myersBlocked(a, b)
}

// Similarity returns 1 − Distance(a, b)/max(len(a), len(b)) over code units.
// At least one of a and b must be non-empty: two empty strings yield NaN,
// which oracle.Validate rejects. Callers skip empty field values before this.
func Similarity(a, b string) float64 {
	ua, ub := Units(a), Units(b)
	longest := len(ua)
	if len(ub) > longest {
		longest = len(ub)
	}

	return 1 - float64(DistanceUnits(ua, ub))/float64(longest)
}

// matchMasks builds the per-symbol bitmask of pattern positions p[lo:hi].
func matchMasks(p []uint16, lo, hi int, peq map[uint16]uint64) {
	var k int
	for k = lo; k < hi; k++ {
		peq[p[k]] |= 1 << uint(k-lo)
	}
}

// myersWord handles 1 ≤ len(p) ≤ 64 with a single column word.
func myersWord(p, t []uint16) int {
	peq := make(map[uint16]uint64, len(p))
	matchMasks(p, 0, len(p), peq)

	var (
		pv    = ^uint64(0) // vertical +1 deltas: the first column is 0,1,2,...
		mv    uint64       // vertical -1 deltas
		score = len(p)     // D[m][0]
		last  = uint64(1) << uint(len(p)-1)
	)
	for _, c := range t {
		eq := peq[c]
		xv := eq | mv
		xh := (((eq & pv) + pv) ^ pv) | eq
		ph := mv | ^(xh | pv)
		mh := pv & xh
		if ph&last != 0 {
			score++
		}
		if mh&last != 0 {
			score--
		}
		ph = (ph << 1) | 1 // top row grows by one per text unit
		mh <<= 1
		pv = mh | ^(xv | ph)
		mv = ph & xv
	}

	return score
}

// myersBlocked handles len(p) > 64 by sweeping 64-unit pattern blocks.
// phc/mhc hold, per text column, the horizontal +1/-1 delta leaving the
// previous block; they start as +1 (top row D[0][j] = j).
func myersBlocked(p, t []uint16) int {
	m, n := len(p), len(t)
	hsize := (n + WordBits - 1) / WordBits
	vsize := (m + WordBits - 1) / WordBits

	phc := make([]uint64, hsize)
	mhc := make([]uint64, hsize)
	for i := range phc {
		phc[i] = ^uint64(0)
	}

	peq := make(map[uint16]uint64, WordBits)
	score := m
	var blk, i int
	for blk = 0; blk < vsize; blk++ {
		lo := blk * WordBits
		hi := lo + WordBits
		if hi > m {
			hi = m
		}
		clear(peq)
		matchMasks(p, lo, hi, peq)

		finalBlock := blk == vsize-1
		lastBit := uint(hi - 1 - lo)
		pv, mv := ^uint64(0), uint64(0)
		for i = 0; i < n; i++ {
			eq := peq[t[i]]
			w, bit := i/WordBits, uint(i%WordBits)
			pb := (phc[w] >> bit) & 1
			mb := (mhc[w] >> bit) & 1

			xv := eq | mv
			xh := ((((eq | mb) & pv) + pv) ^ pv) | eq | mb
			ph := mv | ^(xh | pv)
			mh := pv & xh
			if finalBlock {
				score += int((ph >> lastBit) & 1)
				score -= int((mh >> lastBit) & 1)
			}
			// Store the carry-out for the next block.
			if (ph>>(WordBits-1))^pb != 0 {
				phc[w] ^= 1 << bit
			}
			if (mh>>(WordBits-1))^mb != 0 {
				mhc[w] ^= 1 << bit
			}
			ph = (ph << 1) | pb
			mh = (mh << 1) | mb
			pv = mh | ^(xv | ph)
			mv = ph & xv
		}
	}

	return score
}
