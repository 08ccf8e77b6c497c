package features

import "math"

// entropy computes the Shannon entropy of the raw string's rune
// distribution in bits: -sum(p * log2(p)) over each distinct rune's
// observed frequency p. Empty input is 0.0 by definition; the result is
// non-negative for every input and independent of rune order.
func entropy(raw string) float64 {
	if raw == "" {
		return 0.0
	}

	freq := make(map[rune]int)
	total := 0
	for _, r := range raw {
		freq[r]++
		total++
	}

	var h float64
	for _, count := range freq {
		p := float64(count) / float64(total)
		h -= p * math.Log2(p)
	}
	return h
}
