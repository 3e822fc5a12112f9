package secrets

import "math"

// ShannonEntropy returns the Shannon entropy of s in bits per character:
// -Σ p(c)·log2(p(c)) over character frequencies. Real secrets are close to
// random and score high; repeated-character placeholders like "XXXX..."
// score near zero. The empty string yields zero.
func ShannonEntropy(s string) float64 {
	if s == "" {
		return 0
	}

	freq := make(map[rune]int)
	total := 0
	for _, r := range s {
		freq[r]++
		total++
	}

	var entropy float64
	for _, count := range freq {
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}
