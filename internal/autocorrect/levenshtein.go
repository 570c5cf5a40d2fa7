// Package autocorrect proposes spelling corrections for noisy input words.
package autocorrect

// DistanceFunc computes an edit distance between two strings. The engine
// accepts one at construction so tests can observe or replace the metric.
type DistanceFunc func(a, b string) int

// Distance computes the Levenshtein edit distance between two strings,
// counted over runes: the minimum number of single-character insertions,
// deletions, and substitutions turning a into b.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// DistanceWithin reports whether Distance(a, b) is at most max, skipping
// the full computation when the length difference alone exceeds the bound.
func DistanceWithin(a, b string, max int) (int, bool) {
	if !withinLengthBound(a, b, max) {
		return 0, false
	}
	d := Distance(a, b)
	return d, d <= max
}

// withinLengthBound is the cheap lower bound on edit distance: two strings
// whose rune lengths differ by more than max cannot be within max edits.
func withinLengthBound(a, b string, max int) bool {
	diff := len([]rune(a)) - len([]rune(b))
	if diff < 0 {
		diff = -diff
	}
	return diff <= max
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
