package faq

import "sort"

// MinimumScore is the lowest score accepted as a confident match. One plain
// question keyword sits exactly on the line; a technical term or a phrase
// match clears it.
const MinimumScore = 15

// SelectBest returns the highest scoring candidate if it reaches
// MinimumScore. Ties go to the candidate that comes first in corpus order.
func SelectBest(candidates []ScoredCandidate) (ScoredCandidate, bool) {
	if len(candidates) == 0 {
		return ScoredCandidate{}, false
	}

	sorted := make([]ScoredCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	if sorted[0].Score < MinimumScore {
		return ScoredCandidate{}, false
	}
	return sorted[0], true
}
