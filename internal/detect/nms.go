package detect

import "sort"

// DefaultIoUThreshold is the overlap above which a lower-confidence
// candidate is suppressed.
const DefaultIoUThreshold = 0.5

// NonMaxSuppress greedily filters candidates: the highest-confidence
// remaining candidate is kept, and every remaining candidate overlapping it
// with IoU above the threshold is discarded. The sort is stable, so equal
// confidences keep their input order and the surviving set is always
// pairwise IoU-disjoint under the threshold.
func NonMaxSuppress(candidates []Candidate, iouThreshold float64) []Candidate {
	if len(candidates) == 0 {
		return nil
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return candidates[order[a]].Confidence > candidates[order[b]].Confidence
	})

	suppressed := make([]bool, len(candidates))
	var kept []Candidate
	for i, oi := range order {
		if suppressed[oi] {
			continue
		}
		keep := candidates[oi]
		kept = append(kept, keep)
		for _, oj := range order[i+1:] {
			if suppressed[oj] {
				continue
			}
			if keep.Rect.IoU(candidates[oj].Rect) > iouThreshold {
				suppressed[oj] = true
			}
		}
	}
	return kept
}
