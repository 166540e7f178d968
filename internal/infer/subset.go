package infer

import "github.com/ppiankov/chronomap/internal/model"

// exhaustiveLimit bounds the subset search. Maps carry at most a handful
// of recognizable entities, so 2^n enumeration is cheap below this; past
// it a greedy pass keeps the worst case linear-log.
const exhaustiveLimit = 12

// maximalConsistentSubset returns the largest subset of entity signals in
// which every pair of ranges overlaps. Ties between equally large subsets
// go to the one with higher total confidence. Input must be non-empty;
// the result always is, since any single signal is trivially consistent.
//
// This keeps composite/anachronistic maps datable without discarding all
// entity evidence: the dominant era wins, the outliers surface as
// conflicts.
func maximalConsistentSubset(entities []model.Signal) []model.Signal {
	if len(entities) == 1 {
		return entities
	}
	if len(entities) <= exhaustiveLimit {
		return exhaustiveSubset(entities)
	}
	return greedySubset(entities)
}

func exhaustiveSubset(entities []model.Signal) []model.Signal {
	n := len(entities)
	bestMask := 0
	bestSize := 0
	bestConf := 0.0

	for mask := 1; mask < 1<<n; mask++ {
		size := popcount(mask)
		if size < bestSize {
			continue
		}
		if !pairwiseConsistent(entities, mask) {
			continue
		}
		conf := 0.0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				conf += entities[i].Confidence
			}
		}
		if size > bestSize || (size == bestSize && conf > bestConf) {
			bestMask, bestSize, bestConf = mask, size, conf
		}
	}

	out := make([]model.Signal, 0, bestSize)
	for i := 0; i < n; i++ {
		if bestMask&(1<<i) != 0 {
			out = append(out, entities[i])
		}
	}
	return out
}

func pairwiseConsistent(entities []model.Signal, mask int) bool {
	for i := 0; i < len(entities); i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		for j := i + 1; j < len(entities); j++ {
			if mask&(1<<j) == 0 {
				continue
			}
			if !entities[i].Range.Overlaps(entities[j].Range) {
				return false
			}
		}
	}
	return true
}

// greedySubset seeds with each signal in turn and grows the set with every
// signal consistent with all members, keeping the best result. Quadratic,
// and exact whenever the consistent signals form a single cluster, which
// is the realistic shape of map evidence.
func greedySubset(entities []model.Signal) []model.Signal {
	var best []model.Signal
	bestConf := 0.0

	for seed := range entities {
		subset := []model.Signal{entities[seed]}
		conf := entities[seed].Confidence

		for i, cand := range entities {
			if i == seed {
				continue
			}
			consistent := true
			for _, member := range subset {
				if !cand.Range.Overlaps(member.Range) {
					consistent = false
					break
				}
			}
			if consistent {
				subset = append(subset, cand)
				conf += cand.Confidence
			}
		}

		if len(subset) > len(best) || (len(subset) == len(best) && conf > bestConf) {
			best, bestConf = subset, conf
		}
	}
	return best
}

func popcount(v int) int {
	n := 0
	for v != 0 {
		v &= v - 1
		n++
	}
	return n
}
