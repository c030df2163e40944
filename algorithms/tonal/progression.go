package tonal

import "sort"

// ChordTransition is one observed ordered pair of consecutive chord
// labels with its occurrence count. Neither label is ever the
// NoChordLabel sentinel.
type ChordTransition struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}

// CountProgressions scans consecutive label pairs and aggregates them
// into a transition table, skipping any pair touching NoChordLabel.
// Accumulation is a hash map keyed by the ordered pair, so each
// update is O(1); the result is sorted by descending count with ties
// kept in first-encountered order.
func CountProgressions(labels []string) []ChordTransition {
	type pair struct {
		from, to string
	}

	counts := make(map[pair]int)
	var order []pair

	for i := 0; i+1 < len(labels); i++ {
		if labels[i] == NoChordLabel || labels[i+1] == NoChordLabel {
			continue
		}
		p := pair{from: labels[i], to: labels[i+1]}
		if _, seen := counts[p]; !seen {
			order = append(order, p)
		}
		counts[p]++
	}

	transitions := make([]ChordTransition, len(order))
	for i, p := range order {
		transitions[i] = ChordTransition{From: p.from, To: p.to, Count: counts[p]}
	}

	sort.SliceStable(transitions, func(i, j int) bool {
		return transitions[i].Count > transitions[j].Count
	})

	return transitions
}
