package stats

import "sort"

// FindPeaks locates local maxima in a series, keeping only peaks at
// or above minHeight and at least minDistance samples apart. When two
// candidate peaks are closer than minDistance the higher one wins.
// Flat-topped peaks report the middle sample of the plateau.
//
// Returns indices in ascending order; an empty or monotonic series
// yields no peaks.
func FindPeaks(series []float64, minHeight float64, minDistance int) []int {
	if len(series) < 3 {
		return nil
	}
	if minDistance < 1 {
		minDistance = 1
	}

	var candidates []int

	i := 1
	for i < len(series)-1 {
		if series[i] <= series[i-1] {
			i++
			continue
		}

		// walk across a possible plateau
		j := i
		for j < len(series)-1 && series[j+1] == series[i] {
			j++
		}

		if j < len(series)-1 && series[j+1] < series[i] {
			mid := (i + j) / 2
			if series[mid] >= minHeight {
				candidates = append(candidates, mid)
			}
		}
		i = j + 1
	}

	if len(candidates) == 0 {
		return nil
	}

	// enforce minimum separation, highest peaks first
	byHeight := make([]int, len(candidates))
	copy(byHeight, candidates)
	sort.SliceStable(byHeight, func(a, b int) bool {
		return series[byHeight[a]] > series[byHeight[b]]
	})

	suppressed := make(map[int]bool)
	for _, p := range byHeight {
		if suppressed[p] {
			continue
		}
		for _, q := range candidates {
			if q != p && !suppressed[q] && abs(q-p) < minDistance {
				suppressed[q] = true
			}
		}
	}

	var peaks []int
	for _, p := range candidates {
		if !suppressed[p] {
			peaks = append(peaks, p)
		}
	}
	return peaks
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
