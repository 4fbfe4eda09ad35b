package imbens

import "sort"

// classStats holds the per-class bookkeeping for one resampling run.
type classStats struct {
	// counts maps each label to its number of rows.
	counts map[int]int

	// classes holds every distinct label in ascending order. Processing
	// follows this order so runs over the same data are reproducible.
	classes []int

	// indices maps each label to the row positions holding it, in
	// first-appearance order.
	indices map[int][]int

	// minority is the label with the fewest rows, majority the label with
	// the most. Ties break toward the label that appears first in the input.
	minority int
	majority int
}

// collectClassStats scans the labels once and derives the class inventory
// used by the rest of the run.
func collectClassStats(labels []int) classStats {
	stats := classStats{
		counts:  make(map[int]int),
		indices: make(map[int][]int),
	}

	for i, label := range labels {
		if _, seen := stats.counts[label]; !seen {
			stats.classes = append(stats.classes, label)
		}
		stats.counts[label]++
		stats.indices[label] = append(stats.indices[label], i)
	}

	// Extremes resolve in first-appearance order, before the ascending sort,
	// so count ties break toward the earliest label in the input.
	minority, majority := stats.classes[0], stats.classes[0]
	for _, label := range stats.classes[1:] {
		if stats.counts[label] < stats.counts[minority] {
			minority = label
		}
		if stats.counts[label] > stats.counts[majority] {
			majority = label
		}
	}
	stats.minority = minority
	stats.majority = majority

	sort.Ints(stats.classes)
	return stats
}
