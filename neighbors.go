package imbens

import "container/heap"

// neighborSearcher finds the k nearest training rows for a single query
// vector. Implementations return row indices into the training data and the
// matching distances, both sorted by distance ascending. When fewer than k
// rows exist, all of them are returned.
type neighborSearcher interface {
	search(query []float64, k int) (rows []int, dists []float64)
}

// neighbor is one candidate result during a k-NN search.
type neighbor struct {
	row  int
	dist float64
}

// neighborHeap is a max-heap of neighbors (largest distance on top) used as a
// bounded priority queue: once full, a new candidate only displaces the
// current worst.
type neighborHeap []neighbor

func (h neighborHeap) Len() int           { return len(h) }
func (h neighborHeap) Less(i, j int) bool { return h[i].dist > h[j].dist }
func (h neighborHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *neighborHeap) Push(x any)        { *h = append(*h, x.(neighbor)) }
func (h *neighborHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// offer inserts a candidate into the heap, keeping at most k entries.
// Candidates at exactly the current worst distance are rejected, so the
// earliest-seen row wins ties and searches stay deterministic.
func (h *neighborHeap) offer(row int, dist float64, k int) {
	if h.Len() < k {
		heap.Push(h, neighbor{row: row, dist: dist})
		return
	}
	if dist < (*h)[0].dist {
		(*h)[0] = neighbor{row: row, dist: dist}
		heap.Fix(h, 0)
	}
}

// drain empties the heap into index/distance slices sorted by distance
// ascending.
func (h *neighborHeap) drain() ([]int, []float64) {
	n := h.Len()
	rows := make([]int, n)
	dists := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		item := heap.Pop(h).(neighbor)
		rows[i] = item.row
		dists[i] = item.dist
	}
	return rows, dists
}

// bruteIndex is the exhaustive-scan searcher. It is the fallback for metrics
// without tree support and the cheapest choice for small training sets.
type bruteIndex struct {
	data   []float64 // flat row-major training data (n * dims)
	n      int
	dims   int
	metric DistanceMetric
}

func newBruteIndex(data []float64, n, dims int, metric DistanceMetric) *bruteIndex {
	return &bruteIndex{data: data, n: n, dims: dims, metric: metric}
}

func (b *bruteIndex) search(query []float64, k int) ([]int, []float64) {
	h := make(neighborHeap, 0, k)
	for i := 0; i < b.n; i++ {
		d := b.metric.Distance(query, b.data[i*b.dims:(i+1)*b.dims])
		h.offer(i, d, k)
	}
	return h.drain()
}
