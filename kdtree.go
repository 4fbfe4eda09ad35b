package imbens

import (
	"math"
	"sort"
)

// kdTree is a KD-tree searcher over flat row-major training data. Rows are
// reordered through a permutation slice; nodes keep axis-aligned bounding
// boxes and queries prune subtrees whose box cannot beat the current k-th
// distance. Only metrics that decompose along coordinate axes are valid
// (see kdTreeValidMetric).
type kdTree struct {
	data     []float64 // flat row-major point data (n * dims)
	n        int
	dims     int
	leafSize int
	metric   DistanceMetric
	order    []int // permutation: tree-order position → original row
	root     *kdNode
}

// kdNode covers rows order[start:end]. Leaves have no children.
type kdNode struct {
	start, end  int
	boundsMin   []float64
	boundsMax   []float64
	left, right *kdNode
}

func (nd *kdNode) isLeaf() bool { return nd.left == nil }

// newKDTree builds a KD-tree from flat row-major data with n points of
// dimensionality dims. leafSize caps the points per leaf.
func newKDTree(data []float64, n, dims int, metric DistanceMetric, leafSize int) *kdTree {
	if leafSize < 1 {
		leafSize = 1
	}
	t := &kdTree{
		data:     data,
		n:        n,
		dims:     dims,
		leafSize: leafSize,
		metric:   metric,
		order:    make([]int, n),
	}
	for i := range t.order {
		t.order[i] = i
	}
	if n > 0 {
		t.root = t.build(0, n)
	}
	return t
}

// build constructs the subtree for rows order[start:end]: bound the points,
// stop at leafSize, otherwise median-split along the widest dimension.
func (t *kdTree) build(start, end int) *kdNode {
	nd := &kdNode{
		start:     start,
		end:       end,
		boundsMin: make([]float64, t.dims),
		boundsMax: make([]float64, t.dims),
	}
	for d := 0; d < t.dims; d++ {
		nd.boundsMin[d] = math.Inf(1)
		nd.boundsMax[d] = math.Inf(-1)
	}
	for i := start; i < end; i++ {
		row := t.order[i]
		for d := 0; d < t.dims; d++ {
			v := t.data[row*t.dims+d]
			if v < nd.boundsMin[d] {
				nd.boundsMin[d] = v
			}
			if v > nd.boundsMax[d] {
				nd.boundsMax[d] = v
			}
		}
	}

	if end-start <= t.leafSize {
		return nd
	}

	splitDim := 0
	maxSpread := -1.0
	for d := 0; d < t.dims; d++ {
		if spread := nd.boundsMax[d] - nd.boundsMin[d]; spread > maxSpread {
			maxSpread = spread
			splitDim = d
		}
	}
	t.sortByDimension(start, end, splitDim)
	mid := start + (end-start)/2

	nd.left = t.build(start, mid)
	nd.right = t.build(mid, end)
	return nd
}

// sortByDimension sorts order[start:end] by the given dimension.
func (t *kdTree) sortByDimension(start, end, dim int) {
	sub := t.order[start:end]
	dims := t.dims
	data := t.data
	sort.Slice(sub, func(i, j int) bool {
		return data[sub[i]*dims+dim] < data[sub[j]*dims+dim]
	})
}

func (t *kdTree) search(query []float64, k int) ([]int, []float64) {
	h := make(neighborHeap, 0, k)
	if t.root != nil {
		t.searchNode(t.root, query, k, &h)
	}
	return h.drain()
}

// searchNode traverses the tree, visiting the nearer child first and pruning
// the farther child when its box lower bound (in reduced-distance space)
// cannot improve on the current k-th distance.
func (t *kdTree) searchNode(nd *kdNode, query []float64, k int, h *neighborHeap) {
	if nd.isLeaf() {
		for i := nd.start; i < nd.end; i++ {
			row := t.order[i]
			d := t.metric.Distance(query, t.data[row*t.dims:(row+1)*t.dims])
			h.offer(row, d, k)
		}
		return
	}

	leftRdist := t.minRdistToBox(nd.left, query)
	rightRdist := t.minRdistToBox(nd.right, query)

	near, far := nd.left, nd.right
	farRdist := rightRdist
	if rightRdist < leftRdist {
		near, far = nd.right, nd.left
		farRdist = leftRdist
	}

	t.searchNode(near, query, k, h)

	if h.Len() < k || farRdist < t.metric.DistToRdist((*h)[0].dist) {
		t.searchNode(far, query, k, h)
	}
}

// minRdistToBox returns a lower bound, in reduced-distance space, on the
// distance between the query point and any point inside the node's box.
func (t *kdTree) minRdistToBox(nd *kdNode, query []float64) float64 {
	switch m := t.metric.(type) {
	case ChebyshevMetric:
		var rdist float64
		for d := 0; d < t.dims; d++ {
			if g := boxGap(query[d], nd.boundsMin[d], nd.boundsMax[d]); g > rdist {
				rdist = g
			}
		}
		return rdist

	case MinkowskiMetric:
		var rdist float64
		for d := 0; d < t.dims; d++ {
			rdist += math.Pow(boxGap(query[d], nd.boundsMin[d], nd.boundsMax[d]), m.P)
		}
		return rdist

	default:
		// Euclidean and Manhattan: sum of per-dimension gaps raised to the
		// metric exponent (2 and 1 respectively).
		var rdist float64
		p := metricP(t.metric)
		for d := 0; d < t.dims; d++ {
			rdist += math.Pow(boxGap(query[d], nd.boundsMin[d], nd.boundsMax[d]), p)
		}
		return rdist
	}
}

// boxGap is the one-dimensional distance from v to the interval [lo, hi];
// zero when v lies inside it.
func boxGap(v, lo, hi float64) float64 {
	if v < lo {
		return lo - v
	}
	if v > hi {
		return v - hi
	}
	return 0
}
