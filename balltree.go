package imbens

import "sort"

// ballTree is a ball-tree searcher over flat row-major training data. Each
// node stores the centroid and radius of the smallest observed enclosing
// ball; queries prune subtrees whose ball cannot beat the current k-th
// distance. Valid for any metric satisfying the triangle inequality.
type ballTree struct {
	data     []float64 // flat row-major point data (n * dims)
	n        int
	dims     int
	leafSize int
	metric   DistanceMetric
	order    []int // permutation: tree-order position → original row
	root     *ballNode
}

// ballNode covers rows order[start:end]. Leaves have no children.
type ballNode struct {
	start, end  int
	centroid    []float64
	radius      float64
	left, right *ballNode
}

func (nd *ballNode) isLeaf() bool { return nd.left == nil }

// newBallTree builds a ball tree from flat row-major data with n points of
// dimensionality dims. leafSize caps the points per leaf.
func newBallTree(data []float64, n, dims int, metric DistanceMetric, leafSize int) *ballTree {
	if leafSize < 1 {
		leafSize = 1
	}
	t := &ballTree{
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

// build constructs the subtree for rows order[start:end]: centroid and radius
// first, then a median split along the widest dimension unless the node fits
// in a leaf.
func (t *ballTree) build(start, end int) *ballNode {
	nd := &ballNode{start: start, end: end, centroid: make([]float64, t.dims)}

	for i := start; i < end; i++ {
		row := t.order[i]
		for d := 0; d < t.dims; d++ {
			nd.centroid[d] += t.data[row*t.dims+d]
		}
	}
	count := float64(end - start)
	for d := 0; d < t.dims; d++ {
		nd.centroid[d] /= count
	}

	for i := start; i < end; i++ {
		row := t.order[i]
		d := t.metric.Distance(nd.centroid, t.data[row*t.dims:(row+1)*t.dims])
		if d > nd.radius {
			nd.radius = d
		}
	}

	if end-start <= t.leafSize {
		return nd
	}

	splitDim := t.widestDimension(start, end)
	t.sortByDimension(start, end, splitDim)
	mid := start + (end-start)/2

	nd.left = t.build(start, mid)
	nd.right = t.build(mid, end)
	return nd
}

// widestDimension returns the dimension with the greatest spread among rows
// order[start:end].
func (t *ballTree) widestDimension(start, end int) int {
	bestDim := 0
	bestSpread := -1.0
	for d := 0; d < t.dims; d++ {
		lo := t.data[t.order[start]*t.dims+d]
		hi := lo
		for i := start + 1; i < end; i++ {
			v := t.data[t.order[i]*t.dims+d]
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if spread := hi - lo; spread > bestSpread {
			bestSpread = spread
			bestDim = d
		}
	}
	return bestDim
}

// sortByDimension sorts order[start:end] by the given dimension.
func (t *ballTree) sortByDimension(start, end, dim int) {
	sub := t.order[start:end]
	dims := t.dims
	data := t.data
	sort.Slice(sub, func(i, j int) bool {
		return data[sub[i]*dims+dim] < data[sub[j]*dims+dim]
	})
}

func (t *ballTree) search(query []float64, k int) ([]int, []float64) {
	h := make(neighborHeap, 0, k)
	if t.root != nil {
		t.searchNode(t.root, query, k, &h)
	}
	return h.drain()
}

// searchNode traverses the tree, visiting the nearer child first and pruning
// the farther child when even the closest point its ball could hold
// (centroid distance minus radius) cannot improve on the current k-th
// distance.
func (t *ballTree) searchNode(nd *ballNode, query []float64, k int, h *neighborHeap) {
	if nd.isLeaf() {
		for i := nd.start; i < nd.end; i++ {
			row := t.order[i]
			d := t.metric.Distance(query, t.data[row*t.dims:(row+1)*t.dims])
			h.offer(row, d, k)
		}
		return
	}

	leftBound := t.minDistToBall(nd.left, query)
	rightBound := t.minDistToBall(nd.right, query)

	near, far := nd.left, nd.right
	farBound := rightBound
	if rightBound < leftBound {
		near, far = nd.right, nd.left
		farBound = leftBound
	}

	t.searchNode(near, query, k, h)

	if h.Len() < k || farBound < (*h)[0].dist {
		t.searchNode(far, query, k, h)
	}
}

// minDistToBall returns a lower bound on the distance between the query and
// any point inside the node's ball.
func (t *ballTree) minDistToBall(nd *ballNode, query []float64) float64 {
	d := t.metric.Distance(query, nd.centroid) - nd.radius
	if d < 0 {
		return 0
	}
	return d
}
