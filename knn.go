package imbens

import (
	"fmt"
	"runtime"
)

// KNNAlgorithm selects the neighbor-search strategy used by
// KNeighborsClassifier.
type KNNAlgorithm string

const (
	KNNAuto     KNNAlgorithm = "auto"
	KNNBrute    KNNAlgorithm = "brute"
	KNNKDTree   KNNAlgorithm = "kd_tree"
	KNNBallTree KNNAlgorithm = "ball_tree"
)

// KNNConfig controls KNeighborsClassifier behavior.
// Start with [DefaultKNNConfig] and override the fields you need.
type KNNConfig struct {
	// NumNeighbors is the number of nearest training rows consulted per
	// prediction. Must be >= 1. Default: 1.
	NumNeighbors int

	// Metric is the distance function used to compare feature vectors.
	// Built-in: EuclideanMetric, ManhattanMetric, ChebyshevMetric,
	// MinkowskiMetric, CosineMetric. Use DistanceFunc to wrap a custom
	// function. Default: EuclideanMetric.
	Metric DistanceMetric

	// Algorithm selects the neighbor-search strategy. "auto" picks based on
	// the metric, dimensionality, and training-set size. "brute" scans every
	// training row. "kd_tree" and "ball_tree" build a spatial index at fit
	// time; both require a compatible metric. Default: "auto".
	Algorithm KNNAlgorithm

	// LeafSize caps the number of points in a spatial-index leaf node.
	// Only used with tree-based algorithms. Default: 40.
	LeafSize int

	// Workers controls the number of goroutines used to predict batches of
	// queries. 0 means use runtime.NumCPU(). Default: 0 (auto).
	Workers int
}

// DefaultKNNConfig returns a KNNConfig with reasonable defaults.
func DefaultKNNConfig() KNNConfig {
	return KNNConfig{
		NumNeighbors: 1,
		Metric:       EuclideanMetric{},
		Algorithm:    KNNAuto,
		LeafSize:     40,
	}
}

// applyKNNDefaults fills in zero-valued config fields with their defaults.
func applyKNNDefaults(cfg *KNNConfig) {
	if cfg.NumNeighbors == 0 {
		cfg.NumNeighbors = 1
	}
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = KNNAuto
	}
	if cfg.LeafSize == 0 {
		cfg.LeafSize = 40
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

// validateKNNConfig checks that cfg fields are valid and returns a
// descriptive error if not.
func validateKNNConfig(cfg *KNNConfig) error {
	if cfg.NumNeighbors < 1 {
		return fmt.Errorf("imbens: NumNeighbors must be >= 1, got %d", cfg.NumNeighbors)
	}
	if cfg.LeafSize < 1 {
		return fmt.Errorf("imbens: LeafSize must be >= 1, got %d", cfg.LeafSize)
	}
	switch cfg.Algorithm {
	case KNNAuto, KNNBrute, KNNKDTree, KNNBallTree:
	default:
		return fmt.Errorf("imbens: invalid KNNAlgorithm %q", cfg.Algorithm)
	}
	if m, ok := cfg.Metric.(MinkowskiMetric); ok && m.P < 1 {
		return fmt.Errorf("imbens: MinkowskiMetric.P must be >= 1, got %v", m.P)
	}
	if cfg.Algorithm == KNNKDTree && !kdTreeValidMetric(cfg.Metric) {
		return fmt.Errorf("imbens: metric %T is not supported by the kd_tree algorithm", cfg.Metric)
	}
	if cfg.Algorithm == KNNBallTree && !ballTreeValidMetric(cfg.Metric) {
		return fmt.Errorf("imbens: metric %T is not supported by the ball_tree algorithm", cfg.Metric)
	}
	return nil
}

// KNeighborsClassifier predicts the label of a feature vector by majority
// vote among its k nearest training rows. Vote ties break toward the
// smallest label, so predictions are deterministic.
//
// Each Fit discards the previous training state and rebuilds the search
// index from scratch.
type KNeighborsClassifier struct {
	cfg KNNConfig

	// fitted state
	index  neighborSearcher
	labels []int
	dims   int
}

// NewKNeighborsClassifier returns an unfitted classifier. Zero-valued cfg
// fields are replaced with their defaults; invalid fields are reported by
// Fit.
func NewKNeighborsClassifier(cfg KNNConfig) *KNeighborsClassifier {
	applyKNNDefaults(&cfg)
	return &KNeighborsClassifier{cfg: cfg}
}

// Config returns the classifier's resolved configuration.
func (c *KNeighborsClassifier) Config() KNNConfig { return c.cfg }

// Clone returns a fresh unfitted classifier with the same configuration.
func (c *KNeighborsClassifier) Clone() Classifier {
	return NewKNeighborsClassifier(c.cfg)
}

// Fit trains the classifier on the given rows and labels, replacing any
// previous training state. Rows are copied; the caller's slices are not
// retained. Duplicate rows are legitimate and weight the vote accordingly.
func (c *KNeighborsClassifier) Fit(features [][]float64, labels []int) error {
	if err := validateKNNConfig(&c.cfg); err != nil {
		return err
	}
	n := len(features)
	if n == 0 {
		return fmt.Errorf("imbens: cannot fit a classifier on an empty training set")
	}
	if len(labels) != n {
		return fmt.Errorf("imbens: got %d training rows but %d labels", n, len(labels))
	}
	dims := len(features[0])
	flat := make([]float64, n*dims)
	for i, row := range features {
		if len(row) != dims {
			return fmt.Errorf("imbens: training row %d has %d features, want %d", i, len(row), dims)
		}
		copy(flat[i*dims:], row)
	}

	c.labels = append([]int(nil), labels...)
	c.dims = dims
	c.index = c.buildIndex(flat, n, dims)
	return nil
}

// buildIndex resolves the algorithm choice for this training set and builds
// the searcher. The flat data is owned by the searcher from here on.
func (c *KNeighborsClassifier) buildIndex(flat []float64, n, dims int) neighborSearcher {
	algo := c.cfg.Algorithm
	if algo == KNNAuto {
		switch {
		case !ballTreeValidMetric(c.cfg.Metric):
			algo = KNNBrute
		case n <= c.cfg.LeafSize:
			// A single-leaf tree is just a brute scan behind extra plumbing.
			algo = KNNBrute
		case kdTreeValidMetric(c.cfg.Metric) && dims <= 60:
			algo = KNNKDTree
		default:
			algo = KNNBallTree
		}
	}

	switch algo {
	case KNNKDTree:
		return newKDTree(flat, n, dims, c.cfg.Metric, c.cfg.LeafSize)
	case KNNBallTree:
		return newBallTree(flat, n, dims, c.cfg.Metric, c.cfg.LeafSize)
	default:
		return newBruteIndex(flat, n, dims, c.cfg.Metric)
	}
}

// Predict returns the predicted label for each query row. The classifier
// must be fitted, the query dimensionality must match the training data, and
// NumNeighbors must not exceed the fitted sample count.
func (c *KNeighborsClassifier) Predict(features [][]float64) ([]int, error) {
	if c.index == nil {
		return nil, fmt.Errorf("imbens: classifier is not fitted")
	}
	if k, n := c.cfg.NumNeighbors, len(c.labels); k > n {
		return nil, fmt.Errorf("imbens: cannot query %d neighbors from %d fitted samples", k, n)
	}
	for i, row := range features {
		if len(row) != c.dims {
			return nil, fmt.Errorf("imbens: query row %d has %d features, want %d", i, len(row), c.dims)
		}
	}

	out := make([]int, len(features))
	c.predictRange(features, out, c.cfg.Workers)
	return out, nil
}

// predictRange fills out[i] for every query row, splitting the batch into
// contiguous ranges across workers. Ranges do not overlap, so the workers
// write without synchronization and the output is identical to a sequential
// pass.
func (c *KNeighborsClassifier) predictRange(queries [][]float64, out []int, workers int) {
	parallelRows(len(queries), workers, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = c.predictOne(queries[i])
		}
	})
}

// predictOne classifies a single query by majority vote among its
// NumNeighbors nearest training rows.
func (c *KNeighborsClassifier) predictOne(query []float64) int {
	rows, _ := c.index.search(query, c.cfg.NumNeighbors)

	counts := make(map[int]int, len(rows))
	for _, r := range rows {
		counts[c.labels[r]]++
	}

	best := c.labels[rows[0]]
	bestCount := counts[best]
	for label, count := range counts {
		if count > bestCount || (count == bestCount && label < best) {
			best = label
			bestCount = count
		}
	}
	return best
}
