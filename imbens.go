package imbens

import (
	"fmt"
	"math/rand"
)

// Config controls Condensed Nearest Neighbour resampling behavior.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Strategy selects which classes get undersampled. Classes outside the
	// resolved set pass through with their full index sets. Ignored when
	// TargetClasses is set. Default: StrategyAuto.
	Strategy SamplingStrategy

	// TargetClasses lists the classes to undersample explicitly, overriding
	// Strategy. Labels that do not appear in the data are an error. Setting
	// both TargetClasses and a non-auto Strategy is an error. Default: nil.
	TargetClasses []int

	// Seed seeds the random source used for the per-class seed draws. Runs
	// with the same seed, data, and configuration produce identical output.
	// Ignored when Rand is set. Default: 0.
	Seed int64

	// Rand supplies the random source directly, overriding Seed. The sampler
	// consumes it sequentially in ascending class order; sharing it with
	// concurrent users breaks reproducibility. Default: nil (derive from Seed).
	Rand *rand.Rand

	// NumNeighbors is the neighbor count for the default nearest-neighbour
	// classifier. Set to 0 to default to 1. Must not be set together with
	// Classifier. Default: 0 (meaning 1).
	NumNeighbors int

	// Classifier supplies a pre-configured estimator to clone for each
	// targeted class instead of the default NumNeighbors-NN. Must not be set
	// together with NumNeighbors. Default: nil.
	Classifier Classifier

	// NumSeeds is the number of rows drawn (with replacement) from each
	// targeted class to seed its condensed set. Must be >= 1. Default: 1.
	NumSeeds int

	// Workers is forwarded to the default classifier's batch prediction.
	// 0 means use runtime.NumCPU(); values <= 1 predict sequentially.
	// It has no effect when Classifier is set. Default: 0 (auto).
	Workers int

	// MatchReferenceImplementation enables candidate-skipping behavior
	// that exactly matches the Python imbalanced-ensemble library, where
	// the set of well-classified candidates holds kept row indices yet is
	// probed with queue positions. When false, skipping is purely
	// position-based. The two differ only when a kept row index collides
	// with a later queue position. Default: false.
	MatchReferenceImplementation bool
}

// Result contains the output of a resampling run.
type Result struct {
	// Indices holds the positions of the retained rows in the original
	// input, in accumulation order: classes ascending, each targeted class
	// contributing its seeds and absorbed candidates in insertion order,
	// each passthrough class contributing its full original index set.
	// Duplicate seed draws appear as duplicate indices.
	Indices []int

	// Features holds copies of the retained rows, aligned with Indices.
	Features [][]float64

	// Labels holds the retained labels, aligned with Indices.
	Labels []int

	// Weights holds the retained sample weights, aligned with Indices.
	// Nil when the run was not given weights.
	Weights []float64
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Strategy: StrategyAuto,
		NumSeeds: 1,
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyAuto
	}
	if cfg.NumNeighbors == 0 && cfg.Classifier == nil {
		cfg.NumNeighbors = 1
	}
	if cfg.NumSeeds == 0 {
		cfg.NumSeeds = 1
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive
// error if not.
func validateConfig(cfg *Config) error {
	if !validStrategy(cfg.Strategy) {
		return fmt.Errorf("imbens: invalid SamplingStrategy %q", cfg.Strategy)
	}
	if cfg.Strategy != StrategyAuto && len(cfg.TargetClasses) > 0 {
		return fmt.Errorf("imbens: Strategy %q and TargetClasses are mutually exclusive, set one of them", cfg.Strategy)
	}
	if cfg.Classifier != nil && cfg.NumNeighbors != 0 {
		return fmt.Errorf("imbens: NumNeighbors and Classifier are mutually exclusive, set one of them")
	}
	if cfg.Classifier == nil && cfg.NumNeighbors < 1 {
		return fmt.Errorf("imbens: NumNeighbors must be >= 1, got %d", cfg.NumNeighbors)
	}
	if cfg.NumSeeds < 1 {
		return fmt.Errorf("imbens: NumSeeds must be >= 1, got %d", cfg.NumSeeds)
	}
	return nil
}

// validateData checks the shape of the input before any processing. The
// condensing core assumes these checks have passed and never re-validates.
func validateData(features [][]float64, labels []int, weights []float64) error {
	n := len(features)
	if n == 0 {
		return fmt.Errorf("imbens: cannot resample an empty dataset")
	}
	if len(labels) != n {
		return fmt.Errorf("imbens: got %d rows but %d labels", n, len(labels))
	}
	if weights != nil && len(weights) != n {
		return fmt.Errorf("imbens: got %d rows but %d weights", n, len(weights))
	}
	dims := len(features[0])
	for i, row := range features {
		if len(row) != dims {
			return fmt.Errorf("imbens: row %d has %d features, want %d", i, len(row), dims)
		}
	}
	return nil
}

// Resample undersamples the over-represented classes of a labeled dataset
// with the Condensed Nearest Neighbour rule. Each element of features is one
// row; all rows must have the same dimensionality and labels must align with
// them. Returns an error if the config or the input shape is invalid, or if
// the classifier fails (for example when a condensed set is smaller than the
// configured neighbor count).
func Resample(features [][]float64, labels []int, cfg Config) (*Result, error) {
	return ResampleWeighted(features, labels, nil, cfg)
}

// ResampleWeighted is Resample for datasets carrying per-row sample weights.
// Weights travel with their rows: the result holds the weights of the
// retained rows, aligned with Indices. A nil weights slice behaves exactly
// like Resample.
func ResampleWeighted(features [][]float64, labels []int, weights []float64, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if err := validateData(features, labels, weights); err != nil {
		return nil, err
	}

	stats := collectClassStats(labels)
	targets, err := resolveTargets(&cfg, stats)
	if err != nil {
		return nil, err
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	proto := resolveClassifier(&cfg)
	minorityIdx := stats.indices[stats.minority]

	indices := make([]int, 0, len(labels))
	for _, label := range stats.classes {
		classIdx := stats.indices[label]
		if !targets[label] {
			indices = append(indices, classIdx...)
			continue
		}

		seedPositions := drawSeedPositions(rng, len(classIdx), cfg.NumSeeds)
		kept, err := condenseClass(
			proto.Clone(), features, labels,
			minorityIdx, classIdx, seedPositions,
			cfg.MatchReferenceImplementation,
		)
		if err != nil {
			return nil, err
		}
		indices = append(indices, kept...)
	}

	return gather(features, labels, weights, indices), nil
}

// gather materializes the result from the accumulated index sequence.
// Feature rows are copied so the result does not alias the input.
func gather(features [][]float64, labels []int, weights []float64, indices []int) *Result {
	out := &Result{
		Indices:  indices,
		Features: make([][]float64, len(indices)),
		Labels:   make([]int, len(indices)),
	}
	if weights != nil {
		out.Weights = make([]float64, len(indices))
	}
	for i, j := range indices {
		row := make([]float64, len(features[j]))
		copy(row, features[j])
		out.Features[i] = row
		out.Labels[i] = labels[j]
		if weights != nil {
			out.Weights[i] = weights[j]
		}
	}
	return out
}
