// Package imbens rebalances labeled datasets by undersampling
// over-represented classes with the Condensed Nearest Neighbour (CNN) rule.
//
// CNN shrinks a majority class down to a small "consistent" subset: starting
// from the full minority class plus a few random majority seeds, it grows the
// subset by adding every majority sample that a nearest-neighbour classifier
// trained on the subset so far gets wrong, retraining after each addition.
// Samples the classifier already handles are dropped. The result is a reduced
// dataset on which a 1-NN classifier still separates the majority class from
// the minority class.
//
// Basic usage:
//
//	cfg := imbens.DefaultConfig()
//	cfg.Seed = 42
//	result, err := imbens.Resample(features, labels, cfg)
//	// result.Indices are the surviving original row positions
//	// result.Features / result.Labels are the gathered reduced dataset
//
// With per-sample weights:
//
//	result, err := imbens.ResampleWeighted(features, labels, weights, cfg)
//	// result.Weights aligns index-for-index with result.Features
//
// # Choosing which classes are reduced
//
// By default (StrategyAuto) every class except the global minority class is
// undersampled. Config.Strategy selects other presets and
// Config.TargetClasses names an explicit label set:
//
//	cfg.Strategy = imbens.StrategyMajority // only the largest class
//	cfg.TargetClasses = []int{0, 2}        // exactly these labels
//
// # The nearest-neighbour collaborator
//
// The algorithm consults a classifier through the Classifier interface.
// Config.NumNeighbors builds the bundled KNeighborsClassifier with that
// neighbour count (default 1); alternatively a pre-configured classifier can
// be supplied via Config.Classifier and is cloned before use:
//
//	knn := imbens.NewKNeighborsClassifier(imbens.KNNConfig{
//		NumNeighbors: 3,
//		Metric:       imbens.ManhattanMetric{},
//	})
//	cfg.Classifier = knn
package imbens
