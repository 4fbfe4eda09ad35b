package imbens

// Classifier is the estimator the condensing loop fits and queries. The
// built-in implementation is [KNeighborsClassifier]; any estimator with
// fit/predict semantics can stand in, which changes which candidate rows get
// absorbed into the condensed set.
//
// Implementations must be deterministic for the sampler's reproducibility
// guarantee to hold: identical training data must produce identical
// predictions.
type Classifier interface {
	// Fit trains the estimator on the given rows, replacing any previous
	// training state.
	Fit(features [][]float64, labels []int) error

	// Predict returns one label per query row. Called only after Fit.
	Predict(features [][]float64) ([]int, error)

	// Clone returns a fresh unfitted estimator with the same configuration.
	// The sampler clones once per targeted class so runs never share state.
	Clone() Classifier
}

// resolveClassifier turns a validated sampler configuration into the
// estimator prototype cloned for each targeted class. With no Classifier
// configured this is a NumNeighbors-NN with the sampler's Workers setting.
func resolveClassifier(cfg *Config) Classifier {
	if cfg.Classifier != nil {
		return cfg.Classifier
	}
	knnCfg := DefaultKNNConfig()
	knnCfg.NumNeighbors = cfg.NumNeighbors
	knnCfg.Workers = cfg.Workers
	return NewKNeighborsClassifier(knnCfg)
}

// fitSelection fits clf on the rows and labels at the given indices.
// Duplicate indices duplicate training rows; repeated seeds weight the
// estimator toward their region.
func fitSelection(clf Classifier, features [][]float64, labels []int, indices []int) error {
	rows := make([][]float64, len(indices))
	classes := make([]int, len(indices))
	for i, j := range indices {
		rows[i] = features[j]
		classes[i] = labels[j]
	}
	return clf.Fit(rows, classes)
}

// predictSelection predicts labels for the rows at the given indices.
func predictSelection(clf Classifier, features [][]float64, indices []int) ([]int, error) {
	rows := make([][]float64, len(indices))
	for i, j := range indices {
		rows[i] = features[j]
	}
	return clf.Predict(rows)
}
