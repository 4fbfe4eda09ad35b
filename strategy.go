package imbens

import "fmt"

// SamplingStrategy names a rule for deriving the set of classes to
// undersample from the class counts. Classes outside the resolved set pass
// through the sampler untouched.
type SamplingStrategy string

const (
	// StrategyAuto targets every class except the minority. The default.
	StrategyAuto SamplingStrategy = "auto"

	// StrategyMajority targets only the most frequent class.
	StrategyMajority SamplingStrategy = "majority"

	// StrategyNotMinority targets every class except the least frequent.
	// Equivalent to StrategyAuto.
	StrategyNotMinority SamplingStrategy = "not minority"

	// StrategyNotMajority targets every class except the most frequent.
	StrategyNotMajority SamplingStrategy = "not majority"

	// StrategyAll targets every class, the minority included. Condensing the
	// minority class against itself keeps only its seed draws.
	StrategyAll SamplingStrategy = "all"
)

// validStrategy reports whether s is one of the defined strategy constants.
func validStrategy(s SamplingStrategy) bool {
	switch s {
	case StrategyAuto, StrategyMajority, StrategyNotMinority, StrategyNotMajority, StrategyAll:
		return true
	}
	return false
}

// resolveTargets turns the configured strategy (or explicit class list) into
// the set of labels to condense. Called once per run, before any class is
// processed.
func resolveTargets(cfg *Config, stats classStats) (map[int]bool, error) {
	targets := make(map[int]bool)

	if len(cfg.TargetClasses) > 0 {
		for _, label := range cfg.TargetClasses {
			if _, ok := stats.counts[label]; !ok {
				return nil, fmt.Errorf("imbens: TargetClasses contains label %d, which does not appear in the data", label)
			}
			targets[label] = true
		}
		return targets, nil
	}

	for _, label := range stats.classes {
		switch cfg.Strategy {
		case StrategyAuto, StrategyNotMinority:
			if label != stats.minority {
				targets[label] = true
			}
		case StrategyMajority:
			if label == stats.majority {
				targets[label] = true
			}
		case StrategyNotMajority:
			if label != stats.majority {
				targets[label] = true
			}
		case StrategyAll:
			targets[label] = true
		}
	}
	return targets, nil
}
