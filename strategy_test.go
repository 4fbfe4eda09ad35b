package imbens

import (
	"sort"
	"testing"
)

func TestValidStrategy(t *testing.T) {
	for _, s := range []SamplingStrategy{
		StrategyAuto, StrategyMajority, StrategyNotMinority, StrategyNotMajority, StrategyAll,
	} {
		if !validStrategy(s) {
			t.Errorf("validStrategy(%q) = false, want true", s)
		}
	}
	for _, s := range []SamplingStrategy{"", "bogus", "minority"} {
		if validStrategy(s) {
			t.Errorf("validStrategy(%q) = true, want false", s)
		}
	}
}

func TestResolveTargets_Strategies(t *testing.T) {
	// Class 0 has 5 rows, class 1 has 3, class 2 has 1.
	stats := collectClassStats([]int{0, 0, 0, 0, 0, 1, 1, 1, 2})

	tests := []struct {
		strategy SamplingStrategy
		want     []int
	}{
		{StrategyAuto, []int{0, 1}},
		{StrategyNotMinority, []int{0, 1}},
		{StrategyMajority, []int{0}},
		{StrategyNotMajority, []int{1, 2}},
		{StrategyAll, []int{0, 1, 2}},
	}

	for _, tc := range tests {
		cfg := &Config{Strategy: tc.strategy}
		targets, err := resolveTargets(cfg, stats)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.strategy, err)
		}
		assertTargets(t, string(tc.strategy), targets, tc.want)
	}
}

func TestResolveTargets_ExplicitClasses(t *testing.T) {
	stats := collectClassStats([]int{0, 0, 0, 1, 1, 2})

	cfg := &Config{TargetClasses: []int{1, 2}}
	targets, err := resolveTargets(cfg, stats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertTargets(t, "explicit", targets, []int{1, 2})
}

func TestResolveTargets_ExplicitClassesIncludingMinority(t *testing.T) {
	stats := collectClassStats([]int{0, 0, 0, 1, 1, 2})

	// The explicit list may name any class present, the minority included.
	cfg := &Config{TargetClasses: []int{2}}
	targets, err := resolveTargets(cfg, stats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertTargets(t, "explicit minority", targets, []int{2})
}

func TestResolveTargets_UnknownExplicitClass(t *testing.T) {
	stats := collectClassStats([]int{0, 0, 1})

	cfg := &Config{TargetClasses: []int{0, 9}}
	if _, err := resolveTargets(cfg, stats); err == nil {
		t.Fatal("expected an error for a target class absent from the data")
	}
}

func assertTargets(t *testing.T, name string, got map[int]bool, want []int) {
	t.Helper()
	var labels []int
	for label := range got {
		labels = append(labels, label)
	}
	sort.Ints(labels)

	if len(labels) != len(want) {
		t.Errorf("%s: targets %v, want %v", name, labels, want)
		return
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("%s: targets %v, want %v", name, labels, want)
			return
		}
	}
}
