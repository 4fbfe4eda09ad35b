package imbens

import (
	"sync"
	"testing"
)

func TestParallelRows_CoversEveryRowExactlyOnce(t *testing.T) {
	for _, tc := range []struct{ n, workers int }{
		{1, 1},
		{1, 8},
		{7, 2},
		{8, 3},
		{100, 4},
		{3, 10}, // more workers than rows
		{5, 5},
	} {
		hits := make([]int, tc.n)
		var mu sync.Mutex
		parallelRows(tc.n, tc.workers, func(start, end int) {
			mu.Lock()
			defer mu.Unlock()
			for i := start; i < end; i++ {
				hits[i]++
			}
		})

		for i, h := range hits {
			if h != 1 {
				t.Errorf("n=%d workers=%d: row %d visited %d times, want 1", tc.n, tc.workers, i, h)
			}
		}
	}
}

func TestParallelRows_RangesAreContiguousAndOrdered(t *testing.T) {
	type span struct{ start, end int }
	var mu sync.Mutex
	var spans []span

	n, workers := 10, 3
	parallelRows(n, workers, func(start, end int) {
		mu.Lock()
		spans = append(spans, span{start, end})
		mu.Unlock()
	})

	if len(spans) != 3 {
		t.Fatalf("got %d ranges, want 3", len(spans))
	}
	covered := 0
	for _, s := range spans {
		if s.start >= s.end {
			t.Errorf("empty range [%d, %d)", s.start, s.end)
		}
		covered += s.end - s.start
	}
	if covered != n {
		t.Errorf("ranges cover %d rows, want %d", covered, n)
	}
}

func TestParallelRows_SequentialFallback(t *testing.T) {
	// workers <= 1 and n <= 1 must run fn once, inline, over the whole range.
	for _, workers := range []int{-3, 0, 1} {
		calls := 0
		parallelRows(6, workers, func(start, end int) {
			calls++
			if start != 0 || end != 6 {
				t.Errorf("workers=%d: got range [%d, %d), want [0, 6)", workers, start, end)
			}
		})
		if calls != 1 {
			t.Errorf("workers=%d: fn called %d times, want 1", workers, calls)
		}
	}

	calls := 0
	parallelRows(1, 8, func(start, end int) {
		calls++
		if start != 0 || end != 1 {
			t.Errorf("single row: got range [%d, %d), want [0, 1)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("single row: fn called %d times, want 1", calls)
	}
}

func TestParallelRows_ZeroRows(t *testing.T) {
	parallelRows(0, 4, func(start, end int) {
		t.Errorf("fn called with [%d, %d) on an empty range", start, end)
	})
}

func TestParallelRows_OutputMatchesSequential(t *testing.T) {
	n := 57
	want := make([]int, n)
	parallelRows(n, 1, func(start, end int) {
		for i := start; i < end; i++ {
			want[i] = i * i
		}
	})

	for _, workers := range []int{2, 4, 16} {
		got := make([]int, n)
		parallelRows(n, workers, func(start, end int) {
			for i := start; i < end; i++ {
				got[i] = i * i
			}
		})
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("workers=%d: out[%d] = %d, want %d", workers, i, got[i], want[i])
			}
		}
	}
}
