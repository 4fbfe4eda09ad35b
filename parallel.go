package imbens

import "sync"

// parallelRows splits [0, n) into contiguous ranges, one per worker, and
// runs fn on each range from its own goroutine. Ranges do not overlap, so
// fn may write per-row output without synchronization. With workers <= 1 or
// n <= 1 the single range [0, n) runs on the calling goroutine.
func parallelRows(n, workers int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if workers <= 1 || n <= 1 {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	rowsPerWorker := (n + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := start + rowsPerWorker
		if end > n {
			end = n
		}
		if start >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}

	wg.Wait()
}
