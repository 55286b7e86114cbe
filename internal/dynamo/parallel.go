package dynamo

import (
	"runtime"
	"sync"
)

// Workers resolves a requested worker count: values below 1 mean one worker
// per CPU.
func Workers(requested int) int {
	if requested < 1 {
		return runtime.NumCPU()
	}
	return requested
}

// ParallelFor splits [0, n) into at most workers contiguous chunks of at least
// minChunk items and runs fn on each chunk concurrently. fn receives the chunk
// index so callers can keep per-chunk scratch buffers. It returns the number
// of chunks used; ParallelFor blocks until every chunk is done.
func ParallelFor(n, workers, minChunk int, fn func(chunk, start, end int)) int {
	if n <= 0 {
		return 0
	}
	if minChunk < 1 {
		minChunk = 1
	}
	if workers > n/minChunk {
		workers = n / minChunk
	}
	if workers <= 1 {
		fn(0, 0, n)
		return 1
	}

	chunkSize := (n + workers - 1) / workers
	chunks := (n + chunkSize - 1) / chunkSize

	var wg sync.WaitGroup
	wg.Add(chunks)

	for w := 0; w < chunks; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(c, s, e int) {
			defer wg.Done()
			fn(c, s, e)
		}(w, start, end)
	}

	wg.Wait()
	return chunks
}
