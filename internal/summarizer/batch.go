package summarizer

import (
	"context"
	"sync"
	"time"
)

// launchStagger spaces out goroutine launches so a large batch does not hit
// the remote service all at once.
const launchStagger = 500 * time.Millisecond

// parallelThreshold is the batch size above which chunks run concurrently.
// Two or fewer chunks are not worth the goroutine overhead.
const parallelThreshold = 2

// ProcessAll summarizes every chunk and returns exactly one result per
// chunk, ordered by chunk index regardless of completion order.
func (p *ChunkProcessor) ProcessAll(ctx context.Context, chunks []Chunk, title string) []ChunkResult {
	if len(chunks) == 0 {
		return nil
	}

	results := make([]ChunkResult, len(chunks))

	if len(chunks) <= parallelThreshold {
		for i, chunk := range chunks {
			results[i] = p.Process(ctx, chunk, len(chunks), title)
		}
		return results
	}

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		if i > 0 {
			select {
			case <-time.After(launchStagger):
			case <-ctx.Done():
			}
		}

		wg.Add(1)
		go func(i int, chunk Chunk) {
			defer wg.Done()
			results[i] = p.Process(ctx, chunk, len(chunks), title)
		}(i, chunk)
	}
	wg.Wait()

	return results
}
