package builder

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// progressEvery is how many input lines pass between progress logs.
const progressEvery = 100_000

// mapLines streams the file batch by batch, fanning each batch's lines over
// all CPUs and collecting the per-line results in input order. fn runs
// concurrently and must not touch shared state; a line that produces no
// output returns an empty slice. Order preservation matters: later merge
// steps resolve duplicates by first occurrence.
func mapLines[T any](ctx context.Context, path string, batchSize int, fn func(line []byte) []T, onProgress func(total int)) ([]T, error) {
	lr, err := openLineReader(path)
	if err != nil {
		return nil, err
	}
	defer lr.Close()

	workers := runtime.GOMAXPROCS(0)
	var out []T
	total := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batch := lr.nextBatch(batchSize)
		if len(batch) == 0 {
			break
		}

		results := make([][]T, workers)
		g := new(errgroup.Group)
		for w := 0; w < workers; w++ {
			start := w * len(batch) / workers
			end := (w + 1) * len(batch) / workers
			if start == end {
				continue
			}
			chunk := batch[start:end]
			w := w
			g.Go(func() error {
				local := make([]T, 0, len(chunk))
				for _, line := range chunk {
					local = append(local, fn(line)...)
				}
				results[w] = local
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		for _, r := range results {
			out = append(out, r...)
		}
		total += len(batch)
		if onProgress != nil && total%progressEvery < batchSize {
			onProgress(total)
		}
	}
	return out, nil
}
