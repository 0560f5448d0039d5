package builder

import (
	"context"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Alex-Programs/nuenki-dictionary/internal/codec"
	"github.com/Alex-Programs/nuenki-dictionary/internal/entity"
)

// compressBatchSize is how many elements each phase-4 chunk holds.
const compressBatchSize = 24_000

// CompressElements serializes and compresses every element independently,
// chunked and fanned out over all CPUs. Per-entry compression is what lets
// the query store keep blobs compressed and decompress per hit.
func CompressElements(ctx context.Context, log *logrus.Logger, c *codec.Codec, elements []*entity.DictionaryElement) ([]entity.CompressedElement, error) {
	out := make([]entity.CompressedElement, len(elements))
	workers := runtime.GOMAXPROCS(0)

	for start := 0; start < len(elements); start += compressBatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+compressBatchSize, len(elements))
		chunk := elements[start:end]

		g := new(errgroup.Group)
		g.SetLimit(workers)
		for i, el := range chunk {
			i, el := i, el
			g.Go(func() error {
				out[start+i] = c.Compress(el)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		log.WithFields(logrus.Fields{
			"compressed": end,
			"total":      len(elements),
		}).Info("compression progress")
	}
	return out, nil
}
