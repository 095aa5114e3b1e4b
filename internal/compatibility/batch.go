package compatibility

import (
	"context"

	"golang.org/x/sync/errgroup"

	"matching-workers/internal/models"
)

// ScoreBatch scores each profile against one offer using at most
// concurrency goroutines. results[i] belongs to profiles[i]. The only error
// is ctx's, returned once the pool has stopped.
func (s *Scorer) ScoreBatch(ctx context.Context, category Category, offer *models.Offer, profiles []*models.Profile, concurrency int) ([]Result, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]Result, len(profiles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, p := range profiles {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.Score(category, p, offer)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
