package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/model"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/normalize"
)

// fetchResult is the outcome of one provider task: either normalized
// candidates or a fault, never both.
type fetchResult struct {
	provider   string
	candidates []model.Candidate
	err        error
	elapsed    time.Duration
}

// fetchAll runs every provider concurrently and waits for all of them. A
// failing provider never cancels its siblings; results keep provider order.
func (e *Engine) fetchAll(ctx context.Context, logger *slog.Logger, keywords []normalize.Keyword, location string, maxResults int) []fetchResult {
	norm := normalize.NewFromKeywords(keywords)
	skills := make([]string, len(keywords))
	for i, kw := range keywords {
		skills[i] = kw.Text
	}
	results := make([]fetchResult, len(e.providers))

	var g errgroup.Group
	for i, p := range e.providers {
		g.Go(func() error {
			results[i] = fetchOne(ctx, p, norm, skills, location, maxResults)
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r.err != nil {
			logger.Warn("provider failed", "provider", r.provider, "error", r.err, "elapsed", r.elapsed)
			continue
		}
		logger.Info("provider fetched", "provider", r.provider, "listings", len(r.candidates), "elapsed", r.elapsed)
	}
	return results
}

func fetchOne(ctx context.Context, p model.Provider, norm *normalize.Normalizer, skills []string, location string, maxResults int) (res fetchResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res.candidates = nil
			res.err = fmt.Errorf("%s: panic: %v", res.provider, r)
		}
		res.elapsed = time.Since(start)
	}()

	res.provider = p.Name()
	raws, err := p.FetchRaw(ctx, skills, location, maxResults)
	if err != nil {
		res.err = fmt.Errorf("%s: %w", res.provider, err)
		return res
	}
	res.candidates = norm.NormalizeAll(res.provider, raws)
	return res
}
