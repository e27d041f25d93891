package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/config"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/engine"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/notifier"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/store"
)

// Matcher runs a match request.
type Matcher interface {
	MatchJobs(ctx context.Context, q engine.Query) engine.Outcome
}

// Scheduler re-runs saved searches on a cron schedule, reporting each
// successful run through the notifier and recording every run.
type Scheduler struct {
	matcher      Matcher
	searches     []config.SearchConfig
	spec         string // cron spec, e.g. "@every 6h"
	defaultCount int
	notifier     notifier.Notifier
	store        store.RunStore
	logger       *slog.Logger
}

// NewScheduler creates a scheduler for the given saved searches.
func NewScheduler(
	matcher Matcher,
	searches []config.SearchConfig,
	spec string,
	defaultCount int,
	n notifier.Notifier,
	s store.RunStore,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		matcher:      matcher,
		searches:     searches,
		spec:         spec,
		defaultCount: defaultCount,
		notifier:     n,
		store:        s,
		logger:       logger,
	}
}

// Run runs one immediate cycle, then one per cron tick. A cycle still running
// when the next tick fires makes that tick skip. It returns nil when ctx is
// cancelled (graceful shutdown) after the running cycle, if any, finishes.
func (s *Scheduler) Run(ctx context.Context) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("parse watch schedule %q: %w", s.spec, err)
	}

	s.logger.Info("starting scheduler",
		"schedule", s.spec,
		"searches", len(s.searches),
	)

	s.RunOnce(ctx)
	c.Start()

	<-ctx.Done()
	s.logger.Info("shutting down scheduler")
	<-c.Stop().Done()
	return nil
}

// RunOnce runs every saved search sequentially.
func (s *Scheduler) RunOnce(ctx context.Context) {
	for _, search := range s.searches {
		if ctx.Err() != nil {
			return
		}
		s.runSearch(ctx, search)
	}
}

func (s *Scheduler) runSearch(ctx context.Context, search config.SearchConfig) {
	q := engine.Query{
		Skills:   search.Skills,
		Count:    search.Count,
		Levels:   search.Levels,
		Location: search.Location,
	}
	if q.Count <= 0 {
		q.Count = s.defaultCount
	}

	out := s.matcher.MatchJobs(ctx, q)

	if err := s.store.Record(store.NewRun(search.Name, q, out)); err != nil {
		s.logger.Error("recording run failed", "search", search.Name, "error", err)
	}

	if !out.Success {
		s.logger.Warn("search failed",
			"search", search.Name,
			"error_kind", out.ErrorKind,
			"message", out.Message,
		)
		return
	}

	if err := s.notifier.Notify(search.Name, out.Jobs); err != nil {
		s.logger.Error("notifying failed", "search", search.Name, "error", err)
	}
	s.logger.Info("search complete", "search", search.Name, "jobs", len(out.Jobs))
}
