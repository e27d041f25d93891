package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/model"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/normalize"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/scoring"
)

const (
	DefaultLocation       = "India"
	DefaultMinPerProvider = 15
	DefaultCount          = 9
)

const emptyResultMessage = "providers returned no listings; a job board is probably " +
	"rate-limiting requests, please retry in a few seconds"

// Query is one match request.
type Query struct {
	Skills   []string `json:"skills"`
	Count    int      `json:"count"`
	Levels   []string `json:"levels,omitempty"`
	Location string   `json:"location,omitempty"`
}

// Outcome is the total result of MatchJobs: either Success with Jobs, or a
// failure kind with a human-readable message.
type Outcome struct {
	Success   bool              `json:"success"`
	Jobs      []model.JobRecord `json:"jobs,omitempty"`
	ErrorKind model.ErrorKind   `json:"error_kind,omitempty"`
	Message   string            `json:"message,omitempty"`

	err *model.MatchError
}

// Err returns the failure as a *model.MatchError, or nil on success.
func (o Outcome) Err() error {
	if o.err == nil {
		return nil
	}
	return o.err
}

func failure(kind model.ErrorKind, message string, cause error) Outcome {
	return Outcome{
		ErrorKind: kind,
		Message:   message,
		err:       &model.MatchError{Kind: kind, Message: message, Err: cause},
	}
}

// Scorer assigns a composite relevance score in [0, 1] to a candidate.
type Scorer interface {
	Score(c model.Candidate) float64
}

// Options tunes what the engine asks of its providers.
type Options struct {
	// DefaultLocation is sent to providers when the query has no location.
	DefaultLocation string
	// MinPerProvider is the minimum number of listings requested from each
	// provider, so scoring has a pool larger than the requested count.
	MinPerProvider int
}

// Engine fans a query out to every provider and ranks the merged results.
// It holds no per-request state and may serve concurrent calls.
type Engine struct {
	providers []model.Provider
	opts      Options
	logger    *slog.Logger
	newScorer func(Query, []normalize.Keyword) Scorer
}

// New creates an engine over the given providers. Merge order, and so tie
// order in the ranking, follows the providers slice.
func New(providers []model.Provider, opts Options, logger *slog.Logger) *Engine {
	if opts.DefaultLocation == "" {
		opts.DefaultLocation = DefaultLocation
	}
	if opts.MinPerProvider <= 0 {
		opts.MinPerProvider = DefaultMinPerProvider
	}
	return &Engine{
		providers: providers,
		opts:      opts,
		logger:    logger,
		newScorer: func(q Query, skills []normalize.Keyword) Scorer {
			return scoring.NewFromKeywords(skills, q.Levels, q.Location)
		},
	}
}

// Providers returns the provider names in merge order.
func (e *Engine) Providers() []string {
	names := make([]string, len(e.providers))
	for i, p := range e.providers {
		names[i] = p.Name()
	}
	return names
}

// MatchJobs runs one match request. It never panics on provider faults and
// never retries; transient failures are reported through the Outcome.
func (e *Engine) MatchJobs(ctx context.Context, q Query) Outcome {
	requestID := uuid.NewString()
	logger := e.logger.With("request_id", requestID)

	q.Skills = cleanSkills(q.Skills)
	q.Location = strings.TrimSpace(q.Location)

	if len(q.Skills) == 0 {
		return e.fail(logger, failure(model.KindInput, "at least one skill is required", nil))
	}
	if q.Count <= 0 {
		return e.fail(logger, failure(model.KindInput, fmt.Sprintf("count must be positive, got %d", q.Count), nil))
	}
	if len(e.providers) == 0 {
		return e.fail(logger, failure(model.KindProvider, "no providers configured", nil))
	}

	location := q.Location
	if location == "" {
		location = e.opts.DefaultLocation
	}
	// One matcher per skill, shared by the normalizer and the scorer.
	keywords := normalize.CompileKeywords(q.Skills)
	results := e.fetchAll(ctx, logger, keywords, location, max(q.Count, e.opts.MinPerProvider))

	var pool []model.Candidate
	var faults []error
	for _, r := range results {
		if r.err != nil {
			faults = append(faults, r.err)
			continue
		}
		pool = append(pool, r.candidates...)
	}

	if len(faults) == len(results) {
		cause := errors.Join(faults...)
		return e.fail(logger, failure(model.KindProvider, "all providers failed: "+cause.Error(), cause))
	}
	if len(pool) == 0 {
		return e.fail(logger, failure(model.KindEmptyResult, emptyResultMessage, nil))
	}

	unique := dedup(pool)
	scorer := e.newScorer(q, keywords)
	for i := range unique {
		unique[i].Score = scorer.Score(unique[i])
	}
	jobs := rank(unique, q.Count)

	logger.Info("match complete",
		"skills", strings.Join(q.Skills, ","),
		"pooled", len(pool),
		"unique", len(unique),
		"returned", len(jobs),
		"faults", len(faults),
	)

	return Outcome{Success: true, Jobs: jobs}
}

func (e *Engine) fail(logger *slog.Logger, o Outcome) Outcome {
	logger.Warn("match failed", "error_kind", o.ErrorKind, "message", o.Message)
	return o
}

// cleanSkills trims skills and drops blanks, keeping order.
func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
