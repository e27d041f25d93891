package engine

import (
	"sort"
	"strings"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/model"
)

type identityKey struct {
	title   string
	company string
}

// dedup keeps the first candidate for each case-insensitive (title, company)
// pair, preserving pool order.
func dedup(pool []model.Candidate) []model.Candidate {
	seen := make(map[identityKey]struct{}, len(pool))
	unique := make([]model.Candidate, 0, len(pool))
	for _, c := range pool {
		key := identityKey{
			title:   strings.ToLower(c.Job.Title),
			company: strings.ToLower(c.Job.Company),
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}

// rank sorts scored candidates by descending score, ties keeping pool order,
// and returns the top count records without their search helpers or score.
func rank(scored []model.Candidate, count int) []model.JobRecord {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	n := min(count, len(scored))
	jobs := make([]model.JobRecord, n)
	for i := range n {
		jobs[i] = scored[i].Job
	}
	return jobs
}
