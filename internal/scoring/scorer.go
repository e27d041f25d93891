package scoring

import (
	"regexp"
	"strings"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/model"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/normalize"
)

var (
	seniorJobWords    = []string{"senior", "lead", "principal"}
	entryJobWords     = []string{"entry", "junior", "intern", "fresher", "associate"}
	seniorIntentWords = []string{"senior", "master", "advanced"}
	entryIntentWords  = []string{"beginner", "entry", "started"}
)

// Scorer computes composite relevance for candidates of one request.
// Matchers are compiled once in New and reused for every candidate.
type Scorer struct {
	skills   []*regexp.Regexp
	intent   *bucket // nil when the caller gave no levels
	location string  // lower-cased, empty when the caller gave none
}

// New builds a scorer for the caller's skills, desired levels and preferred
// location. Only the first desired level is consulted.
func New(skills, levels []string, location string) *Scorer {
	return NewFromKeywords(normalize.CompileKeywords(skills), levels, location)
}

// NewFromKeywords is New over skills already compiled for the normalizer,
// so one request compiles each matcher once.
func NewFromKeywords(skills []normalize.Keyword, levels []string, location string) *Scorer {
	s := &Scorer{
		skills:   make([]*regexp.Regexp, len(skills)),
		location: strings.ToLower(strings.TrimSpace(location)),
	}
	for i, kw := range skills {
		s.skills[i] = kw.Match
	}
	if len(levels) > 0 {
		b := intentBucket(levels[0])
		s.intent = &b
	}
	return s
}

// Score returns the weighted composite in [0, 1].
func (s *Scorer) Score(c model.Candidate) float64 {
	score := SkillWeight*s.SkillScore(c) +
		TitleWeight*s.TitleScore(c) +
		LevelWeight*s.LevelScore(c) +
		LocationWeight*s.LocationScore(c)
	return min(max(score, 0), 1)
}

// SkillScore is the fraction of skills found as whole words in the
// description or title.
func (s *Scorer) SkillScore(c model.Candidate) float64 {
	if len(s.skills) == 0 {
		return neutralScore
	}
	text := c.FullDescriptionLower + " " + c.TitleLower
	matched := 0
	for _, re := range s.skills {
		if re.MatchString(text) {
			matched++
		}
	}
	return float64(matched) / float64(len(s.skills))
}

// TitleScore rewards a title naming any of the skills.
func (s *Scorer) TitleScore(c model.Candidate) float64 {
	if c.TitleLower == "" || len(s.skills) == 0 {
		return titleNeutralScore
	}
	for _, re := range s.skills {
		if re.MatchString(c.TitleLower) {
			return 1.0
		}
	}
	return titleMissScore
}

// LevelScore looks up the affinity between the desired and the job level.
func (s *Scorer) LevelScore(c model.Candidate) float64 {
	if s.intent == nil {
		return neutralScore
	}
	return affinity[*s.intent][jobBucket(c.Job.Level)]
}

// LocationScore checks the preferred location as a substring of the job's.
func (s *Scorer) LocationScore(c model.Candidate) float64 {
	if s.location == "" {
		return neutralScore
	}
	if strings.Contains(strings.ToLower(c.Job.Location), s.location) {
		return 1.0
	}
	return locationMissScore
}

func jobBucket(level model.Level) bucket {
	l := strings.ToLower(string(level))
	switch {
	case containsAny(l, seniorJobWords):
		return bucketSenior
	case containsAny(l, entryJobWords):
		return bucketEntry
	default:
		return bucketMid
	}
}

func intentBucket(level string) bucket {
	l := strings.ToLower(level)
	switch {
	case containsAny(l, seniorIntentWords):
		return bucketSenior
	case containsAny(l, entryIntentWords):
		return bucketEntry
	default:
		return bucketMid
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
