package model

import "context"

// JobType is the canonical employment type of a listing.
type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeInternship JobType = "Internship"
	JobTypeRemote     JobType = "Remote"
)

// Level is the seniority bucket inferred from a listing's title.
type Level string

const (
	LevelEntry  Level = "Entry-level"
	LevelMid    Level = "Mid-level"
	LevelSenior Level = "Senior"
)

// Placeholders used when a provider omits the field.
const (
	UntitledRole       = "Untitled Role"
	UnknownCompany     = "Unknown Company"
	SalaryNotDisclosed = "Salary not disclosed"
)

// Unified representation of a job listing from any provider.
// This is the only shape that leaves the engine.
type JobRecord struct {
	Source         string   `json:"source"`          // provider name, e.g. "LinkedIn"
	Title          string   `json:"title"`           // never empty, see UntitledRole
	Company        string   `json:"company"`         // never empty, see UnknownCompany
	Location       string   `json:"location"`        // may be empty
	URL            string   `json:"job_url"`         // may be empty
	Description    string   `json:"description"`     // at most 320 runes plus an ellipsis
	RequiredSkills []string `json:"required_skills"` // never empty
	SalaryRange    string   `json:"salary_range"`
	JobType        JobType  `json:"job_type"`
	Level          Level    `json:"level"`
}

// Candidate is a normalized record travelling through the engine pipeline.
// The lower-cased search fields exist only for scoring and are dropped,
// together with Score, when the ranked result is returned.
type Candidate struct {
	Job                  JobRecord
	FullDescriptionLower string // untruncated description, lower-cased
	TitleLower           string
	Score                float64
}

// RawListing is a loosely typed record as produced by a provider adapter.
// Keys follow the Raw* vocabulary below; values may be strings, numbers,
// booleans or nil depending on the provider.
type RawListing map[string]any

// Keys understood by the normalizer.
const (
	RawTitle       = "title"
	RawCompany     = "company"
	RawLocation    = "location"
	RawCity        = "city"
	RawState       = "state"
	RawJobURL      = "job_url"
	RawDescription = "description"
	RawJobType     = "job_type"
	RawIsRemote    = "is_remote"
	RawMinAmount   = "min_amount"
	RawMaxAmount   = "max_amount"
	RawInterval    = "interval"
	RawCurrency    = "currency"
)

// Provider fetches raw listings for a keyword query from one external source.
// A failed query is reported through the returned error; implementations must
// not let a single listing abort the whole batch.
type Provider interface {
	Name() string
	FetchRaw(ctx context.Context, keywords []string, location string, maxResults int) ([]RawListing, error)
}
