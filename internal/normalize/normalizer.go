package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/mitchellh/mapstructure"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/model"
)

const (
	// MaxDescriptionRunes is the display length of a record description.
	MaxDescriptionRunes = 320
	ellipsis            = "…"

	// fallbackSkills is how many query keywords stand in for the matched
	// skills when none occur in the description.
	fallbackSkills = 3
)

// rawRecord is the typed view of a RawListing. Amounts stay untyped because
// providers send numbers, numeric strings, or NaN markers interchangeably.
type rawRecord struct {
	Title       string `mapstructure:"title"`
	Company     string `mapstructure:"company"`
	Location    string `mapstructure:"location"`
	City        string `mapstructure:"city"`
	State       string `mapstructure:"state"`
	JobURL      string `mapstructure:"job_url"`
	Description string `mapstructure:"description"`
	JobType     string `mapstructure:"job_type"`
	IsRemote    any    `mapstructure:"is_remote"`
	MinAmount   any    `mapstructure:"min_amount"`
	MaxAmount   any    `mapstructure:"max_amount"`
	Interval    string `mapstructure:"interval"`
	Currency    string `mapstructure:"currency"`
}

var jobTypes = map[string]model.JobType{
	"fulltime":   model.JobTypeFullTime,
	"full_time":  model.JobTypeFullTime,
	"full-time":  model.JobTypeFullTime,
	"parttime":   model.JobTypePartTime,
	"part_time":  model.JobTypePartTime,
	"part-time":  model.JobTypePartTime,
	"contract":   model.JobTypeContract,
	"internship": model.JobTypeInternship,
	"remote":     model.JobTypeRemote,
}

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"RUR": "₽",
	"RUB": "₽",
}

var (
	seniorTitleWords = []string{"senior", "lead", "principal", "staff", "architect"}
	entryTitleWords  = []string{"junior", "entry", "associate", "graduate", "intern"}
)

// Keyword is a query keyword with its compiled whole-word matcher.
type Keyword struct {
	Text  string
	Match *regexp.Regexp
}

// CompileKeywords compiles one whole-word matcher per keyword, in order.
func CompileKeywords(keywords []string) []Keyword {
	out := make([]Keyword, len(keywords))
	for i, kw := range keywords {
		out[i] = Keyword{Text: kw, Match: WholeWord(kw)}
	}
	return out
}

// Normalizer converts raw provider listings into canonical candidates for one
// keyword query. It is safe for concurrent use once built.
type Normalizer struct {
	keywords []Keyword
}

// New precompiles a whole-word matcher for each keyword.
func New(keywords []string) *Normalizer {
	return NewFromKeywords(CompileKeywords(keywords))
}

// NewFromKeywords builds a normalizer over already compiled keywords.
func NewFromKeywords(keywords []Keyword) *Normalizer {
	return &Normalizer{keywords: keywords}
}

// WholeWord compiles a matcher for keyword as a whole word in lower-cased
// text. Regex metacharacters in the keyword are matched literally. Word
// characters are Unicode letters, digits and underscore (RE2's \b is
// ASCII-only).
func WholeWord(keyword string) *regexp.Regexp {
	return regexp.MustCompile(wordEdgeStart + regexp.QuoteMeta(strings.ToLower(keyword)) + wordEdgeEnd)
}

const (
	wordEdgeStart = `(?:^|[^\p{L}\p{N}_])`
	wordEdgeEnd   = `(?:[^\p{L}\p{N}_]|$)`
)

// NormalizeAll normalizes a provider batch, preserving its order.
func (n *Normalizer) NormalizeAll(source string, raws []model.RawListing) []model.Candidate {
	out := make([]model.Candidate, 0, len(raws))
	for _, raw := range raws {
		out = append(out, n.Normalize(source, raw))
	}
	return out
}

// Normalize maps one raw listing into a candidate. It never fails: fields
// that cannot be decoded are treated as missing.
func (n *Normalizer) Normalize(source string, raw model.RawListing) model.Candidate {
	var r rawRecord
	if decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &r,
		WeaklyTypedInput: true,
	}); err == nil {
		// Partial decodes are kept; failed fields stay zero.
		_ = decoder.Decode(map[string]any(raw))
	}

	title := orDefault(clean(r.Title), model.UntitledRole)
	company := orDefault(clean(r.Company), model.UnknownCompany)
	description := clean(r.Description)
	descLower := strings.ToLower(description)

	job := model.JobRecord{
		Source:         source,
		Title:          title,
		Company:        company,
		Location:       location(r),
		URL:            clean(r.JobURL),
		Description:    truncate(description, MaxDescriptionRunes),
		RequiredSkills: n.skills(descLower),
		SalaryRange:    salaryRange(r),
		JobType:        jobType(r.JobType, truthy(r.IsRemote)),
		Level:          InferLevel(title),
	}

	return model.Candidate{
		Job:                  job,
		FullDescriptionLower: descLower,
		TitleLower:           strings.ToLower(title),
	}
}

// skills returns the keywords found as whole words in the description, in
// query order and original casing.
func (n *Normalizer) skills(descLower string) []string {
	var found []string
	for _, kw := range n.keywords {
		if kw.Match.MatchString(descLower) {
			found = append(found, kw.Text)
		}
	}
	if len(found) > 0 {
		return found
	}
	for _, kw := range n.keywords[:min(fallbackSkills, len(n.keywords))] {
		found = append(found, kw.Text)
	}
	return found
}

// InferLevel buckets a title into a seniority level by keyword presence.
func InferLevel(title string) model.Level {
	t := strings.ToLower(title)
	if containsAny(t, seniorTitleWords) {
		return model.LevelSenior
	}
	if containsAny(t, entryTitleWords) {
		return model.LevelEntry
	}
	return model.LevelMid
}

func jobType(raw string, remote bool) model.JobType {
	if remote {
		return model.JobTypeRemote
	}
	key := strings.ToLower(clean(raw))
	// JobSpy joins several types with commas; the first one wins.
	if i := strings.IndexByte(key, ','); i >= 0 {
		key = key[:i]
	}
	key = strings.ReplaceAll(key, " ", "")
	if jt, ok := jobTypes[key]; ok {
		return jt
	}
	return model.JobTypeFullTime
}

func location(r rawRecord) string {
	if loc := clean(r.Location); loc != "" {
		return loc
	}
	return strings.TrimSpace(clean(r.City) + " " + clean(r.State))
}

func salaryRange(r rawRecord) string {
	lo, ok := amount(r.MinAmount)
	if !ok || lo == 0 {
		return model.SalaryNotDisclosed
	}
	hi, ok := amount(r.MaxAmount)
	if !ok || hi == 0 {
		hi = lo
	}

	currency := strings.ToUpper(orDefault(clean(r.Currency), "INR"))
	prefix, ok := currencySymbols[currency]
	if !ok {
		prefix = currency + " "
	}

	rng := prefix + formatAmount(lo) + " – " + prefix + formatAmount(hi)
	switch strings.ToLower(orDefault(clean(r.Interval), "yearly")) {
	case "yearly":
		return rng + " / year"
	case "monthly":
		return rng + " / month"
	default:
		return rng
	}
}

func formatAmount(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// amount reads a numeric salary value. NaN, infinities and non-numeric
// strings are reported as absent.
func amount(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		return err == nil && b
	case float64:
		return x == 1
	case int:
		return x == 1
	}
	return false
}

// clean trims a provider string and maps the usual missing-value markers to
// the empty string.
func clean(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "nan", "none", "null":
		return ""
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + ellipsis
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
