package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/model"
)

const jobSpySearchPath = "/api/v1/search_jobs"

// JobSpyAdapter searches a single job board (LinkedIn, Naukri, Indeed, ...)
// through a JobSpy scraping API. Rows returned by JobSpy already use the raw
// listing vocabulary, so they are passed through untouched.
type JobSpyAdapter struct {
	name     string // display name, used as the record source
	site     string // JobSpy site_name
	hoursOld int
	client   *resty.Client
}

// NewJobSpyAdapter creates an adapter for one JobSpy site. apiKey may be empty
// when the API is not protected.
func NewJobSpyAdapter(name, site, baseURL, apiKey string, hoursOld int, httpClient *http.Client) *JobSpyAdapter {
	client := resty.NewWithClient(httpClient).
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetHeader("x-api-key", apiKey)
	}
	if hoursOld <= 0 {
		hoursOld = DefaultHoursOld
	}
	return &JobSpyAdapter{
		name:     name,
		site:     site,
		hoursOld: hoursOld,
		client:   client,
	}
}

// Name returns the provider display name.
func (a *JobSpyAdapter) Name() string { return a.name }

// FetchRaw runs one search against the configured site and returns its rows.
func (a *JobSpyAdapter) FetchRaw(ctx context.Context, keywords []string, location string, maxResults int) ([]model.RawListing, error) {
	query, err := BuildQuery(keywords)
	if err != nil {
		return nil, fmt.Errorf("jobspy fetch for %s: %w", a.site, err)
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"site_name":      a.site,
			"search_term":    query,
			"location":       location,
			"results_wanted": strconv.Itoa(maxResults),
			"hours_old":      strconv.Itoa(a.hoursOld),
		}).
		Get(jobSpySearchPath)
	if err != nil {
		return nil, fmt.Errorf("jobspy fetch for %s: %w", a.site, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, statusError("jobspy "+a.site, resp.StatusCode(), resp.Header())
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("jobspy fetch for %s: malformed response body", a.site)
	}

	rows := gjson.GetBytes(body, "jobs")
	if !rows.Exists() {
		return nil, nil
	}
	if !rows.IsArray() {
		return nil, fmt.Errorf("jobspy fetch for %s: jobs is %s, want array", a.site, rows.Type)
	}

	listings := make([]model.RawListing, 0, len(rows.Array()))
	rows.ForEach(func(_, row gjson.Result) bool {
		if m, ok := row.Value().(map[string]any); ok {
			listings = append(listings, model.RawListing(m))
		}
		return true
	})

	return listings, nil
}
