package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mitchellh/mapstructure"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/model"
)

const (
	headHunterBaseURL   = "https://api.hh.ru"
	headHunterSearch    = "/vacancies"
	headHunterMaxPage   = 100
	headHunterMaxPeriod = 30
	headHunterUserAgent = "jobmatch/1.0 (jobmatch@localhost)"
)

type hhItemResponse struct {
	Items   []any `json:"items"`
	Found   int   `json:"found"`
	Pages   int   `json:"pages"`
	PerPage int   `json:"per_page"`
}

type hhVacancy struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Area struct {
		Name string `json:"name"`
	} `json:"area"`
	Salary *struct {
		From     float64 `json:"from"`
		To       float64 `json:"to"`
		Currency string  `json:"currency"`
	} `json:"salary"`
	Schedule struct {
		ID string `json:"id"`
	} `json:"schedule"`
	Employment struct {
		ID string `json:"id"`
	} `json:"employment"`
	Employer struct {
		Name string `json:"name"`
	} `json:"employer"`
	AlternateURL string `json:"alternate_url"`
	Snippet      struct {
		Requirement    string `json:"requirement"`
		Responsibility string `json:"responsibility"`
	} `json:"snippet"`
}

var hhEmploymentTypes = map[string]string{
	"full":      "fulltime",
	"part":      "parttime",
	"project":   "contract",
	"probation": "internship",
}

// HeadHunterAdapter searches vacancies on hh.ru.
type HeadHunterAdapter struct {
	name      string
	baseURL   string
	area      string // hh.ru area id, empty for all regions
	token     string // optional OAuth bearer token
	userAgent string
	hoursOld  int
	client    *http.Client
}

// NewHeadHunterAdapter creates an hh.ru adapter. baseURL and userAgent may be
// empty to use the public API with a default agent; hh.ru rejects requests
// without a User-Agent.
func NewHeadHunterAdapter(name, baseURL, area, token, userAgent string, hoursOld int, client *http.Client) *HeadHunterAdapter {
	if baseURL == "" {
		baseURL = headHunterBaseURL
	}
	if userAgent == "" {
		userAgent = headHunterUserAgent
	}
	if hoursOld <= 0 {
		hoursOld = DefaultHoursOld
	}
	return &HeadHunterAdapter{
		name:      name,
		baseURL:   baseURL,
		area:      area,
		token:     token,
		userAgent: userAgent,
		hoursOld:  hoursOld,
		client:    client,
	}
}

// Name returns the provider display name.
func (a *HeadHunterAdapter) Name() string { return a.name }

// FetchRaw requests a single page of vacancies. The free-text location is not
// forwarded; hh.ru filters by numeric area id only.
func (a *HeadHunterAdapter) FetchRaw(ctx context.Context, keywords []string, _ string, maxResults int) ([]model.RawListing, error) {
	query, err := BuildQuery(keywords)
	if err != nil {
		return nil, fmt.Errorf("headhunter fetch: %w", err)
	}

	q := url.Values{}
	q.Set("text", query)
	q.Set("per_page", strconv.Itoa(min(max(maxResults, 1), headHunterMaxPage)))
	q.Set("period", strconv.Itoa(min(recencyDays(a.hoursOld), headHunterMaxPeriod)))
	q.Set("order_by", "publication_time")
	if a.area != "" {
		q.Set("area", a.area)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+headHunterSearch, nil)
	if err != nil {
		return nil, fmt.Errorf("headhunter fetch: %w", err)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Accept", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("headhunter fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("headhunter", resp.StatusCode, resp.Header)
	}

	var page hhItemResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("headhunter fetch: %w", err)
	}

	listings := make([]model.RawListing, 0, len(page.Items))
	for _, item := range page.Items {
		var v hhVacancy
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &v,
			TagName:          "json",
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, fmt.Errorf("headhunter fetch: %w", err)
		}
		// One malformed vacancy must not drop the page.
		if err := decoder.Decode(item); err != nil {
			continue
		}
		listings = append(listings, hhListing(v))
	}

	return listings, nil
}

func hhListing(v hhVacancy) model.RawListing {
	desc := extractText(v.Snippet.Requirement + " " + v.Snippet.Responsibility)
	raw := model.RawListing{
		model.RawTitle:       v.Name,
		model.RawCompany:     v.Employer.Name,
		model.RawLocation:    v.Area.Name,
		model.RawJobURL:      v.AlternateURL,
		model.RawDescription: desc,
		model.RawJobType:     hhEmploymentTypes[v.Employment.ID],
		model.RawIsRemote:    v.Schedule.ID == "remote",
	}
	if v.Salary != nil {
		if v.Salary.From > 0 {
			raw[model.RawMinAmount] = v.Salary.From
		}
		if v.Salary.To > 0 {
			raw[model.RawMaxAmount] = v.Salary.To
		}
		raw[model.RawInterval] = "monthly"
		raw[model.RawCurrency] = v.Salary.Currency
	}
	return raw
}
