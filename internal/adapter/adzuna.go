package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/model"
)

const (
	adzunaBaseURL     = "https://api.adzuna.com/v1/api/jobs"
	adzunaMaxPageSize = 50
)

// adzunaCurrencies maps an Adzuna country code to the currency its salaries
// are quoted in.
var adzunaCurrencies = map[string]string{
	"gb": "GBP", "us": "USD", "in": "INR", "au": "AUD", "ca": "CAD",
	"nz": "NZD", "za": "ZAR", "sg": "SGD", "br": "BRL", "mx": "MXN",
	"pl": "PLN", "ch": "CHF", "de": "EUR", "fr": "EUR", "nl": "EUR",
	"at": "EUR", "be": "EUR", "es": "EUR", "it": "EUR",
}

// adzunaResponse mirrors the top-level Adzuna search response.
type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
	Count   int            `json:"count"`
}

// adzunaResult mirrors a single Adzuna listing.
type adzunaResult struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Company      adzunaCompany  `json:"company"`
	Location     adzunaLocation `json:"location"`
	SalaryMin    float64        `json:"salary_min"`
	SalaryMax    float64        `json:"salary_max"`
	RedirectURL  string         `json:"redirect_url"`
	Created      string         `json:"created"`
	ContractTime string         `json:"contract_time"`
	ContractType string         `json:"contract_type"`
}

type adzunaCompany struct {
	DisplayName string `json:"display_name"`
}

type adzunaLocation struct {
	DisplayName string `json:"display_name"`
}

// AdzunaAdapter fetches listings from the Adzuna public search API.
type AdzunaAdapter struct {
	name     string
	appID    string
	appKey   string
	country  string // "gb", "in", "us", ...
	hoursOld int
	client   *http.Client
}

// NewAdzunaAdapter creates an adapter for one Adzuna country index.
func NewAdzunaAdapter(name, appID, appKey, country string, hoursOld int, client *http.Client) *AdzunaAdapter {
	if hoursOld <= 0 {
		hoursOld = DefaultHoursOld
	}
	return &AdzunaAdapter{
		name:     name,
		appID:    appID,
		appKey:   appKey,
		country:  strings.ToLower(country),
		hoursOld: hoursOld,
		client:   client,
	}
}

// Name returns the provider display name.
func (a *AdzunaAdapter) Name() string { return a.name }

// FetchRaw queries the first result page of the country index. Adzuna's own
// any-of operator (what_or) carries the keyword disjunction; see adzunaWhat.
func (a *AdzunaAdapter) FetchRaw(ctx context.Context, keywords []string, location string, maxResults int) ([]model.RawListing, error) {
	if a.appID == "" || a.appKey == "" {
		return nil, errors.New("adzuna fetch: app_id and app_key are required")
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("adzuna fetch: %w", errNoKeywords)
	}

	params := url.Values{}
	params.Set("app_id", a.appID)
	params.Set("app_key", a.appKey)
	params.Set("results_per_page", strconv.Itoa(min(max(maxResults, 1), adzunaMaxPageSize)))
	whatKey, whatValue := adzunaWhat(keywords)
	params.Set(whatKey, whatValue)
	if location != "" {
		params.Set("where", location)
	}
	params.Set("max_days_old", strconv.Itoa(recencyDays(a.hoursOld)))
	params.Set("sort_by", "date")
	params.Set("content-type", "application/json")

	reqURL := fmt.Sprintf("%s/%s/search/1?%s", adzunaBaseURL, a.country, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("adzuna fetch for %s: %w", a.country, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna fetch for %s: %w", a.country, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("adzuna", resp.StatusCode, resp.Header)
	}

	var azResp adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&azResp); err != nil {
		return nil, fmt.Errorf("adzuna fetch for %s: %w", a.country, err)
	}

	currency := adzunaCurrencies[a.country]
	listings := make([]model.RawListing, 0, len(azResp.Results))
	for _, r := range azResp.Results {
		raw := model.RawListing{
			model.RawTitle:       r.Title,
			model.RawCompany:     r.Company.DisplayName,
			model.RawLocation:    r.Location.DisplayName,
			model.RawJobURL:      r.RedirectURL,
			model.RawDescription: extractText(r.Description),
			model.RawJobType:     adzunaJobType(r.ContractType, r.ContractTime),
		}
		// Adzuna reports 0 for an unknown salary.
		if r.SalaryMin > 0 {
			raw[model.RawMinAmount] = r.SalaryMin
			raw[model.RawInterval] = "yearly"
			raw[model.RawCurrency] = currency
		}
		if r.SalaryMax > 0 {
			raw[model.RawMaxAmount] = r.SalaryMax
		}
		listings = append(listings, raw)
	}

	return listings, nil
}

// adzunaJobType folds Adzuna's two contract fields into one raw job type.
// adzunaWhat picks the keyword parameter. A lone multi-word keyword is sent
// as an exact what_phrase. Otherwise every word goes into what_or, since
// Adzuna accepts a single phrase only; a phrase among other keywords is
// widened to its words and the scorer's whole-phrase match re-ranks them.
func adzunaWhat(keywords []string) (string, string) {
	if len(keywords) == 1 && len(strings.Fields(keywords[0])) > 1 {
		return "what_phrase", strings.Join(strings.Fields(keywords[0]), " ")
	}
	var words []string
	for _, kw := range keywords {
		words = append(words, strings.Fields(kw)...)
	}
	return "what_or", strings.Join(words, " ")
}

func adzunaJobType(contractType, contractTime string) string {
	if contractType == "contract" {
		return "contract"
	}
	return contractTime // "full_time", "part_time" or empty
}
