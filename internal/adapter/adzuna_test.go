package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/model"
)

func TestAdzunaFetchRaw_Success(t *testing.T) {
	payload := `{
		"count": 2,
		"results": [
			{
				"id": "4242",
				"title": "Go Developer",
				"description": "Write &lt;b&gt;Go&lt;/b&gt; services.",
				"company": {"display_name": "Globex"},
				"location": {"display_name": "London, UK"},
				"salary_min": 60000,
				"salary_max": 80000,
				"redirect_url": "https://www.adzuna.co.uk/jobs/details/4242",
				"contract_time": "full_time"
			},
			{
				"id": "4343",
				"title": "Contract SRE",
				"company": {"display_name": "Initech"},
				"location": {"display_name": "Leeds"},
				"salary_min": 0,
				"contract_type": "contract",
				"contract_time": "full_time"
			}
		]
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/api/jobs/gb/search/1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		checks := map[string]string{
			"app_id":           "id",
			"app_key":          "key",
			"what_or":          "go kubernetes",
			"where":            "London",
			"results_per_page": "15",
			"max_days_old":     "3",
			"sort_by":          "date",
		}
		for k, v := range checks {
			if q.Get(k) != v {
				t.Errorf("query param %s = %q, want %q", k, q.Get(k), v)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := NewAdzunaAdapter("Adzuna", "id", "key", "GB", 0, rewriteClient(srv))
	listings, err := a.FetchRaw(context.Background(), []string{"go", "kubernetes"}, "London", 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}

	first := listings[0]
	if first[model.RawCompany] != "Globex" {
		t.Errorf("expected company Globex, got %v", first[model.RawCompany])
	}
	if first[model.RawDescription] != "Write Go services." {
		t.Errorf("unexpected description: %q", first[model.RawDescription])
	}
	if first[model.RawCurrency] != "GBP" || first[model.RawInterval] != "yearly" {
		t.Errorf("unexpected salary metadata: %v %v", first[model.RawCurrency], first[model.RawInterval])
	}
	if first[model.RawJobType] != "full_time" {
		t.Errorf("expected full_time, got %v", first[model.RawJobType])
	}

	second := listings[1]
	if _, ok := second[model.RawMinAmount]; ok {
		t.Error("expected zero salary_min to be omitted")
	}
	if second[model.RawJobType] != "contract" {
		t.Errorf("expected contract, got %v", second[model.RawJobType])
	}
}

func TestAdzunaFetchRaw_PageSizeCapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("results_per_page"); got != "50" {
			t.Errorf("expected results_per_page capped at 50, got %s", got)
		}
		if r.URL.Query().Has("where") {
			t.Error("expected no where param for empty location")
		}
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	a := NewAdzunaAdapter("Adzuna", "id", "key", "in", 0, rewriteClient(srv))
	listings, err := a.FetchRaw(context.Background(), []string{"go"}, "", 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 0 {
		t.Fatalf("expected 0 listings, got %d", len(listings))
	}
}

func TestAdzunaFetchRaw_MissingCredentials(t *testing.T) {
	a := NewAdzunaAdapter("Adzuna", "", "", "gb", 0, http.DefaultClient)
	if _, err := a.FetchRaw(context.Background(), []string{"go"}, "", 15); err == nil {
		t.Fatal("expected error for missing credentials, got nil")
	}
}

func TestAdzunaFetchRaw_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := NewAdzunaAdapter("Adzuna", "id", "bad", "gb", 0, rewriteClient(srv))
	_, err := a.FetchRaw(context.Background(), []string{"go"}, "", 15)

	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected HTTP 401 error, got %v", err)
	}
}

func TestAdzunaWhat(t *testing.T) {
	tests := []struct {
		keywords  []string
		wantKey   string
		wantValue string
	}{
		{[]string{"go"}, "what_or", "go"},
		{[]string{"go", "kubernetes"}, "what_or", "go kubernetes"},
		{[]string{"Machine  Learning"}, "what_phrase", "Machine Learning"},
		{[]string{"Machine Learning", "Python"}, "what_or", "Machine Learning Python"},
	}
	for _, tc := range tests {
		key, value := adzunaWhat(tc.keywords)
		if key != tc.wantKey || value != tc.wantValue {
			t.Errorf("adzunaWhat(%q) = %s=%q, want %s=%q", tc.keywords, key, value, tc.wantKey, tc.wantValue)
		}
	}
}

func TestAdzunaFetchRaw_PhraseKeyword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("what_phrase") != "machine learning" {
			t.Errorf("what_phrase = %q, want machine learning", q.Get("what_phrase"))
		}
		if q.Has("what_or") {
			t.Errorf("expected no what_or for a lone phrase, got %q", q.Get("what_or"))
		}
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	a := NewAdzunaAdapter("Adzuna", "id", "key", "gb", 0, rewriteClient(srv))
	if _, err := a.FetchRaw(context.Background(), []string{"machine learning"}, "", 15); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
