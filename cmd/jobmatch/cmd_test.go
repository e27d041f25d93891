package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/config"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/engine"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/model"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/store"
)

const testConfig = `
defaults:
  count: 7
providers:
  - name: LinkedIn
    type: jobspy
    site: linkedin
    base_url: http://localhost:8000
    enabled: true
  - name: Adzuna
    type: adzuna
    app_id: id
    app_key: key
    country: gb
    enabled: true
  - name: hh
    type: headhunter
    enabled: false
rate_limit:
  overrides:
    Adzuna: 2s
watch:
  searches:
    - name: golang
      skills: [Go, gRPC]
      levels: [senior]
      location: Pune
      count: 4
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(testConfig))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return cfg
}

func newQueryCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addQueryFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	return cmd
}

func TestQueryFromFlags_AdHoc(t *testing.T) {
	cfg := mustConfig(t)
	cmd := newQueryCmd(t, "--skill", "Python,Django", "--level", "mid", "--location", "Remote")

	q, name, err := queryFromFlags(cmd, cfg)
	if err != nil {
		t.Fatalf("queryFromFlags: %v", err)
	}
	if name != "" {
		t.Errorf("name = %q, want empty for ad-hoc query", name)
	}
	if !reflect.DeepEqual(q.Skills, []string{"Python", "Django"}) {
		t.Errorf("Skills = %v", q.Skills)
	}
	if q.Count != 7 {
		t.Errorf("Count = %d, want config default 7", q.Count)
	}
	if q.Location != "Remote" || q.Levels[0] != "mid" {
		t.Errorf("unexpected query %+v", q)
	}
}

func TestQueryFromFlags_SavedSearchWithOverride(t *testing.T) {
	cfg := mustConfig(t)
	cmd := newQueryCmd(t, "--search", "GoLang", "--count", "2")

	q, name, err := queryFromFlags(cmd, cfg)
	if err != nil {
		t.Fatalf("queryFromFlags: %v", err)
	}
	if name != "golang" {
		t.Errorf("name = %q, want golang", name)
	}
	if q.Count != 2 {
		t.Errorf("Count = %d, want flag override 2", q.Count)
	}
	if q.Location != "Pune" || !reflect.DeepEqual(q.Skills, []string{"Go", "gRPC"}) {
		t.Errorf("unexpected query %+v", q)
	}
}

func TestQueryFromFlags_UnknownSearch(t *testing.T) {
	cfg := mustConfig(t)
	cmd := newQueryCmd(t, "--search", "rust")

	if _, _, err := queryFromFlags(cmd, cfg); err == nil {
		t.Fatal("expected error for unknown saved search")
	}
}

func TestBuildProviders_EnabledOnlyInOrder(t *testing.T) {
	cfg := mustConfig(t)

	providers, err := buildProviders(cfg, http.DefaultClient, discardLogger())
	if err != nil {
		t.Fatalf("buildProviders: %v", err)
	}
	if len(providers) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(providers))
	}
	if providers[0].Name() != "LinkedIn" || providers[1].Name() != "Adzuna" {
		t.Errorf("unexpected provider order: %s, %s", providers[0].Name(), providers[1].Name())
	}
}

func TestCreateProvider_UnknownType(t *testing.T) {
	_, err := createProvider(config.ProviderConfig{Name: "x", Type: "monster"}, 72, http.DefaultClient)
	if err == nil {
		t.Fatal("expected error for unknown provider type")
	}
}

func TestProviderTarget(t *testing.T) {
	tests := []struct {
		p    config.ProviderConfig
		want string
	}{
		{config.ProviderConfig{Type: config.ProviderJobSpy, Site: "naukri"}, "naukri"},
		{config.ProviderConfig{Type: config.ProviderAdzuna, Country: "in"}, "in"},
		{config.ProviderConfig{Type: config.ProviderHeadHunter}, "all areas"},
		{config.ProviderConfig{Type: config.ProviderHeadHunter, Area: "1"}, "area 1"},
	}
	for _, tc := range tests {
		if got := providerTarget(tc.p); got != tc.want {
			t.Errorf("providerTarget(%+v) = %q, want %q", tc.p, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("go,python", 30); got != "go,python" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Errorf("truncate long = %q", got)
	}
}

func TestWriteOutcome_SuccessPrintsJSON(t *testing.T) {
	var buf bytes.Buffer
	out := engine.Outcome{Success: true, Jobs: []model.JobRecord{{Title: "Go Dev"}}}

	if err := writeOutcome(&buf, out); err != nil {
		t.Fatalf("writeOutcome: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded["success"] != true {
		t.Errorf("success = %v, want true", decoded["success"])
	}
}

func TestWriteOutcome_FailureReturnsSentinel(t *testing.T) {
	var buf bytes.Buffer
	out := engine.Outcome{ErrorKind: model.KindProvider, Message: "all providers failed"}

	err := writeOutcome(&buf, out)
	if !errors.Is(err, errMatchFailed) {
		t.Fatalf("expected errMatchFailed, got %v", err)
	}
	if !strings.Contains(buf.String(), `"error_kind": "ProviderError"`) {
		t.Errorf("expected failed outcome printed before returning, got %s", buf.String())
	}
}

// failingStore rejects every write.
type failingStore struct {
	store.NopStore
}

func (*failingStore) Record(store.Run) error { return errors.New("disk full") }

func TestRecordRun_ReportsWriteFailure(t *testing.T) {
	q := engine.Query{Skills: []string{"Go"}, Count: 3}
	out := engine.Outcome{Success: true}

	if got := recordRun(&failingStore{}, "golang", q, out); !strings.Contains(got, "disk full") {
		t.Errorf("expected warning naming the cause, got %q", got)
	}
	if got := recordRun(store.NewNopStore(), "golang", q, out); got != "" {
		t.Errorf("expected no warning on success, got %q", got)
	}
}
