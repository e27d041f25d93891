package adapter

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "double-encoded HTML",
			input: "This is the job description. &lt;p&gt;Any HTML included.&lt;/p&gt;",
			want:  "This is the job description. Any HTML included.",
		},
		{
			name:  "hh.ru highlight markup",
			input: "Experience with <highlighttext>Go</highlighttext> and\n  Kubernetes",
			want:  "Experience with Go and Kubernetes",
		},
		{
			name:  "plain text with no HTML",
			input: "No tags here.",
			want:  "No tags here.",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := extractText(tc.input)
			if got != tc.want {
				t.Errorf("extractText(%q)\n got  %q\n want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		want     string
	}{
		{"single keyword verbatim", []string{"Go"}, "Go"},
		{"two keywords", []string{"Go", "Kubernetes"}, "Go OR Kubernetes"},
		{"three keywords", []string{"python", "django", "sql"}, "python OR django OR sql"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BuildQuery(tc.keywords)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("BuildQuery(%v) = %q, want %q", tc.keywords, got, tc.want)
			}
		})
	}
}

func TestBuildQuery_Empty(t *testing.T) {
	_, err := BuildQuery(nil)
	if !errors.Is(err, errNoKeywords) {
		t.Fatalf("expected errNoKeywords, got %v", err)
	}
}

func TestRecencyDays(t *testing.T) {
	tests := []struct {
		hours int
		want  int
	}{
		{0, 1},
		{-5, 1},
		{1, 1},
		{24, 1},
		{25, 2},
		{72, 3},
	}
	for _, tc := range tests {
		if got := recencyDays(tc.hours); got != tc.want {
			t.Errorf("recencyDays(%d) = %d, want %d", tc.hours, got, tc.want)
		}
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"empty", "", 0},
		{"seconds", "120", 120 * time.Second},
		{"negative seconds", "-3", 0},
		{"http date in future", now.Add(90 * time.Second).Format(http.TimeFormat), 90 * time.Second},
		{"http date in past", now.Add(-time.Minute).Format(http.TimeFormat), 0},
		{"garbage", "soon", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseRetryAfter(tc.value, now); got != tc.want {
				t.Errorf("parseRetryAfter(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}
