package notifier

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/model"
)

func TestLogNotifier_Notify_zeroJobs(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))
	if err := n.Notify("golang", nil); err != nil {
		t.Errorf("Notify(nil) = %v, want nil", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestLogNotifier_Notify_multipleJobs(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))
	jobs := []model.JobRecord{
		sampleJob("Engineer", "Acme"),
		sampleJob("Developer", "Beta"),
	}
	if err := n.Notify("golang", jobs); err != nil {
		t.Errorf("Notify(jobs) = %v, want nil", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "rank=1") || !strings.Contains(lines[0], "company=Acme") {
		t.Errorf("unexpected first line: %s", lines[0])
	}
	if !strings.Contains(lines[1], "rank=2") || !strings.Contains(lines[1], "search=golang") {
		t.Errorf("unexpected second line: %s", lines[1])
	}
}
