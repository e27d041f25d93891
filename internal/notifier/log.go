package notifier

import (
	"log/slog"
	"strings"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/model"
)

// Ensure LogNotifier implements Notifier.
var _ Notifier = (*LogNotifier)(nil)

// LogNotifier writes ranked matches to the given logger as structured messages.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each job via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs each job in rank order. Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(search string, jobs []model.JobRecord) error {
	for i, j := range jobs {
		n.logger.Info("job match",
			"search", search,
			"rank", i+1,
			"title", j.Title,
			"company", j.Company,
			"location", j.Location,
			"level", j.Level,
			"job_type", j.JobType,
			"salary", j.SalaryRange,
			"skills", strings.Join(j.RequiredSkills, ","),
			"source", j.Source,
			"url", j.URL,
		)
	}
	return nil
}
