package notifier

import "github.com/Kamalesh-E-S/LearnWiseV2/internal/model"

// Notifier reports the ranked jobs of a search.
type Notifier interface {
	Notify(search string, jobs []model.JobRecord) error
}

// SendTestMessage sends a dummy job notification to verify the integration works.
func SendTestMessage(n Notifier) error {
	testJob := model.JobRecord{
		Source:         "test",
		Title:          "Test Notification, Integration Verified",
		Company:        "jobmatch",
		Location:       "Everywhere",
		URL:            "https://github.com/Kamalesh-E-S/LearnWiseV2",
		Description:    "If you can read this, notifications are wired up.",
		RequiredSkills: []string{"Go"},
		SalaryRange:    model.SalaryNotDisclosed,
		JobType:        model.JobTypeRemote,
		Level:          model.LevelMid,
	}
	return n.Notify("test", []model.JobRecord{testJob})
}
