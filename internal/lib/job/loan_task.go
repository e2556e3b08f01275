package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskLoanReminder = "loan:due_reminder"
)

type LoanReminderPayload struct {
	InstanceID string    `json:"instance_id"`
	BookTitle  string    `json:"book_title"`
	Imprint    string    `json:"imprint"`
	DueBack    time.Time `json:"due_back"`
	URL        string    `json:"url"`
}

// NewLoanReminderTask builds a reminder that fires when the loan is due.
// The task id ties it to one copy and due date, so saving the same loan
// twice does not queue two reminders.
func NewLoanReminderTask(p LoanReminderPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskLoanReminder,
		payload,
		asynq.TaskID(TaskLoanReminder+":"+p.InstanceID+":"+p.DueBack.UTC().Format(time.RFC3339)),
		asynq.ProcessAt(p.DueBack),
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
