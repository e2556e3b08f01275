package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/locallibrary/internal/lib/email"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to   string
	sent []email.LoanReminder
	err  error
}

func (m *fakeMailer) SendLoanReminder(to string, r email.LoanReminder) error {
	m.to = to
	m.sent = append(m.sent, r)
	return m.err
}

func TestNewLoanReminderTask(t *testing.T) {
	due := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	task, err := NewLoanReminderTask(LoanReminderPayload{InstanceID: "i1", BookTitle: "Dune", DueBack: due})
	require.NoError(t, err)

	assert.Equal(t, TaskLoanReminder, task.Type())

	var p LoanReminderPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, "i1", p.InstanceID)
	assert.True(t, due.Equal(p.DueBack))
}

func TestHandleLoanReminderTask(t *testing.T) {
	logger := zerolog.Nop()
	mailer := &fakeMailer{}
	j := &JobService{logger: &logger, mailer: mailer, librarian: "desk@example.com"}

	task, err := NewLoanReminderTask(LoanReminderPayload{
		InstanceID: "i1",
		BookTitle:  "Dune",
		Imprint:    "Ace",
		DueBack:    time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		URL:        "/catalog/bookinstance/i1",
	})
	require.NoError(t, err)

	require.NoError(t, j.handleLoanReminderTask(context.Background(), task))

	assert.Equal(t, "desk@example.com", mailer.to)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Mar 4, 2026", mailer.sent[0].DueBack)
	assert.Equal(t, "/catalog/bookinstance/i1", mailer.sent[0].URL)
}

func TestHandleLoanReminderTaskReturnsSendError(t *testing.T) {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger, mailer: &fakeMailer{err: errors.New("resend down")}}

	task, err := NewLoanReminderTask(LoanReminderPayload{InstanceID: "i1"})
	require.NoError(t, err)

	assert.Error(t, j.handleLoanReminderTask(context.Background(), task))
}
