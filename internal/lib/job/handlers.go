package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/locallibrary/internal/lib/email"
	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/hibiken/asynq"
)

func (j *JobService) handleLoanReminderTask(ctx context.Context, t *asynq.Task) error {
	var p LoanReminderPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal loan reminder payload: %w", err)
	}

	log := j.logger.With().
		Str("type", "loan_reminder").
		Str("instance_id", p.InstanceID).
		Logger()

	log.Info().Msg("Processing loan reminder task")

	err := j.mailer.SendLoanReminder(j.librarian, email.LoanReminder{
		BookTitle: p.BookTitle,
		Imprint:   p.Imprint,
		DueBack:   model.FormatDate(&p.DueBack),
		URL:       p.URL,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to send loan reminder")
		return err
	}

	log.Info().Msg("Successfully sent loan reminder")
	return nil
}
