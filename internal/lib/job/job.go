// Package job runs background work on an asynq queue backed by Redis.
package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/locallibrary/internal/config"
	"github.com/deppfellow/locallibrary/internal/lib/email"
	"github.com/deppfellow/locallibrary/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Mailer delivers reminder emails.
type Mailer interface {
	SendLoanReminder(to string, r email.LoanReminder) error
}

type JobService struct {
	Client *asynq.Client

	server    *asynq.Server
	logger    *zerolog.Logger
	mailer    Mailer
	librarian string
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client:    client,
		server:    server,
		logger:    logger,
		librarian: cfg.Email.Librarian,
	}
}

// InitHandlers sets up the dependencies task handlers use.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg, logger)
}

// Start runs the worker in the background; it does not block.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskLoanReminder, j.handleLoanReminderTask)

	j.logger.Info().Msg("Starting background job server")

	return j.server.Start(mux)
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}

// ScheduleLoanReminder queues a reminder for a loaned copy at its due date.
// A reminder already queued for the same copy and date is not duplicated.
func (j *JobService) ScheduleLoanReminder(ctx context.Context, instance model.BookInstance, bookTitle string) error {
	task, err := NewLoanReminderTask(LoanReminderPayload{
		InstanceID: instance.ID,
		BookTitle:  bookTitle,
		Imprint:    instance.Imprint,
		DueBack:    instance.DueBack,
		URL:        instance.URL(),
	})
	if err != nil {
		return fmt.Errorf("failed to build loan reminder task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue loan reminder: %w", err)
	}

	j.logger.Info().
		Str("task_id", info.ID).
		Str("instance_id", instance.ID).
		Time("process_at", info.NextProcessAt).
		Msg("Scheduled loan reminder")
	return nil
}
