package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/pkg/queue"
)

// JobSource is the consuming side of the notification queue.
type JobSource interface {
	Dequeue(ctx context.Context, timeout time.Duration) (*queue.Job, error)
	Retry(ctx context.Context, job *queue.Job) (bool, error)
}

// LogStore records delivery attempts.
type LogStore interface {
	Create(ctx context.Context, n *models.Notification) error
	MarkSent(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, reason string) error
	EventTitle(ctx context.Context, eventID int64) (string, error)
}

// Dispatcher delivers queued notification jobs.
type Dispatcher struct {
	jobs        JobSource
	store       LogStore
	mailer      Mailer
	logger      *zap.Logger
	pollTimeout time.Duration
	backoff     time.Duration
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(jobs JobSource, store LogStore, mailer Mailer, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		jobs:        jobs,
		store:       store,
		mailer:      mailer,
		logger:      logger,
		pollTimeout: 5 * time.Second,
		backoff:     queue.RetryBackoff,
	}
}

// Process delivers one job and records the attempt in the notification log.
func (d *Dispatcher) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeRegistrationConfirmation {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.NotificationPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if payload.EventTitle == "" {
		title, err := d.store.EventTitle(ctx, payload.EventID)
		if err != nil {
			return fmt.Errorf("event title: %w", err)
		}
		payload.EventTitle = title
	}

	msg := confirmationMessage(payload)
	regID := payload.RegistrationID
	entry := &models.Notification{
		EventID:        payload.EventID,
		RegistrationID: &regID,
		Kind:           models.NotificationRegistrationConfirmation,
		Recipient:      msg.To,
		Subject:        msg.Subject,
	}
	if err := d.store.Create(ctx, entry); err != nil {
		return fmt.Errorf("record notification: %w", err)
	}

	if err := d.mailer.Send(ctx, msg); err != nil {
		if markErr := d.store.MarkFailed(ctx, entry.ID, err.Error()); markErr != nil {
			d.logger.Error("mark notification failed", zap.Error(markErr), zap.Int64("notification_id", entry.ID))
		}
		return fmt.Errorf("send: %w", err)
	}
	if err := d.store.MarkSent(ctx, entry.ID); err != nil {
		d.logger.Error("mark notification sent", zap.Error(err), zap.Int64("notification_id", entry.ID))
	}
	d.logger.Info("notification sent",
		zap.Int64("notification_id", entry.ID),
		zap.Int64("event_id", payload.EventID),
		zap.Int64("registration_id", payload.RegistrationID),
	)
	return nil
}

// handle processes a job and schedules a retry on failure. It reports whether the job failed.
func (d *Dispatcher) handle(ctx context.Context, job *queue.Job) bool {
	d.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
	err := d.Process(ctx, job)
	if err == nil {
		return false
	}
	d.logger.Error("job failed", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt), zap.Error(err))
	if _, reErr := d.jobs.Retry(ctx, job); reErr != nil {
		d.logger.Error("retry enqueue failed", zap.Error(reErr))
	}
	return true
}

// Run consumes jobs until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			d.logger.Info("notification dispatcher stopping")
			return
		}

		job, err := d.jobs.Dequeue(ctx, d.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			d.logger.Warn("dequeue error", zap.Error(err))
			d.wait(ctx)
			continue
		}
		if job == nil {
			continue
		}
		if d.handle(ctx, job) {
			d.wait(ctx)
		}
	}
}

func (d *Dispatcher) wait(ctx context.Context) {
	t := time.NewTimer(d.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func confirmationMessage(p queue.NotificationPayload) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s,\n\n", p.RecipientName)
	fmt.Fprintf(&b, "Tu inscripción al evento \"%s\" quedó registrada", p.EventTitle)
	if p.AttendeeCount > 1 {
		fmt.Fprintf(&b, " para %d personas", p.AttendeeCount)
	}
	b.WriteString(".\n\nNúmero de inscripción: ")
	fmt.Fprintf(&b, "%d\n", p.RegistrationID)
	return Message{
		To:      p.RecipientEmail,
		Subject: "Inscripción confirmada: " + p.EventTitle,
		Body:    b.String(),
	}
}
