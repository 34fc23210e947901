package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const dispatcherLockKey = "lock:ReportOutboxDispatcher"

// Publisher delivers one message and returns the broker's message id.
type Publisher interface {
	Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error)
}

// OutboxDispatcher publishes report events written by the services after
// their transaction committed.
type OutboxDispatcher struct {
	Store        models.OutboxStore
	Publisher    Publisher
	Locker       *redislock.Client // optional; one instance dispatches at a time
	Logger       logrus.FieldLogger
	Clock        utils.Clock
	DispatcherID string

	BatchSize      int
	PollInterval   time.Duration
	LockTimeout    time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func NewOutboxDispatcher(store models.OutboxStore, publisher Publisher, logger logrus.FieldLogger) *OutboxDispatcher {
	return &OutboxDispatcher{
		Store:          store,
		Publisher:      publisher,
		Logger:         logger,
		Clock:          &utils.SystemClock{},
		DispatcherID:   uuid.NewString(),
		BatchSize:      50,
		PollInterval:   500 * time.Millisecond,
		LockTimeout:    30 * time.Second,
		MaxAttempts:    20,
		InitialBackoff: 5 * time.Second,
		MaxBackoff:     10 * time.Minute,
	}
}

func (d *OutboxDispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if _, err := d.DispatchOnce(ctx); err != nil && ctx.Err() == nil {
			d.log().WithField("field", "OutboxDispatcher").Warn("outbox dispatch pass failed: " + err.Error())
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(d.PollInterval):
		}
	}
}

// DispatchOnce claims one batch and publishes it. It returns how many events were sent.
func (d *OutboxDispatcher) DispatchOnce(ctx context.Context) (int, error) {
	if d.Store == nil || d.Publisher == nil {
		return 0, errors.New("outbox dispatcher is not configured")
	}

	if d.Locker != nil {
		lock, err := d.Locker.Obtain(ctx, dispatcherLockKey, d.LockTimeout, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			return 0, nil
		} else if err != nil {
			return 0, fmt.Errorf("obtain dispatcher lock: %w", err)
		}
		defer func() {
			_ = lock.Release(context.WithoutCancel(ctx))
		}()
	}

	now := d.Clock.Now()
	claimed, err := d.Store.ClaimEvents(ctx, models.OutboxClaim{
		Now:          now,
		StaleBefore:  now.Add(-d.LockTimeout),
		Limit:        d.BatchSize,
		MaxAttempts:  d.MaxAttempts,
		DispatcherId: d.DispatcherID,
	})
	if err != nil {
		return 0, fmt.Errorf("claim events: %w", err)
	}

	sent := 0
	for _, rec := range claimed {
		msgId, pubErr := d.publish(ctx, rec)
		if pubErr != nil {
			d.markFailed(ctx, rec, pubErr)
			continue
		}
		if err := d.Store.MarkEventSent(ctx, rec.ID, msgId, d.Clock.Now()); err != nil {
			// the row is reclaimed after LockTimeout and published again
			d.log().WithFields(logrus.Fields{
				"field":     "OutboxDispatcher",
				"record_id": rec.ID,
			}).Error("mark outbox event sent: " + err.Error())
			continue
		}
		sent++
	}
	return sent, nil
}

func (d *OutboxDispatcher) publish(ctx context.Context, rec models.ReportEvent) (string, error) {
	data, err := json.Marshal(rec.ToMessage())
	if err != nil {
		return "", err
	}
	return d.Publisher.Publish(ctx, data, map[string]string{
		"event_type":     string(rec.EventType),
		"report_id":      strconv.Itoa(rec.ReportId),
		"correlation_id": rec.CorrelationId,
	})
}

func (d *OutboxDispatcher) markFailed(ctx context.Context, rec models.ReportEvent, pubErr error) {
	fields := logrus.Fields{
		"field":     "OutboxDispatcher",
		"record_id": rec.ID,
		"report_id": rec.ReportId,
		"attempt":   rec.PublishAttempts,
	}

	// terminal after MaxAttempts
	if d.MaxAttempts > 0 && rec.PublishAttempts >= d.MaxAttempts {
		if err := d.Store.MarkEventDead(ctx, rec.ID, pubErr.Error()); err != nil {
			d.log().WithFields(fields).Error("mark outbox event dead: " + err.Error())
		}
		d.log().WithFields(fields).Error("outbox publish moved to DEAD after max attempts: " + pubErr.Error())
		return
	}

	next := d.Clock.Now().Add(d.retryBackoff(rec.PublishAttempts))
	if err := d.Store.MarkEventFailed(ctx, rec.ID, pubErr.Error(), next); err != nil {
		d.log().WithFields(fields).Error("mark outbox event failed: " + err.Error())
	}
	fields["next_attempt_at"] = next.Format(time.RFC3339Nano)
	d.log().WithFields(fields).Error("outbox publish failed: " + pubErr.Error())
}

// retryBackoff doubles InitialBackoff per attempt, capped at MaxBackoff.
func (d *OutboxDispatcher) retryBackoff(attempt int) time.Duration {
	backoff := d.InitialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
		if d.MaxBackoff > 0 && backoff >= d.MaxBackoff {
			return d.MaxBackoff
		}
	}
	return backoff
}

func (d *OutboxDispatcher) log() logrus.FieldLogger {
	if d.Logger == nil {
		return logrus.StandardLogger()
	}
	return d.Logger
}
