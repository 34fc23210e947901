package inmem

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
)

type eventRepository struct {
	db *memDB
}

func (r *eventRepository) Enqueue(_ context.Context, event *models.ReportEvent) error {
	return r.db.with(func(st *state) error {
		event.ID = st.newId()
		if event.PublishStatus == "" {
			event.PublishStatus = models.OutboxPublishStatusPending
		}
		now := r.db.now()
		event.CreatedAt = now
		event.UpdatedAt = now
		st.events[event.ID] = *event
		return nil
	})
}

type outboxRepository struct {
	db *memDB
}

func (r *outboxRepository) ClaimEvents(_ context.Context, claim models.OutboxClaim) ([]models.ReportEvent, error) {
	var claimed []models.ReportEvent
	err := r.db.with(func(st *state) error {
		for _, e := range sortedValues(st.events, func(e models.ReportEvent) int { return e.ID }) {
			if claim.Limit > 0 && len(claimed) >= claim.Limit {
				break
			}
			if !e.ReadyForDispatch(claim) {
				continue
			}
			if claim.MaxAttempts > 0 && e.PublishAttempts >= claim.MaxAttempts {
				st.events[e.ID] = deadEvent(e, fmt.Sprintf("max publish attempts exceeded (%d)", claim.MaxAttempts))
				continue
			}
			now := claim.Now
			dispatcherId := claim.DispatcherId
			e.PublishStatus = models.OutboxPublishStatusProcessing
			e.LockedAt = &now
			e.LockedBy = &dispatcherId
			e.PublishAttempts++
			e.LastPublishError = nil
			e.NextAttemptAt = nil
			st.events[e.ID] = e
			claimed = append(claimed, e)
		}
		return nil
	})
	return claimed, err
}

func (r *outboxRepository) MarkEventSent(_ context.Context, id int, messageId string, at time.Time) error {
	return r.update(id, func(e *models.ReportEvent) {
		e.PublishStatus = models.OutboxPublishStatusSent
		e.PublishedAt = &at
		e.PubSubMessageId = &messageId
		e.LockedAt = nil
		e.LockedBy = nil
		e.NextAttemptAt = nil
	})
}

func (r *outboxRepository) MarkEventFailed(_ context.Context, id int, reason string, nextAttemptAt time.Time) error {
	return r.update(id, func(e *models.ReportEvent) {
		e.PublishStatus = models.OutboxPublishStatusFailed
		e.LastPublishError = &reason
		e.NextAttemptAt = &nextAttemptAt
		e.LockedAt = nil
		e.LockedBy = nil
	})
}

func (r *outboxRepository) MarkEventDead(_ context.Context, id int, reason string) error {
	return r.update(id, func(e *models.ReportEvent) {
		*e = deadEvent(*e, reason)
	})
}

func (r *outboxRepository) update(id int, fn func(e *models.ReportEvent)) error {
	return r.db.with(func(st *state) error {
		e, ok := st.events[id]
		if !ok {
			return utils.ErrorRecordNotFound
		}
		fn(&e)
		e.UpdatedAt = r.db.now()
		st.events[id] = e
		return nil
	})
}

func deadEvent(e models.ReportEvent, reason string) models.ReportEvent {
	e.PublishStatus = models.OutboxPublishStatusDead
	e.LastPublishError = &reason
	e.NextAttemptAt = nil
	e.LockedAt = nil
	e.LockedBy = nil
	return e
}
