package repositories

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OutboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) ClaimEvents(ctx context.Context, claim models.OutboxClaim) ([]models.ReportEvent, error) {
	var claimed []models.ReportEvent
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []models.ReportEvent
		// PENDING/FAILED rows that are due, or PROCESSING rows whose dispatcher died mid-batch
		q := tx.
			Where(`
				(
					publish_status IN ? AND (next_attempt_at IS NULL OR next_attempt_at <= ?)
				)
				OR
				(
					publish_status = ? AND locked_at IS NOT NULL AND locked_at <= ?
				)
			`, []string{models.OutboxPublishStatusPending, models.OutboxPublishStatusFailed}, claim.Now, models.OutboxPublishStatusProcessing, claim.StaleBefore).
			Order("id ASC").
			Limit(claim.Limit).
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		if err := q.Find(&rows).Error; err != nil {
			return err
		}

		for i := range rows {
			if claim.MaxAttempts > 0 && rows[i].PublishAttempts >= claim.MaxAttempts {
				msg := fmt.Sprintf("max publish attempts exceeded (%d)", claim.MaxAttempts)
				if err := markDead(tx, rows[i].ID, msg); err != nil {
					return err
				}
				continue
			}

			if err := tx.Model(&models.ReportEvent{}).Where("id = ?", rows[i].ID).Updates(map[string]interface{}{
				"publish_status":     models.OutboxPublishStatusProcessing,
				"locked_at":          claim.Now,
				"locked_by":          claim.DispatcherId,
				"publish_attempts":   gorm.Expr("publish_attempts + 1"),
				"last_publish_error": nil,
				"next_attempt_at":    nil,
			}).Error; err != nil {
				return err
			}
			now := claim.Now
			dispatcherId := claim.DispatcherId
			rows[i].PublishStatus = models.OutboxPublishStatusProcessing
			rows[i].LockedAt = &now
			rows[i].LockedBy = &dispatcherId
			rows[i].PublishAttempts++
			rows[i].LastPublishError = nil
			rows[i].NextAttemptAt = nil
			claimed = append(claimed, rows[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (r *OutboxRepository) MarkEventSent(ctx context.Context, id int, messageId string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.ReportEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"publish_status":     models.OutboxPublishStatusSent,
			"published_at":       at,
			"pub_sub_message_id": messageId,
			"locked_at":          nil,
			"locked_by":          nil,
			"next_attempt_at":    nil,
		}).Error
}

func (r *OutboxRepository) MarkEventFailed(ctx context.Context, id int, reason string, nextAttemptAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.ReportEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"publish_status":     models.OutboxPublishStatusFailed,
			"last_publish_error": reason,
			"next_attempt_at":    nextAttemptAt,
			"locked_at":          nil,
			"locked_by":          nil,
		}).Error
}

func (r *OutboxRepository) MarkEventDead(ctx context.Context, id int, reason string) error {
	return markDead(r.db.WithContext(ctx), id, reason)
}

func markDead(db *gorm.DB, id int, reason string) error {
	return db.Model(&models.ReportEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"publish_status":     models.OutboxPublishStatusDead,
			"last_publish_error": reason,
			"next_attempt_at":    nil,
			"locked_at":          nil,
			"locked_by":          nil,
		}).Error
}
