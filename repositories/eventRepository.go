package repositories

import (
	"context"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Enqueue(ctx context.Context, event *models.ReportEvent) error {
	if event.PublishStatus == "" {
		event.PublishStatus = models.OutboxPublishStatusPending
	}
	return r.db.WithContext(ctx).Create(event).Error
}
