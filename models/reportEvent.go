package models

import (
	"encoding/json"
	"time"
)

// Outbox publish statuses for ReportEvent.PublishStatus.
const (
	OutboxPublishStatusPending    = "PENDING"
	OutboxPublishStatusProcessing = "PROCESSING"
	OutboxPublishStatusSent       = "SENT"
	OutboxPublishStatusFailed     = "FAILED"
	OutboxPublishStatusDead       = "DEAD"
)

// ReportEvent is a transactional outbox row. It is written in the same unit of
// work as the change it describes and published after commit by the dispatcher.
type ReportEvent struct {
	ID            int             `gorm:"primary_key;index:idx_outbox_dispatch,priority:3" json:"id"`
	EventType     ReportEventType `gorm:"size:40;not null;index" json:"event_type"`
	ReportId      int             `gorm:"not null;index" json:"report_id"`
	ActorId       int             `gorm:"not null" json:"actor_id"`
	OccurredAt    time.Time       `gorm:"not null" json:"occurred_at"`
	Payload       []byte          `gorm:"type:blob" json:"payload"`
	CorrelationId string          `gorm:"size:64;index" json:"correlation_id"`

	PublishStatus    string     `gorm:"size:20;index;not null;default:'PENDING';index:idx_outbox_dispatch,priority:1" json:"publish_status"` // PENDING|PROCESSING|SENT|FAILED|DEAD
	PublishedAt      *time.Time `gorm:"index" json:"published_at"`
	PubSubMessageId  *string    `gorm:"size:255" json:"pubsub_message_id"`
	PublishAttempts  int        `gorm:"not null;default:0" json:"publish_attempts"`
	NextAttemptAt    *time.Time `gorm:"index;index:idx_outbox_dispatch,priority:2" json:"next_attempt_at"`
	LockedAt         *time.Time `gorm:"index" json:"locked_at"`
	LockedBy         *string    `gorm:"size:100" json:"locked_by"`
	LastPublishError *string    `gorm:"type:text" json:"last_publish_error"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// ReportEventPayload is the snapshot carried by every event.
type ReportEventPayload struct {
	ReportId      int            `json:"report_id"`
	SalespersonId int            `json:"salesperson_id"`
	ReportDate    string         `json:"report_date"`
	Status        ReportStatus   `json:"status"`
	SubmittedAt   *time.Time     `json:"submitted_at,omitempty"`
	CommentId     int            `json:"comment_id,omitempty"`
	CommentTarget *CommentTarget `json:"comment_target,omitempty"`
}

// ReportEventMessage is the Pub/Sub message body.
type ReportEventMessage struct {
	ID            int             `json:"id"`
	EventType     ReportEventType `json:"event_type"`
	ReportId      int             `json:"report_id"`
	ActorId       int             `json:"actor_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
	CorrelationId string          `json:"correlation_id"`
}

func NewReportEvent(eventType ReportEventType, report *DailyReport, actorId int, occurredAt time.Time, correlationId string) (*ReportEvent, error) {
	payload := ReportEventPayload{
		ReportId:      report.ID,
		SalespersonId: report.SalespersonId,
		ReportDate:    report.ReportDate.Format("2006-01-02"),
		Status:        report.Status,
		SubmittedAt:   report.SubmittedAt,
	}
	return newReportEvent(eventType, payload, actorId, occurredAt, correlationId)
}

func NewCommentEvent(report *DailyReport, comment *Comment, occurredAt time.Time, correlationId string) (*ReportEvent, error) {
	target := comment.Target
	payload := ReportEventPayload{
		ReportId:      report.ID,
		SalespersonId: report.SalespersonId,
		ReportDate:    report.ReportDate.Format("2006-01-02"),
		Status:        report.Status,
		SubmittedAt:   report.SubmittedAt,
		CommentId:     comment.ID,
		CommentTarget: &target,
	}
	return newReportEvent(ReportEventCommentCreated, payload, comment.ManagerId, occurredAt, correlationId)
}

func newReportEvent(eventType ReportEventType, payload ReportEventPayload, actorId int, occurredAt time.Time, correlationId string) (*ReportEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &ReportEvent{
		EventType:     eventType,
		ReportId:      payload.ReportId,
		ActorId:       actorId,
		OccurredAt:    occurredAt,
		Payload:       data,
		CorrelationId: correlationId,
		PublishStatus: OutboxPublishStatusPending,
	}, nil
}

func (e ReportEvent) ToMessage() ReportEventMessage {
	return ReportEventMessage{
		ID:            e.ID,
		EventType:     e.EventType,
		ReportId:      e.ReportId,
		ActorId:       e.ActorId,
		OccurredAt:    e.OccurredAt,
		Payload:       json.RawMessage(e.Payload),
		CorrelationId: e.CorrelationId,
	}
}

// ReadyForDispatch reports whether a dispatcher pass may claim the row.
func (e ReportEvent) ReadyForDispatch(claim OutboxClaim) bool {
	switch e.PublishStatus {
	case OutboxPublishStatusPending, OutboxPublishStatusFailed:
		return e.NextAttemptAt == nil || !e.NextAttemptAt.After(claim.Now)
	case OutboxPublishStatusProcessing:
		return e.LockedAt != nil && !e.LockedAt.After(claim.StaleBefore)
	}
	return false
}
