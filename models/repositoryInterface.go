package models

import (
	"context"
	"time"
)

// Find* methods return utils.ErrorRecordNotFound when nothing matches.

type UserRepository interface {
	FindById(ctx context.Context, id int) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByIds(ctx context.Context, ids []int) ([]*User, error)
	// List is ordered by id ascending.
	List(ctx context.Context, role *UserRole) ([]*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}

type CustomerRepository interface {
	FindById(ctx context.Context, id int) (*Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]*Customer, int64, error)
	Create(ctx context.Context, customer *Customer) error
	Update(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, customer *Customer) error
	CountVisitRecords(ctx context.Context, customerId int) (int64, error)
	// ExistingIds reports which of ids exist.
	ExistingIds(ctx context.Context, ids []int) (map[int]bool, error)
}

type ReportRepository interface {
	// FindById loads the aggregate: salesperson, visit records with customers
	// (by visit_order) and comments with managers (by created_at).
	FindById(ctx context.Context, id int) (*DailyReport, error)
	FindBySalespersonAndDate(ctx context.Context, salespersonId int, reportDate time.Time) (*DailyReport, error)
	// List returns the window plus the total over the whole filtered set.
	List(ctx context.Context, filter ReportFilter) ([]*DailyReport, int64, error)
	Create(ctx context.Context, report *DailyReport) error
	Update(ctx context.Context, report *DailyReport) error
	Delete(ctx context.Context, report *DailyReport) error
}

type VisitRecordRepository interface {
	DeleteByReportId(ctx context.Context, reportId int) error
	BulkCreate(ctx context.Context, records []*VisitRecord) error
	CountByReportIds(ctx context.Context, reportIds []int) (map[int]int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	DeleteByReportId(ctx context.Context, reportId int) error
}

type EventRepository interface {
	Enqueue(ctx context.Context, event *ReportEvent) error
}

// OutboxClaim selects the rows one dispatcher pass may publish.
type OutboxClaim struct {
	Now          time.Time
	StaleBefore  time.Time // PROCESSING rows locked before this are reclaimed
	Limit        int
	MaxAttempts  int
	DispatcherId string
}

// OutboxStore is the dispatcher's side of the outbox table.
type OutboxStore interface {
	// ClaimEvents marks eligible rows PROCESSING and bumps their attempt count.
	// Rows already at MaxAttempts are moved to DEAD and not returned.
	ClaimEvents(ctx context.Context, claim OutboxClaim) ([]ReportEvent, error)
	MarkEventSent(ctx context.Context, id int, messageId string, at time.Time) error
	MarkEventFailed(ctx context.Context, id int, reason string, nextAttemptAt time.Time) error
	MarkEventDead(ctx context.Context, id int, reason string) error
}

// Repositories is one consistent view of the store. Inside a transaction all
// of them share the transaction.
type Repositories interface {
	Users() UserRepository
	Customers() CustomerRepository
	Reports() ReportRepository
	VisitRecords() VisitRecordRepository
	Comments() CommentRepository
	Events() EventRepository
}

type UnitOfWork interface {
	Repositories
	// Transaction commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(repos Repositories) error) error
}
