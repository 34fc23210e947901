// Package inmem is an in-memory implementation of the repository interfaces.
// Transactions work on a copy of the state that replaces the live state on success.
package inmem

import (
	"context"
	"sync"
	"time"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
)

type state struct {
	nextId    int
	users     map[int]models.User
	customers map[int]models.Customer
	reports   map[int]models.DailyReport
	visits    map[int]models.VisitRecord
	comments  map[int]models.Comment
	events    map[int]models.ReportEvent
}

func newState() *state {
	return &state{
		users:     map[int]models.User{},
		customers: map[int]models.Customer{},
		reports:   map[int]models.DailyReport{},
		visits:    map[int]models.VisitRecord{},
		comments:  map[int]models.Comment{},
		events:    map[int]models.ReportEvent{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// stored values never share mutable children; pointer fields are replaced, not mutated
func (s *state) clone() *state {
	return &state{
		nextId:    s.nextId,
		users:     cloneMap(s.users),
		customers: cloneMap(s.customers),
		reports:   cloneMap(s.reports),
		visits:    cloneMap(s.visits),
		comments:  cloneMap(s.comments),
		events:    cloneMap(s.events),
	}
}

func (s *state) newId() int {
	s.nextId++
	return s.nextId
}

// memDB is what repositories read and write. Outside a transaction mu guards st;
// inside one the transaction already holds the store lock and mu is nil.
type memDB struct {
	mu    *sync.Mutex
	st    *state
	nowFn func() time.Time
}

func (d *memDB) with(fn func(st *state) error) error {
	if d.mu != nil {
		d.mu.Lock()
		defer d.mu.Unlock()
	}
	return fn(d.st)
}

func (d *memDB) now() time.Time {
	return d.nowFn().UTC()
}

type Store struct {
	mu   sync.Mutex
	root *memDB
}

func NewStore() *Store {
	s := &Store{}
	s.root = &memDB{mu: &s.mu, st: newState(), nowFn: time.Now}
	return s
}

func (s *Store) Users() models.UserRepository { return &userRepository{db: s.root} }

func (s *Store) Customers() models.CustomerRepository { return &customerRepository{db: s.root} }

func (s *Store) Reports() models.ReportRepository { return &reportRepository{db: s.root} }

func (s *Store) VisitRecords() models.VisitRecordRepository {
	return &visitRecordRepository{db: s.root}
}

func (s *Store) Comments() models.CommentRepository { return &commentRepository{db: s.root} }

func (s *Store) Events() models.EventRepository { return &eventRepository{db: s.root} }

func (s *Store) Outbox() models.OutboxStore { return &outboxRepository{db: s.root} }

func (s *Store) Transaction(ctx context.Context, fn func(repos models.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memDB{st: s.root.st.clone(), nowFn: s.root.nowFn}
	if err := fn(&txRepositories{db: tx}); err != nil {
		return err
	}
	s.root.st = tx.st
	return nil
}

// EnqueuedEvents returns every outbox row ordered by id.
func (s *Store) EnqueuedEvents() []models.ReportEvent {
	var out []models.ReportEvent
	_ = s.root.with(func(st *state) error {
		out = sortedValues(st.events, func(e models.ReportEvent) int { return e.ID })
		return nil
	})
	return out
}

// VisitRecordsOf returns the stored visit records of a report ordered by visit_order.
func (s *Store) VisitRecordsOf(reportId int) []models.VisitRecord {
	var out []models.VisitRecord
	_ = s.root.with(func(st *state) error {
		out = visitRecordsOf(st, reportId)
		return nil
	})
	return out
}

// CommentsOf returns the stored comments of a report.
func (s *Store) CommentsOf(reportId int) []models.Comment {
	var out []models.Comment
	_ = s.root.with(func(st *state) error {
		out = commentsOf(st, reportId)
		return nil
	})
	return out
}

type txRepositories struct {
	db *memDB
}

func (r *txRepositories) Users() models.UserRepository { return &userRepository{db: r.db} }

func (r *txRepositories) Customers() models.CustomerRepository {
	return &customerRepository{db: r.db}
}

func (r *txRepositories) Reports() models.ReportRepository { return &reportRepository{db: r.db} }

func (r *txRepositories) VisitRecords() models.VisitRecordRepository {
	return &visitRecordRepository{db: r.db}
}

func (r *txRepositories) Comments() models.CommentRepository { return &commentRepository{db: r.db} }

func (r *txRepositories) Events() models.EventRepository { return &eventRepository{db: r.db} }
