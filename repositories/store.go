package repositories

import (
	"context"
	"errors"
	"strings"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const mysqlErrDuplicateEntry = 1062

// Store is the gorm-backed unit of work.
type Store struct {
	db    *gorm.DB
	users models.UserRepository
}

type StoreOption func(*Store)

// WithUserRepository replaces the user repository used outside transactions,
// e.g. with a cached one.
func WithUserRepository(users models.UserRepository) StoreOption {
	return func(s *Store) {
		s.users = users
	}
}

func NewStore(db *gorm.DB, opts ...StoreOption) *Store {
	s := &Store{db: db, users: NewUserRepository(db)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Users() models.UserRepository { return s.users }

func (s *Store) Customers() models.CustomerRepository { return NewCustomerRepository(s.db) }

func (s *Store) Reports() models.ReportRepository { return NewReportRepository(s.db) }

func (s *Store) VisitRecords() models.VisitRecordRepository { return NewVisitRecordRepository(s.db) }

func (s *Store) Comments() models.CommentRepository { return NewCommentRepository(s.db) }

func (s *Store) Events() models.EventRepository { return NewEventRepository(s.db) }

func (s *Store) Outbox() models.OutboxStore { return NewOutboxRepository(s.db) }

func (s *Store) Transaction(ctx context.Context, fn func(repos models.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txRepositories{tx: tx})
	})
}

// txRepositories binds every repository to one transaction.
type txRepositories struct {
	tx *gorm.DB
}

func (r *txRepositories) Users() models.UserRepository { return NewUserRepository(r.tx) }

func (r *txRepositories) Customers() models.CustomerRepository { return NewCustomerRepository(r.tx) }

func (r *txRepositories) Reports() models.ReportRepository { return NewReportRepository(r.tx) }

func (r *txRepositories) VisitRecords() models.VisitRecordRepository {
	return NewVisitRecordRepository(r.tx)
}

func (r *txRepositories) Comments() models.CommentRepository { return NewCommentRepository(r.tx) }

func (r *txRepositories) Events() models.EventRepository { return NewEventRepository(r.tx) }

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorRecordNotFound
	}
	return err
}

func isDuplicateKeyError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDuplicateEntry
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive LIKE pattern matching s anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
