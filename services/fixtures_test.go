package services

import (
	"context"
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/repositories/inmem"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
)

var fixedNow = time.Date(2024, time.June, 10, 9, 30, 0, 0, time.UTC)

type fixture struct {
	ctx       context.Context
	store     *inmem.Store
	clock     utils.FixedClock
	salesA    *models.User
	salesB    *models.User
	manager   *models.User
	customerX *models.Customer
	customerY *models.Customer
	reports   *ReportService
	comments  *CommentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:   context.Background(),
		store: inmem.NewStore(),
		clock: utils.FixedClock{At: fixedNow},
	}
	f.salesA = f.createUser(t, "Sales A", "a@example.com", models.UserRoleSales)
	f.salesB = f.createUser(t, "Sales B", "b@example.com", models.UserRoleSales)
	f.manager = f.createUser(t, "Manager", "m@example.com", models.UserRoleManager)
	f.customerX = f.createCustomer(t, "Acme Corp", "Taro Yamada")
	f.customerY = f.createCustomer(t, "Globex", "Hanako Suzuki")
	f.reports = NewReportService(f.store, f.clock)
	f.comments = NewCommentService(f.store, f.clock)
	return f
}

func (f *fixture) createUser(t *testing.T, name, email string, role models.UserRole) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email, PasswordHash: "x", Role: role}
	if err := f.store.Users().Create(f.ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (f *fixture) createCustomer(t *testing.T, company, contact string) *models.Customer {
	t.Helper()
	c := &models.Customer{CompanyName: company, ContactName: contact}
	if err := f.store.Customers().Create(f.ctx, c); err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return c
}

// createReport creates a report for the caller and fails the test on error.
func (f *fixture) createReport(t *testing.T, caller *models.User, date string, status models.ReportStatus, visits ...models.NewVisitRecord) *models.DailyReport {
	t.Helper()
	report, err := f.reports.Create(f.ctx, &models.NewDailyReport{
		ReportDate:   date,
		Status:       string(status),
		VisitRecords: visits,
	}, caller)
	if err != nil {
		t.Fatalf("create report %s: %v", date, err)
	}
	return report
}

func (f *fixture) submittedReport(t *testing.T, caller *models.User, date string) *models.DailyReport {
	t.Helper()
	return f.createReport(t, caller, date, models.ReportStatusSubmitted)
}

func assertKind(t *testing.T, err error, kind utils.ErrorKind) *utils.AppError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	appErr, ok := utils.AsAppError(err)
	if !ok {
		t.Fatalf("expected %s error, got %T: %v", kind, err, err)
	}
	if appErr.Kind != kind {
		t.Fatalf("expected %s error, got %s: %v", kind, appErr.Kind, err)
	}
	return appErr
}

func assertField(t *testing.T, err error, field string) {
	t.Helper()
	appErr := assertKind(t, err, utils.ErrorKindValidation)
	for _, d := range appErr.Details {
		if d.Field == field {
			return
		}
	}
	t.Fatalf("expected validation detail on %q, got %+v", field, appErr.Details)
}

func strPtr(s string) *string { return &s }
