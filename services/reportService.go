package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
)

// ReportService owns the daily report lifecycle: DRAFT -> SUBMITTED -> REVIEWED.
type ReportService struct {
	uow   models.UnitOfWork
	clock utils.Clock
}

func NewReportService(uow models.UnitOfWork, clock utils.Clock) *ReportService {
	return &ReportService{uow: uow, clock: clock}
}

// List returns one page plus the total. A SALES caller only ever sees their own reports.
func (s *ReportService) List(ctx context.Context, caller *models.User, filter models.ReportFilter) ([]*models.DailyReport, int64, error) {
	if caller == nil {
		return nil, 0, utils.NewUnauthorizedError("")
	}
	if caller.Role == models.UserRoleSales {
		ownId := caller.ID
		filter.SalespersonId = &ownId
	}
	return s.uow.Reports().List(ctx, filter)
}

// ListAll is List without a page window.
func (s *ReportService) ListAll(ctx context.Context, caller *models.User, filter models.ReportFilter) ([]*models.DailyReport, error) {
	filter.Pagination = models.Pagination{}
	reports, _, err := s.List(ctx, caller, filter)
	return reports, err
}

func (s *ReportService) GetDetail(ctx context.Context, id int, caller *models.User) (*models.DailyReport, error) {
	if caller == nil {
		return nil, utils.NewUnauthorizedError("")
	}
	report, err := findReport(ctx, s.uow, id)
	if err != nil {
		return nil, err
	}
	if caller.Role == models.UserRoleSales && !report.IsOwnedBy(caller.ID) {
		return nil, utils.NewForbiddenError("you can only view your own reports")
	}
	return report, nil
}

func (s *ReportService) Create(ctx context.Context, input *models.NewDailyReport, caller *models.User) (*models.DailyReport, error) {
	if caller == nil {
		return nil, utils.NewUnauthorizedError("")
	}
	reportDate, err := s.validateReportDate(input.ReportDate)
	if err != nil {
		return nil, err
	}
	status, err := validateInputStatus(input.Status)
	if err != nil {
		return nil, err
	}
	visits, err := parseVisitRecords(input.VisitRecords)
	if err != nil {
		return nil, err
	}

	var created *models.DailyReport
	err = s.uow.Transaction(ctx, func(repos models.Repositories) error {
		if err := validateVisitCustomers(ctx, repos, visits); err != nil {
			return err
		}
		if _, err := repos.Reports().FindBySalespersonAndDate(ctx, caller.ID, reportDate); err == nil {
			return utils.NewConflictError("a report for this date already exists")
		} else if !errors.Is(err, utils.ErrorRecordNotFound) {
			return err
		}

		now := s.clock.Now()
		report := &models.DailyReport{
			SalespersonId: caller.ID,
			ReportDate:    reportDate,
			Problem:       input.Problem,
			Plan:          input.Plan,
		}
		stamped := report.ApplyStatus(status, now)
		if err := repos.Reports().Create(ctx, report); err != nil {
			return err
		}
		if err := replaceVisitRecords(ctx, repos, report.ID, visits); err != nil {
			return err
		}
		if stamped {
			if err := enqueueReportEvent(ctx, repos, models.ReportEventSubmitted, report, caller.ID, now); err != nil {
				return err
			}
		}

		created, err = repos.Reports().FindById(ctx, report.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *ReportService) Update(ctx context.Context, id int, input *models.NewDailyReport, caller *models.User) (*models.DailyReport, error) {
	if caller == nil {
		return nil, utils.NewUnauthorizedError("")
	}

	var updated *models.DailyReport
	err := s.uow.Transaction(ctx, func(repos models.Repositories) error {
		report, err := editableReport(ctx, repos, id, caller)
		if err != nil {
			return err
		}
		reportDate, err := s.validateReportDate(input.ReportDate)
		if err != nil {
			return err
		}
		status, err := validateInputStatus(input.Status)
		if err != nil {
			return err
		}
		visits, err := parseVisitRecords(input.VisitRecords)
		if err != nil {
			return err
		}
		if err := validateVisitCustomers(ctx, repos, visits); err != nil {
			return err
		}

		if !reportDate.Equal(utils.DateOf(report.ReportDate)) {
			existing, err := repos.Reports().FindBySalespersonAndDate(ctx, caller.ID, reportDate)
			if err == nil && existing.ID != report.ID {
				return utils.NewConflictError("a report for this date already exists")
			}
			if err != nil && !errors.Is(err, utils.ErrorRecordNotFound) {
				return err
			}
		}

		now := s.clock.Now()
		report.ReportDate = reportDate
		report.Problem = input.Problem
		report.Plan = input.Plan
		stamped := report.ApplyStatus(status, now)

		// full replace, even when the new set is empty or unchanged
		if err := repos.VisitRecords().DeleteByReportId(ctx, report.ID); err != nil {
			return err
		}
		if err := replaceVisitRecords(ctx, repos, report.ID, visits); err != nil {
			return err
		}
		if err := repos.Reports().Update(ctx, report); err != nil {
			return err
		}
		if stamped {
			if err := enqueueReportEvent(ctx, repos, models.ReportEventSubmitted, report, caller.ID, now); err != nil {
				return err
			}
		}

		updated, err = repos.Reports().FindById(ctx, report.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the report with its visit records and comments in one unit of work.
func (s *ReportService) Delete(ctx context.Context, id int, caller *models.User) error {
	if caller == nil {
		return utils.NewUnauthorizedError("")
	}
	return s.uow.Transaction(ctx, func(repos models.Repositories) error {
		report, err := editableReport(ctx, repos, id, caller)
		if err != nil {
			return err
		}
		if err := repos.Comments().DeleteByReportId(ctx, report.ID); err != nil {
			return err
		}
		if err := repos.VisitRecords().DeleteByReportId(ctx, report.ID); err != nil {
			return err
		}
		return repos.Reports().Delete(ctx, report)
	})
}

func (s *ReportService) Submit(ctx context.Context, id int, caller *models.User) (*models.DailyReport, error) {
	if caller == nil {
		return nil, utils.NewUnauthorizedError("")
	}

	var submitted *models.DailyReport
	err := s.uow.Transaction(ctx, func(repos models.Repositories) error {
		report, err := findReport(ctx, repos, id)
		if err != nil {
			return err
		}
		if !report.IsOwnedBy(caller.ID) {
			return utils.NewForbiddenError("you can only submit your own reports")
		}
		if report.Status != models.ReportStatusDraft {
			return utils.NewConflictError("only draft reports can be submitted")
		}

		now := s.clock.Now()
		report.Status = models.ReportStatusSubmitted
		report.SubmittedAt = &now
		if err := repos.Reports().Update(ctx, report); err != nil {
			return err
		}
		if err := enqueueReportEvent(ctx, repos, models.ReportEventSubmitted, report, caller.ID, now); err != nil {
			return err
		}
		submitted = report
		return nil
	})
	if err != nil {
		return nil, err
	}
	return submitted, nil
}

// Review checks the role before looking the report up, so a non-manager gets
// Forbidden even for an id that does not exist.
func (s *ReportService) Review(ctx context.Context, id int, caller *models.User) (*models.DailyReport, error) {
	if caller == nil {
		return nil, utils.NewUnauthorizedError("")
	}
	if caller.Role != models.UserRoleManager {
		return nil, utils.NewForbiddenError("only managers can review reports")
	}

	var reviewed *models.DailyReport
	err := s.uow.Transaction(ctx, func(repos models.Repositories) error {
		report, err := findReport(ctx, repos, id)
		if err != nil {
			return err
		}
		if report.Status != models.ReportStatusSubmitted {
			return utils.NewConflictError("only submitted reports can be reviewed")
		}

		report.Status = models.ReportStatusReviewed
		if err := repos.Reports().Update(ctx, report); err != nil {
			return err
		}
		if err := enqueueReportEvent(ctx, repos, models.ReportEventReviewed, report, caller.ID, s.clock.Now()); err != nil {
			return err
		}
		reviewed = report
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reviewed, nil
}

// validateReportDate rejects dates after today, as seen when the call runs.
func (s *ReportService) validateReportDate(value string) (time.Time, error) {
	d, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, utils.NewFieldValidationError("report_date", "must be a date in YYYY-MM-DD format")
	}
	if d.After(s.clock.Today()) {
		return time.Time{}, utils.NewFieldValidationError("report_date", "must not be in the future")
	}
	return d, nil
}

func validateInputStatus(value string) (models.ReportStatus, error) {
	status := models.ReportStatus(value)
	if !status.IsEditableInput() {
		return "", utils.NewFieldValidationError("status", "must be DRAFT or SUBMITTED")
	}
	return status, nil
}

type reportReader interface {
	Reports() models.ReportRepository
}

func findReport(ctx context.Context, repos reportReader, id int) (*models.DailyReport, error) {
	report, err := repos.Reports().FindById(ctx, id)
	if errors.Is(err, utils.ErrorRecordNotFound) {
		return nil, utils.NewNotFoundError("report not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load report %d: %w", id, err)
	}
	return report, nil
}

// editableReport applies the owner and DRAFT-only guards shared by update and delete.
func editableReport(ctx context.Context, repos models.Repositories, id int, caller *models.User) (*models.DailyReport, error) {
	report, err := findReport(ctx, repos, id)
	if err != nil {
		return nil, err
	}
	if !report.IsOwnedBy(caller.ID) {
		return nil, utils.NewForbiddenError("you can only edit your own reports")
	}
	if report.Status != models.ReportStatusDraft {
		return nil, utils.NewForbiddenError("submitted reports cannot be edited")
	}
	return report, nil
}

func enqueueReportEvent(ctx context.Context, repos models.Repositories, eventType models.ReportEventType, report *models.DailyReport, actorId int, now time.Time) error {
	correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
	event, err := models.NewReportEvent(eventType, report, actorId, now, correlationId)
	if err != nil {
		return err
	}
	return repos.Events().Enqueue(ctx, event)
}
