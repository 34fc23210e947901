package services

import (
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
)

func TestCreateDraftWithoutVisits(t *testing.T) {
	f := newFixture(t)

	report := f.createReport(t, f.salesA, "2024-06-10", models.ReportStatusDraft)

	if report.Status != models.ReportStatusDraft {
		t.Fatalf("status = %s, want DRAFT", report.Status)
	}
	if report.SubmittedAt != nil {
		t.Fatalf("submitted_at = %v, want nil", report.SubmittedAt)
	}
	if len(report.VisitRecords) != 0 {
		t.Fatalf("visit records = %d, want 0", len(report.VisitRecords))
	}
	if report.Salesperson.ID != f.salesA.ID {
		t.Fatalf("salesperson not attached: %+v", report.Salesperson)
	}
	if got := len(f.store.EnqueuedEvents()); got != 0 {
		t.Fatalf("events = %d, want 0 for a draft", got)
	}
}

func TestCreateSameDateTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	f.createReport(t, f.salesA, "2024-06-10", models.ReportStatusDraft)

	_, err := f.reports.Create(f.ctx, &models.NewDailyReport{ReportDate: "2024-06-10", Status: "DRAFT"}, f.salesA)
	assertKind(t, err, utils.ErrorKindConflict)

	// another salesperson may use the same date
	f.createReport(t, f.salesB, "2024-06-10", models.ReportStatusDraft)
}

func TestCreateRejectsFutureDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.reports.Create(f.ctx, &models.NewDailyReport{ReportDate: "2024-06-11", Status: "DRAFT"}, f.salesA)
	assertField(t, err, "report_date")

	// today is accepted
	f.createReport(t, f.salesA, "2024-06-10", models.ReportStatusDraft)
}

func TestCreateUsesBusinessTimezoneForToday(t *testing.T) {
	f := newFixture(t)
	jst := time.FixedZone("JST", 9*60*60)
	// 2024-06-10 20:00 UTC is already 2024-06-11 in JST
	clock := utils.FixedClock{At: fixedNow.Add(10*time.Hour + 30*time.Minute), Location: jst}
	reports := NewReportService(f.store, clock)

	if _, err := reports.Create(f.ctx, &models.NewDailyReport{ReportDate: "2024-06-11", Status: "DRAFT"}, f.salesA); err != nil {
		t.Fatalf("create for local today: %v", err)
	}
}

func TestCreateRejectsNonEditableStatus(t *testing.T) {
	f := newFixture(t)

	for _, status := range []string{"REVIEWED", "draft", "", "DONE"} {
		_, err := f.reports.Create(f.ctx, &models.NewDailyReport{ReportDate: "2024-06-10", Status: status}, f.salesA)
		assertField(t, err, "status")
	}
}

func TestCreateSubmittedStampsSubmissionTime(t *testing.T) {
	f := newFixture(t)

	report := f.createReport(t, f.salesA, "2024-06-09", models.ReportStatusSubmitted)

	if report.SubmittedAt == nil || !report.SubmittedAt.Equal(fixedNow) {
		t.Fatalf("submitted_at = %v, want %v", report.SubmittedAt, fixedNow)
	}
	events := f.store.EnqueuedEvents()
	if len(events) != 1 || events[0].EventType != models.ReportEventSubmitted || events[0].ReportId != report.ID {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestCreateKeepsVisitInputOrder(t *testing.T) {
	f := newFixture(t)

	report := f.createReport(t, f.salesA, "2024-06-10", models.ReportStatusDraft,
		models.NewVisitRecord{CustomerId: f.customerX.ID, VisitContent: "first", VisitedAt: "10:00"},
		models.NewVisitRecord{CustomerId: f.customerY.ID, VisitContent: "second", VisitedAt: "09:00"},
	)

	if len(report.VisitRecords) != 2 {
		t.Fatalf("visit records = %d, want 2", len(report.VisitRecords))
	}
	first, second := report.VisitRecords[0], report.VisitRecords[1]
	if first.CustomerId != f.customerX.ID || first.VisitOrder != 1 {
		t.Fatalf("first = customer %d order %d", first.CustomerId, first.VisitOrder)
	}
	if second.CustomerId != f.customerY.ID || second.VisitOrder != 2 {
		t.Fatalf("second = customer %d order %d", second.CustomerId, second.VisitOrder)
	}
	if utils.FormatTimeOfDay(first.VisitedAt) != "10:00" || utils.FormatTimeOfDay(second.VisitedAt) != "09:00" {
		t.Fatalf("visited_at = %s, %s", utils.FormatTimeOfDay(first.VisitedAt), utils.FormatTimeOfDay(second.VisitedAt))
	}
	if first.VisitedAt.Year() != 1970 {
		t.Fatalf("visited_at should sit on the placeholder date, got %v", first.VisitedAt)
	}
	if first.Customer.CompanyName != "Acme Corp" {
		t.Fatalf("customer not attached: %+v", first.Customer)
	}
}

func TestCreateValidatesVisitRecords(t *testing.T) {
	f := newFixture(t)

	_, err := f.reports.Create(f.ctx, &models.NewDailyReport{
		ReportDate: "2024-06-10",
		Status:     "DRAFT",
		VisitRecords: []models.NewVisitRecord{
			{CustomerId: f.customerX.ID, VisitContent: "ok", VisitedAt: "9:00"},
		},
	}, f.salesA)
	assertField(t, err, "visit_records[0].visited_at")

	_, err = f.reports.Create(f.ctx, &models.NewDailyReport{
		ReportDate: "2024-06-10",
		Status:     "DRAFT",
		VisitRecords: []models.NewVisitRecord{
			{CustomerId: f.customerX.ID, VisitContent: "ok", VisitedAt: "09:00"},
			{CustomerId: 9999, VisitContent: "missing", VisitedAt: "10:00"},
		},
	}, f.salesA)
	assertField(t, err, "visit_records[1].customer_id")

	// nothing was written by the failed calls
	reports, total, err := f.reports.List(f.ctx, f.salesA, models.ReportFilter{Pagination: models.Pagination{Page: 1, PerPage: 20}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 || len(reports) != 0 {
		t.Fatalf("expected no reports after failed creates, got %d", total)
	}
}

func TestSubmitDraft(t *testing.T) {
	f := newFixture(t)
	report := f.createReport(t, f.salesA, "2024-06-10", models.ReportStatusDraft)

	submitted, err := f.reports.Submit(f.ctx, report.ID, f.salesA)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitted.Status != models.ReportStatusSubmitted {
		t.Fatalf("status = %s, want SUBMITTED", submitted.Status)
	}
	if submitted.SubmittedAt == nil || !submitted.SubmittedAt.Equal(fixedNow) {
		t.Fatalf("submitted_at = %v, want %v", submitted.SubmittedAt, fixedNow)
	}

	_, err = f.reports.Submit(f.ctx, report.ID, f.salesA)
	assertKind(t, err, utils.ErrorKindConflict)
}

func TestSubmitGuards(t *testing.T) {
	f := newFixture(t)
	report := f.createReport(t, f.salesA, "2024-06-10", models.ReportStatusDraft)

	_, err := f.reports.Submit(f.ctx, 9999, f.salesA)
	assertKind(t, err, utils.ErrorKindNotFound)

	_, err = f.reports.Submit(f.ctx, report.ID, f.salesB)
	assertKind(t, err, utils.ErrorKindForbidden)

	_, err = f.reports.Submit(f.ctx, report.ID, f.manager)
	assertKind(t, err, utils.ErrorKindForbidden)
}

func TestReviewSubmittedThenAgain(t *testing.T) {
	f := newFixture(t)
	report := f.submittedReport(t, f.salesA, "2024-06-10")

	reviewed, err := f.reports.Review(f.ctx, report.ID, f.manager)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if reviewed.Status != models.ReportStatusReviewed {
		t.Fatalf("status = %s, want REVIEWED", reviewed.Status)
	}
	if reviewed.SubmittedAt == nil || !reviewed.SubmittedAt.Equal(fixedNow) {
		t.Fatalf("review must not touch submitted_at, got %v", reviewed.SubmittedAt)
	}

	_, err = f.reports.Review(f.ctx, report.ID, f.manager)
	assertKind(t, err, utils.ErrorKindConflict)

	events := f.store.EnqueuedEvents()
	if len(events) != 2 || events[1].EventType != models.ReportEventReviewed {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestReviewChecksRoleBeforeExistence(t *testing.T) {
	f := newFixture(t)

	_, err := f.reports.Review(f.ctx, 9999, f.salesA)
	assertKind(t, err, utils.ErrorKindForbidden)

	_, err = f.reports.Review(f.ctx, 9999, f.manager)
	assertKind(t, err, utils.ErrorKindNotFound)
}

func TestReviewDraftConflicts(t *testing.T) {
	f := newFixture(t)
	report := f.createReport(t, f.salesA, "2024-06-10", models.ReportStatusDraft)

	_, err := f.reports.Review(f.ctx, report.ID, f.manager)
	assertKind(t, err, utils.ErrorKindConflict)
}

func TestOtherSalespersonIsForbidden(t *testing.T) {
	f := newFixture(t)
	report := f.createReport(t, f.salesB, "2024-06-10", models.ReportStatusDraft)

	_, err := f.reports.GetDetail(f.ctx, report.ID, f.salesA)
	assertKind(t, err, utils.ErrorKindForbidden)

	_, err = f.reports.Update(f.ctx, report.ID, &models.NewDailyReport{ReportDate: "2024-06-10", Status: "DRAFT"}, f.salesA)
	assertKind(t, err, utils.ErrorKindForbidden)

	err = f.reports.Delete(f.ctx, report.ID, f.salesA)
	assertKind(t, err, utils.ErrorKindForbidden)

	// managers may read any report
	if _, err := f.reports.GetDetail(f.ctx, report.ID, f.manager); err != nil {
		t.Fatalf("manager get detail: %v", err)
	}
}

func TestGetDetailNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.reports.GetDetail(f.ctx, 9999, f.salesA)
	assertKind(t, err, utils.ErrorKindNotFound)
}

func TestUpdateGuardOrder(t *testing.T) {
	f := newFixture(t)
	draft := f.createReport(t, f.salesA, "2024-06-08", models.ReportStatusDraft)
	submitted := f.submittedReport(t, f.salesA, "2024-06-09")

	future := &models.NewDailyReport{ReportDate: "2024-12-31", Status: "REVIEWED"}

	_, err := f.reports.Update(f.ctx, 9999, future, f.salesA)
	assertKind(t, err, utils.ErrorKindNotFound)

	// ownership wins over invalid input
	_, err = f.reports.Update(f.ctx, draft.ID, future, f.salesB)
	assertKind(t, err, utils.ErrorKindForbidden)

	// state wins over invalid input
	_, err = f.reports.Update(f.ctx, submitted.ID, future, f.salesA)
	assertKind(t, err, utils.ErrorKindForbidden)

	// date is checked before status
	_, err = f.reports.Update(f.ctx, draft.ID, future, f.salesA)
	assertField(t, err, "report_date")

	_, err = f.reports.Update(f.ctx, draft.ID, &models.NewDailyReport{ReportDate: "2024-06-08", Status: "REVIEWED"}, f.salesA)
	assertField(t, err, "status")

	// moving onto an occupied date conflicts
	_, err = f.reports.Update(f.ctx, draft.ID, &models.NewDailyReport{ReportDate: "2024-06-09", Status: "DRAFT"}, f.salesA)
	assertKind(t, err, utils.ErrorKindConflict)
}

func TestUpdateAppliesFieldsAndKeepsOwnDate(t *testing.T) {
	f := newFixture(t)
	report := f.createReport(t, f.salesA, "2024-06-10", models.ReportStatusDraft)

	updated, err := f.reports.Update(f.ctx, report.ID, &models.NewDailyReport{
		ReportDate: "2024-06-10",
		Status:     "DRAFT",
		Problem:    strPtr("pricing"),
		Plan:       strPtr("follow up"),
	}, f.salesA)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Problem == nil || *updated.Problem != "pricing" || updated.Plan == nil || *updated.Plan != "follow up" {
		t.Fatalf("fields not applied: %+v", updated)
	}

	moved, err := f.reports.Update(f.ctx, report.ID, &models.NewDailyReport{ReportDate: "2024-06-07", Status: "DRAFT"}, f.salesA)
	if err != nil {
		t.Fatalf("move date: %v", err)
	}
	if utils.FormatDate(moved.ReportDate) != "2024-06-07" {
		t.Fatalf("report_date = %s", utils.FormatDate(moved.ReportDate))
	}
	if moved.Problem != nil {
		t.Fatalf("problem should be cleared when omitted, got %q", *moved.Problem)
	}
}

func TestUpdateToSubmittedStampsOnce(t *testing.T) {
	f := newFixture(t)
	report := f.createReport(t, f.salesA, "2024-06-10", models.ReportStatusDraft)

	updated, err := f.reports.Update(f.ctx, report.ID, &models.NewDailyReport{ReportDate: "2024-06-10", Status: "SUBMITTED"}, f.salesA)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.ReportStatusSubmitted || updated.SubmittedAt == nil {
		t.Fatalf("expected SUBMITTED with timestamp, got %s %v", updated.Status, updated.SubmittedAt)
	}

	// no longer editable
	_, err = f.reports.Update(f.ctx, report.ID, &models.NewDailyReport{ReportDate: "2024-06-10", Status: "DRAFT"}, f.salesA)
	assertKind(t, err, utils.ErrorKindForbidden)

	events := f.store.EnqueuedEvents()
	if len(events) != 1 || events[0].EventType != models.ReportEventSubmitted {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestUpdateReplacesVisitRecords(t *testing.T) {
	f := newFixture(t)
	report := f.createReport(t, f.salesA, "2024-06-10", models.ReportStatusDraft,
		models.NewVisitRecord{CustomerId: f.customerX.ID, VisitContent: "old", VisitedAt: "08:00"},
	)
	oldId := report.VisitRecords[0].ID

	input := &models.NewDailyReport{
		ReportDate: "2024-06-10",
		Status:     "DRAFT",
		VisitRecords: []models.NewVisitRecord{
			{CustomerId: f.customerY.ID, VisitContent: "b", VisitedAt: "15:30"},
			{CustomerId: f.customerX.ID, VisitContent: "a", VisitedAt: "11:00"},
		},
	}
	first, err := f.reports.Update(f.ctx, report.ID, input, f.salesA)
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	second, err := f.reports.Update(f.ctx, report.ID, input, f.salesA)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	for _, got := range [][]models.VisitRecord{first.VisitRecords, second.VisitRecords} {
		if len(got) != 2 {
			t.Fatalf("visit records = %d, want 2", len(got))
		}
		if got[0].CustomerId != f.customerY.ID || got[0].VisitOrder != 1 || got[0].VisitContent != "b" {
			t.Fatalf("unexpected first visit: %+v", got[0])
		}
		if got[1].CustomerId != f.customerX.ID || got[1].VisitOrder != 2 || got[1].VisitContent != "a" {
			t.Fatalf("unexpected second visit: %+v", got[1])
		}
		for _, v := range got {
			if v.ID == oldId {
				t.Fatalf("old visit record %d survived the replace", oldId)
			}
		}
	}
	if first.VisitRecords[0].ID == second.VisitRecords[0].ID {
		t.Fatalf("visit records should be recreated on every update")
	}

	cleared, err := f.reports.Update(f.ctx, report.ID, &models.NewDailyReport{ReportDate: "2024-06-10", Status: "DRAFT"}, f.salesA)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(cleared.VisitRecords) != 0 || len(f.store.VisitRecordsOf(report.ID)) != 0 {
		t.Fatalf("empty input should remove all visit records")
	}
}

func TestUpdateRollsBackOnInvalidVisit(t *testing.T) {
	f := newFixture(t)
	report := f.createReport(t, f.salesA, "2024-06-10", models.ReportStatusDraft,
		models.NewVisitRecord{CustomerId: f.customerX.ID, VisitContent: "keep", VisitedAt: "08:00"},
	)

	_, err := f.reports.Update(f.ctx, report.ID, &models.NewDailyReport{
		ReportDate:   "2024-06-10",
		Status:       "SUBMITTED",
		VisitRecords: []models.NewVisitRecord{{CustomerId: 9999, VisitContent: "x", VisitedAt: "09:00"}},
	}, f.salesA)
	assertField(t, err, "visit_records[0].customer_id")

	current, err := f.reports.GetDetail(f.ctx, report.ID, f.salesA)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if current.Status != models.ReportStatusDraft || len(current.VisitRecords) != 1 || current.VisitRecords[0].VisitContent != "keep" {
		t.Fatalf("failed update leaked changes: %+v", current)
	}
}

func TestDeleteRemovesChildren(t *testing.T) {
	f := newFixture(t)
	report := f.createReport(t, f.salesA, "2024-06-10", models.ReportStatusDraft,
		models.NewVisitRecord{CustomerId: f.customerX.ID, VisitContent: "v", VisitedAt: "08:00"},
	)
	// comments cannot be posted on drafts through the service; seed one directly
	if err := f.store.Comments().Create(f.ctx, &models.Comment{
		DailyReportId: report.ID, ManagerId: f.manager.ID, Target: models.CommentTargetPlan, Content: "c",
	}); err != nil {
		t.Fatalf("seed comment: %v", err)
	}

	if err := f.reports.Delete(f.ctx, report.ID, f.salesA); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err := f.reports.GetDetail(f.ctx, report.ID, f.salesA)
	assertKind(t, err, utils.ErrorKindNotFound)
	if len(f.store.VisitRecordsOf(report.ID)) != 0 || len(f.store.CommentsOf(report.ID)) != 0 {
		t.Fatalf("children survived delete")
	}
	// the customer is free again
	count, _ := f.store.Customers().CountVisitRecords(f.ctx, f.customerX.ID)
	if count != 0 {
		t.Fatalf("visit records still reference customer: %d", count)
	}
}

func TestDeleteSubmittedIsForbidden(t *testing.T) {
	f := newFixture(t)
	report := f.submittedReport(t, f.salesA, "2024-06-10")

	err := f.reports.Delete(f.ctx, report.ID, f.salesA)
	assertKind(t, err, utils.ErrorKindForbidden)

	err = f.reports.Delete(f.ctx, 9999, f.salesA)
	assertKind(t, err, utils.ErrorKindNotFound)
}

func TestListScopesSalesToOwnReports(t *testing.T) {
	f := newFixture(t)
	f.createReport(t, f.salesA, "2024-06-08", models.ReportStatusDraft)
	f.createReport(t, f.salesA, "2024-06-09", models.ReportStatusSubmitted)
	f.createReport(t, f.salesB, "2024-06-09", models.ReportStatusDraft)

	otherId := f.salesB.ID
	reports, total, err := f.reports.List(f.ctx, f.salesA, models.ReportFilter{
		SalespersonId: &otherId,
		Pagination:    models.Pagination{Page: 1, PerPage: 20},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(reports) != 2 {
		t.Fatalf("sales list = %d/%d, want 2/2", len(reports), total)
	}
	for _, r := range reports {
		if r.SalespersonId != f.salesA.ID {
			t.Fatalf("sales list leaked report of %d", r.SalespersonId)
		}
	}

	all, total, err := f.reports.List(f.ctx, f.manager, models.ReportFilter{Pagination: models.Pagination{Page: 1, PerPage: 20}})
	if err != nil {
		t.Fatalf("manager list: %v", err)
	}
	if total != 3 || len(all) != 3 {
		t.Fatalf("manager list = %d/%d, want 3/3", len(all), total)
	}

	onlyB, total, err := f.reports.List(f.ctx, f.manager, models.ReportFilter{
		SalespersonId: &otherId,
		Pagination:    models.Pagination{Page: 1, PerPage: 20},
	})
	if err != nil {
		t.Fatalf("manager filtered list: %v", err)
	}
	if total != 1 || onlyB[0].SalespersonId != otherId {
		t.Fatalf("manager filter not applied: %d", total)
	}
}

func TestListFiltersSortsAndPaginates(t *testing.T) {
	f := newFixture(t)
	for _, d := range []string{"2024-06-01", "2024-06-03", "2024-06-05", "2024-06-07"} {
		f.createReport(t, f.salesA, d, models.ReportStatusDraft)
	}
	f.submittedReport(t, f.salesA, "2024-06-09")

	from, _ := utils.ParseDate("2024-06-03")
	to, _ := utils.ParseDate("2024-06-07")
	page, total, err := f.reports.List(f.ctx, f.salesA, models.ReportFilter{
		DateFrom:   &from,
		DateTo:     &to,
		SortBy:     models.ReportSortReportDate,
		Order:      models.SortOrderAsc,
		Pagination: models.Pagination{Page: 2, PerPage: 2},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3 (inclusive range)", total)
	}
	if len(page) != 1 || utils.FormatDate(page[0].ReportDate) != "2024-06-07" {
		t.Fatalf("unexpected second page: %+v", page)
	}

	status := models.ReportStatusSubmitted
	submitted, total, err := f.reports.List(f.ctx, f.salesA, models.ReportFilter{
		Status:     &status,
		Pagination: models.Pagination{Page: 1, PerPage: 20},
	})
	if err != nil {
		t.Fatalf("status list: %v", err)
	}
	if total != 1 || submitted[0].Status != models.ReportStatusSubmitted {
		t.Fatalf("status filter = %d", total)
	}

	newest, _, err := f.reports.List(f.ctx, f.salesA, models.ReportFilter{
		SortBy:     models.ReportSortReportDate,
		Order:      models.SortOrderDesc,
		Pagination: models.Pagination{Page: 1, PerPage: 1},
	})
	if err != nil {
		t.Fatalf("desc list: %v", err)
	}
	if utils.FormatDate(newest[0].ReportDate) != "2024-06-09" {
		t.Fatalf("newest = %s", utils.FormatDate(newest[0].ReportDate))
	}
}

func TestListAllIgnoresPageWindow(t *testing.T) {
	f := newFixture(t)
	for _, d := range []string{"2024-06-01", "2024-06-02", "2024-06-03"} {
		f.createReport(t, f.salesA, d, models.ReportStatusDraft)
	}

	all, err := f.reports.ListAll(f.ctx, f.salesA, models.ReportFilter{Pagination: models.Pagination{Page: 2, PerPage: 1}})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("list all = %d, want 3", len(all))
	}
}

func TestStatusNeverMovesBackward(t *testing.T) {
	f := newFixture(t)
	report := f.submittedReport(t, f.salesA, "2024-06-10")
	if _, err := f.reports.Review(f.ctx, report.ID, f.manager); err != nil {
		t.Fatalf("review: %v", err)
	}

	_, err := f.reports.Submit(f.ctx, report.ID, f.salesA)
	assertKind(t, err, utils.ErrorKindConflict)

	_, err = f.reports.Update(f.ctx, report.ID, &models.NewDailyReport{ReportDate: "2024-06-10", Status: "DRAFT"}, f.salesA)
	assertKind(t, err, utils.ErrorKindForbidden)

	current, err := f.reports.GetDetail(f.ctx, report.ID, f.salesA)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if current.Status != models.ReportStatusReviewed {
		t.Fatalf("status = %s, want REVIEWED", current.Status)
	}
}

func TestNilCallerIsUnauthorized(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.reports.List(f.ctx, nil, models.ReportFilter{})
	assertKind(t, err, utils.ErrorKindUnauthorized)

	_, err = f.reports.Review(f.ctx, 1, nil)
	assertKind(t, err, utils.ErrorKindUnauthorized)
}
