package inmem

import (
	"context"
	"sort"
	"time"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
)

type reportRepository struct {
	db *memDB
}

// bare drops the attached children so only the row is stored.
func bare(r models.DailyReport) models.DailyReport {
	r.Salesperson = models.User{}
	r.VisitRecords = nil
	r.Comments = nil
	return r
}

func visitRecordsOf(st *state, reportId int) []models.VisitRecord {
	out := []models.VisitRecord{}
	for _, v := range st.visits {
		if v.DailyReportId == reportId {
			v.Customer = st.customers[v.CustomerId]
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VisitOrder < out[j].VisitOrder })
	return out
}

func commentsOf(st *state, reportId int) []models.Comment {
	out := []models.Comment{}
	for _, c := range st.comments {
		if c.DailyReportId == reportId {
			c.Manager = st.users[c.ManagerId]
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func dateTaken(st *state, salespersonId int, reportDate time.Time, exceptId int) bool {
	for _, r := range st.reports {
		if r.ID != exceptId && r.SalespersonId == salespersonId && r.ReportDate.Equal(reportDate) {
			return true
		}
	}
	return false
}

func (r *reportRepository) FindById(_ context.Context, id int) (*models.DailyReport, error) {
	var out *models.DailyReport
	err := r.db.with(func(st *state) error {
		report, ok := st.reports[id]
		if !ok {
			return utils.ErrorRecordNotFound
		}
		report.Salesperson = st.users[report.SalespersonId]
		report.VisitRecords = visitRecordsOf(st, id)
		report.Comments = commentsOf(st, id)
		out = &report
		return nil
	})
	return out, err
}

func (r *reportRepository) FindBySalespersonAndDate(_ context.Context, salespersonId int, reportDate time.Time) (*models.DailyReport, error) {
	var out *models.DailyReport
	err := r.db.with(func(st *state) error {
		date := utils.DateOf(reportDate)
		for _, report := range st.reports {
			if report.SalespersonId == salespersonId && report.ReportDate.Equal(date) {
				report := report
				out = &report
				return nil
			}
		}
		return utils.ErrorRecordNotFound
	})
	return out, err
}

func compareReports(a, b models.DailyReport, field models.ReportSortField) int {
	switch field {
	case models.ReportSortStatus:
		switch {
		case a.Status < b.Status:
			return -1
		case a.Status > b.Status:
			return 1
		}
		return 0
	case models.ReportSortSubmittedAt:
		// NULL sorts first ascending, as in MySQL
		switch {
		case a.SubmittedAt == nil && b.SubmittedAt == nil:
			return 0
		case a.SubmittedAt == nil:
			return -1
		case b.SubmittedAt == nil:
			return 1
		}
		return a.SubmittedAt.Compare(*b.SubmittedAt)
	default:
		return a.ReportDate.Compare(b.ReportDate)
	}
}

func (r *reportRepository) List(_ context.Context, filter models.ReportFilter) ([]*models.DailyReport, int64, error) {
	var (
		out   []*models.DailyReport
		total int64
	)
	err := r.db.with(func(st *state) error {
		var matched []models.DailyReport
		for _, report := range st.reports {
			if filter.SalespersonId != nil && report.SalespersonId != *filter.SalespersonId {
				continue
			}
			if filter.Status != nil && report.Status != *filter.Status {
				continue
			}
			if filter.DateFrom != nil && report.ReportDate.Before(utils.DateOf(*filter.DateFrom)) {
				continue
			}
			if filter.DateTo != nil && report.ReportDate.After(utils.DateOf(*filter.DateTo)) {
				continue
			}
			matched = append(matched, report)
		}

		desc := filter.Order != models.SortOrderAsc
		sort.Slice(matched, func(i, j int) bool {
			c := compareReports(matched[i], matched[j], filter.SortBy)
			if c == 0 {
				c = matched[i].ID - matched[j].ID
			}
			if desc {
				return c > 0
			}
			return c < 0
		})

		total = int64(len(matched))
		out = []*models.DailyReport{}
		for _, report := range window(matched, filter.Offset(), filter.Limit()) {
			report := report
			out = append(out, &report)
		}
		return nil
	})
	return out, total, err
}

func (r *reportRepository) Create(_ context.Context, report *models.DailyReport) error {
	return r.db.with(func(st *state) error {
		report.ReportDate = utils.DateOf(report.ReportDate)
		if dateTaken(st, report.SalespersonId, report.ReportDate, 0) {
			return utils.NewConflictError("a report for this date already exists")
		}
		now := r.db.now()
		report.ID = st.newId()
		report.CreatedAt = now
		report.UpdatedAt = now
		st.reports[report.ID] = bare(*report)
		return nil
	})
}

func (r *reportRepository) Update(_ context.Context, report *models.DailyReport) error {
	return r.db.with(func(st *state) error {
		if _, ok := st.reports[report.ID]; !ok {
			return utils.ErrorRecordNotFound
		}
		report.ReportDate = utils.DateOf(report.ReportDate)
		if dateTaken(st, report.SalespersonId, report.ReportDate, report.ID) {
			return utils.NewConflictError("a report for this date already exists")
		}
		report.UpdatedAt = r.db.now()
		st.reports[report.ID] = bare(*report)
		return nil
	})
}

func (r *reportRepository) Delete(_ context.Context, report *models.DailyReport) error {
	return r.db.with(func(st *state) error {
		delete(st.reports, report.ID)
		return nil
	})
}

type visitRecordRepository struct {
	db *memDB
}

func (r *visitRecordRepository) DeleteByReportId(_ context.Context, reportId int) error {
	return r.db.with(func(st *state) error {
		for id, v := range st.visits {
			if v.DailyReportId == reportId {
				delete(st.visits, id)
			}
		}
		return nil
	})
}

func (r *visitRecordRepository) BulkCreate(_ context.Context, records []*models.VisitRecord) error {
	return r.db.with(func(st *state) error {
		now := r.db.now()
		for _, v := range records {
			for _, existing := range st.visits {
				if existing.DailyReportId == v.DailyReportId && existing.VisitOrder == v.VisitOrder {
					return utils.NewConflictError("duplicate visit order")
				}
			}
			v.ID = st.newId()
			v.CreatedAt = now
			v.UpdatedAt = now
			stored := *v
			stored.Customer = models.Customer{}
			st.visits[v.ID] = stored
		}
		return nil
	})
}

func (r *visitRecordRepository) CountByReportIds(_ context.Context, reportIds []int) (map[int]int, error) {
	counts := make(map[int]int)
	err := r.db.with(func(st *state) error {
		wanted := make(map[int]bool, len(reportIds))
		for _, id := range reportIds {
			wanted[id] = true
		}
		for _, v := range st.visits {
			if wanted[v.DailyReportId] {
				counts[v.DailyReportId]++
			}
		}
		return nil
	})
	return counts, err
}

type commentRepository struct {
	db *memDB
}

func (r *commentRepository) Create(_ context.Context, comment *models.Comment) error {
	return r.db.with(func(st *state) error {
		now := r.db.now()
		comment.ID = st.newId()
		if comment.CreatedAt.IsZero() {
			comment.CreatedAt = now
		}
		comment.UpdatedAt = now
		stored := *comment
		stored.Manager = models.User{}
		st.comments[comment.ID] = stored
		return nil
	})
}

func (r *commentRepository) DeleteByReportId(_ context.Context, reportId int) error {
	return r.db.with(func(st *state) error {
		for id, c := range st.comments {
			if c.DailyReportId == reportId {
				delete(st.comments, id)
			}
		}
		return nil
	})
}
