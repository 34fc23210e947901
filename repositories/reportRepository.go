package repositories

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var reportSortColumns = map[models.ReportSortField]string{
	models.ReportSortReportDate:  "report_date",
	models.ReportSortStatus:      "status",
	models.ReportSortSubmittedAt: "submitted_at",
}

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) FindById(ctx context.Context, id int) (*models.DailyReport, error) {
	var report models.DailyReport
	err := r.db.WithContext(ctx).
		Preload("Salesperson").
		Preload("VisitRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("visit_order ASC")
		}).
		Preload("VisitRecords.Customer").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		}).
		Preload("Comments.Manager").
		First(&report, id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &report, nil
}

func (r *ReportRepository) FindBySalespersonAndDate(ctx context.Context, salespersonId int, reportDate time.Time) (*models.DailyReport, error) {
	var report models.DailyReport
	err := r.db.WithContext(ctx).
		Where("salesperson_id = ? AND report_date = ?", salespersonId, utils.FormatDate(reportDate)).
		First(&report).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &report, nil
}

// List does not attach children; list rows resolve names and counts through loaders.
func (r *ReportRepository) List(ctx context.Context, filter models.ReportFilter) ([]*models.DailyReport, int64, error) {
	dbCtx := r.db.WithContext(ctx).Model(&models.DailyReport{})
	if filter.SalespersonId != nil {
		dbCtx = dbCtx.Where("salesperson_id = ?", *filter.SalespersonId)
	}
	if filter.Status != nil {
		dbCtx = dbCtx.Where("status = ?", *filter.Status)
	}
	if filter.DateFrom != nil {
		dbCtx = dbCtx.Where("report_date >= ?", utils.FormatDate(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		dbCtx = dbCtx.Where("report_date <= ?", utils.FormatDate(*filter.DateTo))
	}

	var total int64
	if err := dbCtx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := reportSortColumns[filter.SortBy]
	if !ok {
		column = "report_date"
	}
	desc := filter.Order != models.SortOrderAsc

	var reports []*models.DailyReport
	err := dbCtx.
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc}).
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *ReportRepository) Create(ctx context.Context, report *models.DailyReport) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(report).Error
	if isDuplicateKeyError(err) {
		return utils.NewConflictError("a report for this date already exists")
	}
	return err
}

func (r *ReportRepository) Update(ctx context.Context, report *models.DailyReport) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(report).Error
	if isDuplicateKeyError(err) {
		return utils.NewConflictError("a report for this date already exists")
	}
	return err
}

// Delete removes the report row only; children are deleted explicitly by the caller.
func (r *ReportRepository) Delete(ctx context.Context, report *models.DailyReport) error {
	return r.db.WithContext(ctx).Delete(&models.DailyReport{}, report.ID).Error
}
