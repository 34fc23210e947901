package repositories

import (
	"context"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VisitRecordRepository struct {
	db *gorm.DB
}

func NewVisitRecordRepository(db *gorm.DB) *VisitRecordRepository {
	return &VisitRecordRepository{db: db}
}

func (r *VisitRecordRepository) DeleteByReportId(ctx context.Context, reportId int) error {
	return r.db.WithContext(ctx).
		Where("daily_report_id = ?", reportId).
		Delete(&models.VisitRecord{}).Error
}

func (r *VisitRecordRepository) BulkCreate(ctx context.Context, records []*models.VisitRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&records).Error
}

type visitCount struct {
	DailyReportId int
	Count         int
}

func (r *VisitRecordRepository) CountByReportIds(ctx context.Context, reportIds []int) (map[int]int, error) {
	counts := make(map[int]int)
	unqIds := utils.UniqueSlice(reportIds)
	if len(unqIds) == 0 {
		return counts, nil
	}
	var rows []visitCount
	err := r.db.WithContext(ctx).Model(&models.VisitRecord{}).
		Select("daily_report_id, COUNT(*) AS count").
		Where("daily_report_id IN ?", unqIds).
		Group("daily_report_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.DailyReportId] = row.Count
	}
	return counts, nil
}
