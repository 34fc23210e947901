package repositories

import (
	"context"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

func (r *CommentRepository) DeleteByReportId(ctx context.Context, reportId int) error {
	return r.db.WithContext(ctx).
		Where("daily_report_id = ?", reportId).
		Delete(&models.Comment{}).Error
}
