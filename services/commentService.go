package services

import (
	"context"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
)

// CommentService appends manager feedback. Comments are never edited or removed on their own.
type CommentService struct {
	uow   models.UnitOfWork
	clock utils.Clock
}

func NewCommentService(uow models.UnitOfWork, clock utils.Clock) *CommentService {
	return &CommentService{uow: uow, clock: clock}
}

func (s *CommentService) Create(ctx context.Context, reportId int, input *models.NewComment, caller *models.User) (*models.Comment, error) {
	if caller == nil {
		return nil, utils.NewUnauthorizedError("")
	}
	if caller.Role != models.UserRoleManager {
		return nil, utils.NewForbiddenError("only managers can comment on reports")
	}

	var created *models.Comment
	err := s.uow.Transaction(ctx, func(repos models.Repositories) error {
		report, err := findReport(ctx, repos, reportId)
		if err != nil {
			return err
		}
		if report.Status == models.ReportStatusDraft {
			return utils.NewForbiddenError("draft reports cannot be commented on")
		}
		target := models.CommentTarget(input.Target)
		if !target.IsValid() {
			return utils.NewFieldValidationError("target", "must be PROBLEM or PLAN")
		}

		now := s.clock.Now()
		comment := &models.Comment{
			DailyReportId: report.ID,
			ManagerId:     caller.ID,
			Target:        target,
			Content:       input.Content,
			CreatedAt:     now,
		}
		if err := repos.Comments().Create(ctx, comment); err != nil {
			return err
		}
		comment.Manager = *caller

		correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
		event, err := models.NewCommentEvent(report, comment, now, correlationId)
		if err != nil {
			return err
		}
		if err := repos.Events().Enqueue(ctx, event); err != nil {
			return err
		}
		created = comment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
