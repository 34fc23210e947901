package handlers

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/daily_report_backend/middlewares"
	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
)

type personSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type customerSummary struct {
	ID          int    `json:"id"`
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name"`
}

type userResponse struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

type loginResponse struct {
	User userResponse `json:"user"`
}

type reportListItem struct {
	ID          int                 `json:"id"`
	ReportDate  string              `json:"report_date"`
	Salesperson personSummary       `json:"salesperson"`
	VisitCount  int                 `json:"visit_count"`
	Status      models.ReportStatus `json:"status"`
	SubmittedAt *time.Time          `json:"submitted_at"`
}

type visitRecordResponse struct {
	ID           int             `json:"id"`
	Customer     customerSummary `json:"customer"`
	VisitContent string          `json:"visit_content"`
	VisitedAt    string          `json:"visited_at"`
	VisitOrder   int             `json:"visit_order"`
}

type commentResponse struct {
	ID        int                  `json:"id"`
	Target    models.CommentTarget `json:"target"`
	Manager   personSummary        `json:"manager"`
	Content   string               `json:"content"`
	CreatedAt time.Time            `json:"created_at"`
}

type reportDetail struct {
	ID           int                   `json:"id"`
	ReportDate   string                `json:"report_date"`
	Salesperson  personSummary         `json:"salesperson"`
	Problem      *string               `json:"problem"`
	Plan         *string               `json:"plan"`
	Status       models.ReportStatus   `json:"status"`
	SubmittedAt  *time.Time            `json:"submitted_at"`
	VisitRecords []visitRecordResponse `json:"visit_records"`
	Comments     []commentResponse     `json:"comments"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

type submitResponse struct {
	ID          int                 `json:"id"`
	Status      models.ReportStatus `json:"status"`
	SubmittedAt *time.Time          `json:"submitted_at"`
}

type reviewResponse struct {
	ID     int                 `json:"id"`
	Status models.ReportStatus `json:"status"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func toPersonSummary(u models.User) personSummary {
	return personSummary{ID: u.ID, Name: u.Name}
}

func toCommentResponse(c models.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		Target:    c.Target,
		Manager:   toPersonSummary(c.Manager),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func toReportDetail(r *models.DailyReport) reportDetail {
	visits := make([]visitRecordResponse, 0, len(r.VisitRecords))
	for _, v := range r.VisitRecords {
		visits = append(visits, visitRecordResponse{
			ID: v.ID,
			Customer: customerSummary{
				ID:          v.Customer.ID,
				CompanyName: v.Customer.CompanyName,
				ContactName: v.Customer.ContactName,
			},
			VisitContent: v.VisitContent,
			VisitedAt:    utils.FormatTimeOfDay(v.VisitedAt),
			VisitOrder:   v.VisitOrder,
		})
	}
	comments := make([]commentResponse, 0, len(r.Comments))
	for _, c := range r.Comments {
		comments = append(comments, toCommentResponse(c))
	}
	return reportDetail{
		ID:           r.ID,
		ReportDate:   utils.FormatDate(r.ReportDate),
		Salesperson:  toPersonSummary(r.Salesperson),
		Problem:      r.Problem,
		Plan:         r.Plan,
		Status:       r.Status,
		SubmittedAt:  r.SubmittedAt,
		VisitRecords: visits,
		Comments:     comments,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// toReportListItems fills salesperson names and visit counts through the request loaders.
func toReportListItems(ctx context.Context, reports []*models.DailyReport) ([]reportListItem, error) {
	items := make([]reportListItem, 0, len(reports))
	if len(reports) == 0 {
		return items, nil
	}

	salespersonIds := make([]int, 0, len(reports))
	reportIds := make([]int, 0, len(reports))
	for _, r := range reports {
		salespersonIds = append(salespersonIds, r.SalespersonId)
		reportIds = append(reportIds, r.ID)
	}

	users, errs := middlewares.GetUsers(ctx, salespersonIds)
	if err := firstError(errs); err != nil {
		return nil, fmt.Errorf("load salespersons: %w", err)
	}
	counts, errs := middlewares.GetVisitCounts(ctx, reportIds)
	if err := firstError(errs); err != nil {
		return nil, fmt.Errorf("load visit counts: %w", err)
	}

	for i, r := range reports {
		items = append(items, reportListItem{
			ID:          r.ID,
			ReportDate:  utils.FormatDate(r.ReportDate),
			Salesperson: toPersonSummary(*users[i]),
			VisitCount:  counts[i],
			Status:      r.Status,
			SubmittedAt: r.SubmittedAt,
		})
	}
	return items, nil
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
