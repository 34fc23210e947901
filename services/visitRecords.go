package services

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
)

type parsedVisit struct {
	customerId int
	content    string
	visitedAt  time.Time
}

// parseVisitRecords keeps input order; every bad visited_at is reported.
func parseVisitRecords(input []models.NewVisitRecord) ([]parsedVisit, error) {
	visits := make([]parsedVisit, 0, len(input))
	var details []utils.FieldError
	for i, v := range input {
		visitedAt, err := utils.ParseTimeOfDay(v.VisitedAt)
		if err != nil {
			details = append(details, utils.FieldError{
				Field:   fmt.Sprintf("visit_records[%d].visited_at", i),
				Message: "must be a time in HH:MM format",
			})
			continue
		}
		visits = append(visits, parsedVisit{
			customerId: v.CustomerId,
			content:    v.VisitContent,
			visitedAt:  visitedAt,
		})
	}
	if len(details) > 0 {
		return nil, utils.NewValidationError(details...)
	}
	return visits, nil
}

func validateVisitCustomers(ctx context.Context, repos models.Repositories, visits []parsedVisit) error {
	if len(visits) == 0 {
		return nil
	}
	ids := make([]int, 0, len(visits))
	for _, v := range visits {
		ids = append(ids, v.customerId)
	}
	existing, err := repos.Customers().ExistingIds(ctx, ids)
	if err != nil {
		return err
	}
	var details []utils.FieldError
	for i, v := range visits {
		if !existing[v.customerId] {
			details = append(details, utils.FieldError{
				Field:   fmt.Sprintf("visit_records[%d].customer_id", i),
				Message: "customer not found",
			})
		}
	}
	if len(details) > 0 {
		return utils.NewValidationError(details...)
	}
	return nil
}

// replaceVisitRecords inserts the new set; visit_order is the 1-based input position.
// Existing rows must already be gone.
func replaceVisitRecords(ctx context.Context, repos models.Repositories, reportId int, visits []parsedVisit) error {
	if len(visits) == 0 {
		return nil
	}
	records := make([]*models.VisitRecord, 0, len(visits))
	for i, v := range visits {
		records = append(records, &models.VisitRecord{
			DailyReportId: reportId,
			CustomerId:    v.customerId,
			VisitContent:  v.content,
			VisitedAt:     v.visitedAt,
			VisitOrder:    i + 1,
		})
	}
	return repos.VisitRecords().BulkCreate(ctx, records)
}
