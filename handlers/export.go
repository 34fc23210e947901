package handlers

import (
	"fmt"

	"bitbucket.org/mmdatafocus/daily_report_backend/config"
	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet    = "Reports"
	exportFilename = "reports.xlsx"
	xlsxMediaType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportHeaders = []any{"Report Date", "Salesperson", "Status", "Submitted At", "Visit Count", "Problem", "Plan"}

// ExportReports writes the caller's filtered report list, without a page window, as a workbook.
func (h *Handler) ExportReports(c *gin.Context) {
	caller, err := requireCaller(c)
	if err != nil {
		h.respondError(c, "ExportReports", err)
		return
	}
	filter, err := parseReportFilter(c, false)
	if err != nil {
		h.respondError(c, "ExportReports", err)
		return
	}

	ctx, span := h.startSpan(c, "ReportService.ListAll")
	reports, err := h.reports.ListAll(ctx, caller, filter)
	endSpan(span, err)
	if err != nil {
		h.respondError(c, "ExportReports", err)
		return
	}

	items, err := toReportListItems(c.Request.Context(), reports)
	if err != nil {
		h.respondError(c, "ExportReports", err)
		return
	}

	f, err := buildReportWorkbook(reports, items)
	if err != nil {
		h.respondError(c, "ExportReports", err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", xlsxMediaType)
	c.Header("Content-Disposition", "attachment; filename="+exportFilename)
	if err := f.Write(c.Writer); err != nil {
		// headers are already out; only log
		config.LogError(h.logger, "handlers", "ExportReports", "write workbook", nil, err)
	}
}

func buildReportWorkbook(reports []*models.DailyReport, items []reportListItem) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return nil, err
	}

	for i, r := range reports {
		submittedAt := ""
		if r.SubmittedAt != nil {
			submittedAt = r.SubmittedAt.UTC().Format("2006-01-02 15:04:05")
		}
		row := []any{
			utils.FormatDate(r.ReportDate),
			items[i].Salesperson.Name,
			string(r.Status),
			submittedAt,
			items[i].VisitCount,
			utils.DereferencePtr(r.Problem, ""),
			utils.DereferencePtr(r.Plan, ""),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f, nil
}
