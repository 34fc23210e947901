package handlers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListReports(c *gin.Context) {
	caller, err := requireCaller(c)
	if err != nil {
		h.respondError(c, "ListReports", err)
		return
	}
	filter, err := parseReportFilter(c, true)
	if err != nil {
		h.respondError(c, "ListReports", err)
		return
	}

	ctx, span := h.startSpan(c, "ReportService.List")
	reports, total, err := h.reports.List(ctx, caller, filter)
	endSpan(span, err)
	if err != nil {
		h.respondError(c, "ListReports", err)
		return
	}

	items, err := toReportListItems(c.Request.Context(), reports)
	if err != nil {
		h.respondError(c, "ListReports", err)
		return
	}
	respondList(c, items, filter.Pagination, total)
}

func (h *Handler) CreateReport(c *gin.Context) {
	caller, err := requireCaller(c)
	if err != nil {
		h.respondError(c, "CreateReport", err)
		return
	}
	var input models.NewDailyReport
	if err := bindJSON(c, &input); err != nil {
		h.respondError(c, "CreateReport", err)
		return
	}

	ctx, span := h.startSpan(c, "ReportService.Create")
	report, err := h.reports.Create(ctx, &input, caller)
	endSpan(span, err)
	if err != nil {
		h.respondError(c, "CreateReport", err)
		return
	}
	respondData(c, http.StatusCreated, toReportDetail(report))
}

func (h *Handler) GetReport(c *gin.Context) {
	caller, err := requireCaller(c)
	if err != nil {
		h.respondError(c, "GetReport", err)
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, "GetReport", err)
		return
	}

	ctx, span := h.startSpan(c, "ReportService.GetDetail")
	report, err := h.reports.GetDetail(ctx, id, caller)
	endSpan(span, err)
	if err != nil {
		h.respondError(c, "GetReport", err)
		return
	}
	respondData(c, http.StatusOK, toReportDetail(report))
}

func (h *Handler) UpdateReport(c *gin.Context) {
	caller, err := requireCaller(c)
	if err != nil {
		h.respondError(c, "UpdateReport", err)
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, "UpdateReport", err)
		return
	}
	var input models.NewDailyReport
	if err := bindJSON(c, &input); err != nil {
		h.respondError(c, "UpdateReport", err)
		return
	}

	ctx, span := h.startSpan(c, "ReportService.Update")
	report, err := h.reports.Update(ctx, id, &input, caller)
	endSpan(span, err)
	if err != nil {
		h.respondError(c, "UpdateReport", err)
		return
	}
	respondData(c, http.StatusOK, toReportDetail(report))
}

func (h *Handler) DeleteReport(c *gin.Context) {
	caller, err := requireCaller(c)
	if err != nil {
		h.respondError(c, "DeleteReport", err)
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, "DeleteReport", err)
		return
	}

	ctx, span := h.startSpan(c, "ReportService.Delete")
	err = h.reports.Delete(ctx, id, caller)
	endSpan(span, err)
	if err != nil {
		h.respondError(c, "DeleteReport", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) SubmitReport(c *gin.Context) {
	caller, err := requireCaller(c)
	if err != nil {
		h.respondError(c, "SubmitReport", err)
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, "SubmitReport", err)
		return
	}

	ctx, span := h.startSpan(c, "ReportService.Submit")
	report, err := h.reports.Submit(ctx, id, caller)
	endSpan(span, err)
	if err != nil {
		h.respondError(c, "SubmitReport", err)
		return
	}
	respondData(c, http.StatusOK, submitResponse{ID: report.ID, Status: report.Status, SubmittedAt: report.SubmittedAt})
}

func (h *Handler) ReviewReport(c *gin.Context) {
	caller, err := requireCaller(c)
	if err != nil {
		h.respondError(c, "ReviewReport", err)
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, "ReviewReport", err)
		return
	}

	ctx, span := h.startSpan(c, "ReportService.Review")
	report, err := h.reports.Review(ctx, id, caller)
	endSpan(span, err)
	if err != nil {
		h.respondError(c, "ReviewReport", err)
		return
	}
	respondData(c, http.StatusOK, reviewResponse{ID: report.ID, Status: report.Status})
}
