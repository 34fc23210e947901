package handlers

import (
	"strconv"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/daily_report_backend/middlewares"
	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// report binding errors under json field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(utils.JsonTagName)
	}
}

func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return utils.NewValidationError(utils.ProcessValidationErrors(err)...)
	}
	return nil
}

func requireCaller(c *gin.Context) (*models.User, error) {
	user := middlewares.CurrentUser(c.Request.Context())
	if user == nil {
		return nil, utils.NewUnauthorizedError("")
	}
	return user, nil
}

func idParam(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, utils.NewFieldValidationError(name, "must be a positive integer")
	}
	return id, nil
}

func parsePagination(c *gin.Context) (models.Pagination, error) {
	p := models.Pagination{Page: models.DefaultPage, PerPage: models.DefaultPerPage}
	var details []utils.FieldError

	if raw, ok := c.GetQuery("page"); ok {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			details = append(details, utils.FieldError{Field: "page", Message: "must be an integer >= 1"})
		} else {
			p.Page = page
		}
	}
	if raw, ok := c.GetQuery("per_page"); ok {
		perPage, err := strconv.Atoi(raw)
		if err != nil || perPage < 1 || perPage > models.MaxPerPage {
			details = append(details, utils.FieldError{Field: "per_page", Message: "must be an integer between 1 and " + strconv.Itoa(models.MaxPerPage)})
		} else {
			p.PerPage = perPage
		}
	}

	if len(details) > 0 {
		return p, utils.NewValidationError(details...)
	}
	return p, nil
}

func optionalDateQuery(c *gin.Context, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	d, err := utils.ParseDate(raw)
	if err != nil {
		return nil, utils.NewFieldValidationError(key, "must be a date in YYYY-MM-DD format")
	}
	return &d, nil
}

func optionalIntQuery(c *gin.Context, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, utils.NewFieldValidationError(key, "must be an integer")
	}
	return &n, nil
}

func optionalStringQuery(c *gin.Context, key string) *string {
	return utils.NilIfEmpty(strings.TrimSpace(c.Query(key)))
}

// parseReportFilter reads the list/export query; withPage is false for export.
func parseReportFilter(c *gin.Context, withPage bool) (models.ReportFilter, error) {
	filter := models.ReportFilter{
		SortBy: models.ParseReportSortField(c.Query("sort")),
		Order:  models.ParseSortOrder(c.Query("order"), models.SortOrderDesc),
	}

	var err error
	if filter.DateFrom, err = optionalDateQuery(c, "date_from"); err != nil {
		return filter, err
	}
	if filter.DateTo, err = optionalDateQuery(c, "date_to"); err != nil {
		return filter, err
	}
	if filter.SalespersonId, err = optionalIntQuery(c, "salesperson_id"); err != nil {
		return filter, err
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, err := models.ParseReportStatus(raw)
		if err != nil {
			return filter, utils.NewFieldValidationError("status", "must be one of DRAFT, SUBMITTED, REVIEWED")
		}
		filter.Status = &status
	}
	if withPage {
		if filter.Pagination, err = parsePagination(c); err != nil {
			return filter, err
		}
	}
	return filter, nil
}

func parseCustomerFilter(c *gin.Context) (models.CustomerFilter, error) {
	filter := models.CustomerFilter{
		CompanyName: optionalStringQuery(c, "company_name"),
		ContactName: optionalStringQuery(c, "contact_name"),
		SortBy:      models.ParseCustomerSortField(c.Query("sort")),
		Order:       models.ParseSortOrder(c.Query("order"), models.SortOrderAsc),
	}
	var err error
	filter.Pagination, err = parsePagination(c)
	return filter, err
}
