package handlers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/daily_report_backend/config"
	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
	"github.com/gin-gonic/gin"
)

const internalErrorCode = "INTERNAL_SERVER_ERROR"

var statusByKind = map[utils.ErrorKind]int{
	utils.ErrorKindValidation:   http.StatusBadRequest,
	utils.ErrorKindUnauthorized: http.StatusUnauthorized,
	utils.ErrorKindForbidden:    http.StatusForbidden,
	utils.ErrorKindNotFound:     http.StatusNotFound,
	utils.ErrorKindConflict:     http.StatusConflict,
}

type errorBody struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Details []utils.FieldError `json:"details,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type dataResponse struct {
	Data any `json:"data"`
}

type listResponse struct {
	Data       any             `json:"data"`
	Pagination models.PageInfo `json:"pagination"`
}

// respondError maps domain errors to their status; anything else is a 500 with a generic body.
func (h *Handler) respondError(c *gin.Context, funcName string, err error) {
	if appErr, ok := utils.AsAppError(err); ok {
		status, known := statusByKind[appErr.Kind]
		if known {
			c.AbortWithStatusJSON(status, errorResponse{Error: errorBody{
				Code:    string(appErr.Kind),
				Message: appErr.Message,
				Details: appErr.Details,
			}})
			return
		}
	}

	config.LogError(h.logger, "handlers", funcName, c.Request.Method+" "+c.FullPath(), nil, err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: errorBody{
		Code:    internalErrorCode,
		Message: "an unexpected error occurred",
	}})
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, dataResponse{Data: data})
}

func respondList(c *gin.Context, data any, page models.Pagination, total int64) {
	c.JSON(http.StatusOK, listResponse{Data: data, Pagination: models.NewPageInfo(page, total)})
}

func CustomNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorResponse{Error: errorBody{
		Code:    string(utils.ErrorKindNotFound),
		Message: "route not found",
	}})
}
