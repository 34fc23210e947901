package handlers

import (
	"net/http"
	"strings"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListUsers(c *gin.Context) {
	caller, err := requireCaller(c)
	if err != nil {
		h.respondError(c, "ListUsers", err)
		return
	}

	var role *models.UserRole
	if raw := strings.TrimSpace(c.Query("role")); raw != "" {
		parsed, err := models.ParseUserRole(raw)
		if err != nil {
			h.respondError(c, "ListUsers", utils.NewFieldValidationError("role", "must be SALES or MANAGER"))
			return
		}
		role = &parsed
	}

	ctx, span := h.startSpan(c, "UserService.List")
	users, err := h.users.List(ctx, caller, role)
	endSpan(span, err)
	if err != nil {
		h.respondError(c, "ListUsers", err)
		return
	}

	data := make([]userResponse, 0, len(users))
	for _, u := range users {
		data = append(data, toUserResponse(u))
	}
	respondData(c, http.StatusOK, data)
}
