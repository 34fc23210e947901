package handlers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateComment(c *gin.Context) {
	caller, err := requireCaller(c)
	if err != nil {
		h.respondError(c, "CreateComment", err)
		return
	}
	reportId, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, "CreateComment", err)
		return
	}
	var input models.NewComment
	if err := bindJSON(c, &input); err != nil {
		h.respondError(c, "CreateComment", err)
		return
	}

	ctx, span := h.startSpan(c, "CommentService.Create")
	comment, err := h.comments.Create(ctx, reportId, &input, caller)
	endSpan(span, err)
	if err != nil {
		h.respondError(c, "CreateComment", err)
		return
	}
	respondData(c, http.StatusCreated, toCommentResponse(*comment))
}
