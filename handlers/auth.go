package handlers

import (
	"net/http"
	"time"

	"bitbucket.org/mmdatafocus/daily_report_backend/middlewares"
	"github.com/gin-gonic/gin"
)

const cookiePath = "/api"

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=1"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, "Login", err)
		return
	}

	ctx, span := h.startSpan(c, "AuthService.Login")
	result, err := h.auth.Login(ctx, req.Email, req.Password)
	endSpan(span, err)
	if err != nil {
		h.respondError(c, "Login", err)
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.AccessTokenCookie, result.Token, maxAge, cookiePath, "", h.cookieSecure, true)
	respondData(c, http.StatusOK, loginResponse{User: toUserResponse(result.User)})
}

func (h *Handler) Logout(c *gin.Context) {
	if _, err := requireCaller(c); err != nil {
		h.respondError(c, "Logout", err)
		return
	}

	ctx, span := h.startSpan(c, "AuthService.Logout")
	err := h.auth.Logout(ctx, middlewares.CtxValue(ctx))
	endSpan(span, err)
	if err != nil {
		h.respondError(c, "Logout", err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.AccessTokenCookie, "", -1, cookiePath, "", h.cookieSecure, true)
	c.Status(http.StatusNoContent)
}

func (h *Handler) Me(c *gin.Context) {
	caller, err := requireCaller(c)
	if err != nil {
		h.respondError(c, "Me", err)
		return
	}
	respondData(c, http.StatusOK, toUserResponse(caller))
}
