package handlers

import (
	"fmt"
	"net/http"

	"bitbucket.org/mmdatafocus/daily_report_backend/middlewares"
	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterOptions struct {
	Repositories   models.Repositories
	AllowedOrigins []string
	// extra middlewares installed after CORS, e.g. the rate limiter
	Middlewares []gin.HandlerFunc
}

func NewRouter(h *Handler, o RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.CorrelationMiddleware())
	r.Use(middlewares.RequestLogger(h.logger))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		h.respondError(c, "Recovery", fmt.Errorf("panic: %v", recovered))
	}))

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = o.AllowedOrigins
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization", middlewares.CorrelationIdHeader)
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition", middlewares.CorrelationIdHeader)
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.Use(o.Middlewares...)
	r.Use(middlewares.AuthMiddleware(h.auth, h.logger))
	r.Use(middlewares.LoaderMiddleware(o.Repositories))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)

		reports := api.Group("/reports")
		reports.GET("", h.ListReports)
		reports.POST("", h.CreateReport)
		reports.GET("/export", h.ExportReports)
		reports.GET("/:id", h.GetReport)
		reports.PUT("/:id", h.UpdateReport)
		reports.DELETE("/:id", h.DeleteReport)
		reports.POST("/:id/submit", h.SubmitReport)
		reports.POST("/:id/review", h.ReviewReport)
		reports.POST("/:id/comments", h.CreateComment)

		customers := api.Group("/customers")
		customers.GET("", h.ListCustomers)
		customers.POST("", h.CreateCustomer)
		customers.GET("/:id", h.GetCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)

		api.GET("/users", h.ListUsers)
	}

	r.NoRoute(CustomNotFoundHandler)
	return r
}
