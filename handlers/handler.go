package handlers

import (
	"context"

	"bitbucket.org/mmdatafocus/daily_report_backend/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "daily-report-backend"

// Options carries everything the REST handlers depend on.
type Options struct {
	Reports      *services.ReportService
	Comments     *services.CommentService
	Customers    *services.CustomerService
	Users        *services.UserService
	Auth         *services.AuthService
	Tracer       trace.Tracer
	Logger       logrus.FieldLogger
	CookieSecure bool
}

type Handler struct {
	reports      *services.ReportService
	comments     *services.CommentService
	customers    *services.CustomerService
	users        *services.UserService
	auth         *services.AuthService
	tracer       trace.Tracer
	logger       logrus.FieldLogger
	cookieSecure bool
}

func NewHandler(o Options) *Handler {
	tracer := o.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	var logger logrus.FieldLogger = logrus.StandardLogger()
	if o.Logger != nil {
		logger = o.Logger
	}
	return &Handler{
		reports:      o.Reports,
		comments:     o.Comments,
		customers:    o.Customers,
		users:        o.Users,
		auth:         o.Auth,
		tracer:       tracer,
		logger:       logger,
		cookieSecure: o.CookieSecure,
	}
}

func (h *Handler) startSpan(c *gin.Context, name string) (context.Context, trace.Span) {
	return h.tracer.Start(c.Request.Context(), name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
