package handlers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"github.com/gin-gonic/gin"
)

// customer routes need a caller of either role

func (h *Handler) ListCustomers(c *gin.Context) {
	if _, err := requireCaller(c); err != nil {
		h.respondError(c, "ListCustomers", err)
		return
	}
	filter, err := parseCustomerFilter(c)
	if err != nil {
		h.respondError(c, "ListCustomers", err)
		return
	}

	ctx, span := h.startSpan(c, "CustomerService.List")
	customers, total, err := h.customers.List(ctx, filter)
	endSpan(span, err)
	if err != nil {
		h.respondError(c, "ListCustomers", err)
		return
	}
	respondList(c, customers, filter.Pagination, total)
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	if _, err := requireCaller(c); err != nil {
		h.respondError(c, "CreateCustomer", err)
		return
	}
	var input models.NewCustomer
	if err := bindJSON(c, &input); err != nil {
		h.respondError(c, "CreateCustomer", err)
		return
	}

	ctx, span := h.startSpan(c, "CustomerService.Create")
	customer, err := h.customers.Create(ctx, &input)
	endSpan(span, err)
	if err != nil {
		h.respondError(c, "CreateCustomer", err)
		return
	}
	respondData(c, http.StatusCreated, customer)
}

func (h *Handler) GetCustomer(c *gin.Context) {
	if _, err := requireCaller(c); err != nil {
		h.respondError(c, "GetCustomer", err)
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, "GetCustomer", err)
		return
	}

	ctx, span := h.startSpan(c, "CustomerService.GetDetail")
	customer, err := h.customers.GetDetail(ctx, id)
	endSpan(span, err)
	if err != nil {
		h.respondError(c, "GetCustomer", err)
		return
	}
	respondData(c, http.StatusOK, customer)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	if _, err := requireCaller(c); err != nil {
		h.respondError(c, "UpdateCustomer", err)
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, "UpdateCustomer", err)
		return
	}
	var input models.NewCustomer
	if err := bindJSON(c, &input); err != nil {
		h.respondError(c, "UpdateCustomer", err)
		return
	}

	ctx, span := h.startSpan(c, "CustomerService.Update")
	customer, err := h.customers.Update(ctx, id, &input)
	endSpan(span, err)
	if err != nil {
		h.respondError(c, "UpdateCustomer", err)
		return
	}
	respondData(c, http.StatusOK, customer)
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	if _, err := requireCaller(c); err != nil {
		h.respondError(c, "DeleteCustomer", err)
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, "DeleteCustomer", err)
		return
	}

	ctx, span := h.startSpan(c, "CustomerService.Delete")
	err = h.customers.Delete(ctx, id)
	endSpan(span, err)
	if err != nil {
		h.respondError(c, "DeleteCustomer", err)
		return
	}
	c.Status(http.StatusNoContent)
}
