package models

import (
	"strings"
	"time"
)

type Customer struct {
	ID          int       `gorm:"primary_key" json:"id"`
	CompanyName string    `gorm:"size:200;not null;index" json:"company_name"`
	ContactName string    `gorm:"size:100;not null" json:"contact_name"`
	Address     *string   `gorm:"size:500" json:"address"`
	Phone       *string   `gorm:"size:30" json:"phone"`
	Email       *string   `gorm:"size:255" json:"email"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCustomer struct {
	CompanyName string  `json:"company_name" binding:"required,min=1,max=200"`
	ContactName string  `json:"contact_name" binding:"required,min=1,max=100"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	Phone       *string `json:"phone" binding:"omitempty,max=30"`
	Email       *string `json:"email" binding:"omitempty,email"`
}

type CustomerSortField string

const (
	CustomerSortCompanyName CustomerSortField = "company_name"
	CustomerSortContactName CustomerSortField = "contact_name"
)

// ParseCustomerSortField falls back to company_name for unknown fields.
func ParseCustomerSortField(s string) CustomerSortField {
	switch CustomerSortField(strings.TrimSpace(s)) {
	case CustomerSortContactName:
		return CustomerSortContactName
	default:
		return CustomerSortCompanyName
	}
}

type CustomerFilter struct {
	CompanyName *string
	ContactName *string
	SortBy      CustomerSortField
	Order       SortOrder
	Pagination
}
