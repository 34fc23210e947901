package models

import (
	"strings"
	"time"
)

type DailyReport struct {
	ID            int           `gorm:"primary_key" json:"id"`
	SalespersonId int           `gorm:"not null;uniqueIndex:uq_salesperson_date,priority:1" json:"salesperson_id"`
	ReportDate    time.Time     `gorm:"type:date;not null;uniqueIndex:uq_salesperson_date,priority:2;index" json:"report_date"`
	Problem       *string       `gorm:"type:text" json:"problem"`
	Plan          *string       `gorm:"type:text" json:"plan"`
	Status        ReportStatus  `gorm:"type:enum('DRAFT','SUBMITTED','REVIEWED');not null;default:DRAFT;index" json:"status"`
	SubmittedAt   *time.Time    `json:"submitted_at"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
	Salesperson   User          `gorm:"foreignKey:SalespersonId" json:"salesperson"`
	VisitRecords  []VisitRecord `gorm:"foreignKey:DailyReportId" json:"visit_records"`
	Comments      []Comment     `gorm:"foreignKey:DailyReportId" json:"comments"`
}

type NewVisitRecord struct {
	CustomerId   int    `json:"customer_id" binding:"required"`
	VisitContent string `json:"visit_content" binding:"required,min=1,max=1000"`
	VisitedAt    string `json:"visited_at" binding:"required"`
}

// NewDailyReport is the create/update payload. ReportDate and Status are
// checked by the report service so the failure names the field.
type NewDailyReport struct {
	ReportDate   string           `json:"report_date" binding:"required"`
	Problem      *string          `json:"problem" binding:"omitempty,max=2000"`
	Plan         *string          `json:"plan" binding:"omitempty,max=2000"`
	Status       string           `json:"status" binding:"required"`
	VisitRecords []NewVisitRecord `json:"visit_records" binding:"dive"`
}

func (r *DailyReport) IsOwnedBy(userId int) bool {
	return r != nil && r.SalespersonId == userId
}

func (r *DailyReport) IsDraft() bool {
	return r != nil && r.Status == ReportStatusDraft
}

// stampSubmitted sets the submission time once.
func (r *DailyReport) stampSubmitted(now time.Time) {
	if r.SubmittedAt == nil {
		t := now
		r.SubmittedAt = &t
	}
}

// ApplyStatus sets the status and stamps the submission time the first time
// the report lands in SUBMITTED. It reports whether that happened.
func (r *DailyReport) ApplyStatus(status ReportStatus, now time.Time) bool {
	r.Status = status
	if status == ReportStatusSubmitted && r.SubmittedAt == nil {
		r.stampSubmitted(now)
		return true
	}
	return false
}

type ReportSortField string

const (
	ReportSortReportDate  ReportSortField = "report_date"
	ReportSortStatus      ReportSortField = "status"
	ReportSortSubmittedAt ReportSortField = "submitted_at"
)

// ParseReportSortField falls back to report_date for unknown fields.
func ParseReportSortField(s string) ReportSortField {
	switch ReportSortField(strings.TrimSpace(s)) {
	case ReportSortStatus:
		return ReportSortStatus
	case ReportSortSubmittedAt:
		return ReportSortSubmittedAt
	default:
		return ReportSortReportDate
	}
}

type ReportFilter struct {
	SalespersonId *int
	Status        *ReportStatus
	DateFrom      *time.Time
	DateTo        *time.Time
	SortBy        ReportSortField
	Order         SortOrder
	Pagination
}
