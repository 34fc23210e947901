package models

import "time"

type VisitRecord struct {
	ID            int       `gorm:"primary_key" json:"id"`
	DailyReportId int       `gorm:"not null;index;uniqueIndex:uq_report_visit_order,priority:1" json:"daily_report_id"`
	CustomerId    int       `gorm:"not null;index" json:"customer_id"`
	VisitContent  string    `gorm:"type:text;not null" json:"visit_content"`
	VisitedAt     time.Time `gorm:"type:datetime;not null" json:"visited_at"` // only hour and minute are meaningful
	VisitOrder    int       `gorm:"not null;uniqueIndex:uq_report_visit_order,priority:2" json:"visit_order"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Customer      Customer  `gorm:"foreignKey:CustomerId" json:"customer"`
}
