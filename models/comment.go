package models

import "time"

type Comment struct {
	ID            int           `gorm:"primary_key" json:"id"`
	DailyReportId int           `gorm:"not null;index" json:"daily_report_id"`
	ManagerId     int           `gorm:"not null;index" json:"manager_id"`
	Target        CommentTarget `gorm:"type:enum('PROBLEM','PLAN');not null" json:"target"`
	Content       string        `gorm:"type:text;not null" json:"content"`
	CreatedAt     time.Time     `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
	Manager       User          `gorm:"foreignKey:ManagerId" json:"manager"`
}

// Target is checked by the comment service, not by binding.
type NewComment struct {
	Target  string `json:"target" binding:"required"`
	Content string `json:"content" binding:"required,min=1,max=1000"`
}
