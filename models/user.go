package models

import (
	"time"
)

type User struct {
	ID           int       `gorm:"primary_key" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         UserRole  `gorm:"type:enum('SALES','MANAGER');not null" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

/*
caches:
	User:$id
*/

func (u *User) IsManager() bool {
	return u != nil && u.Role == UserRoleManager
}

func (u *User) IsSales() bool {
	return u != nil && u.Role == UserRoleSales
}
