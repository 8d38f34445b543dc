package models

import "gorm.io/gorm"

// User represents a platform account
type User struct {
	gorm.Model
	Email        string `json:"email" gorm:"unique;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	DisplayName  string `json:"display_name" gorm:"not null"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	Role         string `json:"role" gorm:"default:'USER'"` // USER, ADMIN
	IsActive     bool   `json:"is_active" gorm:"default:true"`
	RefreshToken string `json:"-"` // single active refresh token, overwritten on each login
}
