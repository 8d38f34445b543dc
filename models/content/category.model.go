package content

import "gorm.io/gorm"

// Category groups contents into a tree via ParentID
type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parent_id" gorm:"index"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}
