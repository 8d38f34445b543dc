package learning

import "gorm.io/gorm"

// LearningPath is an ordered collection of contents
type LearningPath struct {
	gorm.Model
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	CreatedBy   uint   `json:"created_by" gorm:"not null"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}

// LearningPathContent is one ordered member of a learning path
type LearningPathContent struct {
	gorm.Model
	PathID     uint `json:"path_id" gorm:"index;not null"`
	ContentID  uint `json:"content_id" gorm:"index;not null"`
	OrderIndex int  `json:"order_index" gorm:"default:0"`
	IsRequired bool `json:"is_required" gorm:"default:true"`
}
