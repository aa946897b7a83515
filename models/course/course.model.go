package course

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Title          string `json:"title"`
	Description    string `json:"description"`
	Author         string `json:"author"`
	Version        string `json:"version" gorm:"default:'1.0'"`
	EstimatedHours int    `json:"estimated_hours" gorm:"default:0"`
	ThumbnailURL   string `json:"thumbnail_url"`
	IsPublished    bool   `json:"is_published" gorm:"default:false"`
	IsDeleted      bool   `gorm:"default:false"`

	Modules []Module `json:"modules,omitempty" gorm:"foreignKey:CourseID"`
}
