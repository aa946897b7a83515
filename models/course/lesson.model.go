package course

import "gorm.io/gorm"

// Lesson content types
const (
	ContentTypeVideo = "VIDEO"
	ContentTypeText  = "TEXT"
	ContentTypeAudio = "AUDIO"
)

// Lesson represents a single piece of learning content within a module
type Lesson struct {
	gorm.Model
	ModuleID         uint   `json:"module_id" gorm:"index;not null"`
	Title            string `json:"title"`
	ContentType      string `json:"content_type" gorm:"default:'TEXT'"` // VIDEO, TEXT, AUDIO
	ContentURL       string `json:"content_url"`
	EstimatedMinutes int    `json:"estimated_minutes" gorm:"default:0"`
	OrderIndex       int    `json:"order_index" gorm:"default:0"` // Lesson order in module
	IsDeleted        bool   `gorm:"default:false"`
}
