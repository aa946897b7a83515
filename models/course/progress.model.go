package course

import (
	"time"

	"gorm.io/gorm"
)

// LessonProgress records a user's completion of a single lesson. At most one row
// exists per (user, lesson); re-completing a lesson overwrites the existing row.
type LessonProgress struct {
	gorm.Model
	UserID           uint      `json:"user_id" gorm:"uniqueIndex:idx_progress_user_lesson;not null"`
	LessonID         uint      `json:"lesson_id" gorm:"uniqueIndex:idx_progress_user_lesson;not null"`
	CompletedAt      time.Time `json:"completed_at"`
	Score            *int      `json:"score"` // 0-100, NULL when the lesson has no assessment
	TimeSpentSeconds int       `json:"time_spent_seconds" gorm:"default:0"`
	IsDeleted        bool      `json:"is_deleted" gorm:"default:false"`
}
