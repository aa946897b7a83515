package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	StatusNotStarted = "NOT_STARTED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusPaused     = "PAUSED"
)

// Enrollment tracks a user's membership in a course. Status is derived from the
// user's lesson progress rows; PAUSED is the one exception, set by an explicit
// user action.
type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	CourseID    uint       `json:"course_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	Status      string     `json:"status" gorm:"default:'NOT_STARTED'"` // NOT_STARTED, IN_PROGRESS, COMPLETED, PAUSED
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false"`

	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}
