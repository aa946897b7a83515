package progress

import "errors"

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrLessonNotFound = errors.New("lesson not found")
	ErrNotEnrolled    = errors.New("user is not enrolled in this course")
)

// ValidationError rejects bad completion input before any write happens.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func NewValidationError(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}
