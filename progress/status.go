package progress

import (
	courseModels "lms/models/course"
)

// DeriveStatus returns the enrollment status implied by the progress rows
// alone, ignoring any explicit pause.
func DeriveStatus(view CourseProgressView) string {
	switch {
	case view.TotalLessons > 0 && view.CompletedLessons == view.TotalLessons:
		return courseModels.StatusCompleted
	case view.CompletedLessons > 0:
		return courseModels.StatusInProgress
	default:
		return courseModels.StatusNotStarted
	}
}

// NextStatus applies the completion-event transition rule: a fully completed
// course wins outright, NOT_STARTED moves to IN_PROGRESS, and anything else is
// left alone. A PAUSED enrollment is therefore not silently resumed by a
// completion event, and COMPLETED never moves backward.
func NextStatus(current string, view CourseProgressView) string {
	if view.TotalLessons > 0 && view.CompletedLessons == view.TotalLessons {
		return courseModels.StatusCompleted
	}
	if current == courseModels.StatusCompleted {
		return courseModels.StatusCompleted
	}
	if current == courseModels.StatusNotStarted {
		return courseModels.StatusInProgress
	}
	return current
}
