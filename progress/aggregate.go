package progress

import (
	"math"

	courseModels "lms/models/course"
)

// ModuleProgress is the per-module rollup inside a CourseProgressView.
type ModuleProgress struct {
	ModuleID         uint    `json:"module_id"`
	ModuleName       string  `json:"module_name"`
	TotalLessons     int     `json:"total_lessons"`
	CompletedLessons int     `json:"completed_lessons"`
	Progress         float64 `json:"progress"`
	DisplayProgress  int     `json:"display_progress"`
}

// CourseProgressView holds the aggregate completion metrics for one user in one
// course, derived from the course hierarchy and the user's progress rows.
type CourseProgressView struct {
	CourseID             uint             `json:"course_id"`
	TotalLessons         int              `json:"total_lessons"`
	CompletedLessons     int              `json:"completed_lessons"`
	CompletionPercentage float64          `json:"completion_percentage"`
	DisplayPercentage    int              `json:"display_percentage"`
	TotalMinutes         int              `json:"total_minutes"`
	CompletedMinutes     int              `json:"completed_minutes"`
	Modules              []ModuleProgress `json:"modules"`
}

// Aggregate derives completion metrics from a course hierarchy and a user's
// progress rows. Rows pointing at lessons outside the hierarchy (stale
// cross-course rows) are ignored. Pure and deterministic: identical inputs
// always produce identical output.
func Aggregate(crs courseModels.Course, rows []courseModels.LessonProgress) CourseProgressView {
	completed := make(map[uint]bool, len(rows))
	for _, row := range rows {
		completed[row.LessonID] = true
	}

	view := CourseProgressView{
		CourseID: crs.ID,
		Modules:  make([]ModuleProgress, len(crs.Modules)),
	}

	for i, mod := range crs.Modules {
		mp := ModuleProgress{
			ModuleID:     mod.ID,
			ModuleName:   mod.Title,
			TotalLessons: len(mod.Lessons),
		}
		for _, lesson := range mod.Lessons {
			view.TotalMinutes += lesson.EstimatedMinutes
			if completed[lesson.ID] {
				mp.CompletedLessons++
				view.CompletedMinutes += lesson.EstimatedMinutes
			}
		}
		mp.Progress = percentage(mp.CompletedLessons, mp.TotalLessons)
		mp.DisplayProgress = roundHalfUp(mp.Progress)

		view.TotalLessons += mp.TotalLessons
		view.CompletedLessons += mp.CompletedLessons
		view.Modules[i] = mp
	}

	view.CompletionPercentage = percentage(view.CompletedLessons, view.TotalLessons)
	view.DisplayPercentage = roundHalfUp(view.CompletionPercentage)
	return view
}

// percentage returns 0 for an empty total so a course without lessons never
// divides by zero.
func percentage(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

func roundHalfUp(p float64) int {
	return int(math.Floor(p + 0.5))
}
