package progress

import (
	courseModels "lms/models/course"
)

// placedLesson is a lesson together with its module's order index, needed for
// tie-breaking.
type placedLesson struct {
	lesson      courseModels.Lesson
	moduleOrder int
}

// ResolveCurrentLesson picks the lesson a returning learner should see as
// "current". With no completed lessons it is the first lesson of the first
// module by order index; otherwise it is the most recently completed lesson
// ("continue where you stopped", not "next incomplete lesson"). Ties on the
// completion timestamp go to the highest lesson order index, then the highest
// module order index. Returns nil when the course has no lessons.
func ResolveCurrentLesson(crs courseModels.Course, rows []courseModels.LessonProgress) *courseModels.Lesson {
	lessons := make(map[uint]placedLesson)
	for _, mod := range crs.Modules {
		for _, lesson := range mod.Lessons {
			lessons[lesson.ID] = placedLesson{lesson: lesson, moduleOrder: mod.OrderIndex}
		}
	}

	var best *placedLesson
	var bestRow courseModels.LessonProgress
	for _, row := range rows {
		p, ok := lessons[row.LessonID]
		if !ok {
			continue // stale row from another course
		}
		if best == nil ||
			row.CompletedAt.After(bestRow.CompletedAt) ||
			(row.CompletedAt.Equal(bestRow.CompletedAt) && laterInCourse(p, *best)) {
			b := p
			best = &b
			bestRow = row
		}
	}
	if best != nil {
		lesson := best.lesson
		return &lesson
	}

	return firstLesson(crs)
}

func laterInCourse(a, b placedLesson) bool {
	if a.lesson.OrderIndex != b.lesson.OrderIndex {
		return a.lesson.OrderIndex > b.lesson.OrderIndex
	}
	return a.moduleOrder > b.moduleOrder
}

// firstLesson returns the lesson with the lowest order index in the module
// with the lowest order index, or nil for an empty course.
func firstLesson(crs courseModels.Course) *courseModels.Lesson {
	var firstMod *courseModels.Module
	for i := range crs.Modules {
		if len(crs.Modules[i].Lessons) == 0 {
			continue
		}
		if firstMod == nil || crs.Modules[i].OrderIndex < firstMod.OrderIndex {
			firstMod = &crs.Modules[i]
		}
	}
	if firstMod == nil {
		return nil
	}
	first := firstMod.Lessons[0]
	for _, lesson := range firstMod.Lessons[1:] {
		if lesson.OrderIndex < first.OrderIndex {
			first = lesson
		}
	}
	return &first
}
