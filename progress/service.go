package progress

import (
	courseModels "lms/models/course"
)

type (
	// HierarchyReader loads course trees, modules and lessons ordered by their
	// author-defined order index.
	HierarchyReader interface {
		GetHierarchy(courseID uint) (courseModels.Course, error)
		FindCourseByLesson(lessonID uint) (courseModels.Course, error)
	}

	// ProgressRepository loads and upserts per-user lesson progress rows.
	// GetProgress returns only completed rows, ordered by completion timestamp
	// ascending. UpsertProgress is keyed by (userID, lessonID): an existing row
	// gets its score, time spent and completion timestamp overwritten, never a
	// duplicate.
	ProgressRepository interface {
		GetProgress(userID, courseID uint) ([]courseModels.LessonProgress, error)
		UpsertProgress(userID, lessonID uint, score *int, timeSpentSeconds int) (courseModels.LessonProgress, error)
	}

	// EnrollmentStore loads the per-user, per-course enrollment record and
	// updates its status. SetStatus is idempotent.
	EnrollmentStore interface {
		GetEnrollment(userID, courseID uint) (courseModels.Enrollment, error)
		SetStatus(userID, courseID uint, status string) error
	}

	// Store is the persistence boundary of the progress core. Transaction runs
	// fn against a store whose writes commit or roll back as one unit.
	Store interface {
		HierarchyReader
		ProgressRepository
		EnrollmentStore
		Transaction(fn func(tx Store) error) error
	}

	Service struct {
		store Store
	}
)

func NewService(store Store) *Service {
	return &Service{store: store}
}

// CourseView is the full per-user view of one course: hierarchy, enrollment,
// aggregate metrics and the resumption target.
type CourseView struct {
	Course        courseModels.Course     `json:"course"`
	Enrollment    courseModels.Enrollment `json:"enrollment"`
	Progress      CourseProgressView      `json:"progress"`
	CurrentLesson *courseModels.Lesson    `json:"current_lesson"`
}

// CompletionResult is a CourseView plus whether this completion event finished
// the whole course, so callers can trigger completion side effects exactly once.
type CompletionResult struct {
	CourseView
	CourseCompleted bool `json:"course_completed"`
}

// GetCourseView loads the hierarchy, the user's enrollment and progress rows,
// and derives the aggregate view and current lesson.
func (svc *Service) GetCourseView(userID, courseID uint) (CourseView, error) {
	crs, err := svc.store.GetHierarchy(courseID)
	if err != nil {
		return CourseView{}, err
	}
	enr, err := svc.store.GetEnrollment(userID, courseID)
	if err != nil {
		return CourseView{}, err
	}
	rows, err := svc.store.GetProgress(userID, courseID)
	if err != nil {
		return CourseView{}, err
	}
	return CourseView{
		Course:        crs,
		Enrollment:    enr,
		Progress:      Aggregate(crs, rows),
		CurrentLesson: ResolveCurrentLesson(crs, rows),
	}, nil
}

// CompleteLesson records a lesson completion for the user and propagates it to
// the enrollment status. The progress upsert and the status write run in one
// transaction. Re-completing a lesson is a pure overwrite of the existing row.
func (svc *Service) CompleteLesson(userID, lessonID uint, score *int, timeSpentSeconds int) (CompletionResult, error) {
	if err := validateCompletion(score, timeSpentSeconds); err != nil {
		return CompletionResult{}, err
	}

	crs, err := svc.store.FindCourseByLesson(lessonID)
	if err != nil {
		return CompletionResult{}, err
	}
	enr, err := svc.store.GetEnrollment(userID, crs.ID)
	if err != nil {
		return CompletionResult{}, err
	}

	var result CompletionResult
	err = svc.store.Transaction(func(tx Store) error {
		if _, err := tx.UpsertProgress(userID, lessonID, score, timeSpentSeconds); err != nil {
			return err
		}
		rows, err := tx.GetProgress(userID, crs.ID)
		if err != nil {
			return err
		}
		view := Aggregate(crs, rows)

		next := NextStatus(enr.Status, view)
		if err := tx.SetStatus(userID, crs.ID, next); err != nil {
			return err
		}

		refreshed, err := tx.GetEnrollment(userID, crs.ID)
		if err != nil {
			return err
		}
		result = CompletionResult{
			CourseView: CourseView{
				Course:        crs,
				Enrollment:    refreshed,
				Progress:      view,
				CurrentLesson: ResolveCurrentLesson(crs, rows),
			},
			CourseCompleted: next == courseModels.StatusCompleted && enr.Status != courseModels.StatusCompleted,
		}
		return nil
	})
	if err != nil {
		return CompletionResult{}, err
	}
	return result, nil
}

func validateCompletion(score *int, timeSpentSeconds int) error {
	fields := make(map[string]string)
	if score != nil && (*score < 0 || *score > 100) {
		fields["score"] = "Score must be between 0 and 100!"
	}
	if timeSpentSeconds < 0 {
		fields["time_spent_seconds"] = "Time spent cannot be negative!"
	}
	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}
