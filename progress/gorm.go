package progress

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	courseModels "lms/models/course"
)

// gormStore implements Store on top of gorm. Concurrent completions for the
// same (user, lesson) serialize on the unique index backing the upsert.
type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) GetHierarchy(courseID uint) (courseModels.Course, error) {
	var crs courseModels.Course
	err := s.db.
		Where("id = ? AND is_deleted = ?", courseID, false).
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index asc")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index asc")
		}).
		First(&crs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return courseModels.Course{}, ErrCourseNotFound
	}
	if err != nil {
		return courseModels.Course{}, fmt.Errorf("loading course %d: %w", courseID, err)
	}
	return crs, nil
}

func (s *gormStore) FindCourseByLesson(lessonID uint) (courseModels.Course, error) {
	var lesson courseModels.Lesson
	err := s.db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return courseModels.Course{}, ErrLessonNotFound
	}
	if err != nil {
		return courseModels.Course{}, fmt.Errorf("loading lesson %d: %w", lessonID, err)
	}

	var mod courseModels.Module
	err = s.db.Where("id = ? AND is_deleted = ?", lesson.ModuleID, false).First(&mod).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return courseModels.Course{}, ErrLessonNotFound
	}
	if err != nil {
		return courseModels.Course{}, fmt.Errorf("loading module %d: %w", lesson.ModuleID, err)
	}

	return s.GetHierarchy(mod.CourseID)
}

func (s *gormStore) GetProgress(userID, courseID uint) ([]courseModels.LessonProgress, error) {
	var rows []courseModels.LessonProgress
	err := s.db.
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("lesson_progresses.user_id = ? AND modules.course_id = ?", userID, courseID).
		Where("lesson_progresses.is_deleted = ?", false).
		Where("lesson_progresses.completed_at IS NOT NULL").
		Order("lesson_progresses.completed_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("loading progress for user %d in course %d: %w", userID, courseID, err)
	}
	return rows, nil
}

func (s *gormStore) UpsertProgress(userID, lessonID uint, score *int, timeSpentSeconds int) (courseModels.LessonProgress, error) {
	var lesson courseModels.Lesson
	err := s.db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return courseModels.LessonProgress{}, ErrLessonNotFound
	}
	if err != nil {
		return courseModels.LessonProgress{}, fmt.Errorf("loading lesson %d: %w", lessonID, err)
	}

	row := courseModels.LessonProgress{
		UserID:           userID,
		LessonID:         lessonID,
		CompletedAt:      time.Now().UTC(),
		Score:            score,
		TimeSpentSeconds: timeSpentSeconds,
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		// is_deleted is reset so re-completing a lesson revives a soft-deleted row
		DoUpdates: clause.AssignmentColumns([]string{"completed_at", "score", "time_spent_seconds", "is_deleted", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return courseModels.LessonProgress{}, fmt.Errorf("upserting progress for user %d on lesson %d: %w", userID, lessonID, err)
	}
	return row, nil
}

func (s *gormStore) GetEnrollment(userID, courseID uint) (courseModels.Enrollment, error) {
	var enr courseModels.Enrollment
	err := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return courseModels.Enrollment{}, ErrNotEnrolled
	}
	if err != nil {
		return courseModels.Enrollment{}, fmt.Errorf("loading enrollment for user %d in course %d: %w", userID, courseID, err)
	}
	return enr, nil
}

func (s *gormStore) SetStatus(userID, courseID uint, status string) error {
	enr, err := s.GetEnrollment(userID, courseID)
	if err != nil {
		return err
	}
	if enr.Status == status {
		return nil
	}

	updates := map[string]interface{}{"status": status}
	if status == courseModels.StatusCompleted {
		updates["completed_at"] = gorm.Expr("COALESCE(completed_at, ?)", time.Now().UTC())
	}

	q := s.db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false)
	// COMPLETED is terminal: a stale recompute racing a final-lesson
	// completion must not move the status backward. The guard lives in the
	// UPDATE itself so it holds even when the stale reader committed first.
	if status != courseModels.StatusCompleted {
		q = q.Where("status <> ?", courseModels.StatusCompleted)
	}
	if err := q.Updates(updates).Error; err != nil {
		return fmt.Errorf("updating enrollment status for user %d in course %d: %w", userID, courseID, err)
	}
	return nil
}

func (s *gormStore) Transaction(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
