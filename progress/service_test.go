package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModels "lms/models/course"
)

// fakeStore is an in-memory Store with a deterministic clock: each upsert
// lands one second after the previous one.
type fakeStore struct {
	courses     map[uint]courseModels.Course
	enrollments map[[2]uint]courseModels.Enrollment
	rows        map[[2]uint]courseModels.LessonProgress
	clock       time.Time
}

func newFakeStore(courses ...courseModels.Course) *fakeStore {
	f := &fakeStore{
		courses:     make(map[uint]courseModels.Course),
		enrollments: make(map[[2]uint]courseModels.Enrollment),
		rows:        make(map[[2]uint]courseModels.LessonProgress),
		clock:       t0,
	}
	for _, crs := range courses {
		f.courses[crs.ID] = crs
	}
	return f
}

func (f *fakeStore) enroll(userID, courseID uint, status string) {
	enr := courseModels.Enrollment{UserID: userID, CourseID: courseID, Status: status}
	f.enrollments[[2]uint{userID, courseID}] = enr
}

func (f *fakeStore) GetHierarchy(courseID uint) (courseModels.Course, error) {
	crs, ok := f.courses[courseID]
	if !ok {
		return courseModels.Course{}, ErrCourseNotFound
	}
	return crs, nil
}

func (f *fakeStore) FindCourseByLesson(lessonID uint) (courseModels.Course, error) {
	for _, crs := range f.courses {
		for _, mod := range crs.Modules {
			for _, lesson := range mod.Lessons {
				if lesson.ID == lessonID {
					return crs, nil
				}
			}
		}
	}
	return courseModels.Course{}, ErrLessonNotFound
}

func (f *fakeStore) GetProgress(userID, courseID uint) ([]courseModels.LessonProgress, error) {
	crs, ok := f.courses[courseID]
	if !ok {
		return nil, ErrCourseNotFound
	}
	owned := make(map[uint]bool)
	for _, mod := range crs.Modules {
		for _, lesson := range mod.Lessons {
			owned[lesson.ID] = true
		}
	}

	var rows []courseModels.LessonProgress
	for key, row := range f.rows {
		if key[0] == userID && owned[key[1]] {
			rows = append(rows, row)
		}
	}
	// completed_at ascending, as the repository contract requires
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			if rows[j].CompletedAt.Before(rows[i].CompletedAt) {
				rows[i], rows[j] = rows[j], rows[i]
			}
		}
	}
	return rows, nil
}

func (f *fakeStore) UpsertProgress(userID, lessonID uint, score *int, timeSpentSeconds int) (courseModels.LessonProgress, error) {
	if _, err := f.FindCourseByLesson(lessonID); err != nil {
		return courseModels.LessonProgress{}, err
	}
	f.clock = f.clock.Add(time.Second)
	row := courseModels.LessonProgress{
		UserID:           userID,
		LessonID:         lessonID,
		CompletedAt:      f.clock,
		Score:            score,
		TimeSpentSeconds: timeSpentSeconds,
	}
	f.rows[[2]uint{userID, lessonID}] = row
	return row, nil
}

func (f *fakeStore) GetEnrollment(userID, courseID uint) (courseModels.Enrollment, error) {
	enr, ok := f.enrollments[[2]uint{userID, courseID}]
	if !ok {
		return courseModels.Enrollment{}, ErrNotEnrolled
	}
	return enr, nil
}

func (f *fakeStore) SetStatus(userID, courseID uint, status string) error {
	enr, err := f.GetEnrollment(userID, courseID)
	if err != nil {
		return err
	}
	if enr.Status == status {
		return nil
	}
	// Mirrors the store guard: COMPLETED is terminal.
	if enr.Status == courseModels.StatusCompleted && status != courseModels.StatusCompleted {
		return nil
	}
	enr.Status = status
	if status == courseModels.StatusCompleted && enr.CompletedAt == nil {
		now := f.clock
		enr.CompletedAt = &now
	}
	f.enrollments[[2]uint{userID, courseID}] = enr
	return nil
}

func (f *fakeStore) Transaction(fn func(tx Store) error) error {
	return fn(f)
}

const testUser = uint(7)

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore(testCourse())
	store.enroll(testUser, 1, courseModels.StatusNotStarted)
	return NewService(store), store
}

func TestCompleteLessonStatusWalk(t *testing.T) {
	// two-lesson course: NOT_STARTED -> IN_PROGRESS -> COMPLETED
	crs := courseModels.Course{}
	crs.ID = 5
	mod := courseModels.Module{OrderIndex: 0}
	mod.ID = 50
	a := courseModels.Lesson{ModuleID: 50, OrderIndex: 0}
	a.ID = 501
	b := courseModels.Lesson{ModuleID: 50, OrderIndex: 1}
	b.ID = 502
	mod.Lessons = []courseModels.Lesson{a, b}
	crs.Modules = []courseModels.Module{mod}

	store := newFakeStore(crs)
	store.enroll(testUser, 5, courseModels.StatusNotStarted)
	svc := NewService(store)

	first, err := svc.CompleteLesson(testUser, 501, nil, 60)
	require.NoError(t, err)
	assert.Equal(t, courseModels.StatusInProgress, first.Enrollment.Status)
	assert.False(t, first.CourseCompleted)

	second, err := svc.CompleteLesson(testUser, 502, nil, 60)
	require.NoError(t, err)
	assert.Equal(t, courseModels.StatusCompleted, second.Enrollment.Status)
	assert.True(t, second.CourseCompleted)
	assert.NotNil(t, second.Enrollment.CompletedAt)
}

func TestCompleteLessonOutOfOrder(t *testing.T) {
	svc, _ := newTestService()

	afterL2, err := svc.CompleteLesson(testUser, 102, nil, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, afterL2.Progress.CompletedLessons)
	assert.Equal(t, 3, afterL2.Progress.TotalLessons)
	assert.Equal(t, courseModels.StatusInProgress, afterL2.Enrollment.Status)
	require.NotNil(t, afterL2.CurrentLesson)
	assert.Equal(t, uint(102), afterL2.CurrentLesson.ID)

	afterL1, err := svc.CompleteLesson(testUser, 101, nil, 30)
	require.NoError(t, err)
	assert.Equal(t, 2, afterL1.Progress.CompletedLessons)
	require.NotNil(t, afterL1.CurrentLesson)
	// resume at last completed, not at the next incomplete lesson
	assert.Equal(t, uint(101), afterL1.CurrentLesson.ID)

	afterL3, err := svc.CompleteLesson(testUser, 103, nil, 30)
	require.NoError(t, err)
	assert.Equal(t, 3, afterL3.Progress.CompletedLessons)
	assert.Equal(t, courseModels.StatusCompleted, afterL3.Enrollment.Status)
	require.NotNil(t, afterL3.CurrentLesson)
	assert.Equal(t, uint(103), afterL3.CurrentLesson.ID)
}

func TestCompleteLessonIdempotent(t *testing.T) {
	svc, store := newTestService()

	score := 80
	first, err := svc.CompleteLesson(testUser, 101, &score, 120)
	require.NoError(t, err)

	again, err := svc.CompleteLesson(testUser, 101, &score, 120)
	require.NoError(t, err)

	assert.Equal(t, first.Progress.CompletedLessons, again.Progress.CompletedLessons)
	assert.Len(t, store.rows, 1)
}

func TestCompleteLessonRecompleteUpdatesRow(t *testing.T) {
	svc, store := newTestService()

	// complete everything
	for _, id := range []uint{101, 102, 103} {
		_, err := svc.CompleteLesson(testUser, id, nil, 60)
		require.NoError(t, err)
	}
	firstRow := store.rows[[2]uint{testUser, 101}]

	newScore := 95
	result, err := svc.CompleteLesson(testUser, 101, &newScore, 300)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Progress.CompletedLessons)
	assert.Equal(t, courseModels.StatusCompleted, result.Enrollment.Status)
	assert.False(t, result.CourseCompleted) // already completed before this event

	updated := store.rows[[2]uint{testUser, 101}]
	require.NotNil(t, updated.Score)
	assert.Equal(t, 95, *updated.Score)
	assert.Equal(t, 300, updated.TimeSpentSeconds)
	assert.True(t, updated.CompletedAt.After(firstRow.CompletedAt))
}

func TestCompleteLessonValidation(t *testing.T) {
	svc, store := newTestService()

	badScore := 101
	_, err := svc.CompleteLesson(testUser, 101, &badScore, 60)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "score")

	_, err = svc.CompleteLesson(testUser, 101, nil, -1)
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "time_spent_seconds")

	// rejected before any write
	assert.Empty(t, store.rows)
}

func TestCompleteLessonUnknownLesson(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CompleteLesson(testUser, 999, nil, 60)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestCompleteLessonNotEnrolled(t *testing.T) {
	store := newFakeStore(testCourse())
	svc := NewService(store)

	_, err := svc.CompleteLesson(testUser, 101, nil, 60)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestCompleteLessonPausedStaysPaused(t *testing.T) {
	svc, store := newTestService()
	store.enroll(testUser, 1, courseModels.StatusPaused)

	result, err := svc.CompleteLesson(testUser, 101, nil, 60)
	require.NoError(t, err)
	assert.Equal(t, courseModels.StatusPaused, result.Enrollment.Status)

	// finishing the course still completes a paused enrollment
	for _, id := range []uint{102, 103} {
		result, err = svc.CompleteLesson(testUser, id, nil, 60)
		require.NoError(t, err)
	}
	assert.Equal(t, courseModels.StatusCompleted, result.Enrollment.Status)
}

func TestGetCourseView(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CompleteLesson(testUser, 102, nil, 30)
	require.NoError(t, err)

	view, err := svc.GetCourseView(testUser, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), view.Course.ID)
	assert.Equal(t, 1, view.Progress.CompletedLessons)
	require.NotNil(t, view.CurrentLesson)
	assert.Equal(t, uint(102), view.CurrentLesson.ID)
}

func TestGetCourseViewErrors(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetCourseView(testUser, 42)
	assert.ErrorIs(t, err, ErrCourseNotFound)

	_, err = svc.GetCourseView(999, 1)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}
