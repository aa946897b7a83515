package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModels "lms/models/course"
)

func TestResolveCurrentLessonEmptyProgress(t *testing.T) {
	lesson := ResolveCurrentLesson(testCourse(), nil)

	require.NotNil(t, lesson)
	assert.Equal(t, uint(101), lesson.ID) // first lesson of first module
}

func TestResolveCurrentLessonEmptyCourse(t *testing.T) {
	crs := courseModels.Course{}
	crs.ID = 2

	assert.Nil(t, ResolveCurrentLesson(crs, nil))
}

func TestResolveCurrentLessonLatestCompletionWins(t *testing.T) {
	rows := []courseModels.LessonProgress{
		row(103, t0.Add(2*time.Minute)),
		row(101, t0.Add(5*time.Minute)), // completed out of order, most recent
		row(102, t0),
	}
	lesson := ResolveCurrentLesson(testCourse(), rows)

	require.NotNil(t, lesson)
	assert.Equal(t, uint(101), lesson.ID)
}

func TestResolveCurrentLessonTimestampTies(t *testing.T) {
	// same timestamp: highest lesson order index within its module wins,
	// then the highest module order index
	t.Run("lesson order breaks tie", func(t *testing.T) {
		rows := []courseModels.LessonProgress{
			row(101, t0),
			row(102, t0),
		}
		lesson := ResolveCurrentLesson(testCourse(), rows)
		require.NotNil(t, lesson)
		assert.Equal(t, uint(102), lesson.ID)
	})

	t.Run("module order breaks remaining tie", func(t *testing.T) {
		// L1 (module order 0) and L3 (module order 1) share order index 0
		rows := []courseModels.LessonProgress{
			row(103, t0),
			row(101, t0),
		}
		lesson := ResolveCurrentLesson(testCourse(), rows)
		require.NotNil(t, lesson)
		assert.Equal(t, uint(103), lesson.ID)
	})
}

func TestResolveCurrentLessonIgnoresForeignRows(t *testing.T) {
	rows := []courseModels.LessonProgress{
		row(999, t0.Add(time.Hour)),
	}
	lesson := ResolveCurrentLesson(testCourse(), rows)

	// only stale cross-course rows: treated as no progress
	require.NotNil(t, lesson)
	assert.Equal(t, uint(101), lesson.ID)
}

func TestResolveCurrentLessonDeterministic(t *testing.T) {
	crs := testCourse()
	rows := []courseModels.LessonProgress{row(102, t0), row(103, t0)}

	first := ResolveCurrentLesson(crs, rows)
	second := ResolveCurrentLesson(crs, rows)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
}
