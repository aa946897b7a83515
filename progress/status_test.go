package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	courseModels "lms/models/course"
)

func view(completed, total int) CourseProgressView {
	return CourseProgressView{CompletedLessons: completed, TotalLessons: total}
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name string
		view CourseProgressView
		want string
	}{
		{name: "no progress", view: view(0, 3), want: courseModels.StatusNotStarted},
		{name: "partial", view: view(1, 3), want: courseModels.StatusInProgress},
		{name: "all complete", view: view(3, 3), want: courseModels.StatusCompleted},
		{name: "empty course stays not started", view: view(0, 0), want: courseModels.StatusNotStarted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.view))
		})
	}
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name    string
		current string
		view    CourseProgressView
		want    string
	}{
		{name: "not started moves to in progress", current: courseModels.StatusNotStarted, view: view(1, 3), want: courseModels.StatusInProgress},
		{name: "in progress stays", current: courseModels.StatusInProgress, view: view(2, 3), want: courseModels.StatusInProgress},
		{name: "full completion wins", current: courseModels.StatusInProgress, view: view(3, 3), want: courseModels.StatusCompleted},
		{name: "paused is not silently resumed", current: courseModels.StatusPaused, view: view(2, 3), want: courseModels.StatusPaused},
		{name: "paused completes on final lesson", current: courseModels.StatusPaused, view: view(3, 3), want: courseModels.StatusCompleted},
		{name: "completed never moves backward", current: courseModels.StatusCompleted, view: view(2, 3), want: courseModels.StatusCompleted},
		{name: "empty course never completes", current: courseModels.StatusNotStarted, view: view(0, 0), want: courseModels.StatusInProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStatus(tt.current, tt.view))
		})
	}
}
