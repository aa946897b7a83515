package utils

import (
	"log"
	"strconv"
	"time"

	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
	"lms/progress"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[PROGRESS-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartProgressScheduler runs the nightly enrollment status reconciliation
func StartProgressScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc(config.AppConfig.ReconcileCron, ReconcileEnrollmentStatuses); err != nil {
		// reconciliation is best-effort, a bad expression must not take the server down
		logScheduler("Invalid RECONCILE_CRON " + strconv.Quote(config.AppConfig.ReconcileCron) + ", reconciliation disabled: " + err.Error())
		return c
	}

	c.Start()
	logScheduler("Progress reconciliation scheduled: " + config.AppConfig.ReconcileCron)
	return c
}

// ReconcileEnrollmentStatuses recomputes enrollment statuses from the progress
// rows. Progress rows are the source of truth; a status that lagged behind a
// completion (for example when a webhook consumer read between the two writes)
// self-corrects here. COMPLETED is never downgraded and PAUSED is left alone.
func ReconcileEnrollmentStatuses() {
	db := database.Database.Db
	store := progress.NewGormStore(db)

	var enrollments []courseModels.Enrollment
	if err := db.Where("is_deleted = ? AND status IN ?", false,
		[]string{courseModels.StatusNotStarted, courseModels.StatusInProgress}).
		Find(&enrollments).Error; err != nil {
		logScheduler("Error fetching enrollments: " + err.Error())
		return
	}

	reconciled := 0
	for _, enrollment := range enrollments {
		crs, err := store.GetHierarchy(enrollment.CourseID)
		if err != nil {
			continue
		}
		rows, err := store.GetProgress(enrollment.UserID, enrollment.CourseID)
		if err != nil {
			continue
		}

		derived := progress.DeriveStatus(progress.Aggregate(crs, rows))
		if derived == enrollment.Status {
			continue
		}
		if err := store.SetStatus(enrollment.UserID, enrollment.CourseID, derived); err != nil {
			logScheduler("Error updating enrollment status: " + err.Error())
			continue
		}
		reconciled++
	}

	if reconciled > 0 {
		logScheduler("Reconciled " + strconv.Itoa(reconciled) + " enrollment statuses")
	}
}
