package controllers

import (
	"errors"
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/progress"
	"lms/utils"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// respondProgressError maps progress core errors onto the response envelope
func respondProgressError(c *fiber.Ctx, err error) error {
	var vErr *progress.ValidationError
	switch {
	case errors.Is(err, progress.ErrCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	case errors.Is(err, progress.ErrLessonNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	case errors.Is(err, progress.ErrNotEnrolled):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	case errors.As(err, &vErr):
		return middleware.ValidationErrorResponse(c, vErr.Fields)
	default:
		log.Printf("progress error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}

// CompleteLesson marks a lesson complete for the user and returns the
// refreshed progress view
func CompleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	reqData, ok := c.Locals("validatedCompletion").(*courseValidator.CompletionBody)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := progressService().CompleteLesson(userID, uint(lessonID), reqData.Score, reqData.TimeSpentSeconds)
	if err != nil {
		return respondProgressError(c, err)
	}

	// Best-effort integrations; never fail the request on them
	go utils.SendProgressWebhook(utils.ProgressEvent{
		UserID:            userID,
		CourseID:          result.Course.ID,
		LessonID:          uint(lessonID),
		Status:            result.Enrollment.Status,
		DisplayPercentage: result.Progress.DisplayPercentage,
	})

	if result.CourseCompleted {
		if cert, err := issueCertificate(userID, result.Course.ID); err != nil {
			log.Printf("Failed to issue certificate for user %d course %d: %v", userID, result.Course.ID, err)
		} else {
			log.Printf("Issued certificate %s to user %d", cert.CertificateNumber, userID)
		}
		go utils.SendCompletionEmail(user.Email, user.Name, result.Course.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson completed successfully!", fiber.Map{
		"enrollment":     result.Enrollment,
		"progress":       result.Progress,
		"current_lesson": result.CurrentLesson,
	})
}

// GetUserProgress gets the user's progress in a course
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	view, err := progressService().GetCourseView(userID, uint(courseID))
	if err != nil {
		return respondProgressError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":     view.Enrollment,
		"progress":       view.Progress,
		"current_lesson": view.CurrentLesson,
	})
}
