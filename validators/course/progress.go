package courseValidator

import (
	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CompletionBody is the request body for marking a lesson complete
type CompletionBody struct {
	Score            *int `json:"score" validate:"omitempty,min=0,max=100"`
	TimeSpentSeconds int  `json:"time_spent_seconds" validate:"min=0"`
}

func CompleteLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonID, ok := parseIDParam(c, "lesson_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		reqData := new(CompletionBody)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			if fieldErrs, ok := err.(validator.ValidationErrors); ok {
				for _, fieldErr := range fieldErrs {
					switch fieldErr.Field() {
					case "Score":
						errors["score"] = "Score must be between 0 and 100!"
					case "TimeSpentSeconds":
						errors["time_spent_seconds"] = "Time spent cannot be negative!"
					}
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("lessonID", lessonID)
		c.Locals("validatedCompletion", reqData)
		return c.Next()
	}
}

func GetCourseProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}
