package utils

import (
	"log"
	"time"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// ProgressEvent is the payload posted to the configured integration webhook
// after each lesson completion
type ProgressEvent struct {
	UserID            uint   `json:"user_id"`
	CourseID          uint   `json:"course_id"`
	LessonID          uint   `json:"lesson_id"`
	Status            string `json:"status"`
	DisplayPercentage int    `json:"display_percentage"`
}

// SendProgressWebhook posts a progress event to the configured webhook URL.
// Best effort: failures are logged, never surfaced to the caller.
func SendProgressWebhook(event ProgressEvent) {
	if config.AppConfig.ProgressWebhookURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post(config.AppConfig.ProgressWebhookURL)
	if err != nil {
		log.Printf("Failed to send progress webhook: %v", err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("Progress webhook returned status %d: %s", resp.StatusCode(), resp.String())
	}
}
