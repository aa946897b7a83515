package utils

import (
	"fmt"
	"log"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends an HTML email through sendgrid
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendgridKey == "" {
		log.Printf("Sendgrid key not configured, skipping email to %s", toEmail)
		return nil
	}

	from := mail.NewEmail(config.AppConfig.AppName, config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 300 {
		log.Printf("Failed to send email to %s, response code: %d", toEmail, resp.StatusCode)
		return fmt.Errorf("failed to send email, code: %d", resp.StatusCode)
	}
	return nil
}

// SendCompletionEmail congratulates a user on finishing a course
func SendCompletionEmail(toEmail, name, courseTitle string) {
	subject := fmt.Sprintf("Congratulations! You completed %s", courseTitle)
	body := getEmailTemplate(subject, fmt.Sprintf(
		"<p>Hi %s,</p><p>You have completed <b>%s</b>. Your certificate is available in your account.</p>",
		name, courseTitle,
	))
	if err := SendEmail(name, toEmail, subject, body); err != nil {
		log.Printf("Completion email to %s failed: %v", toEmail, err)
	}
}

// getEmailTemplate wraps body content in the standard mail layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
<html>
  <body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
    <div style="max-width: 600px; margin: auto; background: #ffffff; border-radius: 8px; padding: 24px;">
      <h2 style="color: #333333;">%s</h2>
      %s
      <p style="color: #999999; font-size: 12px;">This is an automated message, please do not reply.</p>
    </div>
  </body>
</html>`, title, bodyContent)
}
