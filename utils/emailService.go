package utils

import (
	"fmt"
	"log"
	"time"

	"elms/config"

	sendgrid "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends an HTML email through Sendgrid. A missing API key turns
// this into a no-op so local and test environments never send anything.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	cfg := config.AppConfig
	if cfg.SendgridApiKey == "" {
		return nil
	}

	from := mail.NewEmail("E-Learning Platform", cfg.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(cfg.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Sendgrid rejected email to %s, status %d", toEmail, resp.StatusCode)
		return fmt.Errorf("sendgrid status %d", resp.StatusCode)
	}

	return nil
}

// SendAssignmentEmail notifies a user about a newly assigned content
func SendAssignmentEmail(toName, toEmail, contentTitle, notes string, dueDate *time.Time) error {
	body := fmt.Sprintf("<p>Hi %s,</p><p>You have been assigned the learning content <b>%s</b>.</p>", toName, contentTitle)
	if dueDate != nil {
		body += fmt.Sprintf("<p>Due date: %s</p>", dueDate.Format("2006-01-02"))
	}
	if notes != "" {
		body += fmt.Sprintf("<p>Notes: %s</p>", notes)
	}

	return SendEmail(toName, toEmail, "New learning assignment", body)
}
