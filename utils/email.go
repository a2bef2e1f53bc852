package utils

import (
	"log"
	"os"

	"gopkg.in/gomail.v2"
)

// SendEmail delivers a plain-text email through the configured SMTP
// server. Failures are logged, not returned, so callers never block a
// request on the mail server.
func SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_SENDER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		465,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"),
	)

	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return err
	}

	log.Printf("Email successfully sent to %s", to)
	return nil
}
