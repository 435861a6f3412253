package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/rohitpatel0011/course-platform/config"
)

// SendEmail sends an HTML email through the configured SMTP account. When no
// sender is configured the send is skipped, local setups rarely have one.
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" {
		log.Printf("Email sender not configured, skipping email %q to %v", subject, to)
		return nil
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Course Platform <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A1A2E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A2E; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #4ADE80; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				%s
			</div>
			<div class="footer">
				Course Platform &middot; This is an automated message, please do not reply.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendWelcomeEmail greets a freshly registered user
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your account has been created. Browse the catalog, enroll in a course and start learning.</p>`, name)

	if err := SendEmail([]string{email}, "Welcome to Course Platform", getEmailTemplate("Welcome", body)); err != nil {
		log.Printf("Failed to send welcome email to %s: %v", email, err)
	}
}

// SendCertificateEmail notifies a student that their certificate was issued
func SendCertificateEmail(email, name, courseTitle, certificateNumber string) {
	body := fmt.Sprintf(`
		<h2>Congratulations, %s!</h2>
		<p>You have completed <strong>%s</strong>.</p>
		<div class="info-box">Certificate number: <strong>%s</strong></div>`, name, courseTitle, certificateNumber)

	if err := SendEmail([]string{email}, "Your course certificate", getEmailTemplate("Certificate Issued", body)); err != nil {
		log.Printf("Failed to send certificate email to %s: %v", email, err)
	}
}
