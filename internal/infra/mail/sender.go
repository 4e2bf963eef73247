package mail

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "outreach@leadflow.dev"
	}
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendOutreach sends the first-touch email to a freshly qualified lead.
func (s *EmailSender) SendOutreach(to, name, orgName string) error {
	data := OutreachEmailData{
		Name:     name,
		OrgName:  orgName,
		Sender:   os.Getenv("MAIL_SENDER_NAME"),
		Calendly: os.Getenv("CALENDLY_URL"),
	}

	tmplPath := filepath.Join("templates", "outreach.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("failed to read outreach template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render outreach template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Quick question about %s", orgName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send outreach email: %w", err)
	}
	return nil
}

// SendReport emails the weekly pipeline report as plain text markdown.
func (s *EmailSender) SendReport(to, subject, markdown string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", markdown)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}
	return nil
}
