package utils

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// sendMail is swapped out in tests.
var sendMail = smtp.SendMail

type SMTPConfig struct {
	Host     string
	Address  string
	From     string
	Password string
}

func (c SMTPConfig) Enabled() bool {
	return c.Address != "" && c.From != ""
}

type EmailItem struct {
	Name      string
	Size      string
	Quantity  int
	UnitPrice string
	Subtotal  string
}

type EmailData struct {
	Name        string
	Message     string
	OrderNumber string
	Status      string
	Items       []EmailItem
	Total       string
}

// SendEmail renders the named template and delivers it as an HTML mail.
func SendEmail(cfg SMTPConfig, emailTo, emailSubject, templateName string, data EmailData) error {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		cfg.From,
		emailTo,
		emailSubject,
		body.String(),
	)

	var auth smtp.Auth
	if cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.From, cfg.Password, cfg.Host)
	}

	if err := sendMail(cfg.Address, auth, cfg.From, []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
