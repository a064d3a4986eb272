// Package mailer delivers the rendered digest over SMTP. It is a
// thin transport wrapper: build the MIME message, send, retry with
// backoff on failure.
package mailer

import (
	"fmt"
	"log"
	"mime"
	"net/smtp"
	"strings"
	"time"
)

// Config holds SMTP delivery settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
}

// Message is one digest email.
type Message struct {
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer sends digest emails.
type Mailer struct {
	cfg  Config
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// New creates a mailer for the given SMTP settings.
func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

// Send delivers the message with retry logic.
func (m *Mailer) Send(msg Message) error {
	if len(m.cfg.To) == 0 {
		return fmt.Errorf("no recipients configured")
	}

	maxRetries := 3

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := m.sendOnce(msg)
		if err == nil {
			log.Printf("Digest sent to %d recipients (try %d)", len(m.cfg.To), attempt)
			return nil
		}

		log.Printf("Error sending digest (try %d/%d): %v", attempt, maxRetries, err)

		if attempt < maxRetries {
			// Exponential backoff: 2^attempt seconds
			waitTime := time.Duration(1<<attempt) * time.Second
			log.Printf("Wait %v before next try...", waitTime)
			time.Sleep(waitTime)
		}
	}

	return fmt.Errorf("can't send digest after %d tries", maxRetries)
}

func (m *Mailer) sendOnce(msg Message) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	body := BuildMIME(m.cfg.From, m.cfg.To, msg)
	if err := m.send(addr, auth, m.cfg.From, m.cfg.To, body); err != nil {
		return fmt.Errorf("SMTP error: %w", err)
	}
	return nil
}

// BuildMIME assembles a multipart/alternative message with text and
// HTML parts.
func BuildMIME(from string, to []string, msg Message) []byte {
	boundary := "digest-boundary-1a2b3c"

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: multipart/alternative; boundary=" + boundary + "\r\n")
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(msg.TextBody)
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(msg.HTMLBody)
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "--\r\n")
	return []byte(b.String())
}

// ParseRecipients splits a comma-separated recipient list.
func ParseRecipients(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
