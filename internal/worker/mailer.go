package worker

import (
	"fmt"
	"log"
	"net"
	"net/smtp"
	"os"
)

// Mailer sends a single message to a single recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	addr string
	from string
	auth smtp.Auth
}

// NewMailerFromEnv builds an SMTP mailer from SMTP_ADDR, SMTP_FROM and the
// optional SMTP_USER/SMTP_PASSWORD pair. It returns nil when SMTP is not
// configured; the worker then runs in mock mode and only logs sends.
func NewMailerFromEnv() Mailer {
	addr := os.Getenv("SMTP_ADDR")
	from := os.Getenv("SMTP_FROM")

	if addr == "" || from == "" {
		log.Println("SMTP credentials not found. Worker will run in MOCK mode.")
		return nil
	}

	var auth smtp.Auth
	if user := os.Getenv("SMTP_USER"); user != "" {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			host = addr
		}
		auth = smtp.PlainAuth("", user, os.Getenv("SMTP_PASSWORD"), host)
	}

	return &smtpMailer{addr: addr, from: from, auth: auth}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		m.from, to, subject, body)

	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg))
}
