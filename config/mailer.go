package config

import (
	"crypto/tls"
	"fmt"
	"os"
	"strconv"

	mail "github.com/go-mail/mail/v2"
	"github.com/google/uuid"
)

// OutgoingEmail is a fully composed message: envelope plus both bodies.
// The dispatcher persists the same fields to the audit log before handing
// the message here.
type OutgoingEmail struct {
	FromEmail string
	FromName  string
	ToEmail   string
	ToName    string
	ReplyTo   string
	Subject   string
	BodyHTML  string
	BodyPlain string
}

// Mailer sends composed messages over SMTP with mandatory STARTTLS.
type Mailer struct {
	Host          string
	Port          int
	Username      string
	Password      string
	SenderEmail   string
	SenderName    string
	MessageDomain string
	SkipTLSVerify bool
}

// NewMailerFromEnv builds a Mailer from SMTP_* environment variables.
// Call after the .env file is loaded.
func NewMailerFromEnv() *Mailer {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}

	senderEmail := os.Getenv("SENDER_EMAIL")
	if senderEmail == "" {
		senderEmail = os.Getenv("SMTP_USER")
	}

	return &Mailer{
		Host:          envOr("SMTP_HOST", "smtp.gmail.com"),
		Port:          port,
		Username:      os.Getenv("SMTP_USER"),
		Password:      os.Getenv("SMTP_PASSWORD"),
		SenderEmail:   senderEmail,
		SenderName:    envOr("SENDER_NAME", "OMI Global Productions"),
		MessageDomain: envOr("MESSAGE_ID_DOMAIN", "omiproductions.com"),
		SkipTLSVerify: os.Getenv("SMTP_SKIP_TLS_VERIFY") == "1",
	}
}

// Configured reports whether the mailer has enough settings to dial.
func (m *Mailer) Configured() bool {
	return m.Host != "" && m.Username != "" && m.SenderEmail != ""
}

// Send delivers one message and returns the generated Message-ID header and
// a short transport response. The Message-ID is assigned before dialing so
// a failed send can be retried under the same identifier trail.
func (m *Mailer) Send(msg OutgoingEmail) (messageID string, smtpResponse string, err error) {
	if !m.Configured() {
		return "", "", fmt.Errorf("smtp not configured (SMTP_HOST/SMTP_USER/SENDER_EMAIL)")
	}
	if msg.ToEmail == "" {
		return "", "", fmt.Errorf("missing recipient address")
	}

	messageID = fmt.Sprintf("<%s@%s>", uuid.NewString(), m.MessageDomain)

	out := mail.NewMessage()
	out.SetAddressHeader("From", msg.FromEmail, msg.FromName)
	out.SetAddressHeader("To", msg.ToEmail, msg.ToName)
	if msg.ReplyTo != "" {
		out.SetHeader("Reply-To", msg.ReplyTo)
	}
	out.SetHeader("Subject", msg.Subject)
	out.SetHeader("Message-ID", messageID)

	// Plain text first as the fallback part, HTML as the preferred alternative.
	if msg.BodyPlain != "" {
		out.SetBody("text/plain", msg.BodyPlain)
		out.AddAlternative("text/html", msg.BodyHTML)
	} else {
		out.SetBody("text/html", msg.BodyHTML)
	}

	d := mail.NewDialer(m.Host, m.Port, m.Username, m.Password)

	// Mandatory STARTTLS on port 587 (Gmail/Office365 style submission).
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName:         m.Host,
		InsecureSkipVerify: m.SkipTLSVerify, // dev only: set SMTP_SKIP_TLS_VERIFY=1 to skip cert checks
	}

	if err := d.DialAndSend(out); err != nil {
		return messageID, "", err
	}
	return messageID, "accepted", nil
}
