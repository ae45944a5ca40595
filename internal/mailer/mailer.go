package mailer

import (
	"os"

	"gopkg.in/gomail.v2"
)

// Mailer sends notification email over SMTP.
type Mailer struct {
	from     string
	password string
	host     string
	port     int
}

func NewMailer() *Mailer {
	return &Mailer{
		from:     os.Getenv("SMTP_EMAIL"),
		password: os.Getenv("SMTP_PASSWORD"),
		host:     "smtp.gmail.com",
		port:     587,
	}
}

// SendListingCreatedEmail notifies an owner that their listing went live.
func (m *Mailer) SendListingCreatedEmail(toEmail, listingName string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "New Listing Created")
	msg.SetBody("text/plain", "Your listing '"+listingName+"' has been created successfully.")

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	return d.DialAndSend(msg)
}
