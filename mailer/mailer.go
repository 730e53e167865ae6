package mailer

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"MediConsult/config"
)

var (
	dialer  *gomail.Dialer
	from    string
	enabled bool
)

// Init wires the SMTP dialer. Missing credentials degrade sending to a
// logged no-op rather than a crash.
func Init(cfg *config.Config) {
	from = cfg.SMTPFrom
	if !cfg.SMTPConfigured() {
		log.Warn().Msg("SMTP not configured, outbound mail disabled")
		return
	}
	dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	enabled = true
}

func SendPasswordReset(to string, name string, link string) error {
	subject := "Reset your MediConsult password"
	body := fmt.Sprintf(
		"Hello %s,\n\nWe received a request to reset your password. The link below is valid for one hour:\n\n%s\n\nIf you did not request this, you can ignore this mail.\n",
		name, link,
	)
	return send(to, subject, body)
}

func send(to string, subject string, body string) error {
	if !enabled {
		log.Warn().Str("to", to).Str("subject", subject).Msg("mail skipped, SMTP disabled")
		return nil
	}
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return dialer.DialAndSend(m)
}
