package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Romain-GUILLEMOT/PlumyrBack/config"
	"github.com/disposable/disposable"
	"gopkg.in/gomail.v2"
)

type Mailer struct {
	host string
	port int
	user string
	pass string
}

// NewMailer ne se connecte pas : des identifiants SMTP absents ne doivent
// pas empêcher le démarrage, l'envoi échouera au moment où on en a besoin.
func NewMailer(cfg *config.Config) *Mailer {
	num, err := strconv.Atoi(cfg.SmtpPort)
	if err != nil {
		Warn("Invalid SMTP port, mail disabled", "port", cfg.SmtpPort)
		num = 0
	}
	if cfg.SmtpHost == "" || cfg.SmtpUser == "" {
		Warn("SMTP credentials missing, mail will fail on first send")
	}
	return &Mailer{host: cfg.SmtpHost, port: num, user: cfg.SmtpUser, pass: cfg.SmtpPass}
}

// Ping vérifie la connexion SMTP, utilisé seulement en mode debug.
func (m *Mailer) Ping() error {
	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	s, err := d.Dial()
	if err != nil {
		return err
	}
	_ = s.Close()
	Success("Mailer connection OK")
	return nil
}

func (m *Mailer) Send(to string, subject string, content string) error {
	if m.host == "" || m.user == "" {
		return errors.New("SMTP non configuré")
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.user)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", content)
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("Message-ID", fmt.Sprintf("<%d@%s>", time.Now().UnixNano(), "plumyr.romain-guillemot.dev"))

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)

	if err := d.DialAndSend(msg); err != nil {
		Error("Failed to send htmlemail", "err", err)
		return err
	}

	Info("📧 Email sent", "to", to, "subject", subject)
	return nil
}

func CheckEmailDomain(email string) error {
	if strings.Contains(email, "+") {
		return errors.New("Les adresses email avec alias (symbole '+') ne sont pas autorisées.")
	}

	atIndex := strings.LastIndex(email, "@")
	if atIndex == -1 || atIndex == len(email)-1 {
		return errors.New("L'adresse email est invalide : caractère '@' manquant ou mal placé.")
	}

	domain := strings.ToLower(email[atIndex+1:])
	if disposable.Domain(domain) {
		return errors.New("Les adresses email jetables ne sont pas autorisées.")
	}
	return nil
}
