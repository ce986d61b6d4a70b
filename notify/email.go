// Package notify delivers qualifying offers to humans.
package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"flat_scout/config"
	"flat_scout/models"
)

// Notifier delivers a single qualifying offer.
type Notifier interface {
	Notify(ctx context.Context, offer *models.Offer) error
}

// Message is a rendered notification, separated from transport so
// tests can assert on content without an SMTP server.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Sender abstracts the delivery transport.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender delivers over implicit-TLS SMTP (port 465 style).
type SMTPSender struct {
	host string
	port int
	auth smtp.Auth
}

func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPSender{host: cfg.Host, port: cfg.Port, auth: auth}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.host})
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if s.auth != nil {
		if err := client.Auth(s.auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(msg.From); err != nil {
		return err
	}
	for _, rcpt := range msg.To {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(buildMessageData(msg))); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}

// EmailNotifier renders offers into Polish notification emails.
type EmailNotifier struct {
	cfg    config.EmailConfig
	sender Sender
}

func NewEmailNotifier(cfg config.EmailConfig, sender Sender) *EmailNotifier {
	if sender == nil {
		sender = NewSMTPSender(cfg)
	}
	return &EmailNotifier{cfg: cfg, sender: sender}
}

func (n *EmailNotifier) Notify(ctx context.Context, offer *models.Offer) error {
	msg := Message{
		From:    n.cfg.From,
		To:      n.cfg.Recipients,
		Subject: buildSubject(offer),
		Body:    buildBody(offer),
	}
	return n.sender.Send(ctx, msg)
}

func buildSubject(offer *models.Offer) string {
	return fmt.Sprintf("Nowa oferta za %d zl: %s", offer.Price, offer.Title)
}

func buildBody(offer *models.Offer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tytuł: %s\n", offer.Title)
	fmt.Fprintf(&b, "Najem: %d\n", offer.Price)
	fmt.Fprintf(&b, "Czynsz: %s\n", formatOptionalInt(offer.Rent))
	fmt.Fprintf(&b, "Łącznie: %d\n", offer.TotalCost())
	fmt.Fprintf(&b, "Średnia odległość: %s\n", formatOptionalFloat(offer.Distance))
	fmt.Fprintf(&b, "\nLink: %s\n", offer.Link)
	fmt.Fprintf(&b, "\nOpis:\n%s", offer.Description)
	return b.String()
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return "nieznany"
	}
	return fmt.Sprintf("%d", *v)
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return "nieznana"
	}
	return fmt.Sprintf("%.2f km", *v)
}

func buildMessageData(msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(msg.Body)
	return b.String()
}
