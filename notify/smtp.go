package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

// Mailer sends plain-text mail over implicit TLS (SMTPS).
type Mailer struct {
	host     string
	addr     string
	from     string
	password string
	tls      *tls.Config
}

var _ Sink = (*Mailer)(nil)

func NewMailer(host string, port int, from, password string) *Mailer {
	return &Mailer{
		host:     host,
		addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		from:     from,
		password: password,
		tls:      &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12},
	}
}

func (m *Mailer) NotifyBooking(ctx context.Context, n BookingNotice) error {
	var errs []error
	for _, msg := range bookingMessages(n) {
		if err := m.send(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Mailer) NotifyCancellation(ctx context.Context, n CancellationNotice) error {
	return m.send(ctx, cancellationMessage(n))
}

func (m *Mailer) NotifyFeedback(ctx context.Context, n FeedbackNotice) error {
	return m.send(ctx, feedbackMessage(n))
}

func (m *Mailer) SendOTP(ctx context.Context, n OTPNotice) error {
	return m.send(ctx, otpMessage(n))
}

func (m *Mailer) send(ctx context.Context, msg message) error {
	if msg.to == "" {
		return errors.New("smtp: empty recipient")
	}

	dialer := &tls.Dialer{Config: m.tls}
	conn, err := dialer.DialContext(ctx, "tcp", m.addr)
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", m.addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if err := c.Auth(smtp.PlainAuth("", m.from, m.password, m.host)); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := c.Mail(m.from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(msg.to); err != nil {
		return fmt.Errorf("smtp rcpt %s: %w", msg.to, err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(buildMessage(m.from, msg)); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp data close: %w", err)
	}

	return c.Quit()
}

func buildMessage(from string, msg message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + msg.to + "\r\n")
	b.WriteString("Subject: " + msg.subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.body, "\n", "\r\n"))
	return []byte(b.String())
}
