package mailer

import (
	"fmt"
	"html"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendEscalation(toEmail string, esc Escalation) error
	SendEscalationReceipt(esc Escalation) error
}

// Escalation is a chat handed over to the support team.
type Escalation struct {
	TicketId   string
	Name       string
	Email      string
	Message    string
	Transcript []TranscriptLine
}

type TranscriptLine struct {
	Sender string
	Text   string
	At     time.Time
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) send(toEmail, replyTo, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	if replyTo != "" {
		m.SetHeader("Reply-To", replyTo)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send %q to %s: %w", subject, toEmail, err)
	}
	return nil
}

// SendEscalation delivers the transcript to the support inbox; replies go to the customer.
func (s *emailService) SendEscalation(toEmail string, esc Escalation) error {
	subject := fmt.Sprintf("[Chat %s] %s needs help", shortTicket(esc.TicketId), esc.Name)
	return s.send(toEmail, esc.Email, subject, EscalationBody(esc))
}

func (s *emailService) SendEscalationReceipt(esc Escalation) error {
	return s.send(esc.Email, "", "We've received your message", ReceiptBody(esc))
}

func EscalationBody(esc Escalation) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
	<h2>Chat escalation %s</h2>
	<p><strong>%s</strong> &lt;%s&gt;</p>
`, html.EscapeString(esc.TicketId), html.EscapeString(esc.Name), html.EscapeString(esc.Email))

	if esc.Message != "" {
		fmt.Fprintf(&b, "\t<blockquote>%s</blockquote>\n", html.EscapeString(esc.Message))
	}

	b.WriteString("\t<table style=\"border-collapse: collapse;\">\n")
	for _, line := range esc.Transcript {
		fmt.Fprintf(&b, "\t\t<tr><td style=\"padding: 4px 8px; color: #888;\">%s</td><td style=\"padding: 4px 8px;\"><strong>%s</strong></td><td style=\"padding: 4px 8px; white-space: pre-wrap;\">%s</td></tr>\n",
			line.At.Format("15:04:05"), html.EscapeString(line.Sender), html.EscapeString(line.Text))
	}
	b.WriteString("\t</table>\n</div>")
	return b.String()
}

func ReceiptBody(esc Escalation) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s,</h2>
			<p>Thanks for reaching out to Aurora Linen. Our team has your chat and will reply within one working day.</p>
			<p>Your reference: <strong>%s</strong></p>
		</div>
	`, html.EscapeString(esc.Name), html.EscapeString(shortTicket(esc.TicketId)))
}

func shortTicket(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}
