package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendElectionCode(toEmail, toName, electionName, code string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := fmt.Sprintf("Your in-person voting code for %s", electionName)
	text := fmt.Sprintf("Hi %s,\n\nYour one-time voting code for %s is: %s\n\nPresent this code at the polling station. It can be used exactly once.", toName, electionName, code)
	html := fmt.Sprintf(`
		<h2>In-Person Voting Code</h2>
		<p>Hi %s,</p>
		<p>Your one-time voting code for <strong>%s</strong> is:</p>
		<p><strong style="font-size: 24px;">%s</strong></p>
		<p>Present this code at the polling station. It can be used exactly once.</p>
	`, toName, electionName, code)

	return m.sendEmail(toEmail, toName, subject, text, html)
}

func (m *MailerSendClient) SendWelcome(toEmail, toName string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "Welcome to ProElection"
	text := fmt.Sprintf("Hi %s,\n\nYour ProElection account has been created. You can now log in and take part in the elections you are registered for.", toName)
	html := fmt.Sprintf(`
		<h2>Welcome to ProElection</h2>
		<p>Hi %s,</p>
		<p>Your account has been created. You can now log in and take part in the elections you are registered for.</p>
	`, toName)

	return m.sendEmail(toEmail, toName, subject, text, html)
}

func (m *MailerSendClient) sendEmail(toEmail, toName, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)

	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}

	_, err := m.client.Email.Send(ctx, msg)
	return err
}

var _ Service = (*MailerSendClient)(nil)
