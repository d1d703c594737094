package mailer

import (
	"github.com/hs2213/proelection/pkg/logger"
)

// DevMailer writes mail to the structured log instead of sending it.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendElectionCode(toEmail, toName, electionName, code string) error {
	logger.Info("[DEV MAIL] Election Code",
		"to", toEmail,
		"name", toName,
		"election", electionName,
		"code", code,
	)
	return nil
}

func (d *DevMailer) SendWelcome(toEmail, toName string) error {
	logger.Info("[DEV MAIL] Welcome Email",
		"to", toEmail,
		"name", toName,
	)
	return nil
}

var _ Service = (*DevMailer)(nil)
