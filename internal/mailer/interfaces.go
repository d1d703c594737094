package mailer

// Service sends transactional mail to voters.
type Service interface {
	SendElectionCode(toEmail, toName, electionName, code string) error
	SendWelcome(toEmail, toName string) error
}
