package domain

import "errors"

var (
	// ErrAlreadyVoted is returned when a second ballot for the same
	// (user, election) pair loses the conditional insert.
	ErrAlreadyVoted = errors.New("user has already voted in this election")

	// ErrEmailTaken is returned when registering with an email that
	// already has an account.
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrVotingClosed is returned when a ballot targets an election whose
	// end has passed.
	ErrVotingClosed = errors.New("election has ended")

	// ErrNotEligible is returned when the voter is not a participant of
	// the election, or is a candidate or admin.
	ErrNotEligible = errors.New("user is not eligible to vote in this election")
)
