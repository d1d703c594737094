package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/hs2213/proelection/internal/cache"
	"github.com/hs2213/proelection/internal/domain"
	"github.com/hs2213/proelection/internal/mailer"
	"github.com/hs2213/proelection/internal/notify"
	"github.com/hs2213/proelection/internal/repo/postgres"
	"github.com/hs2213/proelection/internal/validate"
	"github.com/hs2213/proelection/pkg/events"
	"github.com/hs2213/proelection/pkg/logger"
)

// ElectionService is the single authority for election lifecycle rules,
// access-code issuance and redemption, vote admission and result
// tallying. It holds no state of its own; every operation works against
// the stores.
type ElectionService interface {
	CreateElection(ctx context.Context, election *domain.Election) (*domain.Election, error)
	UpdateElection(ctx context.Context, election *domain.Election) error
	GetElectionByID(ctx context.Context, id uuid.UUID) (*domain.Election, error)
	GetAllElections(ctx context.Context) ([]domain.Election, error)
	GetElectionsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Election, error)
	GetElectionCodeByID(ctx context.Context, id uuid.UUID) (*domain.ElectionCode, error)
	GetElectionCodeForUser(ctx context.Context, electionID, userID uuid.UUID) (*domain.ElectionCode, error)
	Vote(ctx context.Context, vote *domain.Vote) error
	MarkElectionCodeUsed(ctx context.Context, code *domain.ElectionCode) error
	CheckIfUserVoted(ctx context.Context, electionID, userID uuid.UUID) (bool, error)
	CalculateResults(ctx context.Context, electionID uuid.UUID) ([]domain.CandidateResult, error)
}

type electionService struct {
	electionRepo postgres.ElectionRepo
	codeRepo     postgres.ElectionCodeRepo
	voteRepo     postgres.VoteRepo
	userRepo     postgres.UserRepo
	notifier     notify.Notifier
	bus          events.Publisher
	results      cache.ResultsCache
	mail         mailer.Service

	now func() time.Time
}

func NewElectionService(
	electionRepo postgres.ElectionRepo,
	codeRepo postgres.ElectionCodeRepo,
	voteRepo postgres.VoteRepo,
	userRepo postgres.UserRepo,
	notifier notify.Notifier,
	bus events.Publisher,
	results cache.ResultsCache,
	mail mailer.Service,
) ElectionService {
	return &electionService{
		electionRepo: electionRepo,
		codeRepo:     codeRepo,
		voteRepo:     voteRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		bus:          bus,
		results:      results,
		mail:         mail,
		now:          time.Now,
	}
}

func (s *electionService) CreateElection(ctx context.Context, election *domain.Election) (*domain.Election, error) {
	if err := validate.Check(validate.Election(election)); err != nil {
		return nil, err
	}

	created, err := s.electionRepo.Create(ctx, election)
	if err != nil {
		return nil, fmt.Errorf("failed to create election: %w", err)
	}

	s.publish(ctx, events.ElectionCreated, events.ElectionCreatedEvent{
		ElectionID:   created.ID,
		Name:         created.Name,
		ElectionType: string(created.ElectionType),
		Start:        created.Start,
		End:          created.End,
		CreatedAt:    s.now(),
	})
	s.notifier.Notify(ctx, notify.Notification{Kind: notify.KindSuccess, Text: "Election Created"})

	return created, nil
}

func (s *electionService) UpdateElection(ctx context.Context, election *domain.Election) error {
	if err := validate.Check(validate.Election(election)); err != nil {
		return err
	}

	if err := s.electionRepo.Update(ctx, election); err != nil {
		return fmt.Errorf("failed to update election: %w", err)
	}

	s.publish(ctx, events.ElectionUpdated, events.ElectionCreatedEvent{
		ElectionID:   election.ID,
		Name:         election.Name,
		ElectionType: string(election.ElectionType),
		Start:        election.Start,
		End:          election.End,
		CreatedAt:    s.now(),
	})

	return nil
}

func (s *electionService) GetElectionByID(ctx context.Context, id uuid.UUID) (*domain.Election, error) {
	return s.electionRepo.GetByID(ctx, id)
}

func (s *electionService) GetAllElections(ctx context.Context) ([]domain.Election, error) {
	return s.electionRepo.List(ctx)
}

func (s *electionService) GetElectionsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Election, error) {
	return s.electionRepo.GetByIDs(ctx, ids)
}

// GetElectionCodeByID resolves a redeemable code. A used code is still
// returned so the caller can inspect its status; a code whose election is
// gone or has ended resolves to nil.
func (s *electionService) GetElectionCodeByID(ctx context.Context, id uuid.UUID) (*domain.ElectionCode, error) {
	code, err := s.codeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get election code: %w", err)
	}

	if code == nil {
		s.notifier.Notify(ctx, notify.Notification{Kind: notify.KindError, Text: "Failed to get election from code. Please try again"})
		return nil, nil
	}

	if code.Status == domain.CodeUsed {
		s.notifier.Notify(ctx, notify.Notification{Kind: notify.KindError, Text: "Code has already been used."})
		return code, nil
	}

	election, err := s.electionRepo.GetByID(ctx, code.ElectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get election for code: %w", err)
	}

	if election == nil || election.Ended(s.now()) {
		s.notifier.Notify(ctx, notify.Notification{Kind: notify.KindError, Text: "Election has ended or does not exist."})
		return nil, nil
	}

	return code, nil
}

// GetElectionCodeForUser is a get-or-create: a (election, user) pair only
// ever holds one code, and asking again returns the same one.
func (s *electionService) GetElectionCodeForUser(ctx context.Context, electionID, userID uuid.UUID) (*domain.ElectionCode, error) {
	code, err := s.codeRepo.GetByElectionAndUser(ctx, electionID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up election code: %w", err)
	}
	if code != nil {
		return code, nil
	}

	code = &domain.ElectionCode{
		ID:         uuid.New(),
		ElectionID: electionID,
		UserID:     userID,
		Status:     domain.CodeNew,
	}

	if err := validate.Check(validate.ElectionCode(code)); err != nil {
		return nil, err
	}

	created, err := s.codeRepo.Create(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to create election code: %w", err)
	}

	s.publish(ctx, events.CodeIssued, events.CodeIssuedEvent{
		CodeID:     created.ID,
		ElectionID: created.ElectionID,
		UserID:     created.UserID,
		IssuedAt:   s.now(),
	})
	s.emailCode(ctx, created)

	return created, nil
}

// emailCode delivers a freshly issued code to its voter, best effort.
func (s *electionService) emailCode(ctx context.Context, code *domain.ElectionCode) {
	user, err := s.userRepo.GetByID(ctx, code.UserID)
	if err != nil || user == nil {
		logger.WarnContext(ctx, "Failed to load voter for code email", "error", err, "user_id", code.UserID)
		return
	}

	election, err := s.electionRepo.GetByID(ctx, code.ElectionID)
	if err != nil || election == nil {
		logger.WarnContext(ctx, "Failed to load election for code email", "error", err, "election_id", code.ElectionID)
		return
	}

	if err := s.mail.SendElectionCode(user.Email, user.Name, election.Name, code.ID.String()); err != nil {
		logger.WarnContext(ctx, "Failed to send election code email", "error", err, "user_id", user.ID)
	}
}

// Vote admits a ballot to the ledger. The one-vote-per-election invariant
// is enforced here, not left to the caller: the insert is conditional and
// a duplicate surfaces as domain.ErrAlreadyVoted.
func (s *electionService) Vote(ctx context.Context, vote *domain.Vote) error {
	now := s.now()
	if vote.Time.IsZero() {
		vote.Time = now
	}

	if err := validate.Check(validate.Vote(vote, now)); err != nil {
		return err
	}

	if err := s.voteRepo.Create(ctx, vote); err != nil {
		if err == domain.ErrAlreadyVoted {
			return err
		}
		return fmt.Errorf("failed to store vote: %w", err)
	}

	s.publish(ctx, events.VoteCast, events.VoteCastEvent{
		VoteID:     vote.ID,
		ElectionID: vote.ElectionID,
		CastAt:     vote.Time,
	})
	s.notifier.Notify(ctx, notify.Notification{Kind: notify.KindSuccess, Text: "Vote Sent"})

	return nil
}

// MarkElectionCodeUsed is idempotent: marking an already used code again
// leaves it used.
func (s *electionService) MarkElectionCodeUsed(ctx context.Context, code *domain.ElectionCode) error {
	code.Status = domain.CodeUsed

	if err := s.codeRepo.Update(ctx, code); err != nil {
		return fmt.Errorf("failed to mark election code as used: %w", err)
	}

	s.publish(ctx, events.CodeUsed, events.CodeUsedEvent{
		CodeID:     code.ID,
		ElectionID: code.ElectionID,
		UsedAt:     s.now(),
	})
	s.notifier.Notify(ctx, notify.Notification{Kind: notify.KindSuccess, Text: "Election Code Marked as Used"})

	return nil
}

func (s *electionService) CheckIfUserVoted(ctx context.Context, electionID, userID uuid.UUID) (bool, error) {
	return s.voteRepo.HasUserVoted(ctx, userID, electionID)
}

// CalculateResults tallies an election: every candidate standing in it,
// with their vote count, ordered most votes first. Ties keep the order
// candidates were retrieved in. Returns nil for an unknown election.
func (s *electionService) CalculateResults(ctx context.Context, electionID uuid.UUID) ([]domain.CandidateResult, error) {
	election, err := s.electionRepo.GetByID(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get election: %w", err)
	}
	if election == nil {
		return nil, nil
	}

	// A closed election's tally never changes, so it can be served from
	// the cache.
	ended := election.Ended(s.now())
	if ended {
		if cached, ok := s.results.Get(ctx, electionID); ok {
			return cached, nil
		}
	}

	candidates, err := s.userRepo.GetCandidatesOfElection(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidates: %w", err)
	}

	results := make([]domain.CandidateResult, 0, len(candidates))
	for i := range candidates {
		count, err := s.voteRepo.CountForCandidate(ctx, candidates[i].ID, electionID)
		if err != nil {
			return nil, fmt.Errorf("failed to count votes: %w", err)
		}
		results = append(results, domain.CandidateResult{
			Candidate: candidates[i].ToUserInfo(),
			Votes:     count,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Votes > results[j].Votes
	})

	if ended {
		s.results.Set(ctx, electionID, results)
	}

	return results, nil
}

func (s *electionService) publish(ctx context.Context, subject string, event interface{}) {
	if err := s.bus.Publish(ctx, subject, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish event", "error", err, "subject", subject)
	}
}
