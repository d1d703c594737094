package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hs2213/proelection/internal/domain"
)

type VoteRepo interface {
	Create(ctx context.Context, vote *domain.Vote) error
	HasUserVoted(ctx context.Context, userID, electionID uuid.UUID) (bool, error)
	CountForCandidate(ctx context.Context, candidateID, electionID uuid.UUID) (int, error)
}

type VoteRepoImpl struct{ pool *pgxpool.Pool }

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepoImpl { return &VoteRepoImpl{pool: pool} }

// Create appends a ballot to the ledger. The unique index on
// (user_id, election_id) makes the check-then-insert atomic: a second
// ballot for the same pair affects zero rows and surfaces as
// domain.ErrAlreadyVoted instead of a double count.
func (r *VoteRepoImpl) Create(ctx context.Context, vote *domain.Vote) error {
	const q = `
INSERT INTO votes (id, election_id, user_id, candidate_id, cast_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (user_id, election_id) DO NOTHING`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, q, vote.ID, vote.ElectionID, vote.UserID, vote.CandidateID, vote.Time)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrAlreadyVoted
	}
	return nil
}

func (r *VoteRepoImpl) HasUserVoted(ctx context.Context, userID, electionID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM votes WHERE user_id=$1 AND election_id=$2)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var exists bool
	err := r.pool.QueryRow(ctx, q, userID, electionID).Scan(&exists)
	return exists, err
}

func (r *VoteRepoImpl) CountForCandidate(ctx context.Context, candidateID, electionID uuid.UUID) (int, error) {
	const q = `SELECT COUNT(*) FROM votes WHERE candidate_id=$1 AND election_id=$2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var count int
	err := r.pool.QueryRow(ctx, q, candidateID, electionID).Scan(&count)
	return count, err
}

var _ VoteRepo = (*VoteRepoImpl)(nil)
