package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hs2213/proelection/internal/domain"
)

type ElectionCodeRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ElectionCode, error)
	GetByElectionAndUser(ctx context.Context, electionID, userID uuid.UUID) (*domain.ElectionCode, error)
	Create(ctx context.Context, code *domain.ElectionCode) (*domain.ElectionCode, error)
	Update(ctx context.Context, code *domain.ElectionCode) error
}

type ElectionCodeRepoImpl struct{ pool *pgxpool.Pool }

func NewElectionCodeRepo(pool *pgxpool.Pool) *ElectionCodeRepoImpl {
	return &ElectionCodeRepoImpl{pool: pool}
}

const codeCols = `id, election_id, user_id, status`

func scanCode(row pgx.Row) (*domain.ElectionCode, error) {
	var c domain.ElectionCode
	if err := row.Scan(&c.ID, &c.ElectionID, &c.UserID, &c.Status); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ElectionCodeRepoImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.ElectionCode, error) {
	const q = `SELECT ` + codeCols + ` FROM election_codes WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	c, err := scanCode(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (r *ElectionCodeRepoImpl) GetByElectionAndUser(ctx context.Context, electionID, userID uuid.UUID) (*domain.ElectionCode, error) {
	const q = `SELECT ` + codeCols + ` FROM election_codes WHERE election_id=$1 AND user_id=$2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	c, err := scanCode(r.pool.QueryRow(ctx, q, electionID, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return c, err
}

// Create inserts a code unless one already exists for the (election, user)
// pair. The unique index settles concurrent issuance: the losing writer
// re-reads and returns the winner's row, so both callers see one code.
func (r *ElectionCodeRepoImpl) Create(ctx context.Context, code *domain.ElectionCode) (*domain.ElectionCode, error) {
	const q = `
INSERT INTO election_codes (id, election_id, user_id, status)
VALUES ($1,$2,$3,$4)
ON CONFLICT (election_id, user_id) DO NOTHING`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, q, code.ID, code.ElectionID, code.UserID, code.Status)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return r.GetByElectionAndUser(ctx, code.ElectionID, code.UserID)
	}
	return code, nil
}

func (r *ElectionCodeRepoImpl) Update(ctx context.Context, code *domain.ElectionCode) error {
	const q = `UPDATE election_codes SET status=$2 WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, code.ID, code.Status)
	return err
}

var _ ElectionCodeRepo = (*ElectionCodeRepoImpl)(nil)
