package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hs2213/proelection/internal/domain"
)

type ElectionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Election, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Election, error)
	List(ctx context.Context) ([]domain.Election, error)
	Create(ctx context.Context, election *domain.Election) (*domain.Election, error)
	Update(ctx context.Context, election *domain.Election) error
}

type ElectionRepoImpl struct{ pool *pgxpool.Pool }

func NewElectionRepo(pool *pgxpool.Pool) *ElectionRepoImpl { return &ElectionRepoImpl{pool: pool} }

const electionCols = `id, name, start_at, end_at, election_type`

func scanElection(row pgx.Row) (*domain.Election, error) {
	var e domain.Election
	if err := row.Scan(&e.ID, &e.Name, &e.Start, &e.End, &e.ElectionType); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ElectionRepoImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Election, error) {
	const q = `SELECT ` + electionCols + ` FROM elections WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	e, err := scanElection(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return e, err
}

// GetByIDs returns the elections whose ids are in the given set; unknown
// ids are silently omitted.
func (r *ElectionRepoImpl) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Election, error) {
	const q = `SELECT ` + electionCols + ` FROM elections WHERE id = ANY($1)`
	return r.queryElections(ctx, q, ids)
}

func (r *ElectionRepoImpl) List(ctx context.Context) ([]domain.Election, error) {
	const q = `SELECT ` + electionCols + ` FROM elections`
	return r.queryElections(ctx, q)
}

func (r *ElectionRepoImpl) Create(ctx context.Context, election *domain.Election) (*domain.Election, error) {
	const q = `
INSERT INTO elections (id, name, start_at, end_at, election_type)
VALUES ($1,$2,$3,$4,$5)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, election.ID, election.Name, election.Start, election.End, election.ElectionType)
	if err != nil {
		return nil, err
	}
	return election, nil
}

func (r *ElectionRepoImpl) Update(ctx context.Context, election *domain.Election) error {
	const q = `UPDATE elections SET name=$2, start_at=$3, end_at=$4 WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, election.ID, election.Name, election.Start, election.End)
	return err
}

func (r *ElectionRepoImpl) queryElections(ctx context.Context, q string, args ...any) ([]domain.Election, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var elections []domain.Election
	for rows.Next() {
		e, err := scanElection(rows)
		if err != nil {
			return nil, err
		}
		elections = append(elections, *e)
	}
	return elections, rows.Err()
}

var _ ElectionRepo = (*ElectionRepoImpl)(nil)
