package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hs2213/proelection/internal/domain"
)

type UserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	AddToElection(ctx context.Context, userID, electionID uuid.UUID) error
	GetCandidates(ctx context.Context) ([]domain.User, error)
	GetCandidatesOfElection(ctx context.Context, electionID uuid.UUID) ([]domain.User, error)
	SearchForElection(ctx context.Context, query string, userType domain.UserType, electionID uuid.UUID) ([]domain.User, error)
}

type UserRepoImpl struct{ pool *pgxpool.Pool }

func NewUserRepo(pool *pgxpool.Pool) *UserRepoImpl { return &UserRepoImpl{pool: pool} }

// Participating elections live in the user_elections join table and are
// folded into each row with array_agg.
const userCols = `u.id, u.name, u.phone_number, u.email, u.address, u.postcode, u.country,
u.password_hash, u.user_type,
COALESCE(array_agg(ue.election_id) FILTER (WHERE ue.election_id IS NOT NULL), '{}')`

const userJoin = `FROM users u
LEFT JOIN user_elections ue ON ue.user_id = u.id`

const userGroup = `GROUP BY u.id`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID, &u.Name, &u.PhoneNumber, &u.Email, &u.Address, &u.Postcode, &u.Country,
		&u.PasswordHash, &u.UserType,
		&u.ParticipatingElections,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepoImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` ` + userJoin + ` WHERE u.id=$1 ` + userGroup
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	u, err := scanUser(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *UserRepoImpl) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` ` + userJoin + ` WHERE u.email=$1 ` + userGroup
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	u, err := scanUser(r.pool.QueryRow(ctx, q, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *UserRepoImpl) EmailExists(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var exists bool
	err := r.pool.QueryRow(ctx, q, email).Scan(&exists)
	return exists, err
}

func (r *UserRepoImpl) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (id, name, phone_number, email, address, postcode, country, password_hash, user_type)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q,
		user.ID, user.Name, user.PhoneNumber, user.Email, user.Address,
		user.Postcode, user.Country, user.PasswordHash, user.UserType,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepoImpl) Update(ctx context.Context, user *domain.User) error {
	const q = `
UPDATE users SET name=$2, phone_number=$3, email=$4, address=$5, postcode=$6, country=$7, user_type=$8
WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q,
		user.ID, user.Name, user.PhoneNumber, user.Email, user.Address,
		user.Postcode, user.Country, user.UserType,
	)
	return err
}

// AddToElection is idempotent: inserting an existing membership is a no-op.
func (r *UserRepoImpl) AddToElection(ctx context.Context, userID, electionID uuid.UUID) error {
	const q = `
INSERT INTO user_elections (user_id, election_id)
VALUES ($1,$2)
ON CONFLICT (user_id, election_id) DO NOTHING`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, userID, electionID)
	return err
}

func (r *UserRepoImpl) GetCandidates(ctx context.Context) ([]domain.User, error) {
	const q = `SELECT ` + userCols + ` ` + userJoin + ` WHERE u.user_type='candidate' ` + userGroup
	return r.queryUsers(ctx, q)
}

func (r *UserRepoImpl) GetCandidatesOfElection(ctx context.Context, electionID uuid.UUID) ([]domain.User, error) {
	const q = `SELECT ` + userCols + ` ` + userJoin + `
WHERE u.user_type='candidate'
AND u.id IN (SELECT user_id FROM user_elections WHERE election_id=$1)
` + userGroup + ` ORDER BY u.id`
	return r.queryUsers(ctx, q, electionID)
}

// SearchForElection finds users of the given type whose email contains the
// query and who are not yet part of the election.
func (r *UserRepoImpl) SearchForElection(ctx context.Context, query string, userType domain.UserType, electionID uuid.UUID) ([]domain.User, error) {
	const q = `SELECT ` + userCols + ` ` + userJoin + `
WHERE u.user_type=$1
AND u.email LIKE '%' || $2 || '%'
AND u.id NOT IN (SELECT user_id FROM user_elections WHERE election_id=$3)
` + userGroup
	return r.queryUsers(ctx, q, userType, query, electionID)
}

func (r *UserRepoImpl) queryUsers(ctx context.Context, q string, args ...any) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

var _ UserRepo = (*UserRepoImpl)(nil)
