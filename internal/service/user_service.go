package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"

	"github.com/hs2213/proelection/internal/domain"
	"github.com/hs2213/proelection/internal/mailer"
	"github.com/hs2213/proelection/internal/notify"
	"github.com/hs2213/proelection/internal/repo/postgres"
	"github.com/hs2213/proelection/internal/utils"
	"github.com/hs2213/proelection/internal/validate"
	"github.com/hs2213/proelection/pkg/auth"
	"github.com/hs2213/proelection/pkg/config"
	"github.com/hs2213/proelection/pkg/events"
	"github.com/hs2213/proelection/pkg/logger"
)

// UserService handles accounts and the vote-eligibility path: who exists,
// who they are, and which elections they take part in.
type UserService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	CreateUser(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetCandidates(ctx context.Context) ([]domain.User, error)
	GetCandidatesForElection(ctx context.Context, electionID uuid.UUID) ([]domain.User, error)
	GetUserElections(ctx context.Context, userID uuid.UUID) ([]domain.Election, error)
	AddElectionToUser(ctx context.Context, user *domain.User, election *domain.Election) error
	SearchUsersForElection(ctx context.Context, query string, userType domain.UserType, electionID uuid.UUID) ([]domain.User, error)
}

type userService struct {
	userRepo  postgres.UserRepo
	elections ElectionService
	notifier  notify.Notifier
	bus       events.Publisher
	mail      mailer.Service
	config    *config.Config
}

func NewUserService(
	userRepo postgres.UserRepo,
	elections ElectionService,
	notifier notify.Notifier,
	bus events.Publisher,
	mail mailer.Service,
	cfg *config.Config,
) UserService {
	return &userService{
		userRepo:  userRepo,
		elections: elections,
		notifier:  notifier,
		bus:       bus,
		mail:      mail,
		config:    cfg,
	}
}

// Register creates an account through the public sign-up flow. Sign-up
// always produces a voter: the requested user type is ignored so nobody
// can self-assign admin or candidate. Emails are stored lower-cased; the
// password is hashed with argon2id, which embeds a fresh random salt.
func (s *userService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	return s.createUser(ctx, req, domain.UserVoter)
}

// CreateUser creates an account with the requested user type. Only
// admin-authenticated callers reach this; unknown types fall back to
// voter.
func (s *userService) CreateUser(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	userType, ok := domain.ParseUserType(req.UserType)
	if !ok {
		userType = domain.UserVoter
	}
	return s.createUser(ctx, req, userType)
}

func (s *userService) createUser(ctx context.Context, req *domain.RegisterRequest, userType domain.UserType) (*domain.User, error) {
	req.Email = utils.NormalizeEmail(req.Email)
	req.PhoneNumber = utils.NormalizePhone(req.PhoneNumber)

	if err := validate.Check(validate.Registration(req)); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if exists {
		s.notifier.Notify(ctx, notify.Notification{Kind: notify.KindError, Text: "Email already exists"})
		return nil, domain.ErrEmailTaken
	}

	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:                     uuid.New(),
		Name:                   req.Name,
		PhoneNumber:            req.PhoneNumber,
		Email:                  req.Email,
		Address:                req.Address,
		Postcode:               req.Postcode,
		Country:                req.Country,
		PasswordHash:           passwordHash,
		UserType:               userType,
		ParticipatingElections: []uuid.UUID{},
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.mail.SendWelcome(created.Email, created.Name); err != nil {
		logger.WarnContext(ctx, "Failed to send welcome email", "error", err, "user_id", created.ID)
	}

	s.publish(ctx, events.UserRegistered, events.UserRegisteredEvent{
		UserID:       created.ID,
		Email:        created.Email,
		UserType:     string(created.UserType),
		RegisteredAt: time.Now(),
	})
	s.notifier.Notify(ctx, notify.Notification{Kind: notify.KindSuccess, Text: "Successfully Created User"})

	return created, nil
}

// Login authenticates and issues an access token.
func (s *userService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	accessToken, err := auth.NewAccessToken(
		user.ID,
		user.Email,
		string(user.UserType),
		s.config.Auth.JWTSecret,
		s.config.Auth.AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	return &domain.LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.config.Auth.AccessTokenTTL.Seconds()),
		User:        user.ToUserInfo(),
	}, nil
}

// Authenticate looks up the account by lower-cased email and compares the
// supplied password against the stored argon2id hash in constant time.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = utils.NormalizeEmail(email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		s.notifier.Notify(ctx, notify.Notification{Kind: notify.KindError, Text: "No account associated with that email"})
		return nil, domain.ErrInvalidCredentials
	}

	valid, err := argon2id.ComparePasswordAndHash(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		s.notifier.Notify(ctx, notify.Notification{Kind: notify.KindError, Text: "Password is incorrect."})
		return nil, domain.ErrInvalidCredentials
	}

	s.notifier.Notify(ctx, notify.Notification{Kind: notify.KindSuccess, Text: "Successfully Authenticated"})

	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		s.notifier.Notify(ctx, notify.Notification{Kind: notify.KindError, Text: "Failed to get user."})
	}

	return user, nil
}

func (s *userService) GetCandidates(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.GetCandidates(ctx)
}

func (s *userService) GetCandidatesForElection(ctx context.Context, electionID uuid.UUID) ([]domain.User, error) {
	return s.userRepo.GetCandidatesOfElection(ctx, electionID)
}

// GetUserElections returns the elections the user participates in; nil
// when the user does not exist.
func (s *userService) GetUserElections(ctx context.Context, userID uuid.UUID) ([]domain.Election, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	return s.elections.GetElectionsByIDs(ctx, user.ParticipatingElections)
}

// AddElectionToUser is idempotent: adding an election the user already
// participates in reports the fact and changes nothing.
func (s *userService) AddElectionToUser(ctx context.Context, user *domain.User, election *domain.Election) error {
	if user.ParticipatesIn(election.ID) {
		s.notifier.Notify(ctx, notify.Notification{Kind: notify.KindInfo, Text: "User is already a part of the election"})
		return nil
	}

	if err := s.userRepo.AddToElection(ctx, user.ID, election.ID); err != nil {
		return fmt.Errorf("failed to add election to user: %w", err)
	}

	user.ParticipatingElections = append(user.ParticipatingElections, election.ID)
	s.notifier.Notify(ctx, notify.Notification{Kind: notify.KindSuccess, Text: "Successfully added election to user"})

	return nil
}

func (s *userService) SearchUsersForElection(ctx context.Context, query string, userType domain.UserType, electionID uuid.UUID) ([]domain.User, error) {
	return s.userRepo.SearchForElection(ctx, query, userType, electionID)
}

func (s *userService) publish(ctx context.Context, subject string, event interface{}) {
	if err := s.bus.Publish(ctx, subject, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish event", "error", err, "subject", subject)
	}
}
