package service_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/hs2213/proelection/internal/domain"
	"github.com/hs2213/proelection/internal/notify"
)

// ---------- In-memory stores ----------

type memElectionRepo struct {
	mu        sync.Mutex
	elections map[uuid.UUID]domain.Election
	order     []uuid.UUID
}

func newMemElectionRepo() *memElectionRepo {
	return &memElectionRepo{elections: make(map[uuid.UUID]domain.Election)}
}

func (m *memElectionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Election, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.elections[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *memElectionRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Election, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Election
	for _, id := range ids {
		if e, ok := m.elections[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memElectionRepo) List(_ context.Context) ([]domain.Election, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Election, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.elections[id])
	}
	return out, nil
}

func (m *memElectionRepo) Create(_ context.Context, e *domain.Election) (*domain.Election, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.elections[e.ID] = *e
	m.order = append(m.order, e.ID)
	return e, nil
}

func (m *memElectionRepo) Update(_ context.Context, e *domain.Election) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.elections[e.ID] = *e
	return nil
}

type voteKey struct {
	userID     uuid.UUID
	electionID uuid.UUID
}

type memVoteRepo struct {
	mu    sync.Mutex
	votes map[voteKey]domain.Vote
}

func newMemVoteRepo() *memVoteRepo {
	return &memVoteRepo{votes: make(map[voteKey]domain.Vote)}
}

func (m *memVoteRepo) Create(_ context.Context, v *domain.Vote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := voteKey{userID: v.UserID, electionID: v.ElectionID}
	if _, exists := m.votes[key]; exists {
		return domain.ErrAlreadyVoted
	}
	m.votes[key] = *v
	return nil
}

func (m *memVoteRepo) HasUserVoted(_ context.Context, userID, electionID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.votes[voteKey{userID: userID, electionID: electionID}]
	return exists, nil
}

func (m *memVoteRepo) CountForCandidate(_ context.Context, candidateID, electionID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, v := range m.votes {
		if v.CandidateID == candidateID && v.ElectionID == electionID {
			count++
		}
	}
	return count, nil
}

type memCodeRepo struct {
	mu    sync.Mutex
	codes map[uuid.UUID]domain.ElectionCode
}

func newMemCodeRepo() *memCodeRepo {
	return &memCodeRepo{codes: make(map[uuid.UUID]domain.ElectionCode)}
}

func (m *memCodeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.ElectionCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.codes[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memCodeRepo) GetByElectionAndUser(_ context.Context, electionID, userID uuid.UUID) (*domain.ElectionCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.codes {
		if c.ElectionID == electionID && c.UserID == userID {
			code := c
			return &code, nil
		}
	}
	return nil, nil
}

func (m *memCodeRepo) Create(_ context.Context, code *domain.ElectionCode) (*domain.ElectionCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.codes {
		if c.ElectionID == code.ElectionID && c.UserID == code.UserID {
			existing := c
			return &existing, nil
		}
	}
	m.codes[code.ID] = *code
	return code, nil
}

func (m *memCodeRepo) Update(_ context.Context, code *domain.ElectionCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[code.ID] = *code
	return nil
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User
	order []uuid.UUID
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]domain.User)}
}

func (m *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	u, err := m.GetByEmail(ctx, email)
	return u != nil, err
}

func (m *memUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = *u
	m.order = append(m.order, u.ID)
	return u, nil
}

func (m *memUserRepo) Update(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = *u
	return nil
}

func (m *memUserRepo) AddToElection(_ context.Context, userID, electionID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[userID]
	for _, id := range u.ParticipatingElections {
		if id == electionID {
			return nil
		}
	}
	u.ParticipatingElections = append(u.ParticipatingElections, electionID)
	m.users[userID] = u
	return nil
}

func (m *memUserRepo) GetCandidates(_ context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.User
	for _, id := range m.order {
		if u := m.users[id]; u.UserType == domain.UserCandidate {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUserRepo) GetCandidatesOfElection(_ context.Context, electionID uuid.UUID) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.User
	for _, id := range m.order {
		u := m.users[id]
		if u.UserType != domain.UserCandidate {
			continue
		}
		for _, e := range u.ParticipatingElections {
			if e == electionID {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

func (m *memUserRepo) SearchForElection(_ context.Context, query string, userType domain.UserType, electionID uuid.UUID) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.User
	for _, id := range m.order {
		u := m.users[id]
		if u.UserType != userType || u.ParticipatesIn(electionID) {
			continue
		}
		if query == "" || contains(u.Email, query) {
			out = append(out, u)
		}
	}
	return out, nil
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

// ---------- Collaborator fakes ----------

type recordingNotifier struct {
	mu            sync.Mutex
	notifications []notify.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notification notify.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, notification)
}

func (n *recordingNotifier) texts() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.notifications))
	for _, msg := range n.notifications {
		out = append(out, msg.Text)
	}
	return out
}

func (n *recordingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notifications) == 0 {
		return ""
	}
	return n.notifications[len(n.notifications)-1].Text
}

type recordingBus struct {
	mu       sync.Mutex
	subjects []string
}

func (b *recordingBus) Publish(_ context.Context, subject string, _ interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subjects = append(b.subjects, subject)
	return nil
}

func (b *recordingBus) Close() error { return nil }

type memResultsCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID][]domain.CandidateResult
}

func newMemResultsCache() *memResultsCache {
	return &memResultsCache{entries: make(map[uuid.UUID][]domain.CandidateResult)}
}

func (c *memResultsCache) Get(_ context.Context, electionID uuid.UUID) ([]domain.CandidateResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	results, ok := c.entries[electionID]
	return results, ok
}

func (c *memResultsCache) Set(_ context.Context, electionID uuid.UUID, results []domain.CandidateResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[electionID] = results
}

type recordingMailer struct {
	mu        sync.Mutex
	codeSends []string // recipient emails
	welcomes  []string
}

func (m *recordingMailer) SendElectionCode(toEmail, _, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codeSends = append(m.codeSends, toEmail)
	return nil
}

func (m *recordingMailer) SendWelcome(toEmail, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcomes = append(m.welcomes, toEmail)
	return nil
}
