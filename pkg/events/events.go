package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/hs2213/proelection/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	QueueSubscribe(subject, queue string, handler func(msg *Message)) error
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
	ID        string
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	_, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
			ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		})
	})
	return err
}

func (n *NATSEventBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	_, err := n.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
			ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		})
	})
	return err
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// Event subjects
const (
	// Election events
	ElectionCreated = "election.created"
	ElectionUpdated = "election.updated"

	// Vote events
	VoteCast = "vote.cast"

	// Access code events
	CodeIssued = "code.issued"
	CodeUsed   = "code.used"

	// Account events
	UserRegistered = "user.registered"

	// User-facing outcome notifications
	NotifySend = "notify.user"
)

// Event payloads
type ElectionCreatedEvent struct {
	ElectionID   uuid.UUID `json:"election_id"`
	Name         string    `json:"name"`
	ElectionType string    `json:"election_type"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	CreatedAt    time.Time `json:"created_at"`
}

type VoteCastEvent struct {
	VoteID     uuid.UUID `json:"vote_id"`
	ElectionID uuid.UUID `json:"election_id"`
	CastAt     time.Time `json:"cast_at"`
}

type CodeIssuedEvent struct {
	CodeID     uuid.UUID `json:"code_id"`
	ElectionID uuid.UUID `json:"election_id"`
	UserID     uuid.UUID `json:"user_id"`
	IssuedAt   time.Time `json:"issued_at"`
}

type CodeUsedEvent struct {
	CodeID     uuid.UUID `json:"code_id"`
	ElectionID uuid.UUID `json:"election_id"`
	UsedAt     time.Time `json:"used_at"`
}

type UserRegisteredEvent struct {
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	UserType     string    `json:"user_type"`
	RegisteredAt time.Time `json:"registered_at"`
}

type NotificationEvent struct {
	Kind      string    `json:"kind"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
