package chatModel

import (
	"context"
	"errors"
	"time"

	"github.com/akolanti/DocChat/internal/domain/commonModels"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionBusy     = errors.New("session already has a question in flight")
)

// Turn is one transcript entry.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTurn(role Role, content string) Turn {
	return Turn{Role: role, Content: content, CreatedAt: time.Now()}
}

// Exchange is the outcome of a single question. Notice carries a transient
// diagnostic for the caller and is never written to the transcript.
type Exchange struct {
	User      Turn   `json:"user"`
	Assistant Turn   `json:"assistant"`
	Notice    string `json:"notice,omitempty"`
}

// Session pairs the optional document with the transcript. Turns can only be
// appended. Version is bumped by the store on every write.
type Session struct {
	Id              string
	Document        *commonModels.Document
	Pending         bool
	PendingQuestion string
	CreatedAt       time.Time
	Version         int
	turns           []Turn
}

func NewSession(id string) *Session {
	return &Session{Id: id, CreatedAt: time.Now()}
}

func (s *Session) HasDocument() bool {
	return s.Document != nil
}

func (s *Session) SetDocument(doc commonModels.Document) {
	s.Document = &doc
}

func (s *Session) ClearDocument() {
	s.Document = nil
}

func (s *Session) Append(turn Turn) {
	s.turns = append(s.turns, turn)
}

// Transcript returns a copy in chronological order.
func (s *Session) Transcript() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Session) Len() int {
	return len(s.turns)
}

// Clone returns a copy that shares nothing mutable with s.
func (s *Session) Clone() *Session {
	c := *s
	c.turns = s.Transcript()
	if s.Document != nil {
		doc := *s.Document
		c.Document = &doc
	}
	return &c
}

type SessionStore interface {
	CreateSession(ctx context.Context) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, bool)
	// SaveSession fails with ErrSessionBusy when the session was written since
	// it was read, and with ErrSessionNotFound once it is deleted.
	SaveSession(ctx context.Context, session *Session) error
	DeleteSession(ctx context.Context, id string) bool
	// BeginAsk marks the session pending. It fails with ErrSessionBusy while
	// another question is in flight.
	BeginAsk(ctx context.Context, id string, question string) error
}
