package store

import (
	"context"
	"sync"

	"github.com/akolanti/DocChat/internal/domain/chatModel"
	"github.com/akolanti/DocChat/internal/metrics"
	"github.com/google/uuid"
)

// InMemorySessionStore keeps every session for the life of the process.
// Callers only ever receive clones, so no two sessions share state and no
// caller can mutate the stored copy without SaveSession.
type InMemorySessionStore struct {
	sessionLock *sync.RWMutex
	sessionMap  map[string]*chatModel.Session
}

func InitSessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessionLock: new(sync.RWMutex),
		sessionMap:  make(map[string]*chatModel.Session),
	}
}

func (store *InMemorySessionStore) CreateSession(ctx context.Context) (*chatModel.Session, error) {
	session := chatModel.NewSession(uuid.New().String())

	store.sessionLock.Lock()
	defer store.sessionLock.Unlock()
	store.sessionMap[session.Id] = session
	metrics.IncrementActiveSessions()
	inMemLogger.WithTrace(ctx).Debug("Created session", "sessionId", session.Id)
	return session.Clone(), nil
}

func (store *InMemorySessionStore) GetSession(ctx context.Context, id string) (*chatModel.Session, bool) {
	store.sessionLock.RLock()
	defer store.sessionLock.RUnlock()
	session, ok := store.sessionMap[id]
	if !ok {
		return nil, false
	}
	return session.Clone(), true
}

func (store *InMemorySessionStore) SaveSession(ctx context.Context, session *chatModel.Session) error {
	store.sessionLock.Lock()
	defer store.sessionLock.Unlock()
	current, ok := store.sessionMap[session.Id]
	if !ok {
		return chatModel.ErrSessionNotFound
	}
	if current.Version != session.Version {
		return chatModel.ErrSessionBusy
	}
	stored := session.Clone()
	stored.Version++
	store.sessionMap[session.Id] = stored
	session.Version = stored.Version
	return nil
}

func (store *InMemorySessionStore) DeleteSession(ctx context.Context, id string) bool {
	store.sessionLock.Lock()
	defer store.sessionLock.Unlock()
	if _, ok := store.sessionMap[id]; !ok {
		return false
	}
	delete(store.sessionMap, id)
	metrics.DecrementActiveSessions()
	inMemLogger.WithTrace(ctx).Debug("Deleted session", "sessionId", id)
	return true
}

func (store *InMemorySessionStore) BeginAsk(ctx context.Context, id string, question string) error {
	store.sessionLock.Lock()
	defer store.sessionLock.Unlock()
	session, ok := store.sessionMap[id]
	if !ok {
		return chatModel.ErrSessionNotFound
	}
	if session.Pending {
		return chatModel.ErrSessionBusy
	}
	session.Pending = true
	session.PendingQuestion = question
	session.Version++
	return nil
}
