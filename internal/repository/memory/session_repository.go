package memory

import (
	"sync"
	"time"

	"ai-knowledgebase-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewSessionRepository() *SessionRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes. A session
	// stuck in AWAITING_RESPONSE by a crashed worker unsticks itself on expiry.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// TryAcquire flips the session to AWAITING_RESPONSE if and only if it is not
// already there. Returns false when a question is already in flight.
func (r *SessionRepository) TryAcquire(sessionID string, query string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.cache.Get(sessionID); found {
		session := x.(*store.Session)
		if session.State == store.StateAwaiting {
			return false
		}
	}
	r.cache.Set(sessionID, &store.Session{
		ID:        sessionID,
		State:     store.StateAwaiting,
		LastQuery: query,
	}, cache.DefaultExpiration)
	return true
}

// Release returns the session to IDLE regardless of outcome.
func (r *SessionRepository) Release(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := &store.Session{ID: sessionID, State: store.StateIdle}
	if x, found := r.cache.Get(sessionID); found {
		session.LastQuery = x.(*store.Session).LastQuery
	}
	r.cache.Set(sessionID, session, cache.DefaultExpiration)
}
