package memory

import (
	"sync"
	"time"

	"linen-chatbot-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps chat sessions in process memory. Idle sessions expire after the TTL.
type SessionRepository struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	// purge expired sessions every 10 minutes
	return &SessionRepository{cache: cache.New(ttl, 10*time.Minute)}
}

func (r *SessionRepository) Save(session *entity.ChatSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Set(session.Id.String(), session.Clone(), cache.DefaultExpiration)
}

// Get returns a copy; changes to it are not stored.
func (r *SessionRepository) Get(id uuid.UUID) (*entity.ChatSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if x, found := r.cache.Get(id.String()); found {
		return x.(*entity.ChatSession).Clone(), true
	}
	return nil, false
}

// Update applies fn to the stored session under the repository lock and refreshes its TTL.
// When fn returns an error nothing is stored. The returned session is a copy of the result.
func (r *SessionRepository) Update(id uuid.UUID, fn func(s *entity.ChatSession) error) (*entity.ChatSession, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(id.String())
	if !found {
		return nil, false, nil
	}

	working := x.(*entity.ChatSession).Clone()
	if err := fn(working); err != nil {
		return nil, true, err
	}
	r.cache.Set(id.String(), working, cache.DefaultExpiration)
	return working.Clone(), true, nil
}

func (r *SessionRepository) Delete(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, found := r.cache.Get(id.String())
	r.cache.Delete(id.String())
	return found
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}

// OnEvicted registers fn for expired and deleted sessions.
func (r *SessionRepository) OnEvicted(fn func(id string)) {
	r.cache.OnEvicted(func(k string, _ interface{}) { fn(k) })
}
