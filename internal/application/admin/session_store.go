package admin

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/catalogo-servicios/internal/domain"
)

// SessionStore guarda las sesiones del panel en memoria, indexadas por UUID.
// Las sesiones sin actividad durante ttl se descartan.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// NewSessionStore crea el almacén. ttl <= 0 desactiva la expiración.
func NewSessionStore(ttl time.Duration, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		log:      log,
	}
}

// Create abre una sesión nueva.
func (st *SessionStore) Create() *Session {
	s := NewSession(uuid.New().String())
	s.touch(st.now())
	st.mu.Lock()
	st.sessions[s.ID()] = s
	st.mu.Unlock()
	return s
}

// Get devuelve la sesión y renueva su actividad.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	now := st.now()
	if st.expired(s, now) {
		st.Delete(id)
		return nil, domain.ErrSessionNotFound
	}
	s.touch(now)
	return s, nil
}

// Delete cierra la sesión.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len número de sesiones abiertas.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *SessionStore) expired(s *Session, now time.Time) bool {
	return st.ttl > 0 && now.Sub(s.idleSince()) > st.ttl
}

// Evict descarta las sesiones expiradas y devuelve cuántas eliminó.
func (st *SessionStore) Evict() int {
	now := st.now()
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		if st.expired(s, now) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// RunJanitor ejecuta Evict cada intervalo hasta que ctx se cancela.
func (st *SessionStore) RunJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 || st.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Evict(); n > 0 {
				st.log.Info().Int("sesiones", n).Msg("admin: sesiones expiradas eliminadas")
			}
		}
	}
}
