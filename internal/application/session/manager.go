package session

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	infrapg "github.com/jmorales/ventaspro-api/internal/infrastructure/postgres"
	"github.com/jmorales/ventaspro-api/pkg/logger"
)

// Manager es el selector de backend: decide una vez por identidad si la
// sesión trabaja local o remota, y las demás capas reciben la Session ya
// resuelta (nada vuelve a preguntar "¿hay usuario?"). El login no arrastra
// datos locales — eso es trabajo explícito de la migración — y el logout
// cierra la sesión remota y limpia su estado.
type Manager struct {
	guest *Session
	pool  *pgxpool.Pool // nil si no hay backend remoto configurado
	log   *logger.Logger

	mu     sync.Mutex
	remote map[string]*Session
}

// NewManager construye el selector con la sesión invitada ya abierta.
// pool puede ser nil: la app corre solo en modo local.
func NewManager(guest *Session, pool *pgxpool.Pool, log *logger.Logger) *Manager {
	return &Manager{
		guest:  guest,
		pool:   pool,
		log:    log,
		remote: make(map[string]*Session),
	}
}

// Guest devuelve la sesión local compartida de invitado.
func (m *Manager) Guest() *Session { return m.guest }

// RemoteEnabled indica si hay backend remoto configurado.
func (m *Manager) RemoteEnabled() bool { return m.pool != nil }

// ForUser devuelve (o abre) la sesión remota de una identidad autenticada.
func (m *Manager) ForUser(ctx context.Context, uid string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.remote[uid]; ok {
		return s, nil
	}
	st := infrapg.NewRemoteStore(m.pool, uid, m.log)
	s, err := New(ctx, ModeRemote, uid, st, m.log)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	m.log.Info().Str("uid", uid).Msg("sesión remota abierta")
	m.remote[uid] = s
	return s, nil
}

// Logout cierra la sesión remota de la identidad: corta suscripciones y vacía
// el estado en memoria. Idempotente.
func (m *Manager) Logout(uid string) {
	m.mu.Lock()
	s, ok := m.remote[uid]
	delete(m.remote, uid)
	m.mu.Unlock()
	if !ok {
		return
	}
	if err := s.Close(); err != nil {
		m.log.Warn().Err(err).Str("uid", uid).Msg("cerrar sesión remota")
	}
}

// Close cierra todas las sesiones (shutdown de la app).
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.remote)+1)
	for uid, s := range m.remote {
		sessions = append(sessions, s)
		delete(m.remote, uid)
	}
	m.mu.Unlock()
	sessions = append(sessions, m.guest)
	for _, s := range sessions {
		_ = s.Close()
	}
}
