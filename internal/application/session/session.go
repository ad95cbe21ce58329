package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jmorales/ventaspro-api/internal/application/access"
	"github.com/jmorales/ventaspro-api/internal/application/state"
	"github.com/jmorales/ventaspro-api/internal/domain/entity"
	"github.com/jmorales/ventaspro-api/internal/domain/store"
	"github.com/jmorales/ventaspro-api/pkg/logger"
)

// Mode indica contra qué backend persiste la sesión.
type Mode int

const (
	// ModeLocal sesión de invitado: JSON en el dispositivo.
	ModeLocal Mode = iota
	// ModeRemote sesión autenticada: almacén de documentos remoto con
	// suscripciones en tiempo real.
	ModeRemote
)

func (m Mode) String() string {
	if m == ModeRemote {
		return "remote"
	}
	return "local"
}

// Session ata una identidad a su backend y su estado en memoria. Las
// operaciones compuestas corren bajo Run: un único escritor por sesión, así
// dos operaciones seguidas no pueden validar contra el mismo saldo viejo
// (cierra la carrera de sobregiro del diseño original).
type Session struct {
	mode  Mode
	uid   string // vacío en modo local
	store store.EntityStore
	state *state.StateStore
	log   *logger.Logger

	opMu sync.Mutex // serializa operaciones compuestas

	roleMu sync.Mutex
	role   access.Role

	unsubs []func()
}

// New construye la sesión, carga el estado inicial y suscribe cada colección
// para que el estado converja con cada cambio del backend.
func New(ctx context.Context, mode Mode, uid string, st store.EntityStore, log *logger.Logger) (*Session, error) {
	s := &Session{
		mode:  mode,
		uid:   uid,
		store: st,
		state: state.New(),
		log:   log,
		role:  access.RoleAdmin,
	}

	for _, col := range store.Collections {
		docs, err := st.List(ctx, col)
		if err != nil {
			return nil, fmt.Errorf("cargar %s: %w", col, err)
		}
		if err := s.state.ReplaceDocuments(col, docs); err != nil {
			return nil, err
		}
		col := col
		unsub := st.Watch(col, func(docs []store.Document) {
			if err := s.state.ReplaceDocuments(col, docs); err != nil {
				s.log.Error().Err(err).Str("collection", col).Msg("aplicar snapshot al estado")
			}
		})
		s.unsubs = append(s.unsubs, unsub)
	}

	if err := s.loadSettings(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) loadSettings(ctx context.Context) error {
	raw, err := s.store.GetSetting(ctx, store.KeyStoreProfile)
	if err != nil {
		return err
	}
	if raw != nil {
		var profile entity.StoreProfile
		if err := json.Unmarshal(raw, &profile); err != nil {
			return fmt.Errorf("parsear perfil: %w", err)
		}
		s.state.SetProfile(profile)
	}

	raw, err = s.store.GetSetting(ctx, store.KeyLowStockThreshold)
	if err != nil {
		return err
	}
	if raw != nil {
		var threshold int64
		if err := json.Unmarshal(raw, &threshold); err != nil {
			return fmt.Errorf("parsear umbral de stock: %w", err)
		}
		s.state.SetLowStockThreshold(threshold)
	}
	return nil
}

// Mode devuelve el modo de la sesión.
func (s *Session) Mode() Mode { return s.mode }

// UID devuelve la identidad (vacío en modo local).
func (s *Session) UID() string { return s.uid }

// Store devuelve el backend activo.
func (s *Session) Store() store.EntityStore { return s.store }

// State devuelve el estado en memoria de la sesión.
func (s *Session) State() *state.StateStore { return s.state }

// Role devuelve el rol activo.
func (s *Session) Role() access.Role {
	s.roleMu.Lock()
	defer s.roleMu.Unlock()
	return s.role
}

// SetRole baja el rol (modo vendedor). Subir a admin requiere Elevate.
func (s *Session) SetRole(role access.Role) {
	s.roleMu.Lock()
	defer s.roleMu.Unlock()
	s.role = role
}

// Elevate sube a admin si el PIN coincide con el del perfil (sin PIN
// configurado vale "0000").
func (s *Session) Elevate(pin string) bool {
	if !access.CheckPIN(s.state.Profile().SellerPIN, pin) {
		return false
	}
	s.SetRole(access.RoleAdmin)
	return true
}

// Run ejecuta una operación compuesta serializada.
func (s *Session) Run(fn func() error) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return fn()
}

// ApplyAndRefresh aplica el write set y refresca sincrónicamente el estado de
// las colecciones tocadas leyendo del backend ya confirmado. La siguiente
// operación bajo Run valida contra saldos post-commit, no contra la copia
// optimista previa.
func (s *Session) ApplyAndRefresh(ctx context.Context, ws *store.WriteSet) error {
	if err := s.store.Apply(ctx, ws); err != nil {
		return err
	}
	for _, col := range ws.Collections() {
		docs, err := s.store.List(ctx, col)
		if err != nil {
			return fmt.Errorf("refrescar %s: %w", col, err)
		}
		if err := s.state.ReplaceDocuments(col, docs); err != nil {
			return err
		}
	}
	return nil
}

// Close libera las suscripciones, cierra el backend y limpia el estado en
// memoria para que la identidad siguiente arranque sin datos ajenos.
func (s *Session) Close() error {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
	err := s.store.Close()
	s.state.Clear()
	return err
}
