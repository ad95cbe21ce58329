package postgres

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmorales/ventaspro-api/pkg/logger"
)

// changeChannel es el canal LISTEN/NOTIFY compartido por todas las sesiones.
const changeChannel = "doc_changes"

// changePayload viaja dentro de la notificación: qué usuario y qué
// colecciones cambiaron.
type changePayload struct {
	UID         string   `json:"uid"`
	Collections []string `json:"collections"`
}

// changeListener mantiene una conexión dedicada en LISTEN y traduce cada
// notificación en un refresh de colección. Filtra por uid: cada sesión solo
// ve los cambios de su propia identidad.
type changeListener struct {
	pool    *pgxpool.Pool
	uid     string
	log     *logger.Logger
	refresh func(ctx context.Context, collection string)

	mu      sync.Mutex
	cancel  context.CancelFunc
	started bool
}

func newChangeListener(pool *pgxpool.Pool, uid string, log *logger.Logger, refresh func(context.Context, string)) *changeListener {
	return &changeListener{pool: pool, uid: uid, log: log, refresh: refresh}
}

// start lanza el goroutine de escucha una sola vez.
func (l *changeListener) start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.started = true
	go l.run(ctx)
}

// stop corta la escucha. Idempotente.
func (l *changeListener) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.started = false
}

func (l *changeListener) run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			l.log.Warn().Err(err).Msg("listener de cambios caído, reintentando")
			select {
			case <-time.After(2 * time.Second):
			case <-ctx.Done():
				return
			}
		}
	}
}

func (l *changeListener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+changeChannel); err != nil {
		return err
	}

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		var payload changePayload
		if err := json.Unmarshal([]byte(notification.Payload), &payload); err != nil {
			l.log.Warn().Err(err).Msg("payload de notificación inválido")
			continue
		}
		if payload.UID != l.uid {
			continue
		}
		for _, col := range payload.Collections {
			l.refresh(ctx, col)
		}
	}
}
