package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmorales/ventaspro-api/internal/domain/store"
	"github.com/jmorales/ventaspro-api/pkg/logger"
)

var _ store.EntityStore = (*RemoteStore)(nil)

// RemoteStore implementa EntityStore sobre el almacén de documentos
// PostgreSQL, con scope por usuario (users/{uid}/{collection}/{docID}).
// Apply es una transacción por trozo de BatchLimit operaciones; el commit
// emite pg_notify con las colecciones tocadas, y el listener (listener.go)
// reparte snapshots frescos a las suscripciones Watch — incluidos cambios
// hechos desde otro dispositivo o proceso contra la misma cuenta.
type RemoteStore struct {
	pool *pgxpool.Pool
	uid  string
	log  *logger.Logger

	subMu    sync.Mutex
	subs     map[string]map[int]store.SnapshotFunc
	nextID   int
	listener *changeListener
}

// NewRemoteStore construye el backend remoto para una identidad.
func NewRemoteStore(pool *pgxpool.Pool, uid string, log *logger.Logger) *RemoteStore {
	s := &RemoteStore{
		pool: pool,
		uid:  uid,
		log:  log,
		subs: make(map[string]map[int]store.SnapshotFunc),
	}
	s.listener = newChangeListener(pool, uid, log, s.refresh)
	return s
}

// List lee el snapshot completo de una colección en orden de llegada.
func (s *RemoteStore) List(ctx context.Context, collection string) ([]store.Document, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT doc_id, data FROM user_documents
		WHERE user_id = $1 AND collection = $2
		ORDER BY updated_at, doc_id`, s.uid, collection)
	if err != nil {
		return nil, fmt.Errorf("listar %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []store.Document
	for rows.Next() {
		var doc store.Document
		if err := rows.Scan(&doc.ID, &doc.Data); err != nil {
			return nil, fmt.Errorf("leer documento de %s: %w", collection, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listar %s: %w", collection, err)
	}
	return docs, nil
}

// Apply ejecuta el write set en transacciones de a lo sumo BatchLimit
// operaciones. Dentro de cada transacción se emite la notificación de cambio,
// así el aviso solo sale si el commit sale.
func (s *RemoteStore) Apply(ctx context.Context, ws *store.WriteSet) error {
	for _, chunk := range ws.Chunks(store.BatchLimit) {
		if err := s.applyChunk(ctx, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (s *RemoteStore) applyChunk(ctx context.Context, ws *store.WriteSet) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, op := range ws.Ops {
		switch op.Kind {
		case store.OpPut:
			_, err = tx.Exec(ctx, `
				INSERT INTO user_documents (user_id, collection, doc_id, data, updated_at)
				VALUES ($1, $2, $3, $4, now())
				ON CONFLICT (user_id, collection, doc_id)
				DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
				s.uid, op.Collection, op.Doc.ID, op.Doc.Data)
		case store.OpDelete:
			_, err = tx.Exec(ctx, `
				DELETE FROM user_documents
				WHERE user_id = $1 AND collection = $2 AND doc_id = $3`,
				s.uid, op.Collection, op.Doc.ID)
		}
		if err != nil {
			return fmt.Errorf("aplicar op en %s: %w", op.Collection, err)
		}
	}

	payload, err := json.Marshal(changePayload{UID: s.uid, Collections: ws.Collections()})
	if err != nil {
		return fmt.Errorf("serializar notificación: %w", err)
	}
	if _, err := tx.Exec(ctx, `SELECT pg_notify($1, $2)`, changeChannel, string(payload)); err != nil {
		return fmt.Errorf("notificar cambios: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Watch suscribe fn a una colección y arranca el listener si hace falta.
func (s *RemoteStore) Watch(collection string, fn store.SnapshotFunc) func() {
	s.subMu.Lock()
	if s.subs[collection] == nil {
		s.subs[collection] = make(map[int]store.SnapshotFunc)
	}
	id := s.nextID
	s.nextID++
	s.subs[collection][id] = fn
	s.subMu.Unlock()

	s.listener.start()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs[collection], id)
	}
}

// refresh relee una colección y reparte el snapshot a sus suscriptores.
// Lo invoca el listener al recibir una notificación que toca la colección.
func (s *RemoteStore) refresh(ctx context.Context, collection string) {
	s.subMu.Lock()
	fns := make([]store.SnapshotFunc, 0, len(s.subs[collection]))
	for _, fn := range s.subs[collection] {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	if len(fns) == 0 {
		return
	}

	docs, err := s.List(ctx, collection)
	if err != nil {
		s.log.Error().Err(err).Str("collection", collection).Msg("refrescar colección remota")
		return
	}
	for _, fn := range fns {
		fn(docs)
	}
}

// GetSetting lee un setting del usuario; nil si no existe.
func (s *RemoteStore) GetSetting(ctx context.Context, key string) (json.RawMessage, error) {
	var raw json.RawMessage
	err := s.pool.QueryRow(ctx, `
		SELECT data FROM user_settings WHERE user_id = $1 AND key = $2`,
		s.uid, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer setting %s: %w", key, err)
	}
	return raw, nil
}

// PutSetting escribe un setting. Con merge=true los campos nuevos se combinan
// con el documento existente (lo usa la migración). El merge vía jsonb ||
// solo aplica cuando ambos lados son objetos; con escalares (el umbral de
// stock es un número suelto) || armaría un array, así que ahí gana el valor
// nuevo, igual que MergeJSON en el backend local.
func (s *RemoteStore) PutSetting(ctx context.Context, key string, value json.RawMessage, merge bool) error {
	var err error
	if merge {
		_, err = s.pool.Exec(ctx, `
			INSERT INTO user_settings (user_id, key, data, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (user_id, key)
			DO UPDATE SET data = CASE
				WHEN jsonb_typeof(user_settings.data) = 'object' AND jsonb_typeof(EXCLUDED.data) = 'object'
					THEN user_settings.data || EXCLUDED.data
				ELSE EXCLUDED.data
			END, updated_at = now()`,
			s.uid, key, value)
	} else {
		_, err = s.pool.Exec(ctx, `
			INSERT INTO user_settings (user_id, key, data, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (user_id, key)
			DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
			s.uid, key, value)
	}
	if err != nil {
		return fmt.Errorf("escribir setting %s: %w", key, err)
	}
	return nil
}

// Close corta el listener y descarta las suscripciones. Debe llamarse al
// cerrar sesión para no filtrar listeners entre identidades.
func (s *RemoteStore) Close() error {
	s.listener.stop()
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = make(map[string]map[int]store.SnapshotFunc)
	return nil
}
