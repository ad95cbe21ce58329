package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/jmorales/ventaspro-api/internal/domain/store"
	"github.com/jmorales/ventaspro-api/pkg/logger"
)

var _ store.EntityStore = (*Store)(nil)

// Store implementa EntityStore sobre archivos JSON locales (modo invitado).
// Cada colección vive completa bajo su clave (products.json, sales.json, ...);
// toda mutación reserializa la colección entera de forma síncrona, sin
// escrituras parciales. El mutex garantiza que un Apply se vea completo o no
// se vea: ninguna otra operación observa estado intermedio.
type Store struct {
	fs  afero.Fs
	dir string
	log *logger.Logger

	mu       sync.Mutex
	cols     map[string][]store.Document
	settings map[string]json.RawMessage

	subMu  sync.Mutex
	subs   map[string]map[int]store.SnapshotFunc
	nextID int
}

// Open carga (o crea) el directorio de datos y lee todas las colecciones a
// memoria. La lectura del disco ocurre una sola vez, al entrar al modo local.
func Open(fs afero.Fs, dir string, log *logger.Logger) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}
	s := &Store{
		fs:       fs,
		dir:      dir,
		log:      log,
		cols:     make(map[string][]store.Document, len(store.Collections)),
		settings: make(map[string]json.RawMessage, 2),
		subs:     make(map[string]map[int]store.SnapshotFunc),
	}
	for _, col := range store.Collections {
		docs, err := s.loadCollection(col)
		if err != nil {
			return nil, err
		}
		s.cols[col] = docs
	}
	for _, key := range []string{store.KeyStoreProfile, store.KeyLowStockThreshold} {
		raw, err := s.loadSetting(key)
		if err != nil {
			return nil, err
		}
		if raw != nil {
			s.settings[key] = raw
		}
	}
	return s, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) loadCollection(col string) ([]store.Document, error) {
	raw, err := afero.ReadFile(s.fs, s.path(col))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer %s: %w", col, err)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parsear %s: %w", col, err)
	}
	docs := make([]store.Document, 0, len(items))
	for _, item := range items {
		var idHolder struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(item, &idHolder); err != nil {
			return nil, fmt.Errorf("parsear documento de %s: %w", col, err)
		}
		docs = append(docs, store.Document{ID: idHolder.ID, Data: item})
	}
	return docs, nil
}

func (s *Store) loadSetting(key string) (json.RawMessage, error) {
	raw, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer setting %s: %w", key, err)
	}
	return raw, nil
}

// persistCollection reserializa la colección completa (sin deltas).
func (s *Store) persistCollection(col string) error {
	items := make([]json.RawMessage, 0, len(s.cols[col]))
	for _, doc := range s.cols[col] {
		items = append(items, doc.Data)
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", col, err)
	}
	if err := afero.WriteFile(s.fs, s.path(col), raw, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", col, err)
	}
	return nil
}

// List lee el snapshot actual de la colección (copia).
func (s *Store) List(_ context.Context, collection string) ([]store.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.cols[collection]), nil
}

// Apply aplica todas las operaciones bajo el mismo lock y persiste cada
// colección tocada antes de devolver el control: el pase es síncrono y
// completo. Los suscriptores reciben los snapshots nuevos ahí mismo.
func (s *Store) Apply(_ context.Context, ws *store.WriteSet) error {
	s.mu.Lock()
	for _, op := range ws.Ops {
		docs := s.cols[op.Collection]
		switch op.Kind {
		case store.OpPut:
			replaced := false
			for i := range docs {
				if docs[i].ID == op.Doc.ID {
					docs[i] = op.Doc
					replaced = true
					break
				}
			}
			if !replaced {
				docs = append(docs, op.Doc)
			}
		case store.OpDelete:
			for i := range docs {
				if docs[i].ID == op.Doc.ID {
					docs = append(docs[:i], docs[i+1:]...)
					break
				}
			}
		}
		s.cols[op.Collection] = docs
	}
	touched := ws.Collections()
	snapshots := make(map[string][]store.Document, len(touched))
	for _, col := range touched {
		if err := s.persistCollection(col); err != nil {
			// El almacenamiento local se asume infalible; si el disco falla
			// igual queda el estado en memoria aplicado completo.
			s.log.Error().Err(err).Str("collection", col).Msg("persistir colección local")
		}
		snapshots[col] = snapshot(s.cols[col])
	}
	s.mu.Unlock()

	for _, col := range touched {
		s.notify(col, snapshots[col])
	}
	return nil
}

// Watch registra fn; recibe snapshots sincrónicamente tras cada mutación.
func (s *Store) Watch(collection string, fn store.SnapshotFunc) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if s.subs[collection] == nil {
		s.subs[collection] = make(map[int]store.SnapshotFunc)
	}
	id := s.nextID
	s.nextID++
	s.subs[collection][id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs[collection], id)
	}
}

func (s *Store) notify(collection string, docs []store.Document) {
	s.subMu.Lock()
	fns := make([]store.SnapshotFunc, 0, len(s.subs[collection]))
	for _, fn := range s.subs[collection] {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(docs)
	}
}

// GetSetting lee un setting; nil si no existe.
func (s *Store) GetSetting(_ context.Context, key string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.settings[key]
	if !ok {
		return nil, nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out, nil
}

// PutSetting escribe un setting. Con merge=true combina con el existente.
func (s *Store) PutSetting(_ context.Context, key string, value json.RawMessage, merge bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if merge {
		if prev, ok := s.settings[key]; ok {
			value = store.MergeJSON(prev, value)
		}
	}
	s.settings[key] = value
	if err := afero.WriteFile(s.fs, s.path(key), value, 0o644); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("persistir setting local")
	}
	return nil
}

// Close descarta las suscripciones. El estado ya está en disco.
func (s *Store) Close() error {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = make(map[string]map[int]store.SnapshotFunc)
	return nil
}

func snapshot(docs []store.Document) []store.Document {
	out := make([]store.Document, len(docs))
	copy(out, docs)
	return out
}
