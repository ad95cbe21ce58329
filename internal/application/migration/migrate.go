package migration

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jmorales/ventaspro-api/internal/domain/store"
	"github.com/jmorales/ventaspro-api/pkg/logger"
)

// Result resumen de la migración local -> remoto.
type Result struct {
	Documents int `json:"documents"`
	Batches   int `json:"batches"`
}

// UseCase copia todo lo persistido localmente al almacén remoto de la
// identidad que inició sesión. Disparado por el usuario, una pasada:
//   - cada documento local se recrea remoto con id nuevo, en lotes acotados;
//   - los settings (perfil, umbral de stock) se combinan (merge) con los
//     remotos en vez de pisarlos;
//   - no borra los datos locales ni marca la migración como hecha, así que
//     ejecutarla de nuevo duplica las entidades remotas con ids nuevos.
type UseCase struct {
	log *logger.Logger
}

// New construye el caso de uso.
func New(log *logger.Logger) *UseCase {
	return &UseCase{log: log}
}

// Execute migra de local a remote.
func (uc *UseCase) Execute(ctx context.Context, local, remote store.EntityStore) (*Result, error) {
	ws := &store.WriteSet{}
	for _, col := range store.Collections {
		docs, err := local.List(ctx, col)
		if err != nil {
			return nil, fmt.Errorf("leer %s local: %w", col, err)
		}
		for _, doc := range docs {
			newID := uuid.New().String()
			data, err := rewriteID(doc.Data, newID)
			if err != nil {
				return nil, fmt.Errorf("reescribir id en %s: %w", col, err)
			}
			ws.Put(col, store.Document{ID: newID, Data: data})
		}
	}

	var result Result
	for _, chunk := range ws.Chunks(store.BatchLimit) {
		if err := remote.Apply(ctx, chunk); err != nil {
			return nil, fmt.Errorf("migración falló con %d documentos ya copiados: %w", result.Documents, err)
		}
		result.Batches++
		result.Documents += chunk.Len()
	}

	for _, key := range []string{store.KeyStoreProfile, store.KeyLowStockThreshold} {
		raw, err := local.GetSetting(ctx, key)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			continue
		}
		if err := remote.PutSetting(ctx, key, raw, true); err != nil {
			return nil, err
		}
	}

	uc.log.Info().Int("documents", result.Documents).Int("batches", result.Batches).Msg("migración local a remoto completada")
	return &result, nil
}

// rewriteID reemplaza el campo "id" del documento por el id nuevo.
func rewriteID(data json.RawMessage, id string) (json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	idRaw, err := json.Marshal(id)
	if err != nil {
		return nil, err
	}
	m["id"] = idRaw
	return json.Marshal(m)
}
