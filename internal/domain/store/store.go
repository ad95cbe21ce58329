package store

import (
	"context"
	"encoding/json"
)

// Nombres de colección. Coinciden con las claves del esquema persistido
// local (un array JSON por clave) y con la jerarquía remota
// users/{uid}/{collection}/{docID}.
const (
	ColProducts       = "products"
	ColSales          = "sales"
	ColPaymentMethods = "paymentMethods"
	ColTransfers      = "transfers"
	ColSuppliers      = "suppliers"
	ColExpenses       = "expenses"
	ColCustomers      = "customers"
)

// Claves de settings (documentos sueltos, fuera de las colecciones).
const (
	KeyStoreProfile      = "storeProfile"
	KeyLowStockThreshold = "lowStockThreshold"
)

// Collections lista todas las colecciones de entidades, en el orden en que
// las recorre la migración.
var Collections = []string{
	ColProducts, ColSales, ColPaymentMethods, ColTransfers,
	ColSuppliers, ColExpenses, ColCustomers,
}

// BatchLimit es el máximo de operaciones por lote atómico. El backend remoto
// corta en ~500; se usa 450 para dejar margen.
const BatchLimit = 450

// Document es una entidad serializada. Data incluye el campo "id".
type Document struct {
	ID   string
	Data json.RawMessage
}

// OpKind tipo de operación dentro de un WriteSet.
type OpKind int

const (
	OpPut OpKind = iota
	OpDelete
)

// Op es una operación individual de un WriteSet.
type Op struct {
	Collection string
	Kind       OpKind
	Doc        Document
}

// WriteSet es un conjunto ordenado de escrituras que debe aplicarse como una
// unidad atómica (una venta: alta de Sale + updates de Product + updates de
// PaymentMethod). Si supera BatchLimit se trocea y la atomicidad es por trozo.
type WriteSet struct {
	Ops []Op
}

// Put agrega una escritura de documento.
func (ws *WriteSet) Put(collection string, doc Document) {
	ws.Ops = append(ws.Ops, Op{Collection: collection, Kind: OpPut, Doc: doc})
}

// Delete agrega un borrado por id.
func (ws *WriteSet) Delete(collection, id string) {
	ws.Ops = append(ws.Ops, Op{Collection: collection, Kind: OpDelete, Doc: Document{ID: id}})
}

// Len cantidad de operaciones.
func (ws *WriteSet) Len() int { return len(ws.Ops) }

// Collections devuelve las colecciones tocadas por el write set, sin repetir.
func (ws *WriteSet) Collections() []string {
	seen := make(map[string]bool, 4)
	var cols []string
	for _, op := range ws.Ops {
		if !seen[op.Collection] {
			seen[op.Collection] = true
			cols = append(cols, op.Collection)
		}
	}
	return cols
}

// Chunks parte el write set en trozos de a lo sumo limit operaciones.
func (ws *WriteSet) Chunks(limit int) []*WriteSet {
	if ws.Len() <= limit {
		return []*WriteSet{ws}
	}
	var chunks []*WriteSet
	for start := 0; start < len(ws.Ops); start += limit {
		end := start + limit
		if end > len(ws.Ops) {
			end = len(ws.Ops)
		}
		chunks = append(chunks, &WriteSet{Ops: ws.Ops[start:end]})
	}
	return chunks
}

// SnapshotFunc recibe el snapshot completo de una colección cada vez que algo
// en ella cambia (alta, update o borrado, incluso desde otro dispositivo en
// el backend remoto). El orden es de inserción/llegada, no está ordenado.
type SnapshotFunc func(docs []Document)

// EntityStore es el contrato único de persistencia. Dos implementaciones:
// RemoteEntityStore (documentos en PostgreSQL, sesión autenticada) y
// LocalEntityStore (JSON en disco, sesión invitada). Las operaciones
// compuestas se inyectan con uno u otro y no vuelven a preguntar el modo.
type EntityStore interface {
	// List lee el snapshot actual de una colección.
	List(ctx context.Context, collection string) ([]Document, error)

	// Apply aplica un WriteSet de forma atómica (por trozo de BatchLimit).
	// En el backend remoto ningún estado en memoria debe mutarse hasta que
	// Apply confirme; en el local la aplicación es síncrona y completa.
	Apply(ctx context.Context, ws *WriteSet) error

	// Watch suscribe fn a los cambios de una colección. Devuelve la función
	// para desuscribirse; debe llamarse al cerrar la sesión o cambiar de
	// identidad para no filtrar listeners.
	Watch(collection string, fn SnapshotFunc) (unsubscribe func())

	// GetSetting lee un documento de configuración (storeProfile,
	// lowStockThreshold). Devuelve nil sin error si no existe.
	GetSetting(ctx context.Context, key string) (json.RawMessage, error)

	// PutSetting escribe un setting. Con merge=true los campos nuevos se
	// combinan con los existentes en lugar de pisar el documento completo
	// (lo usa la migración).
	PutSetting(ctx context.Context, key string, value json.RawMessage, merge bool) error

	// Close libera suscripciones y recursos del backend.
	Close() error
}

// NewDocument serializa una entidad como documento. v debe llevar su campo
// "id" en el JSON (los ids se generan del lado del cliente).
func NewDocument(id string, v any) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Document{}, err
	}
	return Document{ID: id, Data: data}, nil
}

// MergeJSON combina dos objetos JSON a un nivel: los campos de b pisan los de
// a, el resto de a se conserva. Si alguno no es objeto, gana b.
func MergeJSON(a, b json.RawMessage) json.RawMessage {
	var ma, mb map[string]json.RawMessage
	if err := json.Unmarshal(a, &ma); err != nil {
		return b
	}
	if err := json.Unmarshal(b, &mb); err != nil {
		return b
	}
	for k, v := range mb {
		ma[k] = v
	}
	out, err := json.Marshal(ma)
	if err != nil {
		return b
	}
	return out
}
