package state

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jmorales/ventaspro-api/internal/domain/entity"
	"github.com/jmorales/ventaspro-api/internal/domain/store"
)

// StateStore es el estado en memoria de una sesión: los snapshots de cada
// colección que ven las pantallas y contra los que validan las operaciones
// compuestas. Solo muta por los reducers Replace*/Clear; la capa de UI o HTTP
// nunca toca los campos directamente (los accessors devuelven copias).
type StateStore struct {
	mu sync.RWMutex

	products  []entity.Product
	methods   []entity.PaymentMethod
	sales     []entity.Sale
	transfers []entity.Transfer
	suppliers []entity.Supplier
	expenses  []entity.Expense
	customers []entity.Customer

	profile  entity.StoreProfile
	lowStock int64
}

// New crea un estado vacío.
func New() *StateStore {
	return &StateStore{lowStock: 5}
}

// ReplaceDocuments decodifica un snapshot de colección y reemplaza el estado.
// Es el punto de convergencia de las suscripciones Watch de ambos backends.
func (s *StateStore) ReplaceDocuments(collection string, docs []store.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch collection {
	case store.ColProducts:
		return decodeInto(docs, &s.products)
	case store.ColPaymentMethods:
		return decodeInto(docs, &s.methods)
	case store.ColSales:
		return decodeInto(docs, &s.sales)
	case store.ColTransfers:
		return decodeInto(docs, &s.transfers)
	case store.ColSuppliers:
		return decodeInto(docs, &s.suppliers)
	case store.ColExpenses:
		return decodeInto(docs, &s.expenses)
	case store.ColCustomers:
		return decodeInto(docs, &s.customers)
	default:
		return fmt.Errorf("colección desconocida: %s", collection)
	}
}

func decodeInto[T any](docs []store.Document, dst *[]T) error {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := json.Unmarshal(doc.Data, &item); err != nil {
			return fmt.Errorf("decodificar documento %s: %w", doc.ID, err)
		}
		out = append(out, item)
	}
	*dst = out
	return nil
}

// SetProfile reemplaza el perfil del negocio.
func (s *StateStore) SetProfile(p entity.StoreProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
}

// Profile devuelve el perfil actual.
func (s *StateStore) Profile() entity.StoreProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// SetLowStockThreshold fija el umbral de stock bajo.
func (s *StateStore) SetLowStockThreshold(n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lowStock = n
}

// LowStockThreshold devuelve el umbral de stock bajo.
func (s *StateStore) LowStockThreshold() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lowStock
}

// Clear vacía todo el estado. Se invoca al cerrar sesión para que una sesión
// de invitado nueva no herede datos de la identidad anterior.
func (s *StateStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = nil
	s.methods = nil
	s.sales = nil
	s.transfers = nil
	s.suppliers = nil
	s.expenses = nil
	s.customers = nil
	s.profile = entity.StoreProfile{}
	s.lowStock = 5
}

// Products devuelve una copia del catálogo.
func (s *StateStore) Products() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Product, len(s.products))
	copy(out, s.products)
	return out
}

// ProductByID busca un producto por id; nil si no está.
func (s *StateStore) ProductByID(id string) *entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p
		}
	}
	return nil
}

// PaymentMethods devuelve una copia de las cajas.
func (s *StateStore) PaymentMethods() []entity.PaymentMethod {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.PaymentMethod, len(s.methods))
	copy(out, s.methods)
	return out
}

// PaymentMethodByID busca una caja por id; nil si no está.
func (s *StateStore) PaymentMethodByID(id string) *entity.PaymentMethod {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.methods {
		if s.methods[i].ID == id {
			m := s.methods[i]
			return &m
		}
	}
	return nil
}

// Sales devuelve una copia del historial de ventas.
func (s *StateStore) Sales() []entity.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Sale, len(s.sales))
	copy(out, s.sales)
	return out
}

// Transfers devuelve una copia de las transferencias.
func (s *StateStore) Transfers() []entity.Transfer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Transfer, len(s.transfers))
	copy(out, s.transfers)
	return out
}

// Suppliers devuelve una copia de los proveedores.
func (s *StateStore) Suppliers() []entity.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Supplier, len(s.suppliers))
	copy(out, s.suppliers)
	return out
}

// SupplierByID busca un proveedor por id; nil si no está.
func (s *StateStore) SupplierByID(id string) *entity.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.suppliers {
		if s.suppliers[i].ID == id {
			sp := s.suppliers[i]
			return &sp
		}
	}
	return nil
}

// Expenses devuelve una copia de los asientos de proveedores.
func (s *StateStore) Expenses() []entity.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

// Customers devuelve una copia de los clientes.
func (s *StateStore) Customers() []entity.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// CustomerByID busca un cliente por id; nil si no está.
func (s *StateStore) CustomerByID(id string) *entity.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.customers {
		if s.customers[i].ID == id {
			c := s.customers[i]
			return &c
		}
	}
	return nil
}
