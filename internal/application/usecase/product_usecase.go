package usecase

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jmorales/ventaspro-api/internal/application/access"
	"github.com/jmorales/ventaspro-api/internal/application/dto"
	"github.com/jmorales/ventaspro-api/internal/application/session"
	"github.com/jmorales/ventaspro-api/internal/domain"
	"github.com/jmorales/ventaspro-api/internal/domain/entity"
	"github.com/jmorales/ventaspro-api/internal/domain/store"
)

// ProductUseCase CRUD del catálogo. El stock solo lo descuentan las ventas;
// acá se edita a mano (correcciones de inventario) junto con el resto de los
// campos.
type ProductUseCase struct{}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase() *ProductUseCase {
	return &ProductUseCase{}
}

// List devuelve el catálogo, filtrado por búsqueda si query no es vacío.
// La búsqueda ignora mayúsculas y tildes ("lacteo" encuentra "Lácteo") y
// también matchea por código de barras exacto.
func (uc *ProductUseCase) List(s *session.Session, query string) []entity.Product {
	products := s.State().Products()
	if query == "" {
		return products
	}
	q := normalize(query)
	var out []entity.Product
	for _, p := range products {
		if p.Barcode != "" && p.Barcode == query {
			out = append(out, p)
			continue
		}
		if strings.Contains(normalize(p.Name), q) || strings.Contains(normalize(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

// normalize pasa a minúsculas y remueve marcas diacríticas (NFD + strip Mn).
func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Create da de alta un producto. Rol sin permiso: sin efecto.
func (uc *ProductUseCase) Create(ctx context.Context, s *session.Session, in dto.CreateProductRequest) (*entity.Product, error) {
	if !access.Allowed(s.Role(), access.PermManageCatalog) {
		return nil, nil
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	p := entity.Product{
		ID:              uuid.New().String(),
		Name:            in.Name,
		CostPrice:       in.CostPrice,
		SellingPrice:    in.SellingPrice,
		Stock:           in.Stock,
		Category:        in.Category,
		Barcode:         in.Barcode,
		IsVariablePrice: in.IsVariablePrice,
	}
	if err := putOne(ctx, s, store.ColProducts, p.ID, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update edita un producto existente (edición parcial).
func (uc *ProductUseCase) Update(ctx context.Context, s *session.Session, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	if !access.Allowed(s.Role(), access.PermManageCatalog) {
		return nil, nil
	}
	p := s.State().ProductByID(id)
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.CostPrice != nil {
		p.CostPrice = *in.CostPrice
	}
	if in.SellingPrice != nil {
		p.SellingPrice = *in.SellingPrice
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Barcode != nil {
		p.Barcode = *in.Barcode
	}
	if in.IsVariablePrice != nil {
		p.IsVariablePrice = *in.IsVariablePrice
	}
	if err := putOne(ctx, s, store.ColProducts, p.ID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete borra un producto (borrado real, sin soft-delete).
func (uc *ProductUseCase) Delete(ctx context.Context, s *session.Session, id string) error {
	if !access.Allowed(s.Role(), access.PermManageCatalog) {
		return nil
	}
	if s.State().ProductByID(id) == nil {
		return domain.ErrNotFound
	}
	return deleteOne(ctx, s, store.ColProducts, id)
}

// putOne persiste un documento suelto y refresca el estado de la colección.
func putOne(ctx context.Context, s *session.Session, collection, id string, v any) error {
	doc, err := store.NewDocument(id, v)
	if err != nil {
		return err
	}
	ws := &store.WriteSet{}
	ws.Put(collection, doc)
	return s.ApplyAndRefresh(ctx, ws)
}

// deleteOne borra un documento suelto y refresca el estado de la colección.
func deleteOne(ctx context.Context, s *session.Session, collection, id string) error {
	ws := &store.WriteSet{}
	ws.Delete(collection, id)
	return s.ApplyAndRefresh(ctx, ws)
}
