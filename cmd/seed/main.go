// seed carga un catálogo de demostración y las cajas básicas en el backend
// local (modo invitado). Útil para probar la app sin cuenta.
//
// Uso: go run ./cmd/seed [directorio de datos]
// Por defecto usa STORE_DATA_DIR (./data).
package main

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"

	"github.com/jmorales/ventaspro-api/internal/domain/entity"
	"github.com/jmorales/ventaspro-api/internal/domain/store"
	"github.com/jmorales/ventaspro-api/internal/infrastructure/localstore"
	"github.com/jmorales/ventaspro-api/pkg/config"
	"github.com/jmorales/ventaspro-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	dataDir := cfg.Store.DataDir
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	st, err := localstore.Open(afero.NewOsFs(), dataDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir backend local")
	}
	defer st.Close()

	ws := &store.WriteSet{}
	for _, p := range demoProducts() {
		doc, err := store.NewDocument(p.ID, p)
		if err != nil {
			log.Fatal().Err(err).Msg("serializar producto")
		}
		ws.Put(store.ColProducts, doc)
	}
	for _, m := range demoMethods() {
		doc, err := store.NewDocument(m.ID, m)
		if err != nil {
			log.Fatal().Err(err).Msg("serializar caja")
		}
		ws.Put(store.ColPaymentMethods, doc)
	}

	if err := st.Apply(context.Background(), ws); err != nil {
		log.Fatal().Err(err).Msg("aplicar datos de demo")
	}
	log.Info().Str("dir", dataDir).Int("documentos", ws.Len()).Msg("datos de demo cargados")
}

func demoProducts() []entity.Product {
	price := func(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }
	return []entity.Product{
		{ID: uuid.New().String(), Name: "Coca Cola 500ml", CostPrice: price(500), SellingPrice: price(1000), Stock: 48, Category: "Bebidas", Barcode: "7790895000997"},
		{ID: uuid.New().String(), Name: "Agua Mineral 1.5L", CostPrice: price(300), SellingPrice: price(700), Stock: 36, Category: "Bebidas"},
		{ID: uuid.New().String(), Name: "Pan Lactal", CostPrice: price(900), SellingPrice: price(1600), Stock: 20, Category: "Panadería"},
		{ID: uuid.New().String(), Name: "Yerba Mate 1kg", CostPrice: price(2800), SellingPrice: price(4500), Stock: 15, Category: "Almacén", Barcode: "7790387014303"},
		{ID: uuid.New().String(), Name: "Queso Cremoso", CostPrice: price(4000), SellingPrice: decimal.Zero, Stock: 0, Category: "Fiambrería", IsVariablePrice: true},
		{ID: uuid.New().String(), Name: "Jamón Cocido", CostPrice: price(6000), SellingPrice: decimal.Zero, Stock: 0, Category: "Fiambrería", IsVariablePrice: true},
	}
}

func demoMethods() []entity.PaymentMethod {
	return []entity.PaymentMethod{
		{ID: uuid.New().String(), Name: "Efectivo", Type: entity.MethodTypeCash, Balance: decimal.Zero},
		{ID: uuid.New().String(), Name: "Tarjeta Débito", Type: entity.MethodTypeCard, Balance: decimal.Zero},
		{ID: uuid.New().String(), Name: "Mercado Pago", Type: entity.MethodTypeDigital, Balance: decimal.Zero},
	}
}
