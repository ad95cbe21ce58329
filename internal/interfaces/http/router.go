package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmorales/ventaspro-api/internal/application/auth"
	"github.com/jmorales/ventaspro-api/internal/application/migration"
	"github.com/jmorales/ventaspro-api/internal/application/sales"
	"github.com/jmorales/ventaspro-api/internal/application/session"
	"github.com/jmorales/ventaspro-api/internal/application/treasury"
	"github.com/jmorales/ventaspro-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Manager        *session.Manager
	AuthUC         *auth.AuthUseCase
	ProductUC      *usecase.ProductUseCase
	ImportUC       *sales.ImportProductsUseCase
	CompleteSaleUC *sales.CompleteSaleUseCase
	CustomerPayUC  *sales.CustomerPaymentUseCase
	MethodUC       *usecase.PaymentMethodUseCase
	TransferUC     *treasury.TransferUseCase
	ExpenseUC      *treasury.AddExpenseUseCase
	SupplierUC     *usecase.SupplierUseCase
	CustomerUC     *usecase.CustomerUseCase
	SettingsUC     *usecase.SettingsUseCase
	ReportUC       *usecase.ReportUseCase
	AIUC           *usecase.AIUseCase
	MigrationUC    *migration.UseCase
	JWTSecret      string
}

// Router registra las rutas de la API. Todas las rutas de negocio pasan por
// SessionMiddleware: con token operan sobre la cuenta remota, sin token sobre
// el backend local en modo invitado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Manager)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Resto de la API: sesión invitado o remota según el token.
	app.Use("/api", SessionMiddleware(deps.Manager, deps.JWTSecret))

	authGroup.Post("/logout", RequireAuth(), authHandler.Logout)

	// Catálogo
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.ImportUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Post("/import", productHandler.Import)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Ventas
	saleHandler := NewSaleHandler(deps.CompleteSaleUC, deps.CustomerPayUC)
	salesGroup := api.Group("/sales")
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", saleHandler.Complete)

	// Tesorería
	treasuryHandler := NewTreasuryHandler(deps.MethodUC, deps.TransferUC, deps.ExpenseUC)
	methods := api.Group("/payment-methods")
	methods.Get("/", treasuryHandler.ListMethods)
	methods.Post("/", treasuryHandler.CreateMethod)
	methods.Put("/:id", treasuryHandler.UpdateMethod)
	methods.Delete("/:id", treasuryHandler.DeleteMethod)
	transfers := api.Group("/transfers")
	transfers.Get("/", treasuryHandler.ListTransfers)
	transfers.Post("/", treasuryHandler.Transfer)
	expenses := api.Group("/expenses")
	expenses.Get("/", treasuryHandler.ListExpenses)
	expenses.Post("/", treasuryHandler.AddExpense)

	// Proveedores y clientes
	partnerHandler := NewPartnerHandler(deps.SupplierUC, deps.CustomerUC)
	suppliers := api.Group("/suppliers")
	suppliers.Get("/", partnerHandler.ListSuppliers)
	suppliers.Post("/", partnerHandler.CreateSupplier)
	suppliers.Delete("/:id", partnerHandler.DeleteSupplier)
	customers := api.Group("/customers")
	customers.Get("/", partnerHandler.ListCustomers)
	customers.Post("/", partnerHandler.CreateCustomer)
	customers.Post("/payments", saleHandler.CustomerPayment)
	customers.Delete("/:id", partnerHandler.DeleteCustomer)

	// Configuración y modo vendedor
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings := api.Group("/settings")
	settings.Get("/profile", settingsHandler.GetProfile)
	settings.Put("/profile", settingsHandler.SaveProfile)
	settings.Get("/role", settingsHandler.GetRole)
	settings.Post("/role/seller", settingsHandler.EnterSellerMode)
	settings.Post("/role/elevate", settingsHandler.Elevate)
	settings.Get("/low-stock-threshold", settingsHandler.GetThreshold)
	settings.Put("/low-stock-threshold", settingsHandler.SaveThreshold)

	// Reportes e IA
	reportHandler := NewReportHandler(deps.ReportUC, deps.AIUC)
	reports := api.Group("/reports")
	reports.Get("/", reportHandler.Build)
	reports.Get("/insights", reportHandler.Insights)

	// Migración local → remoto (requiere cuenta)
	migrationHandler := NewMigrationHandler(deps.MigrationUC, deps.Manager)
	api.Post("/migrate", RequireAuth(), migrationHandler.Migrate)
}
