package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petverde/green-pos/internal/application/auth"
	"github.com/petverde/green-pos/internal/application/billing"
	"github.com/petverde/green-pos/internal/application/catalog"
	"github.com/petverde/green-pos/internal/application/ledger"
	"github.com/petverde/green-pos/internal/application/reporting"
	"github.com/petverde/green-pos/internal/application/scheduling"
	"github.com/petverde/green-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *catalog.UseCase
	LedgerUC      *ledger.UseCase
	KardexUC      *reporting.KardexUseCase
	CustomerUC    *billing.CustomerUseCase
	DocumentUC    *billing.DocumentUseCase
	SettlementUC  *billing.SettlementUseCase
	PDFUC         *billing.PDFUseCase
	SettingUC     *billing.SettingUseCase
	AppointmentUC *scheduling.UseCase
	ServiceTypeUC *scheduling.ServiceTypeUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.KardexUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)
	products.Get("/:id/kardex", productHandler.Kardex)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Post("/counts", inventoryHandler.RegisterCount)
	invGroup.Get("/products/:product_id/movements", inventoryHandler.History)
	invGroup.Get("/products/:product_id/verify", inventoryHandler.Verify)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.DocumentUC, deps.SettlementUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Get("/:id/documents", customerHandler.ListDocuments)
	customers.Post("/:id/credit/apply", customerHandler.ApplyCredit)

	// Documents: facturas y notas crédito (protegido)
	documents := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.DocumentUC, deps.PDFUC)
	documents.Post("/invoices", documentHandler.CreateInvoice)
	documents.Post("/invoices/:id/credit-notes", documentHandler.CreateCreditNote)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Patch("/:id", documentHandler.Edit)
	documents.Delete("/:id", adminOnly, documentHandler.Delete)
	documents.Post("/:id/validate", documentHandler.Validate)
	documents.Get("/:id/pdf", documentHandler.DownloadPDF)

	// Appointments: citas de grooming (protegido)
	appointments := protected.Group("/appointments")
	appointmentHandler := NewAppointmentHandler(deps.AppointmentUC)
	appointments.Post("/", appointmentHandler.Create)
	appointments.Get("/", appointmentHandler.List)
	appointments.Get("/:id", appointmentHandler.GetByID)
	appointments.Post("/:id/services", appointmentHandler.AddService)
	appointments.Patch("/:id/services/:line_id/status", appointmentHandler.UpdateServiceStatus)
	appointments.Post("/:id/finish", appointmentHandler.Finish)
	appointments.Post("/:id/cancel", appointmentHandler.Cancel)

	// Service types (protegido; escritura solo admin)
	serviceTypes := protected.Group("/service-types")
	serviceTypeHandler := NewServiceTypeHandler(deps.ServiceTypeUC)
	serviceTypes.Get("/", serviceTypeHandler.List)
	serviceTypes.Post("/", adminOnly, serviceTypeHandler.Create)
	serviceTypes.Put("/:code", adminOnly, serviceTypeHandler.Update)

	// Settings (protegido; escritura solo admin)
	settings := protected.Group("/settings")
	settingHandler := NewSettingHandler(deps.SettingUC)
	settings.Get("/", settingHandler.Get)
	settings.Put("/", adminOnly, settingHandler.Update)
}
