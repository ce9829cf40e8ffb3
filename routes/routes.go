package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mohammedmirzada/order-tracking/configs"
	"github.com/mohammedmirzada/order-tracking/controllers"
	"github.com/mohammedmirzada/order-tracking/middlewares"
	"github.com/mohammedmirzada/order-tracking/repository"
	"github.com/mohammedmirzada/order-tracking/services"
	"github.com/mohammedmirzada/order-tracking/ws"
)

// RegisterRoutes wires repositories, services and controllers onto r.
// hub may be nil, in which case mutations are not broadcast.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.EventHub) {
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middlewares.NoStore())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	forwarderRepo := repository.NewForwarderRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	docRepo := repository.NewDocumentRepository(db)

	// Services
	userSvc := services.NewUserService(userRepo)
	authSvc := services.NewAuthService(userSvc, cfg.JWTSecret, cfg.JWTTTL)
	docSvc := services.NewDocumentService(docRepo, invoiceRepo, cfg.UploadDir, cfg.UploadMaxBytes)

	var events controllers.EventPublisher
	if hub != nil {
		events = hub
	}

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	supplierCtrl := controllers.NewSupplierController(services.NewSupplierService(supplierRepo), events)
	forwarderCtrl := controllers.NewForwarderController(services.NewForwarderService(forwarderRepo), events)
	orderCtrl := controllers.NewOrderController(services.NewOrderService(orderRepo), events)
	invoiceCtrl := controllers.NewInvoiceController(services.NewInvoiceService(invoiceRepo), docSvc, events)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", auth, authCtrl.Me)
	}

	suppliers := r.Group("/suppliers", auth)
	{
		suppliers.GET("", supplierCtrl.List)
		suppliers.POST("", supplierCtrl.Create)
		suppliers.GET("/:id", supplierCtrl.Detail)
		suppliers.PATCH("/:id", supplierCtrl.Update)
		suppliers.DELETE("/:id", supplierCtrl.Delete)
	}

	forwarders := r.Group("/forwarders", auth)
	{
		forwarders.GET("", forwarderCtrl.List)
		forwarders.POST("", forwarderCtrl.Create)
		forwarders.GET("/:id", forwarderCtrl.Detail)
		forwarders.PATCH("/:id", forwarderCtrl.Update)
		forwarders.DELETE("/:id", forwarderCtrl.Delete)
	}

	orders := r.Group("/orders", auth)
	{
		orders.GET("", orderCtrl.List)
		orders.POST("", orderCtrl.Create)
		orders.GET("/:id", orderCtrl.Detail)
		orders.PATCH("/:id", orderCtrl.Update)
		orders.DELETE("/:id", orderCtrl.Delete)
	}

	invoices := r.Group("/invoices", auth)
	{
		invoices.GET("", invoiceCtrl.List)
		invoices.POST("", invoiceCtrl.Create)
		invoices.GET("/:id", invoiceCtrl.Detail)
		invoices.PATCH("/:id", invoiceCtrl.Update)
		invoices.DELETE("/:id", invoiceCtrl.Delete)
		invoices.POST("/:id/documents", invoiceCtrl.UploadDocument)
		invoices.DELETE("/:id/documents/:documentId", invoiceCtrl.DeleteDocument)
	}

	// Stored invoice documents
	r.Group("/uploads", auth).Static("/", cfg.UploadDir)

	if hub != nil {
		r.GET("/ws/events", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)
	}
}
