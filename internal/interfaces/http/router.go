package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-backoffice/internal/application/auth"
	"github.com/jhoicas/tienda-backoffice/internal/application/usecase"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	ClientUC  *usecase.ClientUseCase
	ProductUC *usecase.ProductUseCase
	OrderUC   *usecase.OrderUseCase
	SaleUC    *usecase.SaleUseCase
	Users     repository.UserRepository
	JWTSecret string
}

// Router registra las rutas de la API. Cada ruta protegida exige la capacidad
// del catálogo que le corresponde; el middleware de permisos va siempre detrás
// del de autenticación, que carga el usuario normalizado por request.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token; el usuario se carga de la DB)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Users))

	// Catálogo de permisos (cualquier usuario autenticado)
	permissionHandler := NewPermissionHandler()
	protected.Get("/permissions/catalog", permissionHandler.Catalog)

	// Users
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", RequirePermission("users.view"), userHandler.List)
	users.Post("/", RequirePermission("users.create"), userHandler.Create)
	users.Get("/:id", RequirePermission("users.view"), userHandler.GetByID)
	users.Put("/:id", RequirePermission("users.edit"), userHandler.Update)
	users.Delete("/:id", RequirePermission("users.delete"), userHandler.Delete)

	// Clients
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", RequirePermission("clients.view"), clientHandler.List)
	clients.Post("/", RequirePermission("clients.create"), clientHandler.Create)
	clients.Get("/:id", RequirePermission("clients.view"), clientHandler.GetByID)
	clients.Put("/:id", RequirePermission("clients.edit"), clientHandler.Update)
	clients.Delete("/:id", RequirePermission("clients.delete"), clientHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", RequirePermission("products.view"), productHandler.List)
	products.Post("/", RequirePermission("products.create"), productHandler.Create)
	products.Get("/:id", RequirePermission("products.view"), productHandler.GetByID)
	products.Put("/:id", RequirePermission("products.edit"), productHandler.Update)
	products.Delete("/:id", RequirePermission("products.delete"), productHandler.Delete)

	// Orders
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Get("/", RequirePermission("orders.view"), orderHandler.List)
	orders.Post("/", RequirePermission("orders.create"), orderHandler.Create)
	orders.Get("/:id", RequirePermission("orders.view"), orderHandler.GetByID)
	// marcar entregado viaja por el mismo PATCH que el resto de campos;
	// basta orders.edit o orders.markDelivered
	orders.Patch("/:id", RequireAnyPermission("orders.edit", "orders.markDelivered"), orderHandler.Patch)
	orders.Delete("/:id", RequirePermission("orders.delete"), orderHandler.Delete)

	// Sales (vista sobre pedidos entregados)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Get("/", RequirePermission("sales.view"), saleHandler.List)
	sales.Post("/:id/toggle-paid", RequirePermission("sales.togglePaid"), saleHandler.TogglePaid)
	sales.Post("/:id/toggle-invoice", RequirePermission("sales.toggleInvoice"), saleHandler.ToggleInvoiceSent)
}
