package handler

import (
	"maitri-medico/internal/middleware"
	"maitri-medico/internal/model"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything mounted under /api/v1.
type Handlers struct {
	Product   *ProductHandler
	Request   *RequestHandler
	Cart      *CartHandler
	Auth      *AuthHandler
	User      *UserHandler
	Dashboard *DashboardHandler
	Role      *RoleHandler
}

// NewApp builds the fiber app with the JSON error envelope. bodyLimit must
// leave room for the largest allowed image upload.
func NewApp(appName string, bodyLimit int) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      appName,
		BodyLimit:    bodyLimit,
		ErrorHandler: ErrorHandler,
	})
}

// SetupRoutes mounts the API. requireAuth is middleware.RequireAuth.
func SetupRoutes(app *fiber.App, h Handlers, requireAuth fiber.Handler) {
	api := app.Group("/api/v1")
	priv := middleware.RequirePrivilege

	// ============ PUBLIC ROUTES ============
	api.Get("/products", h.Product.GetProducts)
	api.Get("/products/category/:category", h.Product.GetProductsByCategory)
	api.Get("/products/:id", h.Product.GetProduct)

	cart := api.Group("/cart")
	cart.Get("/new", h.Cart.NewCart)
	cart.Post("/", h.Cart.AddItem)
	cart.Get("/:cartId", h.Cart.GetCart)
	cart.Delete("/:cartId/:productId", h.Cart.RemoveItem)
	cart.Post("/:cartId/checkout", h.Cart.Checkout)

	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Get("/me", requireAuth, h.Auth.Me)
	auth.Post("/change-password", requireAuth, h.Auth.ChangePassword)

	// ============ ADMIN ROUTES ============
	admin := api.Group("/admin", requireAuth)
	admin.Post("/requests", priv(model.PrivRequestSubmit), h.Request.Submit)
	admin.Get("/requests", priv(model.PrivRequestView), h.Request.List)
	admin.Get("/requests/:id", priv(model.PrivRequestView), h.Request.Get)
	admin.Post("/requests/:id/cancel", priv(model.PrivRequestCancel), h.Request.Cancel)

	// aliases used by the admin view
	admin.Post("/request/add", priv(model.PrivRequestSubmit), h.Request.SubmitAdd)
	admin.Post("/request/update/:id", priv(model.PrivRequestSubmit), h.Request.SubmitUpdate)
	admin.Post("/request/delete/:id", priv(model.PrivRequestSubmit), h.Request.SubmitDelete)
	admin.Post("/request/cancel/:id", priv(model.PrivRequestCancel), h.Request.Cancel)

	// ============ SUPER-ADMIN ROUTES ============
	super := api.Group("/superadmin", requireAuth)
	super.Get("/requests", priv(model.PrivRequestDecide), h.Request.List)
	super.Post("/requests/:id/approve", priv(model.PrivRequestDecide), h.Request.Approve)
	super.Post("/requests/:id/reject", priv(model.PrivRequestDecide), h.Request.Reject)

	super.Get("/products", priv(model.PrivProductManage), h.Product.GetProducts)
	super.Post("/products", priv(model.PrivProductManage), h.Product.CreateProduct)
	super.Put("/products/:id", priv(model.PrivProductManage), h.Product.UpdateProduct)
	super.Delete("/products/:id", priv(model.PrivProductManage), h.Product.DeleteProduct)

	super.Get("/stats", priv(model.PrivDashboardView), h.Dashboard.GetDashboardStats)

	super.Get("/users", priv(model.PrivUserManage), h.User.GetUsers)
	super.Post("/users", priv(model.PrivUserManage), h.User.CreateUser)
	super.Delete("/users/:id", priv(model.PrivUserManage), h.User.DeleteUser)
	super.Get("/roles", priv(model.PrivUserManage), h.Role.GetRoles)
}
