package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vladpolisuk/sport-shop-client/clients"
	"github.com/vladpolisuk/sport-shop-client/controllers"
	"github.com/vladpolisuk/sport-shop-client/middleware"
	"github.com/vladpolisuk/sport-shop-client/services"
)

// Register wires every storefront and admin route onto the router.
func Register(
	r *gin.Engine,
	backend *clients.BackendClient,
	session *services.SessionService,
	carts *services.CartService,
	checkout *services.CheckoutService,
) {
	authController := controllers.NewAuthController(session)
	catalogController := controllers.NewCatalogController(backend)
	cartController := controllers.NewCartController(carts, backend)
	checkoutController := controllers.NewCheckoutController(checkout, backend)
	ordersController := controllers.NewOrdersController(backend)
	adminController := controllers.NewAdminController(backend)

	// Public routes
	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/register", authController.Register)
		auth.GET("/check", authController.Check)
		auth.POST("/logout", authController.Logout)
	}

	catalog := r.Group("/catalog")
	{
		catalog.GET("", catalogController.List)
		catalog.GET("/categories", catalogController.Categories)
		catalog.GET("/:id", catalogController.Get)
	}

	// Session-scoped routes
	cart := r.Group("/cart")
	cart.Use(middleware.SessionRequired(session))
	{
		cart.GET("", cartController.Get)
		cart.POST("/add", cartController.Add)
		cart.PUT("/items/:product_id", cartController.SetQuantity)
		cart.DELETE("/remove/:product_id", cartController.Remove)
		cart.DELETE("/clear", cartController.Clear)
	}

	co := r.Group("/checkout")
	co.Use(middleware.SessionRequired(session))
	{
		co.GET("", checkoutController.View)
		co.POST("/begin", checkoutController.Begin)
		co.GET("/options", checkoutController.Options)
		co.POST("/delivery", checkoutController.SelectDelivery)
		co.POST("/payment", checkoutController.SelectPayment)
		co.POST("/submit", checkoutController.Submit)
		co.GET("/delivery/available", checkoutController.AvailableDelivery)
	}

	orders := r.Group("/orders")
	orders.Use(middleware.SessionRequired(session))
	{
		orders.GET("/my", ordersController.My)
		orders.GET("/:id", ordersController.Get)
		orders.POST("/:id/pay", ordersController.Pay)
	}

	// Admin console
	admin := r.Group("/admin")
	admin.Use(middleware.SessionRequired(session), middleware.AdminRequired(session))
	{
		admin.GET("/products", adminController.ListProducts)
		admin.POST("/products", adminController.CreateProduct)
		admin.PUT("/products/:id", adminController.UpdateProduct)
		admin.DELETE("/products/:id", adminController.DeleteProduct)

		admin.GET("/customers", adminController.ListCustomers)
		admin.GET("/customers/:id", adminController.GetCustomer)
		admin.POST("/customers", adminController.CreateCustomer)
		admin.PUT("/customers/:id", adminController.UpdateCustomer)
		admin.DELETE("/customers/:id", adminController.DeleteCustomer)

		admin.GET("/orders", adminController.ListOrders)
		admin.GET("/orders/:id", adminController.GetOrder)
		admin.PUT("/orders/:id", adminController.UpdateOrder)
		admin.DELETE("/orders/:id", adminController.DeleteOrder)

		admin.POST("/delivery/calculate", adminController.CalculateDelivery)
	}
}
