package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-app/controllers"
	"github.com/yeremiapane/pos-app/database"
	"github.com/yeremiapane/pos-app/middlewares"
	"github.com/yeremiapane/pos-app/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi service layer
	repo := database.NewOrderRepository()
	sessions := services.NewSessionManager()
	checkout := services.NewCheckoutService(db, repo)
	dashboard := services.NewDashboardService(db, repo)

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	productCtrl := controllers.NewProductController(db)
	sessionCtrl := controllers.NewSessionController(db, sessions, checkout, repo)
	orderCtrl := controllers.NewOrderController(db)
	paymentCtrl := controllers.NewPaymentController(db, checkout)
	dashboardCtrl := controllers.NewDashboardController(dashboard)
	receiptCtrl := controllers.NewReceiptController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Katalog bisa dilihat tanpa login
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/products", productCtrl.GetAllProducts)
	r.GET("/products/:product_id", productCtrl.GetProductByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)

	// CHECKOUT SESSIONS (kasir)
	auth.POST("/sessions", sessionCtrl.CreateSession)
	auth.GET("/sessions/:session_id", sessionCtrl.GetSession)
	auth.DELETE("/sessions/:session_id", sessionCtrl.DeleteSession)
	auth.PATCH("/sessions/:session_id/client", sessionCtrl.SetClient)
	auth.POST("/sessions/:session_id/items", sessionCtrl.AddItem)
	auth.POST("/sessions/:session_id/items/:product_id/increment", sessionCtrl.IncrementItem)
	auth.POST("/sessions/:session_id/items/:product_id/decrement", sessionCtrl.DecrementItem)
	auth.DELETE("/sessions/:session_id/items/:product_id", sessionCtrl.RemoveItem)
	auth.POST("/sessions/:session_id/load/:order_id", sessionCtrl.LoadOrder)
	auth.POST("/sessions/:session_id/save-open", sessionCtrl.SaveOpen)
	auth.POST("/sessions/:session_id/checkout", sessionCtrl.CheckoutSession)

	// ORDERS (kasir)
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)

	// PAYMENTS (kasir)
	auth.GET("/payments", paymentCtrl.GetAllPayments)
	auth.GET("/payments/:payment_id", paymentCtrl.GetPaymentByID)
	auth.GET("/orders/:order_id/change-preview", paymentCtrl.PreviewChange)

	// Konfirmasi pembayaran dibatasi rate dan dicatat
	confirmGroup := auth.Group("/orders")
	confirmGroup.Use(middlewares.PaymentRateLimiter(), middlewares.LogPaymentRequest())
	{
		confirmGroup.POST("/:order_id/pay", paymentCtrl.ConfirmPayment)
	}

	// RECEIPTS (kasir)
	auth.POST("/payments/:payment_id/receipt", receiptCtrl.GenerateReceipt)
	auth.GET("/receipts", receiptCtrl.GetAllReceipts)
	auth.GET("/receipts/:receipt_id", receiptCtrl.GetReceiptByID)

	// DASHBOARD (kasir)
	auth.GET("/dashboard", dashboardCtrl.GetDashboard)

	// KATALOG mutasi (admin saja)
	admin := auth.Group("/")
	admin.Use(middlewares.RequireAdmin())
	{
		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.GET("/categories/:cat_id", categoryCtrl.GetCategoryByID)
		admin.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		admin.POST("/products", productCtrl.CreateProduct)
		admin.PATCH("/products/:product_id", productCtrl.UpdateProduct)
		admin.DELETE("/products/:product_id", productCtrl.DeleteProduct)
	}

	// WebSocket endpoint dengan middleware khusus
	wsGroup := r.Group("/events")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/ws", controllers.EventsHandler)
	}

	return r
}
