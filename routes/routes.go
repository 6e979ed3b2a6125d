package routes

import (
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/config"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/controllers"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/kafka"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/middleware"
	aws_pkg "github.com/muhammadEhsanUllahdev/MareketNesting-sub003/pkg/aws"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/repository"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterRoutes wires repositories, services and controllers and mounts the
// checkout API under /api.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	redisClient *redis.Client,
	gateway services.PaymentGateway,
	producer kafka.ProducerAPI,
	snsClient aws_pkg.SNSPublisher,
	cfg *config.Config,
	log *zap.Logger,
) {
	cartRepo := repository.NewRedisCartRepository(redisClient, cfg.CartTTL)
	productRepo := repository.NewGormProductRepository(db)
	shippingRepo := repository.NewGormShippingOptionRepository(db)
	paymentRepo := repository.NewGormPaymentRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)

	cartSvc := services.NewCartService(cartRepo, productRepo, log)
	shippingSvc := services.NewShippingService(shippingRepo, log)
	paymentSvc := services.NewPaymentService(gateway, paymentRepo, log)
	orderSvc := services.NewOrderService(orderRepo, paymentRepo, paymentSvc, cartSvc, producer, snsClient, cfg.OrderSNSTopicARN, log)

	sessionStore := services.NewSessionStore()
	flow := services.NewCheckoutFlow(sessionStore, cartSvc, shippingSvc, paymentSvc, orderSvc, cfg.Currency, log)

	cartCtrl := controllers.NewCartController(cartSvc)
	shippingCtrl := controllers.NewShippingController(shippingSvc)
	checkoutCtrl := controllers.NewCheckoutController(flow, paymentSvc, orderSvc, cfg.Currency)
	orderCtrl := controllers.NewOrderController(orderSvc)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		api.GET("/cart", cartCtrl.GetCart)
		api.PATCH("/cart/:product_id", cartCtrl.UpdateQuantity)
		api.DELETE("/cart/:product_id", cartCtrl.RemoveItem)

		api.GET("/shipping/options-by-city", shippingCtrl.OptionsByCity)

		api.POST("/checkout/session", checkoutCtrl.StartSession)
		api.GET("/checkout/session", checkoutCtrl.GetSession)
		api.DELETE("/checkout/session", checkoutCtrl.AbandonSession)
		api.POST("/checkout/address", checkoutCtrl.SubmitAddress)
		api.POST("/checkout/address/edit", checkoutCtrl.EditAddress)
		api.POST("/checkout/shipping", checkoutCtrl.SelectShipping)
		api.POST("/checkout/shipping/retry", checkoutCtrl.RetryShippingOptions)
		api.POST("/checkout/payment", checkoutCtrl.CreatePayment)
		api.POST("/checkout/confirm", checkoutCtrl.Confirm)
		api.POST("/checkout/decline", checkoutCtrl.RecordDecline)

		api.GET("/orders", orderCtrl.GetMyOrders)
		api.GET("/orders/:id", orderCtrl.GetOrderByID)
	}
}
