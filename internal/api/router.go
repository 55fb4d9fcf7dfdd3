package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dondigital/storefront/internal/models"
	"github.com/dondigital/storefront/internal/services"
)

// ClickEventsChannel is the global channel carrying click events from the
// track-click handler to the worker pool. Click persistence is asynchronous
// so that tracking can never block or fail the storefront.
var ClickEventsChannel chan models.ClickEvent

// Services bundles the dependencies injected into the handlers.
type Services struct {
	Affiliators *services.AffiliatorService
	Comments    *services.CommentService
	Products    *services.ProductService
	Referrals   *services.ReferralService
	Statistics  *services.StatisticsService
}

// SetupRoutes configures all Gin API routes and injects the services.
func SetupRoutes(router *gin.Engine, svcs Services, bufferSize int) {
	if ClickEventsChannel == nil {
		ClickEventsChannel = make(chan models.ClickEvent, bufferSize)
	}

	router.Use(CORSMiddleware(), RequestIDMiddleware())

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	router.GET("/health", HealthCheckHandler)

	api := router.Group("/api/v1")
	{
		api.GET("/affiliators", ListAffiliatorsHandler(svcs.Affiliators))
		api.POST("/affiliators", CreateAffiliatorHandler(svcs.Affiliators))
		api.PUT("/affiliators", UpdateAffiliatorHandler(svcs.Affiliators))
		api.DELETE("/affiliators", DeleteAffiliatorHandler(svcs.Affiliators))

		api.GET("/comments", ListCommentsHandler(svcs.Comments))
		api.POST("/comments", CreateCommentHandler(svcs.Comments))
		api.DELETE("/comments", DeleteCommentHandler(svcs.Comments))

		api.GET("/products", ListProductsHandler(svcs.Products))
		api.POST("/products", CreateProductHandler(svcs.Products))
		api.PUT("/products", UpdateProductHandler(svcs.Products))
		api.PATCH("/products", UpdateProductSalesHandler(svcs.Products))
		api.DELETE("/products", DeleteProductHandler(svcs.Products))

		api.GET("/statistics", GetStatisticsHandler(svcs.Statistics))
		api.PUT("/statistics", UpdateStatisticsHandler(svcs.Statistics))

		referrals := api.Group("/referrals")
		{
			referrals.POST("/track-click", TrackClickHandler(svcs.Referrals))
			referrals.POST("/track-conversion", TrackConversionHandler(svcs.Referrals))
			referrals.GET("/validate", ValidateReferralHandler(svcs.Referrals))
			referrals.GET("/facebook", GetFacebookProfileHandler(svcs.Referrals))
		}
	}
}

// HealthCheckHandler handles the /health route to verify service status.
func HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
