package server

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// buildRouter wires routes for the API. CORS is wide open: the browser
// storefront is served from a different origin during development.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/products", listProductsHandler(logger, deps.ProductRepo))

	api := router.Group("/api")
	api.POST("/purchase", purchaseHandler(logger, deps.OrderRepo))
	api.POST("/products/:id/reviews", addReviewHandler(logger, deps.ProductRepo))

	return router
}
