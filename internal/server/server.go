// Package server implements the retail backend the storefront talks to:
// the product catalog feed, the purchase endpoint with authoritative stock
// decrement, and the review endpoint.
package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	orderrepo "github.com/keons0101/retail-dashboard-app/internal/repository/order"
	productrepo "github.com/keons0101/retail-dashboard-app/internal/repository/product"
)

// Deps are the repositories the handlers run against.
type Deps struct {
	ProductRepo productrepo.Repository
	OrderRepo   orderrepo.Repository
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	db         *pgxpool.Pool
}

// New builds a Server with all routes wired.
func New(addr string, logger *log.Logger, db *pgxpool.Pool, deps Deps) *Server {
	router := buildRouter(logger, db, deps)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
		db:         db,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
