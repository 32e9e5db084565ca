package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keons0101/retail-dashboard-app/internal/domain"
	productrepo "github.com/keons0101/retail-dashboard-app/internal/repository/product"
)

type productListResponse struct {
	Success bool             `json:"success"`
	Data    []domain.Product `json:"data"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func listProductsHandler(logger *log.Logger, repo productrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repo.List(c.Request.Context())
		if err != nil {
			logger.Printf("list products: %v", err)
			c.JSON(http.StatusInternalServerError, errorResponse{Message: "failed to load products"})
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, productListResponse{Success: true, Data: products})
	}
}
