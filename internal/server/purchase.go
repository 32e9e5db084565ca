package server

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/keons0101/retail-dashboard-app/internal/domain"
	orderrepo "github.com/keons0101/retail-dashboard-app/internal/repository/order"
)

type purchaseItemRequest struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type purchaseCustomerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
}

type purchaseRequest struct {
	CartItems    []purchaseItemRequest   `json:"cartItems"`
	Total        float64                 `json:"total"`
	CustomerInfo purchaseCustomerRequest `json:"customerInfo"`
}

type purchaseResponse struct {
	Success bool          `json:"success"`
	Order   *domain.Order `json:"order"`
}

func purchaseHandler(logger *log.Logger, repo orderrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req purchaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid purchase payload"})
			return
		}
		if len(req.CartItems) == 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Message: "cart is empty"})
			return
		}
		if req.Total < 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid amount"})
			return
		}
		for _, item := range req.CartItems {
			if item.Quantity <= 0 {
				c.JSON(http.StatusBadRequest, errorResponse{Message: "quantity must be positive"})
				return
			}
			if item.Price < 0 {
				c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid amount"})
				return
			}
		}

		name := strings.TrimSpace(req.CustomerInfo.Name)
		if name == "" {
			name = "Guest Customer"
		}

		placedAt := time.Now().UTC()
		if ts, err := time.Parse(time.RFC3339, req.CustomerInfo.Timestamp); err == nil {
			placedAt = ts.UTC()
		}

		in := orderrepo.CreateOrderInput{
			OrderID:  newOrderID(),
			Customer: domain.Customer{Name: name, Email: strings.TrimSpace(req.CustomerInfo.Email)},
			PlacedAt: placedAt,
			Total:    req.Total,
		}
		for _, item := range req.CartItems {
			in.Lines = append(in.Lines, orderrepo.Line{
				ProductID: item.ID,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
			})
		}

		order, err := repo.Create(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) {
				c.JSON(http.StatusConflict, errorResponse{Message: "Out of stock"})
				return
			}
			logger.Printf("create order: %v", err)
			c.JSON(http.StatusInternalServerError, errorResponse{Message: "failed to process purchase"})
			return
		}

		logger.Printf("purchase: order %s for %q, %d line(s), total %.2f", order.OrderID, name, len(order.Items), order.Total)
		c.JSON(http.StatusOK, purchaseResponse{Success: true, Order: order})
	}
}

func newOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}
