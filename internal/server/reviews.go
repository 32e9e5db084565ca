package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keons0101/retail-dashboard-app/internal/domain"
	productrepo "github.com/keons0101/retail-dashboard-app/internal/repository/product"
)

type reviewRequest struct {
	User    string `json:"user"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type reviewResponse struct {
	Success          bool          `json:"success"`
	Review           domain.Review `json:"review"`
	NewAverageRating float64       `json:"newAverageRating"`
}

func addReviewHandler(logger *log.Logger, repo productrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid product id"})
			return
		}

		var req reviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid review payload"})
			return
		}
		req.User = strings.TrimSpace(req.User)
		req.Comment = strings.TrimSpace(req.Comment)
		if req.User == "" || req.Comment == "" {
			c.JSON(http.StatusBadRequest, errorResponse{Message: "name and comment are required"})
			return
		}
		if req.Rating < 1 || req.Rating > 5 {
			c.JSON(http.StatusBadRequest, errorResponse{Message: "rating must be between 1 and 5"})
			return
		}

		review := domain.Review{
			User:    req.User,
			Rating:  req.Rating,
			Comment: req.Comment,
			Date:    time.Now().UTC(),
		}

		newAverage, err := repo.AddReview(c.Request.Context(), productID, review)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, errorResponse{Message: "Product not found"})
				return
			}
			logger.Printf("add review product_id=%d: %v", productID, err)
			c.JSON(http.StatusInternalServerError, errorResponse{Message: "failed to submit review"})
			return
		}

		c.JSON(http.StatusOK, reviewResponse{Success: true, Review: review, NewAverageRating: newAverage})
	}
}
