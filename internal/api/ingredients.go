package api

import (
	"errors"
	"net/http"
	"strconv"

	"chowhub/internal/models"

	"github.com/gin-gonic/gin"
)

// ListIngredients returns one page of inventory ingredients plus the
// inventory-wide low/critical stock summary for the dashboard cards.
func (s *Server) ListIngredients(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	search := c.Query("search")

	result, err := s.inventory.ListIngredients(c.Request.Context(), page, limit, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// SearchIngredient resolves an exact ingredient name for the variation
// editor's "check inventory" flow. A miss is a normal answer, not a failure.
func (s *Server) SearchIngredient(c *gin.Context) {
	name := c.Query("name")
	ing, err := s.inventory.FindIngredientByName(c.Request.Context(), name)
	if errors.Is(err, models.ErrIngredientNotFound) {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "ingredient": ing})
}

// ListCategories returns all menu categories.
func (s *Server) ListCategories(c *gin.Context) {
	cats, err := s.inventory.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}
