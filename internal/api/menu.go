package api

import (
	"errors"
	"net/http"
	"strconv"

	"chowhub/internal/catalog"
	"chowhub/internal/models"

	"github.com/gin-gonic/gin"
)

// ListMenuItems returns the full catalog for the ordering screen.
func (s *Server) ListMenuItems(c *gin.Context) {
	items, err := s.catalog.FetchMenuItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menuItems": items})
}

// GetMenuItem returns one menu item with its variations.
func (s *Server) GetMenuItem(c *gin.Context) {
	item, err := s.catalog.GetMenuItem(c.Request.Context(), c.Param("id"))
	if errors.Is(err, catalog.ErrMenuItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menuItem": item})
}

// CreateMenuItem stores a new menu item with its variation set. The payload's
// inventory-control flag is ignored and rederived from the variations.
func (s *Server) CreateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if item.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menu item name is required"})
		return
	}
	if len(item.Variations) == 0 {
		item.Variations = []models.Variation{models.NewDefaultVariation()}
	}
	created, err := s.catalog.CreateMenuItem(c.Request.Context(), &item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"menuItem": created})
}

// UpdateMenuItem replaces a menu item's fields and variations.
func (s *Server) UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item.ID = c.Param("id")
	updated, err := s.catalog.UpdateMenuItem(c.Request.Context(), &item)
	if errors.Is(err, catalog.ErrMenuItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menuItem": updated})
}

// DeleteMenuItem removes a menu item from the catalog.
func (s *Server) DeleteMenuItem(c *gin.Context) {
	err := s.catalog.DeleteMenuItem(c.Request.Context(), c.Param("id"))
	if errors.Is(err, catalog.ErrMenuItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// SearchRecipes proxies the external recipe catalog for menu item seeding.
func (s *Server) SearchRecipes(c *gin.Context) {
	if s.recipes == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recipe catalog is not configured"})
		return
	}
	results, err := s.recipes.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GetRecipe fetches one recipe with its ingredient triples.
func (s *Server) GetRecipe(c *gin.Context) {
	if s.recipes == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recipe catalog is not configured"})
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe id must be numeric"})
		return
	}
	recipe, err := s.recipes.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}
