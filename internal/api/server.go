package api

import (
	"net/http"

	"chowhub/internal/auth"
	"chowhub/internal/catalog"
	"chowhub/internal/inventory"
	"chowhub/internal/orders"
	"chowhub/internal/recipes"

	"github.com/gin-gonic/gin"
)

// Server is the back-office HTTP API.
type Server struct {
	Router *gin.Engine

	inventory *inventory.Service
	catalog   *catalog.Service
	orders    *orders.Service
	recipes   *recipes.Client // nil when no catalog key is configured
	tokens    *auth.Tokens
	feed      *Feed
}

// NewServer wires the services into a router. The recipe client may be nil;
// the suggestion endpoints then answer 503.
func NewServer(inv *inventory.Service, cat *catalog.Service, ord *orders.Service, rec *recipes.Client, tokens *auth.Tokens) *Server {
	s := &Server{
		Router:    gin.Default(),
		inventory: inv,
		catalog:   cat,
		orders:    ord,
		recipes:   rec,
		tokens:    tokens,
		feed:      NewFeed(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.Router.Group("/api/v1")
	v1.Use(auth.Middleware(s.tokens))
	{
		v1.GET("/ingredients", s.ListIngredients)
		v1.GET("/ingredients/search", s.SearchIngredient)
		v1.GET("/categories", s.ListCategories)

		v1.GET("/menu-management", s.ListMenuItems)
		v1.GET("/menu-management/:id", s.GetMenuItem)

		v1.POST("/orders", s.CreateOrder)
		v1.GET("/orders", s.ListOrders)

		v1.GET("/orders/feed", s.feed.Handle)

		managers := v1.Group("")
		managers.Use(auth.ManagerOnly())
		{
			managers.POST("/menu-management", s.CreateMenuItem)
			managers.PUT("/menu-management/:id", s.UpdateMenuItem)
			managers.DELETE("/menu-management/:id", s.DeleteMenuItem)

			managers.GET("/recipes/search", s.SearchRecipes)
			managers.GET("/recipes/:id", s.GetRecipe)
		}
	}
}
