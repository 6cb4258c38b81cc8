package web

import (
	"mealbox/web/api"

	"github.com/rohanthewiz/rweb"
)

// BoxActionPath prefixes the card control URLs: <BoxActionPath>/:id/:action
const BoxActionPath = "/box/recipes"

// setupRoutes configures all application routes
func setupRoutes(s *rweb.Server, box *boxHandler) {
	// Page routes - HTML responses
	s.Get("/", box.MenuPage)
	s.Post(BoxActionPath+"/:id/:action", box.CardAction)

	s.Get("/health", api.HealthCheck)

	// API v1 routes - JSON responses
	s.Post("/api/v1/session", api.CreateSession)
	s.Get("/api/v1/recipes", api.ListRecipes)
	s.Get("/api/v1/recipes/:id", api.GetRecipe)

	// Box endpoints act on the caller's session
	s.Get("/api/v1/box", api.GetBox)                       // JSON, or msgpack via Accept
	s.Delete("/api/v1/box", api.ClearBox)                  // Empty the box
	s.Post("/api/v1/box/recipes/:id", api.AddToBox)        // Add one unit
	s.Delete("/api/v1/box/recipes/:id", api.RemoveFromBox) // Remove one unit
}
