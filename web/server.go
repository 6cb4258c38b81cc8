package web

import (
	"mealbox/config"
	"mealbox/web/api"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// NewServer creates and configures the RWeb server
func NewServer(cfg config.Config) *rweb.Server {
	s := rweb.NewServer(rweb.ServerOptions{
		Address: cfg.Server.Address,
		Verbose: cfg.Server.Verbose,
	})

	api.Configure(api.Options{Plan: cfg.Plan, Pricing: cfg.Pricing})
	box := newBoxHandler(cfg)

	s.Use(rweb.RequestInfo)          // Logs request info
	s.Use(CorsMiddleware)            // Custom CORS middleware
	s.Use(SessionMiddleware)         // Session management
	s.Use(SecurityHeadersMiddleware) // Security headers
	s.Use(LoggingMiddleware)         // Request logging
	if cfg.Server.RateLimit > 0 {
		s.Use(RateLimitMiddleware(cfg.Server.RateLimit))
	}

	setupRoutes(s, box)

	// Serve static files using embedded FS
	SetupStaticFiles(s)

	return s
}

// Run starts the server
func Run(s *rweb.Server, address string) error {
	logger.Info("mealbox server starting", "address", address)
	return s.Run()
}
