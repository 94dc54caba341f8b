// Package api exposes the scanner over HTTP: statement upload and
// extraction, keyword management, and report download.
package api

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/faturalab/statement-scanner/internal/keywords"
)

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	Registry  *keywords.Registry
	UploadDir string
	// Timeout bounds PDF text extraction per request.
	Timeout time.Duration

	log zerolog.Logger
}

// New builds a Server with a 30s extraction timeout.
func New(reg *keywords.Registry, uploadDir string) *Server {
	return &Server{
		Registry:  reg,
		UploadDir: uploadDir,
		Timeout:   30 * time.Second,
		log:       zerolog.New(os.Stdout).With().Timestamp().Str("component", "api").Logger(),
	}
}

// App builds the Fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20, // uploaded statements are small, 32MB is generous
	})

	app.Use(s.requestLogger)

	app.Get("/api/health", s.handleHealth)
	app.Get("/api/keywords", s.handleListKeywords)
	app.Post("/api/keywords", s.handleAddKeyword)
	app.Delete("/api/keywords/:term", s.handleRemoveKeyword)
	app.Post("/api/extract", s.handleExtract)

	return app
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.Info().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("took", time.Since(start)).
		Msg("request")
	return err
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"engine": "fiber",
	})
}
