package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/faturalab/statement-scanner/internal/models"
)

type keywordRequest struct {
	Term string `json:"term"`
}

func (s *Server) handleListKeywords(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"keywords": s.Registry.List()})
}

func (s *Server) handleAddKeyword(c *fiber.Ctx) error {
	var req keywordRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid request body")
	}

	kw, err := s.Registry.Add(req.Term)
	switch {
	case errors.Is(err, models.ErrInvalidKeyword):
		return writeError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrDuplicateKeyword):
		return writeError(c, fiber.StatusConflict, err.Error())
	case err != nil:
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	s.log.Info().Str("keyword", string(kw)).Msg("keyword added")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"keyword": kw})
}

func (s *Server) handleRemoveKeyword(c *fiber.Ctx) error {
	term := c.Params("term")

	err := s.Registry.Remove(term)
	switch {
	case errors.Is(err, models.ErrKeywordNotFound):
		return writeError(c, fiber.StatusNotFound, err.Error())
	case err != nil:
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	s.log.Info().Str("keyword", term).Msg("keyword removed")
	return c.SendStatus(fiber.StatusNoContent)
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}
