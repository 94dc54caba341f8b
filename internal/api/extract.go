package api

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/faturalab/statement-scanner/internal/extractor"
	"github.com/faturalab/statement-scanner/internal/models"
	"github.com/faturalab/statement-scanner/internal/parser"
	"github.com/faturalab/statement-scanner/internal/writer"
)

// ExtractResponse is the JSON body of a successful extraction.
type ExtractResponse struct {
	Success           bool                     `json:"success"`
	Error             string                   `json:"error,omitempty"`
	Transactions      []models.Transaction     `json:"transactions"`
	Subtotals         map[models.Keyword]int64 `json:"subtotals,omitempty"`
	KeywordOrder      []models.Keyword         `json:"keywordOrder,omitempty"`
	GrandTotalCents   int64                    `json:"grandTotalCents"`
	GrandTotalDisplay string                   `json:"grandTotalDisplay,omitempty"`
	Count             int                      `json:"count"`
	Diagnostics       models.Diagnostics       `json:"diagnostics"`
	CSV               string                   `json:"csv,omitempty"`
}

// handleExtract accepts a multipart PDF upload, runs extraction against
// the current keyword snapshot, and answers in the requested format:
// json (default), csv, or xlsx.
func (s *Server) handleExtract(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "no file uploaded; use form field 'file'")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "only PDF files are supported")
	}

	// Uploads get anonymous names; the original filename never touches
	// the filesystem.
	tmpPath := filepath.Join(s.UploadDir, uuid.NewString()+".pdf")
	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		s.log.Error().Err(err).Msg("failed to save upload")
		return writeError(c, fiber.StatusInternalServerError, "failed to save uploaded file")
	}
	defer os.Remove(tmpPath)

	cfg := runConfigFromForm(c)

	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	pages, err := extractor.ExtractText(ctx, tmpPath)
	if err != nil {
		if errors.Is(err, models.ErrExtractionTimeout) {
			return writeError(c, fiber.StatusGatewayTimeout, err.Error())
		}
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	p := parser.New(cfg, s.Registry.List())
	res, diag, err := p.Parse(ctx, pages)
	if err != nil {
		if errors.Is(err, models.ErrExtractionTimeout) {
			return writeError(c, fiber.StatusGatewayTimeout, err.Error())
		}
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	s.log.Info().
		Int("transactions", len(res.Transactions)).
		Int("discarded", diag.DiscardedLines).
		Int("unmatched", diag.UnmatchedLines).
		Int64("grandTotalCents", res.GrandTotalCents).
		Msg("extraction run complete")

	opts := writer.Options{LocaleDates: true, Locale: cfg.Locale}

	switch c.FormValue("format", "json") {
	case "csv":
		var buf bytes.Buffer
		w := &writer.CSVWriter{IncludeHeader: true}
		if err := w.Write(&buf, writer.ToTable(res, opts)); err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="fatura.csv"`)
		return c.Send(buf.Bytes())

	case "xlsx":
		var buf bytes.Buffer
		w := &writer.XLSXWriter{Opts: opts}
		if err := w.Write(&buf, res); err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="fatura.xlsx"`)
		return c.Send(buf.Bytes())

	default:
		var csvBuf bytes.Buffer
		w := &writer.CSVWriter{IncludeHeader: true}
		if err := w.Write(&csvBuf, writer.ToTable(res, opts)); err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}

		// nil slices marshal to JSON null, not [].
		txns := res.Transactions
		if txns == nil {
			txns = []models.Transaction{}
		}

		return c.JSON(ExtractResponse{
			Success:           true,
			Transactions:      txns,
			Subtotals:         res.Subtotals,
			KeywordOrder:      res.KeywordOrder,
			GrandTotalCents:   res.GrandTotalCents,
			GrandTotalDisplay: money.New(res.GrandTotalCents, money.BRL).Display(),
			Count:             len(txns),
			Diagnostics:       diag,
			CSV:               csvBuf.String(),
		})
	}
}

// runConfigFromForm reads the reference period from form fields,
// defaulting to the current month. Locale is fixed to the Brazilian
// statement convention; multi-currency statements are out of scope.
func runConfigFromForm(c *fiber.Ctx) models.RunConfig {
	now := time.Now()
	cfg := models.RunConfig{
		ReferenceYear:  now.Year(),
		ReferenceMonth: now.Month(),
		Locale:         models.BRLocale(),
	}

	if y, err := strconv.Atoi(c.FormValue("referenceYear")); err == nil && y > 0 {
		cfg.ReferenceYear = y
	}
	if m, err := strconv.Atoi(c.FormValue("referenceMonth")); err == nil && m >= 1 && m <= 12 {
		cfg.ReferenceMonth = time.Month(m)
	}
	return cfg
}
