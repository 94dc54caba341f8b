// Package extractor turns a statement PDF into ordered per-page text.
// It is the engine's external collaborator: segmentation and parsing
// never look at the PDF, only at the lines produced here.
package extractor

import (
	"context"
	"fmt"
	"io"
	"math"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/faturalab/statement-scanner/internal/models"
)

// ExtractText reads a PDF file and returns the text content of each
// page, bounded by the context deadline. It tries the structured
// library first and falls back to the external pdftotext command
// (poppler-utils) for PDFs the library cannot decode. Garbage output
// is never returned: each method's result must pass the readability
// gate before it is used.
func ExtractText(ctx context.Context, filePath string) ([]string, error) {
	type extracted struct {
		pages []string
		err   error
	}
	done := make(chan extracted, 1)

	go func() {
		pages, err := extract(ctx, filePath)
		done <- extracted{pages, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", models.ErrExtractionTimeout, ctx.Err())
	case res := <-done:
		if res.err != nil && ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrExtractionTimeout, ctx.Err())
		}
		return res.pages, res.err
	}
}

func extract(ctx context.Context, filePath string) ([]string, error) {
	pages, libErr := extractWithLibrary(filePath)
	if libErr == nil && isReadableText(pages) {
		return pages, nil
	}

	popplerPages, popplerErr := extractWithPdftotext(ctx, filePath)
	if popplerErr == nil && isReadableText(popplerPages) {
		return popplerPages, nil
	}

	if libErr != nil {
		return nil, fmt.Errorf("PDF text extraction failed: %v. The file may be image-based/scanned or use font encodings that cannot be decoded", libErr)
	}
	return nil, fmt.Errorf("no readable text could be extracted from the PDF; scanned statements are not supported")
}

// extractWithLibrary uses the ledongthuc/pdf library, trying its
// extraction paths from best layout preservation to coarsest.
func extractWithLibrary(filePath string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return nil, openErr
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	pages = extractByRow(r, numPages)
	if isReadableText(pages) {
		return pages, nil
	}

	pages = extractByContent(r, numPages)
	if isReadableText(pages) {
		return pages, nil
	}

	plainText := extractByReaderPlainText(r)
	if isReadableText([]string{plainText}) {
		return []string{plainText}, nil
	}

	return pages, nil
}

// extractByRow uses GetTextByRow, which keeps table rows intact on
// well-structured PDFs. One output string per page, lines joined by \n.
func extractByRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// extractByContent reconstructs rows from raw text objects by grouping
// on the Y coordinate and ordering by X. Needed for statements whose
// text objects are emitted out of reading order.
func extractByContent(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		type textItem struct {
			x float64
			s string
		}
		rowMap := make(map[int][]textItem)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			yKey := int(math.Round(t.Y))
			rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, s: t.S})
		}

		// PDF Y axis runs bottom-to-top.
		yKeys := make([]int, 0, len(rowMap))
		for y := range rowMap {
			yKeys = append(yKeys, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

		var lines []string
		for _, y := range yKeys {
			items := rowMap[y]
			sort.Slice(items, func(a, b int) bool {
				return items[a].x < items[b].x
			})

			var parts []string
			var prevX float64
			for j, item := range items {
				if j > 0 && item.x-prevX > 15 {
					// Large horizontal gap marks a column boundary.
					parts = append(parts, "  ")
				}
				parts = append(parts, item.s)
				prevX = item.x
			}
			line := strings.TrimSpace(strings.Join(parts, ""))
			if line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// extractByReaderPlainText is the coarsest library path: whole-document
// text with no layout. Page boundaries are lost, so the result comes
// back as a single page.
func extractByReaderPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// extractWithPdftotext shells out to poppler-utils, page by page to
// preserve page boundaries.
func extractWithPdftotext(ctx context.Context, filePath string) ([]string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available: %v", err)
	}

	numPages := 1
	if out, err := exec.CommandContext(ctx, "pdfinfo", filePath).Output(); err == nil {
		for _, line := range strings.Split(string(out), "\n") {
			if strings.HasPrefix(line, "Pages:") {
				if n, parseErr := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Pages:"))); parseErr == nil && n > 0 {
					numPages = n
				}
			}
		}
	}

	var pages []string
	for i := 1; i <= numPages; i++ {
		pageStr := strconv.Itoa(i)
		out, err := exec.CommandContext(ctx, "pdftotext", "-layout", "-f", pageStr, "-l", pageStr, filePath, "-").Output()
		if err != nil {
			continue
		}
		if text := strings.TrimSpace(string(out)); text != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		out, err := exec.CommandContext(ctx, "pdftotext", "-layout", filePath, "-").Output()
		if err != nil {
			return nil, fmt.Errorf("pdftotext failed: %v", err)
		}
		if text := strings.TrimSpace(string(out)); text != "" {
			return []string{text}, nil
		}
		return nil, fmt.Errorf("pdftotext produced no output")
	}

	return pages, nil
}
