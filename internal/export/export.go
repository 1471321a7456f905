// Package export writes a task list as CSV, JSON or PDF.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"lsp-fixtures/internal/domain"
	"lsp-fixtures/internal/errors"
)

// Formats lists the accepted format names.
var Formats = []string{"csv", "json", "pdf"}

var csvHeader = []string{"id", "title", "description", "priority", "status", "created_at"}

type taskRecord struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    int       `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

type taskList struct {
	Owner string       `json:"owner"`
	Tasks []taskRecord `json:"tasks"`
}

// Export writes tasks in the named format. Format names are case-insensitive.
func Export(w io.Writer, format, owner string, tasks []domain.Task) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return writeCSV(w, tasks)
	case "json":
		return writeJSON(w, owner, tasks)
	case "pdf":
		return writePDF(w, owner, tasks)
	default:
		return errors.NewInvalidInputError("format", format,
			fmt.Sprintf("must be one of %s", strings.Join(Formats, ", ")))
	}
}

func writeCSV(w io.Writer, tasks []domain.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range tasks {
		record := []string{
			strconv.Itoa(t.ID),
			t.Title,
			t.Description,
			strconv.Itoa(t.Priority),
			t.Status(),
			t.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, owner string, tasks []domain.Task) error {
	list := taskList{Owner: owner, Tasks: make([]taskRecord, 0, len(tasks))}
	for _, t := range tasks {
		list.Tasks = append(list.Tasks, taskRecord{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Priority:    t.Priority,
			Completed:   t.Completed,
			CreatedAt:   t.CreatedAt.UTC(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}

// compressPDF is switched off in tests so page text can be inspected.
var compressPDF = true

// writePDF uses the core Arial font, which is cp1252. Text is translated
// from UTF-8 first; runes outside cp1252 cannot be shown.
func writePDF(w io.Writer, owner string, tasks []domain.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compressPDF)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	heading := "Tasks for " + owner
	pdf.SetTitle(heading, true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, tr(heading))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	if len(tasks) == 0 {
		pdf.Cell(40, 6, "No tasks")
	}
	for _, t := range tasks {
		line := fmt.Sprintf("%d. [%s] %s (priority %d)", t.ID, t.Status(), t.Title, t.Priority)
		if t.Description != "" {
			line += " - " + t.Description
		}
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	return pdf.Output(w)
}
