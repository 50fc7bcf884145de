package usecase

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/thermochef/backend/internal/domain"
)

// Export formats
const (
	ExportJSON = "json"
	ExportText = "txt"
	ExportCSV  = "csv"
)

// ShoppingExport is a rendered shopping list
type ShoppingExport struct {
	ContentType string
	Extension   string
	Body        []byte
}

// ExportShoppingList renders entries as json, txt or csv
func ExportShoppingList(title string, entries []domain.ShoppingEntry, format string) (*ShoppingExport, error) {
	if title == "" {
		title = "Shopping List"
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case ExportJSON, "":
		body, err := json.MarshalIndent(struct {
			Name    string                 `json:"name"`
			Entries []domain.ShoppingEntry `json:"entries"`
		}{Name: title, Entries: entries}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode shopping list: %w", err)
		}
		return &ShoppingExport{ContentType: "application/json", Extension: ExportJSON, Body: body}, nil

	case ExportText:
		return &ShoppingExport{ContentType: "text/plain; charset=utf-8", Extension: ExportText, Body: renderShoppingText(title, entries)}, nil

	case ExportCSV:
		body, err := renderShoppingCSV(entries)
		if err != nil {
			return nil, err
		}
		return &ShoppingExport{ContentType: "text/csv", Extension: ExportCSV, Body: body}, nil

	default:
		return nil, fmt.Errorf("%w: %q (supported: json, txt, csv)", domain.ErrUnsupportedFormat, format)
	}
}

// renderShoppingText groups entries under their category in first-seen order;
// entries arrive sorted by category from the aggregator.
func renderShoppingText(title string, entries []domain.ShoppingEntry) []byte {
	var b bytes.Buffer
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(title))) + "\n\n")

	current := ""
	for i, e := range entries {
		if i == 0 || e.Category != current {
			if i > 0 {
				b.WriteString("\n")
			}
			current = e.Category
			b.WriteString(current + ":\n")
			b.WriteString(strings.Repeat("-", len([]rune(current))+1) + "\n")
		}

		line := "[ ] " + e.NormalizedName
		if e.Amount > 0 {
			line += fmt.Sprintf(" (%s %s)", formatAmount(e.Amount), e.Unit)
		}
		if len(e.SourceRecipes) > 0 {
			line += " - from " + strings.Join(e.SourceRecipes, ", ")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(fmt.Sprintf("\nTotal items: %d\n", len(entries)))
	return b.Bytes()
}

func renderShoppingCSV(entries []domain.ShoppingEntry) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)

	if err := w.Write([]string{"Category", "Item", "Amount", "Unit", "Recipes"}); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, e := range entries {
		record := []string{e.Category, e.NormalizedName, formatAmount(e.Amount), e.Unit, strings.Join(e.SourceRecipes, "; ")}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return b.Bytes(), nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
