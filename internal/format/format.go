package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/sst/piechart/internal/chart"
)

// OutputFormat represents how a rendered chart is printed
type OutputFormat string

const (
	// TextFormat prints the chart rows as they are (default)
	TextFormat OutputFormat = "text"

	// JSONFormat prints the chart and its data as a JSON document
	JSONFormat OutputFormat = "json"
)

// IsValid checks if the output format is valid
func (f OutputFormat) IsValid() bool {
	return f == TextFormat || f == JSONFormat
}

// String returns the string representation of the output format
func (f OutputFormat) String() string {
	return string(f)
}

// Document is the JSON form of a chart.
type Document struct {
	Chart string      `json:"chart"`
	Total float64     `json:"total"`
	Items []ItemShare `json:"items"`
}

// ItemShare is one data item with its share of the total.
type ItemShare struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
	Fill    string  `json:"fill"`
}

// FormatOutput formats the rendered rows of a chart drawn from data
// according to the specified format. The result has no trailing newline.
func FormatOutput(rows []string, data []chart.Item, format OutputFormat) (string, error) {
	switch format {
	case TextFormat:
		return strings.Join(rows, "\n"), nil
	case JSONFormat:
		doc := NewDocument(rows, data)
		jsonBytes, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(jsonBytes), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// NewDocument builds the JSON document for a chart. Styling is stripped
// from the rows so the chart stays readable in any viewer.
func NewDocument(rows []string, data []chart.Item) Document {
	var total float64
	for _, d := range data {
		total += d.Value
	}

	plain := make([]string, len(rows))
	for i, row := range rows {
		plain[i] = ansi.Strip(row)
	}

	items := make([]ItemShare, len(data))
	for i, d := range data {
		share := ItemShare{
			Label: d.Label,
			Value: d.Value,
			Fill:  string(d.Fill),
		}
		if total > 0 {
			share.Percent = d.Value / total * 100
		}
		items[i] = share
	}

	return Document{
		Chart: strings.Join(plain, "\n"),
		Total: total,
		Items: items,
	}
}
