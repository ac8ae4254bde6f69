// Package reports defines the precomputed report bundle handed to a
// document renderer. The renderer consumes exactly one bundle and performs
// no data lookups of its own.
package reports

import "time"

// SummaryItem is a named scalar shown above the report tables.
type SummaryItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Table is an ordered header row plus ordered data rows, all cells
// preformatted as strings.
type Table struct {
	Name    string     `json:"name"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Bundle is everything a report needs: a title, the generation date, named
// summary scalars and named tables.
type Bundle struct {
	Title       string        `json:"title"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Summary     []SummaryItem `json:"summary"`
	Tables      []Table       `json:"tables"`
}

// Renderer turns a bundle into a downloadable document.
type Renderer interface {
	// Render returns the document bytes and the MIME content type.
	Render(bundle *Bundle) ([]byte, string, error)
	// FileExtension returns the filename extension without the dot.
	FileExtension() string
}
