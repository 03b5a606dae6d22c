// Package output provides formatters for command output: an aligned table
// for terminals, JSON for pipes, and YAML for the report artifact.
package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"

	"github.com/eastgenomics/vepdiff/pkg/errors"
)

// Format types for output.
type Format string

const (
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
)

// Data represents data formatted for table output.
type Data struct {
	Headers []string
	Rows    [][]string
}

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates the appropriate formatter for a format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// ParseFormat converts a string to a Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatJSON, FormatYAML:
		return format, nil
	case FormatTable, "":
		return FormatTable, nil
	default:
		return "", errors.NewValidationError("output", s, "must be one of table, json, yaml")
	}
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format implements the Formatter interface for YAML output.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	yamlData, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// TableFormatter outputs an aligned text table. Non-Data values fall back
// to JSON.
type TableFormatter struct{}

// Format implements the Formatter interface for table output.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	tableData, ok := data.(Data)
	if !ok {
		jsonFormatter := &JSONFormatter{Indent: "  "}
		return jsonFormatter.Format(w, data)
	}

	table := tablewriter.NewTable(w)

	if len(tableData.Headers) > 0 {
		headers := make([]any, len(tableData.Headers))
		for i, h := range tableData.Headers {
			headers[i] = h
		}
		table.Header(headers...)
	}

	for _, row := range tableData.Rows {
		rowData := make([]any, len(row))
		for i, cell := range row {
			rowData[i] = cell
		}
		if err := table.Append(rowData...); err != nil {
			return err
		}
	}

	return table.Render()
}
