package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// Renderer writes a View to w in one output format.
type Renderer interface {
	Render(w io.Writer, v View) error
}

// NewRenderer returns the renderer for format: text, json or yaml.
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "text", "":
		return textRenderer{}, nil
	case "json":
		return jsonRenderer{}, nil
	case "yaml":
		return yamlRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

type textRenderer struct{}

func (textRenderer) Render(w io.Writer, v View) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(v.Headers()...).
		Rows(v.Rows()...)
	_, err := fmt.Fprintln(w, t.String())
	return err
}

type jsonRenderer struct{}

func (jsonRenderer) Render(w io.Writer, v View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type yamlRenderer struct{}

func (yamlRenderer) Render(w io.Writer, v View) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
