package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/sightings-explorer/internal/config"
)

// Renderer writes a result set as indented structured text.
type Renderer interface {
	Render(w io.Writer, v any) error
}

// NewRenderer returns the renderer for format (config.FormatJSON or
// config.FormatYAML). Unknown formats fall back to JSON.
func NewRenderer(format string) Renderer {
	if strings.EqualFold(format, config.FormatYAML) {
		return yamlRenderer{}
	}
	return jsonRenderer{}
}

type jsonRenderer struct{}

func (jsonRenderer) Render(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	return nil
}

type yamlRenderer struct{}

func (yamlRenderer) Render(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(4)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}
	return nil
}

// formatSeconds prints a duration the way users typed it in the menu:
// integral values keep a trailing ".0" so 60 reads as "60.0".
func formatSeconds(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) || strings.ContainsRune(s, '.') {
		return s
	}
	return s + ".0"
}
