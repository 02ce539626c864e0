// Package styles holds the named lipgloss styles used for console output.
//
// Styles are declared in the embedded styles.yaml: a palette of adaptive
// colours and, per style name, a foreground, background and attributes.
package styles

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Color is a light/dark colour pair
type Color struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// Def declares one style. Fg and Bg name palette entries.
type Def struct {
	Fg    string   `yaml:"fg"`
	Bg    string   `yaml:"bg"`
	Attrs []string `yaml:"attrs"`
}

// Sheet is the YAML document
type Sheet struct {
	Palette map[string]Color `yaml:"palette"`
	Styles  map[string]Def   `yaml:"styles"`
}

var attributes = map[string]func(lipgloss.Style) lipgloss.Style{
	"bold":      func(s lipgloss.Style) lipgloss.Style { return s.Bold(true) },
	"italic":    func(s lipgloss.Style) lipgloss.Style { return s.Italic(true) },
	"underline": func(s lipgloss.Style) lipgloss.Style { return s.Underline(true) },
	"faint":     func(s lipgloss.Style) lipgloss.Style { return s.Faint(true) },
}

//go:embed styles.yaml
var defaultStyles []byte

// StyleRegistry maps style names to lipgloss styles
var StyleRegistry map[string]lipgloss.Style

func init() {
	if err := ParseStyles(defaultStyles); err != nil {
		panic(fmt.Sprintf("embedded styles.yaml: %v", err))
	}
}

// ParseStyles replaces the registry with a YAML sheet. The registry is
// untouched if the sheet is invalid.
func ParseStyles(data []byte) error {
	var sheet Sheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return fmt.Errorf("failed to parse styles: %w", err)
	}

	registry := make(map[string]lipgloss.Style, len(sheet.Styles))
	for name, def := range sheet.Styles {
		style, err := sheet.build(def)
		if err != nil {
			return fmt.Errorf("style %s: %w", name, err)
		}
		registry[name] = style
	}

	StyleRegistry = registry
	return nil
}

func (sh Sheet) color(name string) (lipgloss.AdaptiveColor, error) {
	c, ok := sh.Palette[name]
	if !ok {
		return lipgloss.AdaptiveColor{}, fmt.Errorf("unknown color %q", name)
	}
	return lipgloss.AdaptiveColor{Light: c.Light, Dark: c.Dark}, nil
}

func (sh Sheet) build(def Def) (lipgloss.Style, error) {
	style := lipgloss.NewStyle()

	if def.Fg != "" {
		c, err := sh.color(def.Fg)
		if err != nil {
			return style, err
		}
		style = style.Foreground(c)
	}
	if def.Bg != "" {
		c, err := sh.color(def.Bg)
		if err != nil {
			return style, err
		}
		style = style.Background(c)
	}
	for _, attr := range def.Attrs {
		apply, ok := attributes[attr]
		if !ok {
			return style, fmt.Errorf("unknown attribute %q", attr)
		}
		style = apply(style)
	}

	return style, nil
}

// GetStyle returns the named style, or a plain style if it is not defined
func GetStyle(name string) lipgloss.Style {
	if style, ok := StyleRegistry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
