package book

import (
	"encoding/json"
	"fmt"

	"github.com/tommilligan/mdbook-admonish/admonition"
)

// Config is the `[preprocessor.admonish]` table of book.toml. It arrives
// either as JSON inside the build context or as TOML when read from disk by
// the install subcommand.
type Config struct {
	Command       string                    `json:"command,omitempty" toml:"command,omitempty"`
	AssetsVersion string                    `json:"assets_version,omitempty" toml:"assets_version,omitempty"`
	OnFailure     OnFailure                 `json:"on_failure,omitempty" toml:"on_failure,omitempty"`
	Default       Defaults                  `json:"default,omitempty" toml:"default,omitempty"`
	Renderer      map[string]RendererConfig `json:"renderer,omitempty" toml:"renderer,omitempty"`
	Custom        []CustomDirective         `json:"custom,omitempty" toml:"custom,omitempty"`
}

// Defaults is the `[preprocessor.admonish.default]` table.
type Defaults struct {
	Title       *string `json:"title" toml:"title,omitempty"`
	Collapsible bool    `json:"collapsible" toml:"collapsible,omitempty"`
	CSSIDPrefix *string `json:"css_id_prefix" toml:"css_id_prefix,omitempty"`
}

// The dashed spelling of css_id_prefix appeared in early releases and still
// exists in the wild, it stays accepted on the JSON path.
func (d *Defaults) UnmarshalJSON(data []byte) error {
	var aux struct {
		Title       *string `json:"title"`
		Collapsible bool    `json:"collapsible"`
		Prefix      *string `json:"css_id_prefix"`
		PrefixDash  *string `json:"css-id-prefix"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.Title = aux.Title
	d.Collapsible = aux.Collapsible
	d.CSSIDPrefix = aux.Prefix
	if d.CSSIDPrefix == nil {
		d.CSSIDPrefix = aux.PrefixDash
	}
	return nil
}

// RendererConfig is one `[preprocessor.admonish.renderer.<name>]` table.
type RendererConfig struct {
	RenderMode *RenderMode `json:"render_mode" toml:"render_mode"`
}

// CustomDirective is one `[[preprocessor.admonish.custom]]` entry.
type CustomDirective struct {
	Directive string           `json:"directive" toml:"directive"`
	Icon      string           `json:"icon" toml:"icon"` // path to an SVG file, relative to book.toml
	Color     admonition.Color `json:"color" toml:"color"`
	Title     *string          `json:"title,omitempty" toml:"title,omitempty"`
	Aliases   []string         `json:"aliases,omitempty" toml:"aliases,omitempty"`
}

// FromContext extracts the preprocessor's own configuration from the build
// context. A book without the table gets the zero configuration.
func FromContext(ctx *Context) (*Config, error) {
	var cfg Config
	if len(ctx.Config) == 0 {
		return &cfg, nil
	}
	var tree struct {
		Preprocessor map[string]json.RawMessage `json:"preprocessor"`
	}
	if err := json.Unmarshal(ctx.Config, &tree); err != nil {
		return nil, fmt.Errorf("unable to decode book configuration: %w", err)
	}
	table, ok := tree.Preprocessor["admonish"]
	if !ok {
		return &cfg, nil
	}
	if err := json.Unmarshal(table, &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode preprocessor.admonish configuration: %w", err)
	}
	return &cfg, nil
}

// RenderModeFor selects the run mode once per invocation. An explicit
// per-renderer setting wins; otherwise html renderers get full output and
// everything else passes blocks through untouched.
func (c *Config) RenderModeFor(renderer string) RenderMode {
	if rc, ok := c.Renderer[renderer]; ok && rc.RenderMode != nil {
		return *rc.RenderMode
	}
	if renderer == "html" {
		return RenderModeHtml
	}
	return RenderModePreserve
}

// Definitions converts the configured custom directives to table entries.
func (c *Config) Definitions() []admonition.Definition {
	if len(c.Custom) == 0 {
		return nil
	}
	defs := make([]admonition.Definition, 0, len(c.Custom))
	for _, cd := range c.Custom {
		def := admonition.Definition{
			Directive: cd.Directive,
			Aliases:   cd.Aliases,
			Icon:      cd.Icon,
			Color:     cd.Color,
		}
		if cd.Title != nil {
			def.Title = *cd.Title
		}
		defs = append(defs, def)
	}
	return defs
}

// AdmonitionDefaults translates the book table to resolver defaults.
func (c *Config) AdmonitionDefaults() admonition.Defaults {
	d := admonition.Defaults{
		Title:       c.Default.Title,
		Collapsible: c.Default.Collapsible,
	}
	if c.Default.CSSIDPrefix != nil {
		d.IDPrefix = *c.Default.CSSIDPrefix
	}
	return d
}
