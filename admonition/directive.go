// Package admonition implements the directive resolution and rendering engine
// for admonition fenced blocks: parsing fence annotations, merging them with
// book-wide defaults and custom directive definitions, assigning stable anchor
// ids and emitting the final markup.
package admonition

import (
	"fmt"
	"regexp"
)

// Definition describes one admonition directive: how blocks of that kind are
// titled, styled and iconed. The icon and color are only consumed by
// stylesheet generation, rendering references icons indirectly through CSS.
type Definition struct {
	Directive  string
	Aliases    []string
	Title      string // default display title, empty means titlecased keyword
	Icon       string // opaque resource reference, built-ins carry a data url
	Color      Color
	Classnames []string
}

// DisplayTitle returns the configured title, falling back to the titlecased
// directive keyword.
func (d *Definition) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return titlecase(d.Directive)
}

var rxDirective = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidDirective reports whether s is usable as a directive keyword.
func ValidDirective(s string) bool {
	return rxDirective.MatchString(s)
}

// Table maps directive keywords and aliases to their definitions. It is built
// once at pipeline start and is read-only afterwards, shared by all blocks.
type Table struct {
	byKeyword map[string]*Definition
}

// NewTable builds a lookup table from the built-in definitions extended by
// custom ones. A custom definition whose directive matches a built-in
// canonical keyword intentionally overrides it; any other keyword or alias
// collision is a configuration error.
func NewTable(custom []Definition) (*Table, error) {
	t := &Table{byKeyword: make(map[string]*Definition, len(custom)+len(builtins)*2)}

	for i := range custom {
		def := &custom[i]
		if !ValidDirective(def.Directive) {
			return nil, fmt.Errorf("invalid custom directive %q: must match %s", def.Directive, rxDirective)
		}
		if _, dup := t.byKeyword[def.Directive]; dup {
			return nil, fmt.Errorf("duplicate custom directive %q", def.Directive)
		}
		t.byKeyword[def.Directive] = def
		for _, alias := range def.Aliases {
			if !ValidDirective(alias) {
				return nil, fmt.Errorf("invalid alias %q for custom directive %q: must match %s", alias, def.Directive, rxDirective)
			}
			if _, dup := t.byKeyword[alias]; dup {
				return nil, fmt.Errorf("duplicate alias %q for custom directive %q", alias, def.Directive)
			}
			t.byKeyword[alias] = def
		}
	}

	for i := range builtins {
		def := &builtins[i]
		if _, overridden := t.byKeyword[def.Directive]; !overridden {
			t.byKeyword[def.Directive] = def
		}
		for _, alias := range def.Aliases {
			if _, overridden := t.byKeyword[alias]; !overridden {
				t.byKeyword[alias] = def
			}
		}
	}
	return t, nil
}

// Lookup matches a keyword case-sensitively against canonical directives and
// aliases. A miss is not an error: the caller falls back to an untyped card.
func (t *Table) Lookup(keyword string) (*Definition, bool) {
	def, ok := t.byKeyword[keyword]
	return def, ok
}

// Builtins returns the built-in definitions in stable declaration order.
func Builtins() []Definition {
	tmp := make([]Definition, len(builtins))
	copy(tmp, builtins)
	return tmp
}

func dataURL(path string) string {
	return "data:image/svg+xml;charset=utf-8," +
		"<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 24 24'><path d='" + path + "'/></svg>"
}

// The built-in directive set. Colors follow the material palette used by the
// shipped stylesheet; keep both in sync when changing either.
var builtins = []Definition{
	{
		Directive: "note",
		Icon:      dataURL("M20.71 7.04c.39-.39.39-1.04 0-1.41l-2.34-2.34c-.37-.39-1.02-.39-1.41 0l-1.84 1.83 3.75 3.75M3 17.25V21h3.75L17.81 9.93l-3.75-3.75L3 17.25z"),
		Color:     HexColor(0x448aff), // blue-a200
	},
	{
		Directive: "abstract",
		Aliases:   []string{"summary", "tldr"},
		Icon:      dataURL("M17 9H7V7h10m0 6H7v-2h10m-3 6H7v-2h7M12 3a1 1 0 0 1 1 1 1 1 0 0 1-1 1 1 1 0 0 1-1-1 1 1 0 0 1 1-1m7 0h-4.18C14.4 1.84 13.3 1 12 1c-1.3 0-2.4.84-2.82 2H5a2 2 0 0 0-2 2v14a2 2 0 0 0 2 2h14a2 2 0 0 0 2-2V5a2 2 0 0 0-2-2z"),
		Color:     HexColor(0x00b0ff), // light-blue-a400
	},
	{
		Directive: "info",
		Aliases:   []string{"todo"},
		Icon:      dataURL("M13 9h-2V7h2m0 10h-2v-6h2m-1-9A10 10 0 0 0 2 12a10 10 0 0 0 10 10 10 10 0 0 0 10-10A10 10 0 0 0 12 2z"),
		Color:     HexColor(0x00b8d4), // cyan-a700
	},
	{
		Directive: "tip",
		Aliases:   []string{"hint", "important"},
		Icon:      dataURL("M17.66 11.2c-.23-.3-.51-.56-.77-.82-.67-.6-1.43-1.03-2.07-1.66C13.33 7.26 13 4.85 13.95 3c-.95.23-1.78.75-2.49 1.32-2.59 2.08-3.61 5.75-2.39 8.9.04.1.08.2.08.33 0 .22-.15.42-.35.5-.23.1-.47.04-.66-.12a.58.58 0 0 1-.14-.17c-1.13-1.43-1.31-3.48-.55-5.12C5.78 10 4.87 12.3 5 14.47c.06.5.12 1 .29 1.5.14.6.41 1.2.71 1.73 1.08 1.73 2.95 2.97 4.96 3.22 2.14.27 4.43-.12 6.07-1.6 1.83-1.66 2.47-4.32 1.53-6.6l-.13-.26c-.21-.46-.77-1.26-.77-1.26z"),
		Color:     HexColor(0x00bfa5), // teal-a700
	},
	{
		Directive: "success",
		Aliases:   []string{"check", "done"},
		Icon:      dataURL("M9 20.42 2.79 14.21l2.83-2.83L9 14.77l9.88-9.89 2.83 2.83L9 20.42z"),
		Color:     HexColor(0x00c853), // green-a700
	},
	{
		Directive: "question",
		Aliases:   []string{"help", "faq"},
		Icon:      dataURL("M15.07 11.25l-.9.92C13.45 12.89 13 13.5 13 15h-2v-.5c0-1.11.45-2.11 1.17-2.83l1.24-1.26c.37-.36.59-.86.59-1.41a2 2 0 0 0-2-2 2 2 0 0 0-2 2H8a4 4 0 0 1 4-4 4 4 0 0 1 4 4 3.2 3.2 0 0 1-.93 2.25M13 19h-2v-2h2M12 2A10 10 0 0 0 2 12a10 10 0 0 0 10 10 10 10 0 0 0 10-10c0-5.53-4.5-10-10-10z"),
		Color:     HexColor(0x64dd17), // light-green-a700
	},
	{
		Directive: "warning",
		Aliases:   []string{"caution", "attention"},
		Icon:      dataURL("M13 14h-2V9h2m0 9h-2v-2h2M1 21h22L12 2 1 21z"),
		Color:     HexColor(0xff9100), // orange-a400
	},
	{
		Directive: "failure",
		Aliases:   []string{"fail", "missing"},
		Icon:      dataURL("M20 6.91 17.09 4 12 9.09 6.91 4 4 6.91 9.09 12 4 17.09 6.91 20 12 14.91 17.09 20 20 17.09 14.91 12 20 6.91z"),
		Color:     HexColor(0xff5252), // red-a200
	},
	{
		Directive: "danger",
		Aliases:   []string{"error"},
		Icon:      dataURL("M11 15H6l7-14v8h5l-7 14v-8z"),
		Color:     HexColor(0xff1744), // red-a400
	},
	{
		Directive: "bug",
		Icon:      dataURL("M14 12h-4v-2h4m0 6h-4v-2h4m6-6h-2.81a5.985 5.985 0 0 0-1.82-1.96L17 4.41 15.59 3l-2.17 2.17a6.002 6.002 0 0 0-2.83 0L8.41 3 7 4.41l1.62 1.63C7.88 6.55 7.26 7.22 6.81 8H4v2h2.09c-.05.33-.09.66-.09 1v1H4v2h2v1c0 .34.04.67.09 1H4v2h2.81c1.04 1.79 2.97 3 5.19 3s4.15-1.21 5.19-3H20v-2h-2.09c.05-.33.09-.66.09-1v-1h2v-2h-2v-1c0-.34-.04-.67-.09-1H20V8z"),
		Color:     HexColor(0xf50057), // pink-a400
	},
	{
		Directive: "example",
		Icon:      dataURL("M7 13v-2h14v2H7m0 6v-2h14v2H7M7 7V5h14v2H7M3 8V5H2V4h2v4H3m-1 9v-1h3v4H2v-1h2v-.5H3v-1h1V17H2m2.25-7a.75.75 0 0 1 .75.75c0 .2-.08.39-.21.52L3.12 13H5v1H2v-.92L4 11H2v-1h2.25z"),
		Color:     HexColor(0x7c4dff), // deep-purple-a200
	},
	{
		Directive: "quote",
		Aliases:   []string{"cite"},
		Icon:      dataURL("M14 17h3l2-4V7h-6v6h3M6 17h3l2-4V7H5v6h3l-2 4z"),
		Color:     HexColor(0x9e9e9e), // grey-base
	},
}

// Keywords whose display title is not just the titlecased keyword. Kept per
// keyword rather than per definition so that `tldr` and `abstract` can share
// one definition yet read differently.
var keywordTitles = map[string]string{
	"tldr": "TL;DR",
	"todo": "TODO",
	"faq":  "FAQ",
}

// keywordTitle returns the default display title for a directive keyword as
// written in the block, using def for icon/color grouping only.
func keywordTitle(keyword string, def *Definition) string {
	if t, ok := keywordTitles[keyword]; ok {
		return t
	}
	if def != nil && def.Title != "" {
		return def.Title
	}
	return titlecase(keyword)
}
