package admonition

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultIDPrefix is used for generated anchor ids when the book does not
// configure its own.
const DefaultIDPrefix = "admonition-"

// Defaults are the book-wide fallback values applied to every block.
type Defaults struct {
	// Title, when non-nil, overrides the per-directive default title.
	Title *string
	// Collapsible is used when a block does not set the option itself.
	Collapsible bool
	// IDPrefix prefixes generated anchor ids; empty means DefaultIDPrefix.
	IDPrefix string
}

// AnchorID is the id decision carried by a resolved block: either a verbatim
// id fully under author control, or a prefix for slug generation.
type AnchorID struct {
	Verbatim string
	Prefix   string
}

// Resolved is the fully merged, render-ready block descriptor.
type Resolved struct {
	// Directive is the keyword as written (or "note" when absent), used for
	// the container classname and as title fallback.
	Directive string
	// Definition is nil when the keyword matched nothing in the table; the
	// block then renders as an untyped card instead of failing the build.
	Definition  *Definition
	Title       string
	ID          AnchorID
	Classnames  []string
	Collapsible bool
	// Content is the reflowed (dedented) inner text of the fence.
	Content string
	// Indent is the fence column, applied back to every emitted line.
	Indent int
	// Line is the 1-based source line of the opening fence.
	Line int
}

// Resolve merges a parsed annotation with the directive table and book
// defaults. It cannot fail: everything it consumes is already validated, and
// unknown directives deliberately fall back to an untyped card to stay
// forward-compatible with typos and experimental types.
func Resolve(ann Annotation, table *Table, defaults Defaults) Resolved {
	keyword := ann.Directive
	if keyword == "" {
		keyword = "note"
	}
	def, _ := table.Lookup(keyword)

	var title string
	switch {
	case ann.Title != nil:
		title = *ann.Title
	case defaults.Title != nil:
		title = *defaults.Title
	default:
		title = keywordTitle(keyword, def)
	}

	var id AnchorID
	if ann.ID != nil {
		id.Verbatim = *ann.ID
	} else if defaults.IDPrefix != "" {
		id.Prefix = defaults.IDPrefix
	} else {
		id.Prefix = DefaultIDPrefix
	}

	collapsible := defaults.Collapsible
	if ann.Collapsible != nil {
		collapsible = *ann.Collapsible
	}

	var classnames []string
	if def != nil {
		classnames = append(classnames, def.Classnames...)
	}
	classnames = append(classnames, ann.Classnames...)

	return Resolved{
		Directive:   keyword,
		Definition:  def,
		Title:       title,
		ID:          id,
		Classnames:  dedupe(classnames),
		Collapsible: collapsible,
	}
}

// dedupe removes duplicate classnames keeping the first occurrence.
func dedupe(names []string) []string {
	if len(names) < 2 {
		return names
	}
	seen := make(map[string]struct{}, len(names))
	out := names[:0]
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// titlecase uppercases the leading letter without touching the rest, so
// configured spellings like "TL;DR" survive.
func titlecase(s string) string {
	return cases.Title(language.English, cases.NoLower).String(s)
}
