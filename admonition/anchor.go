package admonition

import (
	"strconv"

	"github.com/gosimple/slug"
)

// maxIDSuffix bounds the collision suffix search. Hitting it means something
// is pathologically wrong with the document and the run should stop.
const maxIDSuffix = 1 << 16

// Registry assigns unique anchor ids for one document-processing run. It is
// deliberately an explicit object rather than package state: one registry per
// chapter, touched strictly in document order, never shared.
type Registry struct {
	used map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{used: make(map[string]struct{})}
}

// Assign picks the anchor id for a resolved block and registers it.
//
// A verbatim id (the explicit `id` option) is used exactly as written, even
// if it repeats: explicit ids are fully under author control. Generated ids
// are prefix + slug of the title (or of the directive keyword when the title
// is empty), deduplicated with an incrementing numeric suffix starting at 2.
//
// Slugs are produced by gosimple/slug: non-ASCII letters are transliterated
// to ASCII, everything else is lowercased with punctuation runs collapsed to
// single dashes. That is the documented non-ASCII rule for this tool.
func (g *Registry) Assign(block *Resolved) (string, error) {
	if block.ID.Verbatim != "" {
		g.used[block.ID.Verbatim] = struct{}{}
		return block.ID.Verbatim, nil
	}

	base := slug.Make(block.Title)
	if base == "" {
		base = slug.Make(block.Directive)
	}
	if base == "" {
		base = "default"
	}

	candidate := block.ID.Prefix + base
	if _, taken := g.used[candidate]; !taken {
		g.used[candidate] = struct{}{}
		return candidate, nil
	}
	for n := 2; n < maxIDSuffix; n++ {
		next := candidate + "-" + strconv.Itoa(n)
		if _, taken := g.used[next]; !taken {
			g.used[next] = struct{}{}
			return next, nil
		}
	}
	return "", &ParseError{Kind: ErrorKindIdSpaceExhausted, Detail: "no free anchor id for " + candidate}
}
