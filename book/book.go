// Package book models the mdbook preprocessor exchange: the [context, book]
// JSON pair delivered on stdin, the transformed book emitted on stdout, and
// the preprocessor's own configuration table.
//
// Only chapter content is ever rewritten. Everything else in the book JSON is
// carried through untouched, including fields added by mdbook versions newer
// than this tool.
package book

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Context is the build context half of the preprocessor input.
type Context struct {
	Root          string          `json:"root"`
	Config        json.RawMessage `json:"config"`
	Renderer      string          `json:"renderer"`
	MdbookVersion string          `json:"mdbook_version"`
}

// Input is one decoded preprocessor invocation.
type Input struct {
	Context Context
	Book    Book
}

// ParseInput decodes the [context, book] array from r.
func ParseInput(r io.Reader) (*Input, error) {
	var pair []json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&pair); err != nil {
		return nil, fmt.Errorf("unable to decode preprocessor input: %w", err)
	}
	if len(pair) != 2 {
		return nil, fmt.Errorf("malformed preprocessor input: expected [context, book], got %d elements", len(pair))
	}

	var in Input
	if err := json.Unmarshal(pair[0], &in.Context); err != nil {
		return nil, fmt.Errorf("unable to decode build context: %w", err)
	}
	if err := json.Unmarshal(pair[1], &in.Book); err != nil {
		return nil, fmt.Errorf("unable to decode book: %w", err)
	}
	return &in, nil
}

// Book is the item tree of the whole book. Unknown top level fields
// round-trip through raw.
type Book struct {
	Sections []Item

	raw map[string]json.RawMessage
}

func (b *Book) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &b.raw); err != nil {
		return err
	}
	if sections, ok := b.raw["sections"]; ok {
		if err := json.Unmarshal(sections, &b.Sections); err != nil {
			return err
		}
	}
	return nil
}

func (b Book) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(b.raw)+1)
	for k, v := range b.raw {
		out[k] = v
	}
	sections := b.Sections
	if sections == nil {
		sections = []Item{}
	}
	raw, err := json.Marshal(sections)
	if err != nil {
		return nil, err
	}
	out["sections"] = raw
	return json.Marshal(out)
}

// Item is one entry of the book tree. Chapters are decoded for processing;
// separators, part titles and anything else pass through verbatim.
type Item struct {
	Chapter *Chapter

	other json.RawMessage
}

type chapterEnvelope struct {
	Chapter *Chapter `json:"Chapter"`
}

func (it *Item) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var env chapterEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return err
		}
		if env.Chapter != nil {
			it.Chapter = env.Chapter
			return nil
		}
	}
	it.other = append(json.RawMessage(nil), data...)
	return nil
}

func (it Item) MarshalJSON() ([]byte, error) {
	if it.Chapter != nil {
		return json.Marshal(chapterEnvelope{Chapter: it.Chapter})
	}
	return it.other, nil
}

// Chapter carries the only mutable pieces, the markdown content and the
// nested sub items. The rest of the chapter object round-trips through raw.
type Chapter struct {
	Name     string
	Path     string // source path, empty for draft chapters
	Content  string
	SubItems []Item

	raw map[string]json.RawMessage
}

func (c *Chapter) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &c.raw); err != nil {
		return err
	}
	if name, ok := c.raw["name"]; ok {
		if err := json.Unmarshal(name, &c.Name); err != nil {
			return err
		}
	}
	if path, ok := c.raw["path"]; ok && !bytes.Equal(path, []byte("null")) {
		if err := json.Unmarshal(path, &c.Path); err != nil {
			return err
		}
	}
	if content, ok := c.raw["content"]; ok {
		if err := json.Unmarshal(content, &c.Content); err != nil {
			return err
		}
	}
	if sub, ok := c.raw["sub_items"]; ok {
		if err := json.Unmarshal(sub, &c.SubItems); err != nil {
			return err
		}
	}
	return nil
}

func (c Chapter) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(c.raw)+2)
	for k, v := range c.raw {
		out[k] = v
	}
	content, err := json.Marshal(c.Content)
	if err != nil {
		return nil, err
	}
	out["content"] = content
	subItems := c.SubItems
	if subItems == nil {
		subItems = []Item{}
	}
	sub, err := json.Marshal(subItems)
	if err != nil {
		return nil, err
	}
	out["sub_items"] = sub
	return json.Marshal(out)
}

// Location names the chapter for diagnostics, preferring its source path.
func (c *Chapter) Location() string {
	if c.Path != "" {
		return c.Path
	}
	return c.Name
}

// ForEachChapter visits every chapter of the book depth first, sub items
// after their parent. Visiting stops at the first error.
func (b *Book) ForEachChapter(fn func(*Chapter) error) error {
	return walkItems(b.Sections, fn)
}

func walkItems(items []Item, fn func(*Chapter) error) error {
	for i := range items {
		ch := items[i].Chapter
		if ch == nil {
			continue
		}
		if err := fn(ch); err != nil {
			return err
		}
		if err := walkItems(ch.SubItems, fn); err != nil {
			return err
		}
	}
	return nil
}
