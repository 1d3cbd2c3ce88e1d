package book

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

const sampleInput = `[
  {
    "root": "/data/book",
    "config": {
      "book": {"title": "Example"},
      "preprocessor": {"admonish": {"on_failure": "bail"}}
    },
    "renderer": "html",
    "mdbook_version": "0.4.40"
  },
  {
    "sections": [
      {
        "Chapter": {
          "name": "First",
          "content": "hello",
          "number": [1],
          "sub_items": [
            {"Chapter": {"name": "Nested", "content": "inner", "number": [1, 1], "sub_items": [], "parent_names": ["First"], "path": "nested.md", "source_path": "nested.md"}}
          ],
          "parent_names": [],
          "path": "first.md",
          "source_path": "first.md"
        }
      },
      "Separator",
      {"PartTitle": "Appendix"},
      {"Chapter": {"name": "Draft", "content": "", "number": null, "sub_items": [], "parent_names": [], "path": null, "source_path": null}}
    ],
    "__non_exhaustive": null
  }
]`

func TestParseInput(t *testing.T) {
	in, err := ParseInput(strings.NewReader(sampleInput))
	if err != nil {
		t.Fatalf("ParseInput failed: %v", err)
	}
	if in.Context.Renderer != "html" {
		t.Errorf("renderer: got %q", in.Context.Renderer)
	}
	if in.Context.Root != "/data/book" {
		t.Errorf("root: got %q", in.Context.Root)
	}
	if len(in.Book.Sections) != 4 {
		t.Fatalf("sections: got %d, want 4", len(in.Book.Sections))
	}

	first := in.Book.Sections[0].Chapter
	if first == nil || first.Name != "First" || first.Content != "hello" {
		t.Fatalf("first chapter mangled: %+v", first)
	}
	if len(first.SubItems) != 1 || first.SubItems[0].Chapter == nil {
		t.Fatalf("nested chapter lost: %+v", first.SubItems)
	}
	if in.Book.Sections[1].Chapter != nil || in.Book.Sections[2].Chapter != nil {
		t.Error("separator or part title decoded as a chapter")
	}
	if draft := in.Book.Sections[3].Chapter; draft == nil || draft.Path != "" {
		t.Errorf("draft chapter: %+v", draft)
	}
}

func TestBookRoundTrip(t *testing.T) {
	in, err := ParseInput(strings.NewReader(sampleInput))
	if err != nil {
		t.Fatalf("ParseInput failed: %v", err)
	}

	out, err := json.Marshal(in.Book)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	// semantic comparison, key order is not part of the contract
	var got, want any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("re-decoding output: %v", err)
	}
	var pair []json.RawMessage
	if err := json.Unmarshal([]byte(sampleInput), &pair); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(pair[1], &want); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip altered the book:\n got:  %v\n want: %v", got, want)
	}
}

func TestBookRoundTripKeepsEdits(t *testing.T) {
	in, err := ParseInput(strings.NewReader(sampleInput))
	if err != nil {
		t.Fatalf("ParseInput failed: %v", err)
	}

	in.Book.Sections[0].Chapter.Content = "rewritten"
	out, err := json.Marshal(in.Book)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(out), `"rewritten"`) {
		t.Error("edited content lost")
	}
	if !strings.Contains(string(out), `"__non_exhaustive":null`) {
		t.Error("unknown top level field dropped")
	}
	if !strings.Contains(string(out), `"source_path":"first.md"`) {
		t.Error("untouched chapter field dropped")
	}
	if !strings.Contains(string(out), `"Separator"`) || !strings.Contains(string(out), `"PartTitle":"Appendix"`) {
		t.Error("non-chapter items dropped")
	}
}

func TestForEachChapter(t *testing.T) {
	in, err := ParseInput(strings.NewReader(sampleInput))
	if err != nil {
		t.Fatalf("ParseInput failed: %v", err)
	}

	var names []string
	err = in.Book.ForEachChapter(func(c *Chapter) error {
		names = append(names, c.Name)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEachChapter failed: %v", err)
	}
	if got, want := strings.Join(names, ","), "First,Nested,Draft"; got != want {
		t.Errorf("visit order: got %q, want %q", got, want)
	}
}
