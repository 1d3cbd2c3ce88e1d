package install

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/tommilligan/mdbook-admonish/admonition"
	"github.com/tommilligan/mdbook-admonish/book"
)

const noteSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox='0 0 24 24'>
  <path d='M20.71 7.04c.39-.39.39-1.04 0-1.41l-2.34-2.34c-.37-.39-1.02-.39-1.41 0l-1.84 1.83 3.75 3.75M3 17.25V21h3.75L17.81 9.93l-3.75-3.75L3 17.25z'/>
</svg>
`

// Keep the expected text in step with the fragments baked into the shipped
// stylesheet.
const noteExpectedCSS = `:root {
  --md-admonition-icon--admonish-note: url("data:image/svg+xml;charset=utf-8,<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 24 24'><path d='M20.71 7.04c.39-.39.39-1.04 0-1.41l-2.34-2.34c-.37-.39-1.02-.39-1.41 0l-1.84 1.83 3.75 3.75M3 17.25V21h3.75L17.81 9.93l-3.75-3.75L3 17.25z'/></svg>");
}

:is(.admonition):is(.admonish-note) {
  border-color: #448aff;
}

:is(.admonish-note) > :is(.admonition-title, summary.admonition-title) {
  background-color: rgba(68, 138, 255, 0.1);
}
:is(.admonish-note) > :is(.admonition-title, summary.admonition-title)::before {
  background-color: #448aff;
  mask-image: var(--md-admonition-icon--admonish-note);
  -webkit-mask-image: var(--md-admonition-icon--admonish-note);
  mask-repeat: no-repeat;
  -webkit-mask-repeat: no-repeat;
  mask-size: contain;
  -webkit-mask-repeat: no-repeat;
}
`

func TestDirectiveCSS(t *testing.T) {
	url := svgToDataURL(noteSVG, zap.NewNop())
	got, err := directiveCSS("note", url, admonition.HexColor(0x448aff))
	if err != nil {
		t.Fatalf("directiveCSS() error = %v", err)
	}
	if got != noteExpectedCSS {
		t.Errorf("directiveCSS() mismatch:\ngot:\n%s\nwant:\n%s", got, noteExpectedCSS)
	}
}

func TestSvgToDataURL(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "collapses newlines with indentation",
			svg:  "<svg xmlns=\"http://www.w3.org/2000/svg\">\n   <path/>\n</svg>",
			want: "data:image/svg+xml;charset=utf-8,<svg xmlns='http://www.w3.org/2000/svg'><path/></svg>",
		},
		{
			name: "escapes url-hostile characters",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg" style="fill:#fff;width:100%">{x}</svg>`,
			want: "data:image/svg+xml;charset=utf-8,<svg xmlns='http://www.w3.org/2000/svg' style='fill:%23fff;width:100%25'>%7Bx%7D</svg>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svgToDataURL(tt.svg, zap.NewNop()); got != tt.want {
				t.Errorf("svgToDataURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuiltinCSS(t *testing.T) {
	out, err := builtinCSS()
	if err != nil {
		t.Fatalf("builtinCSS() error = %v", err)
	}

	// Every keyword gets rules, aliases included, since container classnames
	// carry the keyword as typed.
	for _, marker := range []string{
		".admonish-note",
		".admonish-warning",
		".admonish-caution",
		".admonish-tldr",
		".admonish-quote",
	} {
		if !strings.Contains(out, marker) {
			t.Errorf("builtinCSS() is missing rules for %s", marker)
		}
	}

	if err := checkCSS(out); err != nil {
		t.Errorf("builtinCSS() output failed validation: %v", err)
	}
}

func TestCustomCSS(t *testing.T) {
	tmpDir := t.TempDir()
	iconPath := filepath.Join(tmpDir, "icons", "custom.svg")
	if err := os.MkdirAll(filepath.Dir(iconPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(iconPath, []byte(noteSVG), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &book.Config{
		Custom: []book.CustomDirective{
			{Directive: "whale", Icon: "icons/custom.svg", Color: admonition.HexColor(0x0000ff)},
			{Directive: "expensive", Icon: "icons/custom.svg", Color: admonition.HexColor(0xff0000), Aliases: []string{"pricey"}},
		},
	}

	out, err := CustomCSS(tmpDir, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("CustomCSS() error = %v", err)
	}

	// Natural keyword order, aliases right after their directive.
	offsets := []struct {
		marker string
		at     int
	}{
		{"--md-admonition-icon--admonish-expensive:", 0},
		{"--md-admonition-icon--admonish-pricey:", 0},
		{"--md-admonition-icon--admonish-whale:", 0},
	}
	last := -1
	for i := range offsets {
		offsets[i].at = strings.Index(out, offsets[i].marker)
		if offsets[i].at < 0 {
			t.Fatalf("CustomCSS() output is missing %q", offsets[i].marker)
		}
		if offsets[i].at < last {
			t.Errorf("CustomCSS() emitted %q out of order", offsets[i].marker)
		}
		last = offsets[i].at
	}

	if !strings.Contains(out, "border-color: #ff0000;") {
		t.Error("CustomCSS() is missing the configured tint")
	}
	if !strings.Contains(out, "background-color: rgba(255, 0, 0, 0.1);") {
		t.Error("CustomCSS() is missing the faint tint")
	}
}

func TestCustomCSSErrors(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("no custom directives", func(t *testing.T) {
		if _, err := CustomCSS(tmpDir, &book.Config{}, zap.NewNop()); err == nil {
			t.Error("CustomCSS() accepted a configuration without custom directives")
		}
	})

	t.Run("missing icon file", func(t *testing.T) {
		cfg := &book.Config{
			Custom: []book.CustomDirective{
				{Directive: "ghost", Icon: "no-such-icon.svg", Color: admonition.HexColor(0x112233)},
			},
		}
		if _, err := CustomCSS(tmpDir, cfg, zap.NewNop()); err == nil {
			t.Error("CustomCSS() accepted a missing icon file")
		}
	})

	t.Run("invalid directive keyword", func(t *testing.T) {
		cfg := &book.Config{
			Custom: []book.CustomDirective{
				{Directive: "not a keyword", Icon: "icon.svg", Color: admonition.HexColor(0x112233)},
			},
		}
		if _, err := CustomCSS(tmpDir, cfg, zap.NewNop()); err == nil {
			t.Error("CustomCSS() accepted an invalid directive keyword")
		}
	})
}
