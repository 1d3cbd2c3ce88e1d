package install

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"github.com/beevik/etree"
	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/maruel/natural"
	"github.com/srwiley/oksvg"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"github.com/tommilligan/mdbook-admonish/admonition"
	"github.com/tommilligan/mdbook-admonish/book"
)

const svgNamespace = "http://www.w3.org/2000/svg"

var rxCollapseNewlines = regexp.MustCompile(`[\r\n]+\s*`)

// Escapes the characters a data url cannot carry verbatim. Double quotes
// become single quotes so the url("...") wrapper stays balanced.
var dataURLEscaper = strings.NewReplacer(
	`"`, "'",
	"%", "%25",
	"#", "%23",
	"{", "%7B",
	"}", "%7D",
)

// directiveTmpl emits the per-directive stylesheet fragment. Its output must
// stay byte identical to the fragments baked into the shipped stylesheet, so
// custom directives look exactly like built-in ones.
var directiveTmpl = template.Must(template.New("directive-css").Funcs(sprig.FuncMap()).Parse(`:root {
  --md-admonition-icon--admonish-{{ .Name }}: {{ .IconURL }};
}

:is(.admonition):is(.admonish-{{ .Name }}) {
  border-color: {{ .Tint }};
}

:is(.admonish-{{ .Name }}) > :is(.admonition-title, summary.admonition-title) {
  background-color: {{ .TintFaint }};
}
:is(.admonish-{{ .Name }}) > :is(.admonition-title, summary.admonition-title)::before {
  background-color: {{ .Tint }};
  mask-image: var(--md-admonition-icon--admonish-{{ .Name }});
  -webkit-mask-image: var(--md-admonition-icon--admonish-{{ .Name }});
  mask-repeat: no-repeat;
  -webkit-mask-repeat: no-repeat;
  mask-size: contain;
  -webkit-mask-repeat: no-repeat;
}
`))

// svgToDataURL packs SVG text into a data url usable as a CSS mask image.
// Newlines and following indentation collapse away first, then the handful of
// characters data urls cannot carry are percent escaped.
func svgToDataURL(svg string, log *zap.Logger) string {
	svg = rxCollapseNewlines.ReplaceAllString(svg, "")

	doc := etree.NewDocument()
	if err := doc.ReadFromString(svg); err != nil {
		log.Warn("Icon is not well-formed XML, it will likely fail to render", zap.Error(err))
	} else if root := doc.Root(); root == nil || root.SelectAttrValue("xmlns", "") != svgNamespace {
		log.Warn("Icon SVG does not declare the SVG namespace, it will likely fail to render",
			zap.String("xmlns", svgNamespace))
	}

	return "data:image/svg+xml;charset=utf-8," + dataURLEscaper.Replace(svg)
}

// directiveCSS renders the stylesheet fragment for one directive keyword.
func directiveCSS(name, dataURL string, tint admonition.Color) (string, error) {
	var sb strings.Builder
	err := directiveTmpl.Execute(&sb, struct {
		Name      string
		IconURL   string
		Tint      string
		TintFaint string
	}{
		Name:      name,
		IconURL:   `url("` + dataURL + `")`,
		Tint:      tint.String(),
		TintFaint: tint.RGBA(0.1),
	})
	if err != nil {
		return "", fmt.Errorf("unable to render stylesheet fragment for %q: %w", name, err)
	}
	return sb.String(), nil
}

// builtinCSS renders fragments for every built-in keyword, aliases included.
// Container classnames carry the keyword as typed, so each alias needs its
// own rules.
func builtinCSS() (string, error) {
	var sb strings.Builder
	for _, def := range admonition.Builtins() {
		names := append([]string{def.Directive}, def.Aliases...)
		for _, name := range names {
			frag, err := directiveCSS(name, def.Icon, def.Color)
			if err != nil {
				return "", err
			}
			sb.WriteString(frag)
		}
	}
	return sb.String(), nil
}

// CustomCSS generates the stylesheet fragment for the custom directives
// configured in cfg. Icon paths resolve relative to bookDir. Directives are
// emitted in natural keyword order so regenerated output diffs cleanly.
func CustomCSS(bookDir string, cfg *book.Config, log *zap.Logger) (string, error) {
	if len(cfg.Custom) == 0 {
		return "", fmt.Errorf("no custom directives configured in book.toml")
	}
	log.Info("Loaded custom directives", zap.Int("count", len(cfg.Custom)))

	directives := make([]book.CustomDirective, len(cfg.Custom))
	copy(directives, cfg.Custom)
	sort.Slice(directives, func(i, j int) bool {
		return natural.Less(directives[i].Directive, directives[j].Directive)
	})

	var sb strings.Builder
	for _, cd := range directives {
		if !admonition.ValidDirective(cd.Directive) {
			return "", fmt.Errorf("invalid custom directive %q", cd.Directive)
		}
		iconPath := filepath.Join(bookDir, cd.Icon)
		svg, err := os.ReadFile(iconPath)
		if err != nil {
			return "", fmt.Errorf("can't read icon file '%s': %w", cd.Icon, err)
		}
		if _, err := oksvg.ReadIconStream(strings.NewReader(string(svg))); err != nil {
			return "", fmt.Errorf("icon file '%s' is not a usable SVG: %w", cd.Icon, err)
		}

		names := append([]string{cd.Directive}, cd.Aliases...)
		for _, name := range names {
			frag, err := directiveCSS(name, svgToDataURL(string(svg), log), cd.Color)
			if err != nil {
				return "", err
			}
			sb.WriteString(frag)
		}
	}

	out := sb.String()
	if err := checkCSS(out); err != nil {
		return "", err
	}
	return out, nil
}

// checkCSS runs the generated stylesheet through a CSS tokenizer to catch
// breakage smuggled in through icon files or color values.
func checkCSS(text string) error {
	p := css.NewParser(parse.NewInput(strings.NewReader(text)), false)
	for {
		gt, _, _ := p.Next()
		if gt != css.ErrorGrammar {
			continue
		}
		if err := p.Err(); !errors.Is(err, io.EOF) {
			return fmt.Errorf("generated stylesheet is not valid CSS: %w", err)
		}
		return nil
	}
}
