package preprocess

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/tommilligan/mdbook-admonish/admonition"
	"github.com/tommilligan/mdbook-admonish/assets"
	"github.com/tommilligan/mdbook-admonish/book"
	"github.com/tommilligan/mdbook-admonish/state"
)

// Run implements the default preprocessor protocol: the [context, book] pair
// arrives on stdin, the transformed book leaves on stdout. Everything else,
// logging included, must stay away from stdout.
func Run(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	return run(env, os.Stdin, os.Stdout)
}

func run(env *state.LocalEnv, in io.Reader, out io.Writer) error {
	input, err := book.ParseInput(in)
	if err != nil {
		return err
	}
	if env.Rpt != nil {
		if data, err := json.Marshal(input.Context); err == nil {
			env.Rpt.StoreData("context.json", data)
		}
	}

	cfg, err := book.FromContext(&input.Context)
	if err != nil {
		return err
	}

	mode := cfg.RenderModeFor(input.Context.Renderer)
	env.Log.Debug("Run mode selected",
		zap.String("renderer", input.Context.Renderer),
		zap.Stringer("mode", mode),
		zap.String("mdbook_version", input.Context.MdbookVersion))

	if mode != book.RenderModePreserve {
		if err := assets.CheckVersion(cfg.AssetsVersion); err != nil {
			return err
		}
		table, err := admonition.NewTable(cfg.Definitions())
		if err != nil {
			return err
		}
		err = input.Book.ForEachChapter(func(c *book.Chapter) error {
			content, err := Transform(c.Content, cfg, table, mode, env.Log.With(zap.String("chapter", c.Location())))
			if err != nil {
				return fmt.Errorf("chapter '%s': %w", c.Location(), err)
			}
			c.Content = content
			return nil
		})
		if err != nil {
			return err
		}
	}

	data, err := json.Marshal(input.Book)
	if err != nil {
		return fmt.Errorf("unable to encode book: %w", err)
	}
	if env.Rpt != nil {
		env.Rpt.StoreData("book.json", data)
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write book: %w", err)
	}
	return nil
}

// Transform rewrites every admonition fence in one chapter. Under the
// continue policy a malformed block becomes an inline error card and
// processing keeps going; under bail the first failure aborts with the
// block's source line.
func Transform(content string, cfg *book.Config, table *admonition.Table, mode book.RenderMode, log *zap.Logger) (string, error) {
	blocks := scan(content)
	if len(blocks) == 0 {
		return content, nil
	}

	defaults := cfg.AdmonitionDefaults()
	registry := admonition.NewRegistry()

	var out strings.Builder
	out.Grow(len(content) + len(blocks)*256)
	last := 0
	for _, b := range blocks {
		out.WriteString(content[last:b.start])
		last = b.end

		replacement, err := render(b, table, defaults, registry, mode)
		if err != nil {
			if cfg.OnFailure == book.OnFailureBail {
				return "", fmt.Errorf("invalid admonition block at line %d: %w", b.line, err)
			}
			log.Warn("Rendering admonition failed, emitting error block",
				zap.Int("line", b.line),
				zap.Error(err))
			replacement, err = renderError(b, defaults, registry, err)
			if err != nil {
				return "", err
			}
		}
		out.WriteString(replacement)
	}
	out.WriteString(content[last:])
	return out.String(), nil
}

// render takes one block through parse, reflow, resolve, id assignment and
// rendering.
func render(b *block, table *admonition.Table, defaults admonition.Defaults, registry *admonition.Registry, mode book.RenderMode) (string, error) {
	ann, err := admonition.ParseAnnotation(b.info)
	if err != nil {
		return "", err
	}
	body, err := admonition.Dedent(b.body, b.indent)
	if err != nil {
		return "", err
	}

	resolved := admonition.Resolve(ann, table, defaults)
	resolved.Content = body
	resolved.Indent = b.indent
	resolved.Line = b.line

	id, err := registry.Assign(&resolved)
	if err != nil {
		return "", err
	}

	if mode == book.RenderModeStrip {
		return resolved.Strip(), nil
	}
	return resolved.HTML(id), nil
}

// renderError produces the inline error card. The card still draws its anchor
// from the registry so it cannot collide with healthy blocks.
func renderError(b *block, defaults admonition.Defaults, registry *admonition.Registry, cause error) (string, error) {
	card := admonition.Resolved{
		Directive: "bug",
		ID:        admonition.AnchorID{Prefix: defaults.IDPrefix},
	}
	if card.ID.Prefix == "" {
		card.ID.Prefix = admonition.DefaultIDPrefix
	}
	id, err := registry.Assign(&card)
	if err != nil {
		return "", err
	}

	info := keyword
	if b.info != "" {
		info += " " + b.info
	}
	return admonition.RenderError(id, info, b.indent, cause), nil
}
