// Package install manages the preprocessor's footprint inside a book: the
// shipped stylesheet, the book.toml wiring and custom directive CSS.
package install

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/tommilligan/mdbook-admonish/assets"
	"github.com/tommilligan/mdbook-admonish/book"
)

const cssFileName = "mdbook-admonish.css"

// LoadBookConfig reads the `[preprocessor.admonish]` table from the book.toml
// found in bookDir. A book without the table yields the zero configuration.
func LoadBookConfig(bookDir string) (*book.Config, error) {
	path := filepath.Join(bookDir, "book.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read configuration file '%s': %w", path, err)
	}
	var doc struct {
		Preprocessor struct {
			Admonish book.Config `toml:"admonish"`
		} `toml:"preprocessor"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("configuration '%s' is not valid TOML: %w", path, err)
	}
	return &doc.Preprocessor.Admonish, nil
}

// Install wires the preprocessor into the book at bookDir: writes the
// stylesheet into cssDir (relative to the book root), registers it under
// `output.html.additional-css` and records the preprocessor command and the
// installed assets version in book.toml.
func Install(bookDir, cssDir string, log *zap.Logger) error {
	cfgPath := filepath.Join(bookDir, "book.toml")
	log.Info("Reading configuration file", zap.String("path", cfgPath))

	original, err := os.ReadFile(cfgPath)
	if err != nil {
		return fmt.Errorf("can't read configuration file '%s': %w", cfgPath, err)
	}
	var doc map[string]any
	if err := toml.Unmarshal(original, &doc); err != nil {
		return fmt.Errorf("configuration is not valid TOML: %w", err)
	}
	if doc == nil {
		doc = make(map[string]any)
	}

	if adm, ok := tableAt(doc, "preprocessor", "admonish"); ok {
		adm["command"] = "mdbook-admonish"
		adm["assets_version"] = assets.Version()
	} else {
		log.Info("Unexpected configuration, not updating preprocessor configuration")
	}

	cssPath := filepath.ToSlash(filepath.Join(cssDir, cssFileName))
	if html, ok := tableAt(doc, "output", "html"); ok {
		if err := appendAdditionalCSS(html, cssPath, log); err != nil {
			log.Warn("Unexpected configuration, not updating 'additional-css'", zap.Error(err))
		}
	} else {
		log.Warn("Unexpected configuration, not updating 'additional-css'")
	}

	if err := writeStylesheet(filepath.Join(bookDir, cssDir, cssFileName), log); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("can't encode configuration: %w", err)
	}
	if !bytes.Equal(buf.Bytes(), original) {
		log.Info("Saving changed configuration", zap.String("path", cfgPath))
		if err := os.WriteFile(cfgPath, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("can't write configuration: %w", err)
		}
	} else {
		log.Info("Configuration already up to date", zap.String("path", cfgPath))
	}

	log.Info("mdbook-admonish is now installed. You can start using it in your book.")
	log.Info("Add a code block like:\n```admonish warning\nA beautifully styled message.\n```")
	return nil
}

// writeStylesheet emits the shipped base stylesheet plus the per-directive
// fragments for every built-in keyword.
func writeStylesheet(path string, log *zap.Logger) error {
	directives, err := builtinCSS()
	if err != nil {
		return err
	}
	log.Info("Copying stylesheet", zap.String("path", path))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("can't create stylesheet directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(assets.BaseCSS()+directives), 0644); err != nil {
		return fmt.Errorf("can't write stylesheet: %w", err)
	}
	return nil
}

// tableAt walks nested tables by key, creating missing ones along the way.
// It reports failure when an existing value on the path is not a table.
func tableAt(doc map[string]any, keys ...string) (map[string]any, bool) {
	cur := doc
	for _, k := range keys {
		next, exists := cur[k]
		if !exists {
			m := make(map[string]any)
			cur[k] = m
			cur = m
			continue
		}
		m, ok := next.(map[string]any)
		if !ok {
			return nil, false
		}
		cur = m
	}
	return cur, true
}

func appendAdditionalCSS(html map[string]any, cssPath string, log *zap.Logger) error {
	var list []any
	if raw, exists := html["additional-css"]; exists {
		var ok bool
		if list, ok = raw.([]any); !ok {
			return fmt.Errorf("'additional-css' is not an array")
		}
	}
	for _, item := range list {
		if s, ok := item.(string); ok && s == cssPath {
			return nil
		}
	}
	log.Info("Adding stylesheet to 'additional-css'", zap.String("path", cssPath))
	html["additional-css"] = append(list, cssPath)
	return nil
}
