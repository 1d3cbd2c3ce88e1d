// Package assets holds the stylesheet shipped with the preprocessor and the
// version handshake between installed assets and the running binary.
package assets

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

//go:embed mdbook-admonish.css
var baseCSS string

//go:embed VERSION
var version string

// requiredVersion is the range of installed asset versions this binary can
// work with. Bump the major part whenever the rendered HTML structure and the
// stylesheet change together.
const requiredVersion = "^3.0.0"

// BaseCSS returns the directive independent part of the stylesheet. Directive
// styles are appended at install time, see the install package.
func BaseCSS() string {
	return baseCSS
}

// Version is the asset version this binary ships.
func Version() string {
	return strings.TrimSpace(version)
}

// CheckVersion verifies that the assets recorded in book.toml are compatible
// with this binary. An empty version means assets were never installed.
func CheckVersion(installed string) error {
	requirement, err := semver.NewConstraint(requiredVersion)
	if err != nil {
		panic(fmt.Sprintf("bad assets version requirement %q: %v", requiredVersion, err))
	}

	const userAction = "Please run `mdbook-admonish install` to update installed assets."

	if installed == "" {
		return fmt.Errorf("incompatible assets installed: required assets version '%s', but did not find a version; %s", requiredVersion, userAction)
	}
	v, err := semver.NewVersion(installed)
	if err != nil {
		return fmt.Errorf("invalid assets_version '%s' in book.toml: %w; %s", installed, err, userAction)
	}
	if !requirement.Check(v) {
		return fmt.Errorf("incompatible assets installed: required assets version '%s', but found '%s'; %s", requiredVersion, installed, userAction)
	}
	return nil
}
