package admonition

import (
	"fmt"
	"html"
	"strings"
)

// HTML renders the block as a styled container. The blank lines around the
// title and body content are deliberate: they let the markdown renderer treat
// the inner content as regular paragraphs instead of literal text, and no
// empty paragraph wrappers appear around the body.
//
// The anchor id sits on the container, never on the title bar. Collapsible
// blocks use the native details/summary disclosure pattern so they work
// without script.
func (r *Resolved) HTML(anchorID string) string {
	ind := strings.Repeat(" ", r.Indent)

	classes := "admonition admonish-" + r.Directive
	if len(r.Classnames) > 0 {
		classes += " " + strings.Join(r.Classnames, " ")
	}

	blockTag, titleTag := "div", "div"
	if r.Collapsible {
		blockTag, titleTag = "details", "summary"
	}

	var titleHTML string
	bodyOpen := ind + "<div>"
	if r.Title != "" {
		// The title may carry inline markup, it is passed to the markdown
		// renderer untouched rather than escaped as plain text.
		titleHTML = fmt.Sprintf(`%[1]s<%[2]s class="admonition-title" role="heading" aria-level="4" id="%[3]s-title">
%[1]s
%[1]s%[4]s
%[1]s
%[1]s<a class="admonition-anchor-link" href="#%[3]s"></a>
%[1]s</%[2]s>
`, ind, titleTag, anchorID, r.Title)
		bodyOpen = fmt.Sprintf(`%s<div role="region" aria-labelledby="%s-title">`, ind, anchorID)
	}

	return fmt.Sprintf(`
%[1]s<%[2]s id="%[3]s" class="%[4]s">
%[5]s%[6]s
%[1]s
%[7]s
%[1]s
%[1]s</div>
%[1]s</%[2]s>`, ind, blockTag, anchorID, classes, titleHTML, bodyOpen, Indent(r.Content, r.Indent))
}

// Strip drops all admonition markup, leaving only the inner content at its
// original indentation. The added newlines stand in for the removed fence
// lines so line numbering survives for downstream tooling.
func (r *Resolved) Strip() string {
	return "\n" + Indent(r.Content, r.Indent) + "\n"
}

// RenderError emits the inline error card used under the continue policy: a
// bug-styled block naming the parse problem and quoting the offending
// annotation, so the rest of the document stays usable.
func RenderError(anchorID, infoString string, indent int, err error) string {
	ind := strings.Repeat(" ", indent)
	return fmt.Sprintf(`
%[1]s<div id="%[2]s" class="admonition admonish-bug">
%[1]s<div class="admonition-title" role="heading" aria-level="4" id="%[2]s-title">
%[1]s
%[1]sError rendering admonishment
%[1]s
%[1]s<a class="admonition-anchor-link" href="#%[2]s"></a>
%[1]s</div>
%[1]s<div role="region" aria-labelledby="%[2]s-title">
%[1]s
%[1]sFailed with: <code>%[3]s</code>
%[1]s
%[1]sOriginal markdown input: <code>%[4]s</code>
%[1]s
%[1]s</div>
%[1]s</div>`, ind, anchorID, html.EscapeString(err.Error()), html.EscapeString(infoString))
}
