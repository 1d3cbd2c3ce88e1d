// Package preprocess drives the per-chapter transformation: it locates
// admonition fences in markdown source, runs each one through the resolution
// engine and splices the replacement text back into the chapter.
package preprocess

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// keyword marks a fenced code block as an admonition.
const keyword = "admonish"

// block is one discovered admonition fence.
type block struct {
	// start and end delimit the span to replace: from the first column of the
	// opening fence line to the last character of the closing fence line,
	// excluding the trailing newline.
	start int
	end   int
	// info is the annotation after the admonish keyword, trimmed.
	info string
	// body is the raw inner text with its original indentation, right-trimmed.
	body string
	// indent is the column of the opening fence.
	indent int
	// line is the 1-based source line of the opening fence.
	line int
}

// scan finds admonition fences in document order. The markdown parser decides
// what is and is not a fenced code block, which keeps nested fences, indented
// code blocks and admonish examples quoted inside other fences out of the
// result. The exact byte spans are then recovered from the source text, since
// the parser does not expose the fence delimiter lines themselves.
func scan(source string) []*block {
	src := []byte(source)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var blocks []*block
	_ = ast.Walk(doc, func(node ast.Node, enter bool) (ast.WalkStatus, error) {
		if !enter {
			return ast.WalkContinue, nil
		}
		fence, ok := node.(*ast.FencedCodeBlock)
		if !ok || fence.Info == nil {
			return ast.WalkContinue, nil
		}
		infoSeg := fence.Info.Segment
		info := string(src[infoSeg.Start:infoSeg.Stop])
		rest, ok := admonishInfo(info)
		if !ok {
			return ast.WalkContinue, nil
		}
		if b := delimit(source, infoSeg.Start, rest); b != nil {
			blocks = append(blocks, b)
		}
		return ast.WalkContinue, nil
	})
	return blocks
}

// admonishInfo reports whether the info string marks an admonition fence and
// returns the annotation remainder.
func admonishInfo(info string) (string, bool) {
	if info == keyword {
		return "", true
	}
	rest, ok := strings.CutPrefix(info, keyword)
	if !ok || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// delimit recovers the full fence span from the position of its info string.
// It returns nil when the fence shape cannot be handled textually, such as a
// fence nested inside a blockquote; those blocks pass through untouched.
func delimit(source string, infoStart int, info string) *block {
	lineStart := strings.LastIndexByte(source[:infoStart], '\n') + 1

	// opening fence: up to three spaces of indentation, then the delimiter run
	i := lineStart
	for i < len(source) && source[i] == ' ' {
		i++
	}
	indent := i - lineStart
	if i >= len(source) || (source[i] != '`' && source[i] != '~') {
		return nil
	}
	fenceChar := source[i]
	fenceStart := i
	for i < len(source) && source[i] == fenceChar {
		i++
	}
	fenceLen := i - fenceStart
	if fenceLen < 3 {
		return nil
	}

	openEnd := strings.IndexByte(source[i:], '\n')
	if openEnd < 0 {
		// opening fence is the last line of the chapter
		return &block{
			start:  lineStart,
			end:    len(source),
			info:   info,
			indent: indent,
			line:   lineOf(source, lineStart),
		}
	}
	bodyStart := i + openEnd + 1

	// walk line by line looking for the closing fence
	for ls := bodyStart; ls <= len(source); {
		le := strings.IndexByte(source[ls:], '\n')
		if le < 0 {
			le = len(source)
		} else {
			le += ls
		}
		if end, ok := closesFence(source[ls:le], fenceChar, fenceLen, indent); ok {
			return &block{
				start:  lineStart,
				end:    ls + end,
				info:   info,
				body:   strings.TrimRight(source[bodyStart:ls], " \t\r\n"),
				indent: indent,
				line:   lineOf(source, lineStart),
			}
		}
		ls = le + 1
	}

	// unclosed fence, runs to the end of the chapter
	return &block{
		start:  lineStart,
		end:    len(source),
		info:   info,
		body:   strings.TrimRight(source[bodyStart:], " \t\r\n"),
		indent: indent,
		line:   lineOf(source, lineStart),
	}
}

// closesFence reports whether line closes a fence opened with fenceLen
// fenceChar characters at the given indent, returning the length of the
// closing line.
func closesFence(line string, fenceChar byte, fenceLen, indent int) (int, bool) {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	// commonmark allows the closing fence up to three columns extra indentation
	if i > indent+3 {
		return 0, false
	}
	run := 0
	for i+run < len(line) && line[i+run] == fenceChar {
		run++
	}
	if run < fenceLen {
		return 0, false
	}
	if strings.TrimRight(line[i+run:], " \t") != "" {
		return 0, false
	}
	return len(line), true
}

func lineOf(source string, offset int) int {
	return 1 + strings.Count(source[:offset], "\n")
}
