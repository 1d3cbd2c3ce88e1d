package admonition

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Annotation is the parsed form of everything following the block keyword on
// a fence opening line. Nil pointers mean "not specified", which matters for
// options whose explicit zero value is meaningful (an empty title suppresses
// the title bar entirely).
type Annotation struct {
	Directive   string
	Title       *string
	ID          *string
	Classnames  []string
	Collapsible *bool
}

// ParseAnnotation parses the fence annotation remainder (everything after the
// leading block keyword, trimmed). Two historical grammars are accepted: the
// current key=value option list and the legacy `directive[.class]* "title"`
// form. The option grammar is tried first; when both fail, its error wins
// since that is the syntax current documents are written in.
func ParseAnnotation(s string) (Annotation, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Annotation{}, nil
	}
	ann, err := parseOptions(s)
	if err == nil {
		return ann, nil
	}
	if legacy, lerr := parseLegacy(s); lerr == nil {
		return legacy, nil
	}
	return Annotation{}, err
}

// lexer walks the annotation byte-wise but only ever advances on rune
// boundaries, so reported offsets are safe to slice on.
type lexer struct {
	s string
	i int
}

func (l *lexer) done() bool {
	return l.i >= len(l.s)
}

func (l *lexer) peek() rune {
	r, _ := utf8.DecodeRuneInString(l.s[l.i:])
	return r
}

func (l *lexer) next() rune {
	r, size := utf8.DecodeRuneInString(l.s[l.i:])
	l.i += size
	return r
}

func (l *lexer) skipSpaces() {
	for !l.done() && unicode.IsSpace(l.peek()) {
		l.next()
	}
}

func isWordRune(r rune) bool {
	return r == '_' || r == '-' || r == '.' ||
		(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// word consumes a bare token of directive/key characters.
func (l *lexer) word() string {
	start := l.i
	for !l.done() && isWordRune(l.peek()) {
		l.next()
	}
	return l.s[start:l.i]
}

// peekWord returns the upcoming bare token without consuming it.
func (l *lexer) peekWord() string {
	save := l.i
	w := l.word()
	l.i = save
	return w
}

// quoted consumes a single- or double-quoted string, decoding backslash
// escapes. The opening quote is at the current position.
func (l *lexer) quoted(key string) (string, error) {
	open := l.i
	quote := l.next()
	var b strings.Builder
	for {
		if l.done() {
			return "", &ParseError{Kind: ErrorKindUnterminatedString, Offset: open, Key: key, Detail: "quote opened here is never closed"}
		}
		r := l.next()
		switch r {
		case quote:
			return b.String(), nil
		case '\\':
			escAt := l.i - 1
			if l.done() {
				return "", &ParseError{Kind: ErrorKindUnterminatedString, Offset: open, Key: key, Detail: "quote opened here is never closed"}
			}
			e := l.next()
			switch e {
			case '\\', '"', '\'', '/':
				b.WriteRune(e)
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				return "", &ParseError{Kind: ErrorKindUnknownEscape, Offset: escAt, Key: key, Detail: fmt.Sprintf("unsupported escape '\\%c'", e)}
			}
		default:
			b.WriteRune(r)
		}
	}
}

// parseOptions parses `[directive[.class]*] key=value[, key=value]*`.
// Key-value pairs may be separated by commas, whitespace or both; values are
// quoted strings except for boolean keys which take bare true/false. Keys may
// repeat, last occurrence wins.
func parseOptions(s string) (Annotation, error) {
	var ann Annotation
	l := &lexer{s: s}
	l.skipSpaces()

	// A leading bare word not followed by '=' is the directive.
	if w := l.peekWord(); w != "" {
		after := l.i + len(w)
		j := after
		for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
			j++
		}
		if j >= len(s) || s[j] != '=' {
			l.i = after
			ann.Directive, ann.Classnames = splitDottedClasses(w)
		}
	}

	var classOption []string
	needSep := false
	for {
		sep := l.i
		l.skipSpaces()
		if l.done() {
			// legacy dotted classnames come first, then the class option
			ann.Classnames = append(ann.Classnames, classOption...)
			return ann, nil
		}
		if l.peek() == ',' {
			comma := l.i
			l.next()
			l.skipSpaces()
			if l.done() {
				return ann, syntaxErr(comma, "trailing comma")
			}
			if l.peek() == ',' {
				return ann, syntaxErr(l.i, "empty option between commas")
			}
		} else if needSep && sep == l.i {
			return ann, syntaxErr(l.i, "expected ',' or whitespace between options")
		}

		keyAt := l.i
		key := l.word()
		if key == "" {
			return ann, syntaxErr(l.i, "expected option key")
		}
		l.skipSpaces()
		if l.done() || l.peek() != '=' {
			return ann, &ParseError{Kind: ErrorKindBadSyntax, Offset: l.i, Key: key, Detail: "expected '=' after option key"}
		}
		l.next() // '='
		l.skipSpaces()

		switch key {
		case "title", "id", "class", "type":
			if l.done() || (l.peek() != '"' && l.peek() != '\'') {
				return ann, &ParseError{Kind: ErrorKindInvalidValue, Offset: l.i, Key: key, Detail: "expected a quoted string value"}
			}
			val, err := l.quoted(key)
			if err != nil {
				return ann, err
			}
			switch key {
			case "title":
				ann.Title = &val
			case "id":
				ann.ID = &val
			case "class":
				classOption = appendClassnames(classOption[:0], strings.Fields(val)...)
			case "type":
				// historical spelling for setting the directive by key
				ann.Directive = val
			}
		case "collapsible":
			valAt := l.i
			switch l.word() {
			case "true":
				v := true
				ann.Collapsible = &v
			case "false":
				v := false
				ann.Collapsible = &v
			default:
				return ann, &ParseError{Kind: ErrorKindInvalidValue, Offset: valAt, Key: key, Detail: "expected true or false"}
			}
		default:
			return ann, &ParseError{Kind: ErrorKindUnknownKey, Offset: keyAt, Key: key, Detail: "unrecognized option"}
		}
		needSep = true
	}
}

// parseLegacy parses the original `directive[.class]* ["quoted title"]` form.
func parseLegacy(s string) (Annotation, error) {
	var ann Annotation

	head := s
	if i := strings.IndexByte(s, ' '); i >= 0 {
		head = s[:i]
		rest := strings.TrimSpace(s[i+1:])
		if rest == "" || rest[0] != '"' {
			return ann, syntaxErr(i+1, "expected a quoted title")
		}
		l := &lexer{s: rest}
		title, err := l.quoted("title")
		if err != nil {
			return ann, err
		}
		l.skipSpaces()
		if !l.done() {
			return ann, syntaxErr(l.i, "unexpected input after title")
		}
		ann.Title = &title
	}

	directive, classnames := splitDottedClasses(head)
	if directive != "" && !ValidDirective(directive) {
		return ann, syntaxErr(0, "not a directive keyword")
	}
	for _, c := range classnames {
		if !ValidDirective(c) {
			return ann, syntaxErr(0, "not a classname")
		}
	}
	ann.Directive = directive
	ann.Classnames = classnames
	return ann, nil
}

// splitDottedClasses splits `directive.class-a.class-b` into the directive
// keyword and its legacy dotted classnames, dropping empty segments.
func splitDottedClasses(token string) (string, []string) {
	parts := strings.Split(token, ".")
	return parts[0], appendClassnames(nil, parts[1:]...)
}

func appendClassnames(dst []string, names ...string) []string {
	for _, n := range names {
		if n != "" {
			dst = append(dst, n)
		}
	}
	if len(dst) == 0 {
		return nil
	}
	return dst
}
