package facet

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPatternSyntax reports an XSD pattern that cannot be expressed in RE2.
var ErrPatternSyntax = errors.New("facet: invalid pattern")

const (
	// XSD \w is everything except punctuation, separators and "other".
	wordClassContent    = `\p{L}\p{M}\p{N}\p{S}`
	notWordClassContent = `\p{P}\p{Z}\p{C}`
	spaceClassContent   = ` \t\n\r`
	// XML 1.0 NameStartChar and NameChar ranges (XSD \i and \c).
	nameStartCharClassContent = `:A-Z_a-z` +
		`\x{C0}-\x{D6}\x{D8}-\x{F6}\x{F8}-\x{2FF}\x{370}-\x{37D}\x{37F}-\x{1FFF}` +
		`\x{200C}-\x{200D}\x{2070}-\x{218F}\x{2C00}-\x{2FEF}\x{3001}-\x{D7FF}` +
		`\x{F900}-\x{FDCF}\x{FDF0}-\x{FFFD}\x{10000}-\x{EFFFF}`
	nameCharClassContent = nameStartCharClassContent +
		`\-.0-9\x{B7}\x{0300}-\x{036F}\x{203F}-\x{2040}`
)

// TranslatePattern translates an XSD 1.0 regular expression into anchored
// RE2 syntax. XSD patterns always match the whole value. Unsupported
// constructs (character class subtraction, Is-block escapes) fail closed.
func TranslatePattern(xsd string) (string, error) {
	rs := []rune(xsd)
	var b strings.Builder
	b.Grow(len(xsd)*2 + 8)
	b.WriteString(`^(?:`)
	inClass := false
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '\\':
			if i+1 >= len(rs) {
				return "", fmt.Errorf("%w: trailing backslash in %q", ErrPatternSyntax, xsd)
			}
			i++
			n, err := translateEscape(rs, &i, inClass)
			if err != nil {
				return "", fmt.Errorf("%w in %q", err, xsd)
			}
			b.WriteString(n)
		case r == '[':
			if inClass {
				return "", fmt.Errorf("%w: nested character class at %d in %q", ErrPatternSyntax, i, xsd)
			}
			inClass = true
			b.WriteByte('[')
			if i+1 < len(rs) && rs[i+1] == '^' {
				b.WriteByte('^')
				i++
			}
		case r == ']' && inClass:
			inClass = false
			b.WriteByte(']')
		case r == '-' && inClass && i+1 < len(rs) && rs[i+1] == '[':
			return "", fmt.Errorf("%w: character class subtraction is not supported in %q", ErrPatternSyntax, xsd)
		case inClass:
			b.WriteRune(r)
		case r == '^' || r == '$':
			// anchors are ordinary characters in XSD
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '.':
			b.WriteString(`[^\n\r]`)
		case r == '(' && i+1 < len(rs) && rs[i+1] == '?':
			return "", fmt.Errorf("%w: group modifiers are not allowed in %q", ErrPatternSyntax, xsd)
		default:
			b.WriteRune(r)
		}
	}
	if inClass {
		return "", fmt.Errorf("%w: unterminated character class in %q", ErrPatternSyntax, xsd)
	}
	b.WriteString(`)$`)
	return b.String(), nil
}

// translateEscape handles the escape whose letter is rs[*i].
func translateEscape(rs []rune, i *int, inClass bool) (string, error) {
	wrap := func(content string) string {
		if inClass {
			return content
		}
		return "[" + content + "]"
	}
	negated := func(content string) (string, error) {
		if inClass {
			return "", fmt.Errorf("%w: negated multi-char escape \\%c inside a character class", ErrPatternSyntax, rs[*i])
		}
		return "[^" + content + "]", nil
	}
	switch c := rs[*i]; c {
	case 'd':
		return `\p{Nd}`, nil
	case 'D':
		return `\P{Nd}`, nil
	case 'w':
		return wrap(wordClassContent), nil
	case 'W':
		return wrap(notWordClassContent), nil
	case 's':
		return wrap(spaceClassContent), nil
	case 'S':
		return negated(spaceClassContent)
	case 'i':
		return wrap(nameStartCharClassContent), nil
	case 'I':
		return negated(nameStartCharClassContent)
	case 'c':
		return wrap(nameCharClassContent), nil
	case 'C':
		return negated(nameCharClassContent)
	case 'p', 'P':
		if *i+1 >= len(rs) || rs[*i+1] != '{' {
			return "", fmt.Errorf("%w: malformed \\%c escape", ErrPatternSyntax, c)
		}
		end := *i + 2
		for end < len(rs) && rs[end] != '}' {
			end++
		}
		if end >= len(rs) {
			return "", fmt.Errorf("%w: unterminated \\%c{", ErrPatternSyntax, c)
		}
		name := string(rs[*i+2 : end])
		if strings.HasPrefix(name, "Is") {
			return "", fmt.Errorf("%w: block escape \\%c{%s} is not supported", ErrPatternSyntax, c, name)
		}
		*i = end
		return `\` + string(c) + "{" + name + "}", nil
	case 'n', 'r', 't', '\\', '|', '.', '-', '^', '?', '*', '+', '{', '}', '(', ')', '[', ']':
		return `\` + string(c), nil
	default:
		return "", fmt.Errorf("%w: unsupported escape \\%c", ErrPatternSyntax, c)
	}
}
