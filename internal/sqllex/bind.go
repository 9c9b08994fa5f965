package sqllex

import "strings"

// TokenKind distinguishes the pieces of a SQL template.
type TokenKind int

const (
	// Text is literal SQL copied to the output unchanged.
	Text TokenKind = iota
	// Positional is a "?" placeholder.
	Positional
	// Named is a ":name" placeholder.
	Named
)

// Token is one piece of a tokenized SQL template.
// Name is set for Named tokens only.
type Token struct {
	Kind TokenKind
	Text string
	Name string
}

// Tokenize splits a SQL template into literal text and bind placeholders.
//
// Placeholders inside single-quoted strings, double-quoted identifiers and
// backtick-quoted identifiers are left alone, as are PostgreSQL casts ("::int")
// and a doubled "??", which is copied through verbatim.
func Tokenize(sql string) []Token {
	var (
		tokens []Token
		buf    strings.Builder
		quote  byte
	)

	flush := func() {
		if buf.Len() > 0 {
			tokens = append(tokens, Token{Kind: Text, Text: buf.String()})
			buf.Reset()
		}
	}

	for i := 0; i < len(sql); i++ {
		c := sql[i]

		if quote != 0 {
			buf.WriteByte(c)
			if c == quote {
				quote = 0
			}
			continue
		}

		switch {
		case c == '\'' || c == '"' || c == '`':
			quote = c
			buf.WriteByte(c)
		case c == '?' && i+1 < len(sql) && sql[i+1] == '?':
			buf.WriteString("??")
			i++
		case c == '?':
			flush()
			tokens = append(tokens, Token{Kind: Positional, Text: "?"})
		case c == ':' && i+1 < len(sql) && sql[i+1] == ':':
			buf.WriteString("::")
			i++
		case c == ':' && i+1 < len(sql) && isIdentStart(sql[i+1]):
			j := i + 1
			for j < len(sql) && isIdentPart(sql[j]) {
				j++
			}
			flush()
			tokens = append(tokens, Token{Kind: Named, Text: sql[i:j], Name: sql[i+1 : j]})
			i = j - 1
		default:
			buf.WriteByte(c)
		}
	}
	flush()

	return tokens
}

// CountPositional returns the number of "?" placeholders among tokens.
func CountPositional(tokens []Token) int {
	n := 0
	for _, t := range tokens {
		if t.Kind == Positional {
			n++
		}
	}
	return n
}

// HasNamed reports whether any token is a named placeholder.
func HasNamed(tokens []Token) bool {
	for _, t := range tokens {
		if t.Kind == Named {
			return true
		}
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
