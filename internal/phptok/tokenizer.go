package phptok

import (
	"strings"
)

// keywords maps lowercased identifier text to a dedicated keyword kind.
// PHP keywords are case-insensitive; only the ones the rules inspect get
// their own kind, everything else stays KindIdent.
var keywords = map[string]Kind{
	"function":  KindFunction,
	"return":    KindReturn,
	"yield":     KindYield,
	"abstract":  KindAbstract,
	"final":     KindFinal,
	"public":    KindPublic,
	"protected": KindProtected,
	"private":   KindPrivate,
	"static":    KindStatic,
	"class":     KindClass,
	"use":       KindUse,
}

// multiCharOps are matched with maximal munch before single characters.
// Longest first within each leading character.
var multiCharOps = []string{
	"===", "!==", "<=>", "**=", "...", "??=",
	"==", "!=", "<>", "<=", ">=", "&&", "||", "??", "?->",
	"->", "=>", "::", "++", "--", "+=", "-=", "*=", "/=", ".=", "%=",
	"<<", ">>", "**", "|=", "&=", "^=",
}

var singleCharKinds = map[byte]Kind{
	'(': KindOpenParen,
	')': KindCloseParen,
	'{': KindOpenBrace,
	'}': KindCloseBrace,
	'[': KindOpenBracket,
	']': KindCloseBracket,
	';': KindSemicolon,
	',': KindComma,
	':': KindColon,
	'?': KindQuestion,
}

// Tokenize lexes a PHP source file into a stream. The lexer covers the
// subset of PHP the fixer needs to navigate reliably: tags, trivia, quoted
// strings, variables, numbers, identifiers and punctuation. Heredoc and
// nowdoc bodies are not recognized.
func Tokenize(src string) *Tokens {
	l := &lexer{src: src}
	l.run()
	return NewTokens(l.toks)
}

type lexer struct {
	src   string
	pos   int
	inPHP bool
	toks  []Token
}

func (l *lexer) emit(k Kind, text string) {
	l.toks = append(l.toks, Token{Kind: k, Text: text})
	l.pos += len(text)
}

func (l *lexer) rest() string { return l.src[l.pos:] }

func (l *lexer) run() {
	for l.pos < len(l.src) {
		if !l.inPHP {
			l.lexHTML()
			continue
		}
		l.lexPHP()
	}
}

// lexHTML consumes everything up to the next open tag as inline HTML.
func (l *lexer) lexHTML() {
	rest := l.rest()
	idx := strings.Index(rest, "<?")
	if idx == -1 {
		l.emit(KindInlineHTML, rest)
		return
	}
	if idx > 0 {
		l.emit(KindInlineHTML, rest[:idx])
		rest = l.rest()
	}
	switch {
	case hasFoldPrefix(rest, "<?php"):
		l.emit(KindOpenTag, rest[:len("<?php")])
	case strings.HasPrefix(rest, "<?="):
		l.emit(KindOpenTag, rest[:len("<?=")])
	default:
		l.emit(KindOpenTag, rest[:len("<?")])
	}
	l.inPHP = true
}

func (l *lexer) lexPHP() {
	rest := l.rest()
	c := rest[0]

	switch {
	case strings.HasPrefix(rest, "?>"):
		l.emit(KindCloseTag, "?>")
		l.inPHP = false

	case isSpace(c):
		l.emit(KindWhitespace, leadingRun(rest, isSpace))

	case strings.HasPrefix(rest, "/**") && !strings.HasPrefix(rest, "/**/"):
		l.emit(KindDocComment, blockComment(rest))

	case strings.HasPrefix(rest, "/*"):
		l.emit(KindComment, blockComment(rest))

	case strings.HasPrefix(rest, "#["):
		l.emit(KindAttribute, attribute(rest))

	case strings.HasPrefix(rest, "//") || c == '#':
		l.emit(KindComment, lineComment(rest))

	case c == '\'' || c == '"':
		l.emit(KindString, quotedString(rest, c))

	case c == '$':
		name := leadingRun(rest[1:], isIdentChar)
		l.emit(KindVariable, rest[:1+len(name)])

	case c >= '0' && c <= '9':
		l.emit(KindNumber, numberLiteral(rest))

	case isIdentStart(c):
		word := leadingRun(rest, isIdentChar)
		kind, isKw := keywords[strings.ToLower(word)]
		if !isKw {
			kind = KindIdent
		}
		// "yield from" is one token in PHP, whitespace included.
		if kind == KindYield {
			if fused, ok := yieldFrom(rest, len(word)); ok {
				l.emit(KindYieldFrom, fused)
				return
			}
		}
		l.emit(kind, word)

	default:
		for _, op := range multiCharOps {
			if strings.HasPrefix(rest, op) {
				l.emit(KindOperator, op)
				return
			}
		}
		if kind, ok := singleCharKinds[c]; ok {
			l.emit(kind, rest[:1])
			return
		}
		l.emit(KindOperator, rest[:1])
	}
}

// yieldFrom checks whether the word "yield" at the head of rest is followed
// by whitespace and "from", and returns the fused token text if so.
func yieldFrom(rest string, yieldLen int) (string, bool) {
	i := yieldLen
	for i < len(rest) && isSpace(rest[i]) {
		i++
	}
	if i == yieldLen {
		return "", false
	}
	tail := leadingRun(rest[i:], isIdentChar)
	if !strings.EqualFold(tail, "from") {
		return "", false
	}
	return rest[:i+len(tail)], true
}

func blockComment(rest string) string {
	if end := strings.Index(rest[2:], "*/"); end != -1 {
		return rest[:2+end+2]
	}
	return rest // unterminated comment swallows the remainder of the file
}

// attribute consumes "#[" through its matching "]". Attribute arguments
// may nest brackets (array literals) and may contain "]" inside quoted
// strings, so the scan tracks bracket depth and steps over string
// literals whole.
func attribute(rest string) string {
	depth := 0
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '\'', '"':
			s := quotedString(rest[i:], rest[i])
			i += len(s) - 1
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return rest[:i+1]
			}
		}
	}
	return rest // unterminated attribute swallows the remainder of the file
}

func lineComment(rest string) string {
	end := len(rest)
	if i := strings.IndexAny(rest, "\r\n"); i != -1 {
		end = i
	}
	// A close tag terminates a line comment mid-line in PHP.
	if i := strings.Index(rest, "?>"); i != -1 && i < end {
		end = i
	}
	return rest[:end]
}

func quotedString(rest string, quote byte) string {
	for i := 1; i < len(rest); i++ {
		switch rest[i] {
		case '\\':
			i++ // skip the escaped character
		case quote:
			return rest[:i+1]
		}
	}
	return rest // unterminated string swallows the remainder of the file
}

func numberLiteral(rest string) string {
	i := 0
	if strings.HasPrefix(rest, "0x") || strings.HasPrefix(rest, "0X") {
		i = 2
		for i < len(rest) && (isHexDigit(rest[i]) || rest[i] == '_') {
			i++
		}
		return rest[:i]
	}
	digits := func() {
		for i < len(rest) && (isDigit(rest[i]) || rest[i] == '_') {
			i++
		}
	}
	digits()
	if i < len(rest) && rest[i] == '.' && i+1 < len(rest) && isDigit(rest[i+1]) {
		i++
		digits()
	}
	if i < len(rest) && (rest[i] == 'e' || rest[i] == 'E') {
		j := i + 1
		if j < len(rest) && (rest[j] == '+' || rest[j] == '-') {
			j++
		}
		if j < len(rest) && isDigit(rest[j]) {
			i = j
			digits()
		}
	}
	return rest[:i]
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func leadingRun(s string, pred func(byte) bool) string {
	i := 0
	for i < len(s) && pred(s[i]) {
		i++
	}
	return s[:i]
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentChar(c byte) bool { return isIdentStart(c) || isDigit(c) }
