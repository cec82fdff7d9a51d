package phptok

import "strings"

// Kind identifies the lexical class of a token.
type Kind int

const (
	KindInvalid Kind = iota

	// Structure of a PHP file.
	KindOpenTag    // "<?php" or "<?="
	KindCloseTag   // "?>"
	KindInlineHTML // raw text outside PHP tags

	// Trivia.
	KindWhitespace
	KindComment    // "//", "#" and "/* ... */"
	KindDocComment // "/** ... */"
	KindAttribute  // "#[ ... ]", one token with its balanced brackets

	// Keywords the fixer cares about. Anything else lexes as KindIdent.
	KindFunction
	KindReturn
	KindYield
	KindYieldFrom // "yield from", fused into one token
	KindAbstract
	KindFinal
	KindPublic
	KindProtected
	KindPrivate
	KindStatic
	KindClass
	KindUse

	KindIdent
	KindVariable // "$name"
	KindNumber
	KindString // quoted literal, quotes included

	// Punctuation.
	KindOpenParen
	KindCloseParen
	KindOpenBrace
	KindCloseBrace
	KindOpenBracket
	KindCloseBracket
	KindSemicolon
	KindComma
	KindColon
	KindQuestion
	KindOperator

	// KindTypeColon is never produced by the tokenizer. The transform pass
	// reclassifies a ":" that follows a parameter list so that return-type
	// positions can be matched structurally instead of by text.
	KindTypeColon
)

var kindNames = map[Kind]string{
	KindInvalid:      "Invalid",
	KindOpenTag:      "OpenTag",
	KindCloseTag:     "CloseTag",
	KindInlineHTML:   "InlineHTML",
	KindWhitespace:   "Whitespace",
	KindComment:      "Comment",
	KindDocComment:   "DocComment",
	KindAttribute:    "Attribute",
	KindFunction:     "Function",
	KindReturn:       "Return",
	KindYield:        "Yield",
	KindYieldFrom:    "YieldFrom",
	KindAbstract:     "Abstract",
	KindFinal:        "Final",
	KindPublic:       "Public",
	KindProtected:    "Protected",
	KindPrivate:      "Private",
	KindStatic:       "Static",
	KindClass:        "Class",
	KindUse:          "Use",
	KindIdent:        "Ident",
	KindVariable:     "Variable",
	KindNumber:       "Number",
	KindString:       "String",
	KindOpenParen:    "OpenParen",
	KindCloseParen:   "CloseParen",
	KindOpenBrace:    "OpenBrace",
	KindCloseBrace:   "CloseBrace",
	KindOpenBracket:  "OpenBracket",
	KindCloseBracket: "CloseBracket",
	KindSemicolon:    "Semicolon",
	KindComma:        "Comma",
	KindColon:        "Colon",
	KindQuestion:     "Question",
	KindOperator:     "Operator",
	KindTypeColon:    "TypeColon",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(?)"
}

// Token is one lexical unit: a kind plus its exact source text.
// Rendering a stream concatenates the texts, so tokens must carry their
// original spelling (including case and surrounding quotes).
type Token struct {
	Kind Kind
	Text string
}

// Is reports whether the token has the given kind.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// IsAny reports whether the token has one of the given kinds.
func (t Token) IsAny(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// EqualsIdent reports whether the token's text matches name ignoring case.
// PHP identifiers such as function names are case-insensitive, so the
// blacklist check must be too ("__CONSTRUCT" is still a constructor).
func (t Token) EqualsIdent(name string) bool {
	return strings.EqualFold(t.Text, name)
}

// isTrivia reports whether the token is whitespace, any comment kind, or
// an attribute. Attributes carry no signature structure of their own, so
// the "meaningful token" navigation queries step over them the same way
// they step over comments.
func (t Token) isTrivia() bool {
	return t.Kind == KindWhitespace || t.Kind == KindComment ||
		t.Kind == KindDocComment || t.Kind == KindAttribute
}
