package phptok

import (
	"fmt"
	"strings"
)

// Tokens is the positionally-addressable token stream for one source file.
// Indices stay valid until a mutation at or before them; the fixer engine
// visits functions in descending order precisely so that insertions never
// invalidate positions it still has to read.
type Tokens struct {
	toks []Token
}

// NewTokens wraps a token slice in a stream. The slice is owned by the
// stream afterwards.
func NewTokens(toks []Token) *Tokens {
	return &Tokens{toks: toks}
}

// Len returns the number of tokens in the stream.
func (ts *Tokens) Len() int { return len(ts.toks) }

// At returns the token at index i. Panics on out-of-range indices the same
// way a slice access would; callers navigate with the query methods below,
// which only hand out valid indices or -1.
func (ts *Tokens) At(i int) Token { return ts.toks[i] }

// ContainsKind reports whether any token of kind k exists in the stream.
// Rules use this as a cheap applicability precondition before scanning.
func (ts *Tokens) ContainsKind(k Kind) bool {
	for _, t := range ts.toks {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// NextMeaningful returns the index of the first token after i that is not
// whitespace and not a comment of any kind, or -1 if none exists.
func (ts *Tokens) NextMeaningful(i int) int {
	for j := i + 1; j < len(ts.toks); j++ {
		if !ts.toks[j].isTrivia() {
			return j
		}
	}
	return -1
}

// PrevMeaningful returns the index of the first token before i that is not
// whitespace and not a comment of any kind, or -1 if none exists.
func (ts *Tokens) PrevMeaningful(i int) int {
	for j := i - 1; j >= 0; j-- {
		if !ts.toks[j].isTrivia() {
			return j
		}
	}
	return -1
}

// PrevNonWhitespace returns the index of the first token before i that is
// not whitespace, or -1. Unlike PrevMeaningful it does NOT skip comments:
// the doc-comment lookup walks backward over modifiers with this query and
// must be able to land on a DocComment token, while an ordinary comment in
// the same position correctly reads as "no documentation".
func (ts *Tokens) PrevNonWhitespace(i int) int {
	for j := i - 1; j >= 0; j-- {
		if ts.toks[j].Kind != KindWhitespace {
			return j
		}
	}
	return -1
}

// NextOfKind returns the index of the first token after i whose kind is one
// of kinds, or -1.
func (ts *Tokens) NextOfKind(i int, kinds ...Kind) int {
	for j := i + 1; j < len(ts.toks); j++ {
		if ts.toks[j].IsAny(kinds...) {
			return j
		}
	}
	return -1
}

// PrevOfKind returns the index of the first token before i whose kind is
// one of kinds, or -1.
func (ts *Tokens) PrevOfKind(i int, kinds ...Kind) int {
	for j := i - 1; j >= 0; j-- {
		if ts.toks[j].IsAny(kinds...) {
			return j
		}
	}
	return -1
}

// BlockEnd returns the index of the delimiter closing the block opened at
// open. Nested blocks of the same kind are balanced. An unmatched block
// means the upstream tokenizer produced a malformed stream; that is a fatal
// per-file condition, not something rules recover from.
func (ts *Tokens) BlockEnd(open int) (int, error) {
	var closeKind Kind
	openKind := ts.toks[open].Kind
	switch openKind {
	case KindOpenBrace:
		closeKind = KindCloseBrace
	case KindOpenParen:
		closeKind = KindCloseParen
	case KindOpenBracket:
		closeKind = KindCloseBracket
	default:
		return -1, fmt.Errorf("token at %d (%s) does not open a block", open, openKind)
	}

	depth := 0
	for j := open; j < len(ts.toks); j++ {
		switch ts.toks[j].Kind {
		case openKind:
			depth++
		case closeKind:
			depth--
			if depth == 0 {
				return j, nil
			}
		}
	}
	return -1, fmt.Errorf("unmatched %s at index %d", openKind, open)
}

// BlockStart returns the index of the delimiter opening the block closed
// at close. The backward counterpart of BlockEnd.
func (ts *Tokens) BlockStart(close int) (int, error) {
	var openKind Kind
	closeKind := ts.toks[close].Kind
	switch closeKind {
	case KindCloseBrace:
		openKind = KindOpenBrace
	case KindCloseParen:
		openKind = KindOpenParen
	case KindCloseBracket:
		openKind = KindOpenBracket
	default:
		return -1, fmt.Errorf("token at %d (%s) does not close a block", close, closeKind)
	}

	depth := 0
	for j := close; j >= 0; j-- {
		switch ts.toks[j].Kind {
		case closeKind:
			depth++
		case openKind:
			depth--
			if depth == 0 {
				return j, nil
			}
		}
	}
	return -1, fmt.Errorf("unmatched %s at index %d", closeKind, close)
}

// InsertAt inserts toks so that the first of them ends up at index i,
// shifting every later token. Indices at or after i held by the caller are
// invalid afterwards.
func (ts *Tokens) InsertAt(i int, toks ...Token) {
	ts.toks = append(ts.toks[:i], append(append([]Token{}, toks...), ts.toks[i:]...)...)
}

// Set replaces the token at index i.
func (ts *Tokens) Set(i int, tok Token) { ts.toks[i] = tok }

// Remove deletes the token at index i, shifting every later token down.
func (ts *Tokens) Remove(i int) {
	ts.toks = append(ts.toks[:i], ts.toks[i+1:]...)
}

// Render reassembles the source text. Tokenize followed by Render is
// lossless: every byte of the input, trivia included, lives in some token.
func (ts *Tokens) Render() string {
	var sb strings.Builder
	for _, t := range ts.toks {
		sb.WriteString(t.Text)
	}
	return sb.String()
}
