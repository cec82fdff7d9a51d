package phptok

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The doc-comment lookup and the signature lookup deliberately use two
// different navigation queries. These tests pin down exactly which trivia
// each one skips, because the doc classifier depends on the difference.

func TestNextMeaningful_SkipsAllTrivia(t *testing.T) {
	ts := Tokenize("<?php function /* c */ /** d */ foo() {}")

	fn := ts.NextOfKind(0, KindFunction)
	require.NotEqual(t, -1, fn)

	name := ts.NextMeaningful(fn)
	require.NotEqual(t, -1, name)
	assert.Equal(t, KindIdent, ts.At(name).Kind, "comments and doc comments are skipped forward")
	assert.Equal(t, "foo", ts.At(name).Text)
}

func TestPrevNonWhitespace_StopsAtDocComment(t *testing.T) {
	ts := Tokenize("<?php /** @return void */ public static function foo() {}")

	fn := ts.NextOfKind(0, KindFunction)
	require.NotEqual(t, -1, fn)

	// Walk back over the modifiers the way the doc classifier does.
	i := ts.PrevNonWhitespace(fn)
	for ts.At(i).IsAny(KindAbstract, KindFinal, KindPublic, KindProtected, KindPrivate, KindStatic) {
		i = ts.PrevNonWhitespace(i)
	}
	assert.Equal(t, KindDocComment, ts.At(i).Kind)
}

func TestPrevNonWhitespace_DoesNotSkipPlainComment(t *testing.T) {
	// An ordinary comment between doc and function hides the doc comment:
	// the backward walk lands on the comment, which reads as "no docs".
	ts := Tokenize("<?php /** @return void */ /* note */ function foo() {}")

	fn := ts.NextOfKind(0, KindFunction)
	i := ts.PrevNonWhitespace(fn)
	assert.Equal(t, KindComment, ts.At(i).Kind)
}

func TestNextMeaningful_SkipsAttributes(t *testing.T) {
	ts := Tokenize("<?php function f(#[A] $x) {}")

	open := ts.NextOfKind(0, KindOpenParen)
	require.NotEqual(t, -1, open)

	next := ts.NextMeaningful(open)
	assert.Equal(t, KindVariable, ts.At(next).Kind, "the parameter attribute is stepped over")
}

func TestPrevMeaningful_SkipsComments(t *testing.T) {
	ts := Tokenize("<?php foo() /* c */ ;")
	semi := ts.NextOfKind(0, KindSemicolon)
	prev := ts.PrevMeaningful(semi)
	assert.Equal(t, KindCloseParen, ts.At(prev).Kind)
}

func TestNextOfKind_And_PrevOfKind(t *testing.T) {
	ts := Tokenize("<?php function foo($a) { return; }")

	brace := ts.NextOfKind(0, KindOpenBrace, KindSemicolon)
	require.NotEqual(t, -1, brace)
	assert.Equal(t, KindOpenBrace, ts.At(brace).Kind)

	paren := ts.PrevOfKind(brace, KindCloseParen)
	require.NotEqual(t, -1, paren)
	assert.Equal(t, ")", ts.At(paren).Text)

	assert.Equal(t, -1, ts.NextOfKind(brace, KindFunction))
	assert.Equal(t, -1, ts.PrevOfKind(0, KindCloseBrace))
}

func TestBlockEnd_Nested(t *testing.T) {
	ts := Tokenize("<?php function f() { if ($a) { g(); } }")

	open := ts.NextOfKind(0, KindOpenBrace)
	end, err := ts.BlockEnd(open)
	require.NoError(t, err)
	assert.Equal(t, ts.Len()-1, end, "outer close brace is the last token")
}

func TestBlockEnd_Unmatched(t *testing.T) {
	ts := Tokenize("<?php function f() { if ($a) {")
	open := ts.NextOfKind(0, KindOpenBrace)
	_, err := ts.BlockEnd(open)
	assert.Error(t, err)
}

func TestBlockEnd_NotAnOpener(t *testing.T) {
	ts := Tokenize("<?php foo();")
	_, err := ts.BlockEnd(0)
	assert.Error(t, err)
}

func TestBlockStart_Nested(t *testing.T) {
	ts := Tokenize("<?php f(g($a), $b)")
	last := ts.Len() - 1
	require.Equal(t, KindCloseParen, ts.At(last).Kind)
	start, err := ts.BlockStart(last)
	require.NoError(t, err)
	assert.Equal(t, KindOpenParen, ts.At(start).Kind)
	assert.Equal(t, "f", ts.At(ts.PrevMeaningful(start)).Text)
}

func TestInsertAt_ShiftsLaterTokens(t *testing.T) {
	ts := Tokenize("<?php function foo() {}")
	paren := ts.NextOfKind(0, KindCloseParen)
	lenBefore := ts.Len()

	ts.InsertAt(paren+1,
		Token{Kind: KindTypeColon, Text: ":"},
		Token{Kind: KindWhitespace, Text: " "},
		Token{Kind: KindIdent, Text: "void"},
	)

	assert.Equal(t, lenBefore+3, ts.Len())
	assert.Equal(t, "<?php function foo(): void {}", ts.Render())
}

func TestContainsKind(t *testing.T) {
	ts := Tokenize("<?php $x = 1;")
	assert.False(t, ts.ContainsKind(KindFunction))
	assert.True(t, ts.ContainsKind(KindVariable))
}

func TestRemove(t *testing.T) {
	ts := Tokenize("<?php /** doc */ function foo() {}")
	doc := ts.NextOfKind(0, KindDocComment)
	require.NotEqual(t, -1, doc)
	ts.Remove(doc)
	ts.Remove(doc) // the whitespace that followed the doc comment
	assert.Equal(t, "<?php function foo() {}", ts.Render())
}

func TestEqualsIdent_CaseInsensitive(t *testing.T) {
	tok := Token{Kind: KindIdent, Text: "__CONSTRUCT"}
	assert.True(t, tok.EqualsIdent("__construct"))
	assert.False(t, tok.EqualsIdent("__destruct"))
}
