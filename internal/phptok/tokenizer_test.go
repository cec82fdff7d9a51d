package phptok

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kindsOf flattens a stream into its kind sequence for table assertions.
func kindsOf(ts *Tokens) []Kind {
	kinds := make([]Kind, 0, ts.Len())
	for i := 0; i < ts.Len(); i++ {
		kinds = append(kinds, ts.At(i).Kind)
	}
	return kinds
}

func TestTokenize_SimpleFunction(t *testing.T) {
	ts := Tokenize(`<?php function foo($a) {}`)

	assert.Equal(t, []Kind{
		KindOpenTag, KindWhitespace, KindFunction, KindWhitespace, KindIdent,
		KindOpenParen, KindVariable, KindCloseParen, KindWhitespace,
		KindOpenBrace, KindCloseBrace,
	}, kindsOf(ts))
	assert.Equal(t, "foo", ts.At(4).Text)
	assert.Equal(t, "$a", ts.At(6).Text)
}

func TestTokenize_RoundTrip(t *testing.T) {
	sources := []string{
		`<?php function foo($a) {}`,
		"<html><body><?php echo 'hi'; ?></body></html>",
		"<?php\n/** @return void */\nfunction foo() {\n    return;\n}\n",
		`<?php $x = $a === 1 ? "yes" : 'no'; // trailing`,
		"<?php # hash comment\nfunction f(): int { return 0x1F + 1.5e-3; }",
		"<?php function gen() { yield from source(); }",
	}
	for _, src := range sources {
		ts := Tokenize(src)
		assert.Equal(t, src, ts.Render())
	}
}

func TestTokenize_KeywordsAreCaseInsensitive(t *testing.T) {
	ts := Tokenize(`<?php FUNCTION Foo() {}`)
	assert.Equal(t, KindFunction, ts.At(2).Kind)
	assert.Equal(t, "FUNCTION", ts.At(2).Text) // original spelling kept
}

func TestTokenize_DocCommentVsComment(t *testing.T) {
	ts := Tokenize("<?php /** doc */ /* plain */ /**/ // line\nfunction f() {}")

	var docs, comments int
	for i := 0; i < ts.Len(); i++ {
		switch ts.At(i).Kind {
		case KindDocComment:
			docs++
		case KindComment:
			comments++
		}
	}
	assert.Equal(t, 1, docs, "only /** doc */ is a doc comment")
	assert.Equal(t, 3, comments, "/* plain */, /**/ and the line comment")
}

func TestTokenize_AttributeIsOneToken(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"<?php #[Pure]\nfunction f() {}", "#[Pure]"},
		{"<?php #[Route('/a]b', methods: [\"GET\"])]\nfunction f() {}", `#[Route('/a]b', methods: ["GET"])]`},
		{"<?php #[Attr([1, [2, 3]])]\nfunction f() {}", "#[Attr([1, [2, 3]])]"},
	}
	for _, tc := range cases {
		ts := Tokenize(tc.src)
		idx := ts.NextOfKind(0, KindAttribute)
		require.NotEqual(t, -1, idx, tc.src)
		assert.Equal(t, tc.want, ts.At(idx).Text)
		assert.Equal(t, tc.src, ts.Render())
	}
}

func TestTokenize_AttributeOnParameterKeepsSignatureIntact(t *testing.T) {
	src := "<?php function f(#[SensitiveParameter] $secret) {}"
	ts := Tokenize(src)

	assert.Equal(t, src, ts.Render())
	assert.NotEqual(t, -1, ts.NextOfKind(0, KindCloseParen),
		"the attribute must not swallow the closing parenthesis")
	assert.NotEqual(t, -1, ts.NextOfKind(0, KindOpenBrace))
}

func TestTokenize_HashCommentWithoutBracketStaysComment(t *testing.T) {
	ts := Tokenize("<?php # not an attribute [really]\nfunction f() {}")
	idx := ts.NextOfKind(0, KindComment)
	require.NotEqual(t, -1, idx)
	assert.Equal(t, "# not an attribute [really]", ts.At(idx).Text)
	assert.Equal(t, -1, ts.NextOfKind(0, KindAttribute))
}

func TestTokenize_YieldFromIsOneToken(t *testing.T) {
	ts := Tokenize("<?php function g() { yield  from gen(); }")

	idx := ts.NextOfKind(0, KindYieldFrom)
	require.NotEqual(t, -1, idx)
	assert.Equal(t, "yield  from", ts.At(idx).Text)
	assert.Equal(t, -1, ts.NextOfKind(0, KindYield), "no bare yield token remains")
}

func TestTokenize_YieldAloneStaysYield(t *testing.T) {
	ts := Tokenize("<?php function g() { yield 1; }")
	assert.NotEqual(t, -1, ts.NextOfKind(0, KindYield))
	assert.Equal(t, -1, ts.NextOfKind(0, KindYieldFrom))
}

func TestTokenize_StringsSwallowKeywords(t *testing.T) {
	ts := Tokenize(`<?php $s = 'function return yield';`)
	assert.Equal(t, -1, ts.NextOfKind(0, KindFunction))
	assert.Equal(t, -1, ts.NextOfKind(0, KindReturn))
}

func TestTokenize_EscapedQuoteInString(t *testing.T) {
	src := `<?php $s = "a \" b";`
	ts := Tokenize(src)
	assert.Equal(t, src, ts.Render())
	idx := ts.NextOfKind(0, KindString)
	require.NotEqual(t, -1, idx)
	assert.Equal(t, `"a \" b"`, ts.At(idx).Text)
}

func TestTokenize_LineCommentStopsAtCloseTag(t *testing.T) {
	ts := Tokenize("<?php // comment ?> html")
	idx := ts.NextOfKind(0, KindCloseTag)
	require.NotEqual(t, -1, idx)
	assert.Equal(t, "// comment ", ts.At(idx-1).Text)
}

func TestTokenize_InlineHTMLAroundTags(t *testing.T) {
	ts := Tokenize("before<?php echo 1; ?>after")
	assert.Equal(t, KindInlineHTML, ts.At(0).Kind)
	assert.Equal(t, "before", ts.At(0).Text)
	assert.Equal(t, KindInlineHTML, ts.At(ts.Len()-1).Kind)
	assert.Equal(t, "after", ts.At(ts.Len()-1).Text)
}

func TestTokenize_Operators(t *testing.T) {
	ts := Tokenize(`<?php $a ??= $b ?-> c() === $d;`)
	var ops []string
	for i := 0; i < ts.Len(); i++ {
		if ts.At(i).Kind == KindOperator {
			ops = append(ops, ts.At(i).Text)
		}
	}
	assert.Equal(t, []string{"??=", "?->", "==="}, ops)
}
