package rules

import (
	"github.com/olehluchkiv/phpfix/internal/config"
	"github.com/olehluchkiv/phpfix/internal/docblock"
	"github.com/olehluchkiv/phpfix/internal/fixer"
	"github.com/olehluchkiv/phpfix/internal/phptok"
)

// PhpdocNoVoidReturn removes "@return void" annotations that merely repeat
// an explicit ": void" declaration on the signature. It is scheduled after
// void_return (see VoidReturn.RunBefore): that rule needs the annotation as
// evidence first, and may itself have added the declaration that makes the
// annotation redundant.
type PhpdocNoVoidReturn struct{}

var _ fixer.Rule = (*PhpdocNoVoidReturn)(nil)

// NewPhpdocNoVoidReturn returns the phpdoc_no_void_return rule.
func NewPhpdocNoVoidReturn() *PhpdocNoVoidReturn { return &PhpdocNoVoidReturn{} }

func (*PhpdocNoVoidReturn) Name() string { return "phpdoc_no_void_return" }

func (*PhpdocNoVoidReturn) Description() string {
	return "Remove @return void annotations from functions that declare a void return type."
}

func (*PhpdocNoVoidReturn) Example() string {
	return "/** @return void */ function foo(): void {}  ->  function foo(): void {}"
}

// Risky is false: only documentation changes, never code.
func (*PhpdocNoVoidReturn) Risky() bool { return false }

func (*PhpdocNoVoidReturn) RunBefore() []string { return nil }

func (*PhpdocNoVoidReturn) Supports(*config.Config) bool { return true }

func (*PhpdocNoVoidReturn) IsCandidate(ts *phptok.Tokens) bool {
	return ts.ContainsKind(phptok.KindFunction) && ts.ContainsKind(phptok.KindDocComment)
}

// Apply visits functions in descending order like every rule here. Unlike
// void_return this rule mutates tokens before the function keyword (the
// doc comment), so after a removal the loop index is pulled back by the
// number of removed tokens to stay aligned.
func (*PhpdocNoVoidReturn) Apply(ts *phptok.Tokens) error {
	for i := ts.Len() - 1; i > 0; i-- {
		if !ts.At(i).Is(phptok.KindFunction) {
			continue
		}

		sigEnd := ts.NextOfKind(i, phptok.KindOpenBrace, phptok.KindSemicolon)
		if sigEnd == -1 || !declaresVoid(ts, sigEnd) {
			continue
		}

		doc := docCommentIndex(ts, i)
		if doc == -1 {
			continue
		}

		removed := stripVoidAnnotations(ts, doc)
		i -= removed
	}
	return nil
}

// declaresVoid reports whether the signature ending at sigEnd has an
// explicit ": void" return type.
func declaresVoid(ts *phptok.Tokens, sigEnd int) bool {
	paren := ts.PrevOfKind(sigEnd, phptok.KindCloseParen)
	if paren == -1 {
		return false
	}
	colon := ts.NextMeaningful(paren)
	if colon == -1 || !ts.At(colon).Is(phptok.KindTypeColon) {
		return false
	}
	typ := ts.NextMeaningful(colon)
	return typ != -1 && ts.At(typ).Is(phptok.KindIdent) && ts.At(typ).EqualsIdent("void")
}

// docCommentIndex walks backward from the function keyword over whitespace,
// modifiers and attributes to the documenting comment, or -1 when there is
// none.
func docCommentIndex(ts *phptok.Tokens, fnIdx int) int {
	i := fnIdx
	for {
		i = ts.PrevNonWhitespace(i)
		if i == -1 {
			return -1
		}
		if !ts.At(i).IsAny(modifierKinds...) {
			break
		}
	}
	if !ts.At(i).Is(phptok.KindDocComment) {
		return -1
	}
	return i
}

// stripVoidAnnotations removes every void-only @return annotation from the
// doc comment at doc. A docblock left without any content is removed
// entirely, together with the whitespace that separated it from the
// declaration. Returns the number of tokens removed from the stream.
func stripVoidAnnotations(ts *phptok.Tokens, doc int) int {
	d := docblock.Parse(ts.At(doc).Text)

	changed := false
	for {
		var target *docblock.Annotation
		for _, a := range d.AnnotationsOf("return") {
			if docblock.IsVoidOnly(a.Content) && d.Removable(a) {
				target = &a
				break
			}
		}
		if target == nil {
			break
		}
		d.Remove(*target)
		changed = true
	}
	if !changed {
		return 0
	}

	if d.Empty() {
		removed := 1
		ts.Remove(doc)
		if doc < ts.Len() && ts.At(doc).Is(phptok.KindWhitespace) {
			ts.Remove(doc)
			removed++
		}
		return removed
	}

	ts.Set(doc, phptok.Token{Kind: phptok.KindDocComment, Text: d.Render()})
	return 0
}
