// Package rules contains the rewrite rules shipped with phpfix.
package rules

import (
	"github.com/olehluchkiv/phpfix/internal/config"
	"github.com/olehluchkiv/phpfix/internal/docblock"
	"github.com/olehluchkiv/phpfix/internal/fixer"
	"github.com/olehluchkiv/phpfix/internal/phptok"
)

// methodBlacklist lists the magic methods that must never receive a return
// type: PHP rejects a type on constructors and destructors, and a typed
// __clone is a fatal error. Names are compared case-insensitively.
var methodBlacklist = []string{"__construct", "__destruct", "__clone"}

// modifierKinds may appear between a doc comment and the function keyword:
// modifier keywords and attributes. Both are stepped over when looking for
// the documenting comment.
var modifierKinds = []phptok.Kind{
	phptok.KindAbstract, phptok.KindFinal, phptok.KindPublic,
	phptok.KindProtected, phptok.KindPrivate, phptok.KindStatic,
	phptok.KindAttribute,
}

// VoidReturn adds ": void" to functions that provably return nothing:
// either the body never returns a value and never yields, or a headerless
// declaration is documented as "@return void". Documented intent always
// wins over body analysis, and every ambiguous case is a skip.
type VoidReturn struct{}

var _ fixer.Rule = (*VoidReturn)(nil)

// NewVoidReturn returns the void_return rule.
func NewVoidReturn() *VoidReturn { return &VoidReturn{} }

func (*VoidReturn) Name() string { return "void_return" }

func (*VoidReturn) Description() string {
	return "Add void return type to functions with missing or only empty return statements."
}

func (*VoidReturn) Example() string {
	return "function foo($a) {}  ->  function foo($a): void {}"
}

// Risky because the rewrite changes a signature: a subclass or interface
// implementation without the type becomes incompatible.
func (*VoidReturn) Risky() bool { return true }

// RunBefore keeps this rule ahead of any rule that derives return types
// from other evidence, and ahead of the rule that strips "@return void"
// docs as redundant — those docs are this rule's evidence for headerless
// declarations. return_type_declaration is not shipped here; the
// constraint is vacuous until such a rule is registered.
func (*VoidReturn) RunBefore() []string {
	return []string{"phpdoc_no_void_return", "return_type_declaration"}
}

// Supports requires PHP 7.1, the first version with the void return type.
func (*VoidReturn) Supports(cfg *config.Config) bool {
	return cfg.VersionAtLeast(7, 1)
}

func (*VoidReturn) IsCandidate(ts *phptok.Tokens) bool {
	return ts.ContainsKind(phptok.KindFunction)
}

// Apply visits every function keyword in descending stream order, so that
// an insertion for one function never shifts the positions of functions
// still to be examined. Each function is mutated at most once.
func (*VoidReturn) Apply(ts *phptok.Tokens) error {
	for i := ts.Len() - 1; i > 0; i-- {
		if !ts.At(i).Is(phptok.KindFunction) {
			continue
		}

		name := ts.NextMeaningful(i)
		if name == -1 {
			continue
		}
		if isBlacklisted(ts.At(name)) {
			continue
		}

		// End of signature: the body's "{" or the ";" of a headerless
		// declaration (interface or abstract method).
		sigEnd := ts.NextOfKind(i, phptok.KindOpenBrace, phptok.KindSemicolon)
		if sigEnd == -1 {
			continue
		}
		if hasReturnTypeHint(ts, sigEnd) {
			continue
		}

		if ts.At(sigEnd).Is(phptok.KindSemicolon) {
			// No body to analyze: only a void-only doc annotation is
			// evidence enough.
			if !hasVoidOnlyAnnotation(ts, i) {
				continue
			}
		} else {
			if hasNonVoidAnnotation(ts, i) {
				continue
			}
			end, err := ts.BlockEnd(sigEnd)
			if err != nil {
				return err
			}
			if !isVoidCompatible(ts, sigEnd, end) {
				continue
			}
		}

		insertVoidType(ts, sigEnd)
	}
	return nil
}

func isBlacklisted(tok phptok.Token) bool {
	for _, name := range methodBlacklist {
		if tok.EqualsIdent(name) {
			return true
		}
	}
	return false
}

// hasReturnTypeHint reports whether the signature ending at sigEnd already
// declares a return type: the first meaningful token after the parameter
// list's ")" is the type colon.
func hasReturnTypeHint(ts *phptok.Tokens, sigEnd int) bool {
	paren := ts.PrevOfKind(sigEnd, phptok.KindCloseParen)
	if paren == -1 {
		return true // malformed signature, never rewrite
	}
	next := ts.NextMeaningful(paren)
	return next != -1 && ts.At(next).Is(phptok.KindTypeColon)
}

// returnAnnotations finds the doc comment that documents the function at
// fnIdx and returns its "@return" annotations. The backward walk skips
// whitespace, modifier keywords and attributes only: an ordinary comment
// between the doc comment and the function hides the documentation, by the
// same navigation contract the tests on phptok pin down.
func returnAnnotations(ts *phptok.Tokens, fnIdx int) []docblock.Annotation {
	i := fnIdx
	for {
		i = ts.PrevNonWhitespace(i)
		if i == -1 {
			return nil
		}
		if !ts.At(i).IsAny(modifierKinds...) {
			break
		}
	}
	if !ts.At(i).Is(phptok.KindDocComment) {
		return nil
	}
	return docblock.Parse(ts.At(i).Text).AnnotationsOf("return")
}

// hasNonVoidAnnotation reports whether any documented return type is
// something other than exactly void (unions like "void|Foo" included).
func hasNonVoidAnnotation(ts *phptok.Tokens, fnIdx int) bool {
	for _, a := range returnAnnotations(ts, fnIdx) {
		if !docblock.IsVoidOnly(a.Content) {
			return true
		}
	}
	return false
}

// hasVoidOnlyAnnotation reports whether any documented return type is
// exactly void.
func hasVoidOnlyAnnotation(ts *phptok.Tokens, fnIdx int) bool {
	for _, a := range returnAnnotations(ts, fnIdx) {
		if docblock.IsVoidOnly(a.Content) {
			return true
		}
	}
	return false
}

// isVoidCompatible scans the body between open and end in one pass. Any
// yield makes the function a generator, which cannot declare void; any
// return followed by something other than ";" carries a value. Both
// short-circuit. A body with no return at all falls through, which is
// void-compatible.
func isVoidCompatible(ts *phptok.Tokens, open, end int) bool {
	for j := open; j < end; j++ {
		if ts.At(j).IsAny(phptok.KindYield, phptok.KindYieldFrom) {
			return false
		}
		if !ts.At(j).Is(phptok.KindReturn) {
			continue
		}
		next := ts.NextMeaningful(j)
		if next == -1 || !ts.At(next).Is(phptok.KindSemicolon) {
			return false
		}
	}
	return true
}

// insertVoidType inserts ": void" right after the parameter list's ")".
// By-reference markers, nullable parameters and defaults are untouched
// because the insertion point is strictly after the closing parenthesis.
func insertVoidType(ts *phptok.Tokens, sigEnd int) {
	paren := ts.PrevOfKind(sigEnd, phptok.KindCloseParen)
	ts.InsertAt(paren+1,
		phptok.Token{Kind: phptok.KindTypeColon, Text: ":"},
		phptok.Token{Kind: phptok.KindWhitespace, Text: " "},
		phptok.Token{Kind: phptok.KindIdent, Text: "void"},
	)
}
