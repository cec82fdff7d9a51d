package docblock

import "regexp"

// returnVoidRe matches "@return", whitespace, then the word "void". What
// follows the match decides the classification; Go's regexp has no
// negative lookahead, so the "(?!\|)" part of the original pattern is
// checked on the trailing text instead.
var returnVoidRe = regexp.MustCompile(`^@return\s+void`)

// IsVoidOnly reports whether a return annotation declares exactly void.
// "@return void" and "@return void some description" qualify; a union
// type such as "@return void|Foo" does not, and neither does a longer
// word like "@return voidness". This predicate is the crux of the
// documentation-vs-void distinction: a non-void annotation must never be
// overridden by body analysis.
func IsVoidOnly(content string) bool {
	loc := returnVoidRe.FindStringIndex(content)
	if loc == nil {
		return false
	}
	rest := content[loc[1]:]
	if rest == "" {
		return true
	}
	switch c := rest[0]; {
	case c == '|':
		return false // union type, e.g. "void|Foo"
	case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'):
		return false // longer word, not exactly "void"
	}
	return true
}
