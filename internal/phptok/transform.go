package phptok

// TransformTypeColons reclassifies each ":" that sits in return-type
// position as KindTypeColon, so rules can match the declaration
// structurally instead of by text. A colon qualifies when its previous
// meaningful token is ")" and that parenthesis block belongs to a function
// declaration: a parameter list (named function or closure) or a closure's
// "use" import list. Ternary colons after a call's ")" stay KindColon.
// Run once after Tokenize, before any rule looks at the stream.
func TransformTypeColons(ts *Tokens) {
	for i := 0; i < ts.Len(); i++ {
		if !ts.At(i).Is(KindColon) {
			continue
		}
		if isReturnTypeColon(ts, i) {
			ts.Set(i, Token{Kind: KindTypeColon, Text: ts.At(i).Text})
		}
	}
}

func isReturnTypeColon(ts *Tokens, colon int) bool {
	close := ts.PrevMeaningful(colon)
	if close == -1 || !ts.At(close).Is(KindCloseParen) {
		return false
	}
	open, err := ts.BlockStart(close)
	if err != nil {
		return false
	}

	j := ts.PrevMeaningful(open)
	if j == -1 {
		return false
	}
	if ts.At(j).Is(KindUse) {
		// closure "use (...)" import list
		return true
	}
	if ts.At(j).Is(KindIdent) {
		j = ts.PrevMeaningful(j)
		if j == -1 {
			return false
		}
	}
	// by-reference marker in "function &foo()"
	if ts.At(j).Is(KindOperator) && ts.At(j).Text == "&" {
		j = ts.PrevMeaningful(j)
		if j == -1 {
			return false
		}
	}
	return ts.At(j).Is(KindFunction)
}
