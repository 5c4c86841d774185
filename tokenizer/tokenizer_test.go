package tokenizer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomyeh/html5plus/charref"
	"github.com/tomyeh/html5plus/stream"
	"github.com/tomyeh/html5plus/token"
)

// collect drains a Tokenizer built over input with opts into a flat token
// slice, the shape every scenario test below checks against.
func collect(input string, opts Options) []token.Token {
	tz := New(stream.NewFromString(input, ""), opts)
	var toks []token.Token
	for tz.Next() {
		toks = append(toks, tz.Token())
	}
	return toks
}

func typesOf(toks []token.Token) []token.Type {
	types := make([]token.Type, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	return types
}

func TestSimpleElementWithText(t *testing.T) {
	toks := collect("<p>Hi</p>", DefaultOptions())
	require.Equal(t, []token.Type{token.StartTag, token.Characters, token.EndTag}, typesOf(toks))
	assert.Equal(t, "p", toks[0].Name)
	assert.Equal(t, "Hi", toks[1].Data)
	assert.Equal(t, "p", toks[2].Name)
}

func TestNamedEntityFusesIntoSurroundingText(t *testing.T) {
	// The named reference resolves mid-run; the fused-coalescing policy
	// means the whole line still arrives as exactly one Characters token.
	toks := collect("a &amp; b", DefaultOptions())
	require.Equal(t, []token.Type{token.Characters}, typesOf(toks))
	assert.Equal(t, "a & b", toks[0].Data)
}

func TestCharacterCoalescing(t *testing.T) {
	// "a&amp;b": a literal run, an entity, and another literal run must
	// still fuse into a single Characters token rather than three.
	toks := collect("a&amp;b", DefaultOptions())
	require.Equal(t, []token.Type{token.Characters}, typesOf(toks))
	assert.Equal(t, "a&b", toks[0].Data)

	// Characters either side of a tag must NOT fuse across the tag.
	toks = collect("ab<br>cd", DefaultOptions())
	require.Len(t, toks, 3)
	assert.Equal(t, token.Characters, toks[0].Type)
	assert.Equal(t, "ab", toks[0].Data)
	assert.Equal(t, token.StartTag, toks[1].Type)
	assert.Equal(t, "br", toks[1].Name)
	assert.Equal(t, token.Characters, toks[2].Type)
	assert.Equal(t, "cd", toks[2].Data)
}

func TestAmbiguousAmpersandInAttributeStaysLiteral(t *testing.T) {
	toks := collect(`<a href="x?y&lt=1">`, DefaultOptions())
	require.Len(t, toks, 1)
	require.Equal(t, token.StartTag, toks[0].Type)
	require.Len(t, toks[0].Attrs, 1)
	assert.Equal(t, "href", toks[0].Attrs[0].Name)
	assert.Equal(t, "x?y&lt=1", toks[0].Attrs[0].Value)
}

func TestBogusBangAfterDoubleDashInComment(t *testing.T) {
	toks := collect("<!--a--!>", DefaultOptions())
	require.Equal(t, []token.Type{token.ParseError, token.Comment}, typesOf(toks))
	assert.Equal(t, "unexpected-bang-after-double-dash-in-comment", toks[0].ErrorKind)
	assert.Equal(t, "a", toks[1].Data)
}

func TestDoctypeHTML5(t *testing.T) {
	toks := collect("<!DOCTYPE html>", DefaultOptions())
	require.Equal(t, []token.Type{token.Doctype}, typesOf(toks))
	assert.Equal(t, "html", toks[0].Name)
	assert.Nil(t, toks[0].PublicID)
	assert.Nil(t, toks[0].SystemID)
	assert.True(t, toks[0].Correct)
}

func TestCdataSectionPassesThroughAsLiteralCharacters(t *testing.T) {
	tz := New(stream.NewFromString("<![CDATA[x<y]]>", ""), DefaultOptions())
	tz.SetAllowCDATA(true)

	var toks []token.Token
	for tz.Next() {
		toks = append(toks, tz.Token())
	}
	require.Equal(t, []token.Type{token.Characters}, typesOf(toks))
	assert.Equal(t, "x<y", toks[0].Data)
}

func TestCdataSectionDisallowedFallsBackToBogusComment(t *testing.T) {
	// Without SetAllowCDATA(true), "[CDATA[" is rejected and re-emitted as
	// literal bogus-comment data instead of a CDATA section.
	toks := collect("<![CDATA[x]]>", DefaultOptions())
	require.Equal(t, []token.Type{token.Comment}, typesOf(toks))
	assert.Equal(t, "[CDATA[x]]", toks[0].Data)
}

func TestNamedEntityWithoutSemicolonFusesRemainderAndReportsError(t *testing.T) {
	toks := collect("&notin", DefaultOptions())
	require.Equal(t, []token.Type{token.ParseError, token.Characters}, typesOf(toks))
	assert.Equal(t, "named-entity-without-semicolon", toks[0].ErrorKind)
	assert.Equal(t, "¬in", toks[1].Data)
}

func TestSelfClosingNonVoidElementEmitsSyntheticEndTag(t *testing.T) {
	toks := collect("<x/>", DefaultOptions())
	require.Equal(t, []token.Type{token.StartTag, token.EndTag}, typesOf(toks))
	assert.Equal(t, "x", toks[0].Name)
	assert.True(t, toks[0].SelfClosing)
	assert.Equal(t, "x", toks[1].Name)
}

func TestSelfClosingVoidElementEmitsNoSyntheticEndTag(t *testing.T) {
	toks := collect("<br/>", DefaultOptions())
	require.Equal(t, []token.Type{token.StartTag}, typesOf(toks))
	assert.True(t, toks[0].SelfClosing)
}

func TestSelfClosingSyntheticEndTagCanBeDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.EmitSyntheticEndForSelfClosing = false
	toks := collect("<x/>", opts)
	require.Equal(t, []token.Type{token.StartTag}, typesOf(toks))
}

func TestProcessingInstruction(t *testing.T) {
	toks := collect("<?xml version=\"1.0\"?>", DefaultOptions())
	require.Equal(t, []token.Type{token.ProcessingInstruction}, typesOf(toks))
	assert.Equal(t, "xml", toks[0].Target)
	assert.Equal(t, `version="1.0"`, toks[0].Data)
	assert.True(t, toks[0].Correct)
}

func TestProcessingInstructionDisabledFallsBackToBogusComment(t *testing.T) {
	opts := DefaultOptions()
	opts.AllowProcessingInstructions = false
	toks := collect("<?xml?>", opts)
	require.Equal(t, []token.Type{token.ParseError, token.Comment}, typesOf(toks))
	assert.Equal(t, "expected-tag-name", toks[0].ErrorKind)
	assert.Equal(t, "?xml?", toks[1].Data)
}

func TestLowercaseElementAndAttributeNames(t *testing.T) {
	toks := collect(`<DIV CLASS="x">`, DefaultOptions())
	require.Len(t, toks, 1)
	assert.Equal(t, "div", toks[0].Name)
	require.Len(t, toks[0].Attrs, 1)
	assert.Equal(t, "class", toks[0].Attrs[0].Name)
}

func TestLowercasingCanBeDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.LowercaseElementName = false
	opts.LowercaseAttrName = false
	toks := collect(`<DIV CLASS="x">`, opts)
	require.Len(t, toks, 1)
	assert.Equal(t, "DIV", toks[0].Name)
	assert.Equal(t, "CLASS", toks[0].Attrs[0].Name)
}

// TestIdempotentLowercasing asserts that folding an already-lowercase name
// is a no-op.
func TestIdempotentLowercasing(t *testing.T) {
	toks := collect(`<div class="x">`, DefaultOptions())
	require.Len(t, toks, 1)
	assert.Equal(t, "div", toks[0].Name)
	assert.Equal(t, "class", toks[0].Attrs[0].Name)
}

func TestDuplicateAttributeKeepsFirstAndReportsError(t *testing.T) {
	toks := collect(`<a x="1" x="2">`, DefaultOptions())
	require.Equal(t, []token.Type{token.ParseError, token.StartTag}, typesOf(toks))
	assert.Equal(t, "duplicate-attribute", toks[0].ErrorKind)
	require.Len(t, toks[1].Attrs, 1)
	assert.Equal(t, "1", toks[1].Attrs[0].Value)
}

func TestScriptDataEscapedHandlesEmbeddedCommentLikeDashes(t *testing.T) {
	tz := New(stream.NewFromString("<script>var x = 1 <!-- -- --> 2;</script>", ""), DefaultOptions())
	var toks []token.Token
	for tz.Next() {
		tok := tz.Token()
		toks = append(toks, tok)
		if tok.Type == token.StartTag && tok.Name == "script" {
			tz.SetState(ScriptData)
		}
	}
	require.Equal(t, []token.Type{token.StartTag, token.Characters, token.EndTag}, typesOf(toks))
	assert.Equal(t, "var x = 1 <!-- -- --> 2;", toks[1].Data)
	assert.Equal(t, "script", toks[2].Name)
}

func TestRcdataSuppressesTagRecognitionButResolvesEntities(t *testing.T) {
	tz := New(stream.NewFromString("<title>a &lt; b</title>", ""), DefaultOptions())
	// A Collaborator switches content models right after the start tag is
	// emitted; drive it the same way here.
	var toks []token.Token
	for tz.Next() {
		tok := tz.Token()
		toks = append(toks, tok)
		if tok.Type == token.StartTag && tok.Name == "title" {
			tz.SetState(Rcdata)
		}
	}
	require.Equal(t, []token.Type{token.StartTag, token.Characters, token.EndTag}, typesOf(toks))
	assert.Equal(t, "a < b", toks[1].Data)
	assert.Equal(t, "title", toks[2].Name)
}

func TestAppropriateEndTagRequiresMatchingLastStartTag(t *testing.T) {
	// Inside Rawtext, "</span>" is not appropriate (the last start tag was
	// "style"), so it must be treated as literal text, not an end tag.
	tz := New(stream.NewFromString("<style>a</span>b</style>", ""), DefaultOptions())
	var toks []token.Token
	for tz.Next() {
		tok := tz.Token()
		toks = append(toks, tok)
		if tok.Type == token.StartTag && tok.Name == "style" {
			tz.SetState(Rawtext)
		}
	}
	require.Equal(t, []token.Type{token.StartTag, token.Characters, token.EndTag}, typesOf(toks))
	assert.Equal(t, "a</span>b", toks[1].Data)
	assert.Equal(t, "style", toks[2].Name)
}

// --- invariants that hold regardless of input: span coverage, determinism,
// and never emitting a half-built token across Next calls ---

func TestSpansAreMonotonicAndCoverTheWholeInput(t *testing.T) {
	opts := DefaultOptions()
	opts.GenerateSpans = true
	input := "<p>Hi &amp; bye</p>"
	toks := collect(input, opts)

	require.NotEmpty(t, toks)
	runeCount := len([]rune(input))
	prevEnd := 0
	for i, tok := range toks {
		require.NotNil(t, tok.Span, "token %d missing span", i)
		assert.GreaterOrEqual(t, tok.Span.Start, prevEnd, "token %d span starts before previous ended", i)
		assert.LessOrEqual(t, tok.Span.End, runeCount, "token %d span runs past input", i)
		assert.LessOrEqual(t, tok.Span.Start, tok.Span.End)
		prevEnd = tok.Span.End
	}
	assert.Equal(t, runeCount, prevEnd, "spans must cover the entire input")
}

func TestTokenizerIsDeterministic(t *testing.T) {
	input := `<div class="a"><p>x &amp; y</p></div>`
	first := collect(input, DefaultOptions())
	second := collect(input, DefaultOptions())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("tokenizing the same input twice produced different results (-first +second):\n%s", diff)
	}
}

func TestNoHalfTokensAcrossMultipleNextCalls(t *testing.T) {
	// Calling Next/Token repeatedly must never split a single logical token
	// across two Token() results.
	toks := collect(`<a href="one two three">text</a>`, DefaultOptions())
	require.Equal(t, []token.Type{token.StartTag, token.Characters, token.EndTag}, typesOf(toks))
	assert.Equal(t, "one two three", toks[0].Attrs[0].Value)
	assert.Equal(t, "text", toks[1].Data)
}

// --- state-machine table test ---

func TestStateParsers(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		state     state
		wantNext  state
		wantRecon bool
	}{
		{"data on ampersand", "&", dataState, entityDataState, false},
		{"data on tag open", "<", dataState, tagOpenState, false},
		{"tag open on letter", "d", tagOpenState, tagNameState, false},
		{"tag open on bang", "!", tagOpenState, markupDeclarationOpenState, false},
		{"tag open on solidus", "/", tagOpenState, closeTagOpenState, false},
		{"comment start on dash", "-", commentStartState, commentStartDashState, false},
		{"comment end on right bracket", ">", commentEndState, dataState, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tz := New(stream.NewFromString("", ""), DefaultOptions())
			tz.state = tc.state
			r := rune(tc.input[0])
			h := tz.dispatch(tz.state)
			reconsume, next := h(r, false)
			assert.Equal(t, tc.wantRecon, reconsume)
			assert.Equal(t, tc.wantNext, next)
		})
	}
}

func TestInvalidCodepointInDataEmitsErrorButKeepsLiteralNUL(t *testing.T) {
	toks := collect("a\x00b", DefaultOptions())
	require.Equal(t, []token.Type{token.ParseError, token.Characters}, typesOf(toks))
	assert.Equal(t, "invalid-codepoint", toks[0].ErrorKind)
	assert.Equal(t, "a\x00b", toks[1].Data)
}

func TestSpaceCharactersTokenForWhitespaceOnlyRun(t *testing.T) {
	toks := collect("<p> \t\n</p>", DefaultOptions())
	require.Equal(t, []token.Type{token.StartTag, token.SpaceCharacters, token.EndTag}, typesOf(toks))
	assert.True(t, charref.IsWhitespace([]rune(toks[1].Data)[0]))
}
