package charref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomyeh/html5plus/stream"
)

// newStreamAfterAmp returns a Stream positioned as if the '&' that starts a
// reference has already been consumed by the tokenizer's Data state, which
// is exactly how Resolve expects to be called.
func newStreamAfterAmp(rest string) *stream.Stream {
	return stream.NewFromString(rest, "")
}

func TestResolveNamedEntityWithSemicolon(t *testing.T) {
	s := newStreamAfterAmp("amp; b")
	res := Resolve(s, 0, false)
	assert.Equal(t, "&", res.Text)
	assert.Empty(t, res.Errors)

	rest := s.CharsUntil(func(rune) bool { return false }, true)
	assert.Equal(t, " b", rest)
}

func TestResolveNamedEntityWithoutSemicolon(t *testing.T) {
	// "notin" longest-matches the legacy "not" entry; the un-matched "in"
	// is pushed back for the caller to read (and, in the tokenizer, fuses
	// right back into the surrounding Characters token).
	s := newStreamAfterAmp("notin")
	res := Resolve(s, 0, false)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "named-entity-without-semicolon", res.Errors[0].Kind)
	assert.Equal(t, "¬", res.Text)

	rest := s.CharsUntil(func(rune) bool { return false }, true)
	assert.Equal(t, "in", rest)
}

func TestResolveLongestMatchPrefersNotinOverNot(t *testing.T) {
	s := newStreamAfterAmp("notin;")
	res := Resolve(s, 0, false)
	assert.Equal(t, "∉", res.Text)
	assert.Empty(t, res.Errors)
}

func TestResolveAmbiguousAmpersandInAttributeStaysLiteral(t *testing.T) {
	// "&notin=" inside an attribute must not resolve to "¬" — the longest
	// legacy match is "not", but the next raw scalar ("i") is a letter, so
	// the historical-compatibility carve-out forces the whole thing to stay
	// literal. Resolve only ever returns the "&not"
	// prefix; the remaining "in=" is left on the stream for the attribute
	// value state to copy through unchanged.
	s := newStreamAfterAmp("notin=")
	res := Resolve(s, '"', true)
	assert.Equal(t, "&not", res.Text)
	assert.Empty(t, res.Errors)

	rest := s.CharsUntil(func(rune) bool { return false }, true)
	assert.Equal(t, "in=", rest)
}

func TestResolveUnknownNamedEntity(t *testing.T) {
	// No table entry starts with 'z': Resolve reports the bare "&" and
	// pushes 'z' back so the caller reads it as an ordinary character.
	s := newStreamAfterAmp("zzzqqq;")
	res := Resolve(s, 0, false)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "expected-named-entity", res.Errors[0].Kind)
	assert.Equal(t, "&", res.Text)

	r, ok := s.Char()
	require.True(t, ok)
	assert.Equal(t, 'z', r)
}

func TestResolveDecimalNumericEntity(t *testing.T) {
	s := newStreamAfterAmp("#65;")
	res := Resolve(s, 0, false)
	assert.Equal(t, "A", res.Text)
	assert.Empty(t, res.Errors)
}

func TestResolveHexNumericEntity(t *testing.T) {
	s := newStreamAfterAmp("#x41;")
	res := Resolve(s, 0, false)
	assert.Equal(t, "A", res.Text)
	assert.Empty(t, res.Errors)
}

func TestResolveNumericEntityMissingSemicolon(t *testing.T) {
	s := newStreamAfterAmp("#65")
	res := Resolve(s, 0, false)
	assert.Equal(t, "A", res.Text)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "numeric-entity-without-semicolon", res.Errors[0].Kind)
}

func TestResolveNumericEntitySurrogateBecomesReplacementChar(t *testing.T) {
	s := newStreamAfterAmp("#xD800;")
	res := Resolve(s, 0, false)
	assert.Equal(t, "�", res.Text)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "illegal-codepoint-for-numeric-entity", res.Errors[0].Kind)
}

func TestResolveNumericEntityWindows1252Remap(t *testing.T) {
	s := newStreamAfterAmp("#x80;")
	res := Resolve(s, 0, false)
	assert.Equal(t, "€", res.Text)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "illegal-codepoint-for-numeric-entity", res.Errors[0].Kind)
}

func TestResolveNumericEntityNoDigits(t *testing.T) {
	s := newStreamAfterAmp("#;")
	res := Resolve(s, 0, false)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "expected-numeric-entity", res.Errors[0].Kind)
	assert.Equal(t, "&#", res.Text)
}

func TestResolveStopsBeforeWhitespace(t *testing.T) {
	s := newStreamAfterAmp(" rest")
	res := Resolve(s, 0, false)
	assert.Equal(t, "&", res.Text)
	assert.Empty(t, res.Errors)

	r, ok := s.Char()
	require.True(t, ok)
	assert.Equal(t, ' ', r)
}

func TestResolveStopsAtAllowedQuoteChar(t *testing.T) {
	s := newStreamAfterAmp("\"rest")
	res := Resolve(s, '"', true)
	assert.Equal(t, "&", res.Text)
	r, ok := s.Char()
	require.True(t, ok)
	assert.Equal(t, '"', r)
}
