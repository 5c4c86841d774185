// Package stream implements the tokenizer's input stream: byte decoding
// (with one-shot <meta charset> sniffing), Unicode scalar value iteration
// with a small unget stack, byte-level lookahead for markup-declaration
// and DOCTYPE-keyword matching, and line/column/offset bookkeeping.
package stream

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/pkg/errors"
	"github.com/tomyeh/html5plus/token"
)

// Options configures stream construction: charset handling and the file
// name stamped into generated spans.
type Options struct {
	// File names the source, stamped into generated Span values.
	File string
	// Encoding, if non-empty, overrides charset sniffing entirely.
	Encoding string
	// ParseMeta allows a one-shot <meta charset> / BOM sniff when
	// Encoding is empty.
	ParseMeta bool
}

// Position is a cursor snapshot used for spans and diagnostics.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Stream is a restartable Unicode scalar-value reader over decoded input.
type Stream struct {
	file string
	r    *bufio.Reader

	ungetStack []rune

	line, col, offset int

	errs []token.Token
}

// New decodes raw bytes per Options and returns a ready Stream. When
// Options.Encoding is set, that encoding is used unconditionally. When
// ParseMeta is set and Encoding is empty, the first few kilobytes are
// sniffed for a BOM or <meta charset> directive and the stream is
// transcoded to UTF-8 from there on, irrevocably — sniffing only ever
// happens once, before the first Char call. Otherwise the bytes are
// assumed to already be UTF-8.
func New(r io.Reader, opts Options) (*Stream, error) {
	decoded := r
	switch {
	case opts.Encoding != "":
		dr, err := charset.NewReaderLabel(opts.Encoding, r)
		if err != nil {
			return nil, errors.Wrapf(err, "stream: unsupported encoding %q", opts.Encoding)
		}
		decoded = dr
	case opts.ParseMeta:
		dr, err := charset.NewReader(r, "")
		if err != nil {
			return nil, errors.Wrap(err, "stream: sniffing charset")
		}
		decoded = dr
	}

	return &Stream{
		file: opts.File,
		r:    bufio.NewReader(decoded),
		line: 1,
	}, nil
}

// NewFromString wraps already-decoded text, skipping charset sniffing
// entirely — the constructor tests reach for directly.
func NewFromString(s string, file string) *Stream {
	return &Stream{file: file, r: bufio.NewReader(strings.NewReader(s)), line: 1}
}

// Char advances the cursor by one Unicode scalar value, normalizing
// "\r\n" and a lone "\r" to "\n". ok is false at end-of-input, and any
// read failure from the underlying reader ends the input the same way.
// A malformed UTF-8 byte is recorded as an invalid-codepoint parse error
// and surfaces as U+FFFD so the state machine never has to special-case it.
func (s *Stream) Char() (r rune, ok bool) {
	if n := len(s.ungetStack); n > 0 {
		r = s.ungetStack[n-1]
		s.ungetStack = s.ungetStack[:n-1]
		s.advance(r)
		return r, true
	}

	r, size, err := s.r.ReadRune()
	if err != nil {
		return 0, false
	}
	if r == '�' && size == 1 {
		s.pushError("invalid-codepoint", nil)
	}

	if r == '\r' {
		if next, _, err := s.r.ReadRune(); err == nil && next != '\n' {
			s.r.UnreadRune()
		}
		r = '\n'
	}

	s.advance(r)
	return r, true
}

// Unget pushes one scalar value back onto the stream; the next Char call
// returns it before touching the underlying reader. LIFO, and in
// practice never holds more than the handful of characters a single
// reconsume/backtrack needs.
func (s *Stream) Unget(r rune) {
	s.ungetStack = append(s.ungetStack, r)
	s.retreat(r)
}

// CharsUntil consumes and returns a run of runes matching stop (or, if
// invert, not matching stop), stopping at the first non-match or EOF
// without consuming it.
func (s *Stream) CharsUntil(stop func(rune) bool, invert bool) string {
	var b strings.Builder
	for {
		r, ok := s.Char()
		if !ok {
			return b.String()
		}
		matches := stop(r)
		if invert {
			matches = !matches
		}
		if !matches {
			s.Unget(r)
			return b.String()
		}
		b.WriteRune(r)
	}
}

// Peek returns, without consuming, up to n bytes of ASCII-range
// lookahead — used for markup-declaration and doctype-keyword sniffing,
// both of which operate on ASCII literals. It reads straight off the underlying reader and does not
// interact with the unget stack or touch line/column/offset; callers
// needing both should drain Unget first, and should only rely on Peek
// when nothing is sitting in the unget stack.
func (s *Stream) Peek(n int) ([]byte, error) { return s.r.Peek(n) }

// Discard skips n already-peeked bytes. Like Peek, it bypasses the unget
// stack and does not advance line/column/offset — callers that Discard
// through a lookahead window accept that spans covering that stretch are
// best-effort, not exact.
func (s *Stream) Discard(n int) (int, error) { return s.r.Discard(n) }

// Position returns the current cursor location.
func (s *Stream) Position() Position { return Position{Line: s.line, Column: s.col, Offset: s.offset} }

// File returns the source name stamped into spans.
func (s *Stream) File() string { return s.file }

// Errors drains and returns the decode-level parse errors collected so
// far (e.g. invalid-codepoint from malformed byte sequences).
func (s *Stream) Errors() []token.Token {
	e := s.errs
	s.errs = nil
	return e
}

func (s *Stream) pushError(kind string, params map[string]any) {
	s.errs = append(s.errs, token.Token{Type: token.ParseError, ErrorKind: kind, ErrorParams: params})
}

func (s *Stream) advance(r rune) {
	s.offset++
	if r == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
}

func (s *Stream) retreat(r rune) {
	s.offset--
	if r == '\n' {
		s.line--
	} else if s.col > 0 {
		s.col--
	}
}
