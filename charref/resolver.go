package charref

import (
	"strconv"
	"strings"

	"github.com/tomyeh/html5plus/stream"
)

// ParseErr is one parse error raised while resolving a character
// reference, in source order. The tokenizer turns each into a
// token.ParseError and interleaves it with whatever Characters token the
// resolution ultimately produces.
type ParseErr struct {
	Kind   string
	Params map[string]any
}

// Result is the outcome of resolving a single '&'-introduced reference.
type Result struct {
	// Text is the literal/replacement text to emit or append to an
	// attribute value.
	Text string
	// Errors raised along the way, in source order.
	Errors []ParseErr
}

func lit(s string) Result { return Result{Text: s} }

// Resolve consumes a character reference starting right after its '&'. s is
// positioned just after the '&' that triggered the call. allowedChar is
// the active attribute quote (or '>' for unquoted attribute values, or 0
// when not called from an attribute context). fromAttribute selects the
// historical-compatibility carve-out for ambiguous ampersands inside
// attribute values.
func Resolve(s *stream.Stream, allowedChar rune, fromAttribute bool) Result {
	r, ok := s.Char()
	if !ok || IsWhitespace(r) || r == '<' || r == '&' || (allowedChar != 0 && r == allowedChar) {
		if ok {
			s.Unget(r)
		}
		return lit("&")
	}

	if r == '#' {
		return resolveNumeric(s)
	}

	s.Unget(r)
	return resolveNamed(s, fromAttribute)
}

func resolveNumeric(s *stream.Stream) Result {
	hex := false
	prefix := "#"
	if r, ok := s.Char(); ok {
		if r == 'x' || r == 'X' {
			hex = true
			prefix += string(r)
		} else {
			s.Unget(r)
		}
	}

	var digits strings.Builder
	for {
		r, ok := s.Char()
		if !ok {
			break
		}
		valid := IsDigit(r)
		if hex {
			valid = IsHexDigit(r)
		}
		if !valid {
			s.Unget(r)
			break
		}
		digits.WriteRune(r)
	}

	if digits.Len() == 0 {
		res := lit("&" + prefix)
		res.Errors = append(res.Errors, ParseErr{Kind: "expected-numeric-entity"})
		return res
	}

	base := 10
	if hex {
		base = 16
	}
	n64, _ := strconv.ParseInt(digits.String(), base, 64)
	n := int(n64)

	var errs []ParseErr
	var result rune
	switch {
	case n == 0:
		result = 0xFFFD
		errs = append(errs, ParseErr{Kind: "illegal-codepoint-for-numeric-entity", Params: map[string]any{"charAsInt": n}})
	case IsSurrogate(n), n > 0x10FFFF:
		result = 0xFFFD
		errs = append(errs, ParseErr{Kind: "illegal-codepoint-for-numeric-entity", Params: map[string]any{"charAsInt": n}})
	default:
		if repl, ok := NumericReplacement(n); ok {
			result = repl
			errs = append(errs, ParseErr{Kind: "illegal-codepoint-for-numeric-entity", Params: map[string]any{"charAsInt": n}})
		} else {
			if IsDisallowedCodePoint(n) {
				errs = append(errs, ParseErr{Kind: "illegal-codepoint-for-numeric-entity", Params: map[string]any{"charAsInt": n}})
			}
			result = rune(n)
		}
	}

	if r, ok := s.Char(); !ok {
		errs = append(errs, ParseErr{Kind: "numeric-entity-without-semicolon"})
	} else if r != ';' {
		s.Unget(r)
		errs = append(errs, ParseErr{Kind: "numeric-entity-without-semicolon"})
	}

	return Result{Text: string(result), Errors: errs}
}

// resolveNamed walks the named-reference table for the longest matching
// entry: it repeatedly extends a candidate string one scalar value at a
// time, pruning the first-character bucket to entries still prefixed by
// the candidate, and remembers the longest candidate that is itself an
// exact table key.
func resolveNamed(s *stream.Stream, fromAttribute bool) Result {
	first, ok := s.Char()
	if !ok {
		return namedNoMatch(s, "", fromAttribute)
	}

	candidates := bucketFor(byte(first))
	if len(candidates) == 0 {
		s.Unget(first)
		return namedNoMatch(s, "", fromAttribute)
	}

	consumed := []rune{first}
	longestMatch := -1 // index into consumed where the longest exact match ends (exclusive), or -1

	if _, _, ok := lookup(string(first)); ok {
		longestMatch = 1
	}

	for {
		next, ok := s.Char()
		if !ok {
			break
		}
		candidate := string(consumed) + string(next)
		pruned := candidates[:0:0]
		for _, name := range candidates {
			if strings.HasPrefix(name, candidate) {
				pruned = append(pruned, name)
			}
		}
		if len(pruned) == 0 {
			s.Unget(next)
			break
		}
		consumed = append(consumed, next)
		candidates = pruned
		if _, _, ok := lookup(candidate); ok {
			longestMatch = len(consumed)
		}
	}

	if longestMatch < 0 {
		// No exact table entry is a prefix of anything we consumed: unget
		// everything past the first character and report expected-named-entity.
		for i := len(consumed) - 1; i >= 1; i-- {
			s.Unget(consumed[i])
		}
		return namedNoMatch(s, string(consumed[:1]), fromAttribute)
	}

	matched := string(consumed[:longestMatch])
	// Push back whatever we over-consumed past the matched name.
	for i := len(consumed) - 1; i >= longestMatch; i-- {
		s.Unget(consumed[i])
	}

	value, legacy, _ := lookup(matched)
	var errs []ParseErr

	if legacy {
		if fromAttribute {
			if next, ok := s.Char(); ok {
				if next == '=' || IsLetterOrDigit(next) {
					s.Unget(next)
					return lit("&" + matched)
				}
				s.Unget(next)
			}
		}
		errs = append(errs, ParseErr{Kind: "named-entity-without-semicolon"})
	}

	return Result{Text: value, Errors: errs}
}

func namedNoMatch(s *stream.Stream, consumedPrefix string, fromAttribute bool) Result {
	res := lit("&" + consumedPrefix)
	res.Errors = append(res.Errors, ParseErr{Kind: "expected-named-entity"})
	return res
}
