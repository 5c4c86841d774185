package tokenizer

import (
	"strings"

	"github.com/tomyeh/html5plus/charref"
)

// BogusComment, MarkupDeclarationOpen, the Comment* family, the Doctype*
// family, CdataSection, and the ProcessingInstruction* family — the
// states handling markup declarations, comments, doctypes, CDATA, and
// processing instructions.

func (t *Tokenizer) bogusCommentStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		return false, t.emitComment()
	}
	switch r {
	case '>':
		return false, t.emitComment()
	case 0:
		t.b.WriteData(0xFFFD)
	default:
		t.b.WriteData(r)
	}
	return false, bogusCommentState
}

// markupDeclarationOpenStateHandler peeks up to seven bytes to distinguish
// "--" (comment), case-insensitive "DOCTYPE", and "[CDATA[" (only honored
// when the collaborator currently allows CDATA); anything else ungets r
// and falls into BogusComment.
func (t *Tokenizer) markupDeclarationOpenStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("incorrect-comment", nil)
		t.b.Reset()
		return true, bogusCommentState
	}
	switch r {
	case '-':
		if peeked, err := t.s.Peek(1); err == nil && len(peeked) == 1 && peeked[0] == '-' {
			t.s.Discard(1)
			t.b.Reset()
			return false, commentStartState
		}
	case 'D', 'd':
		if peeked, err := t.s.Peek(6); err == nil && len(peeked) == 6 && strings.EqualFold(string(peeked), "OCTYPE") {
			t.s.Discard(6)
			t.b.Reset()
			return false, doctypeState
		}
	case '[':
		if peeked, err := t.s.Peek(6); err == nil && len(peeked) == 6 && string(peeked) == "CDATA[" {
			t.s.Discard(6)
			if t.allowCDATA {
				t.b.Reset()
				t.cdataBrackets = 0
				return false, cdataSectionState
			}
			t.b.Reset()
			for _, c := range "[CDATA[" {
				t.b.WriteData(c)
			}
			return false, bogusCommentState
		}
	}
	t.emitError("incorrect-comment", nil)
	t.s.Unget(r)
	t.b.Reset()
	return true, bogusCommentState
}

func (t *Tokenizer) commentStartStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		return true, commentState
	}
	switch r {
	case '-':
		return false, commentStartDashState
	case '>':
		t.emitError("incorrect-comment", nil)
		return false, t.emitComment()
	default:
		return true, commentState
	}
}

func (t *Tokenizer) commentStartDashStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-comment", nil)
		return false, t.emitComment()
	}
	switch r {
	case '-':
		return false, commentEndState
	case '>':
		t.emitError("incorrect-comment", nil)
		return false, t.emitComment()
	default:
		t.b.WriteData('-')
		return true, commentState
	}
}

func (t *Tokenizer) commentStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-comment", nil)
		return false, t.emitComment()
	}
	switch r {
	case '-':
		return false, commentEndDashState
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WriteData(0xFFFD)
	default:
		t.b.WriteData(r)
	}
	return false, commentState
}

func (t *Tokenizer) commentEndDashStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-comment-end-dash", nil)
		return false, t.emitComment()
	}
	if r == '-' {
		return false, commentEndState
	}
	t.b.WriteData('-')
	return true, commentState
}

func (t *Tokenizer) commentEndStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-comment-double-dash", nil)
		return false, t.emitComment()
	}
	switch r {
	case '>':
		return false, t.emitComment()
	case '!':
		t.emitError("unexpected-bang-after-double-dash-in-comment", nil)
		return false, commentEndBangState
	case '-':
		t.emitError("unexpected-dash-after-double-dash-in-comment", nil)
		t.b.WriteData('-')
		return false, commentEndState
	default:
		t.b.WriteData('-')
		t.b.WriteData('-')
		return true, commentState
	}
}

func (t *Tokenizer) commentEndBangStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-comment-end-bang-state", nil)
		return false, t.emitComment()
	}
	switch r {
	case '-':
		t.b.WriteData('-')
		t.b.WriteData('-')
		t.b.WriteData('!')
		return false, commentEndDashState
	case '>':
		return false, t.emitComment()
	default:
		t.b.WriteData('-')
		t.b.WriteData('-')
		t.b.WriteData('!')
		return true, commentState
	}
}

// --- Doctype family. Doctype names are ASCII-lowercased unconditionally,
// not gated by Options.LowercaseElementName. ---

func (t *Tokenizer) doctypeStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	}
	if charref.IsWhitespace(r) {
		return false, beforeDoctypeNameState
	}
	t.emitError("need-space-after-doctype", nil)
	return true, beforeDoctypeNameState
}

func (t *Tokenizer) beforeDoctypeNameStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("expected-doctype-name-but-got-eof", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	}
	if charref.IsWhitespace(r) {
		return false, beforeDoctypeNameState
	}
	switch r {
	case '>':
		t.emitError("expected-doctype-name-but-got-right-bracket", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WriteName(0xFFFD)
		return false, doctypeNameState
	}
	t.b.WriteName(charref.ToASCIILowerRune(r))
	return false, doctypeNameState
}

func (t *Tokenizer) doctypeNameStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-doctype-name", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	}
	if charref.IsWhitespace(r) {
		return false, afterDoctypeNameState
	}
	switch r {
	case '>':
		return false, t.emitDoctype()
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WriteName(0xFFFD)
		return false, doctypeNameState
	}
	t.b.WriteName(charref.ToASCIILowerRune(r))
	return false, doctypeNameState
}

// afterDoctypeNameStateHandler recognizes the six-character exact,
// case-insensitive PUBLIC/SYSTEM keywords via byte-level lookahead.
func (t *Tokenizer) afterDoctypeNameStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	}
	if charref.IsWhitespace(r) {
		return false, afterDoctypeNameState
	}
	if r == '>' {
		return false, t.emitDoctype()
	}
	switch r {
	case 'P', 'p':
		if peeked, err := t.s.Peek(5); err == nil && len(peeked) == 5 && strings.EqualFold(string(peeked), "UBLIC") {
			t.s.Discard(5)
			return false, afterDoctypePublicKeywordState
		}
	case 'S', 's':
		if peeked, err := t.s.Peek(5); err == nil && len(peeked) == 5 && strings.EqualFold(string(peeked), "YSTEM") {
			t.s.Discard(5)
			return false, afterDoctypeSystemKeywordState
		}
	}
	t.emitError("expected-space-or-right-bracket-in-doctype", nil)
	t.b.MarkIncorrect()
	return true, bogusDoctypeState
}

func (t *Tokenizer) afterDoctypePublicKeywordStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	}
	if charref.IsWhitespace(r) {
		return false, beforeDoctypePublicIdentifierState
	}
	switch r {
	case '"':
		t.b.WritePublicIdentifierEmpty()
		return false, doctypePublicIdentifierDoubleQuotedState
	case '\'':
		t.b.WritePublicIdentifierEmpty()
		return false, doctypePublicIdentifierSingleQuotedState
	case '>':
		t.emitError("unexpected-end-of-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	}
	t.emitError("unexpected-char-in-doctype", map[string]any{"data": r})
	t.b.MarkIncorrect()
	return true, bogusDoctypeState
}

func (t *Tokenizer) beforeDoctypePublicIdentifierStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	}
	if charref.IsWhitespace(r) {
		return false, beforeDoctypePublicIdentifierState
	}
	switch r {
	case '"':
		t.b.WritePublicIdentifierEmpty()
		return false, doctypePublicIdentifierDoubleQuotedState
	case '\'':
		t.b.WritePublicIdentifierEmpty()
		return false, doctypePublicIdentifierSingleQuotedState
	case '>':
		t.emitError("unexpected-end-of-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	}
	t.emitError("unexpected-char-in-doctype", map[string]any{"data": r})
	t.b.MarkIncorrect()
	return true, bogusDoctypeState
}

func (t *Tokenizer) doctypePublicIdentifierDoubleQuotedStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	}
	switch r {
	case '"':
		return false, afterDoctypePublicIdentifierState
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WritePublicIdentifier(0xFFFD)
	case '>':
		t.emitError("unexpected-end-of-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	default:
		t.b.WritePublicIdentifier(r)
	}
	return false, doctypePublicIdentifierDoubleQuotedState
}

func (t *Tokenizer) doctypePublicIdentifierSingleQuotedStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	}
	switch r {
	case '\'':
		return false, afterDoctypePublicIdentifierState
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WritePublicIdentifier(0xFFFD)
	case '>':
		t.emitError("unexpected-end-of-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	default:
		t.b.WritePublicIdentifier(r)
	}
	return false, doctypePublicIdentifierSingleQuotedState
}

func (t *Tokenizer) afterDoctypePublicIdentifierStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	}
	if charref.IsWhitespace(r) {
		return false, betweenDoctypePublicAndSystemIdentifiersState
	}
	switch r {
	case '>':
		return false, t.emitDoctype()
	case '"':
		t.b.WriteSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case '\'':
		t.b.WriteSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierSingleQuotedState
	}
	t.emitError("unexpected-char-in-doctype", map[string]any{"data": r})
	t.b.MarkIncorrect()
	return true, bogusDoctypeState
}

func (t *Tokenizer) betweenDoctypePublicAndSystemIdentifiersStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	}
	if charref.IsWhitespace(r) {
		return false, betweenDoctypePublicAndSystemIdentifiersState
	}
	switch r {
	case '>':
		return false, t.emitDoctype()
	case '"':
		t.b.WriteSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case '\'':
		t.b.WriteSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierSingleQuotedState
	}
	t.emitError("unexpected-char-in-doctype", map[string]any{"data": r})
	t.b.MarkIncorrect()
	return true, bogusDoctypeState
}

func (t *Tokenizer) afterDoctypeSystemKeywordStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	}
	if charref.IsWhitespace(r) {
		return false, beforeDoctypeSystemIdentifierState
	}
	switch r {
	case '"':
		t.b.WriteSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case '\'':
		t.b.WriteSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierSingleQuotedState
	case '>':
		t.emitError("unexpected-end-of-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	}
	t.emitError("unexpected-char-in-doctype", map[string]any{"data": r})
	t.b.MarkIncorrect()
	return true, bogusDoctypeState
}

func (t *Tokenizer) beforeDoctypeSystemIdentifierStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	}
	if charref.IsWhitespace(r) {
		return false, beforeDoctypeSystemIdentifierState
	}
	switch r {
	case '"':
		t.b.WriteSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case '\'':
		t.b.WriteSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierSingleQuotedState
	case '>':
		t.emitError("unexpected-end-of-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	}
	t.emitError("unexpected-char-in-doctype", map[string]any{"data": r})
	t.b.MarkIncorrect()
	return true, bogusDoctypeState
}

func (t *Tokenizer) doctypeSystemIdentifierDoubleQuotedStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	}
	switch r {
	case '"':
		return false, afterDoctypeSystemIdentifierState
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WriteSystemIdentifier(0xFFFD)
	case '>':
		t.emitError("unexpected-end-of-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	default:
		t.b.WriteSystemIdentifier(r)
	}
	return false, doctypeSystemIdentifierDoubleQuotedState
}

func (t *Tokenizer) doctypeSystemIdentifierSingleQuotedStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	}
	switch r {
	case '\'':
		return false, afterDoctypeSystemIdentifierState
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WriteSystemIdentifier(0xFFFD)
	case '>':
		t.emitError("unexpected-end-of-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	default:
		t.b.WriteSystemIdentifier(r)
	}
	return false, doctypeSystemIdentifierSingleQuotedState
}

func (t *Tokenizer) afterDoctypeSystemIdentifierStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-doctype", nil)
		t.b.MarkIncorrect()
		return false, t.emitDoctype()
	}
	if charref.IsWhitespace(r) {
		return false, afterDoctypeSystemIdentifierState
	}
	if r == '>' {
		return false, t.emitDoctype()
	}
	t.emitError("unexpected-char-in-doctype", map[string]any{"data": r})
	return true, bogusDoctypeState
}

func (t *Tokenizer) bogusDoctypeStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		return false, t.emitDoctype()
	}
	if r == '>' {
		return false, t.emitDoctype()
	}
	return false, bogusDoctypeState
}

// cdataSectionStateHandler scans for "]]>" using t.cdataBrackets as the
// count of trailing ']' seen but not yet confirmed part of a terminator —
// any run longer than two is flushed as literal text one character at a
// time, and a non-">" after one or two brackets flushes them all before
// resuming.
func (t *Tokenizer) cdataSectionStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		for ; t.cdataBrackets > 0; t.cdataBrackets-- {
			t.b.WritePending(']')
		}
		t.flushPending()
		return false, cdataSectionState
	}
	switch r {
	case ']':
		if t.cdataBrackets < 2 {
			t.cdataBrackets++
			return false, cdataSectionState
		}
		t.b.WritePending(']')
		return false, cdataSectionState
	case '>':
		if t.cdataBrackets >= 2 {
			t.cdataBrackets = 0
			t.flushPending()
			return false, dataState
		}
		for ; t.cdataBrackets > 0; t.cdataBrackets-- {
			t.b.WritePending(']')
		}
		t.b.WritePending('>')
	case 0:
		for ; t.cdataBrackets > 0; t.cdataBrackets-- {
			t.b.WritePending(']')
		}
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WritePending(0xFFFD)
	default:
		for ; t.cdataBrackets > 0; t.cdataBrackets-- {
			t.b.WritePending(']')
		}
		t.b.WritePending(r)
	}
	return false, cdataSectionState
}

// --- Processing instruction family — a repo extension past strict HTML5,
// gated behind Options.AllowProcessingInstructions. ---

// processingInstructionStateHandler discards the '?' TagOpen reconsumed
// into it and begins target recognition.
func (t *Tokenizer) processingInstructionStateHandler(r rune, eof bool) (bool, state) {
	return false, processingInstructionTargetState
}

func (t *Tokenizer) processingInstructionTargetStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("expected-processing-instruction-target", nil)
		t.b.MarkIncorrect()
		return false, t.emitProcessingInstruction()
	}
	switch {
	case charref.IsWhitespace(r):
		return false, afterProcessingInstructionTargetState
	case r == '?':
		return false, processingInstructionEndState
	case r == '>':
		t.emitError("expected-processing-instruction-data", nil)
		return false, t.emitProcessingInstruction()
	default:
		t.b.WriteTarget(r)
	}
	return false, processingInstructionTargetState
}

func (t *Tokenizer) afterProcessingInstructionTargetStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.b.MarkIncorrect()
		return false, t.emitProcessingInstruction()
	}
	if charref.IsWhitespace(r) {
		return false, afterProcessingInstructionTargetState
	}
	return true, processingInstructionDataState
}

func (t *Tokenizer) processingInstructionDataStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.b.MarkIncorrect()
		return false, t.emitProcessingInstruction()
	}
	switch r {
	case '?':
		return false, processingInstructionEndState
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WriteData(0xFFFD)
	default:
		t.b.WriteData(r)
	}
	return false, processingInstructionDataState
}

func (t *Tokenizer) processingInstructionEndStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.b.WriteData('?')
		t.b.MarkIncorrect()
		return false, t.emitProcessingInstruction()
	}
	if r == '>' {
		return false, t.emitProcessingInstruction()
	}
	t.b.WriteData('?')
	return true, processingInstructionDataState
}
