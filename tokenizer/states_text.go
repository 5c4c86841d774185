package tokenizer

import "github.com/tomyeh/html5plus/charref"

// Data, Rcdata, Rawtext, ScriptData, Plaintext and their character-reference
// and "<script>"/"<textarea>"-style end-tag-recognition sub-states. All five
// content models report invalid-codepoint on a literal NUL; Data keeps the
// NUL as-is while the others replace it with U+FFFD.

func (t *Tokenizer) dataStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.flushPending()
		return false, dataState
	}
	switch r {
	case '&':
		return false, entityDataState
	case '<':
		return false, tagOpenState
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WritePending(r)
	default:
		t.b.WritePending(r)
	}
	return false, dataState
}

// entityDataStateHandler resolves a whole character reference in one call
// into charref.Resolve — it ungets the scalar the outer loop already
// consumed so Resolve can re-read the reference from its first character.
func (t *Tokenizer) entityDataStateHandler(r rune, eof bool) (bool, state) {
	if !eof {
		t.s.Unget(r)
	}
	res := charref.Resolve(t.s, 0, false)
	t.b.WritePendingString(res.Text)
	t.emitErrors(res.Errors)
	return false, dataState
}

func (t *Tokenizer) rcdataStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.flushPending()
		return false, rcdataState
	}
	switch r {
	case '&':
		return false, characterReferenceInRcdataState
	case '<':
		return false, rcdataLessThanSignState
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WritePending(0xFFFD)
	default:
		t.b.WritePending(r)
	}
	return false, rcdataState
}

func (t *Tokenizer) characterReferenceInRcdataStateHandler(r rune, eof bool) (bool, state) {
	if !eof {
		t.s.Unget(r)
	}
	res := charref.Resolve(t.s, 0, false)
	t.b.WritePendingString(res.Text)
	t.emitErrors(res.Errors)
	return false, rcdataState
}

func (t *Tokenizer) rawtextStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.flushPending()
		return false, rawtextState
	}
	switch r {
	case '<':
		return false, rawtextLessThanSignState
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WritePending(0xFFFD)
	default:
		t.b.WritePending(r)
	}
	return false, rawtextState
}

func (t *Tokenizer) scriptDataStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.flushPending()
		return false, scriptDataState
	}
	switch r {
	case '<':
		return false, scriptDataLessThanSignState
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WritePending(0xFFFD)
	default:
		t.b.WritePending(r)
	}
	return false, scriptDataState
}

// plaintextStateHandler never leaves Plaintext except at EOF.
func (t *Tokenizer) plaintextStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.flushPending()
		return false, plaintextState
	}
	if r == 0 {
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WritePending(0xFFFD)
	} else {
		t.b.WritePending(r)
	}
	return false, plaintextState
}

// --- Rcdata end-tag recognition (<textarea>, <title>) ---

func (t *Tokenizer) rcdataLessThanSignStateHandler(r rune, eof bool) (bool, state) {
	if !eof && r == '/' {
		t.b.ResetTempBuffer()
		return false, rcdataEndTagOpenState
	}
	t.b.WritePending('<')
	return true, rcdataState
}

func (t *Tokenizer) rcdataEndTagOpenStateHandler(r rune, eof bool) (bool, state) {
	if !eof && charref.IsLetter(r) {
		t.b.Reset()
		t.b.SetTagKindEnd()
		return true, rcdataEndTagNameState
	}
	t.b.WritePending('<')
	t.b.WritePending('/')
	return true, rcdataState
}

func (t *Tokenizer) rcdataEndTagNameStateHandler(r rune, eof bool) (bool, state) {
	if !eof {
		if charref.IsWhitespace(r) && t.isAppropriateEndTag() {
			return false, beforeAttributeNameState
		}
		if r == '/' && t.isAppropriateEndTag() {
			return false, selfClosingStartTagState
		}
		if r == '>' && t.isAppropriateEndTag() {
			return false, t.emitCurrentTag()
		}
		if charref.IsLetter(r) {
			t.writeNameRune(r)
			t.b.WriteTempBuffer(r)
			return false, rcdataEndTagNameState
		}
	}
	t.replayTempBufferAsCharacters()
	t.b.Reset()
	return true, rcdataState
}

// --- Rawtext end-tag recognition (<style>, <xmp>, <iframe>, ...) ---

func (t *Tokenizer) rawtextLessThanSignStateHandler(r rune, eof bool) (bool, state) {
	if !eof && r == '/' {
		t.b.ResetTempBuffer()
		return false, rawtextEndTagOpenState
	}
	t.b.WritePending('<')
	return true, rawtextState
}

func (t *Tokenizer) rawtextEndTagOpenStateHandler(r rune, eof bool) (bool, state) {
	if !eof && charref.IsLetter(r) {
		t.b.Reset()
		t.b.SetTagKindEnd()
		return true, rawtextEndTagNameState
	}
	t.b.WritePending('<')
	t.b.WritePending('/')
	return true, rawtextState
}

func (t *Tokenizer) rawtextEndTagNameStateHandler(r rune, eof bool) (bool, state) {
	if !eof {
		if charref.IsWhitespace(r) && t.isAppropriateEndTag() {
			return false, beforeAttributeNameState
		}
		if r == '/' && t.isAppropriateEndTag() {
			return false, selfClosingStartTagState
		}
		if r == '>' && t.isAppropriateEndTag() {
			return false, t.emitCurrentTag()
		}
		if charref.IsLetter(r) {
			t.writeNameRune(r)
			t.b.WriteTempBuffer(r)
			return false, rawtextEndTagNameState
		}
	}
	t.replayTempBufferAsCharacters()
	t.b.Reset()
	return true, rawtextState
}

// --- ScriptData end-tag recognition and the escape/double-escape sub-machine ---

func (t *Tokenizer) scriptDataLessThanSignStateHandler(r rune, eof bool) (bool, state) {
	if !eof {
		switch r {
		case '/':
			t.b.ResetTempBuffer()
			return false, scriptDataEndTagOpenState
		case '!':
			t.b.WritePending('<')
			t.b.WritePending('!')
			return false, scriptDataEscapeStartState
		}
	}
	t.b.WritePending('<')
	return true, scriptDataState
}

func (t *Tokenizer) scriptDataEndTagOpenStateHandler(r rune, eof bool) (bool, state) {
	if !eof && charref.IsLetter(r) {
		t.b.Reset()
		t.b.SetTagKindEnd()
		return true, scriptDataEndTagNameState
	}
	t.b.WritePending('<')
	t.b.WritePending('/')
	return true, scriptDataState
}

func (t *Tokenizer) scriptDataEndTagNameStateHandler(r rune, eof bool) (bool, state) {
	if !eof {
		if charref.IsWhitespace(r) && t.isAppropriateEndTag() {
			return false, beforeAttributeNameState
		}
		if r == '/' && t.isAppropriateEndTag() {
			return false, selfClosingStartTagState
		}
		if r == '>' && t.isAppropriateEndTag() {
			return false, t.emitCurrentTag()
		}
		if charref.IsLetter(r) {
			t.writeNameRune(r)
			t.b.WriteTempBuffer(r)
			return false, scriptDataEndTagNameState
		}
	}
	t.replayTempBufferAsCharacters()
	t.b.Reset()
	return true, scriptDataState
}

func (t *Tokenizer) scriptDataEscapeStartStateHandler(r rune, eof bool) (bool, state) {
	if !eof && r == '-' {
		t.b.WritePending('-')
		return false, scriptDataEscapeStartDashState
	}
	return true, scriptDataState
}

func (t *Tokenizer) scriptDataEscapeStartDashStateHandler(r rune, eof bool) (bool, state) {
	if !eof && r == '-' {
		t.b.WritePending('-')
		return false, scriptDataEscapedDashDashState
	}
	return true, scriptDataState
}

func (t *Tokenizer) scriptDataEscapedStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-script-in-script", nil)
		t.flushPending()
		return false, scriptDataEscapedState
	}
	switch r {
	case '-':
		t.b.WritePending('-')
		return false, scriptDataEscapedDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WritePending(0xFFFD)
	default:
		t.b.WritePending(r)
	}
	return false, scriptDataEscapedState
}

func (t *Tokenizer) scriptDataEscapedDashStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-script-in-script", nil)
		t.flushPending()
		return false, scriptDataEscapedState
	}
	switch r {
	case '-':
		t.b.WritePending('-')
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WritePending(0xFFFD)
		return false, scriptDataEscapedState
	}
	t.b.WritePending(r)
	return false, scriptDataEscapedState
}

func (t *Tokenizer) scriptDataEscapedDashDashStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-script-in-script", nil)
		t.flushPending()
		return false, scriptDataEscapedState
	}
	switch r {
	case '-':
		t.b.WritePending('-')
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '>':
		t.b.WritePending('>')
		return false, scriptDataState
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WritePending(0xFFFD)
		return false, scriptDataEscapedState
	}
	t.b.WritePending(r)
	return false, scriptDataEscapedState
}

func (t *Tokenizer) scriptDataEscapedLessThanSignStateHandler(r rune, eof bool) (bool, state) {
	if !eof {
		if r == '/' {
			t.b.ResetTempBuffer()
			return false, scriptDataEscapedEndTagOpenState
		}
		if charref.IsLetter(r) {
			t.b.ResetTempBuffer()
			t.b.WritePending('<')
			return true, scriptDataDoubleEscapeStartState
		}
	}
	t.b.WritePending('<')
	return true, scriptDataEscapedState
}

func (t *Tokenizer) scriptDataEscapedEndTagOpenStateHandler(r rune, eof bool) (bool, state) {
	if !eof && charref.IsLetter(r) {
		t.b.Reset()
		t.b.SetTagKindEnd()
		return true, scriptDataEscapedEndTagNameState
	}
	t.b.WritePending('<')
	t.b.WritePending('/')
	return true, scriptDataEscapedState
}

func (t *Tokenizer) scriptDataEscapedEndTagNameStateHandler(r rune, eof bool) (bool, state) {
	if !eof {
		if charref.IsWhitespace(r) && t.isAppropriateEndTag() {
			return false, beforeAttributeNameState
		}
		if r == '/' && t.isAppropriateEndTag() {
			return false, selfClosingStartTagState
		}
		if r == '>' && t.isAppropriateEndTag() {
			return false, t.emitCurrentTag()
		}
		if charref.IsLetter(r) {
			t.writeNameRune(r)
			t.b.WriteTempBuffer(r)
			return false, scriptDataEscapedEndTagNameState
		}
	}
	t.replayTempBufferAsCharacters()
	t.b.Reset()
	return true, scriptDataEscapedState
}

func (t *Tokenizer) scriptDataDoubleEscapeStartStateHandler(r rune, eof bool) (bool, state) {
	if !eof {
		if charref.IsWhitespace(r) || r == '/' || r == '>' {
			t.b.WritePending(r)
			if charref.ToASCIILower(t.b.TempBuffer()) == "script" {
				return false, scriptDataDoubleEscapedState
			}
			return false, scriptDataEscapedState
		}
		if charref.IsLetter(r) {
			t.b.WritePending(r)
			t.b.WriteTempBuffer(charref.ToASCIILowerRune(r))
			return false, scriptDataDoubleEscapeStartState
		}
	}
	return true, scriptDataEscapedState
}

func (t *Tokenizer) scriptDataDoubleEscapedStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-script-in-script", nil)
		t.flushPending()
		return false, scriptDataDoubleEscapedState
	}
	switch r {
	case '-':
		t.b.WritePending('-')
		return false, scriptDataDoubleEscapedDashState
	case '<':
		t.b.WritePending('<')
		return false, scriptDataDoubleEscapedLessThanSignState
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WritePending(0xFFFD)
	default:
		t.b.WritePending(r)
	}
	return false, scriptDataDoubleEscapedState
}

func (t *Tokenizer) scriptDataDoubleEscapedDashStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-script-in-script", nil)
		t.flushPending()
		return false, scriptDataDoubleEscapedState
	}
	switch r {
	case '-':
		t.b.WritePending('-')
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		t.b.WritePending('<')
		return false, scriptDataDoubleEscapedLessThanSignState
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WritePending(0xFFFD)
		return false, scriptDataDoubleEscapedState
	}
	t.b.WritePending(r)
	return false, scriptDataDoubleEscapedState
}

func (t *Tokenizer) scriptDataDoubleEscapedDashDashStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-script-in-script", nil)
		t.flushPending()
		return false, scriptDataDoubleEscapedState
	}
	switch r {
	case '-':
		t.b.WritePending('-')
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		t.b.WritePending('<')
		return false, scriptDataDoubleEscapedLessThanSignState
	case '>':
		t.b.WritePending('>')
		return false, scriptDataState
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WritePending(0xFFFD)
		return false, scriptDataDoubleEscapedState
	}
	t.b.WritePending(r)
	return false, scriptDataDoubleEscapedState
}

func (t *Tokenizer) scriptDataDoubleEscapedLessThanSignStateHandler(r rune, eof bool) (bool, state) {
	if !eof && r == '/' {
		t.b.ResetTempBuffer()
		t.b.WritePending('/')
		return false, scriptDataDoubleEscapeEndState
	}
	return true, scriptDataDoubleEscapedState
}

func (t *Tokenizer) scriptDataDoubleEscapeEndStateHandler(r rune, eof bool) (bool, state) {
	if !eof {
		if charref.IsWhitespace(r) || r == '/' || r == '>' {
			t.b.WritePending(r)
			if charref.ToASCIILower(t.b.TempBuffer()) == "script" {
				return false, scriptDataEscapedState
			}
			return false, scriptDataDoubleEscapedState
		}
		if charref.IsLetter(r) {
			t.b.WritePending(r)
			t.b.WriteTempBuffer(charref.ToASCIILowerRune(r))
			return false, scriptDataDoubleEscapeEndState
		}
	}
	return true, scriptDataDoubleEscapedState
}
