package tokenizer

import "github.com/tomyeh/html5plus/charref"

// TagOpen through AfterAttributeValue/SelfClosingStartTag — tag-name and
// attribute recognition.

func (t *Tokenizer) tagOpenStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("expected-tag-name", nil)
		t.b.WritePending('<')
		return false, dataState
	}
	switch {
	case r == '!':
		return false, markupDeclarationOpenState
	case r == '/':
		return false, closeTagOpenState
	case charref.IsLetter(r):
		t.b.Reset()
		t.b.SetTagKindStart()
		t.writeNameRune(r)
		return false, tagNameState
	case r == '?':
		if t.opts.AllowProcessingInstructions {
			t.b.Reset()
			return true, processingInstructionState
		}
		t.emitError("expected-tag-name", nil)
		t.b.Reset()
		return true, bogusCommentState
	case r == '>':
		t.emitError("expected-tag-name-but-got-right-bracket", nil)
		t.b.WritePending('<')
		t.b.WritePending('>')
		return false, dataState
	default:
		t.emitError("expected-tag-name", nil)
		t.b.WritePending('<')
		return true, dataState
	}
}

func (t *Tokenizer) closeTagOpenStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("expected-closing-tag-but-got-eof", nil)
		t.b.WritePending('<')
		t.b.WritePending('/')
		return false, dataState
	}
	if charref.IsLetter(r) {
		t.b.Reset()
		t.b.SetTagKindEnd()
		t.writeNameRune(r)
		return false, tagNameState
	}
	if r == '>' {
		t.emitError("expected-closing-tag-but-got-right-bracket", nil)
		return false, dataState
	}
	t.emitError("expected-closing-tag-but-got-char", map[string]any{"data": r})
	t.b.Reset()
	return true, bogusCommentState
}

func (t *Tokenizer) tagNameStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-tag-name", nil)
		return false, tagNameState
	}
	switch {
	case charref.IsWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		return false, t.emitCurrentTag()
	case r == 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.writeNameRune(0xFFFD)
	default:
		t.writeNameRune(r)
	}
	return false, tagNameState
}

func (t *Tokenizer) beforeAttributeNameStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("expected-attribute-name-but-got-eof", nil)
		return false, dataState
	}
	if charref.IsWhitespace(r) {
		return false, beforeAttributeNameState
	}
	switch r {
	case '/':
		return false, selfClosingStartTagState
	case '>':
		return false, t.emitCurrentTag()
	}
	return true, attributeNameState
}

func (t *Tokenizer) attributeNameStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-attribute-name", nil)
		return false, dataState
	}
	if charref.IsWhitespace(r) {
		t.commitAttribute()
		return false, afterAttributeNameState
	}
	switch r {
	case '/':
		t.commitAttribute()
		return false, selfClosingStartTagState
	case '>':
		t.commitAttribute()
		return false, t.emitCurrentTag()
	case '=':
		return false, beforeAttributeValueState
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.writeAttributeNameRune(0xFFFD)
	case '"', '\'', '<':
		t.emitError("invalid-character-in-attribute-name", map[string]any{"data": r})
		t.writeAttributeNameRune(r)
	default:
		t.writeAttributeNameRune(r)
	}
	return false, attributeNameState
}

func (t *Tokenizer) afterAttributeNameStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("expected-attribute-name-but-got-eof", nil)
		return false, dataState
	}
	if charref.IsWhitespace(r) {
		return false, afterAttributeNameState
	}
	switch r {
	case '/':
		return false, selfClosingStartTagState
	case '=':
		return false, beforeAttributeValueState
	case '>':
		return false, t.emitCurrentTag()
	}
	return true, attributeNameState
}

func (t *Tokenizer) beforeAttributeValueStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("expected-attribute-value-but-got-eof", nil)
		return false, dataState
	}
	if charref.IsWhitespace(r) {
		return false, beforeAttributeValueState
	}
	switch r {
	case '"':
		return false, attributeValueDoubleQuotedState
	case '\'':
		return false, attributeValueSingleQuotedState
	case '>':
		t.emitError("expected-attribute-value-but-got-right-bracket", nil)
		return false, t.emitCurrentTag()
	}
	// '&' and everything else: let AttributeValueUnquoted handle it with
	// allowedChar='>'.
	return true, attributeValueUnquotedState
}

// resolveAttributeEntity resolves a reference inside an attribute value: the
// '&' itself was just consumed by the outer loop, so the stream is already
// positioned for charref.Resolve to read the reference's first character.
func (t *Tokenizer) resolveAttributeEntity(allowedChar rune) {
	res := charref.Resolve(t.s, allowedChar, true)
	t.b.AppendAttributeValue(res.Text)
	t.emitErrors(res.Errors)
}

func (t *Tokenizer) attributeValueDoubleQuotedStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-attribute-value-double-quote", nil)
		return false, dataState
	}
	switch r {
	case '"':
		t.commitAttribute()
		return false, afterAttributeValueState
	case '&':
		t.resolveAttributeEntity('"')
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WriteAttributeValue(0xFFFD)
	default:
		t.b.WriteAttributeValue(r)
	}
	return false, attributeValueDoubleQuotedState
}

func (t *Tokenizer) attributeValueSingleQuotedStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-attribute-value-single-quote", nil)
		return false, dataState
	}
	switch r {
	case '\'':
		t.commitAttribute()
		return false, afterAttributeValueState
	case '&':
		t.resolveAttributeEntity('\'')
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WriteAttributeValue(0xFFFD)
	default:
		t.b.WriteAttributeValue(r)
	}
	return false, attributeValueSingleQuotedState
}

func (t *Tokenizer) attributeValueUnquotedStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("eof-in-attribute-value-no-quotes", nil)
		return false, dataState
	}
	if charref.IsWhitespace(r) {
		t.commitAttribute()
		return false, beforeAttributeNameState
	}
	switch r {
	case '&':
		t.resolveAttributeEntity('>')
	case '>':
		t.commitAttribute()
		return false, t.emitCurrentTag()
	case '=':
		t.emitError("equals-in-unquoted-attribute-value", map[string]any{"data": r})
		t.b.WriteAttributeValue(r)
	case '"', '\'', '<', '`':
		t.emitError("unexpected-character-in-unquoted-attribute-value", map[string]any{"data": r})
		t.b.WriteAttributeValue(r)
	case 0:
		t.emitError("invalid-codepoint", map[string]any{"data": r})
		t.b.WriteAttributeValue(0xFFFD)
	default:
		t.b.WriteAttributeValue(r)
	}
	return false, attributeValueUnquotedState
}

func (t *Tokenizer) afterAttributeValueStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("unexpected-EOF-after-attribute-value", nil)
		return false, dataState
	}
	if charref.IsWhitespace(r) {
		return false, beforeAttributeNameState
	}
	switch r {
	case '/':
		return false, selfClosingStartTagState
	case '>':
		return false, t.emitCurrentTag()
	}
	t.emitError("unexpected-character-after-attribute-value", map[string]any{"data": r})
	return true, beforeAttributeNameState
}

func (t *Tokenizer) selfClosingStartTagStateHandler(r rune, eof bool) (bool, state) {
	if eof {
		t.emitError("unexpected-EOF-after-solidus-in-tag", nil)
		return false, dataState
	}
	if r == '>' {
		t.b.EnableSelfClosing()
		return false, t.emitCurrentTag()
	}
	t.emitError("unexpected-character-after-soldius-in-tag", map[string]any{"data": r})
	return true, beforeAttributeNameState
}
