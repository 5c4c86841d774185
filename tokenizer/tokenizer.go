// Package tokenizer implements the WHATWG HTML5 tokenization stage: the
// state machine and a pull-based iterator facade over it. It is driven one
// Token at a time by a tree-construction collaborator that is entirely out
// of scope here — see Collaborator.
package tokenizer

import (
	"github.com/sirupsen/logrus"

	"github.com/tomyeh/html5plus/charref"
	"github.com/tomyeh/html5plus/stream"
	"github.com/tomyeh/html5plus/token"
)

// stateHandler processes one input scalar value (or the EOF signal) and
// reports whether the tokenizer should reconsume the same input in next.
type stateHandler func(r rune, eof bool) (reconsume bool, next state)

// Tokenizer is the state machine plus its token/error queues.
type Tokenizer struct {
	opts Options
	s    *stream.Stream
	b    *token.Builder

	state       state
	returnState state // not set or read by any handler; attribute-value states pass their allowedChar to charref.Resolve directly

	lastStartTagName string
	allowCDATA       bool
	cdataBrackets    int // CdataSection's ']'-run counter, kept inline rather than as a separate state

	queue []token.Token
	errs  []token.Token

	finished bool

	spanStart int

	log *logrus.Entry
}

// New returns a Tokenizer positioned in the Data state, reading from s.
func New(s *stream.Stream, opts Options) *Tokenizer {
	return &Tokenizer{
		opts:  opts,
		s:     s,
		b:     token.NewBuilder(),
		state: dataState,
		log:   logrus.WithField("component", "tokenizer"),
	}
}

// SetState implements the Collaborator-facing content-model switch.
func (t *Tokenizer) SetState(c ContentModelState) { t.state = state(c) }

// SetAllowCDATA implements the Collaborator-facing CDATA gate.
func (t *Tokenizer) SetAllowCDATA(allow bool) { t.allowCDATA = allow }

// Next runs the state machine until a token or parse error is ready, or
// until input is exhausted. It reports whether Token has something to
// return.
func (t *Tokenizer) Next() bool {
	t.fill()
	return len(t.errs) > 0 || len(t.queue) > 0
}

// Token dequeues one token: parse errors first, in the order they were
// raised, then content tokens. Callers must check Next first; Token
// returns the zero Token if nothing is ready.
func (t *Tokenizer) Token() token.Token {
	t.fill()
	if len(t.errs) > 0 {
		e := t.errs[0]
		t.errs = t.errs[1:]
		return e
	}
	if len(t.queue) > 0 {
		tok := t.queue[0]
		t.queue = t.queue[1:]
		return tok
	}
	return token.Token{}
}

// fill runs the state machine, one input scalar value at a time, until
// either queue is non-empty or the input is exhausted. Each scalar may
// drive several state transitions via the reconsume loop before the next
// one is read. Most states flush pending characters themselves on the
// transitions that call for it; at EOF, fill flushes whatever is left so a
// run sitting in the buffer when input ends is never silently dropped.
func (t *Tokenizer) fill() {
	for len(t.queue) == 0 && len(t.errs) == 0 && !t.finished {
		r, ok := t.s.Char()
		if decodeErrs := t.s.Errors(); len(decodeErrs) > 0 {
			t.errs = append(t.errs, decodeErrs...)
		}
		eof := !ok
		reconsume := true
		for reconsume {
			h := t.dispatch(t.state)
			from := t.state
			reconsume, t.state = h(r, eof)
			t.log.WithFields(logrus.Fields{"state": from, "next": t.state, "eof": eof}).Tracef("rune=%q", r)
		}
		if eof {
			t.finished = true
			t.flushPending()
		}
	}
}

func (t *Tokenizer) dispatch(s state) stateHandler {
	switch s {
	case dataState:
		return t.dataStateHandler
	case entityDataState:
		return t.entityDataStateHandler
	case rcdataState:
		return t.rcdataStateHandler
	case characterReferenceInRcdataState:
		return t.characterReferenceInRcdataStateHandler
	case rawtextState:
		return t.rawtextStateHandler
	case scriptDataState:
		return t.scriptDataStateHandler
	case plaintextState:
		return t.plaintextStateHandler
	case tagOpenState:
		return t.tagOpenStateHandler
	case closeTagOpenState:
		return t.closeTagOpenStateHandler
	case tagNameState:
		return t.tagNameStateHandler
	case rcdataLessThanSignState:
		return t.rcdataLessThanSignStateHandler
	case rcdataEndTagOpenState:
		return t.rcdataEndTagOpenStateHandler
	case rcdataEndTagNameState:
		return t.rcdataEndTagNameStateHandler
	case rawtextLessThanSignState:
		return t.rawtextLessThanSignStateHandler
	case rawtextEndTagOpenState:
		return t.rawtextEndTagOpenStateHandler
	case rawtextEndTagNameState:
		return t.rawtextEndTagNameStateHandler
	case scriptDataLessThanSignState:
		return t.scriptDataLessThanSignStateHandler
	case scriptDataEndTagOpenState:
		return t.scriptDataEndTagOpenStateHandler
	case scriptDataEndTagNameState:
		return t.scriptDataEndTagNameStateHandler
	case scriptDataEscapeStartState:
		return t.scriptDataEscapeStartStateHandler
	case scriptDataEscapeStartDashState:
		return t.scriptDataEscapeStartDashStateHandler
	case scriptDataEscapedState:
		return t.scriptDataEscapedStateHandler
	case scriptDataEscapedDashState:
		return t.scriptDataEscapedDashStateHandler
	case scriptDataEscapedDashDashState:
		return t.scriptDataEscapedDashDashStateHandler
	case scriptDataEscapedLessThanSignState:
		return t.scriptDataEscapedLessThanSignStateHandler
	case scriptDataEscapedEndTagOpenState:
		return t.scriptDataEscapedEndTagOpenStateHandler
	case scriptDataEscapedEndTagNameState:
		return t.scriptDataEscapedEndTagNameStateHandler
	case scriptDataDoubleEscapeStartState:
		return t.scriptDataDoubleEscapeStartStateHandler
	case scriptDataDoubleEscapedState:
		return t.scriptDataDoubleEscapedStateHandler
	case scriptDataDoubleEscapedDashState:
		return t.scriptDataDoubleEscapedDashStateHandler
	case scriptDataDoubleEscapedDashDashState:
		return t.scriptDataDoubleEscapedDashDashStateHandler
	case scriptDataDoubleEscapedLessThanSignState:
		return t.scriptDataDoubleEscapedLessThanSignStateHandler
	case scriptDataDoubleEscapeEndState:
		return t.scriptDataDoubleEscapeEndStateHandler
	case beforeAttributeNameState:
		return t.beforeAttributeNameStateHandler
	case attributeNameState:
		return t.attributeNameStateHandler
	case afterAttributeNameState:
		return t.afterAttributeNameStateHandler
	case beforeAttributeValueState:
		return t.beforeAttributeValueStateHandler
	case attributeValueDoubleQuotedState:
		return t.attributeValueDoubleQuotedStateHandler
	case attributeValueSingleQuotedState:
		return t.attributeValueSingleQuotedStateHandler
	case attributeValueUnquotedState:
		return t.attributeValueUnquotedStateHandler
	case afterAttributeValueState:
		return t.afterAttributeValueStateHandler
	case selfClosingStartTagState:
		return t.selfClosingStartTagStateHandler
	case bogusCommentState:
		return t.bogusCommentStateHandler
	case markupDeclarationOpenState:
		return t.markupDeclarationOpenStateHandler
	case commentStartState:
		return t.commentStartStateHandler
	case commentStartDashState:
		return t.commentStartDashStateHandler
	case commentState:
		return t.commentStateHandler
	case commentEndDashState:
		return t.commentEndDashStateHandler
	case commentEndState:
		return t.commentEndStateHandler
	case commentEndBangState:
		return t.commentEndBangStateHandler
	case doctypeState:
		return t.doctypeStateHandler
	case beforeDoctypeNameState:
		return t.beforeDoctypeNameStateHandler
	case doctypeNameState:
		return t.doctypeNameStateHandler
	case afterDoctypeNameState:
		return t.afterDoctypeNameStateHandler
	case afterDoctypePublicKeywordState:
		return t.afterDoctypePublicKeywordStateHandler
	case beforeDoctypePublicIdentifierState:
		return t.beforeDoctypePublicIdentifierStateHandler
	case doctypePublicIdentifierDoubleQuotedState:
		return t.doctypePublicIdentifierDoubleQuotedStateHandler
	case doctypePublicIdentifierSingleQuotedState:
		return t.doctypePublicIdentifierSingleQuotedStateHandler
	case afterDoctypePublicIdentifierState:
		return t.afterDoctypePublicIdentifierStateHandler
	case betweenDoctypePublicAndSystemIdentifiersState:
		return t.betweenDoctypePublicAndSystemIdentifiersStateHandler
	case afterDoctypeSystemKeywordState:
		return t.afterDoctypeSystemKeywordStateHandler
	case beforeDoctypeSystemIdentifierState:
		return t.beforeDoctypeSystemIdentifierStateHandler
	case doctypeSystemIdentifierDoubleQuotedState:
		return t.doctypeSystemIdentifierDoubleQuotedStateHandler
	case doctypeSystemIdentifierSingleQuotedState:
		return t.doctypeSystemIdentifierSingleQuotedStateHandler
	case afterDoctypeSystemIdentifierState:
		return t.afterDoctypeSystemIdentifierStateHandler
	case bogusDoctypeState:
		return t.bogusDoctypeStateHandler
	case cdataSectionState:
		return t.cdataSectionStateHandler
	case processingInstructionState:
		return t.processingInstructionStateHandler
	case processingInstructionTargetState:
		return t.processingInstructionTargetStateHandler
	case afterProcessingInstructionTargetState:
		return t.afterProcessingInstructionTargetStateHandler
	case processingInstructionDataState:
		return t.processingInstructionDataStateHandler
	case processingInstructionEndState:
		return t.processingInstructionEndStateHandler
	}
	panic("tokenizer: unreachable state in dispatch")
}

// --- emission helpers shared by every state family ---

func (t *Tokenizer) emitError(kind string, params map[string]any) {
	t.errs = append(t.errs, token.Token{Type: token.ParseError, ErrorKind: kind, ErrorParams: params})
	t.log.WithField("kind", kind).Debug("parse error")
}

func (t *Tokenizer) emitErrors(errs []charref.ParseErr) {
	for _, e := range errs {
		t.emitError(e.Kind, e.Params)
	}
}

// push appends a fully-formed content token to the queue, stamping a span
// when GenerateSpans is set.
func (t *Tokenizer) push(tok token.Token) {
	if t.opts.GenerateSpans {
		end := t.s.Position().Offset
		tok.Span = &token.Span{File: t.s.File(), Start: t.spanStart, End: end}
		t.spanStart = end
	}
	if tok.Type == token.StartTag {
		t.lastStartTagName = tok.Name
	}
	t.queue = append(t.queue, tok)
}

// flushPending drains the pending-character buffer into exactly one
// Characters or SpaceCharacters token, fusing every literal run and
// resolved character reference accumulated since the last flush into one
// token. A no-op when nothing accumulated.
func (t *Tokenizer) flushPending() {
	if t.b.PendingLen() == 0 {
		return
	}
	text := t.b.TakePending()
	typ := token.Characters
	allSpace := true
	for _, r := range text {
		if !charref.IsWhitespace(r) {
			allSpace = false
			break
		}
	}
	if allSpace {
		typ = token.SpaceCharacters
	}
	t.push(token.Token{Type: typ, Data: text})
}

// emitCurrentTag flushes any pending characters, emits the current start or
// end tag, and resets the builder for the next token. Returns Data, the
// universal post-tag state.
func (t *Tokenizer) emitCurrentTag() state {
	t.flushPending()
	if t.b.IsEndTag() {
		if t.b.AttrCount() > 0 {
			t.emitError("attributes-in-end-tag", nil)
		}
		if t.b.SelfClosingFlag() {
			t.emitError("this-closing-flag-on-end-tag", nil)
		}
		t.push(t.b.EndTagToken())
	} else {
		t.push(t.b.StartTagToken())
		if t.opts.EmitSyntheticEndForSelfClosing && t.b.SelfClosingFlag() && !isVoidElement(t.b.Name()) {
			t.push(token.Token{Type: token.EndTag, Name: t.b.Name()})
		}
	}
	t.b.Reset()
	return dataState
}

func (t *Tokenizer) emitComment() state {
	t.flushPending()
	t.push(t.b.CommentToken())
	t.b.Reset()
	return dataState
}

func (t *Tokenizer) emitDoctype() state {
	t.flushPending()
	t.push(t.b.DoctypeToken())
	t.b.Reset()
	return dataState
}

func (t *Tokenizer) emitProcessingInstruction() state {
	t.flushPending()
	t.push(t.b.ProcessingInstructionToken())
	t.b.Reset()
	return dataState
}

// isAppropriateEndTag reports whether the tag name accumulated so far in
// the builder matches the most recently emitted start tag, per the
// GLOSSARY's "appropriate end tag" definition.
func (t *Tokenizer) isAppropriateEndTag() bool {
	return t.lastStartTagName != "" && t.lastStartTagName == t.b.Name()
}

// writeNameRune appends r to the current tag's name, folding case if
// Options.LowercaseElementName is set.
func (t *Tokenizer) writeNameRune(r rune) {
	if t.opts.LowercaseElementName {
		r = charref.ToASCIILowerRune(r)
	}
	t.b.WriteName(r)
}

// writeAttributeNameRune appends r to the current attribute's name,
// folding case if Options.LowercaseAttrName is set.
func (t *Tokenizer) writeAttributeNameRune(r rune) {
	if t.opts.LowercaseAttrName {
		r = charref.ToASCIILowerRune(r)
	}
	t.b.WriteAttributeName(r)
}

// commitAttribute ends the current name/value pair, raising
// duplicate-attribute if it collides with one already committed.
func (t *Tokenizer) commitAttribute() {
	if _, dup := t.b.CommitAttribute(); dup {
		t.emitError("duplicate-attribute", nil)
	}
}

// replayTempBufferAsCharacters pushes back "</" plus the temporary buffer
// as literal pending text, used when an Rcdata/Rawtext/ScriptData end tag
// turns out not to be appropriate.
func (t *Tokenizer) replayTempBufferAsCharacters() {
	t.b.WritePending('<')
	t.b.WritePending('/')
	t.b.WritePendingString(t.b.TempBuffer())
}
