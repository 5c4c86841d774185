package token

import "strings"

type tagKind uint8

const (
	startTagKind tagKind = iota
	endTagKind
)

// Builder is the current token: at most one of a start tag, end tag,
// comment, doctype, or processing instruction is ever under construction
// at a time, plus the pending-character buffer that exists independently
// of whichever of those is current.
type Builder struct {
	name   strings.Builder
	data   strings.Builder
	target strings.Builder

	attrKey   strings.Builder
	attrVal   strings.Builder
	attrs     []Attribute
	attrNames map[string]bool

	selfClosing bool
	correct     bool // doctype/PI: true unless some error flipped it off
	tagKind     tagKind

	publicID *string
	systemID *string

	tempBuffer strings.Builder

	pending strings.Builder
}

// NewBuilder returns a Builder ready to accumulate the first token.
func NewBuilder() *Builder {
	return &Builder{attrNames: make(map[string]bool), correct: true}
}

// Reset clears the current-token fields in preparation for a new
// StartTag/EndTag/Comment/Doctype/ProcessingInstruction. It does not
// touch the temporary buffer or the pending-character buffer, which have
// their own, independent lifecycles.
func (b *Builder) Reset() {
	b.name.Reset()
	b.data.Reset()
	b.target.Reset()
	b.attrKey.Reset()
	b.attrVal.Reset()
	b.attrs = nil
	b.attrNames = make(map[string]bool)
	b.selfClosing = false
	b.correct = true
	b.tagKind = startTagKind
	b.publicID = nil
	b.systemID = nil
}

func (b *Builder) SetTagKindStart() { b.tagKind = startTagKind }
func (b *Builder) SetTagKindEnd()   { b.tagKind = endTagKind }
func (b *Builder) IsEndTag() bool   { return b.tagKind == endTagKind }

func (b *Builder) WriteName(r rune)   { b.name.WriteRune(r) }
func (b *Builder) Name() string       { return b.name.String() }
func (b *Builder) WriteData(r rune)   { b.data.WriteRune(r) }
func (b *Builder) Data() string       { return b.data.String() }
func (b *Builder) WriteTarget(r rune) { b.target.WriteRune(r) }
func (b *Builder) Target() string     { return b.target.String() }

func (b *Builder) EnableSelfClosing()   { b.selfClosing = true }
func (b *Builder) MarkIncorrect()       { b.correct = false }
func (b *Builder) Correct() bool        { return b.correct }
func (b *Builder) SelfClosingFlag() bool { return b.selfClosing }

func (b *Builder) WriteAttributeName(r rune)  { b.attrKey.WriteRune(r) }
func (b *Builder) WriteAttributeValue(r rune) { b.attrVal.WriteRune(r) }
func (b *Builder) AppendAttributeValue(s string) {
	b.attrVal.WriteString(s)
}

// CommitAttribute ends the current name/value pair. If the name was
// already seen, the pair is discarded (first occurrence wins) and
// CommitAttribute reports that so the caller can raise duplicate-attribute;
// it is safe to call even when attrKey is empty (a no-op then).
func (b *Builder) CommitAttribute() (name string, duplicate bool) {
	name = b.attrKey.String()
	value := b.attrVal.String()
	b.attrKey.Reset()
	b.attrVal.Reset()
	if name == "" {
		return "", false
	}
	if b.attrNames[name] {
		return name, true
	}
	b.attrNames[name] = true
	b.attrs = append(b.attrs, Attribute{Name: name, Value: value})
	return name, false
}

// AttrCount reports how many attributes have been committed to the
// current tag so far — used to raise attributes-in-end-tag.
func (b *Builder) AttrCount() int { return len(b.attrs) }

func (b *Builder) WritePublicIdentifierEmpty() { s := ""; b.publicID = &s }
func (b *Builder) WriteSystemIdentifierEmpty() { s := ""; b.systemID = &s }
func (b *Builder) WritePublicIdentifier(r rune) {
	if b.publicID == nil {
		s := ""
		b.publicID = &s
	}
	*b.publicID += string(r)
}
func (b *Builder) WriteSystemIdentifier(r rune) {
	if b.systemID == nil {
		s := ""
		b.systemID = &s
	}
	*b.systemID += string(r)
}

func (b *Builder) ResetTempBuffer()        { b.tempBuffer.Reset() }
func (b *Builder) WriteTempBuffer(r rune)  { b.tempBuffer.WriteRune(r) }
func (b *Builder) TempBuffer() string      { return b.tempBuffer.String() }

// WritePending appends one literal rune to the pending-character buffer:
// the run that will eventually become a single Characters/SpaceCharacters
// token, however many separate writes (literal runs, resolved character
// references) contributed to it.
func (b *Builder) WritePending(r rune)        { b.pending.WriteRune(r) }
func (b *Builder) WritePendingString(s string) { b.pending.WriteString(s) }
func (b *Builder) PendingLen() int             { return b.pending.Len() }

// TakePending returns the accumulated pending text and clears the buffer.
func (b *Builder) TakePending() string {
	s := b.pending.String()
	b.pending.Reset()
	return s
}

func (b *Builder) StartTagToken() Token {
	return Token{Type: StartTag, Name: b.name.String(), Attrs: b.attrs, SelfClosing: b.selfClosing}
}

func (b *Builder) EndTagToken() Token {
	// EndTag tokens never carry attributes or a self-closing flag once
	// emitted; any violations were already reported as parse errors by the
	// caller before this is invoked.
	return Token{Type: EndTag, Name: b.name.String()}
}

func (b *Builder) CommentToken() Token {
	return Token{Type: Comment, Data: b.data.String()}
}

func (b *Builder) DoctypeToken() Token {
	return Token{
		Type:     Doctype,
		Name:     b.name.String(),
		PublicID: b.publicID,
		SystemID: b.systemID,
		Correct:  b.correct,
	}
}

func (b *Builder) ProcessingInstructionToken() Token {
	return Token{
		Type:    ProcessingInstruction,
		Target:  b.target.String(),
		Data:    b.data.String(),
		Correct: b.correct,
	}
}
