package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartTagTokenCarriesAttributesAndSelfClosing(t *testing.T) {
	b := NewBuilder()
	b.SetTagKindStart()
	for _, r := range "div" {
		b.WriteName(r)
	}
	for _, r := range "id" {
		b.WriteAttributeName(r)
	}
	for _, r := range "x" {
		b.WriteAttributeValue(r)
	}
	b.CommitAttribute()
	b.EnableSelfClosing()

	tok := b.StartTagToken()
	assert.Equal(t, StartTag, tok.Type)
	assert.Equal(t, "div", tok.Name)
	assert.True(t, tok.SelfClosing)
	assert.Equal(t, []Attribute{{Name: "id", Value: "x"}}, tok.Attrs)
}

func TestCommitAttributeDropsLaterDuplicate(t *testing.T) {
	b := NewBuilder()
	b.WriteAttributeName('x')
	b.WriteAttributeValue('1')
	_, dup := b.CommitAttribute()
	assert.False(t, dup)

	b.WriteAttributeName('x')
	b.WriteAttributeValue('2')
	_, dup = b.CommitAttribute()
	assert.True(t, dup)

	assert.Equal(t, 1, b.AttrCount())
	tok := b.StartTagToken()
	assert.Equal(t, "1", tok.Attrs[0].Value)
}

func TestCommitAttributeIsNoOpWhenNameEmpty(t *testing.T) {
	b := NewBuilder()
	name, dup := b.CommitAttribute()
	assert.Empty(t, name)
	assert.False(t, dup)
	assert.Equal(t, 0, b.AttrCount())
}

func TestResetClearsCurrentTokenButNotPendingOrTempBuffer(t *testing.T) {
	b := NewBuilder()
	b.WriteName('a')
	b.WritePublicIdentifierEmpty()
	b.EnableSelfClosing()
	b.MarkIncorrect()
	b.WritePending('x')
	b.WriteTempBuffer('y')

	b.Reset()

	assert.Empty(t, b.Name())
	assert.False(t, b.SelfClosingFlag())
	assert.True(t, b.Correct())
	assert.Equal(t, 1, b.PendingLen())
	assert.Equal(t, "y", b.TempBuffer())
}

func TestDoctypeTokenIdentifiersDistinguishNilFromEmpty(t *testing.T) {
	b := NewBuilder()
	tok := b.DoctypeToken()
	assert.Nil(t, tok.PublicID)
	assert.Nil(t, tok.SystemID)
	assert.True(t, tok.Correct)

	b.Reset()
	b.WritePublicIdentifierEmpty()
	b.WritePublicIdentifier('x')
	tok = b.DoctypeToken()
	require := assert.New(t)
	require.NotNil(tok.PublicID)
	require.Equal("x", *tok.PublicID)
	require.Nil(tok.SystemID)
}

func TestProcessingInstructionToken(t *testing.T) {
	b := NewBuilder()
	for _, r := range "xml" {
		b.WriteTarget(r)
	}
	for _, r := range `version="1.0"` {
		b.WriteData(r)
	}
	tok := b.ProcessingInstructionToken()
	assert.Equal(t, ProcessingInstruction, tok.Type)
	assert.Equal(t, "xml", tok.Target)
	assert.Equal(t, `version="1.0"`, tok.Data)
	assert.True(t, tok.Correct)
}

func TestTakePendingDrainsBuffer(t *testing.T) {
	b := NewBuilder()
	b.WritePending('a')
	b.WritePendingString("bc")
	assert.Equal(t, 3, b.PendingLen())

	s := b.TakePending()
	assert.Equal(t, "abc", s)
	assert.Equal(t, 0, b.PendingLen())
}
