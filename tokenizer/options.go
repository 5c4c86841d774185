package tokenizer

// Options configures a Tokenizer: case-folding, span generation, and two
// flags covering behavior this repo extends past strict HTML5
// conformance (processing instructions, synthetic end tags).
type Options struct {
	// LowercaseElementName folds start/end tag names to ASCII lower.
	// Defaults to true.
	LowercaseElementName bool
	// LowercaseAttrName folds attribute names to ASCII lower. Defaults to
	// true.
	LowercaseAttrName bool
	// GenerateSpans attaches a *token.Span to every emitted token.
	GenerateSpans bool

	// AllowProcessingInstructions routes TagOpen's '?' branch into a
	// processing-instruction state instead of BogusComment. Defaults to
	// true; set false for strict HTML5 conformance, where "<?" is always
	// a bogus comment.
	AllowProcessingInstructions bool
	// EmitSyntheticEndForSelfClosing emits a synthetic end tag immediately
	// after a self-closed start tag whose name is not a void element.
	// Defaults to true; when false, the start tag is emitted alone with its
	// SelfClosing flag set and no parse error is raised.
	EmitSyntheticEndForSelfClosing bool
}

// DefaultOptions returns the Options a tree-construction collaborator
// gets when it asks for none.
func DefaultOptions() Options {
	return Options{
		LowercaseElementName:           true,
		LowercaseAttrName:              true,
		GenerateSpans:                  false,
		AllowProcessingInstructions:    true,
		EmitSyntheticEndForSelfClosing: true,
	}
}

// Collaborator documents the consumer side of the tree-construction
// handoff — the tokenizer never calls any of this itself; a tree builder
// (out of scope here) drives Next/Token and calls SetState/SetAllowCDATA
// between those calls, at the moments HTML5 tree construction requires it:
//
//   - after emitting the start tag for <title>/<textarea>: SetState(Rcdata)
//   - <style>/<xmp>/<iframe>/<noembed>/<noframes>/<noscript>: SetState(Rawtext)
//   - <script>: SetState(ScriptData)
//   - <plaintext>: SetState(Plaintext)
//   - whenever the current insertion point's namespace changes: SetAllowCDATA
type Collaborator interface {
	SetState(ContentModelState)
	SetAllowCDATA(bool)
}
