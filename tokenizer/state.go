package tokenizer

// state is the tokenizer's current position in the state machine: the
// sixty-plus states the WHATWG tokenization algorithm defines. Unlike a
// state machine that carries separate states for every character-reference
// sub-step, entityDataState and characterReferenceInRcdataState each resolve
// a whole reference in one call into charref.Resolve.
type state uint8

const (
	dataState state = iota
	entityDataState
	rcdataState
	characterReferenceInRcdataState
	rawtextState
	scriptDataState
	plaintextState

	tagOpenState
	closeTagOpenState
	tagNameState

	rcdataLessThanSignState
	rcdataEndTagOpenState
	rcdataEndTagNameState

	rawtextLessThanSignState
	rawtextEndTagOpenState
	rawtextEndTagNameState

	scriptDataLessThanSignState
	scriptDataEndTagOpenState
	scriptDataEndTagNameState
	scriptDataEscapeStartState
	scriptDataEscapeStartDashState
	scriptDataEscapedState
	scriptDataEscapedDashState
	scriptDataEscapedDashDashState
	scriptDataEscapedLessThanSignState
	scriptDataEscapedEndTagOpenState
	scriptDataEscapedEndTagNameState
	scriptDataDoubleEscapeStartState
	scriptDataDoubleEscapedState
	scriptDataDoubleEscapedDashState
	scriptDataDoubleEscapedDashDashState
	scriptDataDoubleEscapedLessThanSignState
	scriptDataDoubleEscapeEndState

	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueState
	selfClosingStartTagState

	bogusCommentState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentEndDashState
	commentEndState
	commentEndBangState

	doctypeState
	beforeDoctypeNameState
	doctypeNameState
	afterDoctypeNameState
	afterDoctypePublicKeywordState
	beforeDoctypePublicIdentifierState
	doctypePublicIdentifierDoubleQuotedState
	doctypePublicIdentifierSingleQuotedState
	afterDoctypePublicIdentifierState
	betweenDoctypePublicAndSystemIdentifiersState
	afterDoctypeSystemKeywordState
	beforeDoctypeSystemIdentifierState
	doctypeSystemIdentifierDoubleQuotedState
	doctypeSystemIdentifierSingleQuotedState
	afterDoctypeSystemIdentifierState
	bogusDoctypeState

	cdataSectionState

	processingInstructionState
	processingInstructionTargetState
	afterProcessingInstructionTargetState
	processingInstructionDataState
	processingInstructionEndState
)

var stateNames = map[state]string{
	dataState:                        "Data",
	entityDataState:                  "EntityData",
	rcdataState:                      "Rcdata",
	characterReferenceInRcdataState:  "CharacterReferenceInRcdata",
	rawtextState:                     "Rawtext",
	scriptDataState:                  "ScriptData",
	plaintextState:                   "Plaintext",
	tagOpenState:                     "TagOpen",
	closeTagOpenState:                "CloseTagOpen",
	tagNameState:                     "TagName",
	rcdataLessThanSignState:          "RcdataLessThanSign",
	rcdataEndTagOpenState:            "RcdataEndTagOpen",
	rcdataEndTagNameState:            "RcdataEndTagName",
	rawtextLessThanSignState:         "RawtextLessThanSign",
	rawtextEndTagOpenState:           "RawtextEndTagOpen",
	rawtextEndTagNameState:           "RawtextEndTagName",
	scriptDataLessThanSignState:      "ScriptDataLessThanSign",
	scriptDataEndTagOpenState:        "ScriptDataEndTagOpen",
	scriptDataEndTagNameState:        "ScriptDataEndTagName",
	scriptDataEscapeStartState:       "ScriptDataEscapeStart",
	scriptDataEscapeStartDashState:   "ScriptDataEscapeStartDash",
	scriptDataEscapedState:           "ScriptDataEscaped",
	scriptDataEscapedDashState:       "ScriptDataEscapedDash",
	scriptDataEscapedDashDashState:   "ScriptDataEscapedDashDash",
	scriptDataEscapedLessThanSignState:       "ScriptDataEscapedLessThanSign",
	scriptDataEscapedEndTagOpenState:         "ScriptDataEscapedEndTagOpen",
	scriptDataEscapedEndTagNameState:         "ScriptDataEscapedEndTagName",
	scriptDataDoubleEscapeStartState:         "ScriptDataDoubleEscapeStart",
	scriptDataDoubleEscapedState:             "ScriptDataDoubleEscaped",
	scriptDataDoubleEscapedDashState:         "ScriptDataDoubleEscapedDash",
	scriptDataDoubleEscapedDashDashState:     "ScriptDataDoubleEscapedDashDash",
	scriptDataDoubleEscapedLessThanSignState: "ScriptDataDoubleEscapedLessThanSign",
	scriptDataDoubleEscapeEndState:           "ScriptDataDoubleEscapeEnd",
	beforeAttributeNameState:        "BeforeAttributeName",
	attributeNameState:              "AttributeName",
	afterAttributeNameState:         "AfterAttributeName",
	beforeAttributeValueState:       "BeforeAttributeValue",
	attributeValueDoubleQuotedState: "AttributeValueDoubleQuoted",
	attributeValueSingleQuotedState: "AttributeValueSingleQuoted",
	attributeValueUnquotedState:     "AttributeValueUnquoted",
	afterAttributeValueState:        "AfterAttributeValue",
	selfClosingStartTagState:        "SelfClosingStartTag",
	bogusCommentState:               "BogusComment",
	markupDeclarationOpenState:      "MarkupDeclarationOpen",
	commentStartState:               "CommentStart",
	commentStartDashState:           "CommentStartDash",
	commentState:                    "Comment",
	commentEndDashState:             "CommentEndDash",
	commentEndState:                 "CommentEnd",
	commentEndBangState:             "CommentEndBang",
	doctypeState:                    "Doctype",
	beforeDoctypeNameState:          "BeforeDoctypeName",
	doctypeNameState:                "DoctypeName",
	afterDoctypeNameState:           "AfterDoctypeName",
	afterDoctypePublicKeywordState:  "AfterDoctypePublicKeyword",
	beforeDoctypePublicIdentifierState:       "BeforeDoctypePublicIdentifier",
	doctypePublicIdentifierDoubleQuotedState: "DoctypePublicIdentifierDoubleQuoted",
	doctypePublicIdentifierSingleQuotedState: "DoctypePublicIdentifierSingleQuoted",
	afterDoctypePublicIdentifierState:        "AfterDoctypePublicIdentifier",
	betweenDoctypePublicAndSystemIdentifiersState: "BetweenDoctypePublicAndSystemIdentifiers",
	afterDoctypeSystemKeywordState:                "AfterDoctypeSystemKeyword",
	beforeDoctypeSystemIdentifierState:            "BeforeDoctypeSystemIdentifier",
	doctypeSystemIdentifierDoubleQuotedState:      "DoctypeSystemIdentifierDoubleQuoted",
	doctypeSystemIdentifierSingleQuotedState:      "DoctypeSystemIdentifierSingleQuoted",
	afterDoctypeSystemIdentifierState:             "AfterDoctypeSystemIdentifier",
	bogusDoctypeState:                             "BogusDoctype",
	cdataSectionState:                             "CdataSection",
	processingInstructionState:                    "ProcessingInstruction",
	processingInstructionTargetState:               "ProcessingInstructionTarget",
	afterProcessingInstructionTargetState:          "AfterProcessingInstructionTarget",
	processingInstructionDataState:                 "ProcessingInstructionData",
	processingInstructionEndState:                  "ProcessingInstructionEnd",
}

func (s state) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// ContentModelState names the subset of states the tree-construction
// collaborator is allowed to switch the tokenizer into via SetState — the
// five content models: Data, Rcdata, Rawtext, ScriptData, and Plaintext.
type ContentModelState state

const (
	Data       ContentModelState = ContentModelState(dataState)
	Rcdata     ContentModelState = ContentModelState(rcdataState)
	Rawtext    ContentModelState = ContentModelState(rawtextState)
	ScriptData ContentModelState = ContentModelState(scriptDataState)
	Plaintext  ContentModelState = ContentModelState(plaintextState)
)
