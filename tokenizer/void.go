package tokenizer

import "github.com/tomyeh/html5plus/charref"

// voidElements is the fixed set of HTML elements that never have content or
// an end tag, per the GLOSSARY. Checked against the ASCII-lowercased tag
// name, regardless of Options.LowercaseElementName.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "command": true,
	"embed": true, "hr": true, "img": true, "input": true, "keygen": true,
	"link": true, "meta": true, "param": true, "source": true, "track": true,
	"wbr": true,
}

func isVoidElement(name string) bool { return voidElements[charref.ToASCIILower(name)] }
