package charref

// namedReferences is the semicolon-terminated subset of the named character
// reference table: every name here must be followed by ';' to match. This is
// a curated common/compatibility subset, not the full reference table (see
// DESIGN.md); entries like "notin;" alongside "not;" are kept specifically
// because they exercise the longest-match walk in resolveNamed.
var namedReferences = map[string]string{
	"amp;":     "&",
	"lt;":      "<",
	"gt;":      ">",
	"quot;":    "\"",
	"apos;":    "'",
	"nbsp;":    " ",
	"copy;":    "©",
	"reg;":     "®",
	"trade;":   "™",
	"hellip;":  "…",
	"mdash;":   "—",
	"ndash;":   "–",
	"larr;":    "←",
	"rarr;":    "→",
	"uarr;":    "↑",
	"darr;":    "↓",
	"harr;":    "↔",
	"alpha;":   "α",
	"beta;":    "β",
	"gamma;":   "γ",
	"delta;":   "δ",
	"epsilon;": "ε",
	"pi;":      "π",
	"sigma;":   "σ",
	"omega;":   "ω",
	"infin;":   "∞",
	"ne;":      "≠",
	"le;":      "≤",
	"ge;":      "≥",
	"equiv;":   "≡",
	"sum;":     "∑",
	"prod;":    "∏",
	"int;":     "∫",
	"radic;":   "√",
	"part;":    "∂",
	"nabla;":   "∇",
	"forall;":  "∀",
	"exist;":   "∃",
	"empty;":   "∅",
	"isin;":    "∈",
	"notin;":   "∉",
	"ni;":      "∋",
	"sub;":     "⊂",
	"sup;":     "⊃",
	"sube;":    "⊆",
	"supe;":    "⊇",
	"cap;":     "∩",
	"cup;":     "∪",
	"there4;":  "∴",
	"sim;":     "∼",
	"cong;":    "≅",
	"asymp;":   "≈",
	"prop;":    "∝",
	"ang;":     "∠",
	"not;":     "¬",
	"euro;":    "€",
	"cent;":    "¢",
	"pound;":   "£",
	"yen;":     "¥",
	"sect;":    "§",
	"para;":    "¶",
	"middot;":  "·",
	"laquo;":   "«",
	"raquo;":   "»",
	"iexcl;":   "¡",
	"iquest;":  "¿",
	"szlig;":   "ß",
	"times;":   "×",
	"divide;":  "÷",
	"plusmn;":  "±",
	"sup1;":    "¹",
	"sup2;":    "²",
	"sup3;":    "³",
	"frac12;":  "½",
	"frac14;":  "¼",
	"frac34;":  "¾",
	"agrave;":  "à",
	"aacute;":  "á",
	"acirc;":   "â",
	"atilde;":  "ã",
	"auml;":    "ä",
	"aring;":   "å",
	"aelig;":   "æ",
	"ccedil;":  "ç",
	"egrave;":  "è",
	"eacute;":  "é",
	"ecirc;":   "ê",
	"euml;":    "ë",
	"igrave;":  "ì",
	"iacute;":  "í",
	"icirc;":   "î",
	"iuml;":    "ï",
	"eth;":     "ð",
	"ntilde;":  "ñ",
	"ograve;":  "ò",
	"oacute;":  "ó",
	"ocirc;":   "ô",
	"otilde;":  "õ",
	"ouml;":    "ö",
	"oslash;":  "ø",
	"ugrave;":  "ù",
	"uacute;":  "ú",
	"ucirc;":   "û",
	"uuml;":    "ü",
	"yacute;":  "ý",
	"thorn;":   "þ",
	"yuml;":    "ÿ",
}

// legacyReferences are the names HTML5 permits without a trailing ';' for
// historical compatibility (a fixed, closed list — see DESIGN.md).
var legacyReferences = map[string]string{
	"amp":     "&",
	"AMP":     "&",
	"lt":      "<",
	"LT":      "<",
	"gt":      ">",
	"GT":      ">",
	"quot":    "\"",
	"QUOT":    "\"",
	"nbsp":    " ",
	"copy":    "©",
	"COPY":    "©",
	"reg":     "®",
	"REG":     "®",
	"not":     "¬",
	"yen":     "¥",
	"cent":    "¢",
	"pound":   "£",
	"curren":  "¤",
	"sect":    "§",
	"uml":     "¨",
	"ordf":    "ª",
	"laquo":   "«",
	"shy":     "­",
	"macr":    "¯",
	"deg":     "°",
	"plusmn":  "±",
	"sup2":    "²",
	"sup3":    "³",
	"acute":   "´",
	"micro":   "µ",
	"para":    "¶",
	"middot":  "·",
	"cedil":   "¸",
	"sup1":    "¹",
	"ordm":    "º",
	"raquo":   "»",
	"frac14":  "¼",
	"frac12":  "½",
	"frac34":  "¾",
	"iquest":  "¿",
	"iexcl":   "¡",
	"times":   "×",
	"divide":  "÷",
	"szlig":   "ß",
	"AElig":   "Æ",
	"Aring":   "Å",
	"Aacute":  "Á",
	"Ouml":    "Ö",
	"Uuml":    "Ü",
	"Ntilde":  "Ñ",
	"ntilde":  "ñ",
	"THORN":   "Þ",
	"ETH":     "Ð",
}

// byFirstChar buckets every table entry (both sets combined) by its first
// byte, for the prefix-pruning walk the resolver performs.
var byFirstChar = map[byte][]string{}

func init() {
	for name := range namedReferences {
		addBucket(name)
	}
	for name := range legacyReferences {
		addBucket(name)
	}
}

func addBucket(name string) {
	c := name[0]
	byFirstChar[c] = append(byFirstChar[c], name)
}

// lookup returns the replacement text for an exact table key (including
// the trailing ';' for semicolon-only entries), and whether the key is a
// legacy (non-semicolon) form.
func lookup(name string) (value string, legacy bool, ok bool) {
	if v, ok := namedReferences[name]; ok {
		return v, false, true
	}
	if v, ok := legacyReferences[name]; ok {
		return v, true, true
	}
	return "", false, false
}

// bucketFor returns the candidate names sharing c as a first byte. The
// caller must not mutate the returned slice.
func bucketFor(c byte) []string { return byFirstChar[c] }
