package syntax

import (
	"regexp"
	"sort"
	"strings"
)

// Pattern is one entry of the pattern table.
type Pattern struct {
	// Name identifies the rule in tests and debug output.
	Name string

	// Category is the style assigned to a match. Rules that match words are
	// reclassified after the match by dictionary lookup.
	Category Category

	// Re is anchored at the scan position.
	Re *regexp.Regexp

	// LineStart restricts the rule to the first non-blank column.
	LineStart bool

	// Opens is the mode a match leaves open when the line ends in a
	// backslash continuation, if any.
	Opens Mode
}

// Rule names used by the highlighter to branch on a match.
const (
	RuleSelf         = "self"
	RuleDecorator    = "decorator"
	RuleWord         = "word"
	RuleNumber       = "number"
	RuleComment      = "comment"
	RuleDoubleString = "dq-string"
	RuleSingleString = "sq-string"
	RuleOpenDouble   = "dq-string-open"
	RuleOpenSingle   = "sq-string-open"
	RuleOperator     = "operator"
	RulePunctuation  = "punctuation"
)

// Keywords are Python's reserved words.
//
//nolint:gochecknoglobals // Read-only lookup table.
var Keywords = map[string]bool{
	"False": true, "None": true, "True": true,
	"and": true, "as": true, "assert": true, "async": true, "await": true,
	"break": true, "class": true, "continue": true,
	"def": true, "del": true,
	"elif": true, "else": true, "except": true,
	"finally": true, "for": true, "from": true,
	"global": true, "if": true, "import": true, "in": true, "is": true,
	"lambda": true, "nonlocal": true, "not": true,
	"or": true, "pass": true, "raise": true, "return": true,
	"try": true, "while": true, "with": true, "yield": true,
}

// Builtins are the builtin functions, types and constants.
//
//nolint:gochecknoglobals // Read-only lookup table.
var Builtins = map[string]bool{
	"bool": true, "bytearray": true, "bytes": true, "complex": true,
	"dict": true, "float": true, "frozenset": true, "int": true,
	"list": true, "memoryview": true, "object": true, "set": true,
	"slice": true, "str": true, "tuple": true, "type": true,
	"abs": true, "all": true, "any": true, "ascii": true,
	"bin": true, "breakpoint": true, "callable": true, "chr": true,
	"classmethod": true, "compile": true, "delattr": true, "dir": true,
	"divmod": true, "enumerate": true, "eval": true, "exec": true,
	"filter": true, "format": true, "getattr": true, "globals": true,
	"hasattr": true, "hash": true, "help": true, "hex": true,
	"id": true, "input": true, "isinstance": true, "issubclass": true,
	"iter": true, "len": true, "locals": true, "map": true,
	"max": true, "min": true, "next": true, "oct": true,
	"open": true, "ord": true, "pow": true, "print": true,
	"property": true, "range": true, "repr": true, "reversed": true,
	"round": true, "setattr": true, "sorted": true, "staticmethod": true,
	"sum": true, "super": true, "vars": true, "zip": true,
	"NotImplemented": true, "Ellipsis": true, "__import__": true,
}

// Operators is the fixed operator list: comparison, arithmetic, in-place and bitwise.
//
//nolint:gochecknoglobals // Read-only lookup table.
var Operators = []string{
	"==", "!=", "<=", ">=", "<", ">", "<>",
	"+", "-", "*", "/", "//", "%", "**", "@",
	"+=", "-=", "*=", "/=", "//=", "%=", "**=", "@=",
	"&=", "|=", "^=", ">>=", "<<=",
	"&", "|", "^", "~", "<<", ">>",
	"=", ":=", "->",
}

// stringPrefix matches the optional literal prefix (r, b, u, f and pairs).
const stringPrefix = `(?:[rRbBuUfF]|[rR][bBfF]|[bBfF][rR])?`

// triplePattern locates a triple-quote opener at the scan position.
//
//nolint:gochecknoglobals // Compiled once.
var triplePattern = regexp.MustCompile(`^` + stringPrefix + `('''|""")`)

// PatternTable is the ordered rule list. The first rule that matches at a
// scan position wins. String rules sit ahead of the word rule so that a
// literal prefix such as r or rb is consumed with its quote; the remaining
// rules begin with disjoint characters, so their relative order only matters
// for self versus word and number versus punctuation.
type PatternTable struct {
	patterns []Pattern
}

// DefaultPatternTable builds the standard Python rule list.
func DefaultPatternTable() *PatternTable {
	return &PatternTable{patterns: []Pattern{
		{Name: RuleSelf, Category: CategorySelf, Re: regexp.MustCompile(`^self\b`)},
		{Name: RuleDecorator, Category: CategoryDecorator, Re: regexp.MustCompile(`^@.*$`), LineStart: true},
		{
			Name:     RuleDoubleString,
			Category: CategoryString,
			Re:       regexp.MustCompile(`^` + stringPrefix + `"(?:[^"\\]|\\.)*"`),
		},
		{
			Name:     RuleSingleString,
			Category: CategoryString,
			Re:       regexp.MustCompile(`^` + stringPrefix + `'(?:[^'\\]|\\.)*'`),
		},
		{
			Name:     RuleOpenDouble,
			Category: CategoryString,
			Re:       regexp.MustCompile(`^` + stringPrefix + `"(?:[^"\\]|\\.)*\\?$`),
			Opens:    ModeDouble,
		},
		{
			Name:     RuleOpenSingle,
			Category: CategoryString,
			Re:       regexp.MustCompile(`^` + stringPrefix + `'(?:[^'\\]|\\.)*\\?$`),
			Opens:    ModeSingle,
		},
		{Name: RuleWord, Category: CategoryWord, Re: regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_]*`)},
		{
			Name:     RuleNumber,
			Category: CategoryNumber,
			Re: regexp.MustCompile(`^(?:0[xX][0-9a-fA-F_]+|0[oO][0-7_]+|0[bB][01_]+|` +
				`(?:\d[\d_]*(?:\.[\d_]*)?|\.\d[\d_]*)(?:[eE][+-]?\d[\d_]*)?[jJlL]?)`),
		},
		{Name: RuleComment, Category: CategoryComment, Re: regexp.MustCompile(`^#.*$`)},
		{Name: RuleOperator, Category: CategoryOperator, Re: operatorPattern(Operators)},
		{Name: RulePunctuation, Category: CategoryPunctuation, Re: regexp.MustCompile(`^(?:\.\.\.|[()\[\]{}:;,.])`)},
	}}
}

// Patterns returns a copy of the ordered rules.
func (t *PatternTable) Patterns() []Pattern {
	out := make([]Pattern, len(t.patterns))
	copy(out, t.patterns)
	return out
}

// match returns the first rule that applies at pos together with the match length.
func (t *PatternTable) match(text string, pos int, lineStart bool) (Pattern, int, bool) {
	rest := text[pos:]
	for _, p := range t.patterns {
		if p.LineStart && !lineStart {
			continue
		}
		loc := p.Re.FindStringIndex(rest)
		if loc == nil || loc[1] == 0 {
			continue
		}
		return p, loc[1], true
	}
	return Pattern{}, 0, false
}

// operatorPattern builds an alternation that prefers the longest operator.
func operatorPattern(ops []string) *regexp.Regexp {
	sorted := make([]string, len(ops))
	copy(sorted, ops)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	quoted := make([]string, len(sorted))
	for i, op := range sorted {
		quoted[i] = regexp.QuoteMeta(op)
	}
	return regexp.MustCompile(`^(?:` + strings.Join(quoted, "|") + `)`)
}

// classifyWord reclassifies a bare identifier. Lookup is exact and case-sensitive.
func classifyWord(word, previousKeyword string) Category {
	switch {
	case word == "self":
		return CategorySelf
	case Keywords[word]:
		return CategoryKeyword
	case previousKeyword == "def":
		return CategoryFunction
	case previousKeyword == "class":
		return CategoryClass
	case Builtins[word]:
		return CategoryBuiltin
	case isDunder(word):
		return CategoryPredefined
	default:
		return CategoryWord
	}
}

func isDunder(word string) bool {
	return len(word) > 4 && strings.HasPrefix(word, "__") && strings.HasSuffix(word, "__")
}
