package indent

// DefaultWidth is the indent-stop width in columns.
const DefaultWidth = 4

// Options configures an Inferrer.
type Options struct {
	// Width is the indent-stop width in columns. Tab expansion for bracket
	// alignment uses the same width.
	Width int

	// UseTabs makes one indent stop a single tab character.
	UseTabs bool

	// GoverningKeywords are searched for when a colon-terminated statement
	// spans several lines.
	GoverningKeywords []string

	// DedentKeywords remove one stop when they end the line or start the statement.
	DedentKeywords []string

	// Operators trigger a backslash continuation when they end the line.
	Operators []string
}

// DefaultGoverningKeywords returns the default governing keywords.
func DefaultGoverningKeywords() []string {
	return []string{"if", "def", "while", "for", "else", "elif", "except", "finally"}
}

// DefaultDedentKeywords returns the default dedent keywords.
func DefaultDedentKeywords() []string {
	return []string{"return", "pass"}
}

// DefaultOperators returns the default continuation operators.
func DefaultOperators() []string {
	return []string{".", ",", "+", "-", "/", "*", "or", "and", "=", "%", "=="}
}

// DefaultOptions returns options with all defaults applied.
func DefaultOptions() Options {
	return Options{
		Width:             DefaultWidth,
		GoverningKeywords: DefaultGoverningKeywords(),
		DedentKeywords:    DefaultDedentKeywords(),
		Operators:         DefaultOperators(),
	}
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.GoverningKeywords == nil {
		o.GoverningKeywords = DefaultGoverningKeywords()
	}
	if o.DedentKeywords == nil {
		o.DedentKeywords = DefaultDedentKeywords()
	}
	if o.Operators == nil {
		o.Operators = DefaultOperators()
	}
	return o
}
