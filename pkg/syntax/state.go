package syntax

// Mode is the lexical region a line ends in.
type Mode uint8

// Line modes. The numbering matches the conventional encoding where the two
// triple-quoted kinds come first.
const (
	ModeNormal Mode = iota
	ModeSingleTriple
	ModeDoubleTriple
	ModeSingle
	ModeDouble
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSingleTriple:
		return "in_sq3"
	case ModeDoubleTriple:
		return "in_dq3"
	case ModeSingle:
		return "in_sq"
	case ModeDouble:
		return "in_dq"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// IsTriple reports whether the mode is inside a triple-quoted region.
func (m Mode) IsTriple() bool {
	return m == ModeSingleTriple || m == ModeDoubleTriple
}

// Quote returns the delimiter that closes the region, or "" for ModeNormal.
func (m Mode) Quote() string {
	switch m {
	case ModeSingleTriple:
		return `'''`
	case ModeDoubleTriple:
		return `"""`
	case ModeSingle:
		return `'`
	case ModeDouble:
		return `"`
	default:
		return ""
	}
}

// LineState is the value carried from the end of one line to the start of
// the next. IsDocstring only has meaning while Mode is a triple mode, but it
// is kept (and compared) after a region closes so equality stays a plain
// field comparison.
type LineState struct {
	Mode        Mode `json:"mode"`
	IsDocstring bool `json:"is_docstring"`
}

// StateNormal is the state before the first line of a buffer.
//
//nolint:gochecknoglobals // Immutable zero value, exported for readability.
var StateNormal = LineState{}

// Open reports whether the state leaves a string region open.
func (s LineState) Open() bool {
	return s.Mode != ModeNormal
}

// InDocstring reports whether the state is inside a docstring region.
func (s LineState) InDocstring() bool {
	return s.Mode.IsTriple() && s.IsDocstring
}

// stringCategory is the category used for content of the region.
func (s LineState) stringCategory() Category {
	if s.IsDocstring {
		return CategoryDocstring
	}
	return CategoryString
}

func tripleMode(marker string) Mode {
	if marker == `'''` {
		return ModeSingleTriple
	}
	return ModeDoubleTriple
}

func singleMode(quote byte) Mode {
	if quote == '\'' {
		return ModeSingle
	}
	return ModeDouble
}
