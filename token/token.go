package token

// Kind classifies a span of a source document. The zero Kind is plain text
// that lies between recognized spans and is never rewritten. The remaining
// kinds are the five foreign-syntax forms and double as the kind character
// embedded in placeholder tokens.
type Kind byte

const (
	// Text is the implicit gap between recognized spans.
	Text Kind = 0

	Expression      Kind = 'E' // {{ ... }}
	Statement       Kind = 'S' // {% ... %}
	Comment         Kind = 'C' // {# ... #}
	Interpolation   Kind = 'R' // #{ ... }
	BackslashString Kind = 'B' // "..." containing at least one backslash
)

// Valid reports whether k is one of the five recognized span kinds.
// Text is not a valid placeholder kind.
func (k Kind) Valid() bool {
	switch k {
	case Expression, Statement, Comment, Interpolation, BackslashString:
		return true
	}
	return false
}

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Expression:
		return "expression"
	case Statement:
		return "statement"
	case Comment:
		return "comment"
	case Interpolation:
		return "interpolation"
	case BackslashString:
		return "backslash string"
	}
	return "invalid"
}

// Span is a contiguous byte range [Start, End) of a source document.
// Spans never overlap; together with Text gaps they partition the document.
type Span struct {
	Kind  Kind
	Start int
	End   int
}

// Delimiter literals for the four bracketed span kinds. BackslashString
// spans are delimited by double quotes and handled separately because their
// closer depends on escape state.
const (
	ExpressionOpen     = "{{"
	ExpressionClose    = "}}"
	StatementOpen      = "{%"
	StatementClose     = "%}"
	CommentOpen        = "{#"
	CommentClose       = "#}"
	InterpolationOpen  = "#{"
	InterpolationClose = "}"
)

// Raw-block marker words, compared against trimmed, lowercased statement
// content.
const (
	RawBegin = "raw"
	RawEnd   = "endraw"
)
