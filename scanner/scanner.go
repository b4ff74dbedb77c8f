// Package scanner splits a document into plain-text gaps and foreign
// template-syntax spans. Delimiters are located by literal substring search,
// never by pattern matching, and a span ends at the first occurrence of its
// closing literal: {{ "{{" }} is a single expression span because scanning
// only looks for }} once positioned past the opener.
package scanner

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/KimNorgaard/go-j2mask/token"
)

// Config controls which spans a Scanner recognizes.
type Config struct {
	// AllowInlineStatements permits statement delimiters to share a line
	// with other content. When false, every statement must occupy its
	// entire line apart from surrounding whitespace.
	AllowInlineStatements bool

	// ProtectBackslash recognizes double-quoted literals containing at
	// least one backslash as BackslashString spans. The quotes of a
	// backslash-free literal stay plain text, though delimiters between
	// them are still recognized.
	ProtectBackslash bool
}

// An UnterminatedSpanError reports an opening delimiter with no matching
// closing delimiter before the end of the document.
type UnterminatedSpanError struct {
	Kind   token.Kind
	Offset int
	Line   int
}

func (e *UnterminatedSpanError) Error() string {
	return fmt.Sprintf("j2mask: unterminated %s span at offset %d (line %d)", e.Kind, e.Offset, e.Line)
}

// An InlineStatementError reports a statement delimiter sharing its line
// with other content while inline statements are disallowed.
type InlineStatementError struct {
	Line int
	Text string
}

func (e *InlineStatementError) Error() string {
	return fmt.Sprintf("j2mask: inline statement on line %d: %q", e.Line, e.Text)
}

type delimiter struct {
	open  string
	close string
	kind  token.Kind
}

// Priority order resolves the theoretical case of two openers at the same
// offset: Statement > Expression > Comment > Interpolation, with the
// double-quote candidate last.
var delimiters = []delimiter{
	{token.StatementOpen, token.StatementClose, token.Statement},
	{token.ExpressionOpen, token.ExpressionClose, token.Expression},
	{token.CommentOpen, token.CommentClose, token.Comment},
	{token.InterpolationOpen, token.InterpolationClose, token.Interpolation},
}

// Scanner walks a document from front to back, yielding spans and the
// plain-text gaps between them in document order. It holds no state across
// documents; create one per scan.
//
// Usage follows the bufio.Scanner loop:
//
//	sc := scanner.New(input, cfg)
//	for sc.Scan() {
//		sp := sc.Span()
//		...
//	}
//	if err := sc.Err(); err != nil {
//		...
//	}
type Scanner struct {
	input []byte
	cfg   Config

	pos        int
	insideRaw  bool
	span       token.Span
	pending    token.Span
	hasPending bool
	err        error

	// exemptQuote is the offset of the closing quote of an unprotected
	// string, which must not start a string scan of its own. -1 when unset.
	exemptQuote int
}

// New creates a Scanner over input.
func New(input []byte, cfg Config) *Scanner {
	return &Scanner{input: input, cfg: cfg, exemptQuote: -1}
}

// Scan advances to the next gap or span. It returns false at the end of the
// document or on error; Err tells which.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	if s.hasPending {
		s.hasPending = false
		s.emit(s.pending)
		return true
	}
	if s.pos >= len(s.input) {
		return false
	}
	sp, found, err := s.next()
	if err != nil {
		s.err = err
		return false
	}
	if !found {
		s.emit(token.Span{Start: s.pos, End: len(s.input)})
		return true
	}
	if sp.Start > s.pos {
		// Emit the gap first and hold the located span for the next call.
		s.pending = sp
		s.hasPending = true
		s.emit(token.Span{Start: s.pos, End: sp.Start})
		return true
	}
	s.emit(sp)
	return true
}

// Span returns the span located by the last successful call to Scan.
func (s *Scanner) Span() token.Span { return s.span }

// Err returns the first error encountered by Scan, if any.
func (s *Scanner) Err() error { return s.err }

func (s *Scanner) emit(sp token.Span) {
	s.span = sp
	s.pos = sp.End
	if sp.Kind == token.Statement {
		s.noteRawMarkers(sp)
	}
}

// noteRawMarkers toggles the raw-block flag when a statement's trimmed,
// lowercased content is a raw or endraw marker. Statements are recognized
// inside raw blocks precisely so the end marker can be found.
func (s *Scanner) noteRawMarkers(sp token.Span) {
	content := s.input[sp.Start+len(token.StatementOpen) : sp.End-len(token.StatementClose)]
	inner := strings.ToLower(string(bytes.TrimSpace(content)))
	if s.insideRaw {
		if strings.HasPrefix(inner, token.RawEnd) {
			s.insideRaw = false
		}
		return
	}
	if inner == token.RawBegin || strings.HasPrefix(inner, token.RawBegin+" ") {
		s.insideRaw = true
	}
}

// next locates the next span at or after the cursor. A double-quoted
// candidate without a backslash leaves both quotes as plain text, but its
// interior is rescanned so delimiters inside it are still recognized.
func (s *Scanner) next() (token.Span, bool, error) {
	search := s.pos
	for {
		start, d := s.nearestOpen(search)
		if start < 0 {
			return token.Span{}, false, nil
		}
		if d == nil {
			if start == s.exemptQuote {
				s.exemptQuote = -1
				search = start + 1
				continue
			}
			sp, protected, err := s.scanString(start)
			if err != nil {
				return token.Span{}, false, err
			}
			if !protected {
				s.exemptQuote = sp.End - 1
				search = start + 1
				continue
			}
			return sp, true, nil
		}
		sp, err := s.scanDelimited(start, *d)
		if err != nil {
			return token.Span{}, false, err
		}
		return sp, true, nil
	}
}

// nearestOpen finds the smallest offset >= from at which a recognized
// opener starts. A nil delimiter marks the double-quote candidate. Inside a
// raw block only statement openers are recognized.
func (s *Scanner) nearestOpen(from int) (int, *delimiter) {
	best := -1
	var bestDelim *delimiter
	for i := range delimiters {
		d := &delimiters[i]
		if s.insideRaw && d.kind != token.Statement {
			continue
		}
		if j := bytes.Index(s.input[from:], []byte(d.open)); j >= 0 && (best < 0 || from+j < best) {
			best, bestDelim = from+j, d
		}
	}
	if s.cfg.ProtectBackslash && !s.insideRaw {
		if j := bytes.IndexByte(s.input[from:], '"'); j >= 0 && (best < 0 || from+j < best) {
			best, bestDelim = from+j, nil
		}
	}
	return best, bestDelim
}

// scanDelimited extends a span from its opener to the first occurrence of
// the closing literal. The search is not nesting-aware on purpose.
func (s *Scanner) scanDelimited(start int, d delimiter) (token.Span, error) {
	bodyStart := start + len(d.open)
	j := bytes.Index(s.input[bodyStart:], []byte(d.close))
	if j < 0 {
		return token.Span{}, &UnterminatedSpanError{Kind: d.kind, Offset: start, Line: s.lineAt(start)}
	}
	sp := token.Span{Kind: d.kind, Start: start, End: bodyStart + j + len(d.close)}
	if d.kind == token.Statement && !s.cfg.AllowInlineStatements {
		if err := s.checkStatementLine(sp); err != nil {
			return token.Span{}, err
		}
	}
	return sp, nil
}

// scanString extends a span from an opening double quote to the next
// unescaped double quote. It reports whether the content holds at least one
// backslash; only such strings need protection.
func (s *Scanner) scanString(start int) (token.Span, bool, error) {
	hasBackslash := false
	i := start + 1
	for i < len(s.input) {
		switch s.input[i] {
		case '\\':
			hasBackslash = true
			i += 2 // the escaped byte cannot open or close anything
		case '"':
			return token.Span{Kind: token.BackslashString, Start: start, End: i + 1}, hasBackslash, nil
		default:
			i++
		}
	}
	return token.Span{}, false, &UnterminatedSpanError{Kind: token.BackslashString, Offset: start, Line: s.lineAt(start)}
}

func (s *Scanner) checkStatementLine(sp token.Span) error {
	lineStart := bytes.LastIndexByte(s.input[:sp.Start], '\n') + 1
	lineEnd := len(s.input)
	if j := bytes.IndexByte(s.input[sp.End:], '\n'); j >= 0 {
		lineEnd = sp.End + j
	}
	before := s.input[lineStart:sp.Start]
	after := s.input[sp.End:lineEnd]
	if len(bytes.TrimSpace(before)) > 0 || len(bytes.TrimSpace(after)) > 0 {
		return &InlineStatementError{Line: s.lineAt(sp.Start), Text: string(s.input[lineStart:lineEnd])}
	}
	return nil
}

func (s *Scanner) lineAt(off int) int {
	return bytes.Count(s.input[:off], []byte{'\n'}) + 1
}
