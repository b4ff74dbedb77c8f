package j2mask

import (
	"bytes"

	"github.com/KimNorgaard/go-j2mask/placeholder"
)

// Unmask restores the original bytes behind every placeholder token in doc.
// The encoding scheme is detected per token from its prefix literal, so a
// document may mix tokens produced with different schemes.
//
// By default malformed tokens are left verbatim in the output and reported
// as Diagnostics; with Strict(true) the first malformed token aborts the
// operation with an UnmaskError. A document containing no placeholder-shaped
// tokens is returned unchanged with no diagnostics.
func Unmask(doc []byte, opts ...Option) ([]byte, []Diagnostic, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, nil, err
	}

	var (
		buf   bytes.Buffer
		diags []Diagnostic
	)
	buf.Grow(len(doc))

	pos := 0
	for {
		j := bytes.Index(doc[pos:], []byte(placeholder.Base26Prefix))
		if j < 0 {
			buf.Write(doc[pos:])
			break
		}
		start := pos + j
		buf.Write(doc[pos:start])

		tok, ok := candidateAt(doc, start)
		if !ok {
			// A __J2 occurrence that never completes a token shape is
			// plain text.
			buf.Write(doc[start : start+len(placeholder.Base26Prefix)])
			pos = start + len(placeholder.Base26Prefix)
			continue
		}
		_, raw, err := placeholder.Parse(tok)
		if err != nil {
			if o.strict {
				return nil, nil, &UnmaskError{Token: tok, Offset: start, Err: err}
			}
			diags = append(diags, Diagnostic{Token: tok, Offset: start, Reason: err.Error()})
			// The failed candidate may have swallowed the opening __ of a
			// genuine token directly behind it, so surrender only the
			// prefix bytes and rescan from just past them.
			buf.Write(doc[start : start+len(placeholder.Base26Prefix)])
			pos = start + len(placeholder.Base26Prefix)
			continue
		}
		buf.Write(raw)
		pos = start + len(tok)
	}
	return buf.Bytes(), diags, nil
}

// candidateAt bounds a placeholder-shaped token starting at start, which
// must point at a __J2 occurrence. A candidate continues as one of the two
// scheme prefixes and runs through identifier characters to the first __
// occurrence. Anything less is not a candidate and stays plain text, which
// keeps Unmask idempotent on clean documents.
func candidateAt(doc []byte, start int) (string, bool) {
	rest := doc[start:]
	var bodyOff int
	switch {
	case bytes.HasPrefix(rest, []byte(placeholder.HexPrefix)):
		bodyOff = len(placeholder.HexPrefix)
	case len(rest) > len(placeholder.Base26Prefix)+1 &&
		bytes.HasPrefix(rest[len(placeholder.Base26Prefix)+1:], []byte(placeholder.Base26Marker)):
		bodyOff = len(placeholder.Base26Prefix) + 1 + len(placeholder.Base26Marker)
	default:
		return "", false
	}

	for i := start + bodyOff; i < len(doc); i++ {
		if doc[i] == '_' {
			if i+1 < len(doc) && doc[i+1] == '_' {
				return string(doc[start : i+2]), true
			}
			continue
		}
		if !isWordByte(doc[i]) {
			return "", false
		}
	}
	return "", false
}

func isWordByte(b byte) bool {
	return b == '_' || '0' <= b && b <= '9' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}
