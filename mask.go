package j2mask

import (
	"bytes"

	"github.com/KimNorgaard/go-j2mask/placeholder"
	"github.com/KimNorgaard/go-j2mask/scanner"
	"github.com/KimNorgaard/go-j2mask/token"
)

// Mask replaces every recognized template-syntax span in doc with a
// reversible placeholder token. Plain text between spans passes through
// untouched, so the output differs from the input only inside recognized
// spans. The result is a pure function of doc and the options.
//
// Mask fails with a scanner.UnterminatedSpanError when an opening delimiter
// has no closing delimiter, and with a scanner.InlineStatementError when
// inline statements are disallowed and one is found. A document that fails
// to scan is never partially masked.
func Mask(doc []byte, opts ...Option) ([]byte, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	sc := scanner.New(doc, scanner.Config{
		AllowInlineStatements: o.allowInline,
		ProtectBackslash:      o.protectBackslash,
	})

	var buf bytes.Buffer
	buf.Grow(len(doc))
	for sc.Scan() {
		sp := sc.Span()
		if sp.Kind == token.Text {
			buf.Write(doc[sp.Start:sp.End])
			continue
		}
		buf.WriteString(placeholder.Make(sp.Kind, doc[sp.Start:sp.End], o.scheme))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
