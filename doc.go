/*
Package j2mask replaces Jinja-style template syntax in a text document with
self-describing, reversible placeholder tokens, and restores the original
document byte for byte. Tools unaware of the template syntax (formatters,
linters, static analyzers) can then process the masked document safely.

Five span kinds are recognized: expressions ({{ ... }}), statements
({% ... %}), comments ({# ... #}), interpolations (#{ ... }), and
double-quoted literals containing at least one backslash. Delimiters are
found by literal substring search and a span ends at the first occurrence of
its closing literal; {% raw %} ... {% endraw %} blocks suppress recognition
of everything but statements. Template semantics are never parsed or
validated.

Masking a document:

	masked, err := j2mask.Mask(doc)
	if err != nil {
		// handle error
	}

Every span becomes a token whose alphabet is restricted to identifier
characters. Two encodings exist, selected per Mask call:

	{{ name }}  =>  __J2OMIT_E_10_7b7b206e616d65207d7d__     (hex, default)
	{{ name }}  =>  __J2E_B26:ETETBGEGDTEFDXBGEVEV__         (base26)

The hex body carries the decimal byte length of the original span, checked
against the decoded bytes on restore. The base26 body uses two A-Z digits
per byte, so its length is implicit.

Restoring detects each token's scheme from its prefix:

	restored, diags, err := j2mask.Unmask(masked)

Malformed tokens are left verbatim and reported through the returned
Diagnostics; with j2mask.Strict(true) the first malformed token fails the
whole operation instead. For any document d that Mask accepts,
Unmask(Mask(d)) returns d exactly.

Both operations are pure functions of their input and options, safe for
concurrent use across documents.
*/
package j2mask
