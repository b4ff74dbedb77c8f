package j2mask

import (
	"fmt"

	"github.com/KimNorgaard/go-j2mask/placeholder"
)

// options collects the behavioral switches for Mask and Unmask. Every
// switch is an explicit argument; there is no ambient configuration.
type options struct {
	scheme           placeholder.Scheme
	allowInline      bool
	protectBackslash bool
	strict           bool
}

// Option configures a Mask or Unmask call.
type Option func(*options) error

func applyOptions(opts []Option) (options, error) {
	o := options{
		scheme:           placeholder.Hex,
		allowInline:      true,
		protectBackslash: true,
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return options{}, err
		}
	}
	return o, nil
}

// WithScheme selects the placeholder encoding scheme used by Mask. Unmask
// auto-detects the scheme per token and is unaffected by this option.
func WithScheme(s placeholder.Scheme) Option {
	return func(o *options) error {
		if s != placeholder.Hex && s != placeholder.Base26 {
			return fmt.Errorf("j2mask: unknown encoding scheme %d", s)
		}
		o.scheme = s
		return nil
	}
}

// AllowInlineStatements controls whether statement delimiters may share a
// line with other content. Inline statements are allowed by default; when
// disallowed, Mask fails with a scanner.InlineStatementError.
func AllowInlineStatements(allow bool) Option {
	return func(o *options) error {
		o.allowInline = allow
		return nil
	}
}

// ProtectBackslash controls masking of double-quoted literals that contain
// at least one backslash. Protection is on by default.
func ProtectBackslash(protect bool) Option {
	return func(o *options) error {
		o.protectBackslash = protect
		return nil
	}
}

// Strict makes Unmask fail with an UnmaskError on the first malformed
// placeholder instead of leaving it verbatim and recording a Diagnostic.
func Strict(strict bool) Option {
	return func(o *options) error {
		o.strict = strict
		return nil
	}
}
