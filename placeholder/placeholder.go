// Package placeholder formats span bytes as self-describing, reversible
// placeholder tokens and parses them back. Two token shapes exist:
//
//	__J2OMIT_<KIND>_<DECLEN>_<HEXDATA>__   (hex scheme)
//	__J2<KIND>_B26:<B26DATA>__             (base26 scheme)
//
// Parse auto-detects the scheme from the prefix literal, so a document may
// freely mix tokens of both schemes.
package placeholder

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-j2mask/token"
)

// Scheme selects the reversible encoding used for placeholder bodies.
type Scheme int

const (
	// Hex encodes the span as a decimal byte length plus two lowercase hex
	// digits per byte. The length doubles as an integrity check on decode.
	Hex Scheme = iota
	// Base26 encodes the span with two base-26 digits (A-Z) per byte. The
	// fixed group width makes the byte length implicit.
	Base26
)

func (s Scheme) String() string {
	switch s {
	case Hex:
		return "hex"
	case Base26:
		return "base26"
	}
	return "invalid"
}

// ParseScheme converts a scheme name, as accepted on a command line, into a
// Scheme value.
func ParseScheme(name string) (Scheme, error) {
	switch name {
	case "hex":
		return Hex, nil
	case "base26":
		return Base26, nil
	}
	return 0, fmt.Errorf("j2mask: unknown encoding scheme %q", name)
}

// Literal pieces of the two token shapes. The unmasker searches for these
// literals; they must never change without versioning the token grammar.
const (
	HexPrefix    = "__J2OMIT_"
	Base26Prefix = "__J2"
	Base26Marker = "_B26:"
	Suffix       = "__"
)

// A DecodeError reports a placeholder body that is not well-formed for its
// encoding scheme.
type DecodeError struct {
	Scheme Scheme
	Reason string
}

func (e *DecodeError) Error() string {
	return "j2mask: invalid " + e.Scheme.String() + " body: " + e.Reason
}

// An InvalidTokenError reports a placeholder token that cannot be parsed
// back into a span. It wraps a DecodeError when the body was at fault.
type InvalidTokenError struct {
	Token  string
	Reason string
	Err    error
}

func (e *InvalidTokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("j2mask: invalid placeholder %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("j2mask: invalid placeholder %q: %s", e.Token, e.Reason)
}

func (e *InvalidTokenError) Unwrap() error { return e.Err }

// Make formats the raw bytes of a span as a placeholder token.
func Make(k token.Kind, raw []byte, s Scheme) string {
	if s == Base26 {
		return Base26Prefix + string(byte(k)) + Base26Marker + encodeBase26(raw) + Suffix
	}
	return fmt.Sprintf("%s%c_%d_%s%s", HexPrefix, k, len(raw), hex.EncodeToString(raw), Suffix)
}

// Parse decodes a placeholder token of either scheme back into its span
// kind and original bytes. The scheme is detected from the prefix literal.
// A placeholder always embeds at least one byte; a token with an empty
// payload is invalid so that plain text ending in a bare prefix cannot
// decode against a suffix it does not own.
func Parse(tok string) (token.Kind, []byte, error) {
	if strings.HasPrefix(tok, HexPrefix) {
		return parseHex(tok)
	}
	if strings.HasPrefix(tok, Base26Prefix) &&
		len(tok) > len(Base26Prefix)+1+len(Base26Marker) &&
		strings.HasPrefix(tok[len(Base26Prefix)+1:], Base26Marker) {
		return parseBase26(tok)
	}
	return 0, nil, &InvalidTokenError{Token: tok, Reason: "unrecognized placeholder shape"}
}

func parseHex(tok string) (token.Kind, []byte, error) {
	inner, ok := strings.CutSuffix(tok[len(HexPrefix):], Suffix)
	if !ok {
		return 0, nil, &InvalidTokenError{Token: tok, Reason: "missing closing " + Suffix}
	}
	if len(inner) < 2 || inner[1] != '_' {
		return 0, nil, &InvalidTokenError{Token: tok, Reason: "malformed kind field"}
	}
	k := token.Kind(inner[0])
	if !k.Valid() {
		return 0, nil, &InvalidTokenError{Token: tok, Reason: fmt.Sprintf("unknown span kind %q", inner[0])}
	}
	lenStr, hexStr, ok := strings.Cut(inner[2:], "_")
	if !ok {
		return 0, nil, &InvalidTokenError{Token: tok, Reason: "missing length separator"}
	}
	declared, err := strconv.Atoi(lenStr)
	if err != nil || declared < 0 {
		return 0, nil, &InvalidTokenError{Token: tok, Reason: fmt.Sprintf("bad declared length %q", lenStr)}
	}
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return 0, nil, &InvalidTokenError{Token: tok, Err: &DecodeError{Scheme: Hex, Reason: err.Error()}}
	}
	if len(raw) != declared {
		return 0, nil, &InvalidTokenError{Token: tok, Err: &DecodeError{
			Scheme: Hex,
			Reason: fmt.Sprintf("declared length %d does not match %d decoded bytes", declared, len(raw)),
		}}
	}
	if len(raw) == 0 {
		return 0, nil, &InvalidTokenError{Token: tok, Reason: "empty payload"}
	}
	return k, raw, nil
}

func parseBase26(tok string) (token.Kind, []byte, error) {
	inner, ok := strings.CutSuffix(tok[len(Base26Prefix):], Suffix)
	if !ok {
		return 0, nil, &InvalidTokenError{Token: tok, Reason: "missing closing " + Suffix}
	}
	k := token.Kind(inner[0])
	if !k.Valid() {
		return 0, nil, &InvalidTokenError{Token: tok, Reason: fmt.Sprintf("unknown span kind %q", inner[0])}
	}
	raw, err := decodeBase26(inner[1+len(Base26Marker):])
	if err != nil {
		return 0, nil, &InvalidTokenError{Token: tok, Err: err}
	}
	if len(raw) == 0 {
		return 0, nil, &InvalidTokenError{Token: tok, Reason: "empty payload"}
	}
	return k, raw, nil
}

// encodeBase26 writes two base-26 digits per byte. 26^2 = 676 covers every
// byte value, and the fixed group width lets decode recover the exact byte
// count, leading zero bytes included.
func encodeBase26(raw []byte) string {
	b := make([]byte, 0, len(raw)*2)
	for _, c := range raw {
		b = append(b, 'A'+c/26, 'A'+c%26)
	}
	return string(b)
}

func decodeBase26(body string) ([]byte, error) {
	if len(body)%2 != 0 {
		return nil, &DecodeError{
			Scheme: Base26,
			Reason: fmt.Sprintf("body length %d is not a whole number of digit pairs", len(body)),
		}
	}
	raw := make([]byte, 0, len(body)/2)
	for i := 0; i < len(body); i += 2 {
		hi, lo := body[i], body[i+1]
		if hi < 'A' || hi > 'Z' || lo < 'A' || lo > 'Z' {
			return nil, &DecodeError{Scheme: Base26, Reason: fmt.Sprintf("character outside A-Z at offset %d", i)}
		}
		v := int(hi-'A')*26 + int(lo-'A')
		if v > 255 {
			return nil, &DecodeError{Scheme: Base26, Reason: fmt.Sprintf("digit pair %q exceeds byte range", body[i:i+2])}
		}
		raw = append(raw, byte(v))
	}
	return raw, nil
}
