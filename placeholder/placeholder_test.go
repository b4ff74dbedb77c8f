package placeholder_test

import (
	"testing"

	"github.com/KimNorgaard/go-j2mask/placeholder"
	"github.com/KimNorgaard/go-j2mask/token"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name     string
		kind     token.Kind
		raw      string
		scheme   placeholder.Scheme
		expected string
	}{
		{
			name:     "hex expression",
			kind:     token.Expression,
			raw:      "{{ x }}",
			scheme:   placeholder.Hex,
			expected: "__J2OMIT_E_7_7b7b2078207d7d__",
		},
		{
			name:     "hex statement",
			kind:     token.Statement,
			raw:      "{% raw %}",
			scheme:   placeholder.Hex,
			expected: "__J2OMIT_S_9_7b252072617720257d__",
		},
		{
			name:     "hex comment multibyte",
			kind:     token.Comment,
			raw:      "{# æ #}",
			scheme:   placeholder.Hex,
			expected: "__J2OMIT_C_8_7b2320c3a620237d__",
		},
		{
			name:     "base26 expression",
			kind:     token.Expression,
			raw:      "{{ x }}",
			scheme:   placeholder.Base26,
			expected: "__J2E_B26:ETETBGEQBGEVEV__",
		},
		{
			name:     "base26 zero byte",
			kind:     token.BackslashString,
			raw:      "\x00",
			scheme:   placeholder.Base26,
			expected: "__J2B_B26:AA__",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, placeholder.Make(tt.kind, []byte(tt.raw), tt.scheme))
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	payloads := []string{
		"{{ brokers | join(\",\") }}",
		"{% if x %}",
		"{# note #}",
		"#{user.name}",
		`"\d+\s*X"`,
		"\x00\x01\xfe\xff",
		"snowman ☃",
	}
	kinds := []token.Kind{
		token.Expression, token.Statement, token.Comment,
		token.Interpolation, token.BackslashString,
	}

	for _, scheme := range []placeholder.Scheme{placeholder.Hex, placeholder.Base26} {
		for _, k := range kinds {
			for _, p := range payloads {
				tok := placeholder.Make(k, []byte(p), scheme)
				gotKind, raw, err := placeholder.Parse(tok)
				require.NoError(t, err, "scheme=%s kind=%c payload=%q", scheme, k, p)
				require.Equal(t, k, gotKind)
				require.Equal(t, []byte(p), raw)
			}
		}
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		tok  string
	}{
		{"unrecognized shape", "__J2NOPE__"},
		{"hex missing suffix", "__J2OMIT_E_2_7b7b"},
		{"hex unknown kind", "__J2OMIT_X_1_61__"},
		{"hex missing kind separator", "__J2OMIT_EX_1_61__"},
		{"hex missing length separator", "__J2OMIT_E_2__"},
		{"hex bad length", "__J2OMIT_E_zz_61__"},
		{"hex non-hex digits", "__J2OMIT_E_99_zz__"},
		{"hex odd digit count", "__J2OMIT_E_1_6__"},
		{"hex length mismatch", "__J2OMIT_E_3_6162__"},
		{"hex empty payload", "__J2OMIT_E_0___"},
		{"base26 unknown kind", "__J2X_B26:AA__"},
		{"base26 missing suffix", "__J2E_B26:AA"},
		{"base26 lowercase", "__J2E_B26:aa__"},
		{"base26 odd digit count", "__J2E_B26:AAA__"},
		{"base26 pair out of range", "__J2E_B26:ZZ__"},
		{"base26 empty payload", "__J2E_B26:__"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := placeholder.Parse(tt.tok)
			require.Error(t, err)

			var invalid *placeholder.InvalidTokenError
			require.ErrorAs(t, err, &invalid)
			require.Equal(t, tt.tok, invalid.Token)
		})
	}
}

func TestParseWrapsDecodeError(t *testing.T) {
	_, _, err := placeholder.Parse("__J2OMIT_E_3_6162__")
	var decodeErr *placeholder.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, placeholder.Hex, decodeErr.Scheme)

	_, _, err = placeholder.Parse("__J2E_B26:ZZ__")
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, placeholder.Base26, decodeErr.Scheme)
}

func TestBase26AllByteValues(t *testing.T) {
	// The fixed two-digit group width must round-trip every byte value,
	// leading zero bytes included.
	raw := make([]byte, 256)
	for i := range raw {
		raw[i] = byte(i)
	}

	tok := placeholder.Make(token.Expression, raw, placeholder.Base26)
	_, decoded, err := placeholder.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, raw, decoded)
}

func TestParseScheme(t *testing.T) {
	s, err := placeholder.ParseScheme("hex")
	require.NoError(t, err)
	require.Equal(t, placeholder.Hex, s)

	s, err = placeholder.ParseScheme("base26")
	require.NoError(t, err)
	require.Equal(t, placeholder.Base26, s)

	_, err = placeholder.ParseScheme("base64")
	require.Error(t, err)
}
