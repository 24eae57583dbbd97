package opaquekeys

import (
	"strings"
)

// asideSeparator divides the wrapped key from the aside type inside an aside
// key body. Both halves are escaped so the separator never appears unescaped
// inside either.
const asideSeparator = "::"

// escapeEmbedded encodes a string for embedding inside an aside key body.
// '$' marks escapes, so it is doubled first; every literal "::" then becomes
// "$::". The encoding is injective with respect to the separator: in encoded
// text a "::" preceded by an even-length run of '$' is always a separator,
// and one preceded by an odd-length run is always literal.
func escapeEmbedded(s string) string {
	s = strings.ReplaceAll(s, "$", "$$")
	return strings.ReplaceAll(s, asideSeparator, "$::")
}

// unescapeEmbedded reverses escapeEmbedded. It fails closed: a '$' followed
// by neither '$' nor "::", or a raw unescaped "::", cannot be decoded
// unambiguously and yields an AmbiguousEncodingError.
func unescapeEmbedded(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		switch {
		case s[i] == '$':
			if i+1 < len(s) && s[i+1] == '$' {
				b.WriteByte('$')
				i += 2
				continue
			}
			if i+2 < len(s) && s[i+1] == ':' && s[i+2] == ':' {
				b.WriteString(asideSeparator)
				i += 3
				continue
			}
			return "", &AmbiguousEncodingError{Input: s, Offset: i}
		case s[i] == ':' && i+1 < len(s) && s[i+1] == ':':
			return "", &AmbiguousEncodingError{Input: s, Offset: i}
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String(), nil
}

// splitAsideBody splits an aside key body at its field separator: the first
// "::" that is not part of an escape sequence. The scan consumes "$$" and
// "$::" as whole tokens so an escaped separator can never shadow a real one.
// Returns ok=false when the body has no separator.
func splitAsideBody(s string) (wrapped, asideType string, ok bool) {
	for i := 0; i < len(s); {
		if s[i] == '$' {
			if i+1 < len(s) && s[i+1] == '$' {
				i += 2
				continue
			}
			if i+2 < len(s) && s[i+1] == ':' && s[i+2] == ':' {
				i += 3
				continue
			}
			// Dangling escape; step past it and let unescapeEmbedded
			// report the precise offset.
			i++
			continue
		}
		if s[i] == ':' && i+1 < len(s) && s[i+1] == ':' {
			return s[:i], s[i+2:], true
		}
		i++
	}
	return "", "", false
}
