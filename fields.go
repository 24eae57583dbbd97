package opaquekeys

import (
	"unicode"
	"unicode/utf8"
)

// ============================================================
// Field Character Classes
// ============================================================

// isIDRune reports whether r may appear in a standard identifier field
// (org, course, run, library, branch, block type, aside type).
func isIDRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		r == '_' || r == '-' || r == '~' || r == '.' || r == ':'
}

// isExtendedIDRune reports whether r may appear in a block id or asset path.
// Extends the standard class with '%', which historical block ids and asset
// filenames contain from URL-quoting.
func isExtendedIDRune(r rune) bool {
	return isIDRune(r) || r == '%'
}

// isLegacyFieldRune reports whether r may appear in an org, course, run, or
// type field of a legacy (slash, i4x, c4x) serialization. Strictly narrower
// than the standard class so every legacy-parseable key has a valid
// canonical form.
func isLegacyFieldRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		r == '_' || r == '-' || r == '.'
}

func matchesClass(s string, class func(rune) bool) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError {
			return false
		}
		if !class(r) {
			return false
		}
		i += size
	}
	return true
}

func isValidID(s string) bool         { return matchesClass(s, isIDRune) }
func isValidExtendedID(s string) bool { return matchesClass(s, isExtendedIDRune) }
func isValidLegacyField(s string) bool {
	return matchesClass(s, isLegacyFieldRune)
}

// isVersionGUID reports whether s is a well-formed version guid: exactly 24
// lowercase hex characters.
func isVersionGUID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// checkID validates a required standard-class field for explicit
// construction.
func checkID(field, value string) error {
	if value == "" {
		return invalidField(field, value, "must not be empty")
	}
	if !isValidID(value) {
		return invalidField(field, value, "contains characters outside the allowed class")
	}
	return nil
}

// checkOptionalID is checkID for fields that may be absent.
func checkOptionalID(field, value string) error {
	if value == "" {
		return nil
	}
	return checkID(field, value)
}

func checkExtendedID(field, value string) error {
	if value == "" {
		return invalidField(field, value, "must not be empty")
	}
	if !isValidExtendedID(value) {
		return invalidField(field, value, "contains characters outside the allowed class")
	}
	return nil
}

func checkVersionGUID(field, value string) error {
	if value == "" {
		return nil
	}
	if !isVersionGUID(value) {
		return invalidField(field, value, "must be 24 lowercase hex characters")
	}
	return nil
}
