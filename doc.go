// Package opaquekeys implements structured identifiers for content-management
// entities: courses, libraries, content blocks, assets, block types, bundle
// content, and asides (annotations attached to blocks).
//
// Consumers work with structured key values; every textual encoding lives
// behind the Parse / String boundary. Each key kind has one canonical grammar
// plus zero or more frozen legacy grammars kept parseable for historical
// data. Serialization always produces the canonical form, regardless of which
// grammar a key was parsed from.
//
// # Canonical forms
//
//	course-v1:org+course+run[+branch@B][+version@V]
//	library-v1:org+library[+branch@B][+version@V]
//	block-v1:org+course+run[+branch@B][+version@V]+type@T+block@ID
//	lib-block-v1:org+library+type@T+block@ID
//	def-v1:519665f6223ebd6980884f2b+type@T
//	asset-v1:org+course+run+type@asset+block@logo.png
//	aside-usage-v1:<escaped usage key>::<escaped aside type>
//	aside-def-v1:<escaped definition key>::<escaped aside type>
//	bundle-olx:<uuid>:<version-or-draft>:<type>:<olx path>
//	block-type-v1:xblock.v1:problem
//
// # Legacy forms (parse-only)
//
//	org/course/run
//	i4x://org/course/type/name[@revision]
//	/c4x/org/course/type/name[@revision]
//	problem                                (bare block type)
//
// # Contracts
//
// Keys are immutable comparable values: two keys are equal under == exactly
// when all structural fields are equal, and a key's canonical string is equal
// to another's exactly when the keys are equal. Parsing is strict: trailing
// newlines, trailing delimiters, wrong case on fixed tokens, and malformed
// escape sequences fail rather than parsing approximately.
//
// Parsing dispatches through a Registry of formats. The package registers the
// built-in formats once at init; callers needing additional formats build
// their own Registry before first use.
package opaquekeys
