package opaquekeys

// KeyKind names a category of key that callers can request from Parse. The
// tokens double as registry lookup keys, so third-party formats register
// under the same values.
type KeyKind string

const (
	// KindCourse covers learning-context keys: courses and libraries.
	KindCourse KeyKind = "course_key"
	// KindUsage covers placements of content in a learning context,
	// including asides attached to them.
	KindUsage KeyKind = "usage_key"
	// KindDefinition covers context-independent content: definitions,
	// bundle definitions, and asides attached to definitions.
	KindDefinition KeyKind = "definition_key"
	// KindAsset covers file assets stored in a learning context.
	KindAsset KeyKind = "asset_key"
	// KindBlockType covers block-type tokens with their block family.
	KindBlockType KeyKind = "block_type"
)

// namespaceSeparator divides a canonical serialization into its namespace
// token and body.
const namespaceSeparator = ":"

// Canonical namespace tokens. All are case-sensitive fixed literals.
const (
	CourseNamespace          = "course-v1"
	LibraryNamespace         = "library-v1"
	UsageNamespace           = "block-v1"
	LibraryUsageNamespace    = "lib-block-v1"
	DefinitionNamespace      = "def-v1"
	AssetNamespace           = "asset-v1"
	AsideUsageNamespace      = "aside-usage-v1"
	AsideDefinitionNamespace = "aside-def-v1"
	BundleNamespace          = "bundle-olx"
	BlockTypeNamespace       = "block-type-v1"
)

// Key is a structured identifier with one canonical serialization.
//
// The set of implementations is closed: every Key is one of CourseKey,
// LibraryKey, UsageKey, LibraryUsageKey, DefinitionKey, BundleDefinitionKey,
// AssetKey, AsideUsageKey, AsideDefinitionKey, or BlockTypeKey. All of them
// are immutable comparable values; == is the equality contract and is
// consistent with String(): two keys are equal exactly when their canonical
// strings are equal.
type Key interface {
	// String returns the canonical serialization, always in the current
	// (non-legacy) form.
	String() string
	// Kind returns the registry kind this key parses under.
	Kind() KeyKind

	isKey()
}
