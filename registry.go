package opaquekeys

import (
	"fmt"
	"strings"

	gocache "github.com/patrickmn/go-cache"
)

// Format describes one registered key format: either a namespaced format,
// dispatched in O(1) on the token before the first ':', or a legacy format,
// recognized by structural sniffing of the whole input.
//
// Exactly one of Namespace and Sniff is set. A namespaced Parse receives the
// body after the namespace token; a legacy Parse receives the full input.
type Format struct {
	// Namespace is the case-sensitive token before the first ':', or ""
	// for a legacy format.
	Namespace string
	// Name labels the format in errors. Required for legacy formats,
	// which have no namespace to report.
	Name string
	// Sniff reports whether a legacy format claims the input. Sniffing
	// is cheap and structural; it never validates fields.
	Sniff func(text string) bool
	// Parse builds the key. A failure after the format has claimed the
	// input is final: no other format is tried.
	Parse func(text string) (Key, error)
}

// Registry maps kinds to their registered formats and dispatches Parse
// calls. It is not safe for concurrent registration; register everything up
// front, then share freely. Parsing itself is read-only and safe for
// concurrent use.
type Registry struct {
	// byNS indexes namespaced formats per kind for O(1) dispatch.
	byNS map[KeyKind]map[string]Format
	// legacy holds sniffed formats per kind, tried in registration order.
	legacy map[KeyKind][]Format
	cache  *gocache.Cache
}

// RegistryOption configures a Registry at construction time.
type RegistryOption func(*Registry)

// WithParseCache memoizes successful parses per (kind, exact input text).
// Keys are immutable values, so a hit returns the cached key directly.
// Entries never expire.
func WithParseCache() RegistryOption {
	return func(r *Registry) {
		r.cache = gocache.New(gocache.NoExpiration, 0)
	}
}

// NewRegistry builds an empty registry with no formats.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		byNS:   make(map[KeyKind]map[string]Format),
		legacy: make(map[KeyKind][]Format),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDefaultRegistry builds a registry preloaded with every built-in format.
func NewDefaultRegistry(opts ...RegistryOption) *Registry {
	r := NewRegistry(opts...)
	registerBuiltins(r)
	return r
}

// Register adds a format under the given kind. Namespaced formats must not
// collide with an already registered namespace of the same kind; legacy
// formats are appended and tried in registration order.
func (r *Registry) Register(kind KeyKind, f Format) error {
	if (f.Namespace == "") == (f.Sniff == nil) {
		return fmt.Errorf("format must set exactly one of Namespace and Sniff")
	}
	if f.Parse == nil {
		return fmt.Errorf("format must set Parse")
	}
	if f.Namespace != "" {
		ns := r.byNS[kind]
		if ns == nil {
			ns = make(map[string]Format)
			r.byNS[kind] = ns
		}
		if _, dup := ns[f.Namespace]; dup {
			return fmt.Errorf("namespace %q already registered for kind %q", f.Namespace, kind)
		}
		ns[f.Namespace] = f
		return nil
	}
	if f.Name == "" {
		return fmt.Errorf("legacy format must set Name")
	}
	r.legacy[kind] = append(r.legacy[kind], f)
	return nil
}

func (r *Registry) mustRegister(kind KeyKind, f Format) {
	if err := r.Register(kind, f); err != nil {
		panic(err)
	}
}

// Formats returns the formats registered under kind: namespaced formats
// first (in no particular order), then legacy formats in registration order.
func (r *Registry) Formats(kind KeyKind) []Format {
	var out []Format
	for _, f := range r.byNS[kind] {
		out = append(out, f)
	}
	return append(out, r.legacy[kind]...)
}

// Parse resolves text into a key of the given kind.
//
// Resolution is strict and three-way. If the token before the first ':'
// names a registered namespace, that format alone decides: its parse error
// becomes a MalformedKeyError and no legacy fallthrough happens. Otherwise
// legacy formats are sniffed in order; the first that claims the input
// decides the same way. If nothing claims the input the result is a
// NotRecognizedError.
func (r *Registry) Parse(text string, kind KeyKind) (Key, error) {
	cacheKey := string(kind) + "\x00" + text
	if r.cache != nil {
		if hit, found := r.cache.Get(cacheKey); found {
			return hit.(Key), nil
		}
	}
	k, err := r.parse(text, kind)
	if err != nil {
		return nil, err
	}
	if r.cache != nil {
		// Add, not Set: a concurrent insert of the same text produced
		// an equal key, so losing the race is harmless.
		_ = r.cache.Add(cacheKey, k, gocache.NoExpiration)
	}
	return k, nil
}

func (r *Registry) parse(text string, kind KeyKind) (Key, error) {
	if ns, body, found := strings.Cut(text, namespaceSeparator); found {
		if f, ok := r.byNS[kind][ns]; ok {
			k, err := f.Parse(body)
			if err != nil {
				return nil, &MalformedKeyError{Namespace: ns, Input: text, Err: err}
			}
			return k, nil
		}
	}
	for _, f := range r.legacy[kind] {
		if !f.Sniff(text) {
			continue
		}
		k, err := f.Parse(text)
		if err != nil {
			return nil, &MalformedKeyError{Namespace: f.Name, Input: text, Err: err}
		}
		return k, nil
	}
	return nil, &NotRecognizedError{Kind: kind, Input: text}
}

// registerBuiltins wires every built-in format into r. The aside formats
// close over r so the wrapped key parses against the same registry,
// including any formats registered later.
func registerBuiltins(r *Registry) {
	r.mustRegister(KindCourse, Format{Namespace: CourseNamespace, Parse: parseCourseBody})
	r.mustRegister(KindCourse, Format{Namespace: LibraryNamespace, Parse: parseLibraryBody})
	r.mustRegister(KindCourse, Format{Name: "legacy-course", Sniff: sniffLegacyCourse, Parse: parseLegacyCourse})

	r.mustRegister(KindUsage, Format{Namespace: UsageNamespace, Parse: parseUsageBody})
	r.mustRegister(KindUsage, Format{Namespace: LibraryUsageNamespace, Parse: parseLibraryUsageBody})
	r.mustRegister(KindUsage, Format{Namespace: AsideUsageNamespace, Parse: func(body string) (Key, error) {
		return parseAsideBody(r, body, KindUsage, func(inner Key, asideType string) (Key, error) {
			return NewAsideUsageKey(inner, asideType)
		})
	}})
	r.mustRegister(KindUsage, Format{Name: "legacy-usage", Sniff: sniffLegacyUsage, Parse: parseLegacyUsage})

	r.mustRegister(KindDefinition, Format{Namespace: DefinitionNamespace, Parse: parseDefinitionBody})
	r.mustRegister(KindDefinition, Format{Namespace: BundleNamespace, Parse: parseBundleBody})
	r.mustRegister(KindDefinition, Format{Namespace: AsideDefinitionNamespace, Parse: func(body string) (Key, error) {
		return parseAsideBody(r, body, KindDefinition, func(inner Key, asideType string) (Key, error) {
			return NewAsideDefinitionKey(inner, asideType)
		})
	}})

	r.mustRegister(KindAsset, Format{Namespace: AssetNamespace, Parse: parseAssetBody})
	r.mustRegister(KindAsset, Format{Name: "legacy-asset", Sniff: sniffLegacyAsset, Parse: parseLegacyAsset})

	r.mustRegister(KindBlockType, Format{Namespace: BlockTypeNamespace, Parse: parseBlockTypeBody})
	r.mustRegister(KindBlockType, Format{Name: "legacy-block-type", Sniff: sniffLegacyBlockType, Parse: parseLegacyBlockType})
}

var defaultRegistry = NewDefaultRegistry(WithParseCache())

// Default returns the shared registry holding the built-in formats.
func Default() *Registry { return defaultRegistry }

// Parse resolves text against the default registry.
func Parse(text string, kind KeyKind) (Key, error) {
	return defaultRegistry.Parse(text, kind)
}
