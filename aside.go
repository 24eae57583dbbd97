package opaquekeys

import (
	"fmt"
)

// AsideUsageKey identifies an annotation attached to one usage key, without
// modifying the key it decorates. The wrapped key's own serialization is
// embedded verbatim (escaped) inside the aside key's serialization.
//
// Canonical form: aside-usage-v1:<escaped usage key>::<escaped aside type>.
//
// Exactly one level of wrapping is permitted: an aside key never wraps
// another aside key.
type AsideUsageKey struct {
	usage     Key // UsageKey or LibraryUsageKey
	asideType string
}

// NewAsideUsageKey builds an aside key decorating the given usage key.
func NewAsideUsageKey(usage Key, asideType string) (AsideUsageKey, error) {
	switch usage.(type) {
	case UsageKey, LibraryUsageKey:
	default:
		return AsideUsageKey{}, invalidField("usage key", fmt.Sprint(usage), "asides wrap exactly one non-aside usage key")
	}
	if err := checkID("aside type", asideType); err != nil {
		return AsideUsageKey{}, err
	}
	return AsideUsageKey{usage: usage, asideType: asideType}, nil
}

// Usage returns the wrapped usage key.
func (k AsideUsageKey) Usage() Key        { return k.usage }
func (k AsideUsageKey) AsideType() string { return k.asideType }

// BlockType returns the block type of the wrapped usage.
func (k AsideUsageKey) BlockType() string {
	switch u := k.usage.(type) {
	case UsageKey:
		return u.BlockType()
	case LibraryUsageKey:
		return u.BlockType()
	}
	return ""
}

// BlockID returns the block id of the wrapped usage.
func (k AsideUsageKey) BlockID() string {
	switch u := k.usage.(type) {
	case UsageKey:
		return u.BlockID()
	case LibraryUsageKey:
		return u.BlockID()
	}
	return ""
}

func (k AsideUsageKey) String() string {
	return AsideUsageNamespace + namespaceSeparator +
		escapeEmbedded(k.usage.String()) + asideSeparator + escapeEmbedded(k.asideType)
}

func (k AsideUsageKey) Kind() KeyKind { return KindUsage }
func (AsideUsageKey) isKey()          {}

// AsideDefinitionKey identifies an annotation attached to one definition
// key. Same grammar and wrapping rules as AsideUsageKey.
//
// Canonical form: aside-def-v1:<escaped definition key>::<escaped aside type>.
type AsideDefinitionKey struct {
	definition Key // DefinitionKey or BundleDefinitionKey
	asideType  string
}

// NewAsideDefinitionKey builds an aside key decorating the given definition
// key.
func NewAsideDefinitionKey(definition Key, asideType string) (AsideDefinitionKey, error) {
	switch definition.(type) {
	case DefinitionKey, BundleDefinitionKey:
	default:
		return AsideDefinitionKey{}, invalidField("definition key", fmt.Sprint(definition), "asides wrap exactly one non-aside definition key")
	}
	if err := checkID("aside type", asideType); err != nil {
		return AsideDefinitionKey{}, err
	}
	return AsideDefinitionKey{definition: definition, asideType: asideType}, nil
}

// Definition returns the wrapped definition key.
func (k AsideDefinitionKey) Definition() Key   { return k.definition }
func (k AsideDefinitionKey) AsideType() string { return k.asideType }

// BlockType returns the block type of the wrapped definition.
func (k AsideDefinitionKey) BlockType() string {
	switch d := k.definition.(type) {
	case DefinitionKey:
		return d.BlockType()
	case BundleDefinitionKey:
		return d.BlockType()
	}
	return ""
}

func (k AsideDefinitionKey) String() string {
	return AsideDefinitionNamespace + namespaceSeparator +
		escapeEmbedded(k.definition.String()) + asideSeparator + escapeEmbedded(k.asideType)
}

func (k AsideDefinitionKey) Kind() KeyKind { return KindDefinition }
func (AsideDefinitionKey) isKey()          {}

// parseAsideBody splits and unescapes an aside body, parses the wrapped key
// against wrappedKind on r, and hands both halves to build.
func parseAsideBody(r *Registry, body string, wrappedKind KeyKind, build func(Key, string) (Key, error)) (Key, error) {
	wrappedEnc, typeEnc, ok := splitAsideBody(body)
	if !ok {
		return nil, fmt.Errorf("missing %q separator", asideSeparator)
	}
	wrapped, err := unescapeEmbedded(wrappedEnc)
	if err != nil {
		return nil, err
	}
	asideType, err := unescapeEmbedded(typeEnc)
	if err != nil {
		return nil, err
	}
	inner, err := r.Parse(wrapped, wrappedKind)
	if err != nil {
		return nil, fmt.Errorf("wrapped key: %w", err)
	}
	return build(inner, asideType)
}
