package opaquekeys

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// BundleDefinitionKey identifies block content inside a versioned content
// bundle, decoupled from any learning context. The reference pins either a
// numeric bundle version or a named draft, never both.
//
// Canonical form: bundle-olx:<uuid>:<version-or-draft>:<type>:<olx path>.
// The bundle id is a canonical hyphenated RFC-4122 UUID; a purely numeric
// second slot is a version, anything else a draft name. The OLX path is the
// final slot and its class excludes ':', so its start is unambiguous.
type BundleDefinitionKey struct {
	bundle    uuid.UUID
	version   int
	draft     string
	blockType string
	olxPath   string
}

// NewBundleDefinitionKey builds a key pinned to a numeric bundle version.
func NewBundleDefinitionKey(bundle uuid.UUID, version int, blockType, olxPath string) (BundleDefinitionKey, error) {
	if version < 1 {
		return BundleDefinitionKey{}, invalidField("version", strconv.Itoa(version), "must be at least 1")
	}
	return newBundleKey(bundle, version, "", blockType, olxPath)
}

// NewBundleDraftKey builds a key pinned to a named draft of a bundle.
func NewBundleDraftKey(bundle uuid.UUID, draft, blockType, olxPath string) (BundleDefinitionKey, error) {
	if draft == "" {
		return BundleDefinitionKey{}, invalidField("draft", draft, "must not be empty")
	}
	if !matchesClass(draft, isBundleSlotRune) {
		return BundleDefinitionKey{}, invalidField("draft", draft, "contains characters outside the allowed class")
	}
	if isAllDigits(draft) {
		return BundleDefinitionKey{}, invalidField("draft", draft, "must not be purely numeric")
	}
	return newBundleKey(bundle, 0, draft, blockType, olxPath)
}

func newBundleKey(bundle uuid.UUID, version int, draft, blockType, olxPath string) (BundleDefinitionKey, error) {
	if bundle == uuid.Nil {
		return BundleDefinitionKey{}, invalidField("bundle", bundle.String(), "must not be the nil UUID")
	}
	if blockType == "" || !matchesClass(blockType, isBundleSlotRune) {
		return BundleDefinitionKey{}, invalidField("block type", blockType, "contains characters outside the allowed class")
	}
	if olxPath == "" || !matchesClass(olxPath, isOLXPathRune) {
		return BundleDefinitionKey{}, invalidField("olx path", olxPath, "contains characters outside the allowed class")
	}
	return BundleDefinitionKey{
		bundle:    bundle,
		version:   version,
		draft:     draft,
		blockType: blockType,
		olxPath:   olxPath,
	}, nil
}

// isBundleSlotRune is the class for the draft and type slots of a bundle
// key. It excludes ':' because the grammar is colon separated.
func isBundleSlotRune(r rune) bool {
	return isIDRune(r) && r != ':'
}

func isOLXPathRune(r rune) bool {
	return isBundleSlotRune(r) || r == '/'
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (k BundleDefinitionKey) Bundle() uuid.UUID { return k.bundle }

// Version returns the pinned bundle version, or 0 when the key references a
// draft.
func (k BundleDefinitionKey) Version() int { return k.version }

// Draft returns the pinned draft name, or "" when the key references a
// numeric version.
func (k BundleDefinitionKey) Draft() string     { return k.draft }
func (k BundleDefinitionKey) BlockType() string { return k.blockType }
func (k BundleDefinitionKey) OLXPath() string   { return k.olxPath }

func (k BundleDefinitionKey) String() string {
	slot := k.draft
	if k.draft == "" {
		slot = strconv.Itoa(k.version)
	}
	return BundleNamespace + namespaceSeparator + strings.Join(
		[]string{k.bundle.String(), slot, k.blockType, k.olxPath}, ":")
}

func (k BundleDefinitionKey) Kind() KeyKind { return KindDefinition }
func (BundleDefinitionKey) isKey()          {}

func parseBundleBody(body string) (Key, error) {
	parts := strings.SplitN(body, ":", 4)
	if len(parts) != 4 {
		return nil, fmt.Errorf("expected <uuid>:<version-or-draft>:<type>:<olx path>")
	}
	bundle, err := uuid.Parse(parts[0])
	if err != nil {
		return nil, fmt.Errorf("bundle id: %w", err)
	}
	// uuid.Parse admits several textual forms; only the canonical
	// hyphenated lowercase one round-trips.
	if bundle.String() != parts[0] {
		return nil, fmt.Errorf("bundle id %q is not in canonical hyphenated form", parts[0])
	}
	if isAllDigits(parts[1]) {
		if parts[1] != "0" && parts[1][0] == '0' {
			return nil, fmt.Errorf("version %q has a leading zero", parts[1])
		}
		version, err := strconv.Atoi(parts[1])
		if err != nil || version < 1 {
			return nil, fmt.Errorf("version %q must be a positive integer", parts[1])
		}
		return NewBundleDefinitionKey(bundle, version, parts[2], parts[3])
	}
	return NewBundleDraftKey(bundle, parts[1], parts[2], parts[3])
}
