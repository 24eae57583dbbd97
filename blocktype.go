package opaquekeys

import (
	"fmt"
	"strings"
)

// Block families. The xmodule family is a historical alias of xblock and is
// folded into it on construction.
const (
	XBlockV1  = "xblock.v1"
	XModuleV1 = "xmodule.v1"
)

// BlockTypeKey names a block type together with the family it loads from.
//
// Canonical form: block-type-v1:family:type. The family may not contain
// ':', so the first ':' in the body always terminates it. Legacy form
// (parse-only): a bare type token with no ':', meaning family xblock.v1.
type BlockTypeKey struct {
	family    string
	blockType string
}

// NewBlockTypeKey builds a block-type key from explicit fields.
func NewBlockTypeKey(family, blockType string) (BlockTypeKey, error) {
	if family == "" || !matchesClass(family, func(r rune) bool { return isIDRune(r) && r != ':' }) {
		return BlockTypeKey{}, invalidField("block family", family, "must be non-empty and contain no ':'")
	}
	if family == XModuleV1 {
		family = XBlockV1
	}
	if err := checkID("block type", blockType); err != nil {
		return BlockTypeKey{}, err
	}
	return BlockTypeKey{family: family, blockType: blockType}, nil
}

func (k BlockTypeKey) Family() string    { return k.family }
func (k BlockTypeKey) BlockType() string { return k.blockType }

func (k BlockTypeKey) String() string {
	return BlockTypeNamespace + namespaceSeparator + k.family + ":" + k.blockType
}

func (k BlockTypeKey) Kind() KeyKind { return KindBlockType }
func (BlockTypeKey) isKey()          {}

func parseBlockTypeBody(body string) (Key, error) {
	family, blockType, found := strings.Cut(body, ":")
	if !found {
		return nil, fmt.Errorf("expected ':' between block family and block type")
	}
	return NewBlockTypeKey(family, blockType)
}

// sniffLegacyBlockType recognizes a bare block type with no family prefix.
func sniffLegacyBlockType(text string) bool {
	return !strings.Contains(text, ":")
}

func parseLegacyBlockType(text string) (Key, error) {
	return NewBlockTypeKey(XBlockV1, text)
}
