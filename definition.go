package opaquekeys

import (
	"fmt"
	"strings"
)

// DefinitionKey identifies de-duplicated block content independent of any
// learning context: a definition guid plus the block type.
//
// Canonical form: def-v1:<guid>+type@T.
type DefinitionKey struct {
	definitionID string
	blockType    string
}

// NewDefinitionKey builds a definition key from explicit fields. The
// definition id has the same shape as a version guid: 24 lowercase hex
// characters.
func NewDefinitionKey(definitionID, blockType string) (DefinitionKey, error) {
	if !isVersionGUID(definitionID) {
		return DefinitionKey{}, invalidField("definition id", definitionID, "must be 24 lowercase hex characters")
	}
	if err := checkID("block type", blockType); err != nil {
		return DefinitionKey{}, err
	}
	return DefinitionKey{definitionID: definitionID, blockType: blockType}, nil
}

func (k DefinitionKey) DefinitionID() string { return k.definitionID }
func (k DefinitionKey) BlockType() string    { return k.blockType }

func (k DefinitionKey) String() string {
	return DefinitionNamespace + namespaceSeparator + k.definitionID +
		"+" + blockTypePrefix + "@" + k.blockType
}

func (k DefinitionKey) Kind() KeyKind { return KindDefinition }
func (DefinitionKey) isKey()          {}

func parseDefinitionBody(body string) (Key, error) {
	guid, rest, found := strings.Cut(body, "+")
	if !found {
		return nil, fmt.Errorf("expected <guid>+type@<block type>")
	}
	if !isVersionGUID(guid) {
		return nil, fmt.Errorf("definition id %q is not 24 lowercase hex characters", guid)
	}
	blockType, ok := strings.CutPrefix(rest, blockTypePrefix+"@")
	if !ok {
		return nil, fmt.Errorf("expected type@ segment after the definition id")
	}
	if !isValidID(blockType) {
		return nil, fmt.Errorf("block type %q contains characters outside the allowed class", blockType)
	}
	return DefinitionKey{definitionID: guid, blockType: blockType}, nil
}
