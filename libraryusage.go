package opaquekeys

import (
	"fmt"
)

// LibraryUsageKey identifies one placement of a block in a content library.
// Unlike course usage keys there is no legacy form, and the block id uses
// the strict identifier class.
//
// Canonical form: lib-block-v1:<library body>+type@T+block@ID.
type LibraryUsageKey struct {
	library   LibraryKey
	blockType string
	blockID   string
}

// NewLibraryUsageKey builds a usage key for a block in the given library.
func NewLibraryUsageKey(library LibraryKey, blockType, blockID string) (LibraryUsageKey, error) {
	if library == (LibraryKey{}) {
		return LibraryUsageKey{}, invalidField("library", "", "must be a constructed library key")
	}
	if err := checkID("block type", blockType); err != nil {
		return LibraryUsageKey{}, err
	}
	if err := checkID("block id", blockID); err != nil {
		return LibraryUsageKey{}, err
	}
	return LibraryUsageKey{library: library, blockType: blockType, blockID: blockID}, nil
}

func (k LibraryUsageKey) Library() LibraryKey { return k.library }
func (k LibraryUsageKey) BlockType() string   { return k.blockType }
func (k LibraryUsageKey) BlockID() string     { return k.blockID }

// ForBranch returns a copy of k on the named branch of its library.
func (k LibraryUsageKey) ForBranch(branch string) (LibraryUsageKey, error) {
	library, err := k.library.ForBranch(branch)
	if err != nil {
		return LibraryUsageKey{}, err
	}
	k.library = library
	return k, nil
}

// ForVersion returns a copy of k pinned to the given library version.
func (k LibraryUsageKey) ForVersion(version string) (LibraryUsageKey, error) {
	library, err := k.library.ForVersion(version)
	if err != nil {
		return LibraryUsageKey{}, err
	}
	k.library = library
	return k, nil
}

// VersionAgnostic returns a copy of k without library version info.
func (k LibraryUsageKey) VersionAgnostic() LibraryUsageKey {
	k.library = k.library.VersionAgnostic()
	return k
}

func (k LibraryUsageKey) String() string {
	return LibraryUsageNamespace + namespaceSeparator + k.library.body() +
		"+" + blockTypePrefix + "@" + k.blockType +
		"+" + blockPrefix + "@" + k.blockID
}

func (k LibraryUsageKey) Kind() KeyKind { return KindUsage }
func (LibraryUsageKey) isKey()          {}

func parseLibraryUsageBody(body string) (Key, error) {
	lb, err := parseLocatorBody(body, true, isIDRune)
	if err != nil {
		return nil, err
	}
	if lb.run != "" {
		return nil, fmt.Errorf("library keys have no run field")
	}
	if lb.blockType == "" {
		return nil, fmt.Errorf("missing type@ segment")
	}
	if lb.blockID == "" {
		return nil, fmt.Errorf("missing block@ segment")
	}
	if err := lb.checkContext(); err != nil {
		return nil, err
	}
	return LibraryUsageKey{
		library: LibraryKey{
			org:     lb.org,
			library: lb.course,
			branch:  lb.branch,
			version: lb.version,
		},
		blockType: lb.blockType,
		blockID:   lb.blockID,
	}, nil
}
