package opaquekeys

import (
	"fmt"
	"strings"
)

// LibraryKey identifies a content library. Libraries parse under the same
// kind as courses (both are learning contexts) but have no run and no legacy
// form.
//
// Canonical form: library-v1:org+library[+branch@B][+version@V].
type LibraryKey struct {
	org     string
	library string
	branch  string
	version string
}

// NewLibraryKey builds a library key from explicit fields.
func NewLibraryKey(org, library string) (LibraryKey, error) {
	if err := checkID("org", org); err != nil {
		return LibraryKey{}, err
	}
	if err := checkID("library", library); err != nil {
		return LibraryKey{}, err
	}
	return LibraryKey{org: org, library: library}, nil
}

func (k LibraryKey) Org() string     { return k.org }
func (k LibraryKey) Library() string { return k.library }
func (k LibraryKey) Branch() string  { return k.branch }
func (k LibraryKey) Version() string { return k.version }

// ForBranch returns a copy of k on the named branch, version agnostic.
func (k LibraryKey) ForBranch(branch string) (LibraryKey, error) {
	if err := checkOptionalID("branch", branch); err != nil {
		return LibraryKey{}, err
	}
	if branch != "" && k.org == "" {
		return LibraryKey{}, invalidField("branch", branch, "requires a full library id, not just a version")
	}
	k.branch = branch
	k.version = ""
	return k, nil
}

// ForVersion returns a copy of k pinned to the given version guid.
func (k LibraryKey) ForVersion(version string) (LibraryKey, error) {
	if err := checkVersionGUID("version", version); err != nil {
		return LibraryKey{}, err
	}
	k.version = version
	return k, nil
}

// VersionAgnostic returns a copy of k without version info.
func (k LibraryKey) VersionAgnostic() LibraryKey {
	k.version = ""
	return k
}

// UsageKey returns the key for a block stored in this library.
func (k LibraryKey) UsageKey(blockType, blockID string) (LibraryUsageKey, error) {
	return NewLibraryUsageKey(k, blockType, blockID)
}

func (k LibraryKey) body() string {
	parts := make([]string, 0, 4)
	if k.org != "" {
		parts = append(parts, k.org, k.library)
	}
	if k.branch != "" {
		parts = append(parts, branchPrefix+"@"+k.branch)
	}
	if k.version != "" {
		parts = append(parts, versionPrefix+"@"+k.version)
	}
	return strings.Join(parts, "+")
}

func (k LibraryKey) String() string { return LibraryNamespace + namespaceSeparator + k.body() }
func (k LibraryKey) Kind() KeyKind  { return KindCourse }
func (LibraryKey) isKey()           {}

func parseLibraryBody(body string) (Key, error) {
	lb, err := parseLocatorBody(body, false, nil)
	if err != nil {
		return nil, err
	}
	if lb.run != "" {
		return nil, fmt.Errorf("library keys have no run field")
	}
	if err := lb.checkContext(); err != nil {
		return nil, err
	}
	return LibraryKey{
		org:     lb.org,
		library: lb.course,
		branch:  lb.branch,
		version: lb.version,
	}, nil
}
