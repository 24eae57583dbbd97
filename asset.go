package opaquekeys

import (
	"fmt"
	"strings"
)

// AssetKey identifies a file asset stored in a course: the course key, an
// asset type (category), and a path. The path uses the extended identifier
// class and is terminated by the first character outside that class, never
// by counting delimiters — so a path that is a prefix of another valid path
// always serializes and parses as itself.
//
// Canonical form: asset-v1:<course body>+type@T+block@PATH.
// Legacy form (parse-only): /c4x/org/course/type/name[@revision].
type AssetKey struct {
	course    CourseKey
	assetType string
	path      string
}

// NewAssetKey builds an asset key for a file in the given course.
func NewAssetKey(course CourseKey, assetType, path string) (AssetKey, error) {
	if course == (CourseKey{}) {
		return AssetKey{}, invalidField("course", "", "must be a constructed course key")
	}
	if err := checkID("asset type", assetType); err != nil {
		return AssetKey{}, err
	}
	if err := checkExtendedID("path", path); err != nil {
		return AssetKey{}, err
	}
	return AssetKey{course: course, assetType: assetType, path: path}, nil
}

func (k AssetKey) Course() CourseKey { return k.course }
func (k AssetKey) AssetType() string { return k.assetType }
func (k AssetKey) Path() string      { return k.path }

// MapIntoCourse returns the same asset in another course.
func (k AssetKey) MapIntoCourse(course CourseKey) AssetKey {
	if course == k.course {
		return k
	}
	k.course = course
	return k
}

func (k AssetKey) String() string {
	return AssetNamespace + namespaceSeparator + k.course.body() +
		"+" + blockTypePrefix + "@" + k.assetType +
		"+" + blockPrefix + "@" + k.path
}

func (k AssetKey) Kind() KeyKind { return KindAsset }
func (AssetKey) isKey()          {}

func parseAssetBody(body string) (Key, error) {
	lb, err := parseLocatorBody(body, true, isExtendedIDRune)
	if err != nil {
		return nil, err
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
	return AssetKey{
		course: CourseKey{
			org:     lb.org,
			course:  lb.course,
			run:     lb.run,
			branch:  lb.branch,
			version: lb.version,
		},
		assetType: lb.blockType,
		path:      lb.blockID,
	}, nil
}

const legacyAssetTag = "/c4x/"

func sniffLegacyAsset(text string) bool {
	return strings.HasPrefix(text, legacyAssetTag)
}

// parseLegacyAsset parses the frozen /c4x/ form. Like i4x, the legacy
// grammar has no run.
func parseLegacyAsset(text string) (Key, error) {
	parts := strings.SplitN(strings.TrimPrefix(text, legacyAssetTag), "/", 4)
	if len(parts) != 4 {
		return nil, fmt.Errorf("expected /c4x/org/course/type/name")
	}
	name, revision, hasRevision := strings.Cut(parts[3], "@")
	for _, f := range []struct{ field, value string }{
		{"org", parts[0]}, {"course", parts[1]}, {"type", parts[2]},
	} {
		if !isValidLegacyField(f.value) {
			return nil, fmt.Errorf("%s %q contains characters outside the legacy class", f.field, f.value)
		}
	}
	if !isValidExtendedID(name) {
		return nil, fmt.Errorf("name %q contains characters outside the legacy class", name)
	}
	if hasRevision && !isValidLegacyField(revision) {
		return nil, fmt.Errorf("revision %q contains characters outside the legacy class", revision)
	}
	return AssetKey{
		course:    CourseKey{org: parts[0], course: parts[1], branch: revision},
		assetType: parts[2],
		path:      name,
	}, nil
}
