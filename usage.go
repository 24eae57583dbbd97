package opaquekeys

import (
	"fmt"
	"strings"
)

// UsageKey identifies one placement of a block in a course: the course key,
// a block type, and a block id. A branch or version in the course part is
// the usage's own override.
//
// Canonical form: block-v1:<course body>+type@T+block@ID.
// Legacy form (parse-only): i4x://org/course/type/name[@revision].
type UsageKey struct {
	course    CourseKey
	blockType string
	blockID   string
}

// NewUsageKey builds a usage key for a block in the given course.
func NewUsageKey(course CourseKey, blockType, blockID string) (UsageKey, error) {
	if course == (CourseKey{}) {
		return UsageKey{}, invalidField("course", "", "must be a constructed course key")
	}
	if err := checkID("block type", blockType); err != nil {
		return UsageKey{}, err
	}
	if err := checkExtendedID("block id", blockID); err != nil {
		return UsageKey{}, err
	}
	return UsageKey{course: course, blockType: blockType, blockID: blockID}, nil
}

func (k UsageKey) Course() CourseKey { return k.course }
func (k UsageKey) BlockType() string { return k.blockType }
func (k UsageKey) BlockID() string   { return k.blockID }

// MapIntoCourse returns the same block placement in another course.
func (k UsageKey) MapIntoCourse(course CourseKey) UsageKey {
	if course == k.course {
		return k
	}
	k.course = course
	return k
}

// ForBranch returns a copy of k on the named branch of its course.
func (k UsageKey) ForBranch(branch string) (UsageKey, error) {
	course, err := k.course.ForBranch(branch)
	if err != nil {
		return UsageKey{}, err
	}
	k.course = course
	return k, nil
}

// ForVersion returns a copy of k pinned to the given course version.
func (k UsageKey) ForVersion(version string) (UsageKey, error) {
	course, err := k.course.ForVersion(version)
	if err != nil {
		return UsageKey{}, err
	}
	k.course = course
	return k, nil
}

// VersionAgnostic returns a copy of k without course version info.
func (k UsageKey) VersionAgnostic() UsageKey {
	k.course = k.course.VersionAgnostic()
	return k
}

// CourseAgnostic returns a copy of k whose course part carries only a
// version guid.
func (k UsageKey) CourseAgnostic() (UsageKey, error) {
	course, err := k.course.CourseAgnostic()
	if err != nil {
		return UsageKey{}, err
	}
	k.course = course
	return k, nil
}

func (k UsageKey) String() string {
	return UsageNamespace + namespaceSeparator + k.course.body() +
		"+" + blockTypePrefix + "@" + k.blockType +
		"+" + blockPrefix + "@" + k.blockID
}

func (k UsageKey) Kind() KeyKind { return KindUsage }
func (UsageKey) isKey()          {}

func parseUsageBody(body string) (Key, error) {
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
	return UsageKey{
		course: CourseKey{
			org:     lb.org,
			course:  lb.course,
			run:     lb.run,
			branch:  lb.branch,
			version: lb.version,
		},
		blockType: lb.blockType,
		blockID:   lb.blockID,
	}, nil
}

const legacyUsageTag = "i4x://"

func sniffLegacyUsage(text string) bool {
	return strings.HasPrefix(text, legacyUsageTag)
}

// parseLegacyUsage parses the frozen i4x form. The legacy grammar has no
// run; the resulting key's course part carries org and course only, and its
// revision (if any) becomes the branch.
func parseLegacyUsage(text string) (Key, error) {
	parts := strings.SplitN(strings.TrimPrefix(text, legacyUsageTag), "/", 4)
	if len(parts) != 4 {
		return nil, fmt.Errorf("expected i4x://org/course/type/name")
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
	return UsageKey{
		course:    CourseKey{org: parts[0], course: parts[1], branch: revision},
		blockType: parts[2],
		blockID:   name,
	}, nil
}
