package opaquekeys

import (
	"fmt"
	"strings"
)

// CourseKey identifies a course as a whole: an org and course code,
// optionally a run, and optionally a branch and/or version guid. A key may
// instead carry only a version guid (a course-agnostic reference to one
// specific version).
//
// Canonical form: course-v1:org+course+run[+branch@B][+version@V].
// Legacy form (parse-only): org/course/run.
type CourseKey struct {
	org     string
	course  string
	run     string
	branch  string
	version string
}

// NewCourseKey builds a course key from explicit fields. run may be empty.
func NewCourseKey(org, course, run string) (CourseKey, error) {
	if err := checkID("org", org); err != nil {
		return CourseKey{}, err
	}
	if err := checkID("course", course); err != nil {
		return CourseKey{}, err
	}
	if err := checkOptionalID("run", run); err != nil {
		return CourseKey{}, err
	}
	return CourseKey{org: org, course: course, run: run}, nil
}

// CourseKeyForVersion builds a course-agnostic key referencing one specific
// version guid.
func CourseKeyForVersion(version string) (CourseKey, error) {
	if !isVersionGUID(version) {
		return CourseKey{}, invalidField("version", version, "must be 24 lowercase hex characters")
	}
	return CourseKey{version: version}, nil
}

func (k CourseKey) Org() string     { return k.org }
func (k CourseKey) Course() string  { return k.course }
func (k CourseKey) Run() string     { return k.run }
func (k CourseKey) Branch() string  { return k.branch }
func (k CourseKey) Version() string { return k.version }

// ForBranch returns a copy of k on the named branch, version agnostic.
// An empty branch clears it.
func (k CourseKey) ForBranch(branch string) (CourseKey, error) {
	if err := checkOptionalID("branch", branch); err != nil {
		return CourseKey{}, err
	}
	if branch != "" && k.org == "" {
		return CourseKey{}, invalidField("branch", branch, "requires a full course id, not just a version")
	}
	k.branch = branch
	k.version = ""
	return k, nil
}

// ForVersion returns a copy of k pinned to the given version guid.
func (k CourseKey) ForVersion(version string) (CourseKey, error) {
	if err := checkVersionGUID("version", version); err != nil {
		return CourseKey{}, err
	}
	k.version = version
	return k, nil
}

// VersionAgnostic returns a copy of k without version info.
func (k CourseKey) VersionAgnostic() CourseKey {
	k.version = ""
	return k
}

// CourseAgnostic returns a copy of k identified only by its version guid.
func (k CourseKey) CourseAgnostic() (CourseKey, error) {
	if k.version == "" {
		return CourseKey{}, invalidField("version", "", "course-agnostic keys require a version guid")
	}
	return CourseKey{version: k.version}, nil
}

// UsageKey returns the key for a block placed in this course.
func (k CourseKey) UsageKey(blockType, blockID string) (UsageKey, error) {
	return NewUsageKey(k, blockType, blockID)
}

// AssetKey returns the key for an asset stored in this course.
func (k CourseKey) AssetKey(assetType, path string) (AssetKey, error) {
	return NewAssetKey(k, assetType, path)
}

// body returns the namespace-less serialization, shared with the usage and
// asset grammars that embed a course body.
func (k CourseKey) body() string {
	parts := make([]string, 0, 5)
	if k.org != "" {
		parts = append(parts, k.org, k.course)
		if k.run != "" {
			parts = append(parts, k.run)
		}
	}
	if k.branch != "" {
		parts = append(parts, branchPrefix+"@"+k.branch)
	}
	if k.version != "" {
		parts = append(parts, versionPrefix+"@"+k.version)
	}
	return strings.Join(parts, "+")
}

func (k CourseKey) String() string { return CourseNamespace + namespaceSeparator + k.body() }
func (k CourseKey) Kind() KeyKind  { return KindCourse }
func (CourseKey) isKey()           {}

func parseCourseBody(body string) (Key, error) {
	lb, err := parseLocatorBody(body, false, nil)
	if err != nil {
		return nil, err
	}
	if err := lb.checkContext(); err != nil {
		return nil, err
	}
	return CourseKey{
		org:     lb.org,
		course:  lb.course,
		run:     lb.run,
		branch:  lb.branch,
		version: lb.version,
	}, nil
}

// sniffLegacyCourse recognizes the frozen org/course/run form: exactly two
// slashes.
func sniffLegacyCourse(text string) bool {
	return strings.Count(text, "/") == 2
}

func parseLegacyCourse(text string) (Key, error) {
	parts := strings.Split(text, "/")
	if len(parts) != 3 {
		return nil, fmt.Errorf("expected org/course/run")
	}
	for i, field := range []string{"org", "course", "run"} {
		if !isValidLegacyField(parts[i]) {
			return nil, fmt.Errorf("%s %q contains characters outside the legacy class", field, parts[i])
		}
	}
	return CourseKey{org: parts[0], course: parts[1], run: parts[2]}, nil
}
