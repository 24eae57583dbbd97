package opaquekeys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// Usage Key Tests
// ============================================================

func TestUsageKey_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"plain", "block-v1:edX+DemoX+Demo_2024+type@problem+block@intro"},
		{"no run", "block-v1:edX+DemoX+type@problem+block@intro"},
		{"with branch", "block-v1:edX+DemoX+Demo_2024+branch@draft+type@problem+block@intro"},
		{"with version", "block-v1:edX+DemoX+Demo_2024+version@" + testGUID + "+type@problem+block@intro"},
		{"course agnostic", "block-v1:version@" + testGUID + "+type@problem+block@intro"},
		{"percent in block id", "block-v1:edX+DemoX+Demo_2024+type@html+block@a%20b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := Parse(tt.text, KindUsage)
			require.NoError(t, err)
			assert.Equal(t, tt.text, k.String())
			assert.Equal(t, KindUsage, k.Kind())

			again, err := Parse(k.String(), KindUsage)
			require.NoError(t, err)
			assert.Equal(t, k, again)
		})
	}
}

func TestUsageKey_Fields(t *testing.T) {
	k, err := Parse("block-v1:edX+DemoX+Demo_2024+type@problem+block@intro", KindUsage)
	require.NoError(t, err)
	usage, ok := k.(UsageKey)
	require.True(t, ok)

	assert.Equal(t, "problem", usage.BlockType())
	assert.Equal(t, "intro", usage.BlockID())
	assert.Equal(t, "edX", usage.Course().Org())
	assert.Equal(t, "course-v1:edX+DemoX+Demo_2024", usage.Course().String())
}

func TestUsageKey_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"missing block", "block-v1:edX+DemoX+Demo_2024+type@problem"},
		{"missing type", "block-v1:edX+DemoX+Demo_2024+block@intro"},
		{"type after block", "block-v1:edX+DemoX+Demo_2024+block@intro+type@problem"},
		{"repeated block", "block-v1:edX+DemoX+Demo_2024+type@problem+block@a+block@b"},
		{"trailing plus", "block-v1:edX+DemoX+Demo_2024+type@problem+block@intro+"},
		{"trailing newline", "block-v1:edX+DemoX+Demo_2024+type@problem+block@intro\n"},
		{"no context at all", "block-v1:type@problem+block@intro"},
		{"percent in block type", "block-v1:edX+DemoX+Demo_2024+type@pro%blem+block@intro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text, KindUsage)
			require.Error(t, err)
			var mk *MalformedKeyError
			assert.ErrorAs(t, err, &mk)
		})
	}
}

func TestLegacyUsage(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		canonical string
	}{
		{
			"no revision",
			"i4x://edX/DemoX/problem/intro",
			"block-v1:edX+DemoX+type@problem+block@intro",
		},
		{
			"with revision",
			"i4x://edX/DemoX/problem/intro@draft",
			"block-v1:edX+DemoX+branch@draft+type@problem+block@intro",
		},
		{
			"percent in name",
			"i4x://edX/DemoX/html/a%20b",
			"block-v1:edX+DemoX+type@html+block@a%20b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := Parse(tt.text, KindUsage)
			require.NoError(t, err)
			require.IsType(t, UsageKey{}, k)
			assert.Equal(t, tt.canonical, k.String())

			// The canonical form parses back to the same key.
			again, err := Parse(tt.canonical, KindUsage)
			require.NoError(t, err)
			assert.Equal(t, k, again)
		})
	}
}

func TestLegacyUsage_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"too few segments", "i4x://edX/DemoX/problem"},
		{"empty name", "i4x://edX/DemoX/problem/"},
		{"empty revision", "i4x://edX/DemoX/problem/intro@"},
		{"char outside legacy class in org", "i4x://ed~X/DemoX/problem/intro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text, KindUsage)
			require.Error(t, err)
			var mk *MalformedKeyError
			assert.ErrorAs(t, err, &mk, "i4x claimed the input, so a parse failure is final")
		})
	}
}

func TestUsageKey_Derivations(t *testing.T) {
	course, err := NewCourseKey("edX", "DemoX", "Demo_2024")
	require.NoError(t, err)
	usage, err := course.UsageKey("problem", "intro")
	require.NoError(t, err)

	other, err := NewCourseKey("MITx", "8.01", "2024")
	require.NoError(t, err)
	moved := usage.MapIntoCourse(other)
	assert.Equal(t, other, moved.Course())
	assert.Equal(t, "problem", moved.BlockType())
	assert.Equal(t, "intro", moved.BlockID())

	branched, err := usage.ForBranch("draft")
	require.NoError(t, err)
	assert.Equal(t, "draft", branched.Course().Branch())

	versioned, err := usage.ForVersion(testGUID)
	require.NoError(t, err)
	assert.Equal(t, usage, versioned.VersionAgnostic())

	agnostic, err := versioned.CourseAgnostic()
	require.NoError(t, err)
	assert.Equal(t, "block-v1:version@"+testGUID+"+type@problem+block@intro", agnostic.String())
}

// ============================================================
// Library Usage Key Tests
// ============================================================

func TestLibraryUsageKey_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"plain", "lib-block-v1:edX+phys-lib+type@problem+block@lever"},
		{"with version", "lib-block-v1:edX+phys-lib+version@" + testGUID + "+type@problem+block@lever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := Parse(tt.text, KindUsage)
			require.NoError(t, err)
			require.IsType(t, LibraryUsageKey{}, k)
			assert.Equal(t, tt.text, k.String())
		})
	}
}

func TestLibraryUsageKey_StrictBlockID(t *testing.T) {
	// Library block ids use the strict class: no '%'.
	_, err := Parse("lib-block-v1:edX+phys-lib+type@html+block@a%20b", KindUsage)
	require.Error(t, err)
	var mk *MalformedKeyError
	assert.ErrorAs(t, err, &mk)

	lib, err := NewLibraryKey("edX", "phys-lib")
	require.NoError(t, err)
	_, err = lib.UsageKey("html", "a%20b")
	assert.Error(t, err)
}
