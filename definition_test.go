package opaquekeys

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// Definition Key Tests
// ============================================================

func TestDefinitionKey_RoundTrip(t *testing.T) {
	text := "def-v1:" + testGUID + "+type@problem"
	k, err := Parse(text, KindDefinition)
	require.NoError(t, err)
	def, ok := k.(DefinitionKey)
	require.True(t, ok)

	assert.Equal(t, text, def.String())
	assert.Equal(t, testGUID, def.DefinitionID())
	assert.Equal(t, "problem", def.BlockType())
	assert.Equal(t, KindDefinition, def.Kind())
}

func TestDefinitionKey_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"missing type segment", "def-v1:" + testGUID},
		{"wrong tag", "def-v1:" + testGUID + "+block@problem"},
		{"short guid", "def-v1:abc123+type@problem"},
		{"uppercase guid", "def-v1:0123456789ABCDEF01234567+type@problem"},
		{"empty type", "def-v1:" + testGUID + "+type@"},
		{"trailing newline", "def-v1:" + testGUID + "+type@problem\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text, KindDefinition)
			require.Error(t, err)
			var mk *MalformedKeyError
			assert.ErrorAs(t, err, &mk)
		})
	}
}

func TestDefinitionKey_Constructor(t *testing.T) {
	def, err := NewDefinitionKey(testGUID, "problem")
	require.NoError(t, err)

	parsed, err := Parse(def.String(), KindDefinition)
	require.NoError(t, err)
	assert.Equal(t, Key(def), parsed)

	_, err = NewDefinitionKey("nope", "problem")
	assert.Error(t, err)
	_, err = NewDefinitionKey(testGUID, "")
	assert.Error(t, err)
}

// ============================================================
// Bundle Definition Key Tests
// ============================================================

const testBundleUUID = "4b33b7b1-47dd-4aa0-a7a8-b73b83b13c75"

func TestBundleDefinitionKey_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"numeric version", "bundle-olx:" + testBundleUUID + ":5:problem:intro/definition.xml"},
		{"named draft", "bundle-olx:" + testBundleUUID + ":studio_draft:problem:intro/definition.xml"},
		{"flat path", "bundle-olx:" + testBundleUUID + ":1:html:about.xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := Parse(tt.text, KindDefinition)
			require.NoError(t, err)
			require.IsType(t, BundleDefinitionKey{}, k)
			assert.Equal(t, tt.text, k.String())
			assert.Equal(t, KindDefinition, k.Kind())
		})
	}
}

func TestBundleDefinitionKey_VersionDraftSplit(t *testing.T) {
	k, err := Parse("bundle-olx:"+testBundleUUID+":5:problem:intro/definition.xml", KindDefinition)
	require.NoError(t, err)
	versioned := k.(BundleDefinitionKey)
	assert.Equal(t, 5, versioned.Version())
	assert.Empty(t, versioned.Draft())

	k, err = Parse("bundle-olx:"+testBundleUUID+":studio_draft:problem:intro/definition.xml", KindDefinition)
	require.NoError(t, err)
	draft := k.(BundleDefinitionKey)
	assert.Zero(t, draft.Version())
	assert.Equal(t, "studio_draft", draft.Draft())
}

func TestBundleDefinitionKey_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"too few slots", "bundle-olx:" + testBundleUUID + ":5:problem"},
		{"bad uuid", "bundle-olx:not-a-uuid:5:problem:intro/definition.xml"},
		{"uppercase uuid", "bundle-olx:4B33B7B1-47DD-4AA0-A7A8-B73B83B13C75:5:problem:intro/definition.xml"},
		{"unhyphenated uuid", "bundle-olx:4b33b7b147dd4aa0a7a8b73b83b13c75:5:problem:intro/definition.xml"},
		{"version zero", "bundle-olx:" + testBundleUUID + ":0:problem:intro/definition.xml"},
		{"leading zero version", "bundle-olx:" + testBundleUUID + ":05:problem:intro/definition.xml"},
		{"empty draft slot", "bundle-olx:" + testBundleUUID + "::problem:intro/definition.xml"},
		{"empty path", "bundle-olx:" + testBundleUUID + ":5:problem:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text, KindDefinition)
			require.Error(t, err)
			var mk *MalformedKeyError
			assert.ErrorAs(t, err, &mk)
		})
	}
}

func TestBundleDefinitionKey_Constructors(t *testing.T) {
	bundle := uuid.MustParse(testBundleUUID)

	versioned, err := NewBundleDefinitionKey(bundle, 5, "problem", "intro/definition.xml")
	require.NoError(t, err)
	parsed, err := Parse(versioned.String(), KindDefinition)
	require.NoError(t, err)
	assert.Equal(t, Key(versioned), parsed)

	draft, err := NewBundleDraftKey(bundle, "studio_draft", "problem", "intro/definition.xml")
	require.NoError(t, err)
	assert.NotEqual(t, versioned, draft)

	_, err = NewBundleDefinitionKey(bundle, 0, "problem", "intro/definition.xml")
	assert.Error(t, err)
	_, err = NewBundleDraftKey(bundle, "123", "problem", "intro/definition.xml")
	assert.Error(t, err, "a numeric draft would collide with versions")
	_, err = NewBundleDraftKey(uuid.Nil, "studio_draft", "problem", "intro/definition.xml")
	assert.Error(t, err)
}
