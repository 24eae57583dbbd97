package opaquekeys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// Block Type Key Tests
// ============================================================

func TestBlockTypeKey_RoundTrip(t *testing.T) {
	k, err := Parse("block-type-v1:xblock.v1:problem", KindBlockType)
	require.NoError(t, err)
	bt, ok := k.(BlockTypeKey)
	require.True(t, ok)

	assert.Equal(t, "block-type-v1:xblock.v1:problem", bt.String())
	assert.Equal(t, XBlockV1, bt.Family())
	assert.Equal(t, "problem", bt.BlockType())
	assert.Equal(t, KindBlockType, bt.Kind())
}

func TestBlockTypeKey_XModuleAlias(t *testing.T) {
	k, err := Parse("block-type-v1:xmodule.v1:problem", KindBlockType)
	require.NoError(t, err)
	bt := k.(BlockTypeKey)

	assert.Equal(t, XBlockV1, bt.Family())
	assert.Equal(t, "block-type-v1:xblock.v1:problem", bt.String())

	direct, err := NewBlockTypeKey(XModuleV1, "problem")
	require.NoError(t, err)
	assert.Equal(t, bt, direct)
}

func TestBlockTypeKey_LegacyBareType(t *testing.T) {
	k, err := Parse("problem", KindBlockType)
	require.NoError(t, err)
	bt := k.(BlockTypeKey)

	assert.Equal(t, XBlockV1, bt.Family())
	assert.Equal(t, "problem", bt.BlockType())
	// Legacy input, modern output.
	assert.Equal(t, "block-type-v1:xblock.v1:problem", bt.String())
}

func TestBlockTypeKey_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"missing type", "block-type-v1:xblock.v1"},
		{"empty family", "block-type-v1::problem"},
		{"empty type", "block-type-v1:xblock.v1:"},
		{"bare type with bad char", "pro blem"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text, KindBlockType)
			require.Error(t, err)
			var mk *MalformedKeyError
			assert.ErrorAs(t, err, &mk)
		})
	}
}

func TestBlockTypeKey_FamilyMayNotContainColon(t *testing.T) {
	_, err := NewBlockTypeKey("xblock:v1", "problem")
	require.Error(t, err)
	var inv *InvalidFieldError
	assert.ErrorAs(t, err, &inv)
}
