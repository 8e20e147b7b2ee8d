package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVertexLayoutPacksOffsets(t *testing.T) {
	layout, err := NewVertexLayout(
		VertexAttribute{Name: "position", Format: AttributeFormatFloat32x2},
		VertexAttribute{Name: "color", Format: AttributeFormatFloat32x3},
		VertexAttribute{Name: "extra", Format: AttributeFormatFloat32x4},
	)
	require.NoError(t, err)

	assert.Equal(t, uint32(9), layout.Stride)
	assert.Equal(t, uint32(0), layout.Attributes[0].Offset)
	assert.Equal(t, uint32(2), layout.Attributes[1].Offset)
	assert.Equal(t, uint32(5), layout.Attributes[2].Offset)
}

func TestNewVertexLayoutRejectsBadInput(t *testing.T) {
	_, err := NewVertexLayout()
	assert.Error(t, err)

	_, err = NewVertexLayout(VertexAttribute{Format: AttributeFormatFloat32x2})
	assert.Error(t, err, "unnamed attribute")

	_, err = NewVertexLayout(
		VertexAttribute{Name: "position", Format: AttributeFormatFloat32x2},
		VertexAttribute{Name: "position", Format: AttributeFormatFloat32x3},
	)
	assert.Error(t, err, "duplicate name")

	_, err = NewVertexLayout(VertexAttribute{Name: "position", Format: AttributeFormat(42)})
	assert.Error(t, err, "unsupported format")
}

func TestVertexLayoutEqualIsStructural(t *testing.T) {
	a, err := NewVertexLayout(
		VertexAttribute{Name: "position", Format: AttributeFormatFloat32x2},
		VertexAttribute{Name: "color", Format: AttributeFormatFloat32x3},
	)
	require.NoError(t, err)
	b, err := NewVertexLayout(
		VertexAttribute{Name: "position", Format: AttributeFormatFloat32x2},
		VertexAttribute{Name: "color", Format: AttributeFormatFloat32x3},
	)
	require.NoError(t, err)

	assert.True(t, a.Equal(b), "independently built identical layouts")

	c, err := NewVertexLayout(
		VertexAttribute{Name: "position", Format: AttributeFormatFloat32x2},
	)
	require.NoError(t, err)
	assert.False(t, a.Equal(c))

	d, err := NewVertexLayout(
		VertexAttribute{Name: "color", Format: AttributeFormatFloat32x3},
		VertexAttribute{Name: "position", Format: AttributeFormatFloat32x2},
	)
	require.NoError(t, err)
	assert.False(t, a.Equal(d), "attribute order is part of identity")

	var nilLayout *VertexLayout
	assert.False(t, a.Equal(nilLayout))
	assert.True(t, nilLayout.Equal(nil))
}

func TestVertexLayoutAttributeLookup(t *testing.T) {
	layout, err := NewVertexLayout(
		VertexAttribute{Name: "position", Format: AttributeFormatFloat32x2},
		VertexAttribute{Name: "color", Format: AttributeFormatFloat32x3},
	)
	require.NoError(t, err)

	color, ok := layout.Attribute("color")
	require.True(t, ok)
	assert.Equal(t, uint32(2), color.Offset)

	_, ok = layout.Attribute("normal")
	assert.False(t, ok)
}
