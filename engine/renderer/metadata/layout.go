package metadata

import "fmt"

// AttributeFormat describes the component type and arity of one vertex
// attribute.
type AttributeFormat uint8

const (
	AttributeFormatFloat32x2 AttributeFormat = iota
	AttributeFormatFloat32x3
	AttributeFormatFloat32x4
)

// Components returns the number of float32 components in the format.
func (f AttributeFormat) Components() uint32 {
	switch f {
	case AttributeFormatFloat32x2:
		return 2
	case AttributeFormatFloat32x3:
		return 3
	case AttributeFormatFloat32x4:
		return 4
	}
	return 0
}

// SizeBytes returns the byte size of one attribute of this format.
func (f AttributeFormat) SizeBytes() uint32 {
	return f.Components() * 4
}

func (f AttributeFormat) String() string {
	switch f {
	case AttributeFormatFloat32x2:
		return "float32x2"
	case AttributeFormatFloat32x3:
		return "float32x3"
	case AttributeFormatFloat32x4:
		return "float32x4"
	}
	return "unknown"
}

// VertexAttribute is one named entry of a vertex layout. Offset is in
// float32 elements from the start of the vertex.
type VertexAttribute struct {
	Name   string
	Format AttributeFormat
	Offset uint32
}

// VertexLayout is the ordered attribute description a pipeline and its vertex
// buffers must agree on. Stride is in float32 elements per vertex.
type VertexLayout struct {
	Attributes []VertexAttribute
	Stride     uint32
}

// NewVertexLayout validates and packs the given attributes in order, deriving
// offsets and stride. Duplicate names are a construction-time error.
func NewVertexLayout(attributes ...VertexAttribute) (*VertexLayout, error) {
	if len(attributes) == 0 {
		return nil, fmt.Errorf("vertex layout needs at least one attribute")
	}
	seen := make(map[string]bool, len(attributes))
	var stride uint32
	packed := make([]VertexAttribute, len(attributes))
	for i, attr := range attributes {
		if attr.Name == "" {
			return nil, fmt.Errorf("vertex attribute %d has no name", i)
		}
		if seen[attr.Name] {
			return nil, fmt.Errorf("duplicate vertex attribute %q", attr.Name)
		}
		if attr.Format.Components() == 0 {
			return nil, fmt.Errorf("vertex attribute %q has unsupported format", attr.Name)
		}
		seen[attr.Name] = true
		packed[i] = VertexAttribute{
			Name:   attr.Name,
			Format: attr.Format,
			Offset: stride,
		}
		stride += attr.Format.Components()
	}
	return &VertexLayout{Attributes: packed, Stride: stride}, nil
}

// Equal reports structural equality: same attributes (name, format, offset)
// in the same order and the same stride.
func (l *VertexLayout) Equal(other *VertexLayout) bool {
	if l == nil || other == nil {
		return l == other
	}
	if l.Stride != other.Stride || len(l.Attributes) != len(other.Attributes) {
		return false
	}
	for i := range l.Attributes {
		a, b := l.Attributes[i], other.Attributes[i]
		if a.Name != b.Name || a.Format != b.Format || a.Offset != b.Offset {
			return false
		}
	}
	return true
}

// Attribute returns the named attribute, if present.
func (l *VertexLayout) Attribute(name string) (VertexAttribute, bool) {
	for _, attr := range l.Attributes {
		if attr.Name == name {
			return attr, true
		}
	}
	return VertexAttribute{}, false
}

func (l *VertexLayout) String() string {
	s := ""
	for i, attr := range l.Attributes {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s:%s@%d", attr.Name, attr.Format, attr.Offset)
	}
	return fmt.Sprintf("{%s stride=%d}", s, l.Stride)
}
