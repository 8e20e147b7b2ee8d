package soft

import (
	"fmt"
	"image"
	"image/color"

	"github.com/prismgfx/prism/engine/math"
	"github.com/prismgfx/prism/engine/renderer/metadata"
)

type screenVertex struct {
	x, y    float32
	r, g, b float32
}

// rasterizeSlice draws the slice as a triangle list. Positions are clip-space
// [-1,1] with y up; the viewport transform flips y so +1 maps to the top row.
func rasterizeSlice(dst *image.RGBA, sp *softPipeline, slice *metadata.Slice) error {
	if slice.Count%3 != 0 {
		return fmt.Errorf("draw count %d is not a triangle list", slice.Count)
	}
	if err := checkSliceRange(slice); err != nil {
		return err
	}

	fetch := func(element uint32) screenVertex {
		base := element * slice.VertexBuffer.Layout.Stride
		data := slice.VertexBuffer.VertexData

		v := screenVertex{r: 1, g: 1, b: 1}
		px := data[base+sp.position.Offset]
		py := data[base+sp.position.Offset+1]
		w := float32(dst.Rect.Dx())
		h := float32(dst.Rect.Dy())
		v.x = (px + 1) * 0.5 * w
		v.y = (1 - py) * 0.5 * h

		if sp.color != nil {
			v.r = data[base+sp.color.Offset]
			v.g = data[base+sp.color.Offset+1]
			if sp.color.Format.Components() >= 3 {
				v.b = data[base+sp.color.Offset+2]
			}
		}
		return v
	}

	element := func(i uint32) uint32 {
		if slice.IndexBuffer != nil {
			return slice.IndexBuffer.IndexData[slice.First+i]
		}
		return slice.First + i
	}

	for i := uint32(0); i < slice.Count; i += 3 {
		a := fetch(element(i))
		b := fetch(element(i + 1))
		c := fetch(element(i + 2))
		rasterizeTriangle(dst, a, b, c)
	}
	return nil
}

// checkSliceRange re-validates the slice against its buffers. Submit is a
// public surface, so sequences that skipped the encoder must still fail
// cleanly instead of reading out of bounds. Phrased to avoid uint32
// wraparound in First+Count.
func checkSliceRange(slice *metadata.Slice) error {
	vcount := slice.VertexBuffer.ElementCount
	if slice.IndexBuffer == nil {
		if slice.First > vcount || slice.Count > vcount-slice.First {
			return fmt.Errorf("slice first=%d count=%d exceeds vertex count %d",
				slice.First, slice.Count, vcount)
		}
		return nil
	}
	indices := slice.IndexBuffer.IndexData
	icount := uint32(len(indices))
	if slice.First > icount || slice.Count > icount-slice.First {
		return fmt.Errorf("slice first=%d count=%d exceeds index count %d",
			slice.First, slice.Count, icount)
	}
	for _, idx := range indices[slice.First : slice.First+slice.Count] {
		if idx >= vcount {
			return fmt.Errorf("index %d out of range for %d vertices", idx, vcount)
		}
	}
	return nil
}

func rasterizeTriangle(dst *image.RGBA, a, b, c screenVertex) {
	area := math.EdgeFunction(a.x, a.y, b.x, b.y, c.x, c.y)
	if area == 0 {
		return
	}
	// Normalize winding so the edge tests below are sign-stable.
	if area < 0 {
		b, c = c, b
		area = -area
	}

	minX := int(math.Min(a.x, math.Min(b.x, c.x)))
	maxX := int(math.Max(a.x, math.Max(b.x, c.x))) + 1
	minY := int(math.Min(a.y, math.Min(b.y, c.y)))
	maxY := int(math.Max(a.y, math.Max(b.y, c.y))) + 1

	minX = math.Clamp(minX, dst.Rect.Min.X, dst.Rect.Max.X)
	maxX = math.Clamp(maxX, dst.Rect.Min.X, dst.Rect.Max.X)
	minY = math.Clamp(minY, dst.Rect.Min.Y, dst.Rect.Max.Y)
	maxY = math.Clamp(maxY, dst.Rect.Min.Y, dst.Rect.Max.Y)

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			// Sample at pixel centers.
			px := float32(x) + 0.5
			py := float32(y) + 0.5

			w0 := math.EdgeFunction(b.x, b.y, c.x, c.y, px, py)
			w1 := math.EdgeFunction(c.x, c.y, a.x, a.y, px, py)
			w2 := math.EdgeFunction(a.x, a.y, b.x, b.y, px, py)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			l0 := w0 / area
			l1 := w1 / area
			l2 := w2 / area

			dst.SetRGBA(x, y, color.RGBA{
				R: floatToByte(l0*a.r + l1*b.r + l2*c.r),
				G: floatToByte(l0*a.g + l1*b.g + l2*c.g),
				B: floatToByte(l0*a.b + l1*b.b + l2*c.b),
				A: 0xFF,
			})
		}
	}
}

func fillRGBA(dst *image.RGBA, c metadata.Color) {
	px := color.RGBA{
		R: floatToByte(c.R),
		G: floatToByte(c.G),
		B: floatToByte(c.B),
		A: floatToByte(c.A),
	}
	for y := dst.Rect.Min.Y; y < dst.Rect.Max.Y; y++ {
		for x := dst.Rect.Min.X; x < dst.Rect.Max.X; x++ {
			dst.SetRGBA(x, y, px)
		}
	}
}

func floatToByte(f float32) uint8 {
	return uint8(math.Clamp(f, 0, 1)*255 + 0.5)
}
