package math

// EdgeFunction returns twice the signed area of the triangle (a, b, p).
// Positive when p lies to the left of the directed edge a->b.
func EdgeFunction(ax, ay, bx, by, px, py float32) float32 {
	return (px-ax)*(by-ay) - (py-ay)*(bx-ax)
}
