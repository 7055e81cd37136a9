package globe

import "math"

// Camera constants.
const (
	FOV  = 45.0 // vertical, degrees
	Near = 0.1
	Far  = 1000.0
)

// Projection is a perspective projection for a width x height output.
// Matrix is column-major, matching the client-side renderer.
type Projection struct {
	Width  int
	Height int
	Aspect float64
	Matrix [16]float64
}

// NewProjection builds the projection for the given output size. A zero
// height is treated as one pixel.
func NewProjection(width, height int) Projection {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	aspect := float64(width) / float64(height)
	f := 1 / math.Tan(FOV*math.Pi/360)

	var m [16]float64
	m[0] = f / aspect
	m[5] = f
	m[10] = (Far + Near) / (Near - Far)
	m[11] = -1
	m[14] = 2 * Far * Near / (Near - Far)

	return Projection{Width: width, Height: height, Aspect: aspect, Matrix: m}
}

// Projected is a point in screen pixels. Visible is false when the point is
// behind the near plane.
type Projected struct {
	X, Y    float64
	Depth   float64
	Visible bool
}

// Project maps p, already rotated, for a camera on +Z at distance looking at the origin.
func (pr Projection) Project(p Vec3, distance float64) Projected {
	depth := distance - p.Z
	if depth <= Near || depth >= Far {
		return Projected{Depth: depth}
	}
	ndcX := pr.Matrix[0] * p.X / depth
	ndcY := pr.Matrix[5] * p.Y / depth
	return Projected{
		X:       (ndcX + 1) / 2 * float64(pr.Width),
		Y:       (1 - ndcY) / 2 * float64(pr.Height),
		Depth:   depth,
		Visible: true,
	}
}

// Rotate applies yaw about Y, then pitch about X.
func Rotate(p Vec3, yaw, pitch float64) Vec3 {
	sy, cy := math.Sincos(yaw)
	x := p.X*cy + p.Z*sy
	z := -p.X*sy + p.Z*cy

	sp, cp := math.Sincos(pitch)
	y := p.Y*cp - z*sp
	z = p.Y*sp + z*cp
	return Vec3{X: x, Y: y, Z: z}
}

// Frame is one rendered view of a model. Edges index into Points.
type Frame struct {
	Width    int
	Height   int
	Distance float64
	Points   []Projected
	Edges    []Edge
}

// Frame rotates and projects every point of m. Edges are shared with the
// model, not copied.
func (pr Projection) Frame(m *Model, yaw, pitch, distance float64) Frame {
	pts := make([]Projected, len(m.Points))
	for i, p := range m.Points {
		pts[i] = pr.Project(Rotate(p, yaw, pitch), distance)
	}
	return Frame{
		Width:    pr.Width,
		Height:   pr.Height,
		Distance: distance,
		Points:   pts,
		Edges:    m.Edges,
	}
}
