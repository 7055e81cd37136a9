// Package globe builds and animates the hero point-cloud sphere.
package globe

import "math"

// Defaults for the hero globe.
const (
	DefaultCount  = 180
	DefaultRadius = 3.5

	// EdgeFactor is the fraction of the radius under which two points are joined.
	EdgeFactor = 0.55
)

// goldenAngle is π(3-√5), the angle between successive spiral points.
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

type Vec3 struct {
	X, Y, Z float64
}

// Dist is the Euclidean distance between a and b.
func (a Vec3) Dist(b Vec3) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Edge joins two point indices, I < J.
type Edge struct {
	I, J int
}

// Generate places n points on a sphere of radius r along a golden-angle
// spiral running from the north pole (y = r) to the south pole.
func Generate(n int, r float64) []Vec3 {
	if n <= 0 {
		return nil
	}
	pts := make([]Vec3, n)
	if n == 1 {
		pts[0] = Vec3{Y: r}
		return pts
	}
	for i := 0; i < n; i++ {
		y := 1 - 2*float64(i)/float64(n-1)
		radiusAtY := math.Sqrt(1 - y*y)
		theta := float64(i) * goldenAngle
		pts[i] = Vec3{
			X: math.Cos(theta) * radiusAtY * r,
			Y: y * r,
			Z: math.Sin(theta) * radiusAtY * r,
		}
	}
	return pts
}

// Edges returns every pair closer than EdgeFactor*r, ordered by (I, J).
func Edges(pts []Vec3, r float64) []Edge {
	limit := EdgeFactor * r
	var out []Edge
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			if pts[i].Dist(pts[j]) < limit {
				out = append(out, Edge{I: i, J: j})
			}
		}
	}
	return out
}

// Model is the immutable point cloud: points plus the edges between them.
// It is computed once per globe and only read afterwards.
type Model struct {
	Radius float64
	Points []Vec3
	Edges  []Edge
}

// NewModel generates the points and edges for n points on a sphere of radius r.
func NewModel(n int, r float64) *Model {
	pts := Generate(n, r)
	return &Model{Radius: r, Points: pts, Edges: Edges(pts, r)}
}
