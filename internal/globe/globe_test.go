package globe

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate(DefaultCount, DefaultRadius)
	b := Generate(DefaultCount, DefaultRadius)
	require.Len(t, a, DefaultCount)
	for i := range a {
		assert.Equal(t, math.Float64bits(a[i].X), math.Float64bits(b[i].X))
		assert.Equal(t, math.Float64bits(a[i].Y), math.Float64bits(b[i].Y))
		assert.Equal(t, math.Float64bits(a[i].Z), math.Float64bits(b[i].Z))
	}
}

func TestGeneratePointsLieOnSphere(t *testing.T) {
	pts := Generate(50, 2)
	for i, p := range pts {
		assert.InDelta(t, 2.0, p.Dist(Vec3{}), 1e-9, "point %d", i)
	}
	assert.InDelta(t, 2.0, pts[0].Y, 1e-12)
	assert.InDelta(t, -2.0, pts[len(pts)-1].Y, 1e-12)
}

func TestGenerateFormula(t *testing.T) {
	const n, r = 10, 3.0
	pts := Generate(n, r)
	i := 4
	y := 1 - 2*float64(i)/float64(n-1)
	rad := math.Sqrt(1 - y*y)
	theta := float64(i) * math.Pi * (3 - math.Sqrt(5))
	assert.InDelta(t, math.Cos(theta)*rad*r, pts[i].X, 1e-12)
	assert.InDelta(t, y*r, pts[i].Y, 1e-12)
	assert.InDelta(t, math.Sin(theta)*rad*r, pts[i].Z, 1e-12)
}

func TestGenerateSmallCounts(t *testing.T) {
	assert.Empty(t, Generate(0, 1))
	assert.Empty(t, Generate(-3, 1))
	one := Generate(1, 2)
	require.Len(t, one, 1)
	assert.Equal(t, Vec3{Y: 2}, one[0])
}

func TestEdgesMatchDistanceThreshold(t *testing.T) {
	m := NewModel(60, DefaultRadius)
	limit := EdgeFactor * DefaultRadius

	has := make(map[Edge]bool, len(m.Edges))
	for _, e := range m.Edges {
		require.Less(t, e.I, e.J)
		has[e] = true
	}
	for i := range m.Points {
		for j := range m.Points {
			if i == j {
				continue
			}
			want := m.Points[i].Dist(m.Points[j]) < limit
			lo, hi := min(i, j), max(i, j)
			assert.Equal(t, want, has[Edge{lo, hi}], "pair %d,%d", i, j)
			// Symmetric in argument order.
			assert.Equal(t, m.Points[i].Dist(m.Points[j]), m.Points[j].Dist(m.Points[i]))
		}
	}
	assert.NotEmpty(t, m.Edges)
}

func TestIdleRotationIsPerFrame(t *testing.T) {
	c := NewController(800, 600)
	for i := 0; i < 500; i++ {
		c.Tick()
	}
	yaw, pitch := c.Rotation()
	assert.InDelta(t, 500*IdleStep, yaw, 1e-9)
	assert.Zero(t, pitch)
}

func TestDragPausesAndPreservesRotation(t *testing.T) {
	c := NewController(800, 600)
	c.PointerDown(100, 100)
	c.Tick()
	c.Tick()
	yaw, _ := c.Rotation()
	assert.Zero(t, yaw, "ticks while dragging must not rotate")

	c.PointerMove(140, 80)
	yaw, pitch := c.Rotation()
	assert.InDelta(t, 40*DragScale, yaw, 1e-12)
	assert.InDelta(t, -20*DragScale, pitch, 1e-12)

	c.PointerMove(150, 80)
	yaw, _ = c.Rotation()
	assert.InDelta(t, 50*DragScale, yaw, 1e-12)

	c.PointerUp()
	afterYaw, afterPitch := c.Rotation()
	assert.Equal(t, yaw, afterYaw, "release must not snap back")
	assert.Equal(t, pitch, afterPitch)

	c.Tick()
	resumed, _ := c.Rotation()
	assert.InDelta(t, yaw+IdleStep, resumed, 1e-12)
}

func TestMoveWithoutPressDoesNothing(t *testing.T) {
	c := NewController(800, 600)
	c.PointerMove(300, 300)
	yaw, pitch := c.Rotation()
	assert.Zero(t, yaw)
	assert.Zero(t, pitch)
}

func TestTouchUsesSingleFingerOnly(t *testing.T) {
	c := NewController(800, 600)

	c.TouchStart([]Point{{0, 0}, {10, 10}})
	assert.False(t, c.Dragging())

	c.TouchStart([]Point{{0, 0}})
	assert.True(t, c.Dragging())
	c.TouchMove([]Point{{20, 0}, {99, 99}})
	yaw, _ := c.Rotation()
	assert.Zero(t, yaw)

	c.TouchMove([]Point{{20, 10}})
	yaw, pitch := c.Rotation()
	assert.InDelta(t, 20*DragScale, yaw, 1e-12)
	assert.InDelta(t, 10*DragScale, pitch, 1e-12)

	c.TouchEnd()
	assert.False(t, c.Dragging())
}

func TestWheelClampsDistance(t *testing.T) {
	c := NewController(800, 600)
	assert.Equal(t, InitialDistance, c.Distance())

	c.Wheel(100)
	assert.InDelta(t, 13.0, c.Distance(), 1e-12)

	for i := 0; i < 50; i++ {
		c.Wheel(1000)
	}
	assert.Equal(t, MaxDistance, c.Distance())

	for i := 0; i < 50; i++ {
		c.Wheel(-1000)
	}
	assert.Equal(t, MinDistance, c.Distance())
}

func TestControllerIgnoresNonFiniteInput(t *testing.T) {
	c := NewController(800, 600)
	c.SetView(0.4, 0.2, 10)

	c.Wheel(math.NaN())
	c.Wheel(math.Inf(1))
	c.SetView(math.NaN(), 0, 10)
	c.SetView(0, 0, math.Inf(-1))
	assert.Equal(t, 10.0, c.Distance())
	yaw, pitch := c.Rotation()
	assert.Equal(t, 0.4, yaw)
	assert.Equal(t, 0.2, pitch)

	c.PointerDown(math.NaN(), 0)
	assert.False(t, c.Dragging())
	c.PointerDown(10, 10)
	c.PointerMove(math.Inf(1), 10)
	yaw, _ = c.Rotation()
	assert.Equal(t, 0.4, yaw)

	assert.Equal(t, MinDistance, clampf(math.NaN(), MinDistance, MaxDistance))
}

func TestResizeUpdatesProjection(t *testing.T) {
	c := NewController(800, 600)
	c.Resize(1000, 500)

	p := c.Projection()
	assert.Equal(t, 1000, p.Width)
	assert.Equal(t, 500, p.Height)
	assert.InDelta(t, 2.0, p.Aspect, 1e-12)
	assert.InDelta(t, p.Matrix[5]/2, p.Matrix[0], 1e-12)

	c.Resize(0, 300)
	assert.Equal(t, 1000, c.Projection().Width)
}

func TestProjectionKeepsCirclesRound(t *testing.T) {
	for _, size := range [][2]int{{800, 600}, {1920, 400}, {300, 900}} {
		pr := NewProjection(size[0], size[1])
		center := pr.Project(Vec3{}, InitialDistance)
		right := pr.Project(Vec3{X: 1}, InitialDistance)
		up := pr.Project(Vec3{Y: 1}, InitialDistance)

		dx := right.X - center.X
		dy := center.Y - up.Y
		assert.InDelta(t, dx, dy, 1e-9, "size %v", size)
		assert.InDelta(t, float64(size[0])/2, center.X, 1e-9)
		assert.InDelta(t, float64(size[1])/2, center.Y, 1e-9)
	}
}

func TestProjectBehindCamera(t *testing.T) {
	pr := NewProjection(100, 100)
	assert.False(t, pr.Project(Vec3{Z: 20}, InitialDistance).Visible)
}

func TestRotate(t *testing.T) {
	p := Rotate(Vec3{X: 1}, math.Pi/2, 0)
	assert.InDelta(t, 0, p.X, 1e-12)
	assert.InDelta(t, -1, p.Z, 1e-12)

	q := Rotate(Vec3{Y: 1}, 0, math.Pi/2)
	assert.InDelta(t, 0, q.Y, 1e-12)
	assert.InDelta(t, 1, q.Z, 1e-12)
}

func TestFrameSharesModelEdges(t *testing.T) {
	m := NewModel(40, 2)
	c := NewController(400, 400)
	f := c.Frame(m)
	require.Len(t, f.Points, len(m.Points))
	require.NotEmpty(t, f.Edges)
	assert.Same(t, &m.Edges[0], &f.Edges[0])
}

func TestWriteSVG(t *testing.T) {
	m := NewModel(30, 2)
	f := NewController(200, 100).Frame(m)

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, f))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100"`))
	assert.Equal(t, len(m.Points), strings.Count(out, "<circle "))
	assert.Equal(t, len(m.Edges), strings.Count(out, "<line "))
	assert.True(t, strings.HasSuffix(out, "</svg>"))
}
