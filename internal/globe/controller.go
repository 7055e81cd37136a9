package globe

import (
	"math"
	"sync"
)

const (
	// IdleStep is the yaw added per frame while nobody is dragging.
	IdleStep = 0.003
	// DragScale converts pointer pixels to radians.
	DragScale = 0.005
	// WheelScale converts wheel delta to camera distance.
	WheelScale = 0.01

	MinDistance     = 6.0
	MaxDistance     = 25.0
	InitialDistance = 12.0
)

// Point is a pointer or touch position in pixels.
type Point struct {
	X, Y float64
}

// Input receives user interaction. Controller implements it; an EventSource
// delivers to it.
type Input interface {
	PointerDown(x, y float64)
	PointerMove(x, y float64)
	PointerUp()
	TouchStart(touches []Point)
	TouchMove(touches []Point)
	TouchEnd()
	Wheel(deltaY float64)
	Resize(width, height int)
}

// Controller holds rotation, camera distance and drag state. Event handlers
// and the render loop may run on different goroutines, so every method locks.
type Controller struct {
	mu       sync.Mutex
	yaw      float64
	pitch    float64
	distance float64
	dragging bool
	last     Point
	proj     Projection
}

var _ Input = (*Controller)(nil)

// NewController starts at the initial camera distance with a projection for width x height.
func NewController(width, height int) *Controller {
	return &Controller{distance: InitialDistance, proj: NewProjection(width, height)}
}

// Tick advances one frame. Rotation only auto-advances when not dragging;
// a drag pauses it and releasing resumes from wherever the drag left it.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dragging {
		c.yaw += IdleStep
	}
}

// PointerDown starts a drag. Non-finite coordinates are ignored.
func (c *Controller) PointerDown(x, y float64) {
	if !finite(x, y) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = true
	c.last = Point{x, y}
}

func (c *Controller) PointerMove(x, y float64) {
	if !finite(x, y) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drag(Point{x, y})
}

func (c *Controller) PointerUp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = false
}

// TouchStart begins a drag only for single-finger gestures.
func (c *Controller) TouchStart(touches []Point) {
	if len(touches) != 1 {
		return
	}
	c.PointerDown(touches[0].X, touches[0].Y)
}

func (c *Controller) TouchMove(touches []Point) {
	if len(touches) != 1 {
		return
	}
	c.PointerMove(touches[0].X, touches[0].Y)
}

func (c *Controller) TouchEnd() { c.PointerUp() }

func (c *Controller) drag(p Point) {
	if !c.dragging {
		return
	}
	c.yaw += (p.X - c.last.X) * DragScale
	c.pitch += (p.Y - c.last.Y) * DragScale
	c.last = p
}

// Wheel moves the camera, clamped to [MinDistance, MaxDistance].
func (c *Controller) Wheel(deltaY float64) {
	if !finite(deltaY) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.distance = clampf(c.distance+deltaY*WheelScale, MinDistance, MaxDistance)
}

// Resize rebuilds the projection for the new output size. Non-positive sizes are ignored.
func (c *Controller) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.proj = NewProjection(width, height)
}

// SetView places the globe at a fixed orientation and distance (clamped).
// The call is ignored unless all three values are finite.
func (c *Controller) SetView(yaw, pitch, distance float64) {
	if !finite(yaw, pitch, distance) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw, c.pitch = yaw, pitch
	c.distance = clampf(distance, MinDistance, MaxDistance)
}

// Rotation returns yaw and pitch in radians.
func (c *Controller) Rotation() (yaw, pitch float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw, c.pitch
}

func (c *Controller) Distance() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.distance
}

func (c *Controller) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging
}

func (c *Controller) Projection() Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.proj
}

// Frame projects m with the current view.
func (c *Controller) Frame(m *Model) Frame {
	c.mu.Lock()
	yaw, pitch, dist, proj := c.yaw, c.pitch, c.distance, c.proj
	c.mu.Unlock()
	return proj.Frame(m, yaw, pitch, dist)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// clampf maps NaN to lo.
func clampf(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
