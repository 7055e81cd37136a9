package globe

import (
	"errors"
	"sync"
)

// ErrQueueClosed is returned by Listen once the queue has been stopped.
var ErrQueueClosed = errors.New("globe: event queue closed")

// Event is one queued input. Kind selects which Input method is called.
type Event struct {
	Kind    string // down, move, up, touchstart, touchmove, touchend, wheel, resize
	X, Y    float64
	Touches []Point
	DeltaY  float64
	Width   int
	Height  int
}

// EventQueue is an EventSource fed by Push. Events pushed while nobody is
// listening are dropped.
type EventQueue struct {
	mu     sync.Mutex
	in     Input
	closed bool
}

func NewEventQueue() *EventQueue { return &EventQueue{} }

// Listen implements EventSource. Only one listener is attached at a time.
func (q *EventQueue) Listen(in Input) (func(), error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil, ErrQueueClosed
	}
	q.in = in
	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		if q.in == in {
			q.in = nil
		}
	}, nil
}

// Listening reports whether a listener is attached.
func (q *EventQueue) Listening() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.in != nil
}

// Close detaches the listener and rejects future Listen calls.
func (q *EventQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.in = nil
}

// Push delivers e synchronously. It reports false when nothing is listening.
func (q *EventQueue) Push(e Event) bool {
	q.mu.Lock()
	in := q.in
	q.mu.Unlock()
	if in == nil {
		return false
	}
	switch e.Kind {
	case "down":
		in.PointerDown(e.X, e.Y)
	case "move":
		in.PointerMove(e.X, e.Y)
	case "up", "leave":
		in.PointerUp()
	case "touchstart":
		in.TouchStart(e.Touches)
	case "touchmove":
		in.TouchMove(e.Touches)
	case "touchend":
		in.TouchEnd()
	case "wheel":
		in.Wheel(e.DeltaY)
	case "resize":
		in.Resize(e.Width, e.Height)
	default:
		return false
	}
	return true
}
