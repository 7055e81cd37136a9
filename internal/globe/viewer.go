package globe

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrMounted is returned by Mount on a viewer that is already running.
var ErrMounted = errors.New("globe: viewer already mounted")

// MaxDrawErrors is how many consecutive failed draws stop the render loop.
const MaxDrawErrors = 3

// Surface is a render target for frames.
type Surface interface {
	Draw(f Frame) error
	Close() error
}

// SurfaceFactory opens a surface of the given size.
type SurfaceFactory func(width, height int) (Surface, error)

// EventSource delivers user input to in until stop is called.
type EventSource interface {
	Listen(in Input) (stop func(), err error)
}

// Viewer owns one globe: its model, controller, surface, listeners and
// render loop. Everything acquired in Mount is released in Unmount.
type Viewer struct {
	model *Model
	ctrl  *Controller
	log   *zap.Logger

	mu      sync.Mutex
	mounted bool
	surface Surface
	stop    func()
	cancel  context.CancelFunc
	done    chan struct{}
	frames  int
	err     error
}

// NewViewer builds the model once; it is reused for every frame.
func NewViewer(count int, radius float64, width, height int, log *zap.Logger) *Viewer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Viewer{
		model: NewModel(count, radius),
		ctrl:  NewController(width, height),
		log:   log,
	}
}

func (v *Viewer) Model() *Model           { return v.model }
func (v *Viewer) Controller() *Controller { return v.ctrl }

// Frames is the number of frames drawn since the last Mount.
func (v *Viewer) Frames() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frames
}

// Done is closed when the current render loop exits, either after
// Unmount, when ticks is closed, or on a draw failure. It is nil when the
// viewer has never been mounted.
func (v *Viewer) Done() <-chan struct{} {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.done
}

// Err reports the draw failure that stopped the last render loop, if any.
func (v *Viewer) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Mount opens the surface, subscribes to events and starts the render loop,
// which draws one frame per value received on ticks. If any step fails the
// steps before it are undone and the error is returned.
func (v *Viewer) Mount(ctx context.Context, open SurfaceFactory, events EventSource, ticks <-chan time.Time) (err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mounted {
		return ErrMounted
	}

	proj := v.ctrl.Projection()
	surface, err := open(proj.Width, proj.Height)
	if err != nil {
		return fmt.Errorf("opening surface: %w", err)
	}
	defer func() {
		if err != nil {
			if cerr := surface.Close(); cerr != nil {
				v.log.Warn("closing surface after failed mount", zap.Error(cerr))
			}
		}
	}()

	stop := func() {}
	if events != nil {
		stop, err = events.Listen(v.ctrl)
		if err != nil {
			return fmt.Errorf("listening for input: %w", err)
		}
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	v.surface, v.stop, v.cancel, v.done = surface, stop, cancel, done
	v.frames = 0
	v.err = nil
	v.mounted = true

	go v.loop(loopCtx, surface, ticks, done)
	return nil
}

func (v *Viewer) loop(ctx context.Context, surface Surface, ticks <-chan time.Time, done chan struct{}) {
	defer close(done)
	failed := 0
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			// Cancellation wins over a tick that arrived at the same time.
			if ctx.Err() != nil {
				return
			}
			v.ctrl.Tick()
			if err := surface.Draw(v.ctrl.Frame(v.model)); err != nil {
				v.log.Warn("drawing globe frame", zap.Error(err))
				if failed++; failed >= MaxDrawErrors {
					v.mu.Lock()
					v.err = fmt.Errorf("drawing frame: %w", err)
					v.mu.Unlock()
					return
				}
				continue
			}
			failed = 0
			v.mu.Lock()
			v.frames++
			v.mu.Unlock()
		}
	}
}

// Unmount stops the render loop and waits for it, removes the input
// listeners, then closes the surface. It is a no-op when not mounted.
func (v *Viewer) Unmount() error {
	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return nil
	}
	v.mounted = false
	cancel, done, stop, surface := v.cancel, v.done, v.stop, v.surface
	v.cancel, v.stop, v.surface = nil, nil, nil
	v.mu.Unlock()

	cancel()
	<-done
	stop()
	if err := surface.Close(); err != nil {
		return fmt.Errorf("closing surface: %w", err)
	}
	return nil
}
