package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/globe"
)

var (
	globeOut      string
	globeFrames   int
	globeWidth    int
	globeHeight   int
	globeInterval time.Duration
	globeZoom     float64
	globeDrag     float64
)

var globeCmd = &cobra.Command{
	Use:   "globe",
	Short: "Render the hero globe to a directory of SVG frames",
	Long: `Runs the globe viewer against an SVG surface and writes one file per
frame. --zoom sends a wheel event and --drag a horizontal drag before the
first frame, the same input the page reacts to.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		if globeFrames < 1 {
			return fmt.Errorf("--frames must be at least 1")
		}
		if globeInterval <= 0 {
			return fmt.Errorf("--interval must be positive")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		viewer := globe.NewViewer(cfg.Globe.Count, cfg.Globe.Radius, globeWidth, globeHeight, log)
		events := globe.NewEventQueue()
		defer events.Close()

		var surface *globe.DirSurface
		open := func(int, int) (globe.Surface, error) {
			s, err := globe.OpenDirSurface(globeOut)
			if err != nil {
				return nil, err
			}
			surface = s
			return s, nil
		}

		// The loop draws one frame per tick sent here, so input pushed
		// before the first send lands before the first frame.
		ticks := make(chan time.Time)
		if err := viewer.Mount(ctx, open, events, ticks); err != nil {
			return fmt.Errorf("mounting globe: %w", err)
		}

		if globeZoom != 0 {
			events.Push(globe.Event{Kind: "wheel", DeltaY: globeZoom})
		}
		if globeDrag != 0 {
			cx, cy := float64(globeWidth)/2, float64(globeHeight)/2
			events.Push(globe.Event{Kind: "down", X: cx, Y: cy})
			events.Push(globe.Event{Kind: "move", X: cx + globeDrag, Y: cy})
			events.Push(globe.Event{Kind: "up"})
		}

		driveTicks(ctx, ticks, viewer.Done(), globeFrames, globeInterval)
		<-viewer.Done()
		if err := viewer.Unmount(); err != nil {
			return fmt.Errorf("unmounting globe: %w", err)
		}
		if err := viewer.Err(); err != nil {
			return fmt.Errorf("rendering globe: %w", err)
		}

		log.Info("globe rendered",
			zap.String("dir", globeOut),
			zap.Int("frames", surface.Written()),
			zap.Int("points", len(viewer.Model().Points)),
			zap.Int("edges", len(viewer.Model().Edges)),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames to %s\n", surface.Written(), globeOut)
		return nil
	},
}

// driveTicks sends n ticks spaced by interval, then closes ticks. It gives
// up early when ctx ends or the render loop exits.
func driveTicks(ctx context.Context, ticks chan<- time.Time, stopped <-chan struct{}, n int, interval time.Duration) {
	defer close(ticks)
	clock := time.NewTicker(interval)
	defer clock.Stop()
	for sent := 0; sent < n; sent++ {
		if sent > 0 {
			select {
			case <-clock.C:
			case <-ctx.Done():
				return
			case <-stopped:
				return
			}
		}
		select {
		case ticks <- time.Now():
		case <-ctx.Done():
			return
		case <-stopped:
			return
		}
	}
}

func init() {
	globeCmd.Flags().StringVarP(&globeOut, "out", "o", "globe-frames", "output directory")
	globeCmd.Flags().IntVarP(&globeFrames, "frames", "n", 60, "number of frames to render")
	globeCmd.Flags().IntVar(&globeWidth, "width", 600, "frame width in pixels")
	globeCmd.Flags().IntVar(&globeHeight, "height", 600, "frame height in pixels")
	globeCmd.Flags().DurationVar(&globeInterval, "interval", time.Second/60, "time between frames")
	globeCmd.Flags().Float64Var(&globeZoom, "zoom", 0, "wheel delta applied before rendering")
	globeCmd.Flags().Float64Var(&globeDrag, "drag", 0, "horizontal drag in pixels applied before rendering")
	rootCmd.AddCommand(globeCmd)
}
