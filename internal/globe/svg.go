package globe

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

const (
	pointColor = "#22d3ee"
	lineColor  = "#3b82f6"
	pointSize  = 0.1
)

// WriteSVG renders f as a standalone SVG document. Edges with an endpoint
// behind the camera are skipped.
func WriteSVG(w io.Writer, f Frame) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		f.Width, f.Height, f.Width, f.Height)
	fmt.Fprintf(bw, `<g stroke="%s" stroke-opacity="0.2" stroke-width="1">`, lineColor)
	for _, e := range f.Edges {
		a, b := f.Points[e.I], f.Points[e.J]
		if !a.Visible || !b.Visible {
			continue
		}
		fmt.Fprintf(bw, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`, a.X, a.Y, b.X, b.Y)
	}
	bw.WriteString(`</g>`)
	fmt.Fprintf(bw, `<g fill="%s" fill-opacity="0.9">`, pointColor)
	scale := spriteScale(f)
	for _, p := range f.Points {
		if !p.Visible {
			continue
		}
		fmt.Fprintf(bw, `<circle cx="%.2f" cy="%.2f" r="%.2f"/>`, p.X, p.Y, max(scale/p.Depth, 0.5))
	}
	bw.WriteString(`</g></svg>`)
	return bw.Flush()
}

// spriteScale is the pixel radius of a point at depth 1. Dividing by depth
// gives the size-attenuated radius.
func spriteScale(f Frame) float64 {
	pr := NewProjection(f.Width, f.Height)
	return pointSize * pr.Matrix[5] * float64(pr.Height) / 4
}

// ErrSurfaceClosed is returned when drawing on a closed surface.
var ErrSurfaceClosed = errors.New("globe: surface closed")

// DirSurface writes each frame to dir/frame-NNNN.svg.
type DirSurface struct {
	dir string

	mu     sync.Mutex
	n      int
	closed bool
}

// OpenDirSurface creates dir if needed. It satisfies SurfaceFactory once
// the directory is bound with a closure.
func OpenDirSurface(dir string) (*DirSurface, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating frame dir: %w", err)
	}
	return &DirSurface{dir: dir}, nil
}

func (s *DirSurface) Draw(f Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSurfaceClosed
	}
	path := filepath.Join(s.dir, fmt.Sprintf("frame-%04d.svg", s.n))
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSVG(out, f); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	s.n++
	return nil
}

// Written is the number of frames written so far.
func (s *DirSurface) Written() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

func (s *DirSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
