package content

import (
	"math"
	"time"
)

// CountUp is the value an animated counter shows after elapsed of a run
// lasting duration: floor(easeOutQuart(progress) * target), exactly target
// once the run is over.
func CountUp(target int, elapsed, duration time.Duration) int {
	if duration <= 0 || elapsed >= duration {
		return target
	}
	if elapsed <= 0 {
		return 0
	}
	progress := float64(elapsed) / float64(duration)
	ease := 1 - math.Pow(1-progress, 4)
	return int(math.Floor(ease * float64(target)))
}

// Keyframes samples CountUp at steps+1 evenly spaced instants, first and last included.
func Keyframes(target int, duration time.Duration, steps int) []int {
	if steps < 1 {
		steps = 1
	}
	out := make([]int, steps+1)
	for i := 0; i <= steps; i++ {
		out[i] = CountUp(target, duration*time.Duration(i)/time.Duration(steps), duration)
	}
	return out
}

// Stat is one entry of the About counters.
type Stat struct {
	Label  string
	Value  int
	Suffix string
}

// Stats derives the About counters from the store's datasets.
func (s *Store) Stats() []Stat {
	return []Stat{
		{Label: "Projects shipped", Value: len(s.projects), Suffix: "+"},
		{Label: "Roles held", Value: len(s.experience)},
		{Label: "Posts written", Value: len(s.posts)},
		{Label: "Technologies", Value: s.Technologies(), Suffix: "+"},
	}
}
