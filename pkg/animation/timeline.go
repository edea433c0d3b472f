package animation

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

// ErrInvalidTimeline is returned for timelines that cannot produce frames
var ErrInvalidTimeline = errors.New("invalid timeline")

// Timeline spaces Frames frame times evenly from Start to End inclusive
type Timeline struct {
	Start  float64
	End    float64
	Frames int
}

// SingleFrame renders one frame at time zero
func SingleFrame() Timeline {
	return Timeline{Frames: 1}
}

// Validate rejects empty or reversed timelines
func (tl Timeline) Validate() error {
	if tl.Frames < 1 {
		return fmt.Errorf("frame count %d must be positive: %w", tl.Frames, ErrInvalidTimeline)
	}
	if math.IsNaN(tl.Start) || math.IsInf(tl.Start, 0) || math.IsNaN(tl.End) || math.IsInf(tl.End, 0) {
		return fmt.Errorf("times %g..%g must be finite: %w", tl.Start, tl.End, ErrInvalidTimeline)
	}
	if tl.End < tl.Start {
		return fmt.Errorf("end %g before start %g: %w", tl.End, tl.Start, ErrInvalidTimeline)
	}
	return nil
}

// Time returns the time of frame k
func (tl Timeline) Time(k int) float64 {
	if tl.Frames <= 1 {
		return tl.Start
	}
	return tl.Start + float64(k)*(tl.End-tl.Start)/float64(tl.Frames-1)
}

// All yields each frame index with its time
func (tl Timeline) All() iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for k := 0; k < tl.Frames; k++ {
			if !yield(k, tl.Time(k)) {
				return
			}
		}
	}
}
