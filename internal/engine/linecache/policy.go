package linecache

import (
	"math"
	"time"
)

// Policy decides which lines are worth resolving before they are asked for.
type Policy interface {
	// Observe records a viewport update. scrollDelta is signed (negative
	// scrolls up) and frameTime is the time since the previous update in
	// seconds.
	Observe(visibleStart, visibleEnd int, scrollDelta, frameTime float64, now time.Time)

	// Prefetch returns the line range to make resident, clipped to
	// totalLines. ok is false when nothing should be prefetched.
	Prefetch(totalLines int, now time.Time) (start, end int, ok bool)

	// Clone returns an independent copy of the policy state.
	Clone() Policy
}

// Direction is the dominant scroll direction.
type Direction int

const (
	// Stationary means the viewport is not moving.
	Stationary Direction = iota
	// Up means the viewport is moving toward the start of the document.
	Up
	// Down means the viewport is moving toward the end of the document.
	Down
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "stationary"
	}
}

// Scroll deltas within this distance of zero count as stationary.
const directionDeadZone = 0.1

// PredictorConfig tunes a ScrollPredictor.
type PredictorConfig struct {
	// BasePadding is the number of lines kept on each side of the viewport.
	BasePadding int

	// VelocityMultiplier converts scroll velocity into extra padding.
	VelocityMultiplier float64

	// MaxVelocityPadding caps the velocity-derived padding.
	MaxVelocityPadding int

	// Recency is how long after the last viewport update prefetching stays
	// active.
	Recency time.Duration
}

// DefaultPredictorConfig returns the default predictor tuning.
func DefaultPredictorConfig() PredictorConfig {
	return PredictorConfig{
		BasePadding:        100,
		VelocityMultiplier: 2,
		MaxVelocityPadding: 300,
		Recency:            500 * time.Millisecond,
	}
}

// ScrollPredictor is the default Policy. It pads the visible range,
// doubling the padding on the side the user is scrolling toward and
// widening it with scroll speed.
type ScrollPredictor struct {
	cfg          PredictorConfig
	visibleStart int
	visibleEnd   int
	rangeStart   int
	rangeEnd     int
	velocity     float64
	direction    Direction
	lastScroll   time.Time
}

// NewScrollPredictor creates a predictor.
func NewScrollPredictor(cfg PredictorConfig) *ScrollPredictor {
	return &ScrollPredictor{cfg: cfg}
}

// Observe implements Policy.
func (p *ScrollPredictor) Observe(visibleStart, visibleEnd int, scrollDelta, frameTime float64, now time.Time) {
	if frameTime > 0 {
		p.velocity = math.Abs(scrollDelta) / frameTime
	} else {
		p.velocity = 0
	}

	switch {
	case scrollDelta < -directionDeadZone:
		p.direction = Up
	case scrollDelta > directionDeadZone:
		p.direction = Down
	default:
		p.direction = Stationary
	}

	p.visibleStart, p.visibleEnd = visibleStart, visibleEnd
	p.rangeStart, p.rangeEnd = p.predict()
	p.lastScroll = now
}

func (p *ScrollPredictor) predict() (start, end int) {
	extra := min(int(p.velocity*p.cfg.VelocityMultiplier), p.cfg.MaxVelocityPadding)
	pad := p.cfg.BasePadding + max(extra, 0)

	switch p.direction {
	case Up:
		return max(p.visibleStart-2*pad, 0), p.visibleEnd + pad
	case Down:
		return max(p.visibleStart-pad, 0), p.visibleEnd + 2*pad
	default:
		return max(p.visibleStart-pad, 0), p.visibleEnd + pad
	}
}

// Prefetch implements Policy.
func (p *ScrollPredictor) Prefetch(totalLines int, now time.Time) (start, end int, ok bool) {
	if p.lastScroll.IsZero() || now.Sub(p.lastScroll) >= p.cfg.Recency {
		return 0, 0, false
	}
	start = min(p.rangeStart, max(totalLines-1, 0))
	end = min(p.rangeEnd, totalLines)
	return start, end, start < end
}

// Clone implements Policy.
func (p *ScrollPredictor) Clone() Policy {
	cp := *p
	return &cp
}

// Direction returns the last observed scroll direction.
func (p *ScrollPredictor) Direction() Direction {
	return p.direction
}

// Velocity returns the last observed scroll speed in lines per second.
func (p *ScrollPredictor) Velocity() float64 {
	return p.velocity
}

// Range returns the predicted range before clipping to the document.
func (p *ScrollPredictor) Range() (start, end int) {
	return p.rangeStart, p.rangeEnd
}
