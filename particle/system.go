package particle

import (
	"math/rand"

	"github.com/lixenwraith/runebeat/constants"
	"github.com/lixenwraith/runebeat/core"
)

// Options selects the optional behaviors of a System, resolved once at construction
type Options struct {
	// Bounce reflects particles off the viewport edges instead of letting them leave
	Bounce bool

	// Trail enables the persistent trail layer
	Trail      bool
	TrailAlpha float64
	// TrailFade blends the trail layer toward its background each frame, 0 keeps it forever
	TrailFade float64
	// TrailBackground is the color the trail layer starts from and fades toward
	TrailBackground core.RGB
}

// System owns the live particle set and the optional trail layer
type System struct {
	particles []Particle
	width     float64
	height    float64
	opts      Options
	rng       *rand.Rand
	trail     *TrailLayer
	scatter   VelocityProfile
	upward    VelocityProfile
}

// NewSystem creates a particle system for a width x height world pixel viewport
func NewSystem(width, height float64, opts Options, rng *rand.Rand) *System {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if opts.TrailAlpha <= 0 {
		opts.TrailAlpha = constants.TrailAlpha
	}

	s := &System{
		particles: make([]Particle, 0, 256),
		width:     width,
		height:    height,
		opts:      opts,
		rng:       rng,
		scatter:   Scatter(constants.BurstSpeed),
		upward:    Upward(constants.GeyserSpreadX, constants.GeyserRiseMin, constants.GeyserRiseMax),
	}
	if opts.Trail {
		s.trail = NewTrailLayer(cellsFor(width, constants.CellWidth), cellsFor(height, constants.CellHeight),
			constants.CellWidth, constants.CellHeight, opts.TrailBackground, opts.TrailFade)
	}
	return s
}

// Spawn adds count particles at (x, y) with velocities drawn from profile
func (s *System) Spawn(x, y, hue float64, count int, profile VelocityProfile) {
	if profile == nil {
		profile = s.scatter
	}
	for i := 0; i < count; i++ {
		vx, vy := profile(s.rng)
		s.particles = append(s.particles, Particle{
			X:    x,
			Y:    y,
			VX:   vx,
			VY:   vy,
			Life: constants.ParticleInitialLife,
			Hue:  hue,
			Size: uniform(s.rng, constants.ParticleMinSize, constants.ParticleMaxSize),
		})
	}
}

// Burst spawns a key press burst at one point
func (s *System) Burst(x, y, hue float64) {
	s.Spawn(x, y, hue, constants.BurstCount, s.scatter)
}

// Geyser spawns chained sub-bursts walking upward from (x, y)
// Stops at the first segment that would start above the viewport, returns segments spawned
func (s *System) Geyser(x, y, hue float64) int {
	cx, cy := x, y
	n := 0
	for ; n < constants.GeyserSegments; n++ {
		if cy < 0 {
			break
		}
		s.Spawn(cx, cy, hue, constants.GeyserSegmentSize, s.upward)
		cx += uniform(s.rng, -constants.GeyserJitter, constants.GeyserJitter)
		cy -= constants.GeyserStep
	}
	return n
}

// BeatBurst spawns the beat reaction at a random viewport point and returns that point
func (s *System) BeatBurst(hue float64) (float64, float64) {
	x := s.rng.Float64() * s.width
	y := s.rng.Float64() * s.height
	s.Spawn(x, y, hue, constants.BeatBurstCount, s.scatter)
	return x, y
}

// RandomPoint returns a uniformly random viewport point
func (s *System) RandomPoint() (float64, float64) {
	return s.rng.Float64() * s.width, s.rng.Float64() * s.height
}

// Tick advances every particle one frame and drops the dead ones
func (s *System) Tick() {
	alive := s.particles[:0]
	for i := range s.particles {
		p := s.particles[i]
		p.update(s.width, s.height, s.opts.Bounce)
		if p.Alive() {
			alive = append(alive, p)
		}
	}
	s.particles = alive
}

// StampTrail fades the trail layer and stamps every live particle onto it
func (s *System) StampTrail() {
	if s.trail == nil {
		return
	}
	s.trail.Fade()
	for i := range s.particles {
		p := &s.particles[i]
		c := core.HSB(p.Hue, constants.TrailSaturation, constants.TrailBrightness)
		s.trail.Stamp(p.X, p.Y, c, s.opts.TrailAlpha*p.Life/constants.ParticleInitialLife)
	}
}

// Each calls fn for every live particle
func (s *System) Each(fn func(p Particle)) {
	for _, p := range s.particles {
		fn(p)
	}
}

// Len returns the live particle count
func (s *System) Len() int {
	return len(s.particles)
}

// Trail returns the trail layer, nil when disabled
func (s *System) Trail() *TrailLayer {
	return s.trail
}

// Bounds returns the viewport size in world pixels
func (s *System) Bounds() (float64, float64) {
	return s.width, s.height
}

// Resize updates the viewport, the trail layer keeps its content
func (s *System) Resize(width, height float64) {
	s.width = width
	s.height = height
	if s.trail != nil {
		s.trail.Resize(cellsFor(width, constants.CellWidth), cellsFor(height, constants.CellHeight))
	}
}

// Reset drops all particles and clears the trail layer
func (s *System) Reset() {
	s.particles = s.particles[:0]
	if s.trail != nil {
		s.trail.Reset()
	}
}

func cellsFor(world, cell float64) int {
	n := int(world / cell)
	if n < 1 {
		return 1
	}
	return n
}
