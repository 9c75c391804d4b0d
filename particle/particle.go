package particle

import (
	"math/rand"

	"github.com/lixenwraith/runebeat/constants"
)

// Particle is a short-lived visual effect in world pixel coordinates
// Owned by a System and mutated in place each tick
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // Starts at ParticleInitialLife, dead at or below zero
	Hue    float64
	Size   float64
}

// Alive reports whether the particle still has life left
func (p *Particle) Alive() bool {
	return p.Life > 0
}

// update applies one frame of physics
func (p *Particle) update(width, height float64, bounce bool) {
	p.X += p.VX
	p.Y += p.VY
	p.VY += constants.ParticleGravity
	p.Life -= constants.ParticleLifeDecay
	p.VX *= constants.ParticleDamping
	p.VY *= constants.ParticleDamping

	if bounce {
		p.bounce(width, height)
	}
}

// bounce reflects the particle off the viewport edges
func (p *Particle) bounce(width, height float64) {
	if p.X < 0 {
		p.X = 0
		p.VX = -p.VX * constants.ParticleBounceRestitution
	} else if p.X > width {
		p.X = width
		p.VX = -p.VX * constants.ParticleBounceRestitution
	}
	if p.Y < 0 {
		p.Y = 0
		p.VY = -p.VY * constants.ParticleBounceRestitution
	} else if p.Y > height {
		p.Y = height
		p.VY = -p.VY * constants.ParticleBounceRestitution
	}
}

// VelocityProfile draws an initial velocity for a spawned particle
type VelocityProfile func(rng *rand.Rand) (vx, vy float64)

// Scatter returns a profile with both components uniform in [-spread, spread]
func Scatter(spread float64) VelocityProfile {
	return func(rng *rand.Rand) (float64, float64) {
		return uniform(rng, -spread, spread), uniform(rng, -spread, spread)
	}
}

// Upward returns a profile with small horizontal spread and a strong upward component
func Upward(spreadX, riseMin, riseMax float64) VelocityProfile {
	return func(rng *rand.Rand) (float64, float64) {
		return uniform(rng, -spreadX, spreadX), -uniform(rng, riseMin, riseMax)
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
