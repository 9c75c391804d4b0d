package constants

// Particle Physics (per frame)
const (
	ParticleInitialLife = 100.0
	ParticleLifeDecay   = 1.5
	ParticleGravity     = 0.1
	ParticleDamping     = 0.98

	// ParticleBounceRestitution scales the reflected velocity component on edge bounce
	ParticleBounceRestitution = 0.8

	ParticleMinSize = 3.0
	ParticleMaxSize = 8.0
)

// Spawn Patterns
const (
	// BurstCount is the particle count of a key press burst
	BurstCount = 30
	// BurstSpeed bounds each burst velocity component to [-BurstSpeed, BurstSpeed]
	BurstSpeed = 3.0

	// BeatBurstCount is the particle count spawned on each detected beat
	BeatBurstCount = 10
	// BeatBurstHue is the hue of beat spawned particles
	BeatBurstHue = 200.0

	// GeyserSegments is the maximum number of chained sub-bursts
	GeyserSegments = 15
	// GeyserSegmentSize is the particle count per sub-burst
	GeyserSegmentSize = 5
	// GeyserStep is the vertical rise between sub-bursts
	GeyserStep = 20.0
	// GeyserJitter bounds the horizontal drift between sub-bursts
	GeyserJitter = 8.0
	// GeyserSpreadX bounds horizontal velocity of geyser particles
	GeyserSpreadX = 1.0
	// GeyserRiseMin and GeyserRiseMax bound the upward speed of geyser particles
	GeyserRiseMin = 2.0
	GeyserRiseMax = 6.0
)

// Persistent Trail Layer
const (
	// TrailAlpha is the opacity of a particle stamp on the trail layer
	TrailAlpha = 0.08

	// RingTrailAlpha is the opacity of a beat ring stamp on the trail layer
	RingTrailAlpha = 0.05

	// TrailSaturation and TrailBrightness are the HSB components of stamped particles
	TrailSaturation = 80.0
	TrailBrightness = 100.0
)
