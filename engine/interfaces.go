package engine

// Transport is the playback control the session drives
type Transport interface {
	Start()
	Stop()
	Dispose()
	Loaded() bool
	Playing() bool
}

// FeatureSource yields one scalar audio feature per frame while playing
type FeatureSource interface {
	Sample() (float64, bool)
}

// HitSounder plays feedback for a judged press
type HitSounder interface {
	PlayHit(onBeat bool)
}
