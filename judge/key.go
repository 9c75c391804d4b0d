package judge

import "unicode"

// Key is one of the four playable lanes
type Key rune

const (
	KeyD Key = 'D'
	KeyF Key = 'F'
	KeyJ Key = 'J'
	KeyK Key = 'K'
)

// Keys lists the lanes left to right
var Keys = [4]Key{KeyD, KeyF, KeyJ, KeyK}

// Lane hues in degrees
var keyHues = map[Key]float64{
	KeyD: 280, // purple
	KeyF: 180, // cyan
	KeyJ: 60,  // yellow
	KeyK: 0,   // red
}

// ParseKey maps a typed rune to a lane, case-insensitive
func ParseKey(r rune) (Key, bool) {
	k := Key(unicode.ToUpper(r))
	if _, ok := keyHues[k]; !ok {
		return 0, false
	}
	return k, true
}

// Hue returns the lane color hue
func (k Key) Hue() float64 {
	return keyHues[k]
}

// Lane returns the lane index 0-3, -1 for an invalid key
func (k Key) Lane() int {
	for i, key := range Keys {
		if key == k {
			return i
		}
	}
	return -1
}

// String returns the key letter
func (k Key) String() string {
	return string(rune(k))
}
