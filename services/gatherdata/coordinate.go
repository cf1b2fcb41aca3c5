package gatherdata

import "math"

// Coordinate is a single scraped map position in percent-of-map units.
// Its packed integer key is computed lazily and frozen after the first
// computation (or after an explicit override during collision
// resolution), it is never derived from X/Y again once frozen.
type Coordinate struct {
	X float64
	Y float64

	key    int64
	frozen bool
}

func NewCoordinate(x, y float64) Coordinate {
	return Coordinate{X: x, Y: y}
}

// scales one axis onto a 0-10000 grid, rounding half up. GatherMate's
// keys were generated with floor(v+0.5), banker's rounding would
// produce different keys for *.5 positions.
func packAxis(v float64) int64 {
	return int64(math.Floor(v/100*10000 + 0.5))
}

// Key returns the packed sort key:
//
//	floor(x/100*10000+0.5)*1000000 + floor(y/100*10000+0.5)*100
//
// the *100 on the y term keeps the two lowest decimal digits zero,
// which is the band [key, key+99] collision resolution bumps into.
// Out-of-range positions are packed as-is, upstream data is trusted.
func (c *Coordinate) Key() int64 {
	if !c.frozen {
		c.key = packAxis(c.X)*1_000_000 + packAxis(c.Y)*100
		c.frozen = true
	}
	return c.key
}

// SetKey overrides the packed key and freezes it permanently.
func (c *Coordinate) SetKey(key int64) {
	c.key = key
	c.frozen = true
}
