package gatherdata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoordinateKeyPacking(t *testing.T) {
	cases := []struct {
		x, y float64
		key  int64
	}{
		{0, 0, 0},
		{50, 50, 5_000_500_000},
		{100, 100, 10_001_000_000},
		{55.2, 38.4, 5_520_384_000},
		// .5 grid positions round up, not to even
		{0.005, 0.005, 1_000_100},
		{0.015, 0, 2_000_000},
	}
	for _, c := range cases {
		coord := NewCoordinate(c.x, c.y)
		require.Equal(t, c.key, coord.Key(), "(%v, %v)", c.x, c.y)
	}
}

func TestCoordinateKeyLeavesBandFree(t *testing.T) {
	for _, coord := range []Coordinate{
		NewCoordinate(12.34, 56.78),
		NewCoordinate(99.99, 0.01),
		NewCoordinate(3.3333, 6.6667),
	} {
		require.Zero(t, coord.Key()%100)
	}
}

func TestCoordinateKeyFreezes(t *testing.T) {
	coord := NewCoordinate(50, 50)
	key := coord.Key()

	// later mutation of the position must not change the key
	coord.X = 10
	coord.Y = 10
	require.Equal(t, key, coord.Key())
}

func TestCoordinateSetKeyOverrides(t *testing.T) {
	coord := NewCoordinate(50, 50)
	coord.SetKey(42)
	require.Equal(t, int64(42), coord.Key())

	coord.X = 80
	require.Equal(t, int64(42), coord.Key())
}

func TestCoordinateOriginKeyIsStable(t *testing.T) {
	// key 0 is a legitimate value, it must freeze like any other
	coord := NewCoordinate(0, 0)
	require.Equal(t, int64(0), coord.Key())
	coord.X = 50
	require.Equal(t, int64(0), coord.Key())
}
