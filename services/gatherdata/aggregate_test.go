package gatherdata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAggregateAddBumpsDuplicates(t *testing.T) {
	a := NewAggregate("Herb")
	zone := Zone{Name: "Ashenvale", ID: "63"}

	for i := 0; i < 3; i++ {
		err := a.Add(zone, Entry{Coordinate: NewCoordinate(50, 50), ID: "415"})
		require.NoError(t, err)
	}

	buckets := a.Buckets()
	require.Len(t, buckets, 1)
	keys := []int64{}
	for _, entry := range buckets[0].Entries {
		keys = append(keys, entry.Coordinate.Key())
	}
	require.ElementsMatch(t, []int64{5_000_500_000, 5_000_500_001, 5_000_500_002}, keys)
	require.Equal(t, 2, a.Bumps)
}

func TestAggregateAddBandExhaustion(t *testing.T) {
	a := NewAggregate("Mine")
	zone := Zone{Name: "Badlands", ID: "15"}

	for i := 0; i < collisionBand; i++ {
		err := a.Add(zone, Entry{Coordinate: NewCoordinate(25, 75), ID: "201"})
		require.NoError(t, err)
	}
	err := a.Add(zone, Entry{Coordinate: NewCoordinate(25, 75), ID: "201"})
	require.ErrorIs(t, err, ErrBandExhausted)

	// the failed add must not have landed in the bucket
	require.Equal(t, collisionBand, a.EntryCount())
}

func TestAggregateSameKeyAcrossZones(t *testing.T) {
	a := NewAggregate("Fish")

	err := a.Add(Zone{Name: "Durotar", ID: "1"}, Entry{Coordinate: NewCoordinate(50, 50), ID: "101"})
	require.NoError(t, err)
	err = a.Add(Zone{Name: "Mulgore", ID: "7"}, Entry{Coordinate: NewCoordinate(50, 50), ID: "101"})
	require.NoError(t, err)

	// uniqueness is per zone, identical keys in different zones never bump
	require.Equal(t, 0, a.Bumps)
	require.Equal(t, 2, a.ZoneCount())
	for _, bucket := range a.Buckets() {
		require.Equal(t, int64(5_000_500_000), bucket.Entries[0].Coordinate.Key())
	}
}

func TestAggregateNoEmptyBuckets(t *testing.T) {
	a := NewAggregate("Herb")
	require.Empty(t, a.Buckets())
	require.Equal(t, 0, a.ZoneCount())
	require.Equal(t, 0, a.EntryCount())
}
