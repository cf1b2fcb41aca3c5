package gatherdata

import (
	"errors"
	"fmt"
)

// number of key slots reserved per nominal position, see Coordinate.Key.
// more than this many samples at the exact same position means the
// upstream data broke the reserved-band assumption and the run cannot
// produce a correct table.
const collisionBand = 100

var ErrBandExhausted = errors.New("coordinate collision band exhausted")

// Entry is one gatherable object instance pinned at one coordinate.
// ID is the GatherMate node id for the object, emitted as the value of
// the coordinate key in the output table.
type Entry struct {
	Coordinate Coordinate
	ID         string
}

// ZoneBucket owns every entry collected for one zone. Within a bucket
// entry keys are unique, Aggregate.Add maintains that invariant.
type ZoneBucket struct {
	Zone    Zone
	Entries []Entry

	keys map[int64]struct{}
}

// Aggregate collects the zone buckets for one category. It is a
// single-writer structure, the pipeline feeds it from one goroutine.
type Aggregate struct {
	Category string

	buckets map[string]*ZoneBucket
	// number of entries that needed a collision bump, for run stats
	Bumps int
}

func NewAggregate(category string) *Aggregate {
	return &Aggregate{
		Category: category,
		buckets:  map[string]*ZoneBucket{},
	}
}

// Add places the entry into the bucket for `zone`, creating the bucket
// on first use. If the entry's key is already taken the key is bumped
// by one until a free slot is found; exhausting the reserved band is a
// data-integrity fault and aborts the aggregation.
func (a *Aggregate) Add(zone Zone, entry Entry) error {
	bucket := a.buckets[zone.ID]
	if bucket == nil {
		bucket = &ZoneBucket{
			Zone: zone,
			keys: map[int64]struct{}{},
		}
		a.buckets[zone.ID] = bucket
	}

	nominal := entry.Coordinate.Key()
	key := nominal
	for {
		_, taken := bucket.keys[key]
		if !taken {
			break
		}
		key++
		if key-nominal >= collisionBand {
			return fmt.Errorf(
				"%w: zone %s has over %d entries at key %d",
				ErrBandExhausted, zone.ID, collisionBand, nominal,
			)
		}
	}
	if key != nominal {
		entry.Coordinate.SetKey(key)
		a.Bumps++
	}

	bucket.keys[key] = struct{}{}
	bucket.Entries = append(bucket.Entries, entry)
	return nil
}

// Buckets returns the zone buckets in insertion-independent (map) order,
// emission sorts them, see Serialize.
func (a *Aggregate) Buckets() []*ZoneBucket {
	out := make([]*ZoneBucket, 0, len(a.buckets))
	for _, b := range a.buckets {
		out = append(out, b)
	}
	return out
}

func (a *Aggregate) EntryCount() int {
	n := 0
	for _, b := range a.buckets {
		n += len(b.Entries)
	}
	return n
}

func (a *Aggregate) ZoneCount() int {
	return len(a.buckets)
}
