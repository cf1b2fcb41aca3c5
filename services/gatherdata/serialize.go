package gatherdata

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Serialize renders the aggregate as the GatherMate2 lua data table:
//
//	GatherMate2HerbDB = {
//		[63] = {
//			[55203840200] = 415,
//		},
//	}
//
// zones are ordered by their numeric internal id, entries within a zone
// by coordinate key. keys are bare integers, the consumer indexes the
// table with numbers, not strings. serialization is pure, the same
// aggregate always renders to the same bytes.
func Serialize(a *Aggregate) string {
	buckets := a.Buckets()
	slices.SortFunc(buckets, func(x, y *ZoneBucket) int {
		return numericZoneID(x.Zone.ID) - numericZoneID(y.Zone.ID)
	})

	var out strings.Builder
	fmt.Fprintf(&out, "GatherMate2%sDB = {\n", a.Category)
	for _, bucket := range buckets {
		fmt.Fprintf(&out, "\t[%s] = {\n", bucket.Zone.ID)

		entries := slices.Clone(bucket.Entries)
		slices.SortFunc(entries, func(x, y Entry) int {
			kx := x.Coordinate.Key()
			ky := y.Coordinate.Key()
			if kx < ky {
				return -1
			}
			if kx > ky {
				return 1
			}
			return 0
		})
		for _, entry := range entries {
			fmt.Fprintf(&out, "\t\t[%d] = %s,\n", entry.Coordinate.Key(), entry.ID)
		}

		out.WriteString("\t},\n")
	}
	out.WriteString("}")
	return out.String()
}

// zone ids are numeric strings, "100" has to sort after "99".
func numericZoneID(id string) int {
	n, err := strconv.Atoi(id)
	if err != nil {
		// ids come from the checked-in zone table, a non-numeric one is
		// a data entry error; sort it first so it is visible in review
		return -1
	}
	return n
}
