package gatherdata

import (
	"context"
	"embed"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/titanous/json5"
)

// Zone is an internal named region of the game world. ID is the UiMap
// id the addon indexes its database with, a small numeric string.
type Zone struct {
	Name string
	ID   string
}

// ZoneTable maps wowhead's zone ids onto internal zones. It is built
// once at startup and passed around explicitly, resolution never
// mutates it.
type ZoneTable struct {
	zones      map[string]Zone
	suppressed map[string]struct{}
}

func NewZoneTable(zones map[string]Zone, suppressed []string) ZoneTable {
	t := ZoneTable{
		zones:      zones,
		suppressed: make(map[string]struct{}, len(suppressed)),
	}
	for _, id := range suppressed {
		t.suppressed[id] = struct{}{}
	}
	return t
}

// Resolve maps an external zone id to its internal zone. Suppressed
// ids (dungeons, delves, raids...) are dropped without noise; an id
// that is neither mapped nor suppressed might be a newly added zone,
// so it is logged before being dropped.
func (t ZoneTable) Resolve(ctx context.Context, externalID string) (Zone, bool) {
	zone, ok := t.zones[externalID]
	if ok {
		return zone, true
	}
	if _, suppress := t.suppressed[externalID]; !suppress {
		slog.WarnContext(ctx, "found unlisted zone", "external_id", externalID)
	}
	return Zone{}, false
}

// All returns a copy of the external id -> zone mapping, for listings.
func (t ZoneTable) All() map[string]Zone {
	out := make(map[string]Zone, len(t.zones))
	for externalID, zone := range t.zones {
		out[externalID] = zone
	}
	return out
}

// VerifyName compares the zone display name scraped off the page with
// the configured one. The configured name stays authoritative either
// way; the similarity score separates likely renames from data-entry
// typos when triaging the log.
func (t ZoneTable) VerifyName(ctx context.Context, externalID, scrapedName string) {
	if scrapedName == "" {
		return
	}
	zone, ok := t.zones[externalID]
	if !ok || zone.Name == scrapedName {
		return
	}

	similarity := matchr.JaroWinkler(zone.Name, scrapedName, false)
	slog.WarnContext(
		ctx, "zone name mismatch",
		"external_id", externalID,
		"configured", zone.Name,
		"scraped", scrapedName,
		"similarity", fmt.Sprintf("%.2f", similarity),
	)
}

//go:embed data/zones.json5 data/suppressed_zones.json5 data/uimap.csv
var zoneData embed.FS

type zoneConfigEntry struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// LoadDefaultZoneTable builds the zone table from the checked-in data
// files and cross-checks every configured zone name against the UiMap
// export. A disagreement means the game renamed a zone (or someone
// fat-fingered the table) and is logged, the table loads anyway.
func LoadDefaultZoneTable(ctx context.Context) (ZoneTable, error) {
	rawZones, err := zoneData.ReadFile("data/zones.json5")
	if err != nil {
		return ZoneTable{}, err
	}
	var zoneConfig map[string]zoneConfigEntry
	err = json5.Unmarshal(rawZones, &zoneConfig)
	if err != nil {
		return ZoneTable{}, fmt.Errorf("unmarshal zones.json5: %w", err)
	}

	rawSuppressed, err := zoneData.ReadFile("data/suppressed_zones.json5")
	if err != nil {
		return ZoneTable{}, err
	}
	var suppressed []string
	err = json5.Unmarshal(rawSuppressed, &suppressed)
	if err != nil {
		return ZoneTable{}, fmt.Errorf("unmarshal suppressed_zones.json5: %w", err)
	}

	uimap, err := loadUiMap()
	if err != nil {
		return ZoneTable{}, err
	}

	zones := make(map[string]Zone, len(zoneConfig))
	for externalID, entry := range zoneConfig {
		if known, ok := uimap[entry.ID]; ok && known != entry.Name {
			slog.WarnContext(
				ctx, "uimap id <> name mismatch",
				"internal_id", entry.ID,
				"configured", entry.Name,
				"uimap", known,
			)
		}
		zones[externalID] = Zone{Name: entry.Name, ID: entry.ID}
	}

	return NewZoneTable(zones, suppressed), nil
}

// the uimap export is a two column csv: name,id
func loadUiMap() (map[string]string, error) {
	raw, err := zoneData.ReadFile("data/uimap.csv")
	if err != nil {
		return nil, err
	}
	rows, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse uimap.csv: %w", err)
	}

	uimap := make(map[string]string, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		uimap[row[1]] = row[0]
	}
	return uimap, nil
}
