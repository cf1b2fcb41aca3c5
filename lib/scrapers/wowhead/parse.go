package wowhead

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"regexp"

	"gathergen/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// one coordinate sample in percent-of-map units, usually 0-100 per axis.
type Location struct {
	X float64
	Y float64
}

type ObjectPage struct {
	// the canonical object name from the og:title meta tag
	Title string
	// external zone id -> zone display name, taken from the mapper links
	ZoneNames map[string]string
	// external zone id -> coordinate samples from the g_mapperData blob,
	// nil when the page carries no location data at all
	Locations map[string][]Location
}

var mapperDataRegex = regexp.MustCompile(`var g_mapperData = (.*);`)

var zoneLinkRegex = regexp.MustCompile(
	`(?m)myMapper\.update\(\{\s+zone: (\d+),\s+level: \d+,\s+\}\);\s+WH\.setSelectedLink\(this, 'mapper'\);\s+return false;\s+" onmousedown="return false">([^<]+)</a>`,
)

// the mapper blob is a json object keyed by external zone id, each zone
// holding a list of map levels. only the first level carries the pin
// coordinates we care about.
type mapperLevel struct {
	Coords [][]float64 `json:"coords"`
}

func ParseObjectPage(body []byte) (ObjectPage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ObjectPage{}, err
	}

	page := ObjectPage{
		Title:     html.UnescapeString(htmlutil.MetaProperty(doc, "og:title")),
		ZoneNames: map[string]string{},
	}

	for _, groups := range zoneLinkRegex.FindAllSubmatch(body, -1) {
		name := html.UnescapeString(string(groups[2]))
		page.ZoneNames[string(groups[1])] = htmlutil.CleanText(name)
	}

	blob := mapperDataRegex.FindSubmatch(body)
	if blob == nil {
		return page, nil
	}

	var mapperData map[string][]mapperLevel
	err = json.Unmarshal(blob[1], &mapperData)
	if err != nil {
		return ObjectPage{}, fmt.Errorf("unmarshal mapper data: %w", err)
	}

	page.Locations = map[string][]Location{}
	for zone, levels := range mapperData {
		if len(levels) == 0 || len(levels[0].Coords) == 0 {
			continue
		}
		var locations []Location
		for _, coord := range levels[0].Coords {
			if len(coord) < 2 {
				continue
			}
			locations = append(locations, Location{X: coord[0], Y: coord[1]})
		}
		page.Locations[zone] = locations
	}

	return page, nil
}
