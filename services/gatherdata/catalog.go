package gatherdata

import (
	"embed"
	"fmt"

	"github.com/titanous/json5"
)

// Category is one gatherable-object class, aggregated and emitted as
// an independent run.
type Category string

const (
	CategoryHerb     Category = "Herb"
	CategoryMine     Category = "Mine"
	CategoryFish     Category = "Fish"
	CategoryTreasure Category = "Treasure"
)

// treasure data exists but wowhead's treasure pages stopped carrying
// usable mapper data, so the category is out of the default run.
func DefaultCategories() []Category {
	return []Category{CategoryHerb, CategoryMine, CategoryFish}
}

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryHerb, CategoryMine, CategoryFish, CategoryTreasure:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q (want Herb, Mine, Fish or Treasure)", s)
}

// ArtifactName is the file the addon expects this category's table in.
func (c Category) ArtifactName() string {
	switch c {
	case CategoryHerb:
		return "Mined_HerbalismData.lua"
	case CategoryMine:
		return "Mined_MiningData.lua"
	case CategoryFish:
		return "Mined_FishData.lua"
	case CategoryTreasure:
		return "Mined_TreasureData.lua"
	}
	return fmt.Sprintf("Mined_%sData.lua", c)
}

// CatalogObject is one gatherable object to scrape. An object can have
// several wowhead ids (horde/alliance variants, re-used models across
// expansions) that all map to one GatherMate node id.
type CatalogObject struct {
	Name      string   `json:"name"`
	ObjectIDs []string `json:"object_ids"`
	GatherID  string   `json:"gather_id"`
}

type Catalog map[Category][]CatalogObject

//go:embed data/herbs.json5 data/ores.json5 data/fish.json5 data/treasures.json5
var catalogData embed.FS

var catalogFiles = map[Category]string{
	CategoryHerb:     "data/herbs.json5",
	CategoryMine:     "data/ores.json5",
	CategoryFish:     "data/fish.json5",
	CategoryTreasure: "data/treasures.json5",
}

func LoadDefaultCatalog() (Catalog, error) {
	catalog := Catalog{}
	for category, file := range catalogFiles {
		raw, err := catalogData.ReadFile(file)
		if err != nil {
			return nil, err
		}
		var objects []CatalogObject
		err = json5.Unmarshal(raw, &objects)
		if err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", file, err)
		}
		catalog[category] = objects
	}
	return catalog, nil
}
