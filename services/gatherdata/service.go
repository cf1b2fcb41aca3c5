package gatherdata

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"gathergen/lib/scrapers/wowhead"

	"github.com/antzucaro/matchr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/gatherdata")

// Generator runs the scrape -> aggregate -> serialize pipeline for the
// configured catalog. It is a plain batch pass, one category at a time,
// one object page at a time.
type Generator struct {
	Zones   ZoneTable
	Catalog Catalog
	Client  *wowhead.Client
}

// CategoryStats summarizes one category run for the end-of-run report.
type CategoryStats struct {
	Category    Category
	Objects     int
	NoLocations int
	Zones       int
	Entries     int
	Bumps       int
}

// GenerateCategory scrapes every object of the category and aggregates
// its coordinate samples. Name mismatches, unmapped zones and objects
// without location data are logged and skipped; fetch failures and
// collision-band exhaustion abort the run.
func (g Generator) GenerateCategory(ctx context.Context, category Category) (*Aggregate, CategoryStats, error) {
	ctx, span := tracer.Start(ctx, "generator:GenerateCategory")
	defer span.End()
	span.SetAttributes(attribute.String("category", string(category)))

	objects := g.Catalog[category]
	aggregate := NewAggregate(string(category))
	stats := CategoryStats{Category: category, Objects: len(objects)}

	for _, object := range objects {
		hadLocations, err := g.scrapeObject(ctx, aggregate, object)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "category run aborted")
			return nil, stats, err
		}
		if !hadLocations {
			stats.NoLocations++
		}
	}

	stats.Zones = aggregate.ZoneCount()
	stats.Entries = aggregate.EntryCount()
	stats.Bumps = aggregate.Bumps
	return aggregate, stats, nil
}

func (g Generator) scrapeObject(ctx context.Context, aggregate *Aggregate, object CatalogObject) (bool, error) {
	ctx, span := tracer.Start(ctx, "generator:scrapeObject")
	defer span.End()
	span.SetAttributes(attribute.String("object", object.Name))

	title := ""
	hadLocations := false

	for _, objectId := range object.ObjectIDs {
		page, err := g.Client.FetchObject(ctx, objectId)
		if err != nil {
			return hadLocations, fmt.Errorf("fetch object %s (%s): %w", objectId, object.Name, err)
		}
		if page.Title != "" {
			title = page.Title
		}

		if page.Locations == nil {
			slog.InfoContext(
				ctx, "no locations for object",
				"object_id", objectId,
				"name", object.Name,
			)
			continue
		}
		hadLocations = true

		// map order is randomized, keep runs reproducible
		externalIDs := make([]string, 0, len(page.Locations))
		for externalID := range page.Locations {
			externalIDs = append(externalIDs, externalID)
		}
		slices.Sort(externalIDs)

		for _, externalID := range externalIDs {
			zone, ok := g.Zones.Resolve(ctx, externalID)
			if !ok {
				continue
			}
			g.Zones.VerifyName(ctx, externalID, page.ZoneNames[externalID])

			for _, location := range page.Locations[externalID] {
				err := aggregate.Add(zone, Entry{
					Coordinate: NewCoordinate(location.X, location.Y),
					ID:         object.GatherID,
				})
				if err != nil {
					return hadLocations, err
				}
			}
		}
	}

	if title != "" && title != object.Name {
		slog.WarnContext(
			ctx, "finished processing object, but name mismatched",
			"configured", object.Name,
			"scraped", title,
			"similarity", fmt.Sprintf("%.2f", matchr.JaroWinkler(object.Name, title, false)),
		)
	} else {
		slog.InfoContext(ctx, "finished processing object", "name", object.Name)
	}
	return hadLocations, nil
}

// WriteArtifact serializes the aggregate into the category's lua data
// file under `dir`. The trailing newline matches what the addon repo
// has always carried.
func WriteArtifact(dir string, category Category, aggregate *Aggregate) error {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, category.ArtifactName())
	return os.WriteFile(path, []byte(Serialize(aggregate)+"\n"), 0644)
}

// GenerateAll runs every requested category and writes its artifact.
func (g Generator) GenerateAll(ctx context.Context, categories []Category, outputDir string) ([]CategoryStats, error) {
	ctx, span := tracer.Start(ctx, "generator:GenerateAll")
	defer span.End()

	var allStats []CategoryStats
	for _, category := range categories {
		aggregate, stats, err := g.GenerateCategory(ctx, category)
		if err != nil {
			return allStats, err
		}
		err = WriteArtifact(outputDir, category, aggregate)
		if err != nil {
			return allStats, fmt.Errorf("write %s: %w", category.ArtifactName(), err)
		}
		slog.InfoContext(
			ctx, "wrote category artifact",
			"category", category,
			"file", category.ArtifactName(),
			"zones", stats.Zones,
			"entries", stats.Entries,
		)
		allStats = append(allStats, stats)
	}
	return allStats, nil
}
