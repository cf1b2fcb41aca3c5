package gatherdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"gathergen/lib/scrapers/wowhead"
	"gathergen/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const objectPage = `<!DOCTYPE html>
<html>
<head>
<meta property="og:title" content="Khadgar&#39;s Whisker">
</head>
<body>
<script>var g_mapperData = {"331":[{"count":3,"coords":[[55.2,38.4],[55.2,38.4],[61.73,84.2]]}],"405":[{"count":1,"coords":[[42,17.8]]}],"718":[{"count":1,"coords":[[10.1,20.2]]}]};</script>
<a href="#" onclick="
    myMapper.update({
        zone: 331,
        level: 0,
    });
    WH.setSelectedLink(this, 'mapper');
    return false;
" onmousedown="return false">Ashenvale</a>
<a href="#" onclick="
    myMapper.update({
        zone: 405,
        level: 0,
    });
    WH.setSelectedLink(this, 'mapper');
    return false;
" onmousedown="return false">Desolace</a>
<a href="#" onclick="
    myMapper.update({
        zone: 718,
        level: 0,
    });
    WH.setSelectedLink(this, 'mapper');
    return false;
" onmousedown="return false">Wailing Caverns</a>
</body>
</html>`

const emptyObjectPage = `<!DOCTYPE html>
<html>
<head><meta property="og:title" content="Swiftthistle"></head>
<body><p>no mapper here</p></body>
</html>`

func testGenerator(t *testing.T) Generator {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/object=2043":
			w.Write([]byte(objectPage))
		case "/object=9999":
			w.Write([]byte(emptyObjectPage))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	client, err := wowhead.NewClient(wowhead.ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	return Generator{
		Zones:  testZoneTable(),
		Client: client,
		Catalog: Catalog{
			CategoryHerb: []CatalogObject{
				{Name: "Khadgar's Whisker", ObjectIDs: []string{"2043"}, GatherID: "415"},
				{Name: "Swiftthistle", ObjectIDs: []string{"9999"}, GatherID: "406"},
			},
		},
	}
}

func TestGenerateCategory(t *testing.T) {
	defer telemetry.SetupForTesting("services/gatherdata")()

	generator := testGenerator(t)
	aggregate, stats, err := generator.GenerateCategory(context.Background(), CategoryHerb)
	require.NoError(t, err)

	// zone 718 is suppressed, only the two mapped zones survive
	require.Equal(t, 2, stats.Objects)
	require.Equal(t, 1, stats.NoLocations)
	require.Equal(t, 2, stats.Zones)
	require.Equal(t, 4, stats.Entries)
	require.Equal(t, 1, stats.Bumps)

	want := "GatherMate2HerbDB = {\n" +
		"\t[63] = {\n" +
		"\t\t[5520384000] = 415,\n" +
		"\t\t[5520384001] = 415,\n" +
		"\t\t[6173842000] = 415,\n" +
		"\t},\n" +
		"\t[66] = {\n" +
		"\t\t[4200178000] = 415,\n" +
		"\t},\n" +
		"}"
	if diff := cmp.Diff(want, Serialize(aggregate)); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestGenerateCategoryFetchFailure(t *testing.T) {
	defer telemetry.SetupForTesting("services/gatherdata")()

	generator := testGenerator(t)
	generator.Catalog = Catalog{
		CategoryHerb: []CatalogObject{
			{Name: "Missing", ObjectIDs: []string{"404404"}, GatherID: "499"},
		},
	}

	_, _, err := generator.GenerateCategory(context.Background(), CategoryHerb)
	require.Error(t, err)
}

func TestGenerateAllWritesArtifacts(t *testing.T) {
	defer telemetry.SetupForTesting("services/gatherdata")()

	generator := testGenerator(t)
	dir := t.TempDir()

	stats, err := generator.GenerateAll(context.Background(), []Category{CategoryHerb}, dir)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	raw, err := os.ReadFile(filepath.Join(dir, "Mined_HerbalismData.lua"))
	require.NoError(t, err)

	contents := string(raw)
	require.True(t, len(contents) > 0 && contents[len(contents)-1] == '\n')
	require.Contains(t, contents, "GatherMate2HerbDB = {")
	require.Contains(t, contents, "[5520384000] = 415,")
}
