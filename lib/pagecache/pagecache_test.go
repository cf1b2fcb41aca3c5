package pagecache

import (
	"context"
	"testing"
	"time"

	"gathergen/lib/pagecache/db"
	"gathergen/lib/telemetry"
	"gathergen/lib/testutil"

	"github.com/stretchr/testify/require"
)

func TestCacheRoundtrip(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "pagecache",
		DbSchema: db.Schema,
	})
	defer cleanup()
	defer res.DB.Close()

	cache := NewCache(res.DB, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	_, ok := cache.Get(ctx, "https://www.wowhead.com/object=1618")
	require.False(t, ok)

	err := cache.Put(ctx, "https://www.wowhead.com/object=1618", []byte("<html>peacebloom</html>"))
	if err != nil {
		t.Fatal(err)
	}

	body, ok := cache.Get(ctx, "https://www.wowhead.com/object=1618")
	require.True(t, ok)
	require.Equal(t, []byte("<html>peacebloom</html>"), body)

	// overwrite keeps the latest body
	err = cache.Put(ctx, "https://www.wowhead.com/object=1618", []byte("v2"))
	if err != nil {
		t.Fatal(err)
	}
	body, ok = cache.Get(ctx, "https://www.wowhead.com/object=1618")
	require.True(t, ok)
	require.Equal(t, []byte("v2"), body)
}

func TestCacheExpiry(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:pagecache")
	defer cleanup()

	sqldb, err := OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer sqldb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	cache := NewCache(sqldb, time.Minute)
	err = cache.Put(ctx, "https://www.wowhead.com/object=1732", []byte("tin vein"))
	if err != nil {
		t.Fatal(err)
	}

	// backdate the entry past the max age
	_, err = sqldb.ExecContext(
		ctx,
		"UPDATE page SET fetched_at = ?",
		time.Now().Add(-time.Hour).Unix(),
	)
	if err != nil {
		t.Fatal(err)
	}

	_, ok := cache.Get(ctx, "https://www.wowhead.com/object=1732")
	require.False(t, ok)

	purged, err := cache.Purge(ctx)
	if err != nil {
		t.Fatal(err)
	}
	require.EqualValues(t, 1, purged)
}
