package pagecache

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gathergen/lib/pagecache/db"
)

// Cache stores fetched pages so that reruns of the generator don't
// hammer the remote site. Entries older than maxAge are treated as
// misses and overwritten on the next Put.
type Cache struct {
	db     *sql.DB
	maxAge time.Duration
}

// opens (or creates) the cache database. `path` may be a plain file
// path, ":memory:", or a libsql url.
func OpenDB(path string) (*sql.DB, error) {
	driver := "sqlite"
	if strings.HasPrefix(path, "libsql://") {
		driver = "libsql"
	}
	sqldb, err := sql.Open(driver, path)
	if err != nil {
		return nil, err
	}
	_, err = sqldb.Exec(db.Schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		sqldb.Close()
		return nil, err
	}
	return sqldb, nil
}

func NewCache(database *sql.DB, maxAge time.Duration) Cache {
	return Cache{db: database, maxAge: maxAge}
}

// returns the cached body for `url`, or ok=false when there is no
// fresh entry. database errors degrade to a miss, the caller can
// always refetch.
func (c Cache) Get(ctx context.Context, url string) ([]byte, bool) {
	var body []byte
	var fetchedAt int64
	err := c.db.QueryRowContext(
		ctx,
		"SELECT body, fetched_at FROM page WHERE url = ?",
		url,
	).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		slog.WarnContext(ctx, "page cache read failed", "url", url, "err", err)
		return nil, false
	}

	if time.Since(time.Unix(fetchedAt, 0)) > c.maxAge {
		return nil, false
	}
	return body, true
}

func (c Cache) Put(ctx context.Context, url string, body []byte) error {
	_, err := c.db.ExecContext(
		ctx,
		`INSERT INTO page (url, fetched_at, body) VALUES (?, ?, ?)
		 ON CONFLICT (url) DO UPDATE SET fetched_at = excluded.fetched_at, body = excluded.body`,
		url, time.Now().Unix(), body,
	)
	return err
}

// drops every entry older than maxAge.
func (c Cache) Purge(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-c.maxAge).Unix()
	res, err := c.db.ExecContext(ctx, "DELETE FROM page WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
