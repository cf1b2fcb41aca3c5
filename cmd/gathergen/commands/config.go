package commands

import (
	"time"

	"gathergen/lib/configutil"
	"gathergen/lib/pagecache"
	"gathergen/lib/serviceutil"
)

type Config struct {
	// directory the Mined_*.lua files are written into
	OutputDir string `json:"output_dir"`
	// overrides the scrape target, mainly for testing against a mirror
	BaseUrl string `json:"base_url"`
	// sqlite file (or libsql url) the page cache lives in, empty
	// disables caching
	CachePath string `json:"cache_path"`
	// cached pages older than this are refetched
	CacheMaxAgeHours int `json:"cache_max_age_hours"`
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.CacheMaxAgeHours <= 0 {
		cfg.CacheMaxAgeHours = 24 * 7
	}
	return cfg
}

func openCache(cfg Config) *pagecache.Cache {
	if cfg.CachePath == "" {
		return nil
	}
	database, err := pagecache.OpenDB(cfg.CachePath)
	if err != nil {
		serviceutil.Fatal("failed to open page cache", err)
	}
	cache := pagecache.NewCache(database, time.Duration(cfg.CacheMaxAgeHours)*time.Hour)
	return &cache
}
