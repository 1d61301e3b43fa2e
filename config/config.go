package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all site and content API settings. Values come from the
// environment, optionally seeded from a .env file in the working
// directory.
type Config struct {
	APIBaseURL  string // Content API root, e.g. https://cms.example.com/api/v2
	AccessToken string // API access token, empty for public repositories
	DocType     string // Content type tag queried for posts (default "posts")
	PageSize    int    // Listing page size (default 20)

	Addr            string // Listen address (default ":8080")
	SiteName        string // Site title (default "spacetraveling")
	SiteURL         string // Canonical URL (default "http://localhost:8080")
	SiteDescription string // Description for RSS and meta tags
	CommentsRepo    string // GitHub repo for the utterances comment widget

	SessionKey string // Secret for the preview session cookie; preview routes need it

	CachePath string        // Badger cache directory (default "data/cache")
	CacheTTL  time.Duration // Cached response lifetime (default 5min)
}

// Load reads the configuration from the environment. A missing .env
// file is not an error; a missing CMS_API_URL is.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cnf := &Config{
		APIBaseURL:      os.Getenv("CMS_API_URL"),
		AccessToken:     os.Getenv("CMS_ACCESS_TOKEN"),
		DocType:         os.Getenv("CMS_DOC_TYPE"),
		Addr:            os.Getenv("SITE_ADDR"),
		SiteName:        os.Getenv("SITE_NAME"),
		SiteURL:         os.Getenv("SITE_URL"),
		SiteDescription: os.Getenv("SITE_DESCRIPTION"),
		CommentsRepo:    os.Getenv("COMMENTS_REPO"),
		SessionKey:      os.Getenv("SESSION_KEY"),
		CachePath:       os.Getenv("CACHE_PATH"),
	}

	if v := os.Getenv("PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, errors.New("config: PAGE_SIZE must be a positive integer")
		}
		cnf.PageSize = n
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, errors.New("config: CACHE_TTL must be a duration like 5m")
		}
		cnf.CacheTTL = d
	}

	cnf.setDefaults()

	if cnf.APIBaseURL == "" {
		return nil, errors.New("config: CMS_API_URL is required")
	}

	return cnf, nil
}

func (c *Config) setDefaults() {
	if c.DocType == "" {
		c.DocType = "posts"
	}
	if c.PageSize == 0 {
		c.PageSize = 20
	}
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.SiteName == "" {
		c.SiteName = "spacetraveling"
	}
	if c.SiteURL == "" {
		c.SiteURL = "http://localhost:8080"
	}
	if c.CachePath == "" {
		c.CachePath = "data/cache"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
}
