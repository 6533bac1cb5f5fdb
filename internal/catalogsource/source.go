// Package catalogsource loads the catalog the service starts with. The
// driver is picked from the environment:
//
//	PLAN_CATALOG_SOURCE: embedded|file|http|sqlite|postgres|s3 (default embedded)
//	PLAN_CATALOG_FORMAT: json|yaml|cue, overrides the detected format
//	PLAN_CATALOG_PATH: document path when source=file
//	PLAN_CATALOG_URL: document URL when source=http
//	PLAN_CATALOG_SQLITE_PATH: database file when source=sqlite (default catalog.db)
//	PLAN_CATALOG_POSTGRES_DSN: connection string when source=postgres
//	PLAN_CATALOG_NAME: catalog_documents row for the SQL sources (default "default")
//	(S3 variables documented in s3.go)
package catalogsource

import (
	"context"
	"fmt"
	"os"
	"strings"

	"plan-engine/internal/catalog"
)

type Driver string

const (
	DriverEmbedded Driver = "embedded"
	DriverFile     Driver = "file"
	DriverHTTP     Driver = "http"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverS3       Driver = "s3"
)

const defaultName = "default"

// Config says where the catalog document lives.
type Config struct {
	Driver      Driver
	Format      string // empty: detect from path, extension or content type
	Path        string
	URL         string
	SQLitePath  string
	PostgresDSN string
	Name        string
	S3          S3Config
}

// ConfigFromEnv reads the PLAN_CATALOG_* variables.
func ConfigFromEnv() Config {
	cfg := Config{
		Driver:      Driver(strings.ToLower(os.Getenv("PLAN_CATALOG_SOURCE"))),
		Format:      os.Getenv("PLAN_CATALOG_FORMAT"),
		Path:        os.Getenv("PLAN_CATALOG_PATH"),
		URL:         os.Getenv("PLAN_CATALOG_URL"),
		SQLitePath:  os.Getenv("PLAN_CATALOG_SQLITE_PATH"),
		PostgresDSN: os.Getenv("PLAN_CATALOG_POSTGRES_DSN"),
		Name:        os.Getenv("PLAN_CATALOG_NAME"),
		S3:          s3ConfigFromEnv(),
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverEmbedded
	}
	return cfg
}

// Load fetches the document described by cfg and builds it.
func Load(ctx context.Context, cfg Config) (*catalog.Catalog, error) {
	data, format, err := Fetch(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c, err := catalog.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s catalog: %w", cfg.Driver, err)
	}
	return c, nil
}

// Fetch returns the raw document and its format without building it.
func Fetch(ctx context.Context, cfg Config) ([]byte, catalog.Format, error) {
	var (
		data   []byte
		format catalog.Format
		err    error
	)
	switch cfg.Driver {
	case DriverEmbedded, "":
		data, format = catalog.DefaultDocument(), catalog.FormatJSON
	case DriverFile:
		data, format, err = readFile(cfg.Path)
	case DriverHTTP:
		data, format, err = fetchHTTP(ctx, cfg.URL)
	case DriverSQLite:
		data, format, err = fetchSQLite(ctx, cfg.SQLitePath, cfg.name())
	case DriverPostgres:
		data, format, err = fetchPostgres(ctx, cfg.PostgresDSN, cfg.name())
	case DriverS3:
		data, format, err = fetchS3(ctx, cfg.S3)
	default:
		return nil, "", fmt.Errorf("unknown catalog source %q", cfg.Driver)
	}
	if err != nil {
		return nil, "", err
	}
	if cfg.Format != "" {
		if format, err = catalog.ParseFormat(cfg.Format); err != nil {
			return nil, "", err
		}
	}
	return data, format, nil
}

func (c Config) name() string {
	if c.Name == "" {
		return defaultName
	}
	return c.Name
}

func readFile(path string) ([]byte, catalog.Format, error) {
	if path == "" {
		return nil, "", fmt.Errorf("PLAN_CATALOG_PATH required for file source")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read catalog: %w", err)
	}
	return data, catalog.FormatFromPath(path), nil
}
