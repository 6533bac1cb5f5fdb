// Package main provides a CLI for querying and maintaining plan catalogs.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"plan-engine/internal/catalog"
	"plan-engine/internal/catalogsource"
	"plan-engine/internal/engine"
	"plan-engine/internal/lint"
	"plan-engine/internal/model"
	"plan-engine/internal/picks"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	switch args[0] {
	case "options", "validate", "price":
		return handleQuery(ctx, args[0], args[1:], stdout, stderr)
	case "lint":
		return handleLint(ctx, args[1:], stdout, stderr)
	case "publish":
		return handlePublish(ctx, args[1:], stdout, stderr)
	default:
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "planctl - health plan eligibility and pricing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  planctl options  [-catalog file] dimension=value ...")
	fmt.Fprintln(w, "  planctl validate [-catalog file] dimension=value ...")
	fmt.Fprintln(w, "  planctl price    [-catalog file] dimension=value ...")
	fmt.Fprintln(w, "  planctl lint     [-catalog file]")
	fmt.Fprintln(w, "  planctl publish  -file catalog.yaml [-driver sqlite|postgres] [-dsn path] [-name default]")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Dimensions: %v\n", picks.Dimensions())
	fmt.Fprintln(w, "Without -catalog the PLAN_CATALOG_* environment selects the catalog.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  planctl options branch=sao-jose-dos-campos")
	fmt.Fprintln(w, "  planctl price branch=campinas contract_type=pme-30-99 coparticipation=sem product=smart-500 age_bracket=59+")
}

func loadDocument(ctx context.Context, path string) ([]byte, catalog.Format, error) {
	cfg := catalogsource.ConfigFromEnv()
	if path != "" {
		cfg = catalogsource.Config{Driver: catalogsource.DriverFile, Path: path}
	}
	return catalogsource.Fetch(ctx, cfg)
}

func handleQuery(ctx context.Context, cmd string, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	catalogPath := fs.String("catalog", "", "Catalog document (json, yaml or cue)")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	var ps []model.Pick
	for _, arg := range fs.Args() {
		p, err := picks.ParseArg(arg)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		ps = append(ps, p)
	}
	sel, err := picks.Build(ps)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	data, format, err := loadDocument(ctx, *catalogPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading catalog: %v\n", err)
		return 1
	}
	c, err := catalog.Parse(data, format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	e := engine.New(c)

	var out any
	code := 0
	switch cmd {
	case "options":
		out = e.AllowedOptions(sel)
	case "validate":
		res := e.ValidateSelection(sel)
		if !res.Valid {
			code = 1
		}
		out = res
	case "price":
		q, err := e.Quote(sel)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if q.Status != model.QuotePriced {
			code = 1
		}
		out = q
	}
	if err := writeJSON(stdout, out); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return code
}

func handleLint(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	catalogPath := fs.String("catalog", "", "Catalog document (json, yaml or cue)")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	data, format, err := loadDocument(ctx, *catalogPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading catalog: %v\n", err)
		return 1
	}
	result, err := lint.RunDocument(data, format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := writeJSON(stdout, result); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if !result.Valid {
		return 1
	}
	return 0
}

func handlePublish(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("publish", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("file", "", "Catalog document to publish")
	driver := fs.String("driver", string(catalogsource.DriverSQLite), "Store driver: sqlite or postgres")
	dsn := fs.String("dsn", "", "SQLite path or Postgres DSN (defaults to the PLAN_CATALOG_* environment)")
	name := fs.String("name", "default", "Document name")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *file == "" {
		fmt.Fprintln(stderr, "Error: -file is required")
		return 1
	}

	d := catalogsource.Driver(*driver)
	if *dsn == "" {
		env := catalogsource.ConfigFromEnv()
		*dsn = env.SQLitePath
		if d == catalogsource.DriverPostgres {
			*dsn = env.PostgresDSN
		}
	}
	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading catalog: %v\n", err)
		return 1
	}

	store, err := catalogsource.OpenStore(ctx, d, *dsn)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer store.Close()

	c, err := store.Publish(ctx, *name, catalog.FormatFromPath(*file), data)
	if err != nil {
		fmt.Fprintf(stderr, "Publish failed: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "published %s as %q (%d prices)\n", c.Version(), *name, c.PriceCount())
	return 0
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
