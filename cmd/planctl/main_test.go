package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"plan-engine/internal/catalog"
	"plan-engine/internal/model"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("PLAN_CATALOG_SOURCE", "")
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestOptions(t *testing.T) {
	code, out, errOut := runCLI(t, "options", "branch=sao-jose-dos-campos")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut)
	}
	var opts model.AllowedOptions
	if err := json.Unmarshal([]byte(out), &opts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(opts.ContractTypes) != 2 {
		t.Fatalf("expected 2 contract types, got %v", opts.ContractTypes)
	}
}

func TestValidateExitCode(t *testing.T) {
	code, out, _ := runCLI(t, "validate", "branch=campinas", "price_table=1")
	if code != 1 {
		t.Fatalf("expected exit 1 for an invalid selection, got %d", code)
	}
	if !strings.Contains(out, "INVALID_BRANCH_TABLE") {
		t.Fatalf("expected INVALID_BRANCH_TABLE, got %s", out)
	}
}

func TestPrice(t *testing.T) {
	code, out, errOut := runCLI(t, "price",
		"branch=campinas", "contract_type=pme-30-99", "coparticipation=sem", "product=smart-500", "age_bracket=59+")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut)
	}
	var q model.Quote
	if err := json.Unmarshal([]byte(out), &q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if q.Lookup == nil || q.Lookup.Price.String() != "1089.9" || q.Lookup.OverrideID != "campinas-smart-500-59-plus" {
		t.Fatalf("expected the campinas override, got %+v", q.Lookup)
	}

	code, _, errOut = runCLI(t, "price", "branch=campinas")
	if code != 1 || !strings.Contains(errOut, "incomplete selection") {
		t.Fatalf("expected an incomplete selection error, got %d %s", code, errOut)
	}
}

func TestBadArguments(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"frobnicate"},
		{"options", "colour=red"},
		{"options", "-catalog", "/does/not/exist.json"},
		{"publish"},
	} {
		if code, _, _ := runCLI(t, args...); code != 1 {
			t.Fatalf("expected exit 1 for %v, got %d", args, code)
		}
	}
}

func TestLintAndPublish(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(file, catalog.DefaultDocument(), 0o600); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runCLI(t, "lint", "-catalog", file)
	if code != 0 {
		t.Fatalf("expected a clean lint, got %d: %s %s", code, out, errOut)
	}

	db := filepath.Join(dir, "catalog.db")
	code, out, errOut = runCLI(t, "publish", "-file", file, "-dsn", db, "-name", "sp")
	if code != 0 {
		t.Fatalf("expected publish to succeed, got %d: %s", code, errOut)
	}
	if !strings.Contains(out, `published 2024.09-sp as "sp"`) {
		t.Fatalf("unexpected publish output %q", out)
	}

	t.Setenv("PLAN_CATALOG_SOURCE", "sqlite")
	t.Setenv("PLAN_CATALOG_SQLITE_PATH", db)
	t.Setenv("PLAN_CATALOG_NAME", "sp")
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"options", "branch=santos"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected options from the sqlite catalog, got %d: %s", code, stderr.String())
	}

	broken := filepath.Join(dir, "broken.json")
	doc := strings.Replace(string(catalog.DefaultDocument()), `"min_lives": 30`, `"min_lives": 300`, 1)
	if err := os.WriteFile(broken, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	code, out, _ = runCLI(t, "lint", "-catalog", broken)
	if code != 1 || !strings.Contains(out, "INTEGRITY") {
		t.Fatalf("expected integrity issues, got %d %s", code, out)
	}
}
