// Package testutil holds test helpers that keep package layering honest.
package testutil

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// AssertNoDirectImports fails when a non-test .go file in dir imports a path
// matched by forbidden. Build tags are not evaluated.
func AssertNoDirectImports(t testing.TB, dir string, forbidden func(importPath string) bool, reason string) {
	t.Helper()
	viols, err := directImportViolations(dir, forbidden)
	if err != nil {
		t.Fatalf("scan %s: %v", dir, err)
	}
	failIfViolations(t, reason, viols)
}

// InternalImport matches any package under opsdesk/internal.
func InternalImport(path string) bool {
	return strings.HasPrefix(path, "opsdesk/internal/")
}

// StorageImport matches persistence, blob and database driver packages.
// Derivation packages (occupancy, kpi, listview, workflow) must stay free of them.
func StorageImport(path string) bool {
	switch {
	case strings.HasPrefix(path, "opsdesk/internal/infra/"),
		strings.HasPrefix(path, "opsdesk/internal/blob"),
		path == "database/sql",
		strings.HasPrefix(path, "github.com/jackc/pgx"),
		strings.HasPrefix(path, "github.com/aws/"),
		strings.HasPrefix(path, "gorm.io/"),
		strings.HasPrefix(path, "modernc.org/sqlite"),
		strings.HasPrefix(path, "github.com/go-sql-driver/"):
		return true
	}
	return false
}

func directImportViolations(dir string, forbidden func(importPath string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	var viols []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		file, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ImportsOnly)
		if err != nil {
			return nil, err
		}
		for _, imp := range file.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			if err != nil {
				return nil, err
			}
			if forbidden(path) {
				viols = append(viols, path+" (in "+name+")")
			}
		}
	}
	return viols, nil
}

type fatalLogger interface {
	Fatalf(format string, args ...any)
}

func failIfViolations(t fatalLogger, reason string, viols []string) {
	if len(viols) > 0 {
		t.Fatalf("forbidden imports (%s):\n%s", reason, strings.Join(viols, "\n"))
	}
}
