package bookstore_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestModuleDependencies_MongoDriverPresent(t *testing.T) {
	testModulePresence(t, "go.mongodb.org/mongo-driver")
}

func TestModuleDependencies_GormPresent(t *testing.T) {
	testModulePresence(t, "gorm.io/gorm")
}

func TestModuleDependencies_OpenTelemetryPresent(t *testing.T) {
	testModulePresence(t, "go.opentelemetry.io/otel/sdk")
}

func TestModuleDependencies_KoanfPresent(t *testing.T) {
	testModulePresence(t, "github.com/knadh/koanf/v2")
}

func TestImports_NoRetiredPackages(t *testing.T) {
	retired := []string{
		"github.com/simp-lee/ginx",
		"github.com/simp-lee/jwt",
		"github.com/simp-lee/rbac",
		"github.com/simp-lee/pagination",
	}

	t.Run("happy_repo_has_no_retired_imports", func(t *testing.T) {
		matches, err := findRetiredImports(".", retired)
		if err != nil {
			t.Fatalf("scan repository: %v", err)
		}
		if len(matches) != 0 {
			t.Fatalf("expected no retired imports, found in: %v", matches)
		}
	})

	t.Run("error_fixture_with_retired_import_is_detected", func(t *testing.T) {
		fixture := `package pkg

import "github.com/simp-lee/ginx"`
		if !hasRetiredImport(fixture, retired) {
			t.Fatal("expected retired import to be detected in fixture")
		}
	})
}

func testModulePresence(t *testing.T, module string) {
	t.Helper()

	t.Run("happy_present_in_real_go_mod", func(t *testing.T) {
		goMod, err := os.ReadFile("go.mod")
		if err != nil {
			t.Fatalf("read go.mod: %v", err)
		}
		if !moduleRequired(string(goMod), module) {
			t.Fatalf("expected module %q to be present in go.mod", module)
		}
	})

	t.Run("error_missing_module_in_fixture", func(t *testing.T) {
		fixture := `module example.com/demo

go 1.25.0

require (
	github.com/gin-gonic/gin v1.11.0
)`
		if moduleRequired(fixture, module) {
			t.Fatalf("expected fixture to not contain module %q", module)
		}
	})
}

func moduleRequired(goModContent, module string) bool {
	re := regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(module) + `\s+v\S+`)
	return re.MatchString(goModContent)
}

func findRetiredImports(root string, retired []string) ([]string, error) {
	matches := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		b, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		if hasRetiredImport(string(b), retired) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func hasRetiredImport(content string, retired []string) bool {
	for _, module := range retired {
		if strings.Contains(content, `"`+module) {
			return true
		}
	}
	return false
}
