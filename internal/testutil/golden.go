// Package testutil provides shared test helpers for Asura Go tests.
package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// Update rewrites golden files instead of comparing against them.
var Update = flag.Bool("update", false, "rewrite golden files")

// GoldenExt is the extension of a case's expected output.
const GoldenExt = ".tokens"

// Case is one source file with its golden output next to it.
type Case struct {
	Name   string
	Path   string
	Source string
}

// GoldenPath returns the golden file belonging to the case.
func (c Case) GoldenPath() string {
	return strings.TrimSuffix(c.Path, filepath.Ext(c.Path)) + GoldenExt
}

// ListCases returns every file under root with the given extension, sorted
// by name.
func ListCases(root, ext string) ([]Case, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var cases []Case
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext {
			continue
		}
		path := filepath.Join(root, e.Name())
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		cases = append(cases, Case{
			Name:   strings.TrimSuffix(e.Name(), ext),
			Path:   path,
			Source: string(source),
		})
	}
	sort.Slice(cases, func(i, j int) bool { return cases[i].Name < cases[j].Name })
	return cases, nil
}

// Diff returns a unified diff between want and got, or "" when they match.
func Diff(name, want, got string) string {
	if want == got {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: name + " (golden)",
		ToFile:   name + " (actual)",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

// AssertGolden compares got with the content of path. With -update the file
// is rewritten instead.
func AssertGolden(t testing.TB, path, got string) {
	t.Helper()
	if *Update {
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("writing golden %s: %v", path, err)
		}
		return
	}
	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading golden %s (run with -update to create it): %v", path, err)
	}
	if diff := Diff(filepath.Base(path), string(want), got); diff != "" {
		t.Errorf("golden mismatch for %s:\n%s", path, diff)
	}
}
