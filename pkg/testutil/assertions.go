package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/filetree/pkg/tree"
)

// AssertSize verifies the number of nodes in t.
func AssertSize(t *testing.T, tr tree.Tree, expected int) {
	t.Helper()
	if got := tree.Size(tr); got != expected {
		t.Errorf("expected %d nodes, got %d", expected, got)
	}
}

// AssertValid verifies that no two nodes share an id.
func AssertValid(t *testing.T, tr tree.Tree) {
	t.Helper()
	if err := tree.Validate(tr); err != nil {
		t.Errorf("invalid tree: %v", err)
	}
}

// AssertContains verifies that every id is present in t.
func AssertContains(t *testing.T, tr tree.Tree, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if _, ok := tree.FindByID(tr, id); !ok {
			t.Errorf("node %s not found", id)
		}
	}
}

// AssertParent verifies that childID sits directly under parentID. An empty
// parentID means a root.
func AssertParent(t *testing.T, tr tree.Tree, childID, parentID string) {
	t.Helper()
	p, ok := tree.FindParent(tr, childID)
	switch {
	case parentID == "" && ok:
		t.Errorf("expected %s at the root, found under %s", childID, p.ID())
	case parentID != "" && !ok:
		t.Errorf("expected %s under %s, found at the root or missing", childID, parentID)
	case parentID != "" && p.ID() != parentID:
		t.Errorf("expected %s under %s, found under %s", childID, parentID, p.ID())
	}
}

// Golden file helpers

// GoldenFile handles golden file comparisons.
type GoldenFile struct {
	t      *testing.T
	dir    string
	name   string
	update bool
}

// NewGoldenFile creates a golden file helper.
// If GENERATE_GOLDEN env var is set, golden files will be updated.
func NewGoldenFile(t *testing.T, dir, name string) *GoldenFile {
	t.Helper()
	return &GoldenFile{
		t:      t,
		dir:    dir,
		name:   name,
		update: os.Getenv("GENERATE_GOLDEN") != "",
	}
}

// Path returns the full path to the golden file.
func (g *GoldenFile) Path() string {
	return filepath.Join(g.dir, g.name)
}

// Assert compares actual content against the golden file.
// If GENERATE_GOLDEN is set, updates the golden file instead.
func (g *GoldenFile) Assert(actual string) {
	g.t.Helper()

	path := g.Path()

	if g.update {
		if err := os.MkdirAll(g.dir, 0755); err != nil {
			g.t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(actual), 0644); err != nil {
			g.t.Fatalf("failed to write golden file: %v", err)
		}
		g.t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			g.t.Fatalf("golden file does not exist: %s\nRun with GENERATE_GOLDEN=1 to create it", path)
		}
		g.t.Fatalf("failed to read golden file: %v", err)
	}

	if string(expected) == actual {
		return
	}
	// Report the first differing line
	expectedLines := strings.Split(string(expected), "\n")
	actualLines := strings.Split(actual, "\n")
	for i := 0; i < len(expectedLines) || i < len(actualLines); i++ {
		var expLine, actLine string
		if i < len(expectedLines) {
			expLine = expectedLines[i]
		}
		if i < len(actualLines) {
			actLine = actualLines[i]
		}
		if expLine != actLine {
			g.t.Errorf("golden file mismatch at line %d:\nexpected: %s\nactual:   %s", i+1, expLine, actLine)
			return
		}
	}
	g.t.Errorf("golden file mismatch (length differs)")
}
