// Package testutil provides deterministic tree fixtures for tests and
// benchmarks. The same config and seed always yield the same tree.
package testutil

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vanderheijden86/filetree/pkg/tree"
)

// GeneratorConfig controls fixture generation.
type GeneratorConfig struct {
	Seed     int64  // Random seed (0 = 42)
	IDPrefix string // Prefix for node ids (default: "n")
	// FolderRate is the chance that a Random node is a folder.
	FolderRate float64
	// MaxDepth bounds nesting in Random trees.
	MaxDepth int
	// WithContent gives generated files a short body.
	WithContent bool
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:       42,
		IDPrefix:   "n",
		FolderRate: 0.25,
		MaxDepth:   6,
	}
}

// Generator builds fixture trees.
type Generator struct {
	cfg  GeneratorConfig
	rng  *rand.Rand
	next int
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = "n"
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 6
	}
	if cfg.FolderRate <= 0 || cfg.FolderRate >= 1 {
		cfg.FolderRate = 0.25
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

var (
	folderNames = []string{"src", "app", "lib", "components", "utils", "docs", "internal", "api", "assets", "tests"}
	fileStems   = []string{"index", "main", "page", "layout", "config", "README", "helpers", "types", "server", "client"}
	fileExts    = []string{".go", ".ts", ".tsx", ".md", ".json", ".yaml", ".css", ".py"}
)

func (g *Generator) id() string {
	g.next++
	return fmt.Sprintf("%s%d", g.cfg.IDPrefix, g.next)
}

func (g *Generator) file(name string) tree.File {
	content := ""
	if g.cfg.WithContent {
		content = fmt.Sprintf("// %s\n", name)
	}
	return tree.NewFile(g.id(), name, content)
}

// Flat creates size root files named file-000.txt, file-001.txt and so on.
func (g *Generator) Flat(size int) tree.Tree {
	width := len(fmt.Sprint(max(size-1, 0)))
	if width < 3 {
		width = 3
	}
	nodes := make([]tree.Node, size)
	for i := range nodes {
		nodes[i] = g.file(fmt.Sprintf("file-%0*d.txt", width, i))
	}
	return tree.New(nodes...)
}

// Chain creates folders nested depth levels deep with one file at the
// bottom: dir-1/dir-2/.../leaf.txt.
func (g *Generator) Chain(depth int) tree.Tree {
	if depth <= 0 {
		return tree.New(g.file("leaf.txt"))
	}
	ids := make([]string, depth)
	for i := range ids {
		ids[i] = g.id()
	}
	var n tree.Node = g.file("leaf.txt")
	for i := depth - 1; i >= 0; i-- {
		n = tree.NewFolder(ids[i], fmt.Sprintf("dir-%d", i+1), n)
	}
	return tree.New(n)
}

// Balanced creates a full tree: every folder above the last level has
// breadth subfolders followed by breadth files. Names are positional
// (dir-1, file-1.txt) so output is stable across seeds.
func (g *Generator) Balanced(depth, breadth int) tree.Tree {
	var build func(level int) []tree.Node
	build = func(level int) []tree.Node {
		var nodes []tree.Node
		if level < depth {
			for i := 1; i <= breadth; i++ {
				id := g.id()
				nodes = append(nodes, tree.NewFolder(id, fmt.Sprintf("dir-%d", i), build(level+1)...))
			}
		}
		for i := 1; i <= breadth; i++ {
			nodes = append(nodes, g.file(fmt.Sprintf("file-%d.txt", i)))
		}
		return nodes
	}
	return tree.New(build(1)...)
}

// Random creates a tree of exactly size nodes with realistic names. Sibling
// names may repeat, as they may in real snapshots.
func (g *Generator) Random(size int) tree.Tree {
	remaining := size
	var build func(depth int, budget int) []tree.Node
	build = func(depth int, budget int) []tree.Node {
		var nodes []tree.Node
		for budget > 0 && remaining > 0 {
			remaining--
			budget--
			if depth < g.cfg.MaxDepth && g.rng.Float64() < g.cfg.FolderRate {
				id := g.id()
				name := folderNames[g.rng.Intn(len(folderNames))]
				share := 1 + g.rng.Intn(max(remaining/2, 1))
				before := remaining
				children := build(depth+1, share)
				budget -= before - remaining
				nodes = append(nodes, tree.NewFolder(id, name, children...))
				continue
			}
			stem := fileStems[g.rng.Intn(len(fileStems))]
			ext := fileExts[g.rng.Intn(len(fileExts))]
			nodes = append(nodes, g.file(stem+ext))
		}
		return nodes
	}
	return tree.New(build(0, size)...)
}

// Names returns the node names of t in pre-order, joined by commas.
func Names(t tree.Tree) string {
	var names []string
	tree.Walk(t, func(n tree.Node, _ int) bool {
		names = append(names, n.Name())
		return true
	})
	return strings.Join(names, ",")
}
