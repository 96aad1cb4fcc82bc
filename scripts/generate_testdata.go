//go:build ignore

// generate_testdata.go creates snapshot files for trying ft on large trees.
// Usage: go run scripts/generate_testdata.go
//
// Creates:
//
//	testdata/benchmark/small.json   (100 nodes)
//	testdata/benchmark/medium.json  (1000 nodes)
//	testdata/benchmark/large.yaml   (5000 nodes)
//	testdata/benchmark/huge.json    (20000 nodes)
//	testdata/benchmark/deep.json    (a 200-level chain)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanderheijden86/filetree/pkg/snapshot"
	"github.com/vanderheijden86/filetree/pkg/testutil"
	"github.com/vanderheijden86/filetree/pkg/tree"
)

type datasetSpec struct {
	file string
	size int
}

var datasets = []datasetSpec{
	{"small.json", 100},
	{"medium.json", 1000},
	{"large.yaml", 5000},
	{"huge.json", 20000},
}

func main() {
	outputDir := "testdata/benchmark"
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, ds := range datasets {
		fmt.Printf("Generating %s (%d nodes)...\n", ds.file, ds.size)

		cfg := testutil.DefaultConfig()
		cfg.Seed = int64(ds.size) // Reproducible per-size
		cfg.IDPrefix = "bench-"
		cfg.WithContent = true
		write(filepath.Join(outputDir, ds.file), testutil.New(cfg).Random(ds.size))
	}

	fmt.Println("Generating deep.json (200 levels)...")
	write(filepath.Join(outputDir, "deep.json"), testutil.NewDefault().Chain(200))

	fmt.Println("\nDone! Snapshots created in", outputDir)
}

func write(path string, t tree.Tree) {
	if err := snapshot.Save(path, t); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", path, err)
		os.Exit(1)
	}
	info, _ := os.Stat(path)
	fmt.Printf("  Written %s (%d bytes)\n", path, info.Size())
}
