package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/filetree/pkg/debug"
	"github.com/vanderheijden86/filetree/pkg/metrics"
	"github.com/vanderheijden86/filetree/pkg/tree"
)

// LoadResult is the outcome of loading one file.
type LoadResult struct {
	Path   string
	Prefix string
	Tree   tree.Tree
	Error  error
}

// LoadFile reads one snapshot, picking the format from its extension.
func LoadFile(path string) (tree.Tree, error) {
	defer metrics.Timer(metrics.SnapshotLoad)()

	if FormatFor(path) == FormatSQLite {
		t, err := loadSQLite(path)
		if err != nil {
			return tree.Tree{}, fmt.Errorf("%s: %w", path, err)
		}
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return tree.Tree{}, fmt.Errorf("reading snapshot: %w", err)
	}
	t, err := Decode(data, FormatFor(path))
	if err != nil {
		return tree.Tree{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Load reads every path concurrently and merges the results into one
// forest, in argument order. With more than one file, ids are prefixed
// with the file's stem so files may reuse ids. A file that fails to load
// is reported in its LoadResult and skipped; Load fails only when every
// file failed.
func Load(ctx context.Context, paths []string) (tree.Tree, []LoadResult, error) {
	if len(paths) == 0 {
		return tree.Tree{}, nil, fmt.Errorf("no snapshot files given")
	}
	results := make([]LoadResult, len(paths))
	prefixes := prefixesFor(paths)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, p := range paths {
		g.Go(func() error {
			results[i] = LoadResult{Path: p, Prefix: prefixes[i]}
			if err := ctx.Err(); err != nil {
				results[i].Error = err
				return nil
			}
			t, err := LoadFile(p)
			if err != nil {
				results[i].Error = err
				return nil
			}
			if prefixes[i] != "" {
				t = namespace(t, prefixes[i])
			}
			results[i].Tree = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return tree.Tree{}, results, err
	}

	var roots []tree.Node
	var firstErr error
	loaded := 0
	for _, r := range results {
		if r.Error != nil {
			debug.Log("snapshot: skipping %s: %v", r.Path, r.Error)
			if firstErr == nil {
				firstErr = r.Error
			}
			continue
		}
		loaded++
		roots = append(roots, r.Tree.Roots()...)
	}
	if loaded == 0 {
		return tree.Tree{}, results, firstErr
	}
	merged := tree.New(roots...)
	if err := tree.Validate(merged); err != nil {
		return tree.Tree{}, results, fmt.Errorf("merging snapshots: %w", err)
	}
	return merged, results, nil
}

// prefixesFor returns "" for a single file, else a unique stem per file.
// A repeated stem gets the first free numeric suffix that is not some
// other file's own stem.
func prefixesFor(paths []string) []string {
	out := make([]string, len(paths))
	if len(paths) < 2 {
		return out
	}
	stems := make([]string, len(paths))
	reserved := make(map[string]bool, len(paths))
	for i, p := range paths {
		stems[i] = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		reserved[stems[i]] = true
	}
	used := make(map[string]bool, len(paths))
	for i, stem := range stems {
		candidate := stem
		for n := 2; used[candidate] || (candidate != stem && reserved[candidate]); n++ {
			candidate = fmt.Sprintf("%s%d", stem, n)
		}
		used[candidate] = true
		out[i] = candidate
	}
	return out
}

// namespace rewrites every id in t as prefix:id.
func namespace(t tree.Tree, prefix string) tree.Tree {
	var rewrite func(n tree.Node) tree.Node
	rewrite = func(n tree.Node) tree.Node {
		id := prefix + ":" + n.ID()
		switch x := n.(type) {
		case tree.Folder:
			kids := x.Children()
			for i, c := range kids {
				kids[i] = rewrite(c)
			}
			return tree.NewFolder(id, x.Name(), kids...)
		case tree.File:
			return tree.NewFile(id, x.Name(), x.Content())
		default:
			return n
		}
	}
	roots := t.Roots()
	for i, r := range roots {
		roots[i] = rewrite(r)
	}
	return tree.New(roots...)
}

// Save writes t to path atomically, in the format its extension selects.
func Save(path string, t tree.Tree) error {
	if FormatFor(path) == FormatSQLite {
		return saveSQLite(path, t)
	}
	data, err := Encode(t, FormatFor(path))
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ft-snapshot-*")
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
