package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/filetree/pkg/export"
	"github.com/vanderheijden86/filetree/pkg/snapshot"
	"github.com/vanderheijden86/filetree/pkg/tree"
)

// exportTree writes t to path in the format its extension names. A query
// narrows the tree to matches and their ancestors first.
func exportTree(path string, t tree.Tree, title, query string) error {
	if query != "" {
		t = tree.FilterTree(t, query)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg", ".png":
		return export.SaveSnapshot(export.SnapshotOptions{
			Path:  path,
			Title: title,
			Tree:  t,
			Query: query,
		})
	case ".json", ".yaml", ".yml", ".db", ".sqlite", ".sqlite3":
		return snapshot.Save(path, t)
	case ".md", ".markdown", ".txt":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if ext == ".txt" {
			err = export.WriteText(f, t)
		} else {
			err = export.WriteMarkdown(f, t, export.OutlineOptions{Title: title, IncludeContent: true})
		}
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return err
	default:
		return fmt.Errorf("unsupported export format %q (want .svg, .png, .md, .txt, .json, .yaml or .db)", ext)
	}
}
