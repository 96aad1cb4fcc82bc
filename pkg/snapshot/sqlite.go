package snapshot

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/filetree/pkg/tree"
)

// SchemaVersion is written to the meta table of every SQLite snapshot.
const SchemaVersion = 1

// A SQLite snapshot keeps one row per node. Roots have a NULL parent_id;
// position orders siblings.
const schemaSQL = `
	CREATE TABLE IF NOT EXISTS nodes (
		id TEXT PRIMARY KEY,
		parent_id TEXT,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		content TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent_id, position);
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
`

type nodeRow struct {
	id      string
	name    string
	typ     string
	content string
}

func loadSQLite(path string) (tree.Tree, error) {
	if _, err := os.Stat(path); err != nil {
		return tree.Tree{}, fmt.Errorf("reading snapshot: %w", err)
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return tree.Tree{}, fmt.Errorf("cannot open database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT id, parent_id, name, type, content FROM nodes ORDER BY position`)
	if err != nil {
		return tree.Tree{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	defer rows.Close()

	children := make(map[string][]nodeRow)
	var roots []nodeRow
	total := 0
	for rows.Next() {
		var r nodeRow
		var parent, content sql.NullString
		if err := rows.Scan(&r.id, &parent, &r.name, &r.typ, &content); err != nil {
			return tree.Tree{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		r.content = content.String
		total++
		if parent.Valid {
			children[parent.String] = append(children[parent.String], r)
		} else {
			roots = append(roots, r)
		}
	}
	if err := rows.Err(); err != nil {
		return tree.Tree{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	built := 0
	var build func(r nodeRow) (tree.Node, error)
	build = func(r nodeRow) (tree.Node, error) {
		built++
		kind, ok := tree.ParseKind(r.typ)
		if !ok {
			return nil, fmt.Errorf("%w: node %q has unknown type %q", ErrInvalidSnapshot, r.id, r.typ)
		}
		kids := children[r.id]
		if kind == tree.KindFile {
			if len(kids) > 0 {
				return nil, fmt.Errorf("%w: file %q has children", ErrInvalidSnapshot, r.id)
			}
			return tree.NewFile(r.id, r.name, r.content), nil
		}
		nodes := make([]tree.Node, 0, len(kids))
		for _, k := range kids {
			n, err := build(k)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		}
		return tree.NewFolder(r.id, r.name, nodes...), nil
	}

	out := make([]tree.Node, 0, len(roots))
	for _, r := range roots {
		n, err := build(r)
		if err != nil {
			return tree.Tree{}, err
		}
		out = append(out, n)
	}
	if built != total {
		return tree.Tree{}, fmt.Errorf("%w: %d nodes are not reachable from a root", ErrInvalidSnapshot, total-built)
	}
	t := tree.New(out...)
	if err := tree.Validate(t); err != nil {
		return tree.Tree{}, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	return t, nil
}

// saveSQLite writes t into a fresh database next to path and renames it
// into place.
func saveSQLite(path string, t tree.Tree) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ft-snapshot-*.db")
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	tmpName := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpName)

	if err := writeSQLite(tmpName, t); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

func writeSQLite(path string, t tree.Tree) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO nodes (id, parent_id, position, name, type, content) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	var insert func(nodes []tree.Node, parent sql.NullString) error
	insert = func(nodes []tree.Node, parent sql.NullString) error {
		for i, n := range nodes {
			var content sql.NullString
			if f, ok := n.(tree.File); ok {
				content = sql.NullString{String: f.Content(), Valid: true}
			}
			if _, err := stmt.Exec(n.ID(), parent, i, n.Name(), n.Kind().String(), content); err != nil {
				return fmt.Errorf("insert %q: %w", n.ID(), err)
			}
			if f, ok := n.(tree.Folder); ok {
				if err := insert(f.Children(), sql.NullString{String: f.ID(), Valid: true}); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := insert(t.Roots(), sql.NullString{}); err != nil {
		return err
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, fmt.Sprint(SchemaVersion)); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	return tx.Commit()
}
