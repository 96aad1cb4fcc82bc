// Package snapshot reads and writes trees as JSON or YAML documents, or as
// SQLite databases.
//
// A snapshot is a list of root nodes:
//
//	[{"id": "1", "name": "app", "type": "folder", "children": [...]},
//	 {"id": "37", "name": "package.json", "type": "file", "content": "{}"}]
//
// The type field may be omitted; a node with children is then a folder.
// Transient UI state (renaming, expansion, selection) is never stored.
package snapshot

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/filetree/pkg/tree"
)

// ErrInvalidSnapshot wraps every structural problem found while decoding.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

var errNotADocument = errors.New("sqlite snapshots are files, not documents")

// Format is a snapshot encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatSQLite
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatSQLite:
		return "sqlite"
	default:
		return "json"
	}
}

// FormatFor picks the format from a file extension. Anything that is not
// YAML or SQLite is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatJSON
	}
}

type nodeDTO struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Type     string    `json:"type,omitempty" yaml:"type,omitempty"`
	Content  string    `json:"content,omitempty" yaml:"content,omitempty"`
	Children []nodeDTO `json:"children,omitempty" yaml:"children,omitempty"`
}

// Decode parses data into a tree and checks it for duplicate ids.
func Decode(data []byte, format Format) (tree.Tree, error) {
	var dtos []nodeDTO
	var err error
	switch format {
	case FormatSQLite:
		return tree.Tree{}, errNotADocument
	case FormatYAML:
		err = yaml.Unmarshal(data, &dtos)
	default:
		err = json.Unmarshal(data, &dtos)
	}
	if err != nil {
		return tree.Tree{}, fmt.Errorf("%w: %s: %v", ErrInvalidSnapshot, format, err)
	}

	roots := make([]tree.Node, 0, len(dtos))
	for i := range dtos {
		n, err := fromDTO(&dtos[i], fmt.Sprintf("[%d]", i))
		if err != nil {
			return tree.Tree{}, err
		}
		roots = append(roots, n)
	}
	t := tree.New(roots...)
	if err := tree.Validate(t); err != nil {
		return tree.Tree{}, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	return t, nil
}

func fromDTO(d *nodeDTO, at string) (tree.Node, error) {
	if strings.TrimSpace(d.ID) == "" {
		return nil, fmt.Errorf("%w: node %s has no id", ErrInvalidSnapshot, at)
	}
	kind := tree.KindFile
	if d.Type == "" {
		if d.Children != nil {
			kind = tree.KindFolder
		}
	} else {
		k, ok := tree.ParseKind(d.Type)
		if !ok {
			return nil, fmt.Errorf("%w: node %q has unknown type %q", ErrInvalidSnapshot, d.ID, d.Type)
		}
		kind = k
	}

	if kind == tree.KindFile {
		if len(d.Children) > 0 {
			return nil, fmt.Errorf("%w: file %q has children", ErrInvalidSnapshot, d.ID)
		}
		return tree.NewFile(d.ID, d.Name, d.Content), nil
	}
	children := make([]tree.Node, 0, len(d.Children))
	for i := range d.Children {
		c, err := fromDTO(&d.Children[i], fmt.Sprintf("%s.children[%d]", at, i))
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return tree.NewFolder(d.ID, d.Name, children...), nil
}

func toDTO(n tree.Node) nodeDTO {
	d := nodeDTO{ID: n.ID(), Name: n.Name(), Type: n.Kind().String()}
	switch x := n.(type) {
	case tree.File:
		d.Content = x.Content()
	case tree.Folder:
		d.Children = make([]nodeDTO, 0, x.Len())
		for i := 0; i < x.Len(); i++ {
			d.Children = append(d.Children, toDTO(x.Child(i)))
		}
	}
	return d
}

// Encode renders t in the given format.
func Encode(t tree.Tree, format Format) ([]byte, error) {
	if format == FormatSQLite {
		return nil, errNotADocument
	}
	roots := t.Roots()
	dtos := make([]nodeDTO, len(roots))
	for i, r := range roots {
		dtos[i] = toDTO(r)
	}
	if format == FormatYAML {
		return yaml.Marshal(dtos)
	}
	out, err := json.MarshalIndent(dtos, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
