package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/filetree/pkg/tree"
)

// OutlineOptions controls Markdown export.
type OutlineOptions struct {
	Title string
	// IncludeContent appends each file's content as a fenced code block.
	IncludeContent bool
}

// WriteMarkdown writes the whole tree as a nested Markdown list.
func WriteMarkdown(w io.Writer, t tree.Tree, opts OutlineOptions) error {
	var sb strings.Builder
	title := opts.Title
	if strings.TrimSpace(title) == "" {
		title = "File Tree"
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	var files []tree.File
	tree.Walk(t, func(n tree.Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		if tree.IsFolder(n) {
			sb.WriteString(fmt.Sprintf("- **%s/**\n", escapeMarkdown(n.Name())))
			return true
		}
		sb.WriteString(fmt.Sprintf("- `%s`\n", n.Name()))
		if f, ok := n.(tree.File); ok && f.Content() != "" {
			files = append(files, f)
		}
		return true
	})

	if opts.IncludeContent && len(files) > 0 {
		sb.WriteString("\n## Contents\n")
		for _, f := range files {
			fence := "```"
			for strings.Contains(f.Content(), fence) {
				fence += "`"
			}
			sb.WriteString(fmt.Sprintf("\n### %s\n\n%s%s\n%s\n%s\n", escapeMarkdown(f.Name()), fence, Language(f.Name()), f.Content(), fence))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"`", "\\`",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// Language guesses a fenced-code language tag from a file name.
func Language(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ts", ".tsx":
		return "tsx"
	case ".js", ".jsx", ".mjs":
		return "javascript"
	case ".go":
		return "go"
	case ".json":
		return "json"
	case ".css":
		return "css"
	case ".md":
		return "markdown"
	case ".yaml", ".yml":
		return "yaml"
	case ".py":
		return "python"
	case ".sh":
		return "bash"
	case ".html":
		return "html"
	default:
		return ""
	}
}

// WriteText prints the tree with box-drawing guides, the way `tree` does:
//
//	app/
//	├── layout.tsx
//	└── blog/
//	    └── page.tsx
func WriteText(w io.Writer, t tree.Tree) error {
	all := func(string) bool { return true }
	var sb strings.Builder
	for _, r := range tree.FlattenRows(t, all, false) {
		sb.WriteString(Prefix(r))
		sb.WriteString(r.Node.Name())
		if tree.IsFolder(r.Node) {
			sb.WriteString("/")
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Prefix returns the guide characters drawn left of a row. Roots get none.
func Prefix(r tree.Row) string {
	if r.Depth == 0 {
		return ""
	}
	var sb strings.Builder
	// Guides[0] belongs to the root level, which draws no column.
	for _, more := range r.Guides[1:] {
		if more {
			sb.WriteString("│   ")
		} else {
			sb.WriteString("    ")
		}
	}
	if r.Last {
		sb.WriteString("└── ")
	} else {
		sb.WriteString("├── ")
	}
	return sb.String()
}
