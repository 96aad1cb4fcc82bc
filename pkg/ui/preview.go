package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"github.com/vanderheijden86/filetree/pkg/debug"
	"github.com/vanderheijden86/filetree/pkg/export"
	"github.com/vanderheijden86/filetree/pkg/tree"
)

// PreviewModel shows the selected node: a file's content as a highlighted
// code block, or a folder's listing.
type PreviewModel struct {
	theme    Theme
	style    string // glamour standard style; empty means auto-detect
	renderer *glamour.TermRenderer
	viewport viewport.Model

	width  int
	height int

	// key identifies what is currently rendered, so unchanged nodes are
	// not re-rendered on every frame.
	key string
}

// NewPreviewModel creates a preview pane.
func NewPreviewModel(theme Theme, style string) PreviewModel {
	return PreviewModel{
		theme:    theme,
		style:    style,
		viewport: viewport.New(40, 10),
	}
}

// SetSize resizes the pane and rebuilds the renderer for the new wrap width.
func (p *PreviewModel) SetSize(width, height int) {
	if width == p.width && height == p.height {
		return
	}
	p.width, p.height = width, height
	p.viewport.Width = width
	p.viewport.Height = height - 1
	if p.viewport.Height < 1 {
		p.viewport.Height = 1
	}

	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	styleOpt := glamour.WithAutoStyle()
	if p.style != "" {
		styleOpt = glamour.WithStandardStyle(p.style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wrap))
	if err != nil {
		debug.Log("preview: renderer: %v", err)
		r = nil
	}
	p.renderer = r
	p.key = ""
}

// SetNode renders n. path is the slash-joined location shown under the
// title. A nil node clears the pane.
func (p *PreviewModel) SetNode(n tree.Node, path string) {
	key := ""
	if n != nil {
		key = previewKey(n, path)
	}
	if key == p.key {
		return
	}
	p.key = key
	if n == nil {
		p.viewport.SetContent("")
		return
	}

	md := previewMarkdown(n, path)
	out := md
	if p.renderer != nil {
		if rendered, err := p.renderer.Render(md); err == nil {
			out = strings.TrimRight(rendered, "\n ")
		} else {
			debug.Log("preview: render %s: %v", n.ID(), err)
		}
	}
	p.viewport.SetContent(out)
	p.viewport.GotoTop()
}

// ScrollDown scrolls the content by n lines.
func (p *PreviewModel) ScrollDown(n int) { p.viewport.LineDown(n) }

// ScrollUp scrolls the content back by n lines.
func (p *PreviewModel) ScrollUp(n int) { p.viewport.LineUp(n) }

// View renders the pane with a scroll percentage footer.
func (p PreviewModel) View() string {
	footer := p.theme.MutedText.Render(fmt.Sprintf(" %3.0f%%", p.viewport.ScrollPercent()*100))
	return p.viewport.View() + "\n" + footer
}

func previewKey(n tree.Node, path string) string {
	switch v := n.(type) {
	case tree.File:
		return fmt.Sprintf("f|%s|%s|%s", v.ID(), path, v.Content())
	case tree.Folder:
		names := make([]string, 0, v.Len())
		for _, c := range v.Children() {
			names = append(names, c.Name())
		}
		return fmt.Sprintf("d|%s|%s|%s", v.ID(), path, strings.Join(names, "/"))
	}
	return ""
}

// previewMarkdown builds the Markdown source for n.
func previewMarkdown(n tree.Node, path string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n`%s`\n\n", n.Name(), path)

	switch v := n.(type) {
	case tree.File:
		if v.Content() == "" {
			sb.WriteString("_Empty file_\n")
			break
		}
		fmt.Fprintf(&sb, "```%s\n%s\n```\n", export.Language(v.Name()), strings.TrimRight(v.Content(), "\n"))
	case tree.Folder:
		if v.Len() == 0 {
			sb.WriteString("_Empty folder_\n")
			break
		}
		folders, files := 0, 0
		for _, c := range v.Children() {
			if tree.IsFolder(c) {
				folders++
				fmt.Fprintf(&sb, "- **%s/**\n", c.Name())
			} else {
				files++
				fmt.Fprintf(&sb, "- %s\n", c.Name())
			}
		}
		fmt.Fprintf(&sb, "\n%d folders, %d files\n", folders, files)
	}
	return sb.String()
}

// nodePath joins the names from the root down to id with slashes.
func nodePath(t tree.Tree, id string) string {
	nodes, ok := tree.Path(t, id)
	if !ok {
		return ""
	}
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name()
	}
	return strings.Join(names, "/")
}
