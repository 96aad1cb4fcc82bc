package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/filetree/pkg/tree"
)

// SnapshotOptions controls diagram export.
type SnapshotOptions struct {
	Path   string // Output path; format inferred from extension when Format empty
	Format string // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Title  string // Optional title rendered in the summary block
	Tree   tree.Tree
	// Expanded selects which folders show their children. Nil shows all.
	Expanded func(id string) bool
	// Query highlights nodes whose own name matches.
	Query string
}

// SaveSnapshot renders the tree as a static diagram (SVG or PNG): one row
// per visible node, indented by depth and joined to its parent by elbow
// connectors.
func SaveSnapshot(opts SnapshotOptions) error {
	if opts.Tree.Empty() {
		return fmt.Errorf("no nodes to export")
	}

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "svg"
			if opts.Path != "" && filepath.Ext(opts.Path) == "" {
				opts.Path = opts.Path + ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	layout := buildLayout(opts)

	switch format {
	case "png":
		return renderPNG(opts.Path, layout)
	default:
		f, err := os.Create(opts.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		return renderSVG(f, layout)
	}
}

// --- layout ----------------------------------------------------------------

type layoutNode struct {
	ID     string
	Label  string
	Kind   tree.Kind
	Depth  int
	Match  bool
	X, Y   float64
	W, H   float64
	Parent int // index into layoutResult.Nodes, -1 for roots
}

type layoutResult struct {
	Nodes   []layoutNode
	Width   int
	Height  int
	Header  float64
	Summary summaryInfo
}

type summaryInfo struct {
	Title   string
	Files   int
	Folders int
	Depth   int
	Query   string
	Matches int
}

const (
	padding      = 32.0
	headerHeight = 110.0
	rowHeight    = 30.0
	rowGap       = 6.0
	indent       = 28.0
	charWidth    = 7.0 // basicfont 7x13
	boxPadX      = 12.0
	maxLabel     = 48
)

func buildLayout(opts SnapshotOptions) layoutResult {
	expanded := opts.Expanded
	if expanded == nil {
		expanded = func(string) bool { return true }
	}
	rows := tree.FlattenRows(opts.Tree, expanded, false)

	var (
		nodes    []layoutNode
		summary  summaryInfo
		maxRight float64
		lastAt   = map[int]int{} // depth -> index of the latest node at that depth
	)
	q := strings.ToLower(opts.Query)
	for i, r := range rows {
		label := truncate(r.Node.Name(), maxLabel)
		if tree.IsFolder(r.Node) {
			label += "/"
			summary.Folders++
		} else {
			summary.Files++
		}
		if r.Depth+1 > summary.Depth {
			summary.Depth = r.Depth + 1
		}
		match := q != "" && strings.Contains(strings.ToLower(r.Node.Name()), q)
		if match {
			summary.Matches++
		}
		parent := -1
		if r.Depth > 0 {
			parent = lastAt[r.Depth-1]
		}
		lastAt[r.Depth] = i

		n := layoutNode{
			ID:     r.Node.ID(),
			Label:  label,
			Kind:   r.Node.Kind(),
			Depth:  r.Depth,
			Match:  match,
			X:      padding + float64(r.Depth)*indent,
			Y:      padding + headerHeight + float64(i)*(rowHeight+rowGap),
			W:      float64(len([]rune(label)))*charWidth + 2*boxPadX,
			H:      rowHeight,
			Parent: parent,
		}
		if right := n.X + n.W; right > maxRight {
			maxRight = right
		}
		nodes = append(nodes, n)
	}

	width := int(maxRight + padding)
	if width < 480 {
		width = 480
	}
	height := int(padding*2 + headerHeight + float64(len(nodes))*(rowHeight+rowGap))
	if height < 240 {
		height = 240
	}

	summary.Title = opts.Title
	if strings.TrimSpace(summary.Title) == "" {
		summary.Title = "File Tree"
	}
	summary.Query = opts.Query

	return layoutResult{
		Nodes:   nodes,
		Width:   width,
		Height:  height,
		Header:  headerHeight,
		Summary: summary,
	}
}

func (s summaryInfo) lines() []string {
	out := []string{
		fmt.Sprintf("folders: %d  files: %d  depth: %d", s.Folders, s.Files, s.Depth),
	}
	if s.Query != "" {
		out = append(out, fmt.Sprintf("query: %q  matches: %d", s.Query, s.Matches))
	}
	return out
}

// --- rendering -------------------------------------------------------------

var (
	colorFolder   = color.RGBA{0xdb, 0xea, 0xfe, 0xff}
	colorFile     = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorMatch    = color.RGBA{0xfe, 0xf0, 0x8a, 0xff}
	colorStroke   = color.RGBA{0x22, 0x22, 0x22, 0xff}
	colorEdge     = color.RGBA{0x9c, 0xa3, 0xaf, 0xff}
	colorText     = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle   = color.RGBA{0x66, 0x66, 0x66, 0xff}
	colorBackdrop = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorHeaderBG = color.RGBA{0xf3, 0xf4, 0xf6, 0xff}
)

func fillColor(n layoutNode) color.RGBA {
	switch {
	case n.Match:
		return colorMatch
	case n.Kind == tree.KindFolder:
		return colorFolder
	default:
		return colorFile
	}
}

// elbow returns the connector from a parent box down and across to a
// child box.
func elbow(parent, child layoutNode) (x, y1, y2, x2 float64) {
	x = parent.X + indent/2
	y1 = parent.Y + parent.H
	y2 = child.Y + child.H/2
	x2 = child.X
	return
}

func renderPNG(path string, layout layoutResult) error {
	dc := gg.NewContext(layout.Width, layout.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(16, 16, float64(layout.Width)-32, layout.Header-24, 10)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(colorText)
	dc.DrawStringAnchored(layout.Summary.Title, 32, 44, 0, 0.5)
	dc.SetColor(colorSubtle)
	for i, line := range layout.Summary.lines() {
		dc.DrawStringAnchored(line, 32, 64+float64(i)*20, 0, 0.5)
	}

	dc.SetColor(colorEdge)
	dc.SetLineWidth(1.5)
	for _, n := range layout.Nodes {
		if n.Parent < 0 {
			continue
		}
		x, y1, y2, x2 := elbow(layout.Nodes[n.Parent], n)
		dc.DrawLine(x, y1, x, y2)
		dc.DrawLine(x, y2, x2, y2)
		dc.Stroke()
	}

	for _, n := range layout.Nodes {
		dc.SetColor(fillColor(n))
		dc.DrawRoundedRectangle(n.X, n.Y, n.W, n.H, 6)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1)
		dc.DrawRoundedRectangle(n.X, n.Y, n.W, n.H, 6)
		dc.Stroke()
		dc.SetColor(colorText)
		dc.DrawStringAnchored(n.Label, n.X+boxPadX, n.Y+n.H/2, 0, 0.35)
	}

	return dc.SavePNG(path)
}

func renderSVG(w io.Writer, layout layoutResult) error {
	canvas := svg.New(w)
	canvas.Start(layout.Width, layout.Height)
	canvas.Rect(0, 0, layout.Width, layout.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(16, 16, layout.Width-32, int(layout.Header-24), 10, 10, fmt.Sprintf("fill:%s", css(colorHeaderBG)))

	canvas.Text(32, 44, layout.Summary.Title, fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
	for i, line := range layout.Summary.lines() {
		canvas.Text(32, 64+i*20, line, fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))
	}

	edgeStyle := fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5", css(colorEdge))
	for _, n := range layout.Nodes {
		if n.Parent < 0 {
			continue
		}
		x, y1, y2, x2 := elbow(layout.Nodes[n.Parent], n)
		canvas.Polyline([]int{int(x), int(x), int(x2)}, []int{int(y1), int(y2), int(y2)}, edgeStyle)
	}

	for _, n := range layout.Nodes {
		x, y := int(n.X), int(n.Y)
		canvas.Gid(n.ID)
		canvas.Roundrect(x, y, int(n.W), int(n.H), 6, 6,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(fillColor(n)), css(colorStroke)))
		weight := "normal"
		if n.Kind == tree.KindFolder {
			weight = "bold"
		}
		canvas.Text(x+int(boxPadX), y+int(n.H/2)+4, n.Label,
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;font-weight:%s", css(colorText), weight))
		canvas.Gend()
	}

	canvas.End()
	return nil
}

// --- helpers ---------------------------------------------------------------

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
