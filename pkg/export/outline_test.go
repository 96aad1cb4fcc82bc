package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vanderheijden86/filetree/pkg/testutil"
	"github.com/vanderheijden86/filetree/pkg/tree"
)

func TestWriteText(t *testing.T) {
	tr := tree.New(
		tree.NewFolder("1", "app",
			tree.NewFile("2", "layout.tsx", ""),
			tree.NewFolder("4", "blog",
				tree.NewFile("5", "page.tsx", ""),
			),
			tree.NewFile("3", "page.tsx", ""),
		),
		tree.NewFile("37", "package.json", ""),
	)
	var buf bytes.Buffer
	if err := WriteText(&buf, tr); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"app/",
		"├── layout.tsx",
		"├── blog/",
		"│   └── page.tsx",
		"└── page.tsx",
		"package.json",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("WriteText =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteText_Golden(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, testutil.NewDefault().Balanced(3, 2)); err != nil {
		t.Fatal(err)
	}
	testutil.NewGoldenFile(t, "testdata/golden", "balanced.txt").Assert(buf.String())
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMarkdown(&buf, sampleTree(), OutlineOptions{Title: "Demo", IncludeContent: true})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"# Demo\n",
		"- **app/**\n",
		"  - `layout.tsx`\n",
		"    - `page.tsx`\n",
		"## Contents",
		"```tsx\nexport default function RootLayout() {}\n```",
		"```json\n{\"name\": \"demo\"}\n```",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "### page.tsx") {
		t.Error("empty files should not get a contents section")
	}
}

func TestWriteMarkdown_EscapesFolderNames(t *testing.T) {
	var buf bytes.Buffer
	tr := tree.New(tree.NewFolder("7", "[slug]"))
	if err := WriteMarkdown(&buf, tr, OutlineOptions{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `- **\[slug\]/**`) {
		t.Errorf("folder name not escaped:\n%s", buf.String())
	}
}

func TestLanguage(t *testing.T) {
	tests := map[string]string{
		"page.tsx":     "tsx",
		"main.go":      "go",
		"globals.css":  "css",
		"package.json": "json",
		".env":         "",
		"README":       "",
	}
	for name, want := range tests {
		if got := Language(name); got != want {
			t.Errorf("Language(%q) = %q, want %q", name, got, want)
		}
	}
}
