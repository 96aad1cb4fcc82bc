package snapshot

import (
	_ "embed"

	"github.com/vanderheijden86/filetree/pkg/tree"
)

//go:embed demo.yaml
var demoYAML []byte

// Demo returns the sample Next.js project shown when no snapshot is given.
func Demo() tree.Tree {
	t, err := Decode(demoYAML, FormatYAML)
	if err != nil {
		panic("snapshot: embedded demo is invalid: " + err.Error())
	}
	return t
}
