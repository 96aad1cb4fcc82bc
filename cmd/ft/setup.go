package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vanderheijden86/filetree/pkg/config"
)

// setupAnswers holds what the --init form asks for.
type setupAnswers struct {
	SnapshotName  string
	SnapshotPath  string
	ShowPreview   bool
	ConfirmDelete bool
	Watch         bool
	Debounce      time.Duration
}

func answersFrom(cfg config.Config) setupAnswers {
	a := setupAnswers{
		ShowPreview:   cfg.UI.ShowPreview,
		ConfirmDelete: cfg.UI.ConfirmDelete,
		Watch:         cfg.Watch.Enabled,
		Debounce:      cfg.Search.Debounce,
	}
	if len(cfg.Snapshots) > 0 {
		a.SnapshotName = cfg.Snapshots[0].Name
		a.SnapshotPath = cfg.Snapshots[0].Path
	}
	return a
}

// applySetup folds the answers into cfg. A named snapshot replaces an
// entry with the same name or is added in front.
func applySetup(cfg config.Config, a setupAnswers) config.Config {
	cfg.UI.ShowPreview = a.ShowPreview
	cfg.UI.ConfirmDelete = a.ConfirmDelete
	cfg.Watch.Enabled = a.Watch
	if a.Debounce > 0 {
		cfg.Search.Debounce = a.Debounce
	}

	name := strings.TrimSpace(a.SnapshotName)
	path := strings.TrimSpace(a.SnapshotPath)
	if name == "" || path == "" {
		return cfg
	}
	entry := config.Snapshot{Name: name, Path: path}
	snaps := []config.Snapshot{entry}
	for _, s := range cfg.Snapshots {
		if !strings.EqualFold(s.Name, name) {
			snaps = append(snaps, s)
		}
	}
	cfg.Snapshots = snaps
	return cfg
}

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

func validateSnapshotPath(p string) error {
	p = strings.TrimSpace(p)
	if p == "" {
		return nil
	}
	if _, err := os.Stat(config.Config{}.ResolveSnapshot(p)); err != nil {
		return fmt.Errorf("cannot read %s", p)
	}
	return nil
}

// runSetup asks for the common settings and writes them to path.
func runSetup(cfg config.Config, path string) error {
	a := answersFrom(cfg)

	form := newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Snapshot name").
				Description("Short name to open it with, e.g. `ft web`. Leave empty to skip.").
				Value(&a.SnapshotName),
			huh.NewInput().
				Title("Snapshot path").
				Description("A .json, .yaml or .db tree file").
				Validate(validateSnapshotPath).
				Value(&a.SnapshotPath),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Show the preview pane?").
				Value(&a.ShowPreview),
			huh.NewConfirm().
				Title("Ask before deleting?").
				Value(&a.ConfirmDelete),
			huh.NewConfirm().
				Title("Reload snapshots when they change on disk?").
				Value(&a.Watch),
			huh.NewSelect[time.Duration]().
				Title("Search delay").
				Options(
					huh.NewOption("Fast (150ms)", 150*time.Millisecond),
					huh.NewOption("Default (300ms)", 300*time.Millisecond),
					huh.NewOption("Relaxed (500ms)", 500*time.Millisecond),
				).
				Value(&a.Debounce),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if err := config.SaveTo(applySetup(cfg, a), path); err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", path)
	return nil
}
