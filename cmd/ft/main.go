package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vanderheijden86/filetree/pkg/config"
	"github.com/vanderheijden86/filetree/pkg/debug"
	"github.com/vanderheijden86/filetree/pkg/explorer"
	"github.com/vanderheijden86/filetree/pkg/export"
	"github.com/vanderheijden86/filetree/pkg/metrics"
	"github.com/vanderheijden86/filetree/pkg/snapshot"
	"github.com/vanderheijden86/filetree/pkg/tree"
	"github.com/vanderheijden86/filetree/pkg/ui"
	"github.com/vanderheijden86/filetree/pkg/version"
	"github.com/vanderheijden86/filetree/pkg/watcher"
)

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var snapshots stringList
	flag.Var(&snapshots, "snapshot", "Snapshot file (.json, .yaml, .db) or configured name to open (repeatable)")
	configPath := flag.String("config", "", "Config file (default ~/.config/filetree/config.yaml)")
	printFlag := flag.Bool("print", false, "Print the tree as text and exit")
	exportPath := flag.String("export", "", "Export the tree to a file (.svg, .png, .md, .txt, .json, .yaml, .db) and exit")
	query := flag.String("query", "", "Search query applied to --print and --export")
	noWatch := flag.Bool("no-watch", false, "Do not reload snapshots when they change on disk")
	initFlag := flag.Bool("init", false, "Create or edit the config file interactively")
	metricsFlag := flag.Bool("metrics", false, "Print timing metrics to stderr on exit")
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	flag.Parse()

	// CPU profiling support
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: ft [options] [snapshot ...]")
		fmt.Println("\nAn interactive file tree explorer.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("ft %s\n", version.Version)
		os.Exit(0)
	}

	if *metricsFlag {
		metrics.SetEnabled(true)
		defer func() {
			_ = metrics.WriteReport(os.Stderr)
		}()
	}

	cfgFile := *configPath
	if cfgFile == "" {
		cfgFile = config.ConfigPath()
	}
	cfg, err := config.LoadFrom(cfgFile)
	if err != nil {
		// Non-fatal: continue with defaults
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		cfg = config.DefaultConfig()
	}

	if *initFlag {
		if err := runSetup(cfg, cfgFile); err != nil {
			fmt.Fprintf(os.Stderr, "Setup failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	paths := resolvePaths(cfg, append(snapshots, flag.Args()...))

	t, err := loadTree(context.Background(), paths, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading snapshots: %v\n", err)
		os.Exit(1)
	}
	title := treeTitle(paths)

	if *exportPath != "" {
		if err := exportTree(*exportPath, t, title, *query); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d nodes to %s\n", tree.Size(t), *exportPath)
		return
	}

	if *printFlag || !term.IsTerminal(int(os.Stdout.Fd())) {
		if *query != "" {
			t = tree.FilterTree(t, *query)
		}
		if err := export.WriteText(os.Stdout, t); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	opts := []ui.Option{ui.WithConfig(cfg), ui.WithTitle(title)}
	if len(paths) > 0 && cfg.Watch.Enabled && !*noWatch {
		w, err := startWatcher(cfg, paths)
		if err != nil {
			debug.Log("watcher disabled: %v", err)
		} else {
			defer w.Stop()
			opts = append(opts, ui.WithWatcher(w, func(ctx context.Context) (tree.Tree, error) {
				return loadTree(ctx, paths, io.Discard)
			}))
		}
	}

	m := ui.NewModel(explorer.New(t), opts...)
	if err := runTUIProgram(m); err != nil {
		fmt.Printf("Error running ft: %v\n", err)
		os.Exit(1)
	}
}

// resolvePaths maps arguments through the configured snapshot names.
func resolvePaths(cfg config.Config, args []string) []string {
	paths := make([]string, 0, len(args))
	for _, a := range args {
		if strings.TrimSpace(a) == "" {
			continue
		}
		paths = append(paths, cfg.ResolveSnapshot(a))
	}
	return paths
}

// loadTree loads paths, or the built-in demo tree when there are none.
// Files that fail to load are reported to warn and skipped.
func loadTree(ctx context.Context, paths []string, warn io.Writer) (tree.Tree, error) {
	if len(paths) == 0 {
		return snapshot.Demo(), nil
	}
	t, results, err := snapshot.Load(ctx, paths)
	if err != nil {
		return tree.Tree{}, err
	}
	for _, r := range results {
		if r.Error != nil {
			fmt.Fprintf(warn, "Warning: skipping %s: %v\n", r.Path, r.Error)
		}
	}
	return t, nil
}

func treeTitle(paths []string) string {
	switch len(paths) {
	case 0:
		return "ft · demo"
	case 1:
		return "ft · " + filepath.Base(paths[0])
	default:
		return fmt.Sprintf("ft · %d snapshots", len(paths))
	}
}

func startWatcher(cfg config.Config, paths []string) (*watcher.Watcher, error) {
	w, err := watcher.New(paths,
		watcher.WithDebounceDuration(cfg.Watch.Debounce),
		watcher.WithPollInterval(cfg.Watch.PollInterval),
		watcher.WithForcePoll(cfg.Watch.ForcePoll),
		watcher.WithOnError(func(err error) {
			debug.Log("watcher: %v", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}
	return w, nil
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set FT_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("FT_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()
			}()
		}
	}

	final, err := p.Run()
	if fm, ok := final.(ui.Model); ok {
		fm.Close()
	} else {
		m.Close()
	}
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
