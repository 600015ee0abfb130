package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/folio/internal/app"
	"github.com/dori/folio/internal/config"
	"github.com/dori/folio/internal/model"
	"github.com/dori/folio/internal/seed"
	"github.com/dori/folio/internal/stats"
	"github.com/dori/folio/internal/store"
	"github.com/dori/folio/internal/ui"
	"github.com/dori/folio/internal/ui/theme"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "stats":
			if err := handleStats(os.Args[2:], os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "version":
			fmt.Printf("folio v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	// Parse flags for TUI mode
	configFlag := flag.String("config", "", "Path to a YAML config file")
	viewFlag := flag.String("view", "", "Starting view (dashboard, list)")
	themeFlag := flag.String("theme", "", "Theme name (nord, dracula, gruvbox, catppuccin)")
	backendFlag := flag.String("backend", "", "Store backend (memory, sqlite)")
	debugFlag := flag.Bool("debug", false, "Write a debug log to the data directory")
	flag.Parse()

	cfg, err := loadConfig(*configFlag, *viewFlag, *themeFlag, *backendFlag, *debugFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `folio - a terminal portfolio of academic projects

Usage:
  folio                     Start the TUI
  folio stats [--config f]  Print dashboard figures for the example projects
  folio version             Show version
  folio help                Show this help

TUI Options:
  --config <file>   YAML config file (FOLIO_* environment variables override it)
  --view <name>     Starting view (dashboard, list)
  --theme <name>    Theme (nord, dracula, gruvbox, catppuccin)
  --backend <name>  Store backend (memory, sqlite); both live in memory only
  --debug           Write a debug log to <data_dir>/folio.log

Keybindings:
  Views:        1             Dashboard
                2             Projects
                3 / a         Add project
  Projects:     ↑/↓ or j/k    Move cursor
                enter / e     Edit project
                d             Delete (with confirm)
                /             Search
                s / t / c     Status filter / tech filter / clear
  Form:         tab           Next field
                ctrl+n/ctrl+x Add/remove member or technology row
                ctrl+s        Save
                esc           Cancel
  General:      ?             Help
                ctrl+t        Cycle theme
                q             Quit

Projects exist only for the session; nothing is written to disk.`

	fmt.Println(help)
}

// loadConfig reads the config file and environment, then applies flags
func loadConfig(path, view, themeName, backend string, debug bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if view != "" {
		cfg.StartView = view
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	if backend != "" {
		cfg.Store.Backend = backend
	}
	if debug {
		cfg.Log.Enabled = true
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// handleStats prints the dashboard figures for the configured seed set
func handleStats(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	configFlag := fs.String("config", "", "Path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}

	clock := &seed.Clock{}
	s := store.NewMemStore(store.WithClock(clock.Now))
	if cfg.Seed.Enabled {
		if cfg.Seed.File != "" {
			_, err = seed.LoadFile(cfg.Seed.File, s, clock)
		} else {
			_, err = seed.Load(s, clock)
		}
		if err != nil {
			return err
		}
	}

	projects, err := s.List()
	if err != nil {
		return err
	}
	printStats(out, projects)
	return nil
}

func printStats(out io.Writer, projects []model.Project) {
	summary := stats.Compute(projects)

	fmt.Fprintf(out, "Total projects:  %d\n", summary.Total)
	fmt.Fprintf(out, "Completion rate: %d%%\n", summary.CompletionRate())
	fmt.Fprintln(out)
	for _, st := range model.Statuses() {
		fmt.Fprintf(out, "%-12s %3d  (%d%%)\n", st.Label(), summary.Count(st), summary.Share(st))
	}

	recent := stats.Recent(projects, stats.RecentLimit)
	if len(recent) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Recent activity:")
	for _, p := range recent {
		fmt.Fprintf(out, "  %s  %s (%s)\n", p.UpdatedAt.Format("2006-01-02"), p.Title, p.Status.Label())
	}
}

func runTUI(cfg *config.Config) error {
	if t, ok := theme.ByName(cfg.Theme); ok {
		theme.SetTheme(t)
	}

	// Create application
	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	// Create root model
	root := ui.NewRootModel(application.Router, application.Logger)

	// Create and run program
	p := tea.NewProgram(
		root,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
