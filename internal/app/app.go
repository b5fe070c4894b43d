package app

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lectern/internal/config"
	"lectern/internal/notesapi"
	"lectern/internal/prefs"
	"lectern/internal/state"
	"lectern/internal/ui"
)

// Options configure the Lectern application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/lectern/prefs.toml
	BaseURL    string // overrides config and environment when set
}

// Run boots the Lectern TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = cfg.BaseURL
	}

	client, err := notesapi.NewClient(baseURL)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	store := state.New(client)
	store.SetDarkMode(userPrefs.DarkMode)

	// Debug log file for a terminal-owning program.
	if os.Getenv("LECTERN_DEBUG") != "" {
		f, err := tea.LogToFile("lectern-debug.log", "lectern")
		if err == nil {
			defer func() { _ = f.Close() }()
		}
	}

	// Populate the course list once before the UI starts. A failure
	// leaves the store empty and error-flagged; any later operation is
	// the retry.
	_ = store.FetchCourses(ctx)

	uiOpts := ui.Options{
		Context:   ctx,
		Store:     store,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
