package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jdevries/fysio/internal/store"
	"github.com/jdevries/fysio/internal/tui"
)

func main() {
	// A broken primary store must never block the user: fall through to
	// the session-scoped file backend and keep going.
	var primary store.Backend
	if dbPath, err := store.DefaultDBPath(); err == nil {
		if sqlite, err := store.NewSQLite(dbPath); err == nil {
			primary = sqlite
		} else {
			fmt.Fprintf(os.Stderr, "warning: primary storage unavailable, using session storage: %v\n", err)
		}
	}

	s := store.New(primary, store.NewFile(store.DefaultSessionDir()))
	defer s.Close()

	app := tui.NewApp(s)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
