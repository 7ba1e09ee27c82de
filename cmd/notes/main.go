package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pbaille/notes/internal/api"
	"github.com/pbaille/notes/internal/config"
	"github.com/pbaille/notes/internal/domain"
	"github.com/pbaille/notes/internal/store"
)

var dbPath string

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	cfg, err := config.NewLoader(logger).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "notes",
		Short: "Local note-taking with search, sorting and stats",
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.Store.Path, "database path")

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(listCmd(cfg))
	rootCmd.AddCommand(toggleCmd())
	rootCmd.AddCommand(rmCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(clearCmd())
	rootCmd.AddCommand(serveCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getStore() (*store.Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return store.New(dbPath, slog.Default())
}

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [text]",
		Short: "Add a new note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")

			note, err := domain.NewCreator().New(text)
			if err != nil {
				return err
			}

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			notes := append(s.Load(), note)
			s.Save(notes)

			fmt.Printf("Added note: %s\n", note.ID[:8])
			fmt.Printf("Text: %s\n", truncate(note.Text, 80))
			return nil
		},
	}
}

func listCmd(cfg *config.Config) *cobra.Command {
	var status, sortBy, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			notes := s.Load()
			view := domain.FilterByStatus(notes, domain.ParseStatus(status))
			view = domain.Search(view, search)
			view = domain.Sort(view, domain.ParseSortBy(sortBy))

			if len(view) == 0 {
				if len(notes) == 0 {
					fmt.Println("No notes yet. Use 'notes add' to create one.")
				} else {
					fmt.Println("No matching notes.")
				}
				return nil
			}

			for _, n := range view {
				fmt.Printf("%s %s  %s\n", marker(n), n.ID[:8], truncate(n.Text, 60))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", cfg.Display.Filter, "filter by status (all, open, done)")
	cmd.Flags().StringVar(&sortBy, "sort", cfg.Display.Sort, "sort order (date, alphabetical, status)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only show notes containing this text")
	return cmd
}

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [id]",
		Short: "Toggle a note between open and done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			notes := s.Load()
			i := findByPrefix(notes, args[0])
			if i < 0 {
				return fmt.Errorf("note not found: %s", args[0])
			}

			notes[i] = domain.Toggle(notes[i])
			s.Save(notes)

			if notes[i].Done {
				fmt.Printf("Done: %s\n", truncate(notes[i].Text, 60))
			} else {
				fmt.Printf("Reopened: %s\n", truncate(notes[i].Text, 60))
			}
			return nil
		},
	}
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			notes := s.Load()
			i := findByPrefix(notes, args[0])
			if i < 0 {
				return fmt.Errorf("note not found: %s", args[0])
			}

			removed := notes[i]
			notes = append(notes[:i], notes[i+1:]...)
			s.Save(notes)

			fmt.Printf("Removed: %s\n", truncate(removed.Text, 60))
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			st := domain.CalcStats(s.Load())

			fmt.Printf("Total:      %d\n", st.Total)
			fmt.Printf("Completed:  %d\n", st.Completed)
			fmt.Printf("Pending:    %d\n", st.Pending)
			fmt.Printf("Completion: %d%%\n", st.CompletionRate)
			return nil
		},
	}
}

func clearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete all notes without --yes")
			}

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			s.Clear()
			fmt.Println("All notes cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting every note")
	return cmd
}

func serveCmd(cfg *config.Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			// Note: don't defer s.Close() as server runs indefinitely

			server := api.New(s, addr, slog.Default())
			return server.Run()
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", cfg.Server.Addr, "server address")
	return cmd
}

// findByPrefix returns the index of the first note whose ID starts with
// the given prefix, or -1
func findByPrefix(notes []domain.Note, prefix string) int {
	for i, n := range notes {
		if strings.HasPrefix(n.ID, prefix) {
			return i
		}
	}
	return -1
}

func marker(n domain.Note) string {
	if n.Done {
		return "[x]"
	}
	return "[ ]"
}

func truncate(s string, max int) string {
	// Replace newlines with spaces for display
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
