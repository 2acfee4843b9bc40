package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/liu-tentor/exam-archive-api/internal/catalog"
	"github.com/liu-tentor/exam-archive-api/internal/search"
	"github.com/liu-tentor/exam-archive-api/internal/tui"
	"github.com/liu-tentor/exam-archive-api/pkg/config"
)

var searchStats bool

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Launch the interactive course search",
	Long: `Launch the interactive course search prompt.

Controls:
  type     - Filter course codes
  ↑/↓      - Navigate suggestions
  Tab      - Toggle statistics mode
  Enter    - Select
  Esc      - Close suggestions / quit`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchStats, "stats", false, "resolve to the statistics route")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	loader := catalog.NewLoader(cfg.Catalog, zap.NewNop())
	index := loader.Index(ctx)

	model := tui.NewModel(index, nil)
	if searchStats {
		model.SetMode(search.ModeStats)
	}

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	if m, ok := final.(*tui.Model); ok && m.Selection() != nil {
		fmt.Printf("%s\t%s\n", m.Selection().Code, m.Selection().Route)
	}
	return nil
}
