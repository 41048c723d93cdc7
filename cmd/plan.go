package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/examlens/internal/coach"
	"github.com/abhisek/examlens/internal/llm"
	"github.com/abhisek/examlens/internal/store"
	"github.com/abhisek/examlens/internal/ui/render"
)

var planCmd = &cobra.Command{
	Use:   "plan <user>",
	Short: "Generate an AI study plan from the user's dashboard",
	Long: `Generate a short study plan from the user's dashboard.

Requires an LLM provider. Set EXAMLENS_LLM_PROVIDER and the matching
EXAMLENS_<PROVIDER>_API_KEY, or just one of the vendor API key variables.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		planner, err := newPlanner(ctx, s)
		if err != nil {
			return err
		}

		r, err := newEngine(s).Dashboard(ctx, args[0])
		if err != nil {
			return fmt.Errorf("build dashboard: %w", err)
		}

		if cfg.LLM.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.LLM.Timeout)
			defer cancel()
		}
		p, err := planner.Plan(ctx, r)
		if errors.Is(err, coach.ErrNoHistory) {
			return fmt.Errorf("%s has no attempts yet; practise first", args[0])
		}
		if err != nil {
			return fmt.Errorf("generate plan: %w", err)
		}
		return emit(cmd, p, func() string { return render.Plan(p) })
	},
}

// newPlanner builds the study-plan generator from the loaded LLM settings.
func newPlanner(ctx context.Context, s *store.Store) (*coach.Planner, error) {
	provider, err := llm.NewProvider(ctx, cfg.LLM, s.EventRepo(), slog.Default())
	if err != nil {
		return nil, fmt.Errorf("LLM provider: %w", err)
	}
	return coach.NewPlanner(provider, coach.DefaultConfig()), nil
}

func init() {
	planCmd.Flags().Bool("json", false, "Print the plan as JSON")
}
