package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examlens/internal/history"
	"github.com/abhisek/examlens/internal/ui/render"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard <user>",
	Short: "Show the behaviour dashboard for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := newEngine(s).Dashboard(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("build dashboard: %w", err)
		}
		return emit(cmd, r, func() string { return render.Dashboard(r) })
	},
}

var trendCmd = &cobra.Command{
	Use:   "trend <user>",
	Short: "Show the daily accuracy trend for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		t, err := newEngine(s).Trend(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("build trend: %w", err)
		}
		return emit(cmd, t, func() string { return render.Trend(t) })
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <user> <session>",
	Short: "Show the post-exam report for one session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, _ := cmd.Flags().GetInt("year")
		subject, _ := cmd.Flags().GetString("subject")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		o := history.Override{Year: year, Subject: strings.TrimSpace(subject)}
		r, err := newEngine(s).Session(cmd.Context(), args[0], args[1], o)
		if err != nil {
			return fmt.Errorf("build report: %w", err)
		}
		if !r.Found() {
			return fmt.Errorf("session %q not found for %s", args[1], args[0])
		}
		return emit(cmd, r, func() string { return render.Session(r) })
	},
}

func init() {
	for _, c := range []*cobra.Command{dashboardCmd, trendCmd, reportCmd} {
		c.Flags().Bool("json", false, "Print the report as JSON")
	}
	reportCmd.Flags().Int("year", 0, "Compare against this exam year instead of the detected one")
	reportCmd.Flags().String("subject", "", "Compare against this subject instead of the detected one")
}
