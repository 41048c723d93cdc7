package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/examlens/internal/app"
	"github.com/abhisek/examlens/internal/report"
	"github.com/abhisek/examlens/internal/store"
)

// browseSource serves the terminal screens: reports from the engine and the
// revision library straight from the store.
type browseSource struct {
	*report.Engine
	*store.Store
}

var browseCmd = &cobra.Command{
	Use:   "browse <user>",
	Short: "Open the interactive report browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		return app.Run(browseSource{Engine: newEngine(s), Store: s}, args[0])
	},
}
