package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/examlens/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import questions, cutoffs and attempts from a JSON bundle",
	Long: `Import a JSON bundle into the database. Use "-" to read from stdin.

Sessions in the bundle get fresh ids tagged with their year or subject so
later reports can compare them against each other.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open bundle: %w", err)
			}
			defer f.Close()
			in = f
		}

		b, err := importer.Decode(in)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		res, err := importer.New(s, nil).Import(cmd.Context(), b)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported %d questions, %d cutoffs, %d attempts.\n",
			res.Questions, res.Cutoffs, res.Attempts)
		for _, id := range res.Sessions {
			fmt.Fprintf(out, "  session %s\n", id)
		}
		for _, e := range res.Rejected {
			fmt.Fprintf(cmd.ErrOrStderr(), "  skipped: %v\n", e)
		}
		return nil
	},
}
