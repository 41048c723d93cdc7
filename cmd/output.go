package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// emit writes v as indented JSON when --json is set, else the rendered text.
func emit(cmd *cobra.Command, v any, text func() string) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), text())
	return err
}
