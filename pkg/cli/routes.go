package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the routes registered by the loaded fixture",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VERB\tPATTERN\tCLASS")
		for _, r := range eng.Router().Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Verb, r.Pattern, r.Class)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
