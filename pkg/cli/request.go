package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stubkit/stubkit/pkg/router"
)

var requestCmd = &cobra.Command{
	Use:   "request VERB PATH",
	Short: "Dispatch one request against the loaded fixture",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine()
		if err != nil {
			return err
		}

		body, err := eng.Request(args[0], args[1])
		if err != nil {
			var notFound *router.RequestNotFoundError
			if errors.As(err, &notFound) {
				return fmt.Errorf("%s\n%s", notFound.Error(), notFound.Hint())
			}
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), body)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(requestCmd)
}
