package cli

import (
	"github.com/spf13/cobra"
)

func newFilterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "filter",
		Short: "Run the addon over chat events read from stdin",
		Long: `Run the addon over chat events read from stdin.

Each line is "nick<TAB>message" (a Channel Message) or
"event<TAB>nick<TAB>message". Displayed lines are written to stdout and
the addon's status messages to stderr.`,
		Example: `  printf 'alice\tan example line\n' | hlw filter
  hlw filter --render never < chat.tsv > highlighted.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			console, err := a.newConsole(cmd)
			if err != nil {
				return err
			}
			if err := console.Run(cmd.Context(), cmd.InOrStdin()); err != nil {
				return err
			}
			a.logger.Debug("input exhausted")
			return nil
		},
	}
}
