package cli

import (
	"github.com/seabearDEV/hlwords/internal/follow"
	"github.com/spf13/cobra"
)

func newFollowCmd(a *app) *cobra.Command {
	var fromStart bool

	cmd := &cobra.Command{
		Use:   "follow <file>",
		Short: "Follow a chat log file and highlight new events",
		Long: `Follow a chat log file and highlight new events as they are appended.

The file uses the same line format as "hlw filter". Following stops on
interrupt or when the file is removed or renamed.`,
		Example: `  hlw follow ~/irc/libera-#go.tsv
  hlw follow --from-start chat.tsv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			console, err := a.newConsole(cmd)
			if err != nil {
				return err
			}
			f := follow.New(args[0], console.Dispatch,
				follow.FromStart(fromStart),
				follow.WithLogger(a.logger),
			)
			return f.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&fromStart, "from-start", false, "Process lines already in the file before following")

	return cmd
}
