package cli

import (
	"fmt"
	"strings"

	"github.com/seabearDEV/hlwords/internal/format"
	"github.com/spf13/cobra"
)

type checkResult struct {
	Input   string `json:"input"`
	Output  string `json:"output"`
	Changed bool   `json:"changed"`
}

func newCheckCmd(a *app) *cobra.Command {
	var raw, asJSON bool

	cmd := &cobra.Command{
		Use:   "check [text...]",
		Short: "Highlight message text from arguments or stdin",
		Long: `Highlight message text from arguments or stdin.

With arguments, they are joined with spaces into one message. Without
arguments, every line of stdin is a message. Lines that are already
formatted or contain no configured word are printed unchanged.`,
		Example: `  hlw check "this is an example"
  hlw check --words cat,dog --whole-words "the cat and the dog"
  cat messages.txt | hlw check --raw`,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.highlighter()
			if err != nil {
				return err
			}

			var lines []string
			if len(args) > 0 {
				lines = []string{strings.Join(args, " ")}
			} else {
				if isTTY(cmd.InOrStdin()) {
					return fmt.Errorf("no text given (pass arguments or pipe messages on stdin)")
				}
				lines, err = readLines(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}

			results := make([]checkResult, 0, len(lines))
			for _, line := range lines {
				out, changed := h.Apply(line)
				results = append(results, checkResult{Input: line, Output: out, Changed: changed})
			}
			a.logger.Debug("check finished", "lines", len(results))

			w := cmd.OutOrStdout()
			if asJSON {
				out, err := format.ToJSON(results)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, out)
				return nil
			}
			for _, r := range results {
				if raw || !format.ColorsEnabled() {
					fmt.Fprintln(w, r.Output)
					continue
				}
				fmt.Fprintln(w, format.RenderIRC(r.Output))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&raw, "raw", "r", false, "Print mIRC control codes instead of terminal colors")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output results as JSON")

	return cmd
}
