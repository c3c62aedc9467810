package main

import (
	"fmt"
	"os"

	"termfm/internal/command"
	"termfm/internal/errors"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewExecCmd creates the exec command, which runs commands without the
// browser. One clipboard is shared across the arguments, so a copy and a
// paste can be given together.
func NewExecCmd() *cobra.Command {
	var dir string
	var selected string

	cmd := &cobra.Command{
		Use:   "exec [flags] COMMAND...",
		Short: "Run file commands without the browser",
		Example: `  termfm exec --select notes.txt ':r notes.md'
  termfm exec --dir /tmp ':n d scratch' ':n f scratch/todo'
  termfm exec --select run.sh ':e 755'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				var err error
				dir, err = os.Getwd()
				if err != nil {
					return fmt.Errorf("error getting current directory: %w", err)
				}
			}

			handler := command.NewHandler(command.NewExecutor(afero.NewOsFs(), command.FixedDir(dir)))
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

			failed := 0
			for _, text := range args {
				mode := handler.Exec(text, selected, selected != "")
				fmt.Fprintf(out, "%s\t%s\n", text, mode)
				if mode == command.Error {
					failed++
					fmt.Fprintf(errOut, "%s: %v\n", text, handler.Err())
					if errors.IsMissingSelection(handler.Err()) {
						fmt.Fprintf(errOut, "%s: pass the entry with --select\n", text)
					}
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d commands failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", "", "Directory commands run in (defaults to current directory)")
	cmd.Flags().StringVarP(&selected, "select", "s", "", "Entry the commands act on")

	return cmd
}
