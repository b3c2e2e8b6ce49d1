package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"predictd/internal/scaffold"
)

func newInitCmd() *cobra.Command {
	var opts scaffold.Options
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Scaffold a new predictd project",
		Long: `Create a project directory with a models folder, a predictd.toml
config file, and a README. With no argument the current directory is
used; it must be empty.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			created, err := scaffold.Create(dir, opts)
			if err != nil {
				return err
			}
			for _, p := range created {
				fmt.Fprintln(cmd.OutOrStdout(), "created", p)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address written into the config")
	cmd.Flags().StringVar(&opts.ModelsDir, "models-dir", "", "Models directory name inside the project")
	return cmd
}
