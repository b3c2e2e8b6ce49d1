package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"predictd/internal/registry"
)

func newModelsCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List artifacts discovered in the models directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadDir(dir, func(path string, err error) {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: %v\n", path, err)
			})
			if err != nil {
				return err
			}
			if len(reg) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no models found in", dir)
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tKIND\tFEATURES\tCLASSES")
			for _, m := range reg {
				classes := "-"
				if len(m.Classes) > 0 {
					classes = strings.Join(m.Classes, ",")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					m.ID, m.Name, m.Kind, strings.Join(m.Features, ","), classes)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&dir, "models-dir",
		envOr("PREDICTD_MODELS_DIR", "~/models/predictors"),
		"Directory to scan for *.model artifacts")
	return cmd
}
