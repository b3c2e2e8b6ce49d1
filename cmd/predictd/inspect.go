package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"predictd/internal/artifact"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print metadata and shape of a serialized artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			art, err := artifact.DecodeFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "name:      ", art.Meta.Name)
			fmt.Fprintln(out, "kind:      ", art.Meta.Kind)
			fmt.Fprintln(out, "features:  ", strings.Join(art.Meta.Features, ", "))
			if len(art.Meta.Classes) > 0 {
				fmt.Fprintln(out, "classes:   ", strings.Join(art.Meta.Classes, ", "))
			}
			fmt.Fprintf(out, "shape:      %dx%d coefficients, %d intercepts\n",
				len(art.Coef), art.NumFeatures(), len(art.Intercept))
			return nil
		},
	}
}
