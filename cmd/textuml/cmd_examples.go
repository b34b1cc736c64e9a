package main

import (
	"fmt"

	"github.com/shahar-caura/textuml/internal/diagram"
	"github.com/spf13/cobra"
)

func newExamplesCmd() *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:         "examples",
		Short:       "Print the bundled example descriptions",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if id != 0 {
				ex, ok := diagram.LookupExample(id)
				if !ok {
					return fmt.Errorf("no example with id %d", id)
				}
				fmt.Fprintln(out, ex.Text)
				return nil
			}
			for i, ex := range diagram.Examples() {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "# %d. %s\n%s\n", ex.ID, ex.Title, ex.Text)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "print only the example with this id, without a header")

	return cmd
}
