package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"eduforge/generator"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List content categories and their parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tSLUG\tPARAMETER")
			for _, c := range generator.Categories {
				param := "-"
				switch c {
				case generator.Story:
					param = fmt.Sprintf("--paragraphs %d-%d (default %d)", generator.MinParagraphs, generator.MaxParagraphs, generator.DefaultParagraphs)
				case generator.Quiz:
					param = fmt.Sprintf("--questions %d-%d (default %d)", generator.MinQuestions, generator.MaxQuestions, generator.DefaultQuestions)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c, c.Slug(), param)
			}
			return tw.Flush()
		},
	}
}
