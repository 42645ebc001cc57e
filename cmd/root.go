package cmd

import (
	"github.com/spf13/cobra"

	"eduforge/config"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "eduforge",
		Short:         "Generate learning material, stories, quizzes and lesson plans with an LLM.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "path to config file (json or yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logs")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newCategoriesCmd())
	return cmd
}

// Execute runs the eduforge command tree.
func Execute() error {
	return newRootCmd().Execute()
}
