package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"eduforge/generator"
	"eduforge/studio"
)

type generateOptions struct {
	category   string
	topic      string
	age        int
	paragraphs int
	questions  int
	pdf        bool
	outDir     string
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one piece of content and optionally export it as PDF",
		Long: `Composes a category-specific prompt, sends it to the configured language model and
prints the Markdown result to stdout.

Examples:
  eduforge generate --category quiz --topic Photosynthesis --age 10 --questions 5
  eduforge generate -c story -t Space -a 8 --paragraphs 3 --pdf --out ./exports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			sess := studio.NewSession("cli")
			in := studio.GenerateInput{
				Category:    opts.category,
				Topic:       opts.topic,
				AudienceAge: opts.age,
			}
			if cmd.Flags().Changed("paragraphs") {
				in.ParagraphCount = &opts.paragraphs
			}
			if cmd.Flags().Changed("questions") {
				in.QuestionCount = &opts.questions
			}

			content, err := a.handler.HandleGenerate(ctx, sess, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), content.Text)

			if !opts.pdf {
				return nil
			}
			art, err := a.handler.Export(ctx, sess)
			if err != nil {
				return err
			}
			if opts.outDir != "" {
				if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
					return err
				}
			}
			path := filepath.Join(opts.outDir, art.SuggestedFilename)
			if err := os.WriteFile(path, art.Bytes, 0o644); err != nil {
				return err
			}
			a.logger.WithField("path", path).Info("[cli] pdf written")
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.category, "category", "c", string(generator.LearningMaterial), "content type: learning_material, story, quiz, lesson_plan")
	cmd.Flags().StringVarP(&opts.topic, "topic", "t", "", "topic to write about")
	cmd.Flags().IntVarP(&opts.age, "age", "a", 25, "target audience age (5-100)")
	cmd.Flags().IntVar(&opts.paragraphs, "paragraphs", generator.DefaultParagraphs, "story paragraphs (1-7)")
	cmd.Flags().IntVar(&opts.questions, "questions", generator.DefaultQuestions, "quiz questions (3-30)")
	cmd.Flags().BoolVar(&opts.pdf, "pdf", false, "also export the result as PDF")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "directory for the exported PDF (default: current directory)")
	return cmd
}
