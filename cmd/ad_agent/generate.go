package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/ad-generator/internal/frontend"
	"github.com/jonathan/ad-generator/internal/observability"
	"github.com/jonathan/ad-generator/internal/pipeline"
	"github.com/jonathan/ad-generator/internal/types"
)

var generateCmd = &cobra.Command{
	Use:       "generate email|sms",
	Short:     "Generate one email or SMS advertisement",
	Long:      "Generates one advertisement for a catalog program and prints it. With --feedback the result is regenerated once with the comment folded into the prompt.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"email", "sms"},
	RunE:      runGenerate,
}

var (
	generateProgram  string
	generateLanguage string
	generateTone     string
	generateMin      int
	generateMax      int
	generatePrompt   string
	generateFeedback string
	generateJSON     bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateProgram, "program", "p", "", "Program title (default: first program in the catalog)")
	generateCmd.Flags().StringVarP(&generateLanguage, "language", "l", string(types.English), "Output language: English or French")
	generateCmd.Flags().StringVarP(&generateTone, "tone", "t", string(types.ToneFormal), "Tone of the advertisement")
	generateCmd.Flags().IntVar(&generateMin, "min", types.DefaultMinLength, "Minimum content length")
	generateCmd.Flags().IntVar(&generateMax, "max", types.DefaultMaxLength, "Maximum content length")
	generateCmd.Flags().StringVar(&generatePrompt, "prompt", "", "Free-text prompt; for email it replaces the program description as the prompt body")
	generateCmd.Flags().StringVar(&generateFeedback, "feedback", "", "Comment for one regeneration round")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "Print the result as JSON")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	kind, err := types.ParseKind(args[0])
	if err != nil {
		return err
	}
	language, err := types.ParseLanguage(generateLanguage)
	if err != nil {
		return err
	}
	tone, err := types.ParseTone(generateTone)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var printer *observability.Printer
	var onProgress pipeline.ProgressCallback
	if verbose {
		printer = observability.NewPrinter(cmd.ErrOrStderr())
		onProgress = printer.PrintProgress
	}

	ctx := cmd.Context()
	gen, cleanup, err := buildGenerator(ctx, cfg, onProgress)
	if err != nil {
		return err
	}
	defer cleanup()

	form := frontend.DefaultFormState(gen.Programs())
	form.Language = language
	form.Tone = tone
	form.Prompt = generatePrompt
	form.MinLength = generateMin
	form.MaxLength = generateMax
	if generateProgram != "" {
		form.Program = generateProgram
	}

	if printer != nil {
		printer.PrintPrograms(gen.Programs())
		printer.PrintRequest(form.Request(kind))
	}

	session := frontend.NewSession(form)
	if err := session.Generate(ctx, gen, kind); err != nil {
		return fmt.Errorf("failed to generate advertisement: %w", err)
	}
	if printer != nil {
		printer.PrintPrompt(session.Result.Prompt)
		printer.PrintResult(session.Result)
	}

	if generateFeedback != "" {
		if err := printResult(cmd.OutOrStdout(), session.Result); err != nil {
			return err
		}
		feedback := types.FeedbackEvent{Sentiment: types.SentimentNegative, Comment: generateFeedback}
		if err := session.Feedback(ctx, gen, feedback); err != nil {
			return fmt.Errorf("failed to regenerate advertisement: %w", err)
		}
		if printer != nil {
			printer.PrintPrompt(session.Result.Prompt)
			printer.PrintResult(session.Result)
		}
	}

	return printResult(cmd.OutOrStdout(), session.Result)
}

func printResult(out io.Writer, result *types.AdvertisementResult) error {
	if generateJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return nil
	}
	_, _ = fmt.Fprintf(out, "%s\n\n%s\n\n", result.Heading, result.ProcessedText)
	return nil
}
