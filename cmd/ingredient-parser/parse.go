package main

import (
	"fmt"

	"github.com/spf13/cobra"

	ingredientparser "github.com/hilli/ingredientparser"
	"github.com/hilli/ingredientparser/postprocess"
)

var parseCmd = &cobra.Command{
	Use:   "parse <sentence> [sentences...]",
	Short: "Parse one or more ingredient sentences",
	Long: `Parse one or more free-text ingredient sentences and display the
resulting names, amounts, preparation, size, comment, and purpose.

Each argument is parsed independently: ingredient-parser works one
sentence at a time and never merges fields across sentences.

Examples:
  ingredient-parser parse "2 14-ounce cans coconut milk, drained"
  ingredient-parser parse --json "1/2 cup sugar plus 1 1/2 tablespoons sugar"
  ingredient-parser parse --foundation-foods "1 egg"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

var debugTokens bool

func init() {
	parseCmd.Flags().BoolVar(&debugTokens, "debug", false, "print the raw per-token label and marginal assigned by the sequence labeler before post-processing")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	parser, err := buildParser(cfg)
	if err != nil {
		return err
	}

	opts := cfg.postprocessOptions()

	if debugTokens {
		for i, sentence := range args {
			if i > 0 {
				fmt.Println()
			}
			if err := displayDebugTokens(parser, sentence); err != nil {
				return fmt.Errorf("parse %q: %w", sentence, err)
			}
		}
		return nil
	}

	results := make([]postprocess.ParsedIngredient, 0, len(args))
	for _, sentence := range args {
		result, err := parser.Parse(sentence, opts)
		if err != nil {
			return fmt.Errorf("parse %q: %w", sentence, err)
		}
		results = append(results, result)
	}

	if jsonOutput {
		if len(results) == 1 {
			return outputJSON(results[0])
		}
		return outputJSON(results)
	}

	for i, result := range results {
		if i > 0 {
			fmt.Println()
		}
		displayParsed(result)
	}
	return nil
}

func displayDebugTokens(parser *ingredientparser.Parser, sentence string) error {
	labeled, err := parser.ParseTokens(sentence)
	if err != nil {
		return err
	}

	fmt.Printf("Sentence: %s\n", sentence)
	for _, l := range labeled {
		fmt.Printf("  %-20s %-10s %.3f\n", l.Token.Text, l.Label, l.Marginal)
	}
	return nil
}

func displayParsed(result postprocess.ParsedIngredient) {
	fmt.Printf("Sentence: %s\n", result.Sentence)

	if len(result.Names) > 0 {
		fmt.Print("Names:   ")
		for i, n := range result.Names {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(n.Text)
		}
		fmt.Println()
	}

	for _, amt := range result.Amounts {
		fmt.Printf("Amount:  %s %s%s\n", ingredientparser.FormatQuantity(amt.Quantity, 0), amt.Unit, flagSuffix(amt.Flags))
	}
	for _, comp := range result.CompositeAmounts {
		fmt.Printf("Amount:  (composite, joined by %q)\n", comp.Join)
		for _, amt := range comp.Amounts {
			fmt.Printf("  + %s %s%s\n", ingredientparser.FormatQuantity(amt.Quantity, 0), amt.Unit, flagSuffix(amt.Flags))
		}
	}

	printField("Size", result.Size)
	printField("Preparation", result.Preparation)
	printField("Comment", result.Comment)
	printField("Purpose", result.Purpose)

	for _, match := range result.FoundationFoods {
		fmt.Printf("FDC:     %s -> fdc_id=%d (%s, confidence=%.2f)\n", match.Text, match.FDCID, match.DataType, match.Confidence)
	}
}

func printField(label string, field *postprocess.IngredientText) {
	if field == nil {
		return
	}
	fmt.Printf("%-9s%s\n", label+":", field.Text)
}

func flagSuffix(f postprocess.Flag) string {
	var suffix string
	if f.Has(postprocess.Approximate) {
		suffix += " (approx)"
	}
	if f.Has(postprocess.Singular) {
		suffix += " (each)"
	}
	if f.Has(postprocess.PreparedIngredient) {
		suffix += " (prepared)"
	}
	return suffix
}
