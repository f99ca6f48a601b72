package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var foundationFoodsCmd = &cobra.Command{
	Use:   "foundationfoods <sentence> [sentences...]",
	Short: "Parse and resolve each sentence's name against the foundation-food catalog",
	Long: `A shortcut for "parse --foundation-foods": requires a catalog file
(--catalog, or catalog_file in a --config file) in addition to the model.

Examples:
  ingredient-parser foundationfoods --catalog fdc.csv.gz --model model.crfgz "1 egg"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFoundationFoods,
}

func init() {
	rootCmd.AddCommand(foundationFoodsCmd)
}

func runFoundationFoods(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.CatalogFile == "" {
		return fmt.Errorf("no foundation-food catalog configured: pass --catalog or set catalog_file in a --config file")
	}
	cfg.Options.FoundationFoods = true

	parser, err := buildParser(cfg)
	if err != nil {
		return err
	}
	opts := cfg.postprocessOptions()

	for i, sentence := range args {
		result, err := parser.Parse(sentence, opts)
		if err != nil {
			return fmt.Errorf("parse %q: %w", sentence, err)
		}
		if jsonOutput {
			if err := outputJSON(result.FoundationFoods); err != nil {
				return err
			}
			continue
		}
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("Sentence: %s\n", sentence)
		if len(result.FoundationFoods) == 0 {
			fmt.Println("  (no confident match)")
			continue
		}
		for _, match := range result.FoundationFoods {
			fmt.Printf("  %s -> fdc_id=%d (%s, confidence=%.2f): %s\n", match.Text, match.FDCID, match.DataType, match.Confidence, match.Category)
		}
	}
	return nil
}
