package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hilli/ingredientparser/postprocess"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Parse one ingredient sentence per line of a file",
	Long: `Read a file one line at a time and parse each non-blank line as an
independent ingredient sentence. Pass "-" to read from stdin.

batch never aggregates fields across lines: it is a convenience loop
around parse, not a recipe- or shopping-list-level operation.

Examples:
  ingredient-parser batch ingredients.txt
  cat ingredients.txt | ingredient-parser batch -
  ingredient-parser batch --json ingredients.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	parser, err := buildParser(cfg)
	if err != nil {
		return err
	}
	opts := cfg.postprocessOptions()

	var r io.Reader
	if args[0] == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}

	var results []postprocess.ParsedIngredient
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result, err := parser.Parse(line, opts)
		if err != nil {
			printWarning("line %d: %v", lineNum, err)
			continue
		}
		if jsonOutput {
			results = append(results, result)
			continue
		}
		displayParsed(result)
		fmt.Println()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	if jsonOutput {
		return outputJSON(results)
	}
	return nil
}
