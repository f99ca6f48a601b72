// Command ingredient-parser parses free-text recipe ingredient sentences
// from the command line using the ingredientparser package.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath      string
	modelPath       string
	embeddingsPath  string
	catalogPath     string
	volumetricFlag  string
	stringUnits     bool
	separateNames   bool
	expectName      bool
	discardStopWord bool
	foundationFoods bool
	jsonOutput      bool
)

var rootCmd = &cobra.Command{
	Use:   "ingredient-parser",
	Short: "Parse free-text recipe ingredient sentences into structured records",
	Long: `ingredient-parser turns a sentence like

  2 14-ounce cans coconut milk, drained

into a structured record of names, amounts, preparation, size, comment,
and purpose, using a trained linear-chain CRF sequence labeler.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (model/embeddings/catalog paths and default options)")
	rootCmd.PersistentFlags().StringVar(&modelPath, "model", "", "path to a trained CRF model file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&embeddingsPath, "embeddings", "", "path to a gzipped word2vec-style embeddings file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "path to a gzipped foundation-food catalog CSV (overrides config)")
	rootCmd.PersistentFlags().StringVar(&volumetricFlag, "volumetric-units-system", "", "us_customary or imperial (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&stringUnits, "string-units", false, "leave units as free strings instead of canonical identifiers")
	rootCmd.PersistentFlags().BoolVar(&separateNames, "separate-names", false, "return one name per alternative instead of joining them")
	rootCmd.PersistentFlags().BoolVar(&expectName, "expect-name", false, "fall back to a best-effort name guess when no NAME tokens survive")
	rootCmd.PersistentFlags().BoolVar(&discardStopWord, "discard-stop-words", true, "drop NAME/PREP/COMMENT runs that are a single stop word")
	rootCmd.PersistentFlags().BoolVar(&foundationFoods, "foundation-foods", false, "resolve parsed names against the foundation-food catalog")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "output as JSON")

	_ = rootCmd.RegisterFlagCompletionFunc("volumetric-units-system", completeVolumetricFlag)
}

// resolveConfig loads the config file (if any) and layers command-line
// flag overrides on top of it. A flag is an override only when the user
// actually set it on this invocation; otherwise the config file value
// (or its default) stands.
func resolveConfig(cmd *cobra.Command) (Config, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return Config{}, err
	}

	if modelPath != "" {
		cfg.ModelFile = modelPath
	}
	if embeddingsPath != "" {
		cfg.EmbeddingsFile = embeddingsPath
	}
	if catalogPath != "" {
		cfg.CatalogFile = catalogPath
	}

	flags := cmd.Flags()
	if flags.Changed("volumetric-units-system") {
		cfg.Options.VolumetricUnitsSystem = volumetricFlag
	}
	if flags.Changed("string-units") {
		cfg.Options.StringUnits = stringUnits
	}
	if flags.Changed("separate-names") {
		cfg.Options.SeparateNames = separateNames
	}
	if flags.Changed("expect-name") {
		cfg.Options.ExpectNameInOutput = expectName
	}
	if flags.Changed("discard-stop-words") {
		cfg.Options.DiscardIsolatedStopWords = discardStopWord
	}
	if flags.Changed("foundation-foods") {
		cfg.Options.FoundationFoods = foundationFoods
	}

	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
