package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/hilli/ingredientparser/postprocess"
	"github.com/hilli/ingredientparser/units"
)

// Config is the CLI's on-disk configuration: where to find the trained
// model and reference data files, and the default Options to parse with
// absent an overriding flag. Kept deliberately small and declarative, the
// same role the teacher reserves for its recipe frontmatter metadata,
// just expressed as a standalone TOML file instead of embedded YAML.
type Config struct {
	ModelFile      string        `toml:"model_file"`
	EmbeddingsFile string        `toml:"embeddings_file"`
	CatalogFile    string        `toml:"catalog_file"`
	Options        OptionsConfig `toml:"options"`
}

// OptionsConfig mirrors postprocess.Options in TOML-friendly form.
type OptionsConfig struct {
	DiscardIsolatedStopWords bool   `toml:"discard_isolated_stop_words"`
	ExpectNameInOutput       bool   `toml:"expect_name_in_output"`
	StringUnits              bool   `toml:"string_units"`
	SeparateNames            bool   `toml:"separate_names"`
	VolumetricUnitsSystem    string `toml:"volumetric_units_system"`
	FoundationFoods          bool   `toml:"foundation_foods"`
}

// defaultConfig matches postprocess.DefaultOptions: discard isolated stop
// words, canonical units, one joined name per ingredient.
func defaultConfig() Config {
	return Config{
		Options: OptionsConfig{DiscardIsolatedStopWords: true},
	}
}

// loadConfig reads a TOML config file at path. An empty path returns
// defaultConfig unchanged: the CLI is usable with no config file at all,
// given --model/--embeddings/--catalog flags on the command line.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// postprocessOptions converts the config's Options into postprocess.Options.
func (c Config) postprocessOptions() postprocess.Options {
	return postprocess.Options{
		DiscardIsolatedStopWords: c.Options.DiscardIsolatedStopWords,
		ExpectNameInOutput:       c.Options.ExpectNameInOutput,
		StringUnits:              c.Options.StringUnits,
		SeparateNames:            c.Options.SeparateNames,
		VolumetricUnitsSystem:    units.System(c.Options.VolumetricUnitsSystem),
		FoundationFoods:          c.Options.FoundationFoods,
	}
}
