package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	ingredientparser "github.com/hilli/ingredientparser"
	"github.com/hilli/ingredientparser/embeddings"
)

// buildParser loads the model (and, if configured, embeddings and the
// foundation-food catalog) a Config names, returning a ready-to-use Parser.
//
// The embeddings file, when configured, is read twice: once as a raw
// io.Reader for NewParser (which builds its own internal embeddings.Model
// for feature extraction) and once via embeddings.Load so the same
// vocabulary can be handed to EnableFoundationFoods, whose resolver needs
// the *embeddings.Model value itself rather than a reader.
func buildParser(cfg Config) (*ingredientparser.Parser, error) {
	if cfg.ModelFile == "" {
		return nil, fmt.Errorf("no model file configured: pass --model or set model_file in a --config file")
	}

	modelFile, err := os.Open(cfg.ModelFile)
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer modelFile.Close()

	var embedReader io.Reader
	if cfg.EmbeddingsFile != "" {
		embedFile, err := os.Open(cfg.EmbeddingsFile)
		if err != nil {
			return nil, fmt.Errorf("open embeddings file: %w", err)
		}
		defer embedFile.Close()
		embedReader = embedFile
	}

	parser, err := ingredientparser.NewParser(modelFile, embedReader)
	if err != nil {
		return nil, err
	}

	if cfg.CatalogFile != "" {
		var embed *embeddings.Model
		if cfg.EmbeddingsFile != "" {
			embedFile, err := os.Open(cfg.EmbeddingsFile)
			if err != nil {
				return nil, fmt.Errorf("re-open embeddings file for catalog: %w", err)
			}
			defer embedFile.Close()
			embed, err = embeddings.Load(embedFile)
			if err != nil {
				return nil, fmt.Errorf("load embeddings for catalog: %w", err)
			}
		}

		catalogFile, err := os.Open(cfg.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("open catalog file: %w", err)
		}
		defer catalogFile.Close()

		if err := parser.EnableFoundationFoods(catalogFile, embed); err != nil {
			return nil, err
		}
	}

	return parser, nil
}

func outputJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printWarning(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "⚠ "+format+"\n", args...)
}
