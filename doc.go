// Package ingredientparser parses free-text recipe ingredient sentences
// such as "2 14 ounce cans coconut milk" into structured quantities,
// units, and names using a trained linear-chain CRF sequence labeler.
//
// # Basic Usage
//
// Load a trained model and parse a sentence:
//
//	modelFile, err := os.Open("model.crfgz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer modelFile.Close()
//
//	parser, err := ingredientparser.NewParser(modelFile, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := parser.Parse("2 14 ounce cans coconut milk", postprocess.DefaultOptions)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, amt := range result.Amounts {
//	    fmt.Printf("%s %s\n", amt.Text, amt.Unit)
//	}
//	for _, name := range result.Names {
//	    fmt.Println(name.Text)
//	}
//
// # Word Embeddings
//
// Passing a gzip word2vec-format embeddings file as NewParser's second
// argument lets the labeler generalize to ingredient names it never saw
// during training:
//
//	embedFile, err := os.Open("embeddings.txt.gz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer embedFile.Close()
//
//	parser, err := ingredientparser.NewParser(modelFile, embedFile)
//
// # Options
//
// postprocess.Options controls whether units are returned as canonical
// identifiers or left as the original string, whether multiple name
// variants are kept separate, and whether a best-effort name guess is
// produced even when no NAME-labeled tokens survive:
//
//	opts := postprocess.Options{
//	    StringUnits:   true,
//	    SeparateNames: true,
//	}
//	result, err := parser.Parse(sentence, opts)
//
// # Foundation Food Resolution
//
// Given a catalog of reference foods, a parsed name can be matched
// against the closest catalog entries:
//
//	catalogFile, err := os.Open("foundation_foods.csv.gz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer catalogFile.Close()
//
//	if err := parser.EnableFoundationFoods(catalogFile, embeddingsModel); err != nil {
//	    log.Fatal(err)
//	}
//
//	opts := postprocess.DefaultOptions
//	opts.FoundationFoods = true
//	result, err := parser.Parse(sentence, opts)
//	for _, match := range result.FoundationFoods {
//	    fmt.Printf("%s (fdc_id=%d, confidence=%.2f)\n", match.Text, match.FDCID, match.Confidence)
//	}
//
// # Errors
//
// Parse and NewParser return one of three error types: InputError for
// sentences the parser cannot tokenize at all, ResourceError for a model
// or embeddings file that fails to load (including a model file whose
// labels fall outside the fixed label set), and ModelMismatchError from
// Parse for a model whose label set doesn't match the fixed label set
// this package was built against. All other parsing uncertainty (an amount that
// cannot be resolved to a number, for instance) is absorbed internally
// and surfaces as a best-effort result field, never as an error.
package ingredientparser
