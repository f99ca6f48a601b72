// Package ingredientparser parses free-text recipe ingredient sentences
// into structured quantities, units, and names.
package ingredientparser

import (
	"errors"
	"fmt"
	"io"

	"github.com/hilli/ingredientparser/crf"
	"github.com/hilli/ingredientparser/embeddings"
	"github.com/hilli/ingredientparser/features"
	"github.com/hilli/ingredientparser/foundationfoods"
	"github.com/hilli/ingredientparser/normalize"
	"github.com/hilli/ingredientparser/pos"
	"github.com/hilli/ingredientparser/postprocess"
	"github.com/hilli/ingredientparser/structure"
	"github.com/hilli/ingredientparser/token"
)

// Parser holds the trained CRF model and word embeddings needed to parse
// ingredient sentences. A Parser is safe for concurrent use once built:
// the model and embeddings it wraps are loaded once and never mutated.
type Parser struct {
	model    *crf.Model
	emitter  *features.Emitter
	resolver *foundationfoods.Resolver
}

// NewParser loads a trained CRF model and, optionally, a word-embeddings
// file, and returns a Parser ready to serve concurrent Parse calls.
// embeddingsReader may be nil: embedding-derived features are simply
// omitted, at some cost to labeling accuracy on unfamiliar ingredient
// names.
func NewParser(model io.Reader, embeddingsReader io.Reader) (*Parser, error) {
	m, err := crf.Load(model)
	if err != nil {
		return nil, &ResourceError{Op: "load model", Err: err}
	}

	var embed *embeddings.Model
	if embeddingsReader != nil {
		embed, err = embeddings.Load(embeddingsReader)
		if err != nil {
			return nil, &ResourceError{Op: "load embeddings", Err: err}
		}
	}

	return &Parser{model: m, emitter: features.NewEmitter(embed)}, nil
}

// errNoEmbeddings reports EnableFoundationFoods being called without an
// embeddings model: the uSIF and Fuzzy rankers cannot run without one.
var errNoEmbeddings = errors.New("foundation-food resolution requires an embeddings model")

// EnableFoundationFoods loads a foundation-food catalog and builds the
// §4.6 resolver over it, so that a later Parse call with
// postprocess.Options.FoundationFoods set populates
// ParsedIngredient.FoundationFoods. embed should be the same embeddings
// model passed to NewParser; it may differ, but the catalog and the
// labeler would then draw from different vocabularies.
func (p *Parser) EnableFoundationFoods(catalogReader io.Reader, embed *embeddings.Model) error {
	if embed == nil {
		return &ResourceError{Op: "load foundation-food catalog", Err: errNoEmbeddings}
	}
	catalog, err := foundationfoods.LoadCatalog(catalogReader, embed)
	if err != nil {
		return &ResourceError{Op: "load foundation-food catalog", Err: err}
	}
	p.resolver = foundationfoods.NewResolver(catalog, embed)
	return nil
}

// Parse runs the full pipeline (normalize -> tokenize -> tag -> analyze
// structure -> emit features -> decode -> post-process) over sentence
// and returns the resulting ParsedIngredient.
func (p *Parser) Parse(sentence string, opts postprocess.Options) (postprocess.ParsedIngredient, error) {
	if sentence == "" {
		return postprocess.ParsedIngredient{}, &InputError{Sentence: sentence, Reason: "empty sentence"}
	}

	normalized := normalize.Normalize(sentence, normalize.Options{
		StripPriceAnnotations: opts.StripPriceAnnotations,
		Trace:                 opts.Trace,
	})
	tokens, _ := normalize.Tokenize(normalized)
	if len(tokens) == 0 {
		return postprocess.ParsedIngredient{}, &InputError{Sentence: sentence, Reason: "no tokens produced"}
	}

	tags := pos.TagSentence(tokens)
	struc := structure.Analyze(tokens, tags)
	featureSeq := p.emitter.Emit(tokens, tags, struc)

	result, err := p.decode(featureSeq)
	if err != nil {
		return postprocess.ParsedIngredient{}, err
	}

	parsed := postprocess.Process(sentence, tokens, result.Labels, result.Marginals, opts)

	if opts.FoundationFoods && p.resolver != nil {
		parsed.FoundationFoods = p.resolveFoundationFoods(parsed.Names)
	}

	return parsed, nil
}

// resolveFoundationFoods runs the foundation-food resolver over every
// parsed name, skipping (not erroring on) any name with no confident
// match: §4.6 resolution failure is a NonFatalParseAnomaly.
func (p *Parser) resolveFoundationFoods(names []postprocess.IngredientText) []postprocess.FoundationFood {
	var matches []postprocess.FoundationFood
	for i, name := range names {
		result, ok := p.resolver.ResolveText(name.Text)
		if !ok {
			continue
		}
		matches = append(matches, postprocess.FoundationFood{
			Text:       result.Text,
			Confidence: result.Confidence,
			FDCID:      result.FDCID,
			Category:   result.Category,
			DataType:   string(result.DataType),
			NameIndex:  i,
		})
	}
	return matches
}

// ParseTokens runs the pipeline through CRF decoding only (normalize,
// tokenize, tag, analyze structure, emit features, decode) and returns
// the raw per-token (label, marginal) assignments, skipping
// post-processing entirely. It is the debugging counterpart to Parse:
// a caller that wants to see what the labeler itself assigned, before
// amount extraction and name grouping reinterpret it, uses this instead.
func (p *Parser) ParseTokens(sentence string) ([]token.Labeled, error) {
	if sentence == "" {
		return nil, &InputError{Sentence: sentence, Reason: "empty sentence"}
	}

	normalized := normalize.Normalize(sentence, normalize.Options{})
	tokens, _ := normalize.Tokenize(normalized)
	if len(tokens) == 0 {
		return nil, &InputError{Sentence: sentence, Reason: "no tokens produced"}
	}

	tags := pos.TagSentence(tokens)
	struc := structure.Analyze(tokens, tags)
	featureSeq := p.emitter.Emit(tokens, tags, struc)

	result, err := p.decode(featureSeq)
	if err != nil {
		return nil, err
	}

	return tokenLabels(tokens, result), nil
}

// decode wraps Model.Decode with the feature/label compatibility check
// that turns a mismatched model file into a ModelMismatchError instead of
// a silent, wrong labeling.
func (p *Parser) decode(featureSeq []map[string]float64) (crf.Result, error) {
	if len(p.model.Labels) == 0 {
		return crf.Result{}, &ModelMismatchError{Reason: "model declares no labels"}
	}
	for _, l := range p.model.Labels {
		if !l.Valid() {
			return crf.Result{}, &ModelMismatchError{Reason: fmt.Sprintf("model label %q is outside the fixed label set", l)}
		}
	}
	return p.model.Decode(featureSeq), nil
}

// tokenLabels is a convenience for callers that want the raw
// (token, label, marginal) triples without post-processing, e.g. to
// render a debugging view of a parse.
func tokenLabels(tokens []token.Token, result crf.Result) []token.Labeled {
	out := make([]token.Labeled, len(tokens))
	for i, t := range tokens {
		out[i] = token.Labeled{Token: t, Label: result.Labels[i], Marginal: result.Marginals[i], TokenIndex: i}
	}
	return out
}
