// Package stem reduces tokens to their Porter stem, with a bounded cache in
// front of the stemmer so that repeated tokens across many ingredient
// sentences are not re-stemmed.
package stem

import (
	"strings"

	porterstemmer "github.com/blevesearch/go-porterstemmer"

	"github.com/hilli/ingredientparser/cache"
)

// cacheSize mirrors the 512-entry bound used throughout the pipeline for
// content-addressed caches (stemming, token similarity, embeddings prep).
const cacheSize = 512

var stemCache = cache.New[string, string](cacheSize)

// Stem returns the Porter stem of word, lower-cased first. Results are
// cached: the same surface token recurs constantly across ingredient
// sentences (units, stop words, common foods).
func Stem(word string) string {
	lower := strings.ToLower(word)
	if s, ok := stemCache.Get(lower); ok {
		return s
	}
	s := porterstemmer.StemString(lower)
	stemCache.Add(lower, s)
	return s
}

// StemAll stems each token in tokens, preserving order.
func StemAll(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = Stem(t)
	}
	return out
}
