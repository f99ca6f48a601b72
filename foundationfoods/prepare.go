package foundationfoods

import (
	"strconv"
	"strings"

	"github.com/hilli/ingredientparser/cache"
	"github.com/hilli/ingredientparser/embeddings"
	"github.com/hilli/ingredientparser/pos"
	"github.com/hilli/ingredientparser/stem"
)

// cacheSize mirrors the 512-entry bound used throughout the pipeline for
// content-addressed caches (§5).
const cacheSize = 512

var prepareCache = cache.New[string, []string](cacheSize)

// StripAmbiguousLeadingAdjectives removes leading JJ-tagged tokens that
// are ambiguous adjectives, reverting to the original list if stripping
// would empty it (§4.6 step 1).
func StripAmbiguousLeadingAdjectives(tokens []string, tags []pos.Tag) []string {
	original := tokens
	for len(tokens) > 0 && len(tags) > 0 && tags[0] == pos.JJ && ambiguousAdjectives[strings.ToLower(tokens[0])] {
		tokens = tokens[1:]
		tags = tags[1:]
	}
	if len(tokens) == 0 {
		return original
	}
	return tokens
}

// prepareEmbeddingsTokens stems and filters tokens for use with the
// embedding-based rankers: hyphenated tokens are split on "-" first;
// numeric, single-character, and out-of-vocabulary tokens are discarded
// (§4.6 step 2). Results are cached since the same token lists recur
// across similarly-worded ingredient names.
func prepareEmbeddingsTokens(tokens []string, embed *embeddings.Model) []string {
	key := strings.Join(tokens, "\x00")
	if embed != nil {
		if cached, ok := prepareCache.Get(key); ok {
			return cached
		}
	}

	var split []string
	for _, t := range tokens {
		if strings.Contains(t, "-") {
			for _, piece := range strings.Split(t, "-") {
				if piece != "" {
					split = append(split, piece)
				}
			}
		} else {
			split = append(split, t)
		}
	}

	var stemmed []string
	for _, t := range split {
		if isNumeric(t) || len(t) <= 1 || strings.TrimSpace(t) == "" {
			continue
		}
		stemmed = append(stemmed, stem.Stem(strings.ToLower(t)))
	}

	normalized := normaliseSpelling(stemmed)

	var out []string
	if embed != nil {
		for _, t := range normalized {
			if _, ok := embed.Vector(t); ok {
				out = append(out, t)
			}
		}
		prepareCache.Add(key, out)
	} else {
		out = normalized
	}
	return out
}

// normaliseSpelling rewrites stemmed tokens to the spelling used in FDC
// descriptions: two-token phrase substitutions first, then one-token
// phrase expansions, then one-to-one token substitutions (§4.6 step 3).
func normaliseSpelling(tokens []string) []string {
	var out []string
	for i := 0; i < len(tokens); i++ {
		tok := strings.ToLower(tokens[i])
		if i < len(tokens)-1 {
			next := strings.ToLower(tokens[i+1])
			matched := false
			for _, sub := range phraseSubstitutions {
				if sub.from[0] == tok && sub.from[1] == next {
					out = append(out, sub.to...)
					i++ // consume next as well
					matched = true
					break
				}
			}
			if matched {
				continue
			}
		}
		if phrase, ok := tokenToPhraseSubstitutions[tok]; ok {
			out = append(out, phrase...)
			continue
		}
		if sub, ok := tokenSubstitutions[tok]; ok {
			out = append(out, sub)
			continue
		}
		out = append(out, tok)
	}
	return out
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
