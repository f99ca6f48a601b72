package ingredientparser

import "fmt"

// InputError reports a sentence the parser cannot process at all: empty
// input, or input that tokenizes to nothing. Callers should treat this as
// a caller bug (bad input), not a parser failure.
type InputError struct {
	Sentence string
	Reason   string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("ingredientparser: invalid input %q: %s", e.Sentence, e.Reason)
}

// ResourceError reports a failure to load a model or embeddings file:
// missing file, corrupt gob/gzip stream, or an io error from the caller's
// Reader.
type ResourceError struct {
	Op  string
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("ingredientparser: %s: %v", e.Op, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// ModelMismatchError reports a CRF model whose label set doesn't match
// the fixed label set the feature emitter and post-processor were built
// against. Parse and ParseTokens check the model's labels before
// decoding; a model file read by NewParser has already been checked by
// crf.Load, which rejects such a file and surfaces as a ResourceError.
type ModelMismatchError struct {
	Reason string
}

func (e *ModelMismatchError) Error() string {
	return fmt.Sprintf("ingredientparser: model mismatch: %s", e.Reason)
}
